package main

import (
	"fmt"
	"image"
	"time"

	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/pyx/pkg/render"
)

// HUD is a one line overlay with model info and the current edit target.
type HUD struct {
	filename  string
	polyCount int
	fps       float64
	fpsFrames int
	fpsTime   time.Time
	visible   bool
}

// NewHUD creates a new HUD
func NewHUD(filename string, polyCount int) *HUD {
	return &HUD{
		filename:  filename,
		polyCount: polyCount,
		fpsTime:   time.Now(),
		visible:   true,
	}
}

// UpdateFPS updates the FPS counter (call once per frame)
func (h *HUD) UpdateFPS(now time.Time) {
	h.fpsFrames++
	elapsed := now.Sub(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = now
	}
}

// Toggle shows or hides the overlay.
func (h *HUD) Toggle() {
	h.visible = !h.visible
}

// Line formats the status line. picked is the material under edit, if any.
func (h *HUD) Line(pal render.Palette, picked *render.Material, wireframe bool) string {
	base := lipgloss.NewStyle().
		Foreground(pal.Color(7)).
		Background(pal.Color(0))
	accent := base.Foreground(pal.Color(12)).Bold(true)

	line := base.Render(fmt.Sprintf(" %.0f FPS ", h.fps)) +
		accent.Render(h.filename) +
		base.Render(fmt.Sprintf(" %d tris ", h.polyCount))
	if wireframe {
		line += base.Render("[wire] ")
	}
	if picked != nil {
		line += base.Render("edit ") + accent.Render(picked.Name) + base.Render(" ")
		// One swatch per shade, in the shade's own color.
		for _, s := range picked.Shades {
			line += lipgloss.NewStyle().Background(pal.Color(s)).Render(" ")
		}
	}
	return line
}

// Draw renders the status line on the last row of area.
func (h *HUD) Draw(scr uv.Screen, area image.Rectangle, line string) {
	if !h.visible || area.Dy() == 0 {
		return
	}
	row := image.Rect(area.Min.X, area.Max.Y-1, area.Max.X, area.Max.Y)
	uv.NewStyledString(line).Draw(scr, row)
}
