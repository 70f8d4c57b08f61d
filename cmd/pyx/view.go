package main

import (
	"context"
	"fmt"
	"image"
	"math/rand"
	"os"
	"time"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/pyx/pkg/animation"
	"github.com/taigrr/pyx/pkg/models"
	"github.com/taigrr/pyx/pkg/render"
)

// impulse is the angular velocity one key press adds, radians per frame.
const impulse = 0.05

func run(ctx context.Context, opts *options, modelPath string) error {
	// Create terminal
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	// Each cell shows two pixels stacked vertically.
	s, err := newScene(opts, modelPath, width, height*2)
	if err != nil {
		return err
	}
	intro := animation.NewIntro(time.Second)
	s.turntable.Zoom = 0

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	// Enable mouse click tracking in SGR extended mode
	fmt.Fprint(os.Stdout, "\x1b[?1000h")
	fmt.Fprint(os.Stdout, "\x1b[?1006h")

	defer func() {
		fmt.Fprint(os.Stdout, "\x1b[?1000l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Hot reload is best effort; the viewer works without it.
	var reloads <-chan models.Assets
	if opts.palettePath != "" || opts.materialsPath != "" {
		watcher, err := models.NewWatcher(opts.palettePath, opts.materialsPath)
		if err != nil {
			render.Logger().Warn("hot reload disabled", "error", err)
		} else {
			defer watcher.Close()
			go watcher.Run(ctx)
			reloads = watcher.Updates()
		}
	}

	log := render.Logger()
	hud := NewHUD(s.model.Mesh.Name, s.model.Mesh.TriangleCount())
	picked := -1 // material index under edit
	area := image.Rect(0, 0, width, height)

	ticker := time.NewTicker(time.Second / time.Duration(max(opts.fps, 1)))
	defer ticker.Stop()
	lastFrame := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil

		case a, ok := <-reloads:
			if !ok {
				reloads = nil
				continue
			}
			s.apply(a)

		case ev := <-term.Events():
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				area = image.Rect(0, 0, width, height)
				term.Erase()
				term.Resize(width, height)
				s.resize(width, height*2)

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape", "q", "ctrl+c"):
					return nil
				case ev.MatchString("r"):
					s.turntable.Reset()
				case ev.MatchString("x"):
					s.wireframe = !s.wireframe
				case ev.MatchString("?", "shift+/"):
					hud.Toggle()
				case ev.MatchString("w", "up"):
					s.turntable.Impulse(-impulse, 0)
				case ev.MatchString("s", "down"):
					s.turntable.Impulse(impulse, 0)
				case ev.MatchString("a", "left"):
					s.turntable.Impulse(0, -impulse)
				case ev.MatchString("d", "right"):
					s.turntable.Impulse(0, impulse)
				case ev.MatchString("space"):
					s.turntable.Impulse((rand.Float64()-0.5)*4*impulse, (rand.Float64()-0.5)*8*impulse)
				case ev.MatchString("["):
					if m, ok := s.shiftMaterial(picked, -1); ok {
						log.Info("material edited", "material", m.Name, "shades", m.Shades)
					}
				case ev.MatchString("]"):
					if m, ok := s.shiftMaterial(picked, 1); ok {
						log.Info("material edited", "material", m.Name, "shades", m.Shades)
					}
				}

			case uv.MouseClickEvent:
				if ev.Button != uv.MouseLeft {
					continue
				}
				x, y, ok := s.buf.CellToPixel(area, image.Pt(ev.X, ev.Y))
				if !ok {
					continue
				}
				if tri, ok := s.model.Pick(s.buf, x, y); ok {
					picked = tri.Material
					log.Info("material picked", "material", s.model.Mesh.Material(picked).Name)
				}
			}

		case now := <-ticker.C:
			dt := now.Sub(lastFrame)
			lastFrame = now

			if !intro.Done() {
				s.turntable.Zoom = intro.Update(dt)
			}
			s.turntable.Update()
			stats := s.draw()
			log.Debug("frame", "drawn", stats.Drawn, "skipped", stats.Skipped)

			term.Draw(s.buf)
			hud.UpdateFPS(now)
			var edit *render.Material
			if picked >= 0 {
				m := s.model.Mesh.Material(picked)
				edit = &m
			}
			hud.Draw(term, area, hud.Line(s.palette, edit, s.wireframe))
			if err := term.Display(); err != nil {
				return fmt.Errorf("display: %w", err)
			}
		}
	}
}
