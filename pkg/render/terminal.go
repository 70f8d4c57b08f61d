package render

import (
	"image"
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// Draw converts the buffer to terminal cells and draws them on the screen.
// Each terminal row shows two buffer rows, so the buffer height should be 2x
// the area height.
func (b *Buffer) Draw(scr uv.Screen, area uv.Rectangle) {
	// ▀ (upper half block) with fg=top pixel and bg=bottom pixel
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := (row - area.Min.Y) * 2
		if topY >= b.Height {
			break
		}
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X; col++ {
			x := col - area.Min.X
			if x >= b.Width {
				break
			}
			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: cellColor(b.Palette.Color(b.Index(x, topY))),
				},
			}
			if botY < b.Height {
				cell.Style.Bg = cellColor(b.Palette.Color(b.Index(x, botY)))
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// CellToPixel maps a terminal cell inside area to the buffer pixel shown in
// its upper half. ok is false when the cell shows no buffer pixel.
func (b *Buffer) CellToPixel(area uv.Rectangle, cell image.Point) (x, y int, ok bool) {
	if !cell.In(area) {
		return 0, 0, false
	}
	x = cell.X - area.Min.X
	y = (cell.Y - area.Min.Y) * 2
	if x >= b.Width || y >= b.Height {
		return 0, 0, false
	}
	return x, y, true
}

// cellColor converts a palette entry to a terminal color.
func cellColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil // Transparent = no color
	}
	return c
}
