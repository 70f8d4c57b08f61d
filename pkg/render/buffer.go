// Package render is the software rasterizer core of pyx: an indexed-color
// framebuffer with a depth buffer, flat-shaded triangle scanline
// rasterization and palette/material shading.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"

	"golang.org/x/image/draw"

	"github.com/taigrr/pyx/pkg/math3d"
)

// NoTriangle marks a pixel that no triangle has written this frame.
const NoTriangle = -1

// Buffer is an indexed-color canvas with a per-pixel depth buffer and an
// optional per-pixel owner buffer used for picking. All per-pixel slices are
// addressed as y*Width+x.
//
// Depth uses a "greater wins" convention: a fragment is written only when its
// depth is strictly greater than the stored value.
type Buffer struct {
	Width      int
	Height     int
	Background uint8   // Palette index used by ClearScreen
	Palette    Palette // Resolves indices for RGBA, ToImage and Draw

	canvas []uint8
	depth  []float64
	owners []int32 // nil when picking is disabled
}

// NewBuffer allocates a cleared buffer. When picking is true the buffer also
// records which triangle last won each pixel.
func NewBuffer(width, height int, picking bool) *Buffer {
	width = max(width, 0)
	height = max(height, 0)
	b := &Buffer{
		Width:   width,
		Height:  height,
		Palette: DefaultPalette(),
		canvas:  make([]uint8, width*height),
		depth:   make([]float64, width*height),
	}
	if picking {
		b.owners = make([]int32, width*height)
	}
	b.ClearScreen()
	return b
}

// Picking reports whether the buffer tracks triangle ownership.
func (b *Buffer) Picking() bool {
	return b.owners != nil
}

// ClearScreen resets the canvas to Background, every depth to -Inf and every
// owner to NoTriangle. Call once per frame before drawing.
func (b *Buffer) ClearScreen() {
	fill(b.canvas, b.Background)
	fill(b.depth, math.Inf(-1))
	fill(b.owners, NoTriangle)
}

// fill sets every element of s to v using copy-doubling.
func fill[T any](s []T, v T) {
	if len(s) == 0 {
		return
	}
	s[0] = v
	for i := 1; i < len(s); i *= 2 {
		copy(s[i:], s[:i])
	}
}

// Pixel writes a palette index at (x, y) without a depth test. Coordinates
// outside the buffer are clamped to the nearest edge.
func (b *Buffer) Pixel(x, y int, color uint8) {
	if b.Width == 0 || b.Height == 0 {
		return
	}
	x = min(max(x, 0), b.Width-1)
	y = min(max(y, 0), b.Height-1)
	b.canvas[y*b.Width+x] = color
}

// HorizontalSpan writes a depth-tested run of pixels on row y between the
// sub-pixel edge positions x1 and x2, with depth d1 at x1 and d2 at x2.
//
// Pixel coverage is ceil(x1) up to and including floor(x2); the range is then
// clamped to the buffer. Rows outside the buffer are skipped entirely. tri is
// stored in the owner buffer for every pixel that passes the depth test.
// It returns the number of pixels written.
func (b *Buffer) HorizontalSpan(x1, x2 float64, y int, d1, d2 float64, color uint8, tri int) int {
	if y < 0 || y >= b.Height {
		return 0
	}
	if !math3d.V2(x1, d1).IsFinite() || !math3d.V2(x2, d2).IsFinite() {
		return 0
	}
	if x2 < x1 {
		x1, x2 = x2, x1
		d1, d2 = d2, d1
	}

	w := float64(b.Width)
	left := int(clampFloat(math.Ceil(x1), 0, w))
	right := int(clampFloat(math.Floor(x2)+1, 0, w))
	if right <= left {
		return 0
	}

	// Depth at the clamped ends, so clipping the span keeps the ramp aligned
	// with the pixels actually covered.
	e1, e2 := math3d.V2(x1, d1), math3d.V2(x2, d2)
	dl := LerpAt(e1, e2, float64(left))
	dr := LerpAt(e1, e2, float64(right-1))

	written := 0
	i := y*b.Width + left
	for p := range NewLerp(math3d.V2(float64(left), dl), math3d.V2(float64(right-1), dr), right-left).All() {
		if p.Y > b.depth[i] {
			b.canvas[i] = color
			b.depth[i] = p.Y
			if b.owners != nil {
				b.owners[i] = int32(tri)
			}
			written++
		}
		i++
	}
	return written
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// Index returns the palette index at (x, y), or Background if out of bounds.
func (b *Buffer) Index(x, y int) uint8 {
	if x < 0 || x >= b.Width || y < 0 || y >= b.Height {
		return b.Background
	}
	return b.canvas[y*b.Width+x]
}

// Depth returns the stored depth at (x, y), or -Inf if out of bounds.
func (b *Buffer) Depth(x, y int) float64 {
	if x < 0 || x >= b.Width || y < 0 || y >= b.Height {
		return math.Inf(-1)
	}
	return b.depth[y*b.Width+x]
}

// TriangleAt returns the index of the triangle that owns pixel (x, y).
// ok is false when the pixel is out of bounds, untouched this frame, or
// picking is disabled.
func (b *Buffer) TriangleAt(x, y int) (tri int, ok bool) {
	if b.owners == nil || x < 0 || x >= b.Width || y < 0 || y >= b.Height {
		return NoTriangle, false
	}
	id := b.owners[y*b.Width+x]
	if id == NoTriangle {
		return NoTriangle, false
	}
	return int(id), true
}

// Canvas returns the palette indices in row-major order. The slice aliases
// the buffer and must be treated as read-only.
func (b *Buffer) Canvas() []uint8 {
	return b.canvas
}

// RGBA resolves every pixel through the palette.
func (b *Buffer) RGBA() []color.RGBA {
	out := make([]color.RGBA, len(b.canvas))
	for i, idx := range b.canvas {
		out[i] = b.Palette.Color(idx)
	}
	return out
}

// ToImage returns the canvas as a paletted image.
func (b *Buffer) ToImage() *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, b.Width, b.Height), b.Palette.ColorPalette())
	copy(img.Pix, b.canvas)
	return img
}

// EncodePNG writes the canvas as a PNG, upscaled by an integer factor with
// nearest-neighbour sampling. Factors below 2 write at native size.
func (b *Buffer) EncodePNG(w io.Writer, scale int) error {
	src := b.ToImage()
	if scale < 2 {
		return png.Encode(w, src)
	}
	dst := image.NewRGBA(image.Rect(0, 0, b.Width*scale, b.Height*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return png.Encode(w, dst)
}

// SavePNG saves the canvas as a PNG file.
func (b *Buffer) SavePNG(path string, scale int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create png: %w", err)
	}
	if err := b.EncodePNG(f, scale); err != nil {
		f.Close()
		return fmt.Errorf("encode png: %w", err)
	}
	return f.Close()
}
