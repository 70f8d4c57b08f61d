package render

import (
	"image/color"
	"math"
)

// ShadeCount is the number of brightness steps in a material ramp.
const ShadeCount = 9

// Palette maps indices to display colors. At most 256 entries are usable.
type Palette []color.RGBA

// DefaultPalette returns the 16-color PICO-8 palette.
func DefaultPalette() Palette {
	return Palette{
		{0x00, 0x00, 0x00, 0xff},
		{0x1d, 0x2b, 0x53, 0xff},
		{0x7e, 0x25, 0x53, 0xff},
		{0x00, 0x87, 0x51, 0xff},
		{0xab, 0x52, 0x36, 0xff},
		{0x5f, 0x57, 0x4f, 0xff},
		{0xc2, 0xc3, 0xc7, 0xff},
		{0xff, 0xf1, 0xe8, 0xff},
		{0xff, 0x00, 0x4d, 0xff},
		{0xff, 0xa3, 0x00, 0xff},
		{0xff, 0xec, 0x27, 0xff},
		{0x00, 0xe4, 0x36, 0xff},
		{0x29, 0xad, 0xff, 0xff},
		{0x83, 0x76, 0x9c, 0xff},
		{0xff, 0x77, 0xa8, 0xff},
		{0xff, 0xcc, 0xaa, 0xff},
	}
}

// Color returns the color at index i, or opaque black if the palette has no
// such entry.
func (p Palette) Color(i uint8) color.RGBA {
	if int(i) >= len(p) {
		return color.RGBA{A: 0xff}
	}
	return p[i]
}

// ColorPalette converts p to a 256-entry color.Palette so that any canvas
// index is valid in an image.Paletted.
func (p Palette) ColorPalette() color.Palette {
	out := make(color.Palette, 256)
	for i := range out {
		out[i] = p.Color(uint8(i))
	}
	return out
}

// Material is a named ramp of palette indices ordered dark to bright.
type Material struct {
	Name   string
	Shades [ShadeCount]uint8
}

// DefaultMaterial is the grey ramp used when a mesh names a material that the
// material table does not define.
func DefaultMaterial(name string) Material {
	return Material{Name: name, Shades: [ShadeCount]uint8{0, 1, 1, 5, 5, 13, 6, 6, 7}}
}

// ShadeBucket maps an illumination value to a ramp index. The curve is
// exponential, 2^(3v), so most of the ramp is spent on bright surfaces.
// Values are clamped to [0, 1]; NaN counts as 0.
func ShadeBucket(v float64) int {
	if math.IsNaN(v) {
		v = 0
	}
	v = clampFloat(v, 0, 1)
	return min(int(math.Floor(math.Exp2(3*v))), ShadeCount-1)
}

// Shade returns the palette index for an illumination value.
func (m Material) Shade(illum float64) uint8 {
	return m.Shades[ShadeBucket(illum)]
}

// Shift moves every shade by delta, wrapping within a palette of size n.
func (m Material) Shift(delta, n int) Material {
	if n <= 0 {
		return m
	}
	n = min(n, 256)
	for i, s := range m.Shades {
		m.Shades[i] = uint8(((int(s)+delta)%n + n) % n)
	}
	return m
}
