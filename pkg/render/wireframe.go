package render

import (
	"math"

	"github.com/taigrr/pyx/pkg/math3d"
)

// Line draws a line between two sub-pixel points without a depth test. The
// line is clipped to the buffer before it is stepped, so far off-screen
// endpoints cost nothing.
func (b *Buffer) Line(p0, p1 math3d.Vec2, color uint8) {
	if !p0.IsFinite() || !p1.IsFinite() || b.Width == 0 || b.Height == 0 {
		return
	}
	// Clip against pixel centers [0, W-1] x [0, H-1].
	p0, p1, ok := clipLine(p0, p1, float64(b.Width-1), float64(b.Height-1))
	if !ok {
		return
	}
	b.bresenham(int(math.Round(p0.X)), int(math.Round(p0.Y)), int(math.Round(p1.X)), int(math.Round(p1.Y)), color)
}

// bresenham steps an integer line. Both ends must be inside the buffer.
func (b *Buffer) bresenham(x0, y0, x1, y1 int, color uint8) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		b.canvas[y0*b.Width+x0] = color
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// clipLine clips a segment to [0, maxX] x [0, maxY] (Liang-Barsky).
func clipLine(p0, p1 math3d.Vec2, maxX, maxY float64) (math3d.Vec2, math3d.Vec2, bool) {
	d := p1.Sub(p0)
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-d.X, p0.X},
		{d.X, maxX - p0.X},
		{-d.Y, p0.Y},
		{d.Y, maxY - p0.Y},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return p0, p1, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			t0 = max(t0, r)
		} else {
			t1 = min(t1, r)
		}
		if t0 > t1 {
			return p0, p1, false
		}
	}
	return p0.Add(d.Scale(t0)), p0.Add(d.Scale(t1)), true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// DrawOutline draws the triangle's three edges in color, ignoring depth.
func (t Tri) DrawOutline(buf *Buffer, color uint8) {
	a := math3d.V2(t.A.X, t.A.Y)
	b := math3d.V2(t.B.X, t.B.Y)
	c := math3d.V2(t.C.X, t.C.Y)
	buf.Line(a, b, color)
	buf.Line(b, c, color)
	buf.Line(c, a, color)
}
