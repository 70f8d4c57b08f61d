package render

import (
	"math"

	"github.com/taigrr/pyx/pkg/math3d"
)

// upDownTri is a triangle with a horizontal base. An up triangle has its
// apex above the base and is walked top to bottom ending on the base row; a
// down triangle has its apex below and is walked from the base downwards.
type upDownTri struct {
	apex        math3d.Vec3
	left, right math3d.Vec3 // base ends, ordered by x
	up          bool
	// skipBase drops the base row; set on the lower half of a split so the
	// shared row is emitted once.
	skipBase bool
}

func newUpDown(b1, b2, apex math3d.Vec3, up, skipBase bool) upDownTri {
	if b2.X < b1.X {
		b1, b2 = b2, b1
	}
	return upDownTri{apex: apex, left: b1, right: b2, up: up, skipBase: skipBase}
}

// splitTriangle decomposes a triangle into at most two flat-based parts.
// Degenerate triangles with every vertex on one row produce nothing.
func splitTriangle(a, b, c math3d.Vec3) []upDownTri {
	v := sortByY(a, b, c)
	top, mid, bot := v[0], v[1], v[2]

	switch {
	case top.Y == bot.Y:
		return nil
	case mid.Y == bot.Y:
		return []upDownTri{newUpDown(mid, bot, top, true, false)}
	case top.Y == mid.Y:
		return []upDownTri{newUpDown(top, mid, bot, false, false)}
	}

	// Point on the long edge top->bot at the middle vertex's row.
	s := math3d.V3(
		LerpAt(math3d.V2(top.Y, top.X), math3d.V2(bot.Y, bot.X), mid.Y),
		mid.Y,
		LerpAt(math3d.V2(top.Y, top.Z), math3d.V2(bot.Y, bot.Z), mid.Y),
	)
	return []upDownTri{
		newUpDown(mid, s, top, true, false),
		newUpDown(mid, s, bot, false, true),
	}
}

// rows returns the inclusive pixel row range covered by the part, clamped
// to the buffer height.
func (t upDownTri) rows(height int) (first, last int) {
	base := t.left.Y
	var lo, hi float64
	if t.up {
		lo, hi = math.Ceil(t.apex.Y), math.Floor(base)
	} else {
		lo, hi = math.Ceil(base), math.Floor(t.apex.Y)
		if t.skipBase {
			lo = math.Floor(base) + 1
		}
	}
	lo = clampFloat(lo, 0, float64(height))
	hi = clampFloat(hi, -1, float64(height-1))
	return int(lo), int(hi)
}

func (t upDownTri) draw(buf *Buffer, color uint8, id int) {
	first, last := t.rows(buf.Height)
	if last < first {
		return
	}
	apexX := math3d.V2(t.apex.Y, t.apex.X)
	apexZ := math3d.V2(t.apex.Y, t.apex.Z)
	leftX, leftZ := math3d.V2(t.left.Y, t.left.X), math3d.V2(t.left.Y, t.left.Z)
	rightX, rightZ := math3d.V2(t.right.Y, t.right.X), math3d.V2(t.right.Y, t.right.Z)

	for y := first; y <= last; y++ {
		fy := float64(y)
		x1 := LerpAt(apexX, leftX, fy)
		x2 := LerpAt(apexX, rightX, fy)
		d1 := LerpAt(apexZ, leftZ, fy)
		d2 := LerpAt(apexZ, rightZ, fy)
		buf.HorizontalSpan(x1, x2, y, d1, d2, color, id)
	}
}
