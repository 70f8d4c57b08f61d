package render

import (
	"iter"

	"github.com/taigrr/pyx/pkg/math3d"
)

// Lerp is an evenly spaced run of points between two endpoints. X is the
// driving axis: endpoints are ordered so X never decreases along the run.
// When both endpoints share X the order they were given in is kept, so a
// vertical run still has a well defined direction.
//
// The zero value is an empty run.
type Lerp struct {
	start, end math3d.Vec2
	step       math3d.Vec2
	n          int
}

// NewLerp returns a run of n points from p1 to p2 (after ordering). The
// first point is the lower endpoint; for n >= 2 the last point is exactly
// the upper endpoint. Negative n is treated as zero.
func NewLerp(p1, p2 math3d.Vec2, n int) Lerp {
	if n < 0 {
		n = 0
	}
	if p2.X < p1.X {
		p1, p2 = p2, p1
	}
	l := Lerp{start: p1, end: p2, n: n}
	if n >= 2 {
		d := float64(n - 1)
		l.step = math3d.V2((p2.X-p1.X)/d, (p2.Y-p1.Y)/d)
	}
	return l
}

// Len returns the number of points in the run.
func (l Lerp) Len() int {
	return l.n
}

// At returns the i-th point. i must be in [0, Len()).
func (l Lerp) At(i int) math3d.Vec2 {
	if i == l.n-1 && l.n >= 2 {
		return l.end
	}
	return l.start.Add(l.step.Scale(float64(i)))
}

// All yields every point in order. Each call starts a fresh pass.
func (l Lerp) All() iter.Seq[math3d.Vec2] {
	return func(yield func(math3d.Vec2) bool) {
		for i := range l.n {
			if !yield(l.At(i)) {
				return
			}
		}
	}
}

// LerpAt evaluates the line through p1 and p2 at driving value x and returns
// the carried value. Endpoints are reproduced exactly. If both points share
// the same X the line is vertical and p1.Y is returned.
func LerpAt(p1, p2 math3d.Vec2, x float64) float64 {
	switch {
	case p1.X == p2.X || x == p1.X:
		return p1.Y
	case x == p2.X:
		return p2.Y
	}
	// Dividing first keeps the product finite for huge coordinates.
	t := (x - p1.X) / (p2.X - p1.X)
	return p1.Y + t*(p2.Y-p1.Y)
}
