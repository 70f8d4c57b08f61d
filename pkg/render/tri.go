package render

import (
	"cmp"
	"slices"

	"github.com/taigrr/pyx/pkg/math3d"
)

// Lighting is a single point light plus a constant ambient term.
type Lighting struct {
	Position math3d.Vec3
	Ambient  float64
}

// DefaultLighting places the light above and in front of the screen.
func DefaultLighting() Lighting {
	return Lighting{
		Position: math3d.V3(0, -100, -400),
		Ambient:  0.1,
	}
}

// Tri is a screen-space triangle ready to rasterize. Its illumination is
// computed once at construction; the whole triangle draws in one shade.
type Tri struct {
	A, B, C  math3d.Vec3
	Material Material
	Illum    float64
}

// NewTri builds a flat-shaded triangle from transformed vertices.
func NewTri(a, b, c math3d.Vec3, mat Material, light Lighting) Tri {
	normal := b.Sub(a).Cross(c.Sub(a)).Normalize()
	centroid := a.Add(b).Add(c).Scale(1.0 / 3)
	toSurface := centroid.Sub(light.Position).Normalize()
	diffuse := clampFloat(normal.Dot(toSurface), 0, 1)
	return Tri{
		A:        a,
		B:        b,
		C:        c,
		Material: mat,
		Illum:    diffuse + light.Ambient,
	}
}

// Color returns the palette index the triangle is drawn with.
func (t Tri) Color() uint8 {
	return t.Material.Shade(t.Illum)
}

// Draw rasterizes the triangle into buf, tagging written pixels with id.
// It returns false when the triangle was skipped because a vertex is not
// finite.
func (t Tri) Draw(buf *Buffer, id int) bool {
	if !t.A.IsFinite() || !t.B.IsFinite() || !t.C.IsFinite() {
		return false
	}
	color := t.Color()
	for _, part := range splitTriangle(t.A, t.B, t.C) {
		part.draw(buf, color, id)
	}
	return true
}

// sortByY orders the vertices top to bottom. Ties keep argument order.
func sortByY(a, b, c math3d.Vec3) [3]math3d.Vec3 {
	v := [3]math3d.Vec3{a, b, c}
	slices.SortStableFunc(v[:], func(p, q math3d.Vec3) int {
		return cmp.Compare(p.Y, q.Y)
	})
	return v
}
