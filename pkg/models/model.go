package models

import (
	"github.com/taigrr/pyx/pkg/math3d"
	"github.com/taigrr/pyx/pkg/render"
)

// RenderStats summarizes one Render call.
type RenderStats struct {
	Triangles int // Triangles in the mesh
	Drawn     int // Triangles rasterized (possibly zero pixels)
	Skipped   int // Triangles with a non-finite vertex after transform
}

// Render transforms every vertex by xf once and rasterizes the triangles in
// mesh order. Each triangle's index is its picking id. Vertex indices out of
// range panic: the mesh is corrupt.
func (m *Mesh) Render(buf *render.Buffer, xf math3d.Affine, light render.Lighting) RenderStats {
	screen := make([]math3d.Vec3, len(m.Vertices))
	for i, v := range m.Vertices {
		screen[i] = xf.TransformPoint(v)
	}

	stats := RenderStats{Triangles: len(m.Triangles)}
	for i, t := range m.Triangles {
		tri := render.NewTri(screen[t.V[0]], screen[t.V[1]], screen[t.V[2]], m.Material(t.Material), light)
		if tri.Draw(buf, i) {
			stats.Drawn++
		} else {
			stats.Skipped++
		}
	}

	if stats.Skipped > 0 {
		render.Logger().Debug("skipped non-finite triangles",
			"mesh", m.Name, "skipped", stats.Skipped, "total", stats.Triangles)
	}
	return stats
}

// RenderWireframe transforms the mesh by xf and draws every triangle edge
// in color on top of whatever the buffer holds. Depth is neither tested nor
// written.
func (m *Mesh) RenderWireframe(buf *render.Buffer, xf math3d.Affine, color uint8) {
	screen := make([]math3d.Vec3, len(m.Vertices))
	for i, v := range m.Vertices {
		screen[i] = xf.TransformPoint(v)
	}
	for _, t := range m.Triangles {
		tri := render.Tri{A: screen[t.V[0]], B: screen[t.V[1]], C: screen[t.V[2]]}
		tri.DrawOutline(buf, color)
	}
}

// Model places a mesh in screen space.
type Model struct {
	Mesh      *Mesh
	Transform math3d.Affine
}

// NewModel wraps mesh with the identity transform.
func NewModel(mesh *Mesh) *Model {
	return &Model{Mesh: mesh, Transform: math3d.IdentityAffine()}
}

// Render draws the model's mesh with its current transform.
func (m *Model) Render(buf *render.Buffer, light render.Lighting) RenderStats {
	if m.Mesh == nil {
		return RenderStats{}
	}
	return m.Mesh.Render(buf, m.Transform, light)
}

// Pick returns the triangle of the model's mesh that owns pixel (x, y).
func (m *Model) Pick(buf *render.Buffer, x, y int) (IndexedTriangle, bool) {
	id, ok := buf.TriangleAt(x, y)
	if !ok || m.Mesh == nil || id >= len(m.Mesh.Triangles) {
		return IndexedTriangle{}, false
	}
	return m.Mesh.Triangles[id], true
}

// Draw renders one frame: the buffer is cleared and the model drawn into it.
func Draw(buf *render.Buffer, model *Model, light render.Lighting) RenderStats {
	buf.ClearScreen()
	return model.Render(buf, light)
}
