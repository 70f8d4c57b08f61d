// Package models holds meshes, their loaders and the asset files (palette,
// materials) that feed the pyx rasterizer.
package models

import (
	"errors"

	"github.com/taigrr/pyx/pkg/math3d"
	"github.com/taigrr/pyx/pkg/render"
)

// ErrNoGeometry is returned by loaders when a file parses but holds no
// triangles.
var ErrNoGeometry = errors.New("no geometry")

// IndexedTriangle refers to three vertices and one material of its mesh.
type IndexedTriangle struct {
	V        [3]int // Indices into Mesh.Vertices
	Material int    // Index into Mesh.Materials (-1 for none)
}

// Mesh is a shared vertex list with indexed triangles and a material table.
type Mesh struct {
	Name      string
	Vertices  []math3d.Vec3
	Triangles []IndexedTriangle
	Materials []render.Material

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// MaterialIndex returns the index of the named material, adding a default
// ramp for it if the mesh does not have one yet.
func (m *Mesh) MaterialIndex(name string) int {
	for i, mat := range m.Materials {
		if mat.Name == name {
			return i
		}
	}
	m.Materials = append(m.Materials, render.DefaultMaterial(name))
	return len(m.Materials) - 1
}

// ApplyMaterials replaces the mesh's materials with the entries of table
// that share their name. Names missing from table keep their current ramp
// and are returned.
func (m *Mesh) ApplyMaterials(table map[string]render.Material) (missing []string) {
	for i, mat := range m.Materials {
		if t, ok := table[mat.Name]; ok {
			t.Name = mat.Name
			m.Materials[i] = t
			continue
		}
		missing = append(missing, mat.Name)
	}
	return missing
}

// Material returns the material for index i, or the default ramp if i does
// not name one.
func (m *Mesh) Material(i int) render.Material {
	if i < 0 || i >= len(m.Materials) {
		return render.DefaultMaterial("")
	}
	return m.Materials[i]
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	m.BoundsMin = m.Vertices[0]
	m.BoundsMax = m.Vertices[0]

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v)
		m.BoundsMax = m.BoundsMax.Max(v)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// Normalize recenters the mesh on the origin and scales it so its largest
// extent is 2 (coordinates in [-1, 1]).
func (m *Mesh) Normalize() {
	m.CalculateBounds()
	size := m.Size()
	extent := max(size.X, size.Y, size.Z)
	if extent == 0 {
		return
	}
	center := m.Center()
	s := 2 / extent
	for i, v := range m.Vertices {
		m.Vertices[i] = v.Sub(center).Scale(s)
	}
	m.CalculateBounds()
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Triangles)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}
