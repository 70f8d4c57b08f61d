package models

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/taigrr/pyx/pkg/math3d"
	"github.com/taigrr/pyx/pkg/render"
)

// LoadGLTF loads a glTF (.gltf) or binary glTF (.glb) file.
func LoadGLTF(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	return meshFromDocument(doc, filepath.Base(path))
}

// ParseGLTF decodes a self-contained glTF or GLB stream. External buffer
// URIs cannot be resolved from a reader.
func ParseGLTF(r io.Reader, name string) (*Mesh, error) {
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(r).Decode(doc); err != nil {
		return nil, fmt.Errorf("decode gltf: %w", err)
	}
	return meshFromDocument(doc, name)
}

func meshFromDocument(doc *gltf.Document, name string) (*Mesh, error) {
	mesh := NewMesh(name)
	for _, m := range doc.Meshes {
		if err := processMesh(doc, m, mesh); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}
	if len(mesh.Triangles) == 0 {
		return nil, ErrNoGeometry
	}
	mesh.CalculateBounds()

	render.Logger().Info("loaded gltf", "mesh", mesh.Name,
		"vertices", mesh.VertexCount(), "triangles", mesh.TriangleCount(), "materials", len(mesh.Materials))
	return mesh, nil
}

// processMesh appends the triangle primitives of m to mesh.
func processMesh(doc *gltf.Document, m *gltf.Mesh, mesh *Mesh) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		material := mesh.MaterialIndex(defaultMaterialName)
		if prim.Material != nil && *prim.Material < len(doc.Materials) {
			material = mesh.MaterialIndex(materialName(doc, *prim.Material))
		}

		base := len(mesh.Vertices)
		for _, p := range positions {
			mesh.Vertices = append(mesh.Vertices, math3d.V3(float64(p[0]), float64(p[1]), float64(p[2])))
		}

		var indices []uint32
		if prim.Indices != nil {
			indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
		} else {
			// No indices, assume sequential triangles
			indices = make([]uint32, len(positions))
			for i := range indices {
				indices[i] = uint32(i)
			}
		}

		for i := 0; i+2 < len(indices); i += 3 {
			t := IndexedTriangle{Material: material}
			for j := range 3 {
				v := int(indices[i+j])
				if v >= len(positions) {
					return fmt.Errorf("index %d out of range (%d vertices)", v, len(positions))
				}
				t.V[j] = base + v
			}
			mesh.Triangles = append(mesh.Triangles, t)
		}
	}

	return nil
}

func materialName(doc *gltf.Document, i int) string {
	if name := doc.Materials[i].Name; name != "" {
		return name
	}
	return fmt.Sprintf("material%d", i)
}
