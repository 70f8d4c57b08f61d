package models

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taigrr/pyx/pkg/math3d"
	"github.com/taigrr/pyx/pkg/render"
)

// LoadOBJ loads a Wavefront OBJ file.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	mesh, err := ParseOBJ(f, filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return mesh, nil
}

// ParseOBJ reads OBJ geometry from r. Only positions, faces, object names
// and material switches are used; polygons are fan triangulated.
func ParseOBJ(r io.Reader, name string) (*Mesh, error) {
	mesh := NewMesh(name)
	material := -1

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "o":
			if len(fields) > 1 && mesh.Name == name {
				mesh.Name = fields[1]
			}
		case "v":
			v, err := parseVertex(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			mesh.Vertices = append(mesh.Vertices, v)
		case "f":
			idx, err := parseFace(fields[1:], len(mesh.Vertices))
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			// Fan around the first vertex.
			for i := 1; i+1 < len(idx); i++ {
				mesh.Triangles = append(mesh.Triangles, IndexedTriangle{
					V:        [3]int{idx[0], idx[i], idx[i+1]},
					Material: material,
				})
			}
		case "usemtl":
			if len(fields) < 2 {
				return nil, fmt.Errorf("line %d: usemtl without a name", line)
			}
			material = mesh.MaterialIndex(fields[1])
		default:
			// vn, vt, g, s, mtllib and anything else carry nothing we draw.
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read obj: %w", err)
	}

	if len(mesh.Triangles) == 0 {
		return nil, ErrNoGeometry
	}
	for i, t := range mesh.Triangles {
		if t.Material < 0 {
			mesh.Triangles[i].Material = mesh.MaterialIndex(defaultMaterialName)
		}
	}
	mesh.CalculateBounds()

	render.Logger().Info("loaded obj", "mesh", mesh.Name,
		"vertices", mesh.VertexCount(), "triangles", mesh.TriangleCount(), "materials", len(mesh.Materials))
	return mesh, nil
}

// defaultMaterialName is assigned to faces that appear before any usemtl.
const defaultMaterialName = "default"

func parseVertex(fields []string) (math3d.Vec3, error) {
	if len(fields) < 3 {
		return math3d.Vec3{}, fmt.Errorf("vertex needs 3 coordinates, got %d", len(fields))
	}
	var c [3]float64
	for i := range c {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return math3d.Vec3{}, fmt.Errorf("vertex coordinate %q: %w", fields[i], err)
		}
		c[i] = f
	}
	return math3d.V3(c[0], c[1], c[2]), nil
}

// parseFace resolves face tokens ("7", "7/1", "7//3", "-1") to zero based
// vertex indices. count is the number of vertices read so far.
func parseFace(fields []string, count int) ([]int, error) {
	if len(fields) < 3 {
		return nil, fmt.Errorf("face needs at least 3 vertices, got %d", len(fields))
	}
	idx := make([]int, len(fields))
	for i, tok := range fields {
		pos, _, _ := strings.Cut(tok, "/")
		n, err := strconv.Atoi(pos)
		if err != nil {
			return nil, fmt.Errorf("face index %q: %w", tok, err)
		}
		switch {
		case n > 0:
			n--
		case n < 0:
			n += count
		default:
			return nil, fmt.Errorf("face index %q: indices start at 1", tok)
		}
		if n < 0 || n >= count {
			return nil, fmt.Errorf("face index %q out of range (%d vertices)", tok, count)
		}
		idx[i] = n
	}
	return idx, nil
}
