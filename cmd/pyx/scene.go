package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taigrr/pyx/pkg/animation"
	"github.com/taigrr/pyx/pkg/models"
	"github.com/taigrr/pyx/pkg/render"
)

func loadModel(path string) (*models.Mesh, error) {
	var (
		mesh *models.Mesh
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".glb", ".gltf":
		mesh, err = models.LoadGLTF(path)
	case ".obj":
		mesh, err = models.LoadOBJ(path)
	default:
		return nil, fmt.Errorf("unsupported format: %s (use .obj, .gltf or .glb)", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}
	mesh.Normalize()
	return mesh, nil
}

// scene is everything one frame needs.
type scene struct {
	opts      *options
	buf       *render.Buffer
	model     *models.Model
	turntable *animation.Turntable
	light     render.Lighting
	palette   render.Palette
	wireframe bool // overlay triangle edges in wireColor
}

// wireColor is the palette index of wireframe overlays.
const wireColor = 11

func newScene(opts *options, modelPath string, width, height int) (*scene, error) {
	mesh, err := loadModel(modelPath)
	if err != nil {
		return nil, err
	}
	assets, err := models.LoadAssets(opts.palettePath, opts.materialsPath)
	if err != nil {
		return nil, err
	}

	s := &scene{
		opts:      opts,
		model:     models.NewModel(mesh),
		turntable: animation.NewTurntable(width, height, opts.fps, fitScale(width, height)),
		light:     render.DefaultLighting(),
		palette:   render.DefaultPalette(),
	}
	s.apply(assets)
	s.resize(width, height)
	return s, nil
}

// fitScale sizes a normalized mesh to fill most of the buffer.
func fitScale(width, height int) float64 {
	return 0.45 * float64(min(width, height))
}

func (s *scene) resize(width, height int) {
	s.buf = render.NewBuffer(width, height, true)
	s.buf.Background = s.opts.background
	s.buf.Palette = s.palette
	s.buf.ClearScreen()
	s.turntable.Resize(width, height)
	s.turntable.Scale = fitScale(width, height)
}

// apply installs reloaded assets. It runs between frames only.
func (s *scene) apply(a models.Assets) {
	if a.Palette != nil {
		s.palette = a.Palette
		if s.buf != nil {
			s.buf.Palette = a.Palette
		}
	}
	if a.Materials != nil {
		models.ApplyMaterialTable(s.model.Mesh, a.Materials)
	}
}

func (s *scene) draw() models.RenderStats {
	s.model.Transform = s.turntable.Transform()
	stats := models.Draw(s.buf, s.model, s.light)
	if s.wireframe {
		s.model.Mesh.RenderWireframe(s.buf, s.model.Transform, wireColor)
	}
	return stats
}

// shiftMaterial moves material i through the palette by delta.
func (s *scene) shiftMaterial(i, delta int) (render.Material, bool) {
	mats := s.model.Mesh.Materials
	if i < 0 || i >= len(mats) {
		return render.Material{}, false
	}
	mats[i] = mats[i].Shift(delta, len(s.palette))
	return mats[i], true
}

// export renders a single frame to a PNG file.
func export(cmd *cobra.Command, opts *options, modelPath string) error {
	s, err := newScene(opts, modelPath, opts.width, opts.height)
	if err != nil {
		return err
	}
	s.wireframe = opts.wireframe
	for range opts.frames {
		s.turntable.Update()
	}
	stats := s.draw()
	if err := s.buf.SavePNG(opts.out, opts.scale); err != nil {
		return err
	}
	cmd.Printf("Wrote %s (%d of %d triangles drawn)\n", opts.out, stats.Drawn, stats.Triangles)
	return nil
}
