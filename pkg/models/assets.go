package models

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/taigrr/pyx/pkg/render"
)

// maxPaletteSize is the number of colors an 8-bit index can address.
const maxPaletteSize = 256

type paletteFile struct {
	Colors []string `toml:"colors"`
}

type materialEntry struct {
	Shades []int `toml:"shades"`
}

// LoadPalette reads a palette file of the form
//
//	colors = ["#000000", "#1d2b53", ...]
func LoadPalette(path string) (render.Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open palette: %w", err)
	}
	defer f.Close()

	p, err := ParsePalette(f)
	if err != nil {
		return nil, fmt.Errorf("palette %s: %w", path, err)
	}
	return p, nil
}

// ParsePalette decodes a TOML palette from r.
func ParsePalette(r io.Reader) (render.Palette, error) {
	var pf paletteFile
	if _, err := toml.NewDecoder(r).Decode(&pf); err != nil {
		return nil, fmt.Errorf("decode palette: %w", err)
	}
	if len(pf.Colors) == 0 {
		return nil, fmt.Errorf("palette has no colors")
	}
	if len(pf.Colors) > maxPaletteSize {
		return nil, fmt.Errorf("palette has %d colors, max %d", len(pf.Colors), maxPaletteSize)
	}

	p := make(render.Palette, len(pf.Colors))
	for i, hex := range pf.Colors {
		c, err := colorful.Hex(hex)
		if err != nil {
			return nil, fmt.Errorf("color %d: %w", i, err)
		}
		r, g, b := c.RGB255()
		p[i].R, p[i].G, p[i].B, p[i].A = r, g, b, 0xff
	}
	return p, nil
}

// LoadMaterials reads a material table file of the form
//
//	[body]
//	shades = [0, 1, 1, 5, 5, 13, 6, 6, 7]
func LoadMaterials(path string) (map[string]render.Material, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open materials: %w", err)
	}
	defer f.Close()

	m, err := ParseMaterials(f)
	if err != nil {
		return nil, fmt.Errorf("materials %s: %w", path, err)
	}
	return m, nil
}

// ParseMaterials decodes a TOML material table from r.
func ParseMaterials(r io.Reader) (map[string]render.Material, error) {
	var entries map[string]materialEntry
	if _, err := toml.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode materials: %w", err)
	}

	table := make(map[string]render.Material, len(entries))
	for name, e := range entries {
		if len(e.Shades) != render.ShadeCount {
			return nil, fmt.Errorf("material %q: need %d shades, got %d", name, render.ShadeCount, len(e.Shades))
		}
		mat := render.Material{Name: name}
		for i, s := range e.Shades {
			if s < 0 || s >= maxPaletteSize {
				return nil, fmt.Errorf("material %q: shade %d is not a palette index", name, s)
			}
			mat.Shades[i] = uint8(s)
		}
		table[name] = mat
	}
	return table, nil
}

// ApplyMaterialTable installs table on mesh and warns about every mesh
// material the table does not define.
func ApplyMaterialTable(mesh *Mesh, table map[string]render.Material) {
	missing := mesh.ApplyMaterials(table)
	slices.Sort(missing)
	for _, name := range missing {
		render.Logger().Warn("material not defined, using default ramp", "mesh", mesh.Name, "material", name)
	}
}
