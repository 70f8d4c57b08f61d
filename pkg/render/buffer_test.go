package render

import (
	"bytes"
	"image/png"
	"math"
	"path/filepath"
	"slices"
	"testing"
)

func TestNewBufferCleared(t *testing.T) {
	buf := NewBuffer(8, 4, true)
	for y := range 4 {
		for x := range 8 {
			if buf.Index(x, y) != 0 {
				t.Fatalf("Index(%d, %d) = %d, want 0", x, y, buf.Index(x, y))
			}
			if !math.IsInf(buf.Depth(x, y), -1) {
				t.Fatalf("Depth(%d, %d) = %v, want -Inf", x, y, buf.Depth(x, y))
			}
			if _, ok := buf.TriangleAt(x, y); ok {
				t.Fatalf("TriangleAt(%d, %d) reported an owner on a fresh buffer", x, y)
			}
		}
	}
}

func TestClearScreenIdempotent(t *testing.T) {
	buf := NewBuffer(16, 16, true)
	buf.Background = 3
	buf.HorizontalSpan(2, 12, 5, 1, 1, 9, 0)
	buf.ClearScreen()
	once := slices.Clone(buf.Canvas())
	buf.ClearScreen()
	if !slices.Equal(once, buf.Canvas()) {
		t.Error("second ClearScreen changed the canvas")
	}
	for _, c := range buf.Canvas() {
		if c != 3 {
			t.Fatalf("canvas holds %d after clear, want background 3", c)
		}
	}
	if !math.IsInf(buf.Depth(5, 5), -1) {
		t.Errorf("depth not reset: %v", buf.Depth(5, 5))
	}
	if _, ok := buf.TriangleAt(5, 5); ok {
		t.Error("owner not reset")
	}
}

func TestPixelClamps(t *testing.T) {
	buf := NewBuffer(4, 4, false)
	tests := []struct {
		name         string
		x, y         int
		wantX, wantY int
	}{
		{"inside", 1, 2, 1, 2},
		{"left", -5, 1, 0, 1},
		{"right", 10, 1, 3, 1},
		{"top", 2, -1, 2, 0},
		{"bottom corner", 99, 99, 3, 3},
	}

	for i, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := uint8(i + 1)
			buf.Pixel(tc.x, tc.y, c)
			if got := buf.Index(tc.wantX, tc.wantY); got != c {
				t.Errorf("Index(%d, %d) = %d, want %d", tc.wantX, tc.wantY, got, c)
			}
		})
	}
}

func TestHorizontalSpanCoverage(t *testing.T) {
	tests := []struct {
		name        string
		x1, x2      float64
		left, right int // inclusive pixel range, right < left means empty
	}{
		{"integer ends", 2, 5, 2, 5},
		{"fractional ends", 1.5, 4.5, 2, 4},
		{"reversed", 5, 2, 2, 5},
		{"single pixel", 3, 3, 3, 3},
		{"between pixels", 3.2, 3.8, 4, 3},
		{"clipped left", -3.5, 2, 0, 2},
		{"clipped right", 6, 20, 6, 9},
		{"fully left", -8, -1, 0, -1},
		{"fully right", 10.5, 30, 10, -1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			buf := NewBuffer(10, 3, false)
			n := buf.HorizontalSpan(tc.x1, tc.x2, 1, 1, 1, 7, 0)
			want := max(tc.right-tc.left+1, 0)
			if n != want {
				t.Errorf("wrote %d pixels, want %d", n, want)
			}
			for x := range 10 {
				inside := x >= tc.left && x <= tc.right
				if got := buf.Index(x, 1) == 7; got != inside {
					t.Errorf("pixel %d written = %v, want %v", x, got, inside)
				}
				if buf.Index(x, 0) != 0 || buf.Index(x, 2) != 0 {
					t.Errorf("span leaked into neighbouring row at x=%d", x)
				}
			}
		})
	}
}

func TestHorizontalSpanRowOutOfRange(t *testing.T) {
	buf := NewBuffer(4, 4, false)
	for _, y := range []int{-1, 4, 100} {
		if n := buf.HorizontalSpan(0, 3, y, 1, 1, 5, 0); n != 0 {
			t.Errorf("row %d wrote %d pixels", y, n)
		}
	}
	for _, c := range buf.Canvas() {
		if c != 0 {
			t.Fatal("out of range row modified the canvas")
		}
	}
}

func TestHorizontalSpanNonFinite(t *testing.T) {
	buf := NewBuffer(4, 4, false)
	inputs := [][4]float64{
		{math.NaN(), 3, 1, 1},
		{0, math.Inf(1), 1, 1},
		{0, 3, math.NaN(), 1},
		{0, 3, 1, math.Inf(-1)},
	}
	for _, in := range inputs {
		if n := buf.HorizontalSpan(in[0], in[1], 1, in[2], in[3], 5, 0); n != 0 {
			t.Errorf("HorizontalSpan(%v) wrote %d pixels", in, n)
		}
	}
}

func TestHorizontalSpanDepthTest(t *testing.T) {
	buf := NewBuffer(10, 1, true)
	buf.HorizontalSpan(0, 9, 0, 5, 5, 1, 10)

	// Equal depth loses.
	if n := buf.HorizontalSpan(0, 9, 0, 5, 5, 2, 11); n != 0 {
		t.Errorf("equal depth wrote %d pixels", n)
	}
	// Ramp crossing the stored depth wins only where it is greater.
	n := buf.HorizontalSpan(0, 9, 0, 0, 9, 3, 12)
	if n != 4 {
		t.Errorf("ramp wrote %d pixels, want 4", n)
	}
	for x := range 10 {
		wantColor, wantTri := uint8(1), 10
		if x >= 6 {
			wantColor, wantTri = 3, 12
		}
		if got := buf.Index(x, 0); got != wantColor {
			t.Errorf("x=%d color = %d, want %d", x, got, wantColor)
		}
		if got, _ := buf.TriangleAt(x, 0); got != wantTri {
			t.Errorf("x=%d owner = %d, want %d", x, got, wantTri)
		}
	}
}

func TestHorizontalSpanClippedDepth(t *testing.T) {
	buf := NewBuffer(5, 1, false)
	// Depth runs 0 at x=-5 to 10 at x=5; pixel x should get depth x+5.
	buf.HorizontalSpan(-5, 5, 0, 0, 10, 1, 0)
	for x := range 5 {
		if got, want := buf.Depth(x, 0), float64(x+5); math.Abs(got-want) > 1e-9 {
			t.Errorf("Depth(%d) = %v, want %v", x, got, want)
		}
	}
}

func TestTriangleAtWithoutPicking(t *testing.T) {
	buf := NewBuffer(4, 4, false)
	buf.HorizontalSpan(0, 3, 0, 1, 1, 1, 42)
	if buf.Picking() {
		t.Error("Picking() = true")
	}
	if _, ok := buf.TriangleAt(0, 0); ok {
		t.Error("TriangleAt succeeded without picking")
	}
}

func TestToImageAndPNG(t *testing.T) {
	buf := NewBuffer(6, 4, false)
	buf.HorizontalSpan(0, 5, 2, 1, 1, 8, 0)

	img := buf.ToImage()
	if img.Bounds().Dx() != 6 || img.Bounds().Dy() != 4 {
		t.Fatalf("image bounds = %v", img.Bounds())
	}
	if got := img.ColorIndexAt(3, 2); got != 8 {
		t.Errorf("ColorIndexAt = %d, want 8", got)
	}

	var out bytes.Buffer
	if err := buf.EncodePNG(&out, 3); err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}
	decoded, err := png.Decode(&out)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := decoded.Bounds(); b.Dx() != 18 || b.Dy() != 12 {
		t.Errorf("scaled bounds = %v, want 18x12", b)
	}
	r, g, bl, _ := decoded.At(10, 7).RGBA()
	want := DefaultPalette()[8]
	if uint8(r>>8) != want.R || uint8(g>>8) != want.G || uint8(bl>>8) != want.B {
		t.Errorf("scaled pixel = %d,%d,%d, want %v", r>>8, g>>8, bl>>8, want)
	}

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := buf.SavePNG(path, 1); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
}

func TestRGBA(t *testing.T) {
	buf := NewBuffer(2, 1, false)
	buf.Pixel(1, 0, 12)
	buf.Pixel(0, 0, 200)
	px := buf.RGBA()
	if px[1] != DefaultPalette()[12] {
		t.Errorf("RGBA()[1] = %v", px[1])
	}
	if px[0] != (DefaultPalette().Color(200)) || px[0].A != 0xff {
		t.Errorf("out of palette index = %v, want opaque black", px[0])
	}
}

func BenchmarkClearScreen(b *testing.B) {
	buf := NewBuffer(320, 240, true)
	for b.Loop() {
		buf.ClearScreen()
	}
}

func BenchmarkHorizontalSpan(b *testing.B) {
	buf := NewBuffer(320, 240, true)
	for b.Loop() {
		buf.ClearScreen()
		for y := range 240 {
			buf.HorizontalSpan(-10.5, 330.5, y, 0, 1, 7, y)
		}
	}
}
