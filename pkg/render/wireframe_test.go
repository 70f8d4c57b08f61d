package render

import (
	"math"
	"slices"
	"testing"

	"github.com/taigrr/pyx/pkg/math3d"
)

func TestLine(t *testing.T) {
	tests := []struct {
		name   string
		p0, p1 math3d.Vec2
		want   [][2]int
	}{
		{"horizontal", math3d.V2(1, 2), math3d.V2(4, 2), [][2]int{{1, 2}, {2, 2}, {3, 2}, {4, 2}}},
		{"vertical", math3d.V2(3, 0), math3d.V2(3, 2), [][2]int{{3, 0}, {3, 1}, {3, 2}}},
		{"diagonal", math3d.V2(0, 0), math3d.V2(2, 2), [][2]int{{0, 0}, {1, 1}, {2, 2}}},
		{"clipped", math3d.V2(-10, 1), math3d.V2(1, 1), [][2]int{{0, 1}, {1, 1}}},
		{"outside", math3d.V2(-10, -10), math3d.V2(-1, -5), nil},
		{"far away", math3d.V2(-1e12, 3), math3d.V2(1e12, 3), [][2]int{{0, 3}, {1, 3}, {2, 3}, {3, 3}, {4, 3}, {5, 3}}},
		{"nan", math3d.V2(math.NaN(), 0), math3d.V2(3, 3), nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			buf := NewBuffer(6, 6, false)
			buf.Line(tc.p0, tc.p1, 1)
			var got [][2]int
			for y := range 6 {
				for x := range 6 {
					if buf.Index(x, y) == 1 {
						got = append(got, [2]int{x, y})
					}
				}
			}
			slices.SortFunc(got, func(a, b [2]int) int {
				if a[0] != b[0] {
					return a[0] - b[0]
				}
				return a[1] - b[1]
			})
			if !slices.Equal(got, tc.want) {
				t.Errorf("pixels = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDrawOutline(t *testing.T) {
	buf := NewBuffer(10, 10, false)
	tri := NewTri(math3d.V3(0, 0, 0), math3d.V3(9, 0, 0), math3d.V3(0, 9, 0), Material{}, DefaultLighting())
	tri.DrawOutline(buf, 4)

	for _, p := range [][2]int{{0, 0}, {9, 0}, {0, 9}, {5, 0}, {0, 5}, {4, 5}} {
		if buf.Index(p[0], p[1]) != 4 {
			t.Errorf("edge pixel %v not drawn", p)
		}
	}
	if buf.Index(2, 2) != 0 {
		t.Error("outline filled the interior")
	}
}
