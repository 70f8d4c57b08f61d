package math3d

import (
	"math"
	"testing"
)

func vecNear(a, b Vec3) bool {
	const eps = 1e-9
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps && math.Abs(a.Z-b.Z) < eps
}

func TestAffineTransformPoint(t *testing.T) {
	tests := []struct {
		name string
		xf   Affine
		in   Vec3
		want Vec3
	}{
		{"identity", IdentityAffine(), V3(1, 2, 3), V3(1, 2, 3)},
		{"translation", FromTranslation(V3(10, -5, 2)), V3(1, 2, 3), V3(11, -3, 5)},
		{"scale", FromScale(V3(2, 3, 4)), V3(1, 1, 1), V3(2, 3, 4)},
		{"rotate x quarter", FromRotationX(math.Pi / 2), V3(0, 1, 0), V3(0, 0, 1)},
		{"rotate y quarter", FromRotationY(math.Pi / 2), V3(0, 0, 1), V3(1, 0, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.xf.TransformPoint(tc.in)
			if !vecNear(got, tc.want) {
				t.Errorf("TransformPoint(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestAffineMulOrder(t *testing.T) {
	// Scale first, then translate.
	xf := FromTranslation(V3(5, 0, 0)).Mul(FromScale(Splat3(2)))
	got := xf.TransformPoint(V3(1, 1, 1))
	if !vecNear(got, V3(7, 2, 2)) {
		t.Errorf("T*S applied to (1,1,1) = %v, want (7,2,2)", got)
	}

	// Translate first, then scale.
	xf = FromScale(Splat3(2)).Mul(FromTranslation(V3(5, 0, 0)))
	got = xf.TransformPoint(V3(1, 1, 1))
	if !vecNear(got, V3(12, 2, 2)) {
		t.Errorf("S*T applied to (1,1,1) = %v, want (12,2,2)", got)
	}
}

func TestVec3IsFinite(t *testing.T) {
	tests := []struct {
		v    Vec3
		want bool
	}{
		{V3(1, 2, 3), true},
		{V3(math.NaN(), 0, 0), false},
		{V3(0, math.Inf(1), 0), false},
		{V3(0, 0, math.Inf(-1)), false},
	}
	for _, tc := range tests {
		if got := tc.v.IsFinite(); got != tc.want {
			t.Errorf("%v.IsFinite() = %v, want %v", tc.v, got, tc.want)
		}
	}
}

func TestVec3CrossNormalize(t *testing.T) {
	n := V3(1, 0, 0).Cross(V3(0, 1, 0))
	if !vecNear(n, V3(0, 0, 1)) {
		t.Errorf("x cross y = %v, want z", n)
	}
	if got := V3(0, 0, 0).Normalize(); got != (Vec3{}) {
		t.Errorf("zero.Normalize() = %v, want zero", got)
	}
	if got := V3(3, 4, 0).Normalize().Len(); math.Abs(got-1) > 1e-12 {
		t.Errorf("normalized length = %v, want 1", got)
	}
}
