package math3d

import "math"

// Mat3 is a 3x3 matrix stored in column-major order.
//
// Memory layout (indices):
// | 0  3  6 |
// | 1  4  7 |
// | 2  5  8 |
type Mat3 [9]float64

// Identity3 returns the identity matrix.
func Identity3() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// Mul multiplies two matrices: a * b.
//
//nolint:st1016 // a*b naming convention is clearer for matrix multiplication
func (a Mat3) Mul(b Mat3) Mat3 {
	var m Mat3
	for col := range 3 {
		for row := range 3 {
			var sum float64
			for k := range 3 {
				sum += a[row+k*3] * b[k+col*3]
			}
			m[row+col*3] = sum
		}
	}
	return m
}

// MulVec3 returns m * v.
func (m Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[3]*v.Y + m[6]*v.Z,
		m[1]*v.X + m[4]*v.Y + m[7]*v.Z,
		m[2]*v.X + m[5]*v.Y + m[8]*v.Z,
	}
}

// Affine is a 3D affine transform: a linear part (rotation/scale/shear)
// followed by a translation. It is the only transform the rasterizer
// accepts; there is no projective row.
type Affine struct {
	Linear      Mat3
	Translation Vec3
}

// IdentityAffine returns the transform that leaves every point in place.
func IdentityAffine() Affine {
	return Affine{Linear: Identity3()}
}

// FromTranslation creates a pure translation.
func FromTranslation(v Vec3) Affine {
	return Affine{Linear: Identity3(), Translation: v}
}

// FromScale creates a per-axis scale.
func FromScale(v Vec3) Affine {
	return Affine{Linear: Mat3{
		v.X, 0, 0,
		0, v.Y, 0,
		0, 0, v.Z,
	}}
}

// FromRotationX creates a rotation around the X axis.
func FromRotationX(angle float64) Affine {
	c, s := math.Cos(angle), math.Sin(angle)
	return Affine{Linear: Mat3{
		1, 0, 0,
		0, c, s,
		0, -s, c,
	}}
}

// FromRotationY creates a rotation around the Y axis.
func FromRotationY(angle float64) Affine {
	c, s := math.Cos(angle), math.Sin(angle)
	return Affine{Linear: Mat3{
		c, 0, -s,
		0, 1, 0,
		s, 0, c,
	}}
}

// Mul composes two transforms. The result applies b first, then a.
//
//nolint:st1016 // a*b naming convention is clearer for matrix multiplication
func (a Affine) Mul(b Affine) Affine {
	return Affine{
		Linear:      a.Linear.Mul(b.Linear),
		Translation: a.Linear.MulVec3(b.Translation).Add(a.Translation),
	}
}

// TransformPoint applies the full transform to a point.
func (a Affine) TransformPoint(v Vec3) Vec3 {
	return a.Linear.MulVec3(v).Add(a.Translation)
}
