// Package types provides the small float64 vector helpers used by the
// disk-plane geometry. The integrator works on raw [4]float64 state so
// these stay deliberately minimal.
package types

import "math"

// Define a 3 component vector.
type Vec3 [3]float64

func XYZ(x, y, z float64) Vec3 {
	return Vec3{x, y, z}
}

// Add a vector.
func (v Vec3) Add(v2 Vec3) Vec3 {
	return Vec3{v[0] + v2[0], v[1] + v2[1], v[2] + v2[2]}
}

// Subtract a vector.
func (v Vec3) Sub(v2 Vec3) Vec3 {
	return Vec3{v[0] - v2[0], v[1] - v2[1], v[2] - v2[2]}
}

// Multiply with a scalar.
func (v Vec3) Mul(s float64) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

// Calculate dot product of 2 vectors.
func (v Vec3) Dot(v2 Vec3) float64 {
	return v[0]*v2[0] + v[1]*v2[1] + v[2]*v2[2]
}

// Calculate cross product of 2 vectors.
func (v Vec3) Cross(v2 Vec3) Vec3 {
	return Vec3{
		v[1]*v2[2] - v[2]*v2[1],
		v[2]*v2[0] - v[0]*v2[2],
		v[0]*v2[1] - v[1]*v2[0],
	}
}

// Get vector length.
func (v Vec3) Len() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize vector.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l < 1e-15 {
		return Vec3{}
	}
	return v.Mul(1.0 / l)
}

// FromSpherical converts (r, theta, phi) coordinates to a cartesian
// position vector.
func FromSpherical(r, th, ph float64) Vec3 {
	st, ct := math.Sin(th), math.Cos(th)
	cp, sp := math.Cos(ph), math.Sin(ph)
	return Vec3{r * st * cp, r * st * sp, r * ct}
}
