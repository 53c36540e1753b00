/*package geom contains the vector and rotation routines used to place stars
and to look at them.
*/
package geom

import (
	"math"
)

// Vec is a three dimensional vector.
type Vec [3]float64

// Add returns v + u.
func (v Vec) Add(u Vec) Vec {
	return Vec{v[0] + u[0], v[1] + u[1], v[2] + u[2]}
}

// Sub returns v - u.
func (v Vec) Sub(u Vec) Vec {
	return Vec{v[0] - u[0], v[1] - u[1], v[2] - u[2]}
}

// Scale returns k * v.
func (v Vec) Scale(k float64) Vec {
	return Vec{v[0] * k, v[1] * k, v[2] * k}
}

// Dot computes the inner product of v and u.
func (v Vec) Dot(u Vec) float64 {
	return v[0]*u[0] + v[1]*u[1] + v[2]*u[2]
}

// Norm returns the length of v.
func (v Vec) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// PlanarRadius returns the distance of v from the z axis.
func (v Vec) PlanarRadius() float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1])
}

// AddScaledAt writes v + k*u into out. out may point to v.
func (v *Vec) AddScaledAt(u *Vec, k float64, out *Vec) {
	out[0] = v[0] + u[0]*k
	out[1] = v[1] + u[1]*k
	out[2] = v[2] + u[2]*k
}

// Spherical converts the spherical coordinates (r, theta, phi) to a Cartesian
// vector. theta is the azimuthal angle and phi is the polar angle.
func Spherical(r, theta, phi float64) Vec {
	sinPhi := math.Sin(phi)
	return Vec{
		r * sinPhi * math.Cos(theta),
		r * sinPhi * math.Sin(theta),
		r * math.Cos(phi),
	}
}
