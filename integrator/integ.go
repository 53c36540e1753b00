package integrator

import (
	"math"

	"github.com/phil-mansfield/gogalaxy/geom"
)

// Advect returns the position of a star which started at x and has moved at
// velocity v for t frames of length dt.
func Advect(x, v geom.Vec, dt float64, t int) geom.Vec {
	ft := float64(t)
	return geom.Vec{
		x[0] + v[0]*dt*ft,
		x[1] + v[1]*dt*ft,
		x[2] + v[2]*dt*ft,
	}
}

// Wrap moves x back onto the circle of radius radiusMax along the same
// angle if its planar radius is strictly larger than radiusMax. z is never
// changed. Wrap returns true if x was moved.
func Wrap(x *geom.Vec, radiusMax float64) bool {
	r := math.Sqrt(x[0]*x[0] + x[1]*x[1])
	if r > radiusMax {
		scale := radiusMax / r
		x[0] *= scale
		x[1] *= scale
		return true
	}
	return false
}

// PositionsAt writes the positions of every star at frame t into out and
// returns the number of stars which were wrapped. xs and vs are the initial
// positions and velocities and are never modified.
func PositionsAt(
	xs, vs []geom.Vec, dt float64, t int, radiusMax float64, out []geom.Vec,
) (wrapped int) {
	if len(xs) != len(vs) || len(xs) != len(out) {
		panic("len(xs), len(vs), and len(out) must be equal.")
	}

	for i := range xs {
		out[i] = Advect(xs[i], vs[i], dt, t)
		if Wrap(&out[i], radiusMax) {
			wrapped++
		}
	}
	return wrapped
}
