/*package integrator moves galaxy stars. Velocities are a closed-form
tangential approximation computed once from the initial positions, and
positions at any frame are computed directly from the initial state.

Nothing here is an N-body integration: every star moves in a straight line
at a constant velocity and is clamped back onto the disc edge when it
leaves it.
*/
package integrator

import (
	"github.com/phil-mansfield/gogalaxy/geom"
)

const (
	// Stars closer than this to the z axis get zero velocity.
	CenterEps = 1e-6
	// Bulge stars rotate this many times as fast as arm stars.
	BulgeSpeedRatio = 0.2
)

// Tangential returns the velocity of a star at x moving counter-clockwise
// around the z axis with the given speed. The magnitude does not depend on
// radius.
func Tangential(x geom.Vec, speed float64) geom.Vec {
	rho := x.PlanarRadius()
	if rho <= CenterEps {
		return geom.Vec{}
	}
	return geom.Vec{-x[1] / rho * speed, x[0] / rho * speed, 0}
}

// Velocities writes the tangential velocity of every position in xs into
// out.
func Velocities(xs []geom.Vec, speed float64, out []geom.Vec) {
	if len(xs) != len(out) {
		panic("len(xs) != len(out)")
	}
	for i := range xs {
		out[i] = Tangential(xs[i], speed)
	}
}
