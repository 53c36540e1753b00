package geom

import (
	"math"

	"github.com/phil-mansfield/gogalaxy/mat"
)

// RotationX returns the matrix which rotates vectors counter-clockwise by
// the angle a (in radians) around the x axis.
func RotationX(a float64) *mat.Matrix {
	c, s := math.Cos(a), math.Sin(a)
	return mat.NewMatrix([]float64{
		1, 0, 0,
		0, c, -s,
		0, s, c,
	}, 3, 3)
}

// RotationZ returns the matrix which rotates vectors counter-clockwise by
// the angle a (in radians) around the z axis.
func RotationZ(a float64) *mat.Matrix {
	c, s := math.Cos(a), math.Sin(a)
	return mat.NewMatrix([]float64{
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	}, 3, 3)
}

// ViewMatrix returns the rotation taking world coordinates to view
// coordinates for a camera at the given elevation and azimuth (in degrees).
// This is the same convention as matplotlib's view_init: after rotation, x
// points right on the screen, y points up, and z points towards the viewer.
func ViewMatrix(elev, azim float64) *mat.Matrix {
	el, az := elev*math.Pi/180, azim*math.Pi/180
	return RotationX(el - math.Pi/2).Mult(RotationZ(-(az + math.Pi/2)))
}

// Rotate rotates a vector by the given rotation matrix.
func (v *Vec) Rotate(m *mat.Matrix) {
	v0 := m.Vals[0]*v[0] + m.Vals[1]*v[1] + m.Vals[2]*v[2]
	v1 := m.Vals[3]*v[0] + m.Vals[4]*v[1] + m.Vals[5]*v[2]
	v2 := m.Vals[6]*v[0] + m.Vals[7]*v[1] + m.Vals[8]*v[2]
	v[0], v[1], v[2] = v0, v1, v2
}
