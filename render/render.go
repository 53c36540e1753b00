/*package render draws star fields into raster frames.

Stars are projected orthographically through a camera described by an
elevation and an azimuth, in the same way matplotlib's 3D axes do it, and
are splatted additively so that dense regions glow.
*/
package render

import (
	"image"

	"github.com/phil-mansfield/gogalaxy/field"
	"github.com/phil-mansfield/gogalaxy/geom"
)

// Camera gives the viewing direction in degrees.
type Camera struct {
	Elevation, Azimuth float64
}

// Bounds is the axis-aligned box which is drawn. Stars outside of it are
// skipped.
type Bounds struct {
	Min, Max geom.Vec
}

// DiskBounds returns the bounds of a disc of radius radiusMax whose z axis
// is zRatio times shorter than its x and y axes.
func DiskBounds(radiusMax, zRatio float64) Bounds {
	zMax := radiusMax * zRatio
	return Bounds{
		Min: geom.Vec{-radiusMax, -radiusMax, -zMax},
		Max: geom.Vec{radiusMax, radiusMax, zMax},
	}
}

// Contains returns true if x is inside b. The boundary is inside.
func (b *Bounds) Contains(x *geom.Vec) bool {
	for k := 0; k < 3; k++ {
		if x[k] < b.Min[k] || x[k] > b.Max[k] {
			return false
		}
	}
	return true
}

// Frame is a single rendered image of an animation.
type Frame struct {
	Index int
	Image *image.RGBA
}

// Renderer draws a set of stars. xs, colors and sizes are index-aligned.
type Renderer interface {
	Render(
		xs []geom.Vec, colors []field.Color, sizes []float64,
		cam Camera, b Bounds,
	) (*Frame, error)
}
