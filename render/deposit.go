package render

import (
	"math"
)

// canvas accumulates linear RGB light. Pixel (i, j) covers
// [i, i+1) x [j, j+1), so its center is at (i + 0.5, j + 0.5).
type canvas struct {
	width, height int
	rgb           []float64
}

func newCanvas(width, height int) *canvas {
	return &canvas{width, height, make([]float64, 3*width*height)}
}

func (c *canvas) incr(i, j int, r, g, b float64) {
	if i < 0 || j < 0 || i >= c.width || j >= c.height {
		return
	}
	idx := 3 * (i + j*c.width)
	c.rgb[idx] += r
	c.rgb[idx+1] += g
	c.rgb[idx+2] += b
}

// splat deposits a star of the given pixel radius and color at (x, y). The
// total light deposited is proportional to the star's area. Stars smaller
// than a pixel are deposited with a cloud in cell scheme and larger ones are
// drawn as discs with antialiased edges.
func (c *canvas) splat(x, y, rad, r, g, b float64) {
	area := math.Pi * rad * rad
	if rad < 1 {
		c.cic(x, y, r*area, g*area, b*area)
	} else {
		c.disc(x, y, rad, r, g, b)
	}
}

func (c *canvas) cic(x, y, r, g, b float64) {
	xp, yp := x-0.5, y-0.5
	xc, yc := math.Floor(xp), math.Floor(yp)
	dx, dy := xp-xc, yp-yc
	tx, ty := 1-dx, 1-dy
	i0, j0 := int(xc), int(yc)

	over00, over10 := tx*ty, dx*ty
	over01, over11 := tx*dy, dx*dy

	c.incr(i0, j0, r*over00, g*over00, b*over00)
	c.incr(i0+1, j0, r*over10, g*over10, b*over10)
	c.incr(i0, j0+1, r*over01, g*over01, b*over01)
	c.incr(i0+1, j0+1, r*over11, g*over11, b*over11)
}

func (c *canvas) disc(x, y, rad, r, g, b float64) {
	iLow, iHigh := int(math.Floor(x-rad)), int(math.Ceil(x+rad))
	jLow, jHigh := int(math.Floor(y-rad)), int(math.Ceil(y+rad))
	for j := jLow; j <= jHigh; j++ {
		dy := float64(j) + 0.5 - y
		for i := iLow; i <= iHigh; i++ {
			dx := float64(i) + 0.5 - x
			cover := rad + 0.5 - math.Sqrt(dx*dx+dy*dy)
			if cover <= 0 {
				continue
			} else if cover > 1 {
				cover = 1
			}
			c.incr(i, j, r*cover, g*cover, b*cover)
		}
	}
}
