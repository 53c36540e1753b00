package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/phil-mansfield/gogalaxy/field"
	"github.com/phil-mansfield/gogalaxy/geom"
	"github.com/phil-mansfield/gogalaxy/io"
)

// Fraction of the frame which the projected bounding box may fill.
const fill = 0.95

// Splatter is a software Renderer. Light from every star is accumulated in
// linear RGB, weighted by alpha, and tone mapped into an sRGB image.
type Splatter struct {
	Width, Height int
	// Relative on-screen lengths of the x, y, and z axes of the bounds.
	Aspect     geom.Vec
	PointScale float64
	Exposure   float64
	Title      string
}

// NewSplatter creates a Splatter from a [Render] config section.
func NewSplatter(con *io.RenderConfig) *Splatter {
	return &Splatter{
		Width: con.Width, Height: con.Height,
		Aspect:     geom.Vec{con.AspectX, con.AspectY, con.AspectZ},
		PointScale: con.PointScale,
		Exposure:   con.Exposure,
		Title:      con.Title,
	}
}

// scale returns the number of pixels per unit of rotated box coordinates
// which fits the projected box inside the frame.
func (sp *Splatter) scale(cam Camera) float64 {
	view := geom.ViewMatrix(cam.Elevation, cam.Azimuth)
	xMax, yMax := 0.0, 0.0
	for c := 0; c < 8; c++ {
		corner := geom.Vec{}
		for k := 0; k < 3; k++ {
			corner[k] = sp.Aspect[k] / 2
			if c&(1<<uint(k)) != 0 {
				corner[k] = -corner[k]
			}
		}
		corner.Rotate(view)
		xMax = math.Max(xMax, math.Abs(corner[0]))
		yMax = math.Max(yMax, math.Abs(corner[1]))
	}

	sx := fill * float64(sp.Width) / 2 / xMax
	sy := fill * float64(sp.Height) / 2 / yMax
	return math.Min(sx, sy)
}

// Render implements Renderer.
func (sp *Splatter) Render(
	xs []geom.Vec, colors []field.Color, sizes []float64,
	cam Camera, b Bounds,
) (*Frame, error) {
	if len(colors) != len(xs) || len(sizes) != len(xs) {
		return nil, fmt.Errorf(
			"render: %d positions, %d colors, and %d sizes",
			len(xs), len(colors), len(sizes),
		)
	}
	for k := 0; k < 3; k++ {
		if !(b.Max[k] > b.Min[k]) {
			return nil, fmt.Errorf("render: empty bounds %v", b)
		}
	}

	view := geom.ViewMatrix(cam.Elevation, cam.Azimuth)
	scale := sp.scale(cam)
	xMid, yMid := float64(sp.Width)/2, float64(sp.Height)/2

	cv := newCanvas(sp.Width, sp.Height)
	for i := range xs {
		if !b.Contains(&xs[i]) {
			continue
		}

		u := geom.Vec{}
		for k := 0; k < 3; k++ {
			u[k] = ((xs[i][k]-b.Min[k])/(b.Max[k]-b.Min[k]) - 0.5) * sp.Aspect[k]
		}
		u.Rotate(view)
		px, py := xMid+u[0]*scale, yMid-u[1]*scale

		c := colors[i]
		r, g, bl := colorful.Color{R: c[0], G: c[1], B: c[2]}.LinearRgb()
		rad := sp.PointScale * math.Sqrt(sizes[i])
		cv.splat(px, py, rad, r*c[3], g*c[3], bl*c[3])
	}

	img := sp.toneMap(cv)
	if sp.Title != "" {
		drawTitle(img, sp.Title)
	}
	return &Frame{Image: img}, nil
}

// toneMap converts accumulated light into an sRGB image. Light saturates
// smoothly as 1 - exp(-Exposure * light) instead of clipping.
func (sp *Splatter) toneMap(cv *canvas) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, cv.width, cv.height))
	for j := 0; j < cv.height; j++ {
		for i := 0; i < cv.width; i++ {
			idx := 3 * (i + j*cv.width)
			lin := colorful.LinearRgb(
				1-math.Exp(-sp.Exposure*cv.rgb[idx]),
				1-math.Exp(-sp.Exposure*cv.rgb[idx+1]),
				1-math.Exp(-sp.Exposure*cv.rgb[idx+2]),
			)
			r, g, b := lin.Clamped().RGB255()
			img.SetRGBA(i, j, color.RGBA{r, g, b, 255})
		}
	}
	return img
}

// drawTitle writes a centered line of white text at the top of img.
func drawTitle(img *image.RGBA, title string) {
	face := basicfont.Face7x13
	width := font.MeasureString(face, title).Ceil()
	x := (img.Bounds().Dx() - width) / 2
	if x < 0 {
		x = 0
	}

	d := &font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: face,
		Dot:  fixed.P(x, face.Ascent+4),
	}
	d.DrawString(title)
}
