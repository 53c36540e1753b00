/*package anim drives the time evolution of a star field and turns it into a
sequence of frames, which are then handed to an encoder and a display.
*/
package anim

import (
	"fmt"
	"log"
	"runtime"

	"gonum.org/v1/gonum/floats"

	"github.com/phil-mansfield/gogalaxy/display"
	"github.com/phil-mansfield/gogalaxy/encode"
	"github.com/phil-mansfield/gogalaxy/field"
	"github.com/phil-mansfield/gogalaxy/geom"
	"github.com/phil-mansfield/gogalaxy/integrator"
	"github.com/phil-mansfield/gogalaxy/io"
	"github.com/phil-mansfield/gogalaxy/render"
)

// LogInterval is the number of frames between progress messages.
const LogInterval = 10

// Scene is everything needed to draw a single frame. Colors and Sizes are
// shared with the field and must not be modified.
type Scene struct {
	T       int
	Xs      []geom.Vec
	Colors  []field.Color
	Sizes   []float64
	Camera  render.Camera
	Wrapped int
}

// Driver renders the frames of an animation.
type Driver struct {
	f      *field.Field
	con    *io.AnimationConfig
	r      render.Renderer
	path   *io.CameraPath
	bounds render.Bounds

	workers int
	// Per-worker position buffers.
	bufs [][]geom.Vec
	errs []error
}

// NewDriver creates a Driver for the field f. path may be nil, in which case
// the camera orbits at the rate given by con.
func NewDriver(
	f *field.Field, con *io.AnimationConfig, rcon *io.RenderConfig,
	r render.Renderer, path *io.CameraPath,
) *Driver {
	d := &Driver{
		f: f, con: con, r: r, path: path,
		bounds: render.DiskBounds(f.RadiusMax, rcon.ZLimitRatio),
	}

	d.workers = con.Workers
	if d.workers == 0 {
		d.workers = runtime.GOMAXPROCS(0)
	}
	if d.workers > con.Frames {
		d.workers = con.Frames
	}
	if d.workers < 1 {
		d.workers = 1
	}

	d.bufs = make([][]geom.Vec, d.workers)
	d.errs = make([]error, d.workers)
	return d
}

// Workers returns the number of frames rendered concurrently.
func (d *Driver) Workers() int { return d.workers }

// Camera returns the camera used for frame t.
func (d *Driver) Camera(t int) render.Camera {
	if d.path != nil {
		elev, azim := d.path.At(float64(t))
		return render.Camera{Elevation: elev, Azimuth: azim}
	}
	return render.Camera{
		Elevation: d.con.Elevation,
		Azimuth:   d.con.Azimuth + d.con.AzimuthRate*float64(t),
	}
}

// Scene returns the scene at frame t. The positions are freshly allocated
// and only depend on t.
func (d *Driver) Scene(t int) *Scene {
	return d.sceneInto(t, make([]geom.Vec, d.f.Len()))
}

func (d *Driver) sceneInto(t int, xs []geom.Vec) *Scene {
	wrapped := integrator.PositionsAt(
		d.f.Xs, d.f.Vs, d.con.TimeStep, t, d.f.RadiusMax, xs,
	)
	return &Scene{
		T: t, Xs: xs, Colors: d.f.Colors, Sizes: d.f.Sizes,
		Camera: d.Camera(t), Wrapped: wrapped,
	}
}

func (d *Driver) renderScene(s *Scene) (*render.Frame, error) {
	frame, err := d.r.Render(s.Xs, s.Colors, s.Sizes, s.Camera, d.bounds)
	if err != nil {
		return nil, fmt.Errorf("frame %d: %w", s.T, err)
	}
	frame.Index = s.T
	return frame, nil
}

// Frames renders every frame of the animation in order.
func (d *Driver) Frames() ([]*render.Frame, error) {
	frames := make([]*render.Frame, d.con.Frames)
	out := make(chan int, d.workers)

	for id := 0; id < d.workers-1; id++ {
		go d.chanRender(id, frames, out)
	}
	d.chanRender(d.workers-1, frames, out)

	for i := 0; i < d.workers; i++ {
		<-out
	}

	for id := range d.errs {
		if d.errs[id] != nil {
			return nil, d.errs[id]
		}
	}
	return frames, nil
}

// chanRender renders every frame t with t % workers == id.
func (d *Driver) chanRender(id int, frames []*render.Frame, out chan<- int) {
	d.errs[id] = nil
	if d.bufs[id] == nil {
		d.bufs[id] = make([]geom.Vec, d.f.Len())
	}

	for t := id; t < len(frames); t += d.workers {
		s := d.sceneInto(t, d.bufs[id])
		if t%LogInterval == 0 {
			logScene(s)
		}

		frame, err := d.renderScene(s)
		if err != nil {
			d.errs[id] = err
			break
		}
		frames[t] = frame
	}

	out <- id
}

// AxisRange returns the minimum and maximum of each coordinate of xs.
func AxisRange(xs []geom.Vec) (min, max geom.Vec) {
	if len(xs) == 0 {
		return min, max
	}
	comp := make([]float64, len(xs))
	for k := 0; k < 3; k++ {
		for i := range xs {
			comp[i] = xs[i][k]
		}
		min[k], max[k] = floats.Min(comp), floats.Max(comp)
	}
	return min, max
}

func logScene(s *Scene) {
	min, max := AxisRange(s.Xs)
	log.Printf(
		"Frame %d: x [%.3f, %.3f], y [%.3f, %.3f], z [%.3f, %.3f], "+
			"%d wrapped",
		s.T, min[0], max[0], min[1], max[1], min[2], max[2], s.Wrapped,
	)
}

// Run renders the animation, encodes it with enc and shows it with disp.
// Either of enc and disp may be nil. Encoding and display failures are
// logged rather than returned, since the frames themselves were produced
// successfully.
func (d *Driver) Run(enc encode.Encoder, disp display.Display) error {
	log.Printf(
		"Rendering %d frames of %d stars with %d workers.",
		d.con.Frames, d.f.Len(), d.workers,
	)
	frames, err := d.Frames()
	if err != nil {
		return err
	}

	written := ""
	if enc != nil {
		written, err = enc.Encode(frames, d.con.FPS, d.con.Bitrate)
		if err != nil {
			log.Printf("Could not encode animation: %s", err)
		} else {
			log.Printf("Animation written to %s.", written)
		}
	}

	if disp != nil {
		if err := disp.Show(frames, d.con.FPS); err != nil {
			if written != "" {
				log.Printf(
					"Could not display animation (%s). It was saved to %s.",
					err, written,
				)
			} else {
				log.Printf("Could not display animation: %s", err)
			}
		}
	}

	return nil
}
