package anim

import (
	"bytes"
	"errors"
	"image"
	"log"
	"math"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phil-mansfield/gogalaxy/field"
	"github.com/phil-mansfield/gogalaxy/geom"
	"github.com/phil-mansfield/gogalaxy/io"
	"github.com/phil-mansfield/gogalaxy/render"
)

// fakeRenderer records what it was asked to draw instead of drawing it.
type fakeRenderer struct {
	mu     sync.Mutex
	calls  int
	cams   map[float64]render.Camera
	maxR   float64
	failAt int
}

func (r *fakeRenderer) Render(
	xs []geom.Vec, colors []field.Color, sizes []float64,
	cam render.Camera, b render.Bounds,
) (*render.Frame, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.failAt > 0 && r.calls == r.failAt {
		return nil, errors.New("out of ink")
	}
	if len(xs) != len(colors) || len(xs) != len(sizes) {
		panic("misaligned scene")
	}
	for i := range xs {
		r.maxR = math.Max(r.maxR, xs[i].PlanarRadius())
	}
	// Stash the camera by azimuth so tests can see it.
	if r.cams == nil {
		r.cams = map[float64]render.Camera{}
	}
	r.cams[cam.Azimuth] = cam
	return &render.Frame{Index: -1, Image: image.NewRGBA(image.Rect(0, 0, 2, 2))}, nil
}

type fakeEncoder struct {
	frames []*render.Frame
	err    error
}

func (enc *fakeEncoder) Encode(
	frames []*render.Frame, fps, bitrate int,
) (string, error) {
	enc.frames = frames
	if enc.err != nil {
		return "", enc.err
	}
	return "galaxy.gif", nil
}

type fakeDisplay struct {
	shown int
	err   error
}

func (disp *fakeDisplay) Show(frames []*render.Frame, fps int) error {
	disp.shown = len(frames)
	return disp.err
}

func testDriver(t *testing.T, frames, workers int) (*Driver, *fakeRenderer) {
	wrap := io.DefaultWrapper()
	wrap.Galaxy.Arms, wrap.Galaxy.ArmStars, wrap.Galaxy.BulgeStars = 2, 500, 100
	// Large enough that stars wrap within a few frames.
	wrap.Animation.TimeStep = 5e-4
	wrap.Animation.Frames = frames
	wrap.Animation.Workers = workers
	wrap.Animation.Encoder, wrap.Animation.Display = "none", "none"
	require.NoError(t, wrap.CheckInit())

	f, err := field.Generate(&wrap.Galaxy)
	require.NoError(t, err)

	r := &fakeRenderer{}
	return NewDriver(f, &wrap.Animation, &wrap.Render, r, nil), r
}

func TestSceneIsPure(t *testing.T) {
	d, _ := testDriver(t, 12, 1)

	s1 := d.Scene(7)
	d.Scene(3)
	s2 := d.Scene(7)
	assert.Equal(t, s1.Xs, s2.Xs)
	assert.Equal(t, s1.Camera, s2.Camera)
	assert.Equal(t, 7, s1.T)

	s0 := d.Scene(0)
	assert.Equal(t, d.f.Xs, s0.Xs)
	assert.Equal(t, 0, s0.Wrapped)

	// Fresh buffers each call.
	s1.Xs[0] = geom.Vec{100, 100, 100}
	assert.NotEqual(t, s1.Xs[0], d.Scene(7).Xs[0])
}

func TestSceneBounded(t *testing.T) {
	d, _ := testDriver(t, 40, 1)
	for _, frame := range []int{1, 10, 39} {
		s := d.Scene(frame)
		for i := range s.Xs {
			require.LessOrEqual(t, s.Xs[i].PlanarRadius(), d.f.RadiusMax+1e-12)
			// z is never touched.
			require.InDelta(t, d.f.Xs[i][2], s.Xs[i][2], 1e-12)
		}
	}
	assert.Greater(t, d.Scene(39).Wrapped, 0)
}

func TestCamera(t *testing.T) {
	d, _ := testDriver(t, 10, 1)
	d.con.AzimuthRate = 2

	cam := d.Camera(5)
	assert.Equal(t, 20.0, cam.Elevation)
	assert.Equal(t, 70.0, cam.Azimuth)

	d.path = &io.CameraPath{
		Frames:     []float64{0, 10},
		Elevations: []float64{0, 90},
		Azimuths:   []float64{0, 180},
	}
	require.NoError(t, d.path.CheckInit())
	cam = d.Camera(5)
	assert.InDelta(t, 45, cam.Elevation, 1e-12)
	assert.InDelta(t, 90, cam.Azimuth, 1e-12)
}

func TestFramesOrdered(t *testing.T) {
	for _, workers := range []int{1, 3, 8} {
		d, r := testDriver(t, 11, workers)
		d.con.AzimuthRate = 1

		frames, err := d.Frames()
		require.NoError(t, err)
		require.Len(t, frames, 11)
		for i, frame := range frames {
			require.NotNil(t, frame, "workers = %d", workers)
			assert.Equal(t, i, frame.Index, "workers = %d", workers)
		}
		assert.Equal(t, 11, r.calls)
		assert.Len(t, r.cams, 11)
		assert.LessOrEqual(t, r.maxR, d.f.RadiusMax+1e-12)
	}
}

func TestWorkers(t *testing.T) {
	d, _ := testDriver(t, 4, 16)
	assert.Equal(t, 4, d.Workers())
	d, _ = testDriver(t, 4, 2)
	assert.Equal(t, 2, d.Workers())
	d, _ = testDriver(t, 40, 0)
	assert.GreaterOrEqual(t, d.Workers(), 1)
}

func TestFramesError(t *testing.T) {
	d, r := testDriver(t, 5, 1)
	r.failAt = 3
	_, err := d.Frames()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "frame 2")
}

func TestAxisRange(t *testing.T) {
	xs := []geom.Vec{{1, -2, 0.5}, {-3, 4, 0}, {0, 0, -1}}
	min, max := AxisRange(xs)
	assert.Equal(t, geom.Vec{-3, -2, -1}, min)
	assert.Equal(t, geom.Vec{1, 4, 0.5}, max)

	min, max = AxisRange(nil)
	assert.Equal(t, geom.Vec{}, min)
	assert.Equal(t, geom.Vec{}, max)
}

func TestRun(t *testing.T) {
	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	defer log.SetOutput(os.Stderr)

	d, _ := testDriver(t, 21, 2)
	enc, disp := &fakeEncoder{}, &fakeDisplay{}
	require.NoError(t, d.Run(enc, disp))
	assert.Len(t, enc.frames, 21)
	assert.Equal(t, 21, disp.shown)
	assert.Contains(t, buf.String(), "Frame 0:")
	assert.Contains(t, buf.String(), "Frame 10:")
	assert.Contains(t, buf.String(), "Frame 20:")
	assert.NotContains(t, buf.String(), "Frame 5:")

	// Encoder and display failures aren't fatal.
	buf.Reset()
	d, _ = testDriver(t, 3, 1)
	enc = &fakeEncoder{err: errors.New("no ffmpeg")}
	disp = &fakeDisplay{err: errors.New("no display")}
	assert.NoError(t, d.Run(enc, disp))
	assert.Equal(t, 3, disp.shown)
	assert.Contains(t, buf.String(), "no ffmpeg")
	assert.Contains(t, buf.String(), "no display")

	// The saved file is mentioned when only the display fails.
	buf.Reset()
	d, _ = testDriver(t, 3, 1)
	assert.NoError(t, d.Run(&fakeEncoder{}, disp))
	assert.Contains(t, buf.String(), "galaxy.gif")

	d, _ = testDriver(t, 3, 1)
	assert.NoError(t, d.Run(nil, nil))

	d, r := testDriver(t, 3, 1)
	r.failAt = 1
	assert.Error(t, d.Run(nil, nil))
}
