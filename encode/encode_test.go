package encode

import (
	"errors"
	"image"
	"image/color"
	"image/gif"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phil-mansfield/gogalaxy/render"
)

func testFrames(n, w, h int) []*render.Frame {
	frames := make([]*render.Frame, n)
	for i := range frames {
		img := image.NewRGBA(image.Rect(0, 0, w, h))
		img.SetRGBA(i%w, h/2, color.RGBA{0, 0, 255, 255})
		frames[i] = &render.Frame{Index: i, Image: img}
	}
	return frames
}

func TestNew(t *testing.T) {
	enc, err := New("ffmpeg", "out.mp4")
	require.NoError(t, err)
	assert.IsType(t, &FFmpeg{}, enc)

	enc, err = New("gif", "out.gif")
	require.NoError(t, err)
	assert.IsType(t, &GIF{}, enc)

	enc, err = New("none", "")
	require.NoError(t, err)
	assert.Nil(t, enc)

	_, err = New("avi", "out.avi")
	assert.Error(t, err)
}

func TestGIF(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "galaxy.gif")
	enc := &GIF{Output: fname}

	out, err := enc.Encode(testFrames(3, 16, 8), 20, 1800)
	require.NoError(t, err)
	assert.Equal(t, fname, out)

	f, err := os.Open(fname)
	require.NoError(t, err)
	defer f.Close()
	anim, err := gif.DecodeAll(f)
	require.NoError(t, err)

	assert.Len(t, anim.Image, 3)
	assert.Equal(t, []int{5, 5, 5}, anim.Delay)
	assert.Equal(t, 16, anim.Image[0].Bounds().Dx())
}

func TestGIFDelay(t *testing.T) {
	table := []struct{ fps, delay int }{
		{20, 5}, {10, 10}, {30, 3}, {1, 100}, {1000, 1},
	}
	for i, test := range table {
		assert.Equal(t, test.delay, gifDelay(test.fps), "%d)", i+1)
	}
}

func TestEncodeErrors(t *testing.T) {
	dir := t.TempDir()
	table := []struct {
		enc    Encoder
		frames []*render.Frame
	}{
		{&GIF{Output: filepath.Join(dir, "a.gif")}, nil},
		{&GIF{Output: filepath.Join(dir, "missing", "a.gif")}, testFrames(1, 4, 4)},
		{&GIF{Output: filepath.Join(dir, "b.gif")},
			append(testFrames(1, 4, 4), testFrames(1, 8, 4)...)},
		{&FFmpeg{Output: filepath.Join(dir, "a.mp4"), Binary: "gogalaxy-no-such-ffmpeg"},
			testFrames(2, 4, 4)},
		{&FFmpeg{Output: filepath.Join(dir, "b.mp4"), Binary: "ffmpeg"}, nil},
	}

	for i, test := range table {
		_, err := test.enc.Encode(test.frames, 20, 1800)
		var eerr *EncodeError
		assert.True(t, errors.As(err, &eerr), "%d) %v", i+1, err)
	}
}

func TestFFmpegArgs(t *testing.T) {
	args := ffmpegArgs(1500, 600, 20, 1800, "out.mp4")
	assert.Contains(t, args, "1500x600")
	assert.Contains(t, args, "1800k")
	assert.Contains(t, args, "20")
	assert.Equal(t, "out.mp4", args[len(args)-1])
}
