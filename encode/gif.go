package encode

import (
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"os"

	"github.com/phil-mansfield/gogalaxy/render"
)

// GIF writes an animated GIF using the Plan9 palette with Floyd-Steinberg
// dithering. The bitrate is ignored.
type GIF struct {
	Output string
}

// Encode implements Encoder.
func (enc *GIF) Encode(
	frames []*render.Frame, fps, bitrate int,
) (string, error) {
	if err := checkFrames(frames); err != nil {
		return "", &EncodeError{"gif", err}
	}

	anim := &gif.GIF{LoopCount: 0}
	delay := gifDelay(fps)
	for _, f := range frames {
		b := f.Image.Bounds()
		pal := image.NewPaletted(b, palette.Plan9)
		draw.FloydSteinberg.Draw(pal, b, f.Image, b.Min)
		anim.Image = append(anim.Image, pal)
		anim.Delay = append(anim.Delay, delay)
	}

	out, err := os.Create(enc.Output)
	if err != nil {
		return "", &EncodeError{"gif", err}
	}
	if err = gif.EncodeAll(out, anim); err != nil {
		out.Close()
		return "", &EncodeError{"gif", err}
	}
	if err = out.Close(); err != nil {
		return "", &EncodeError{"gif", err}
	}
	return enc.Output, nil
}

// gifDelay converts a frame rate to a GIF frame delay in 100ths of a second.
func gifDelay(fps int) int {
	delay := (100 + fps/2) / fps
	if delay < 1 {
		return 1
	}
	return delay
}
