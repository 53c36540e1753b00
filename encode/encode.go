/*package encode turns a sequence of rendered frames into an animation file.
*/
package encode

import (
	"fmt"

	"github.com/phil-mansfield/gogalaxy/render"
)

// Encoder writes frames, in order, to an animation file and returns the
// name of that file.
type Encoder interface {
	Encode(frames []*render.Frame, fps, bitrate int) (string, error)
}

// EncodeError is the error type returned by every Encoder.
type EncodeError struct {
	Encoder string
	Err     error
}

func (err *EncodeError) Error() string {
	return fmt.Sprintf("%s encoder: %s", err.Encoder, err.Err.Error())
}

func (err *EncodeError) Unwrap() error { return err.Err }

// New returns the Encoder with the given name, which must be one of
// "ffmpeg", "gif", or "none". nil is returned for "none".
func New(kind, output string) (Encoder, error) {
	switch kind {
	case "ffmpeg":
		return &FFmpeg{Output: output, Binary: "ffmpeg"}, nil
	case "gif":
		return &GIF{Output: output}, nil
	case "none":
		return nil, nil
	}
	return nil, fmt.Errorf("Unrecognized encoder '%s'.", kind)
}

// checkFrames returns an error if frames is empty or if the frames have
// different sizes.
func checkFrames(frames []*render.Frame) error {
	if len(frames) == 0 {
		return fmt.Errorf("no frames to encode")
	}
	b := frames[0].Image.Bounds()
	for i, f := range frames {
		if f.Image.Bounds() != b {
			return fmt.Errorf(
				"frame %d has bounds %v, but frame 0 has bounds %v",
				i, f.Image.Bounds(), b,
			)
		}
	}
	return nil
}
