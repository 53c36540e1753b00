package encode

import (
	"bytes"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/phil-mansfield/gogalaxy/render"
)

// FFmpeg pipes raw RGBA frames into an ffmpeg subprocess.
type FFmpeg struct {
	Output string
	// Binary is the name or path of the ffmpeg executable.
	Binary string
}

func ffmpegArgs(width, height, fps, bitrate int, output string) []string {
	return []string{
		"-y", "-loglevel", "error",
		"-f", "rawvideo", "-pix_fmt", "rgba",
		"-s", fmt.Sprintf("%dx%d", width, height),
		"-r", strconv.Itoa(fps),
		"-i", "-",
		// yuv420p needs even dimensions.
		"-vf", "pad=ceil(iw/2)*2:ceil(ih/2)*2",
		"-pix_fmt", "yuv420p",
		"-b:v", fmt.Sprintf("%dk", bitrate),
		"-metadata", "artist=gogalaxy",
		output,
	}
}

// Encode implements Encoder.
func (enc *FFmpeg) Encode(
	frames []*render.Frame, fps, bitrate int,
) (string, error) {
	fail := func(err error) (string, error) {
		return "", &EncodeError{"ffmpeg", err}
	}

	if err := checkFrames(frames); err != nil {
		return fail(err)
	}
	bin, err := exec.LookPath(enc.Binary)
	if err != nil {
		return fail(err)
	}

	b := frames[0].Image.Bounds()
	cmd := exec.Command(
		bin, ffmpegArgs(b.Dx(), b.Dy(), fps, bitrate, enc.Output)...,
	)
	stderr := &bytes.Buffer{}
	cmd.Stderr = stderr
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fail(err)
	}
	if err = cmd.Start(); err != nil {
		return fail(err)
	}

	var writeErr error
	for _, f := range frames {
		img := f.Image
		rowLen := 4 * img.Bounds().Dx()
		for y := 0; y < img.Bounds().Dy() && writeErr == nil; y++ {
			off := y * img.Stride
			_, writeErr = stdin.Write(img.Pix[off : off+rowLen])
		}
		if writeErr != nil {
			break
		}
	}
	stdin.Close()

	if err = cmd.Wait(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		return fail(fmt.Errorf("%s: %s", err.Error(), msg))
	} else if writeErr != nil {
		return fail(writeErr)
	}
	return enc.Output, nil
}
