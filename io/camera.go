package io

import (
	"fmt"

	"github.com/phil-mansfield/table"

	"github.com/phil-mansfield/gogalaxy/interpolate"
)

// CameraPath is a sequence of camera keyframes. Frames is strictly
// increasing and the three slices are index-aligned. CheckInit must be
// called before At.
type CameraPath struct {
	Frames, Elevations, Azimuths []float64
	// Interpolation is "linear" or "spline". Empty means "linear".
	Interpolation string

	elev, azim interpolate.Interpolator
}

// ReadCameraPath reads a whitespace-separated text table whose first three
// columns are frame index, elevation and azimuth (both in degrees).
// Keyframes are joined with the given kind of interpolation.
func ReadCameraPath(fname, interpolation string) (*CameraPath, error) {
	cols, err := table.ReadTable(fname, []int{0, 1, 2}, nil)
	if err != nil {
		return nil, err
	}
	path := &CameraPath{
		Frames: cols[0], Elevations: cols[1], Azimuths: cols[2],
		Interpolation: interpolation,
	}
	if err = path.CheckInit(); err != nil {
		return nil, fmt.Errorf("camera path '%s': %w", fname, err)
	}
	return path, nil
}

// CheckInit returns an error if the path has no keyframes, if the columns
// have different lengths, or if the frame column isn't strictly increasing.
// It also sets up interpolation between keyframes.
func (path *CameraPath) CheckInit() error {
	n := len(path.Frames)
	if n == 0 {
		return fmt.Errorf("no keyframes")
	} else if len(path.Elevations) != n || len(path.Azimuths) != n {
		return fmt.Errorf(
			"column lengths %d, %d, %d differ",
			n, len(path.Elevations), len(path.Azimuths),
		)
	}
	for i := 1; i < n; i++ {
		if path.Frames[i] <= path.Frames[i-1] {
			return fmt.Errorf(
				"frame column must be increasing, but row %d has %g after %g",
				i, path.Frames[i], path.Frames[i-1],
			)
		}
	}

	if path.Interpolation == "" {
		path.Interpolation = "linear"
	}
	if n == 1 {
		return nil
	}

	var err error
	path.elev, err = interpolate.New(
		path.Interpolation, path.Frames, path.Elevations,
	)
	if err != nil {
		return err
	}
	path.azim, err = interpolate.New(
		path.Interpolation, path.Frames, path.Azimuths,
	)
	return err
}

// At returns the elevation and azimuth at frame t, interpolating between
// keyframes and holding the end values outside the table.
func (path *CameraPath) At(t float64) (elev, azim float64) {
	fs, n := path.Frames, len(path.Frames)
	if t <= fs[0] {
		return path.Elevations[0], path.Azimuths[0]
	} else if t >= fs[n-1] {
		return path.Elevations[n-1], path.Azimuths[n-1]
	}
	return path.elev.Eval(t), path.azim.Eval(t)
}
