package io

import (
	"fmt"
	"math"
	"strings"

	"gopkg.in/gcfg.v1"
)

const (
	ExampleConfigFile = `[Galaxy]

#######################
# Required Parameters #
#######################

# Number of spiral arms and the number of stars placed along each of them.
Arms = 6
ArmStars = 400000

# Number of stars in the central bulge.
BulgeStars = 20000

#######################
# Optional Parameters #
#######################

# Shape of the logarithmic spiral, r(theta) = A * exp(B * theta). theta runs
# from 0 to 4 pi along every arm.
# A = 0.4
# B = 0.25

# Width of the arms. Radial scatter has a standard deviation of 1.5 * Spread
# and angular scatter has a standard deviation of 1.5 * Spread / 10.
# Spread = 0.03

# Radius of the disc. No star is ever placed or moved beyond it.
# RadiusMax = 3

# Radius of the bulge. Must not be larger than RadiusMax.
# BulgeRadius = 0.8

# Tangential speed of arm stars. Bulge stars move at 0.2 times this speed.
# Velocity = 1278

# Seed for the random number generator. The same seed and parameters always
# produce the same galaxy.
# Seed = 42

[Animation]

# Output video file. Set Encoder = none to skip writing one.
Output = galaxy_rotation_angled.mp4

#######################
# Optional Parameters #
#######################

# Encoder must be one of [ ffmpeg | gif | none ].
# Encoder = ffmpeg

# Display must be one of [ window | terminal | none ]. Display happens after
# the animation has been encoded.
# Display = window

# Frame rate and length of the animation in seconds. Frames overrides
# Duration if it is set.
# FPS = 20
# Duration = 2
# Frames = 40
# Bitrate = 1800

# Scales elapsed frames into model time. Stars which move past RadiusMax are
# pulled back onto the disc edge, so large values of TimeStep * Frames will
# pile stars up on the rim.
# TimeStep = 5e-6

# Number of frames rendered concurrently. Defaults to -Threads.
# Workers = 4

# Camera orientation in degrees. AzimuthRate turns the camera by that many
# degrees per frame. CameraPath names a text table with the columns
# "frame elevation azimuth" and overrides all three. Keyframes are joined
# according to CameraInterpolation, which is one of [ linear | spline ].
# Elevation = 20
# Azimuth = 60
# AzimuthRate = 0
# CameraPath = path/to/camera.txt
# CameraInterpolation = linear

# Output files which are useful for profiling and debugging.
# ProfileFile = prof.out
# LogFile = log.out

[Render]

#######################
# Optional Parameters #
#######################

# Size of the output frames in pixels.
# Width = 1500
# Height = 600

# Relative lengths of the box axes on screen and the half-height of the z
# axis as a fraction of RadiusMax.
# AspectX = 2.5
# AspectY = 1
# AspectZ = 0.2
# ZLimitRatio = 0.2

# Pixel radius of a star with size 1.
# PointScale = 1.5

# Brightness multiplier applied before tone mapping.
# Exposure = 1

# Title = Rotating 3D Spiral Galaxy - Angled View`
)

// ConfigError reports an invalid configuration value. These are always
// fatal and are raised before any generation or rendering work begins.
type ConfigError struct {
	Section, Key string
	Msg          string
}

func (err *ConfigError) Error() string {
	return fmt.Sprintf(
		"Invalid '%s' value in [%s]: %s", err.Key, err.Section, err.Msg,
	)
}

func configErr(section, key, format string, args ...interface{}) error {
	return &ConfigError{section, key, fmt.Sprintf(format, args...)}
}

// GalaxyConfig holds the parameters of the generated star field.
type GalaxyConfig struct {
	// Required
	Arms, ArmStars, BulgeStars int

	// Optional
	A, B, Spread float64
	RadiusMax    float64
	BulgeRadius  float64
	Velocity     float64
	Seed         int64
}

// AnimationConfig holds the parameters of the time stepping, the encoder
// and the display.
type AnimationConfig struct {
	Output           string
	Encoder, Display string

	Frames, FPS, Bitrate int
	Duration, TimeStep   float64
	Workers              int

	Elevation, Azimuth, AzimuthRate float64
	CameraPath, CameraInterpolation string

	LogFile, ProfileFile string
}

// RenderConfig holds the parameters of the frame renderer.
type RenderConfig struct {
	Width, Height             int
	AspectX, AspectY, AspectZ float64
	ZLimitRatio               float64
	PointScale, Exposure      float64
	Title                     string
}

// Wrapper is the top level of a gogalaxy config file.
type Wrapper struct {
	Galaxy    GalaxyConfig
	Animation AnimationConfig
	Render    RenderConfig
}

// DefaultWrapper returns a Wrapper with every optional value set to the
// values used to make the reference animation.
func DefaultWrapper() *Wrapper {
	gal := GalaxyConfig{
		Arms: 6, ArmStars: 400000, BulgeStars: 20000,
		A: 0.4, B: 0.25, Spread: 0.03,
		RadiusMax: 3, BulgeRadius: 0.8,
		Velocity: 1278, Seed: 42,
	}
	anim := AnimationConfig{
		Output: "galaxy_rotation_angled.mp4",
		Encoder: "ffmpeg", Display: "window",
		FPS: 20, Duration: 2, Bitrate: 1800,
		TimeStep: 5e-6,
		Elevation: 20, Azimuth: 60,
		CameraInterpolation: "linear",
	}
	ren := RenderConfig{
		Width: 1500, Height: 600,
		AspectX: 2.5, AspectY: 1, AspectZ: 0.2,
		ZLimitRatio: 0.2,
		PointScale: 1.5, Exposure: 1,
		Title: "Rotating 3D Spiral Galaxy - Angled View",
	}
	return &Wrapper{gal, anim, ren}
}

// ReadConfig reads a config file on top of the default values and checks
// every section.
func ReadConfig(fname string) (*Wrapper, error) {
	wrap := DefaultWrapper()
	if err := gcfg.ReadFileInto(wrap, fname); err != nil {
		return nil, err
	}
	if err := wrap.CheckInit(); err != nil {
		return nil, err
	}
	return wrap, nil
}

// ReadConfigString is identical to ReadConfig, but reads the config from a
// string instead of a file.
func ReadConfigString(str string) (*Wrapper, error) {
	wrap := DefaultWrapper()
	if err := gcfg.ReadStringInto(wrap, str); err != nil {
		return nil, err
	}
	if err := wrap.CheckInit(); err != nil {
		return nil, err
	}
	return wrap, nil
}

// CheckInit validates every section of the config and fills in values which
// depend on other values.
func (wrap *Wrapper) CheckInit() error {
	if err := wrap.Galaxy.CheckInit(); err != nil {
		return err
	}
	if err := wrap.Animation.CheckInit(); err != nil {
		return err
	}
	return wrap.Render.CheckInit()
}

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }

// CheckInit returns a *ConfigError if con describes a galaxy which cannot be
// generated.
func (con *GalaxyConfig) CheckInit() error {
	const sec = "Galaxy"
	if con.Arms <= 0 {
		return configErr(sec, "Arms", "must be positive, but is %d", con.Arms)
	} else if con.ArmStars <= 0 {
		return configErr(sec, "ArmStars",
			"must be positive, but is %d", con.ArmStars)
	} else if con.BulgeStars <= 0 {
		return configErr(sec, "BulgeStars",
			"must be positive, but is %d", con.BulgeStars)
	}

	if !finite(con.RadiusMax) || con.RadiusMax <= 0 {
		return configErr(sec, "RadiusMax",
			"must be positive, but is %g", con.RadiusMax)
	} else if !finite(con.BulgeRadius) || con.BulgeRadius <= 0 {
		return configErr(sec, "BulgeRadius",
			"must be positive, but is %g", con.BulgeRadius)
	} else if con.BulgeRadius > con.RadiusMax {
		return configErr(sec, "BulgeRadius",
			"must not exceed RadiusMax = %g, but is %g",
			con.RadiusMax, con.BulgeRadius)
	}

	if !finite(con.A) || con.A <= 0 {
		return configErr(sec, "A", "must be positive, but is %g", con.A)
	} else if !finite(con.B) {
		return configErr(sec, "B", "must be finite, but is %g", con.B)
	} else if !finite(con.Spread) || con.Spread < 0 {
		return configErr(sec, "Spread",
			"must be non-negative, but is %g", con.Spread)
	} else if !finite(con.Velocity) {
		return configErr(sec, "Velocity",
			"must be finite, but is %g", con.Velocity)
	}

	return nil
}

// Stars returns the total number of stars in the galaxy.
func (con *GalaxyConfig) Stars() int {
	return con.Arms*con.ArmStars + con.BulgeStars
}

// CheckInit validates con and computes Frames from FPS and Duration if it
// wasn't set explicitly.
func (con *AnimationConfig) CheckInit() error {
	const sec = "Animation"
	if con.FPS <= 0 {
		return configErr(sec, "FPS", "must be positive, but is %d", con.FPS)
	} else if con.Frames < 0 {
		return configErr(sec, "Frames",
			"must be non-negative, but is %d", con.Frames)
	} else if con.Bitrate <= 0 {
		return configErr(sec, "Bitrate",
			"must be positive, but is %d", con.Bitrate)
	} else if !finite(con.TimeStep) || con.TimeStep < 0 {
		return configErr(sec, "TimeStep",
			"must be non-negative, but is %g", con.TimeStep)
	} else if con.Workers < 0 {
		return configErr(sec, "Workers",
			"must be non-negative, but is %d", con.Workers)
	}

	if con.Frames == 0 {
		if !finite(con.Duration) || con.Duration <= 0 {
			return configErr(sec, "Duration",
				"must be positive when Frames isn't set, but is %g",
				con.Duration)
		}
		con.Frames = int(float64(con.FPS) * con.Duration)
		if con.Frames == 0 {
			return configErr(sec, "Duration",
				"%g seconds at %d FPS is less than one frame",
				con.Duration, con.FPS)
		}
	}

	con.Encoder = strings.ToLower(strings.TrimSpace(con.Encoder))
	switch con.Encoder {
	case "ffmpeg", "gif":
		if con.Output == "" {
			return configErr(sec, "Output",
				"must be set when Encoder = %s", con.Encoder)
		}
	case "none":
	default:
		return configErr(sec, "Encoder",
			"must be one of [ ffmpeg | gif | none ], but is '%s'", con.Encoder)
	}

	con.CameraInterpolation = strings.ToLower(
		strings.TrimSpace(con.CameraInterpolation),
	)
	switch con.CameraInterpolation {
	case "linear", "spline":
	default:
		return configErr(sec, "CameraInterpolation",
			"must be one of [ linear | spline ], but is '%s'",
			con.CameraInterpolation)
	}

	con.Display = strings.ToLower(strings.TrimSpace(con.Display))
	switch con.Display {
	case "window", "terminal", "none":
	default:
		return configErr(sec, "Display",
			"must be one of [ window | terminal | none ], but is '%s'",
			con.Display)
	}

	return nil
}

func (con *AnimationConfig) ValidCameraPath() bool {
	return con.CameraPath != ""
}
func (con *AnimationConfig) ValidLogFile() bool {
	return con.LogFile != ""
}
func (con *AnimationConfig) ValidProfileFile() bool {
	return con.ProfileFile != ""
}

// CheckInit validates con.
func (con *RenderConfig) CheckInit() error {
	const sec = "Render"
	if con.Width <= 0 {
		return configErr(sec, "Width", "must be positive, but is %d", con.Width)
	} else if con.Height <= 0 {
		return configErr(sec, "Height",
			"must be positive, but is %d", con.Height)
	}

	aspects := []struct {
		key string
		val float64
	}{
		{"AspectX", con.AspectX}, {"AspectY", con.AspectY},
		{"AspectZ", con.AspectZ}, {"ZLimitRatio", con.ZLimitRatio},
		{"PointScale", con.PointScale}, {"Exposure", con.Exposure},
	}
	for _, a := range aspects {
		if !finite(a.val) || a.val <= 0 {
			return configErr(sec, a.key, "must be positive, but is %g", a.val)
		}
	}

	return nil
}
