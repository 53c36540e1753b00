package field

import (
	"gonum.org/v1/gonum/floats"
)

const (
	// Standard deviation of the per-star color noise.
	ColorNoise = 0.15
	// Stars closer than coreFraction * BulgeRadius are colored as the
	// bulge core, regardless of which population they belong to.
	coreFraction = 0.5

	CoreAlpha = 1.0
	ArmAlpha  = 0.9
)

// AssignColors writes the color of every star into out. rs are the
// generating radii of the whole field and noise holds one N(0, ColorNoise)
// draw per star.
//
// Stars inside the core threshold get a red-to-yellow color which saturates
// towards the center. All others get a blue gradient which depends on their
// radius normalized over the whole field (arms and bulge together). If every
// radius is the same, the normalized radius is taken to be zero.
func AssignColors(rs []float64, bulgeRadius float64, noise []float64, out []Color) {
	if len(noise) != len(rs) || len(out) != len(rs) {
		panic("len(rs), len(noise), and len(out) must be equal.")
	}
	if len(rs) == 0 {
		return
	}

	low, high := floats.Min(rs), floats.Max(rs)
	span := high - low
	core := bulgeRadius * coreFraction

	inCore := make([]bool, len(rs))
	for i, r := range rs {
		inCore[i] = r < core
	}

	for i, r := range rs {
		if inCore[i] {
			out[i] = coreColor(r, core, noise[i])
		}
	}
	for i, r := range rs {
		if inCore[i] {
			continue
		}
		normR := 0.0
		if span > 0 {
			normR = (r - low) / span
		}
		out[i] = armColor(normR, noise[i])
	}
}

func coreColor(r, core, noise float64) Color {
	bf := 1 - r/core
	bf2 := bf * bf
	return Color{
		clip(1+noise, 0, 1),
		clip((0.5+noise)*bf2, 0, 1),
		clip((0.1+noise)*bf2, 0, 1),
		CoreAlpha,
	}
}

func armColor(normR, noise float64) Color {
	af := 1 - normR
	return Color{
		clip(noise*0.1, 0, 0.1),
		clip((0.2+noise)*af, 0, 1),
		clip(0.8+0.2*(1-af)+noise, 0, 1),
		ArmAlpha,
	}
}
