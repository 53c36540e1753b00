package field

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func colorEq(t *testing.T, exp, c Color, msg string) {
	for k := 0; k < 4; k++ {
		assert.InDelta(t, exp[k], c[k], 1e-12, "%s: channel %d", msg, k)
	}
}

func TestCoreColor(t *testing.T) {
	table := []struct {
		r, noise float64
		c        Color
	}{
		{0, 0, Color{1, 0.5, 0.1, 1}},
		{0.2, 0, Color{1, 0.125, 0.025, 1}},
		{0, 0.7, Color{1, 1, 0.8, 1}},
		{0.1, -2, Color{0, 0, 0, 1}},
	}

	for i, test := range table {
		colorEq(t, test.c, coreColor(test.r, 0.4, test.noise), fmt.Sprintf("%d)", i+1))
	}
}

func TestArmColor(t *testing.T) {
	table := []struct {
		normR, noise float64
		c            Color
	}{
		{0, 0, Color{0, 0.2, 0.8, 0.9}},
		{1, 0, Color{0, 0, 1, 0.9}},
		{0.5, 0, Color{0, 0.1, 0.9, 0.9}},
		{0.5, 5, Color{0.1, 1, 1, 0.9}},
		{0, -1, Color{0, 0, 0, 0.9}},
	}

	for i, test := range table {
		colorEq(t, test.c, armColor(test.normR, test.noise), fmt.Sprintf("%d)", i+1))
	}
}

func TestAssignColorsGlobalNormalization(t *testing.T) {
	// The first star sits in the core, but still sets the minimum radius
	// used to normalize the other two.
	rs := []float64{0, 1, 3}
	noise := make([]float64, 3)
	out := make([]Color, 3)
	AssignColors(rs, 0.8, noise, out)

	colorEq(t, Color{1, 0.5, 0.1, 1}, out[0], "core")
	colorEq(t, Color{0, 0.2 * 2 / 3.0, 0.8 + 0.2/3, 0.9}, out[1], "middle")
	colorEq(t, Color{0, 0, 1, 0.9}, out[2], "edge")
}

func TestAssignColorsDegenerate(t *testing.T) {
	// A single star and a field where every radius is identical both have
	// max(r) == min(r).
	out := make([]Color, 1)
	AssignColors([]float64{2}, 0.8, []float64{0}, out)
	colorEq(t, Color{0, 0.2, 0.8, 0.9}, out[0], "single")

	rs := []float64{1.5, 1.5, 1.5, 1.5}
	out = make([]Color, len(rs))
	AssignColors(rs, 0.8, make([]float64, len(rs)), out)
	for i := range out {
		colorEq(t, Color{0, 0.2, 0.8, 0.9}, out[i], "flat")
	}

	assert.NotPanics(t, func() { AssignColors(nil, 0.8, nil, nil) })
	assert.Panics(t, func() {
		AssignColors([]float64{1}, 0.8, nil, make([]Color, 1))
	})
}
