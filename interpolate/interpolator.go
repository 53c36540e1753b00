/*package interpolate contains one dimensional interpolators over tables of
strictly increasing x values.
*/
package interpolate

import (
	"fmt"
)

type Interpolator interface {
	Eval(x float64) float64
	EvalAll(xs []float64, out ...[]float64) []float64
}

var (
	_ Interpolator = &Spline{}
	_ Interpolator = &Linear{}
)

// New returns an interpolator of the given kind, which must be either
// "linear" or "spline".
func New(kind string, xs, ys []float64) (Interpolator, error) {
	switch kind {
	case "linear":
		return NewLinear(xs, ys)
	case "spline":
		return NewSpline(xs, ys)
	}
	return nil, fmt.Errorf("Unrecognized interpolator '%s'.", kind)
}

func checkTable(xs, ys []float64) error {
	if len(xs) != len(ys) {
		return fmt.Errorf(
			"table has len(xs) = %d but len(ys) = %d", len(xs), len(ys),
		)
	} else if len(xs) < 2 {
		return fmt.Errorf("table has length %d", len(xs))
	}
	for i := 1; i < len(xs); i++ {
		if xs[i] <= xs[i-1] {
			return fmt.Errorf(
				"table not strictly increasing: xs[%d] = %g, xs[%d] = %g",
				i-1, xs[i-1], i, xs[i],
			)
		}
	}
	return nil
}

// searcher finds the table interval containing a point.
type searcher struct {
	xs []float64
	// Estimate of the point spacing, which is exact for uniform tables.
	dx float64
}

func (s *searcher) init(xs []float64) {
	s.xs = xs
	s.dx = (xs[len(xs)-1] - xs[0]) / float64(len(xs)-1)
}

// search returns the index i such that xs[i] <= x <= xs[i+1]. Points outside
// the table are assigned to the first or last interval.
func (s *searcher) search(x float64) int {
	xs, n := s.xs, len(s.xs)

	// Guess under the assumption of uniform spacing.
	guess := int((x - xs[0]) / s.dx)
	if guess >= 0 && guess < n-1 && xs[guess] <= x && x <= xs[guess+1] {
		return guess
	}

	lo, hi := 0, n-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if x >= xs[mid] {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo
}

func evalAll(in Interpolator, xs []float64, out [][]float64) []float64 {
	if len(out) == 0 {
		out = [][]float64{make([]float64, len(xs))}
	}
	for i, x := range xs {
		out[0][i] = in.Eval(x)
	}
	return out[0]
}
