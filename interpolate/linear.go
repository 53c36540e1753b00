package interpolate

// Linear is a piecewise linear interpolator.
type Linear struct {
	xs   searcher
	vals []float64
}

// NewLinear creates a linear interpolator for the strictly increasing points
// xs, which take on the values vals. Neither slice may be modified while the
// interpolator is in use.
func NewLinear(xs, vals []float64) (*Linear, error) {
	if err := checkTable(xs, vals); err != nil {
		return nil, err
	}
	lin := &Linear{vals: vals}
	lin.xs.init(xs)
	return lin, nil
}

// Eval returns the interpolated value at x. Outside the table the end
// intervals are extrapolated.
func (lin *Linear) Eval(x float64) float64 {
	i1 := lin.xs.search(x)
	i2 := i1 + 1
	x1, x2 := lin.xs.xs[i1], lin.xs.xs[i2]
	v1, v2 := lin.vals[i1], lin.vals[i2]

	return ((v2-v1)/(x2-x1))*(x-x1) + v1
}

// EvalAll evaluates the interpolator at all the given x values. If an output
// array is given, the output is written to that array (the array is still
// returned as a convenience).
func (lin *Linear) EvalAll(xs []float64, out ...[]float64) []float64 {
	return evalAll(lin, xs, out)
}
