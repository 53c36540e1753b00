package interpolate

import (
	"fmt"
)

type splineCoeff struct {
	a, b, c, d float64
}

// Spline is a natural cubic spline: its second derivative vanishes at both
// ends of the table.
type Spline struct {
	xs     searcher
	y2s    []float64
	coeffs []splineCoeff
}

// NewSpline creates a spline through the strictly increasing points xs,
// which take on the values ys.
func NewSpline(xs, ys []float64) (*Spline, error) {
	if err := checkTable(xs, ys); err != nil {
		return nil, err
	}

	sp := &Spline{
		y2s:    make([]float64, len(xs)),
		coeffs: make([]splineCoeff, len(xs)-1),
	}
	xsCopy, ysCopy := make([]float64, len(xs)), make([]float64, len(ys))
	copy(xsCopy, xs)
	copy(ysCopy, ys)
	sp.xs.init(xsCopy)

	if err := sp.calcY2s(ysCopy); err != nil {
		return nil, err
	}
	sp.calcCoeffs(ysCopy)
	return sp, nil
}

// Eval computes the value of the spline at x. Outside the table the end
// polynomials are extrapolated.
func (sp *Spline) Eval(x float64) float64 {
	return sp.Diff(x, 0)
}

// EvalAll evaluates the spline at all the given x values. If an output
// array is given, the output is written to that array (the array is still
// returned as a convenience).
func (sp *Spline) EvalAll(xs []float64, out ...[]float64) []float64 {
	return evalAll(sp, xs, out)
}

// Diff computes the derivative of the spline at x to the given order.
func (sp *Spline) Diff(x float64, order int) float64 {
	i := sp.xs.search(x)
	dx := x - sp.xs.xs[i]
	a, b, c, d := sp.coeffs[i].a, sp.coeffs[i].b, sp.coeffs[i].c, sp.coeffs[i].d
	switch order {
	case 0:
		return a*dx*dx*dx + b*dx*dx + c*dx + d
	case 1:
		return 3*a*dx*dx + 2*b*dx + c
	case 2:
		return 6*a*dx + 2*b
	case 3:
		return 6 * a
	default:
		return 0
	}
}

// calcY2s computes the second derivative at every point in the table.
func (sp *Spline) calcY2s(ys []float64) error {
	n := len(ys)
	if n == 2 {
		return nil
	}
	as, bs := make([]float64, n-2), make([]float64, n-2)
	cs, rs := make([]float64, n-2), make([]float64, n-2)

	xs := sp.xs.xs
	for i := range rs {
		// j indexes into xs and ys.
		j := i + 1

		as[i] = (xs[j] - xs[j-1]) / 6
		bs[i] = (xs[j+1] - xs[j-1]) / 3
		cs[i] = (xs[j+1] - xs[j]) / 6
		rs[i] = ((ys[j+1] - ys[j]) / (xs[j+1] - xs[j])) -
			((ys[j] - ys[j-1]) / (xs[j] - xs[j-1]))
	}

	return TriDiagAt(as, bs, cs, rs, sp.y2s[1:n-1])
}

func (sp *Spline) calcCoeffs(ys []float64) {
	xs, y2s := sp.xs.xs, sp.y2s
	for i := range sp.coeffs {
		h := xs[i+1] - xs[i]
		sp.coeffs[i] = splineCoeff{
			a: (y2s[i+1] - y2s[i]) / (6 * h),
			b: y2s[i] / 2,
			c: (ys[i+1]-ys[i])/h - h*(2*y2s[i]+y2s[i+1])/6,
			d: ys[i],
		}
	}
}

// TriDiagAt solves the system of equations
//
// | b0 c0 ..       |   | out0 |   | r0 |
// | a1 b1 c1 ..    |   | out1 |   | r1 |
// | ..             | * | ..   | = | .. |
// | ..       an bn |   | outn |   | rn |
//
// for out0 .. outn in place. a0 and cn are ignored.
func TriDiagAt(as, bs, cs, rs, out []float64) error {
	if len(as) != len(bs) || len(as) != len(cs) ||
		len(as) != len(out) || len(as) != len(rs) {
		return fmt.Errorf("length of arguments to TriDiagAt are unequal")
	} else if len(as) == 0 {
		return nil
	}

	tmp := make([]float64, len(as))

	beta := bs[0]
	if beta == 0 {
		return fmt.Errorf("TriDiagAt cannot solve given system")
	}
	out[0] = rs[0] / beta

	for i := 1; i < len(out); i++ {
		tmp[i] = cs[i-1] / beta
		beta = bs[i] - as[i]*tmp[i]
		if beta == 0 {
			return fmt.Errorf("TriDiagAt cannot solve given system")
		}
		out[i] = (rs[i] - as[i]*out[i-1]) / beta
	}

	for i := len(out) - 2; i >= 0; i-- {
		out[i] -= tmp[i+1] * out[i+1]
	}
	return nil
}
