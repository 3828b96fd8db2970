package interpolate

import (
	"fmt"
	"math"
)

// pivotTol is the smallest allowed pivot magnitude, relative to the largest
// diagonal element.
const pivotTol = 1e-13

// TriDiagAt solves the system of equations
//
// | b0 c0 ..       |   | out0 |   | r0 |
// | a1 b1 c1 ..    |   | out1 |   | r1 |
// | ..             | * | ..   | = | .. |
// | ..       an bn |   | outn |   | rn |
//
// for out0 .. outn in place in the given slice. a0 and cn are ignored. out may
// alias rs, but not as, bs, or cs.
func TriDiagAt(as, bs, cs, rs, out []float64) error {
	n := len(bs)
	if len(as) != n || len(cs) != n || len(rs) != n || len(out) != n {
		return fmt.Errorf(
			"tridiagonal system has len(as) = %d, len(bs) = %d, "+
				"len(cs) = %d, len(rs) = %d, len(out) = %d: %w",
			len(as), len(bs), len(cs), len(rs), len(out), ErrShapeMismatch,
		)
	} else if n == 0 {
		return nil
	}

	scale := 0.0
	for _, b := range bs {
		scale = math.Max(scale, math.Abs(b))
	}
	tol := pivotTol * scale

	tmp := make([]float64, n)

	beta := bs[0]
	if !(math.Abs(beta) > tol) {
		return fmt.Errorf("pivot 0 of tridiagonal system is %g: %w",
			beta, ErrNumerical)
	}
	out[0] = rs[0] / beta

	for i := 1; i < n; i++ {
		tmp[i] = cs[i-1] / beta
		beta = bs[i] - as[i]*tmp[i]
		if !(math.Abs(beta) > tol) {
			return fmt.Errorf("pivot %d of tridiagonal system is %g: %w",
				i, beta, ErrNumerical)
		}
		out[i] = (rs[i] - as[i]*out[i-1]) / beta
	}

	for i := n - 2; i >= 0; i-- {
		out[i] -= tmp[i+1] * out[i+1]
	}

	return nil
}

// TriDiag solves the same system as TriDiagAt, but returns the solution in a
// newly allocated slice.
func TriDiag(as, bs, cs, rs []float64) ([]float64, error) {
	us := make([]float64, len(bs))
	if err := TriDiagAt(as, bs, cs, rs, us); err != nil {
		return nil, err
	}
	return us, nil
}
