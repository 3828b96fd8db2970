/*package interpolate builds and evaluates cubic splines on uniformly spaced
grids in one, two, and three dimensions.

1D splines are C2 and are found by solving a tridiagonal system for the second
derivatives at every node, closed by one of the BoundaryConditions. 2D and 3D
splines are tensor-product Hermite patches: first and mixed partial
derivatives are estimated at every node by running 1D splines along each axis
(and along the resulting derivative fields), and each cell's power-basis
coefficients are then found with a fixed Hermite transform.

Splines are immutable once built and every method is safe to call from many
goroutines at once. Points outside the grid are evaluated by extending the
polynomial of the nearest edge cell.
*/
package interpolate

import (
	"fmt"

	"github.com/google/go-cmp/cmp"
)

// Spline is a 1D cubic spline on a uniform grid.
type Spline struct {
	grid   Grid
	bc     BoundaryCondition
	coeffs *Coefficients
}

// NewSpline creates a spline through the values vals at the nodes of g. The
// spline does not retain vals.
func NewSpline(g Grid, vals []float64, bc BoundaryCondition) (*Spline, error) {
	if err := g.validate(); err != nil {
		return nil, err
	} else if len(vals) != g.Count {
		return nil, fmt.Errorf(
			"len(vals) = %d, but the grid has %d nodes: %w",
			len(vals), g.Count, ErrShapeMismatch,
		)
	} else if err := bc.check(); err != nil {
		return nil, err
	}

	sp := &Spline{grid: g, bc: bc, coeffs: newCoefficients([]int{g.Count - 1})}

	ls := newLineSolver(g.Count)
	copy(ls.fs, vals)
	if err := ls.solve(g.Step, bc); err != nil {
		return nil, err
	}
	ls.coeffsAt(g.Step, sp.coeffs.vals)

	return sp, nil
}

// NewUniformSpline creates a spline through vals, which are sampled at the
// points x0, x0 + dx, x0 + 2*dx, ...
func NewUniformSpline(
	x0, dx float64, vals []float64, bc BoundaryCondition,
) (*Spline, error) {
	g, err := NewGrid(x0, dx, len(vals))
	if err != nil {
		return nil, err
	}
	return NewSpline(g, vals, bc)
}

// NewNodeSpline creates a spline through the points (xs[i], vals[i]). xs must
// be increasing and uniformly spaced.
func NewNodeSpline(xs, vals []float64, bc BoundaryCondition) (*Spline, error) {
	if len(xs) != len(vals) {
		return nil, fmt.Errorf(
			"len(xs) = %d, but len(vals) = %d: %w",
			len(xs), len(vals), ErrShapeMismatch,
		)
	}
	g, err := NewGridFromNodes(xs)
	if err != nil {
		return nil, err
	}
	return NewSpline(g, vals, bc)
}

// Grid returns the grid the spline was built on.
func (sp *Spline) Grid() Grid { return sp.grid }

// Boundary returns the boundary condition the spline was built with.
func (sp *Spline) Boundary() BoundaryCondition { return sp.bc }

// Intervals returns the number of polynomial pieces in the spline.
func (sp *Spline) Intervals() int { return sp.grid.Count - 1 }

// Coefficients returns the (n-1, 4) coefficient array of the spline. Row i
// holds a, b, c, d for a + b t + c t^2 + d t^3 with t = x - x_i.
func (sp *Spline) Coefficients() *Coefficients { return sp.coeffs }

// Coeff returns coefficient p of interval i.
func (sp *Spline) Coeff(i, p int) (float64, error) {
	return sp.coeffs.At(i, p)
}

// Eval computes the value of the spline at x.
func (sp *Spline) Eval(x float64) float64 { return sp.eval(x, 0) }

// Deriv computes the first derivative of the spline at x.
func (sp *Spline) Deriv(x float64) float64 { return sp.eval(x, 1) }

// Deriv2 computes the second derivative of the spline at x.
func (sp *Spline) Deriv2(x float64) float64 { return sp.eval(x, 2) }

// Partial computes the derivative of the given order at x. Orders above two
// are not supported.
func (sp *Spline) Partial(order int, x float64) (float64, error) {
	if err := checkOrders(order); err != nil {
		return 0, err
	}
	return sp.eval(x, order), nil
}

func (sp *Spline) eval(x float64, order int) float64 {
	i, t := sp.grid.Cell(x)
	return horner(sp.coeffs.cell(i), t, order)
}

// EvalAll evaluates the spline at all the given x values. If an output array
// is given, the output is written to that array (the array is still returned
// as a convenience). The output array must be at least as long as xs.
func (sp *Spline) EvalAll(xs []float64, out ...[]float64) ([]float64, error) {
	return sp.PartialAll(0, xs, out...)
}

// DerivAll is the first derivative version of EvalAll.
func (sp *Spline) DerivAll(xs []float64, out ...[]float64) ([]float64, error) {
	return sp.PartialAll(1, xs, out...)
}

// Deriv2All is the second derivative version of EvalAll.
func (sp *Spline) Deriv2All(xs []float64, out ...[]float64) ([]float64, error) {
	return sp.PartialAll(2, xs, out...)
}

// PartialAll is the array version of Partial.
func (sp *Spline) PartialAll(
	order int, xs []float64, out ...[]float64,
) ([]float64, error) {
	if err := checkOrders(order); err != nil {
		return nil, err
	}
	vals, err := outBuffer(len(xs), out)
	if err != nil {
		return nil, err
	}
	for i, x := range xs {
		vals[i] = sp.eval(x, order)
	}
	return vals, nil
}

// outBuffer returns the first n elements of the optional output array of an
// array evaluation method, or a new array if none was given.
func outBuffer(n int, out [][]float64) ([]float64, error) {
	if len(out) == 0 {
		return make([]float64, n), nil
	} else if len(out[0]) < n {
		return nil, fmt.Errorf(
			"len(out) = %d, but %d points are evaluated: %w",
			len(out[0]), n, ErrShapeMismatch,
		)
	}
	return out[0][:n], nil
}

// Equal returns true if both splines were built on the same grid with the
// same boundary condition and have bit-identical coefficients.
func (sp *Spline) Equal(other *Spline) bool {
	return cmp.Equal(sp.grid, other.grid) && cmp.Equal(sp.bc, other.bc) &&
		sp.coeffs.equal(other.coeffs)
}

// lineSolver computes the 1D spline through a single line of samples. The
// buffers are reused between lines, so each goroutine needs its own solver.
type lineSolver struct {
	// fs holds the samples of the current line; callers fill it before
	// calling solve.
	fs []float64
	// ms holds the second derivative at every node after solve.
	ms             []float64
	as, bs, cs, rs []float64
}

func newLineSolver(n int) *lineSolver {
	return &lineSolver{
		fs: make([]float64, n), ms: make([]float64, n),
		as: make([]float64, n-2), bs: make([]float64, n-2),
		cs: make([]float64, n-2), rs: make([]float64, n-2),
	}
}

// solve computes the second derivatives of the spline through ls.fs.
//
// Only the n-2 interior second derivatives are solved for directly: the
// boundary closures are used to eliminate m_0 from the first interior equation
// and m_{n-1} from the last one, and the end values are recovered from the
// closures afterwards.
func (ls *lineSolver) solve(h float64, bc BoundaryCondition) error {
	fs, ms := ls.fs, ls.ms
	as, bs, cs, rs := ls.as, ls.bs, ls.cs, ls.rs
	n, k := len(fs), len(rs)

	for i := range rs {
		// j indexes into fs and ms.
		j := i + 1
		as[i], bs[i], cs[i] = h/6, 2*h/3, h/6
		rs[i] = (fs[j+1] - 2*fs[j] + fs[j-1]) / h
	}

	lo, hi := bc.closures(fs, h)

	w := as[0] / lo.ms[0]
	bs[0] -= w * lo.ms[1]
	cs[0] -= w * lo.ms[2]
	rs[0] -= w * lo.rhs
	as[0] = 0

	w = cs[k-1] / hi.ms[0]
	bs[k-1] -= w * hi.ms[1]
	as[k-1] -= w * hi.ms[2]
	rs[k-1] -= w * hi.rhs
	cs[k-1] = 0

	if err := TriDiagAt(as, bs, cs, rs, ms[1:n-1]); err != nil {
		return err
	}

	ms[0] = (lo.rhs - lo.ms[1]*ms[1] - lo.ms[2]*ms[2]) / lo.ms[0]
	ms[n-1] = (hi.rhs - hi.ms[1]*ms[n-2] - hi.ms[2]*ms[n-3]) / hi.ms[0]
	return nil
}

// coeffsAt writes the (n-1, 4) polynomial coefficients of the solved spline
// to out.
func (ls *lineSolver) coeffsAt(h float64, out []float64) {
	fs, ms := ls.fs, ls.ms
	for i := 0; i < len(fs)-1; i++ {
		c := out[4*i : 4*i+4]
		c[0] = fs[i]
		c[1] = (fs[i+1]-fs[i])/h - h*(2*ms[i]+ms[i+1])/6
		c[2] = ms[i] / 2
		c[3] = (ms[i+1] - ms[i]) / (6 * h)
	}
}

// derivsAt writes the first derivative of the solved spline at every node to
// out.
func (ls *lineSolver) derivsAt(h float64, out []float64) {
	fs, ms := ls.fs, ls.ms
	n := len(fs)
	for i := 0; i < n-1; i++ {
		out[i] = (fs[i+1]-fs[i])/h - h*(2*ms[i]+ms[i+1])/6
	}
	out[n-1] = (fs[n-1]-fs[n-2])/h + h*(ms[n-2]+2*ms[n-1])/6
}
