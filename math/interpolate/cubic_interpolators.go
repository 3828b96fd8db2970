package interpolate

import (
	"fmt"

	"github.com/google/go-cmp/cmp"
)

///////////////////////////
// BiCubic Implementation //
///////////////////////////

// BiCubic is a bicubic Hermite spline on a uniform 2D grid. Values and the
// first partials and f_xy estimated at the nodes are continuous across cell
// edges.
type BiCubic struct {
	xs, ys Grid
	bc     BoundaryCondition
	coeffs *Coefficients
}

// NewBiCubic creates a bicubic spline through vals, where
// vals[i*ys.Count + j] is the sample at (x_i, y_j).
func NewBiCubic(xs, ys Grid, vals []float64, bc BoundaryCondition) (*BiCubic, error) {
	coeffs, err := buildTensor([]Grid{xs, ys}, vals, bc)
	if err != nil {
		return nil, err
	}
	return &BiCubic{xs: xs, ys: ys, bc: bc, coeffs: coeffs}, nil
}

// NewUniformBiCubic creates a bicubic spline whose grids start at x0 and y0
// with spacings dx and dy and nx and ny nodes.
func NewUniformBiCubic(
	x0, dx float64, nx int,
	y0, dy float64, ny int,
	vals []float64, bc BoundaryCondition,
) (*BiCubic, error) {
	xs, err := NewGrid(x0, dx, nx)
	if err != nil {
		return nil, fmt.Errorf("x axis: %w", err)
	}
	ys, err := NewGrid(y0, dy, ny)
	if err != nil {
		return nil, fmt.Errorf("y axis: %w", err)
	}
	return NewBiCubic(xs, ys, vals, bc)
}

// Grids returns the x and y grids.
func (bi *BiCubic) Grids() (xs, ys Grid) { return bi.xs, bi.ys }

// Boundary returns the boundary condition used along both axes.
func (bi *BiCubic) Boundary() BoundaryCondition { return bi.bc }

// Coefficients returns the (nx-1, ny-1, 4, 4) coefficient array. Entry
// (i, j, p, q) multiplies (x - x_i)^p (y - y_j)^q.
func (bi *BiCubic) Coefficients() *Coefficients { return bi.coeffs }

// Coeff returns coefficient (p, q) of cell (i, j).
func (bi *BiCubic) Coeff(i, j, p, q int) (float64, error) {
	return bi.coeffs.At(i, j, p, q)
}

func (bi *BiCubic) eval(x, y float64, nx, ny int) float64 {
	i, tx := bi.xs.Cell(x)
	j, ty := bi.ys.Cell(y)
	return horner2(bi.coeffs.cell(i*(bi.ys.Count-1)+j), tx, ty, nx, ny)
}

// Eval computes the value of the spline at (x, y).
func (bi *BiCubic) Eval(x, y float64) float64 { return bi.eval(x, y, 0, 0) }

// DerivX computes df/dx at (x, y).
func (bi *BiCubic) DerivX(x, y float64) float64 { return bi.eval(x, y, 1, 0) }

// DerivY computes df/dy at (x, y).
func (bi *BiCubic) DerivY(x, y float64) float64 { return bi.eval(x, y, 0, 1) }

// DerivXX computes d^2f/dx^2 at (x, y).
func (bi *BiCubic) DerivXX(x, y float64) float64 { return bi.eval(x, y, 2, 0) }

// DerivYY computes d^2f/dy^2 at (x, y).
func (bi *BiCubic) DerivYY(x, y float64) float64 { return bi.eval(x, y, 0, 2) }

// DerivXY computes d^2f/dxdy at (x, y).
func (bi *BiCubic) DerivXY(x, y float64) float64 { return bi.eval(x, y, 1, 1) }

// Partial computes the partial derivative with nx orders along x and ny along
// y. At most two orders in total are supported.
func (bi *BiCubic) Partial(nx, ny int, x, y float64) (float64, error) {
	if err := checkOrders(nx, ny); err != nil {
		return 0, err
	}
	return bi.eval(x, y, nx, ny), nil
}

// EvalAll evaluates the spline at every point (xs[i], ys[i]). If an output
// array is given, the output is written to that array.
func (bi *BiCubic) EvalAll(
	xs, ys []float64, out ...[]float64,
) ([]float64, error) {
	return bi.PartialAll(0, 0, xs, ys, out...)
}

// PartialAll is the array version of Partial.
func (bi *BiCubic) PartialAll(
	nx, ny int, xs, ys []float64, out ...[]float64,
) ([]float64, error) {
	if err := checkOrders(nx, ny); err != nil {
		return nil, err
	} else if len(xs) != len(ys) {
		return nil, fmt.Errorf("len(xs) = %d, but len(ys) = %d: %w",
			len(xs), len(ys), ErrShapeMismatch)
	}
	vals, err := outBuffer(len(xs), out)
	if err != nil {
		return nil, err
	}
	for i := range xs {
		vals[i] = bi.eval(xs[i], ys[i], nx, ny)
	}
	return vals, nil
}

// Equal returns true if both splines have the same grids and boundary
// condition and bit-identical coefficients.
func (bi *BiCubic) Equal(other *BiCubic) bool {
	return cmp.Equal(bi.xs, other.xs) && cmp.Equal(bi.ys, other.ys) &&
		cmp.Equal(bi.bc, other.bc) &&
		bi.coeffs.equal(other.coeffs)
}

////////////////////////////
// TriCubic Implementation //
////////////////////////////

// TriCubic is a tricubic Hermite spline on a uniform 3D grid.
type TriCubic struct {
	xs, ys, zs Grid
	bc         BoundaryCondition
	coeffs     *Coefficients
}

// NewTriCubic creates a tricubic spline through vals, where
// vals[(i*ys.Count + j)*zs.Count + k] is the sample at (x_i, y_j, z_k).
func NewTriCubic(
	xs, ys, zs Grid, vals []float64, bc BoundaryCondition,
) (*TriCubic, error) {
	coeffs, err := buildTensor([]Grid{xs, ys, zs}, vals, bc)
	if err != nil {
		return nil, err
	}
	return &TriCubic{xs: xs, ys: ys, zs: zs, bc: bc, coeffs: coeffs}, nil
}

// NewUniformTriCubic creates a tricubic spline from grid origins, spacings,
// and node counts.
func NewUniformTriCubic(
	x0, dx float64, nx int,
	y0, dy float64, ny int,
	z0, dz float64, nz int,
	vals []float64, bc BoundaryCondition,
) (*TriCubic, error) {
	xs, err := NewGrid(x0, dx, nx)
	if err != nil {
		return nil, fmt.Errorf("x axis: %w", err)
	}
	ys, err := NewGrid(y0, dy, ny)
	if err != nil {
		return nil, fmt.Errorf("y axis: %w", err)
	}
	zs, err := NewGrid(z0, dz, nz)
	if err != nil {
		return nil, fmt.Errorf("z axis: %w", err)
	}
	return NewTriCubic(xs, ys, zs, vals, bc)
}

// Grids returns the x, y, and z grids.
func (tri *TriCubic) Grids() (xs, ys, zs Grid) { return tri.xs, tri.ys, tri.zs }

// Boundary returns the boundary condition used along every axis.
func (tri *TriCubic) Boundary() BoundaryCondition { return tri.bc }

// Coefficients returns the (nx-1, ny-1, nz-1, 4, 4, 4) coefficient array.
// Entry (i, j, k, p, q, r) multiplies (x - x_i)^p (y - y_j)^q (z - z_k)^r.
func (tri *TriCubic) Coefficients() *Coefficients { return tri.coeffs }

// Coeff returns coefficient (p, q, r) of cell (i, j, k).
func (tri *TriCubic) Coeff(i, j, k, p, q, r int) (float64, error) {
	return tri.coeffs.At(i, j, k, p, q, r)
}

func (tri *TriCubic) eval(x, y, z float64, nx, ny, nz int) float64 {
	i, tx := tri.xs.Cell(x)
	j, ty := tri.ys.Cell(y)
	k, tz := tri.zs.Cell(z)
	cell := (i*(tri.ys.Count-1)+j)*(tri.zs.Count-1) + k
	return horner3(tri.coeffs.cell(cell), tx, ty, tz, nx, ny, nz)
}

// Eval computes the value of the spline at (x, y, z).
func (tri *TriCubic) Eval(x, y, z float64) float64 {
	return tri.eval(x, y, z, 0, 0, 0)
}

// DerivX computes df/dx at (x, y, z).
func (tri *TriCubic) DerivX(x, y, z float64) float64 {
	return tri.eval(x, y, z, 1, 0, 0)
}

// DerivY computes df/dy at (x, y, z).
func (tri *TriCubic) DerivY(x, y, z float64) float64 {
	return tri.eval(x, y, z, 0, 1, 0)
}

// DerivZ computes df/dz at (x, y, z).
func (tri *TriCubic) DerivZ(x, y, z float64) float64 {
	return tri.eval(x, y, z, 0, 0, 1)
}

// DerivXX computes d^2f/dx^2 at (x, y, z).
func (tri *TriCubic) DerivXX(x, y, z float64) float64 {
	return tri.eval(x, y, z, 2, 0, 0)
}

// DerivYY computes d^2f/dy^2 at (x, y, z).
func (tri *TriCubic) DerivYY(x, y, z float64) float64 {
	return tri.eval(x, y, z, 0, 2, 0)
}

// DerivZZ computes d^2f/dz^2 at (x, y, z).
func (tri *TriCubic) DerivZZ(x, y, z float64) float64 {
	return tri.eval(x, y, z, 0, 0, 2)
}

// DerivXY computes d^2f/dxdy at (x, y, z).
func (tri *TriCubic) DerivXY(x, y, z float64) float64 {
	return tri.eval(x, y, z, 1, 1, 0)
}

// DerivXZ computes d^2f/dxdz at (x, y, z).
func (tri *TriCubic) DerivXZ(x, y, z float64) float64 {
	return tri.eval(x, y, z, 1, 0, 1)
}

// DerivYZ computes d^2f/dydz at (x, y, z).
func (tri *TriCubic) DerivYZ(x, y, z float64) float64 {
	return tri.eval(x, y, z, 0, 1, 1)
}

// Partial computes the partial derivative with nx, ny, and nz orders along
// each axis. At most two orders in total are supported.
func (tri *TriCubic) Partial(nx, ny, nz int, x, y, z float64) (float64, error) {
	if err := checkOrders(nx, ny, nz); err != nil {
		return 0, err
	}
	return tri.eval(x, y, z, nx, ny, nz), nil
}

// EvalAll evaluates the spline at every point (xs[i], ys[i], zs[i]). If an
// output array is given, the output is written to that array.
func (tri *TriCubic) EvalAll(
	xs, ys, zs []float64, out ...[]float64,
) ([]float64, error) {
	return tri.PartialAll(0, 0, 0, xs, ys, zs, out...)
}

// PartialAll is the array version of Partial.
func (tri *TriCubic) PartialAll(
	nx, ny, nz int, xs, ys, zs []float64, out ...[]float64,
) ([]float64, error) {
	if err := checkOrders(nx, ny, nz); err != nil {
		return nil, err
	} else if len(xs) != len(ys) || len(xs) != len(zs) {
		return nil, fmt.Errorf(
			"len(xs) = %d, len(ys) = %d, and len(zs) = %d: %w",
			len(xs), len(ys), len(zs), ErrShapeMismatch,
		)
	}
	vals, err := outBuffer(len(xs), out)
	if err != nil {
		return nil, err
	}
	for i := range xs {
		vals[i] = tri.eval(xs[i], ys[i], zs[i], nx, ny, nz)
	}
	return vals, nil
}

// Equal returns true if both splines have the same grids and boundary
// condition and bit-identical coefficients.
func (tri *TriCubic) Equal(other *TriCubic) bool {
	return cmp.Equal(tri.xs, other.xs) && cmp.Equal(tri.ys, other.ys) &&
		cmp.Equal(tri.zs, other.zs) && cmp.Equal(tri.bc, other.bc) &&
		tri.coeffs.equal(other.coeffs)
}
