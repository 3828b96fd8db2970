package interpolate

import (
	"fmt"
)

var axisNames = []string{"x", "y", "z"}

// buildTensor computes the cell coefficients of a 2D or 3D spline through
// vals, a row-major array whose shape is given by the node counts of grids.
//
// Partial derivatives are estimated at every node by running 1D splines along
// lines of previously computed fields. Field o is the partial derivative whose
// per-axis orders are the bits of o, with x as the most significant bit. It is
// found by differentiating the field with the lowest set bit of o cleared
// along the corresponding axis, so f_xy is the y-derivative of f_x, f_xz and
// f_yz are the z-derivatives of f_x and f_y and f_xyz is the z-derivative of
// f_xy.
func buildTensor(
	grids []Grid, vals []float64, bc BoundaryCondition,
) (*Coefficients, error) {
	dim := len(grids)
	shape, steps := make([]int, dim), make([]float64, dim)
	n := 1
	for ax, g := range grids {
		if err := g.validate(); err != nil {
			return nil, fmt.Errorf("%s axis: %w", axisNames[ax], err)
		} else if err := bc.check(); err != nil {
			return nil, fmt.Errorf("%s axis: %w", axisNames[ax], err)
		}
		shape[ax], steps[ax] = g.Count, g.Step
		n *= g.Count
	}
	if len(vals) != n {
		return nil, fmt.Errorf(
			"len(vals) = %d, but the grids have shape %v (%d nodes): %w",
			len(vals), shape, n, ErrShapeMismatch,
		)
	}

	fields := make([][]float64, 1<<uint(dim))
	fields[0] = vals
	for o := 1; o < len(fields); o++ {
		low := o & -o
		ax := dim - 1 - bitIndex(low)
		field, err := derivField(fields[o^low], shape, ax, steps[ax], bc)
		if err != nil {
			return nil, err
		}
		fields[o] = field
	}

	cells := make([]int, dim)
	for ax := range shape {
		cells[ax] = shape[ax] - 1
	}
	coeffs := newCoefficients(cells)
	if err := hermiteCells(fields, shape, steps, coeffs); err != nil {
		return nil, err
	}
	return coeffs, nil
}

func bitIndex(bit int) int {
	i := 0
	for bit > 1 {
		bit >>= 1
		i++
	}
	return i
}

// strides returns the row-major strides of an array with the given shape.
func strides(shape []int) []int {
	out := make([]int, len(shape))
	s := 1
	for ax := len(shape) - 1; ax >= 0; ax-- {
		out[ax] = s
		s *= shape[ax]
	}
	return out
}

// derivField splines every line of src along axis ax and returns the first
// derivative of those splines at every node.
func derivField(
	src []float64, shape []int, ax int, h float64, bc BoundaryCondition,
) ([]float64, error) {
	n := shape[ax]
	stride := strides(shape)[ax]
	lines := len(src) / n
	dst := make([]float64, len(src))

	err := forEach(lines, func() func(int) error {
		ls := newLineSolver(n)
		ds := make([]float64, n)
		return func(line int) error {
			base := (line/stride)*stride*n + line%stride
			for i := range ls.fs {
				ls.fs[i] = src[base+i*stride]
			}
			if err := ls.solve(h, bc); err != nil {
				return fmt.Errorf("line %d along %s axis: %w",
					line, axisNames[ax], err)
			}
			ls.derivsAt(h, ds)
			for i, d := range ds {
				dst[base+i*stride] = d
			}
			return nil
		}
	})

	if err != nil {
		return nil, err
	}
	return dst, nil
}

// hermiteCells gathers the Hermite data at the corners of every cell and
// converts it into power-basis coefficients in the physical offsets from each
// cell's low corner.
//
// Corner derivatives are scaled by the step sizes so the fixed transforms for
// the unit cell can be used, and coefficient (p, q[, r]) is then divided by
// hx^p hy^q [hz^r].
func hermiteCells(
	fields [][]float64, shape []int, steps []float64, coeffs *Coefficients,
) error {
	dim := len(shape)
	var tr *transform
	switch dim {
	case 2:
		tr = hermite2
	case 3:
		tr = hermite3
	default:
		panic(fmt.Sprintf("No Hermite transform for %d dimensions.", dim))
	}

	size := coeffs.cellSize
	nodeStrides, cells := strides(shape), coeffs.shape[:dim]

	// Corner slot s reads field slotField[s] at a flat offset of
	// slotOffset[s] from the cell's low corner.
	slotField, slotOffset := make([]int, size), make([]int, size)
	slotScale, powScale := make([]float64, size), make([]float64, size)
	for s := 0; s < size; s++ {
		field, offset, scale, pow := 0, 0, 1.0, 1.0
		rem := s
		for ax := dim - 1; ax >= 0; ax-- {
			a := rem % 4
			rem /= 4

			off, order := hermiteSlot(a)
			field |= order << uint(dim-1-ax)
			offset += off * nodeStrides[ax]
			if order == 1 {
				scale *= steps[ax]
			}
			// The same index read as a coefficient has power a along ax.
			for p := 0; p < a; p++ {
				pow /= steps[ax]
			}
		}
		slotField[s], slotOffset[s] = field, offset
		slotScale[s], powScale[s] = scale, pow
	}

	nCells := coeffs.Len() / size
	return forEach(nCells, func() func(int) error {
		corner := make([]float64, size)
		return func(c int) error {
			base, rem := 0, c
			for ax := dim - 1; ax >= 0; ax-- {
				base += (rem % cells[ax]) * nodeStrides[ax]
				rem /= cells[ax]
			}

			for s := range corner {
				corner[s] = fields[slotField[s]][base+slotOffset[s]] *
					slotScale[s]
			}
			out := coeffs.cell(c)
			tr.applyAt(corner, out)
			for s := range out {
				out[s] *= powScale[s]
			}
			return nil
		}
	})
}
