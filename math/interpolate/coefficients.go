package interpolate

import (
	"fmt"
	"math"

	"github.com/google/go-cmp/cmp"
)

// bitwise compares floats by their bit patterns, so NaNs with the same
// payload are equal and -0 differs from +0.
var bitwise = cmp.Comparer(func(a, b float64) bool {
	return math.Float64bits(a) == math.Float64bits(b)
})

// Coefficients is an immutable, row-major array of polynomial coefficients.
// A 1D spline stores an (n-1, 4) array, a 2D spline an (nx-1, ny-1, 4, 4)
// array and a 3D spline an (nx-1, ny-1, nz-1, 4, 4, 4) array. The trailing
// indices are powers of the local offsets from the low corner of each cell.
//
// Nothing can modify a Coefficients after construction, so it can be shared
// between any number of goroutines.
type Coefficients struct {
	vals  []float64
	shape []int
	// cellSize is the number of coefficients in one cell, 4^dim.
	cellSize int
}

func newCoefficients(cells []int) *Coefficients {
	dim := len(cells)
	shape := make([]int, 2*dim)
	copy(shape, cells)
	n, cellSize := 1, 1
	for i, c := range cells {
		shape[dim+i] = 4
		n *= c
		cellSize *= 4
	}
	return &Coefficients{
		vals: make([]float64, n*cellSize), shape: shape, cellSize: cellSize,
	}
}

// Shape returns the dimensions of the coefficient array.
func (c *Coefficients) Shape() []int {
	shape := make([]int, len(c.shape))
	copy(shape, c.shape)
	return shape
}

// Len returns the total number of coefficients.
func (c *Coefficients) Len() int { return len(c.vals) }

// Values returns a copy of the flattened, row-major coefficient array.
func (c *Coefficients) Values() []float64 {
	vals := make([]float64, len(c.vals))
	copy(vals, c.vals)
	return vals
}

// At returns the coefficient at the given index. The index must have one
// entry for every dimension of Shape().
func (c *Coefficients) At(idx ...int) (float64, error) {
	flat, err := c.flatten(idx, c.shape)
	if err != nil {
		return 0, err
	}
	return c.vals[flat], nil
}

// Cell returns a copy of the coefficients of a single cell. The index must
// have one entry per grid axis.
func (c *Coefficients) Cell(idx ...int) ([]float64, error) {
	cell, err := c.flatten(idx, c.shape[:len(c.shape)/2])
	if err != nil {
		return nil, err
	}
	out := make([]float64, c.cellSize)
	copy(out, c.cell(cell))
	return out, nil
}

// equal returns true if both arrays have the same shape and bit-identical
// values.
func (c *Coefficients) equal(other *Coefficients) bool {
	return cmp.Equal(c.shape, other.shape) &&
		cmp.Equal(c.vals, other.vals, bitwise)
}

// cell returns the coefficients of the cell with the given flattened index
// without copying them.
func (c *Coefficients) cell(flat int) []float64 {
	return c.vals[flat*c.cellSize : (flat+1)*c.cellSize]
}

func (c *Coefficients) flatten(idx, shape []int) (int, error) {
	if len(idx) != len(shape) {
		return 0, fmt.Errorf(
			"%d indices given for an array with shape %v: %w",
			len(idx), c.shape, ErrOutOfRange,
		)
	}
	flat := 0
	for i, j := range idx {
		if j < 0 || j >= shape[i] {
			return 0, fmt.Errorf(
				"index %d of %v is outside [0, %d): %w",
				i, idx, shape[i], ErrOutOfRange,
			)
		}
		flat = flat*shape[i] + j
	}
	return flat, nil
}
