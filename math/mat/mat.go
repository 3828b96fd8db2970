/*mat contains routines for building small dense matrices. Everything here is
intended for matrices that are built once and reused many times, like the
fixed basis transforms used by the spline code, so clarity is preferred over
speed.
*/
package mat

import (
	"fmt"
	"math"
)

// Matrix represents a row-major matrix of float64 values.
type Matrix struct {
	Vals          []float64
	Width, Height int
}

// LUFactors contains the LU decomposition of a square matrix. Exporting this
// type allows calling routines to reuse a single decomposition for several
// solves.
type LUFactors struct {
	lu    Matrix
	pivot []int
}

// NewMatrix creates a matrix with the specified values and dimensions. vals is
// used directly, not copied.
func NewMatrix(vals []float64, width, height int) *Matrix {
	if width <= 0 {
		panic("width must be positive.")
	} else if height <= 0 {
		panic("height must be positive.")
	} else if width*height != len(vals) {
		panic(fmt.Sprintf(
			"height * width = %d, but len(vals) = %d.", width*height, len(vals),
		))
	}

	return &Matrix{Vals: vals, Width: width, Height: height}
}

// At returns the element in row i and column j.
func (m *Matrix) At(i, j int) float64 { return m.Vals[i*m.Width+j] }

// Kron computes the Kronecker product m1 (x) m2. Element (i1*h2 + i2,
// j1*w2 + j2) of the result is m1[i1, j1] * m2[i2, j2], so applying the
// result to a row-major flattened h1 x h2 array applies m1 along the slow
// index and m2 along the fast index.
func (m1 *Matrix) Kron(m2 *Matrix) *Matrix {
	w, h := m1.Width*m2.Width, m1.Height*m2.Height
	out := NewMatrix(make([]float64, w*h), w, h)
	for i1 := 0; i1 < m1.Height; i1++ {
		for j1 := 0; j1 < m1.Width; j1++ {
			a := m1.Vals[i1*m1.Width+j1]
			for i2 := 0; i2 < m2.Height; i2++ {
				row := (i1*m2.Height + i2) * w
				for j2 := 0; j2 < m2.Width; j2++ {
					out.Vals[row+j1*m2.Width+j2] = a * m2.Vals[i2*m2.Width+j2]
				}
			}
		}
	}
	return out
}

// Invert computes the inverse of a matrix.
func (m *Matrix) Invert() *Matrix {
	lu := m.LU()
	inv := NewMatrix(make([]float64, len(m.Vals)), m.Width, m.Height)
	return lu.InvertAt(inv)
}

// NewLUFactors creates an LUFactors instance of the requested dimensions.
func NewLUFactors(n int) *LUFactors {
	luf := new(LUFactors)
	luf.lu.Vals, luf.lu.Width, luf.lu.Height = make([]float64, n*n), n, n
	luf.pivot = make([]int, n)
	return luf
}

// LU returns the LU decomposition of a matrix.
func (m *Matrix) LU() *LUFactors {
	if m.Width != m.Height {
		panic("m is non-square.")
	}

	lu := NewLUFactors(m.Width)
	m.LUFactorsAt(lu)
	return lu
}

// LUFactorsAt stores the LU decomposition of a matrix at the specified
// location. Doolittle elimination with partial pivoting: row k of the
// decomposition corresponds to row pivot[k] of m.
func (m *Matrix) LUFactorsAt(luf *LUFactors) {
	if luf.lu.Width != m.Width || luf.lu.Height != m.Height {
		panic("luf has different dimensions than m.")
	}

	n := m.Width
	lu := luf.lu.Vals
	copy(lu, m.Vals)
	for i := 0; i < n; i++ {
		luf.pivot[i] = i
	}

	for k := 0; k < n; k++ {
		maxRow := findMaxRow(n, lu, k)
		if maxRow != k {
			swapRows(k, maxRow, n, lu)
			luf.pivot[k], luf.pivot[maxRow] = luf.pivot[maxRow], luf.pivot[k]
		}

		pivot := lu[k*n+k]
		if pivot == 0 {
			continue
		}
		for i := k + 1; i < n; i++ {
			lu[i*n+k] /= pivot
			l := lu[i*n+k]
			for j := k + 1; j < n; j++ {
				lu[i*n+j] -= l * lu[k*n+j]
			}
		}
	}
}

// findMaxRow returns the row at or below col whose entry in column col has the
// largest magnitude.
func findMaxRow(n int, m []float64, col int) int {
	max, maxRow := -1.0, col
	for i := col; i < n; i++ {
		val := math.Abs(m[i*n+col])
		if val > max {
			max, maxRow = val, i
		}
	}
	return maxRow
}

func swapRows(i1, i2, n int, lu []float64) {
	r1, r2 := lu[i1*n:(i1+1)*n], lu[i2*n:(i2+1)*n]
	for j := range r1 {
		r1[j], r2[j] = r2[j], r1[j]
	}
}

// SolveVector solves M * xs = bs for xs. bs and xs may point to the same
// memory.
func (luf *LUFactors) SolveVector(bs, xs []float64) []float64 {
	n := luf.lu.Width
	if n != len(bs) {
		panic("len(bs) != luf.Width")
	} else if n != len(xs) {
		panic("len(xs) != luf.Width")
	}

	ys := make([]float64, n)
	for i := 0; i < n; i++ {
		ys[i] = bs[luf.pivot[i]]
	}

	// L * y = P * b, L has a unit diagonal.
	lu := luf.lu.Vals
	for i := 0; i < n; i++ {
		sum := ys[i]
		for j := 0; j < i; j++ {
			sum -= lu[i*n+j] * ys[j]
		}
		ys[i] = sum
	}

	// U * x = y.
	for i := n - 1; i >= 0; i-- {
		sum := ys[i]
		for j := i + 1; j < n; j++ {
			sum -= lu[i*n+j] * xs[j]
		}
		xs[i] = sum / lu[i*n+i]
	}

	return xs
}

// InvertAt inverts the matrix represented by the given LU decomposition and
// writes the results into the specified out matrix.
func (luf *LUFactors) InvertAt(out *Matrix) *Matrix {
	n := luf.lu.Width
	if out.Width != out.Height {
		panic("out matrix is non-square.")
	} else if n != out.Width {
		panic("out matrix different size than m matrix.")
	}

	e, col := make([]float64, n), make([]float64, n)
	for j := 0; j < n; j++ {
		for i := range e {
			e[i] = 0
		}
		e[j] = 1
		luf.SolveVector(e, col)
		for i := 0; i < n; i++ {
			out.Vals[i*n+j] = col[i]
		}
	}

	return out
}
