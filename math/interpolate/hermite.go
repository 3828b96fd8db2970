package interpolate

import (
	"github.com/znasipak/multispline/math/mat"
)

// powerToHermite maps the power-basis coefficients of a cubic on [0, 1] to
// its Hermite data, (p(0), p(1), p'(0), p'(1)).
var powerToHermite = mat.NewMatrix([]float64{
	1, 0, 0, 0,
	1, 1, 1, 1,
	0, 1, 0, 0,
	0, 1, 2, 3,
}, 4, 4)

// hermite1 converts the Hermite data of a cubic on [0, 1] into its
// power-basis coefficients. Every entry of the inverse is a small integer and
// is computed exactly.
var hermite1 = powerToHermite.Invert()

var (
	// hermite2 is the 16 x 16 bicubic transform. It acts on corner vectors
	// indexed by 4*a + b, where a and b are Hermite slots along x and y.
	hermite2 = newTransform(hermite1.Kron(hermite1))
	// hermite3 is the 64 x 64 tricubic transform, acting on corner vectors
	// indexed by 16*a + 4*b + c.
	hermite3 = newTransform(hermite1.Kron(hermite1).Kron(hermite1))
)

// transform is a fixed square matrix stored as the non-zero entries of each
// row. Most entries of the tensor-product Hermite matrices are zero (3096 of
// the 4096 entries of the tricubic one).
type transform struct {
	rows [][]entry
}

type entry struct {
	col int
	val float64
}

func newTransform(m *mat.Matrix) *transform {
	tr := &transform{rows: make([][]entry, m.Height)}
	for i := range tr.rows {
		for j := 0; j < m.Width; j++ {
			if v := m.At(i, j); v != 0 {
				tr.rows[i] = append(tr.rows[i], entry{j, v})
			}
		}
	}
	return tr
}

// applyAt computes m * xs and writes it to out.
func (tr *transform) applyAt(xs, out []float64) {
	for i, row := range tr.rows {
		sum := 0.0
		for _, e := range row {
			sum += e.val * xs[e.col]
		}
		out[i] = sum
	}
}

// hermiteSlot describes one entry of a Hermite corner vector along one axis:
// the node offset from the cell's low corner and the derivative order.
func hermiteSlot(a int) (offset, order int) { return a & 1, a >> 1 }
