package interpolate

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample2(f func(x, y float64) float64, gx, gy Grid) []float64 {
	vals := make([]float64, gx.Count*gy.Count)
	for i := 0; i < gx.Count; i++ {
		for j := 0; j < gy.Count; j++ {
			vals[i*gy.Count+j] = f(gx.Node(i), gy.Node(j))
		}
	}
	return vals
}

func sample3(f func(x, y, z float64) float64, gx, gy, gz Grid) []float64 {
	vals := make([]float64, gx.Count*gy.Count*gz.Count)
	for i := 0; i < gx.Count; i++ {
		for j := 0; j < gy.Count; j++ {
			for k := 0; k < gz.Count; k++ {
				vals[(i*gy.Count+j)*gz.Count+k] =
					f(gx.Node(i), gy.Node(j), gz.Node(k))
			}
		}
	}
	return vals
}

func smooth2(x, y float64) float64 { return math.Sin(x)*math.Cos(2*y) + x*y }

func smooth3(x, y, z float64) float64 {
	return math.Sin(x+0.5*z)*math.Cos(2*y) + x*y*z
}

func poly2(x, y float64) float64 { return x*x*x + x*x*y + y*y*y - 2*x*y + 1 }

func poly3(x, y, z float64) float64 {
	return x*x*x + x*y*z + y*y*z - z*z*z + x*x*y
}

func TestBiCubicNodes(t *testing.T) {
	gx, gy := mustGrid(t, 0, 0.25, 9), mustGrid(t, -1, 0.2, 11)
	vals := sample2(smooth2, gx, gy)

	for _, bc := range allBCs {
		bi, err := NewBiCubic(gx, gy, vals, bc)
		require.NoError(t, err, bc.String())
		for i := 0; i < gx.Count; i++ {
			for j := 0; j < gy.Count; j++ {
				assert.InDelta(t, vals[i*gy.Count+j],
					bi.Eval(gx.Node(i), gy.Node(j)), 1e-12,
					"%s: node (%d, %d)", bc, i, j)
			}
		}
	}
}

func TestBiCubicPolynomial(t *testing.T) {
	gx, gy := mustGrid(t, -1, 0.4, 6), mustGrid(t, -1, 0.4, 6)
	vals := sample2(poly2, gx, gy)

	for _, bc := range []BoundaryCondition{NotAKnotBC(), E3BC()} {
		bi, err := NewBiCubic(gx, gy, vals, bc)
		require.NoError(t, err)
		for _, p := range [][2]float64{{-0.9, 0.3}, {0.13, -0.77}, {0.95, 0.95}} {
			x, y := p[0], p[1]
			assert.InDelta(t, poly2(x, y), bi.Eval(x, y), 1e-10)
			assert.InDelta(t, 3*x*x+2*x*y-2*y, bi.DerivX(x, y), 1e-10)
			assert.InDelta(t, x*x+3*y*y-2*x, bi.DerivY(x, y), 1e-10)
			assert.InDelta(t, 6*x+2*y, bi.DerivXX(x, y), 1e-9)
			assert.InDelta(t, 6*y, bi.DerivYY(x, y), 1e-9)
			assert.InDelta(t, 2*x-2, bi.DerivXY(x, y), 1e-9)
		}
	}
}

func TestBiCubicContinuity(t *testing.T) {
	gx, gy := mustGrid(t, 0, 0.3, 7), mustGrid(t, 1, 0.5, 8)
	bi, err := NewBiCubic(gx, gy, sample2(smooth2, gx, gy), E3BC())
	require.NoError(t, err)

	cellsY := gy.Count - 1
	orders := [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	for i := 1; i < gx.Count-1; i++ {
		for j := 0; j < cellsY; j++ {
			left := bi.coeffs.cell((i-1)*cellsY + j)
			right := bi.coeffs.cell(i*cellsY + j)
			for _, ty := range []float64{0, 0.1, 0.37, 0.5} {
				for _, o := range orders {
					assert.InDelta(t,
						horner2(right, 0, ty, o[0], o[1]),
						horner2(left, gx.Step, ty, o[0], o[1]), 1e-9,
						"x edge %d, cell %d, ty = %g, orders %v", i, j, ty, o,
					)
				}
			}
		}
	}
}

func TestBiCubicMatchesSplines(t *testing.T) {
	gx, gy := mustGrid(t, 0, 0.25, 9), mustGrid(t, -1, 0.2, 11)
	vals := sample2(smooth2, gx, gy)

	for _, bc := range allBCs {
		bi, err := NewBiCubic(gx, gy, vals, bc)
		require.NoError(t, err)

		for _, j := range []int{0, 4, gy.Count - 1} {
			row := make([]float64, gx.Count)
			for i := range row {
				row[i] = vals[i*gy.Count+j]
			}
			sp, err := NewSpline(gx, row, bc)
			require.NoError(t, err)
			y := gy.Node(j)
			for _, x := range []float64{0, 0.33, 1.01, 1.9, 2} {
				assert.InDelta(t, sp.Eval(x), bi.Eval(x, y), 1e-10)
				assert.InDelta(t, sp.Deriv(x), bi.DerivX(x, y), 1e-10)
			}
		}

		for _, i := range []int{0, 3, gx.Count - 1} {
			sp, err := NewSpline(gy, vals[i*gy.Count:(i+1)*gy.Count], bc)
			require.NoError(t, err)
			x := gx.Node(i)
			for _, y := range []float64{-1, -0.71, 0.05, 0.99, 1} {
				assert.InDelta(t, sp.Eval(y), bi.Eval(x, y), 1e-10)
				assert.InDelta(t, sp.Deriv(y), bi.DerivY(x, y), 1e-10)
			}
		}
	}
}

func TestBiCubicClamped(t *testing.T) {
	gx, gy := mustGrid(t, 0, 0.25, 9), mustGrid(t, -1, 0.2, 11)
	bi, err := NewBiCubic(gx, gy, sample2(smooth2, gx, gy), ClampedBC(0.5, -1))
	require.NoError(t, err)

	for j := 0; j < gy.Count; j++ {
		y := gy.Node(j)
		assert.InDelta(t, 0.5, bi.DerivX(gx.Node(0), y), 1e-10)
		assert.InDelta(t, -1, bi.DerivX(gx.End(), y), 1e-10)
	}
	for i := 0; i < gx.Count; i++ {
		x := gx.Node(i)
		assert.InDelta(t, 0.5, bi.DerivY(x, gy.Node(0)), 1e-10)
		assert.InDelta(t, -1, bi.DerivY(x, gy.End()), 1e-10)
	}
}

func TestBiCubicCoefficients(t *testing.T) {
	gx, gy := mustGrid(t, 0, 0.25, 9), mustGrid(t, -1, 0.2, 11)
	vals := sample2(smooth2, gx, gy)
	bi, err := NewBiCubic(gx, gy, vals, E3BC())
	require.NoError(t, err)

	assert.Equal(t, []int{8, 10, 4, 4}, bi.Coefficients().Shape())
	c, err := bi.Coeff(2, 3, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, vals[2*gy.Count+3], c)

	c, err = bi.Coeff(2, 3, 0, 1)
	require.NoError(t, err)
	assert.InDelta(t, bi.DerivY(gx.Node(2), gy.Node(3)), c, 1e-12)

	_, err = bi.Coeff(8, 0, 0, 0)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = bi.Coeff(0, 0, 0, 4)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestBiCubicErrors(t *testing.T) {
	gx, gy := mustGrid(t, 0, 0.25, 9), mustGrid(t, -1, 0.2, 4)
	vals := sample2(smooth2, gx, gy)

	_, err := NewBiCubic(gx, gy, vals[1:], NaturalBC())
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, err = NewBiCubic(gx, Grid{0, -1, 4}, vals, NaturalBC())
	assert.ErrorIs(t, err, ErrInvalidGrid)
	assert.True(t, strings.HasPrefix(err.Error(), "y axis"), err.Error())

	_, err = NewUniformBiCubic(0, 1, 3, 0, 1, 4, make([]float64, 12), NaturalBC())
	assert.ErrorIs(t, err, ErrInvalidGrid)

	bi, err := NewBiCubic(gx, gy, vals, NaturalBC())
	require.NoError(t, err)
	for _, o := range [][2]int{{3, 0}, {0, 3}, {2, 1}, {1, 2}, {-1, 0}} {
		_, err = bi.Partial(o[0], o[1], 0.5, 0)
		assert.ErrorIs(t, err, ErrUnsupportedDerivative, "orders %v", o)
	}
	_, err = bi.PartialAll(2, 1, []float64{0}, []float64{0})
	assert.ErrorIs(t, err, ErrUnsupportedDerivative)
	_, err = bi.PartialAll(0, 0, []float64{0, 1}, []float64{0})
	assert.ErrorIs(t, err, ErrShapeMismatch)
	_, err = bi.EvalAll([]float64{0.5, 1}, []float64{0.5})
	assert.ErrorIs(t, err, ErrShapeMismatch)
	_, err = bi.EvalAll([]float64{0.5, 1}, []float64{0.5, 0}, make([]float64, 1))
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestBiCubicFourNodes(t *testing.T) {
	gx, gy := mustGrid(t, -1, 0.5, 4), mustGrid(t, 0, 1, 4)
	bi, err := NewBiCubic(gx, gy, sample2(poly2, gx, gy), DefaultBC())
	require.NoError(t, err)

	for _, p := range [][2]float64{{-0.8, 0.3}, {0, 1.5}, {0.4, 2.9}} {
		x, y := p[0], p[1]
		assert.InDelta(t, poly2(x, y), bi.Eval(x, y), 1e-10, "(%g, %g)", x, y)
		assert.InDelta(t, 2*x-2, bi.DerivXY(x, y), 1e-9, "(%g, %g)", x, y)
	}
}

func TestBiCubicEvalAll(t *testing.T) {
	gx, gy := mustGrid(t, -1, 0.4, 6), mustGrid(t, -1, 0.4, 6)
	bi, err := NewBiCubic(gx, gy, sample2(poly2, gx, gy), NotAKnotBC())
	require.NoError(t, err)

	xs, ys := []float64{-0.5, 0, 0.7}, []float64{0.2, -0.3, 0.9}
	out := make([]float64, 3)
	_, err = bi.EvalAll(xs, ys, out)
	require.NoError(t, err)
	dxy, err := bi.PartialAll(1, 1, xs, ys)
	require.NoError(t, err)
	for i := range xs {
		assert.InDelta(t, poly2(xs[i], ys[i]), out[i], 1e-10)
		assert.InDelta(t, 2*xs[i]-2, dxy[i], 1e-9)

		p, err := bi.Partial(1, 1, xs[i], ys[i])
		require.NoError(t, err)
		assert.Equal(t, bi.DerivXY(xs[i], ys[i]), p)
	}
}

func TestBiCubicDeterministic(t *testing.T) {
	defer func(n int) { NumCores = n }(NumCores)

	gx, gy := mustGrid(t, 0, 0.1, 40), mustGrid(t, 0, 0.1, 33)
	vals := sample2(smooth2, gx, gy)

	NumCores = 1
	bi1, err := NewBiCubic(gx, gy, vals, E3BC())
	require.NoError(t, err)
	NumCores = 7
	bi2, err := NewBiCubic(gx, gy, vals, E3BC())
	require.NoError(t, err)

	assert.True(t, bi1.Equal(bi2))
	assert.Equal(t, bi1.Coefficients().Values(), bi2.Coefficients().Values())

	bi3, err := NewBiCubic(gx, gy, vals, NaturalBC())
	require.NoError(t, err)
	assert.False(t, bi1.Equal(bi3))
}

func TestTriCubicNodes(t *testing.T) {
	gx, gy, gz := mustGrid(t, 0, 0.3, 5), mustGrid(t, -1, 0.25, 6),
		mustGrid(t, 2, 0.5, 7)
	vals := sample3(smooth3, gx, gy, gz)

	for _, bc := range allBCs {
		tri, err := NewTriCubic(gx, gy, gz, vals, bc)
		require.NoError(t, err, bc.String())
		for i := 0; i < gx.Count; i++ {
			for j := 0; j < gy.Count; j++ {
				for k := 0; k < gz.Count; k++ {
					f := vals[(i*gy.Count+j)*gz.Count+k]
					assert.InDelta(t, f,
						tri.Eval(gx.Node(i), gy.Node(j), gz.Node(k)), 1e-11,
						"%s: node (%d, %d, %d)", bc, i, j, k)
				}
			}
		}
	}
}

func TestTriCubicPolynomial(t *testing.T) {
	g := mustGrid(t, -1, 0.4, 6)
	vals := sample3(poly3, g, g, g)

	tri, err := NewTriCubic(g, g, g, vals, NotAKnotBC())
	require.NoError(t, err)
	points := [][3]float64{{-0.9, 0.3, 0.5}, {0.13, -0.77, 0.01}, {1, 1, -1}}
	for _, p := range points {
		x, y, z := p[0], p[1], p[2]
		assert.InDelta(t, poly3(x, y, z), tri.Eval(x, y, z), 1e-10)
		assert.InDelta(t, 3*x*x+y*z+2*x*y, tri.DerivX(x, y, z), 1e-10)
		assert.InDelta(t, x*z+2*y*z+x*x, tri.DerivY(x, y, z), 1e-10)
		assert.InDelta(t, x*y+y*y-3*z*z, tri.DerivZ(x, y, z), 1e-10)
		assert.InDelta(t, 6*x+2*y, tri.DerivXX(x, y, z), 1e-9)
		assert.InDelta(t, 2*z, tri.DerivYY(x, y, z), 1e-9)
		assert.InDelta(t, -6*z, tri.DerivZZ(x, y, z), 1e-9)
		assert.InDelta(t, z+2*x, tri.DerivXY(x, y, z), 1e-9)
		assert.InDelta(t, y, tri.DerivXZ(x, y, z), 1e-9)
		assert.InDelta(t, x+2*y, tri.DerivYZ(x, y, z), 1e-9)
	}
}

func TestTriCubicMatchesSplines(t *testing.T) {
	gx, gy, gz := mustGrid(t, 0, 0.3, 5), mustGrid(t, -1, 0.25, 6),
		mustGrid(t, 2, 0.5, 7)
	vals := sample3(smooth3, gx, gy, gz)
	tri, err := NewTriCubic(gx, gy, gz, vals, E3BC())
	require.NoError(t, err)

	i, j := 2, 5
	line := vals[(i*gy.Count+j)*gz.Count : (i*gy.Count+j+1)*gz.Count]
	sp, err := NewSpline(gz, line, E3BC())
	require.NoError(t, err)
	x, y := gx.Node(i), gy.Node(j)
	for _, z := range []float64{2, 2.2, 3.1, 4.75, 5} {
		assert.InDelta(t, sp.Eval(z), tri.Eval(x, y, z), 1e-10)
		assert.InDelta(t, sp.Deriv(z), tri.DerivZ(x, y, z), 1e-10)
	}
}

func TestTriCubicContinuity(t *testing.T) {
	gx, gy, gz := mustGrid(t, 0, 0.3, 5), mustGrid(t, -1, 0.25, 6),
		mustGrid(t, 2, 0.5, 7)
	tri, err := NewTriCubic(gx, gy, gz, sample3(smooth3, gx, gy, gz), E3BC())
	require.NoError(t, err)

	// Across the z faces between cells k-1 and k.
	cy, cz := gy.Count-1, gz.Count-1
	i, j := 1, 2
	for k := 1; k < cz; k++ {
		below := tri.coeffs.cell((i*cy+j)*cz + k - 1)
		above := tri.coeffs.cell((i*cy+j)*cz + k)
		for _, o := range [][3]int{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}} {
			assert.InDelta(t,
				horner3(above, 0.1, 0.2, 0, o[0], o[1], o[2]),
				horner3(below, 0.1, 0.2, gz.Step, o[0], o[1], o[2]), 1e-9,
				"z face %d, orders %v", k, o,
			)
		}
	}
}

func TestTriCubicErrors(t *testing.T) {
	gx, gy, gz := mustGrid(t, 0, 0.3, 5), mustGrid(t, -1, 0.25, 6),
		mustGrid(t, 2, 0.5, 4)
	vals := sample3(smooth3, gx, gy, gz)

	_, err := NewTriCubic(gx, gy, gz, vals[:len(vals)-1], NaturalBC())
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, err = NewTriCubic(gx, gy, Grid{2, 0, 4}, vals, E3BC())
	assert.ErrorIs(t, err, ErrInvalidGrid)
	assert.True(t, strings.HasPrefix(err.Error(), "z axis"), err.Error())

	_, err = NewTriCubic(gx, gy, gz, vals, DefaultBC())
	assert.NoError(t, err)

	_, err = NewTriCubic(gx, gy, gz, vals, BoundaryCondition{Kind: 10})
	assert.ErrorIs(t, err, ErrUnknownBoundaryCondition)

	_, err = NewUniformTriCubic(
		0, 1, 4, 0, 1, 4, 0, 0, 4, make([]float64, 64), NaturalBC(),
	)
	assert.ErrorIs(t, err, ErrInvalidGrid)

	tri, err := NewTriCubic(gx, gy, gz, vals, NaturalBC())
	require.NoError(t, err)
	assert.Equal(t, []int{4, 5, 3, 4, 4, 4}, tri.Coefficients().Shape())

	for _, o := range [][3]int{{1, 1, 1}, {2, 0, 1}, {0, 0, 3}} {
		_, err = tri.Partial(o[0], o[1], o[2], 0, 0, 2)
		assert.ErrorIs(t, err, ErrUnsupportedDerivative, "orders %v", o)
	}
	_, err = tri.PartialAll(0, 0, 0, []float64{0}, []float64{0}, nil)
	assert.ErrorIs(t, err, ErrShapeMismatch)
	_, err = tri.EvalAll([]float64{0}, []float64{0}, nil)
	assert.ErrorIs(t, err, ErrShapeMismatch)
	_, err = tri.EvalAll(
		[]float64{0, 1}, []float64{0, 1}, []float64{2, 3}, make([]float64, 1),
	)
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, err = tri.Coeff(0, 0, 3, 0, 0, 0)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestTriCubicDeterministic(t *testing.T) {
	defer func(n int) { NumCores = n }(NumCores)

	gx, gy, gz := mustGrid(t, 0, 0.1, 12), mustGrid(t, 0, 0.1, 9),
		mustGrid(t, 0, 0.1, 10)
	vals := sample3(smooth3, gx, gy, gz)

	NumCores = 1
	tri1, err := NewTriCubic(gx, gy, gz, vals, E3BC())
	require.NoError(t, err)
	NumCores = 5
	tri2, err := NewTriCubic(gx, gy, gz, vals, E3BC())
	require.NoError(t, err)

	assert.True(t, tri1.Equal(tri2))

	xs, ys, zs := []float64{0.3, 0.55}, []float64{0.1, 0.7}, []float64{0.05, 0.8}
	vals1, err := tri1.EvalAll(xs, ys, zs)
	require.NoError(t, err)
	vals2, err := tri2.EvalAll(xs, ys, zs)
	require.NoError(t, err)
	assert.Equal(t, vals1, vals2)
}

func BenchmarkNewBiCubic(b *testing.B) {
	gx, _ := NewGrid(0, 0.01, 200)
	gy, _ := NewGrid(0, 0.01, 200)
	vals := sample2(smooth2, gx, gy)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		NewBiCubic(gx, gy, vals, E3BC())
	}
}

func BenchmarkNewTriCubic(b *testing.B) {
	g, _ := NewGrid(0, 0.02, 50)
	vals := sample3(smooth3, g, g, g)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		NewTriCubic(g, g, g, vals, E3BC())
	}
}

func BenchmarkTriCubicEval(b *testing.B) {
	g, _ := NewGrid(0, 0.02, 50)
	tri, _ := NewTriCubic(g, g, g, sample3(smooth3, g, g, g), E3BC())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x := float64(i%977) * 0.001
		tri.Eval(x, 0.5*x, 0.25+0.3*x)
	}
}
