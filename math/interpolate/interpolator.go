package interpolate

// Interpolator is a function of one variable which can be evaluated anywhere
// on the real line.
type Interpolator interface {
	Eval(x float64) float64
	EvalAll(xs []float64, out ...[]float64) ([]float64, error)
}

var (
	_ Interpolator = &Spline{}
)

// BiInterpolator is the two-variable version of Interpolator.
type BiInterpolator interface {
	Eval(x, y float64) float64
	EvalAll(xs, ys []float64, out ...[]float64) ([]float64, error)
}

var (
	_ BiInterpolator = &BiCubic{}
)

// TriInterpolator is the three-variable version of Interpolator.
type TriInterpolator interface {
	Eval(x, y, z float64) float64
	EvalAll(xs, ys, zs []float64, out ...[]float64) ([]float64, error)
}

var (
	_ TriInterpolator = &TriCubic{}
)
