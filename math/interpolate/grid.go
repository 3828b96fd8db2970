package interpolate

import (
	"fmt"
	"math"
)

const (
	// MinNodes is the smallest number of nodes allowed along any axis.
	MinNodes = 4
	// uniformTol is the relative tolerance used by NewGridFromNodes when
	// deciding whether node spacing is uniform.
	uniformTol = 1e-10
)

// Grid is a uniformly spaced sequence of Count nodes starting at Origin and
// separated by Step.
type Grid struct {
	Origin, Step float64
	Count        int
}

// NewGrid creates a grid after checking that it has at least MinNodes nodes
// and a finite, positive step.
func NewGrid(origin, step float64, count int) (Grid, error) {
	g := Grid{Origin: origin, Step: step, Count: count}
	if err := g.validate(); err != nil {
		return Grid{}, err
	}
	return g, nil
}

// NewGridFromNodes converts an explicit, increasing sequence of node
// coordinates into a Grid. The nodes must be uniformly spaced to within a
// relative tolerance of 1e-10.
func NewGridFromNodes(xs []float64) (Grid, error) {
	n := len(xs)
	if n < MinNodes {
		return Grid{}, fmt.Errorf(
			"%d nodes given, but at least %d are required: %w",
			n, MinNodes, ErrInvalidGrid,
		)
	}

	span := xs[n-1] - xs[0]
	g := Grid{Origin: xs[0], Step: span / float64(n-1), Count: n}
	if err := g.validate(); err != nil {
		return Grid{}, err
	}

	tol := uniformTol * math.Max(math.Abs(span),
		math.Max(math.Abs(xs[0]), math.Abs(xs[n-1])))
	for i, x := range xs {
		if math.Abs(x-g.Node(i)) > tol {
			return Grid{}, fmt.Errorf(
				"node %d is %g, but a uniform grid from %g to %g has %g "+
					"there: %w", i, x, xs[0], xs[n-1], g.Node(i), ErrInvalidGrid,
			)
		}
	}

	return g, nil
}

func (g Grid) validate() error {
	if g.Count < MinNodes {
		return fmt.Errorf(
			"grid has %d nodes, but at least %d are required: %w",
			g.Count, MinNodes, ErrInvalidGrid,
		)
	} else if !(g.Step > 0) || math.IsInf(g.Step, 0) {
		return fmt.Errorf(
			"grid step is %g, but must be finite and positive: %w",
			g.Step, ErrInvalidGrid,
		)
	} else if math.IsNaN(g.Origin) || math.IsInf(g.Origin, 0) {
		return fmt.Errorf(
			"grid origin is %g, but must be finite: %w", g.Origin, ErrInvalidGrid,
		)
	}
	return nil
}

// Node returns the coordinate of node i.
func (g Grid) Node(i int) float64 { return g.Origin + float64(i)*g.Step }

// End returns the coordinate of the last node.
func (g Grid) End() float64 { return g.Node(g.Count - 1) }

// Intervals returns the number of intervals between nodes, Count - 1.
func (g Grid) Intervals() int { return g.Count - 1 }

// Nodes returns the coordinates of every node.
func (g Grid) Nodes() []float64 {
	xs := make([]float64, g.Count)
	for i := range xs {
		xs[i] = g.Node(i)
	}
	return xs
}

// Cell returns the index of the interval used to evaluate x and the offset of
// x from the start of that interval. Points outside the grid are assigned to
// the nearest edge interval, so t is negative below the grid and larger than
// Step above it.
func (g Grid) Cell(x float64) (i int, t float64) {
	u := (x - g.Origin) / g.Step
	last := g.Count - 2
	switch {
	case !(u >= 0):
		i = 0
	case u >= float64(last):
		i = last
	default:
		i = int(u)
	}
	return i, x - g.Node(i)
}
