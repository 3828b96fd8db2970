package main

import (
	"fmt"
	"math"

	"github.com/znasipak/multispline/math/interpolate"
)

// gridSpline holds a 1D, 2D, or 3D spline. Exactly one of sp1, sp2, and sp3
// is non-nil.
type gridSpline struct {
	grids []interpolate.Grid
	bc    interpolate.BoundaryCondition
	sp1   *interpolate.Spline
	sp2   *interpolate.BiCubic
	sp3   *interpolate.TriCubic
}

func newGridSpline(
	grids []interpolate.Grid, vals []float64, bc interpolate.BoundaryCondition,
) (*gridSpline, error) {
	sp := &gridSpline{grids: grids, bc: bc}
	var err error
	switch len(grids) {
	case 1:
		sp.sp1, err = interpolate.NewSpline(grids[0], vals, bc)
	case 2:
		sp.sp2, err = interpolate.NewBiCubic(grids[0], grids[1], vals, bc)
	case 3:
		sp.sp3, err = interpolate.NewTriCubic(
			grids[0], grids[1], grids[2], vals, bc,
		)
	default:
		return nil, fmt.Errorf("Splines cannot have %d dimensions.", len(grids))
	}
	if err != nil {
		return nil, err
	}
	return sp, nil
}

// partialAll evaluates the partial derivative with the given per-axis orders
// at every point in coords, which holds one coordinate array per axis.
func (sp *gridSpline) partialAll(
	orders []int, coords [][]float64,
) ([]float64, error) {
	if len(orders) != len(sp.grids) || len(coords) != len(sp.grids) {
		return nil, fmt.Errorf(
			"%d orders and %d coordinate arrays given for a %dD spline: %w",
			len(orders), len(coords), len(sp.grids),
			interpolate.ErrShapeMismatch,
		)
	}

	switch {
	case sp.sp1 != nil:
		return sp.sp1.PartialAll(orders[0], coords[0])
	case sp.sp2 != nil:
		return sp.sp2.PartialAll(orders[0], orders[1], coords[0], coords[1])
	default:
		return sp.sp3.PartialAll(
			orders[0], orders[1], orders[2], coords[0], coords[1], coords[2],
		)
	}
}

// nodeCoords returns the coordinates of every grid node, ordered the same way
// as the samples.
func (sp *gridSpline) nodeCoords() [][]float64 {
	n := 1
	for _, g := range sp.grids {
		n *= g.Count
	}

	coords := make([][]float64, len(sp.grids))
	for ax := range coords {
		coords[ax] = make([]float64, n)
	}
	for flat := 0; flat < n; flat++ {
		rem := flat
		for ax := len(sp.grids) - 1; ax >= 0; ax-- {
			g := sp.grids[ax]
			coords[ax][flat] = g.Node(rem % g.Count)
			rem /= g.Count
		}
	}
	return coords
}

// checkNodes evaluates the spline at every node and summarizes the absolute
// differences from the samples.
func (sp *gridSpline) checkNodes(vals []float64) (residuals, error) {
	evals, err := sp.partialAll(make([]int, len(sp.grids)), sp.nodeCoords())
	if err != nil {
		return residuals{}, err
	} else if len(evals) != len(vals) {
		return residuals{}, fmt.Errorf(
			"%d samples given for %d nodes: %w",
			len(vals), len(evals), interpolate.ErrShapeMismatch,
		)
	}

	diffs := make([]float64, len(vals))
	for i := range diffs {
		diffs[i] = math.Abs(evals[i] - vals[i])
	}
	return summarize(diffs)
}
