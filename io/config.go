package io

import (
	"fmt"
	"strings"

	"gopkg.in/gcfg.v1"

	"github.com/znasipak/multispline/math/interpolate"
)

const ExampleSplineFile = `[Spline]

#######################
# Required Parameters #
#######################

# Text table containing the sampled values, one sample per row. Rows are
# ordered with the last axis varying fastest: in 3D the sample at node
# (i, j, k) is on row (i*NY + j)*NZ + k.
Input = path/to/samples.txt
# Text table which evaluations are written to.
Output = path/to/evaluations.txt

# Number of grid axes: 1, 2, or 3.
Dimensions = 1

# Uniform grid along each axis: origin, spacing, and node count. Every axis
# needs at least 4 nodes. Only the axes up to Dimensions are read.
X0 = 0
DX = 0.1
NX = 11
# Y0 = 0
# DY = 0.1
# NY = 11
# Z0 = 0
# DZ = 0.1
# NZ = 11

#######################
# Optional Parameters #
#######################

# Boundary condition applied at both ends of every axis. One of
# natural, not-a-knot, clamped, or E(3). Default is E(3).
# Boundary = E(3)

# End slopes used by the clamped boundary condition.
# LoSlope = 0
# HiSlope = 0

# Column of Input which holds the samples. Default is 0.
# ValueColumn = 0

# Text table of query points with one coordinate per axis in its first
# columns. If this isn't set, the spline is only built (and checked, if Check
# is set).
# Queries = path/to/queries.txt

# Quantities written to Output at every query point. Can be given multiple
# times. Accepted values are Value, DerivX, DerivY, DerivZ, DerivXX, DerivYY,
# DerivZZ, DerivXY, DerivXZ, and DerivYZ, restricted to the axes which exist.
# Default is Value.
# Quantity = Value
# Quantity = DerivX

# Report statistics of the residuals at the grid nodes.
# Check = true

# Plot of the samples and the spline (1D only).
# PlotFile = spline.png

# Output files which are useful for profiling and debugging. Generally, there
# isn't a reason to use these unless something goes wrong.
# ProfileFile = prof.out
# LogFile = log.out`

type SharedConfig struct {
	// Required
	Input, Output string
	// Optional
	LogFile, ProfileFile string
}

func (con *SharedConfig) ValidInput() bool {
	return con.Input != ""
}
func (con *SharedConfig) ValidOutput() bool {
	return con.Output != ""
}
func (con *SharedConfig) ValidLogFile() bool {
	return con.LogFile != ""
}
func (con *SharedConfig) ValidProfileFile() bool {
	return con.ProfileFile != ""
}

type SplineConfig struct {
	SharedConfig

	// Required
	Dimensions int
	X0, DX     float64
	NX         int
	Y0, DY     float64
	NY         int
	Z0, DZ     float64
	NZ         int

	// Optional
	Boundary         string
	LoSlope, HiSlope float64
	ValueColumn      int
	Queries          string
	Quantity         []string
	Check            bool
	PlotFile         string
}

type SplineWrapper struct {
	Spline SplineConfig
}

func DefaultSplineWrapper() *SplineWrapper {
	con := SplineConfig{}
	con.Dimensions = 1
	con.Boundary = interpolate.DefaultBC().String()
	return &SplineWrapper{con}
}

func (con *SplineConfig) ValidDimensions() bool {
	return con.Dimensions >= 1 && con.Dimensions <= 3
}
func (con *SplineConfig) ValidX() bool {
	_, err := interpolate.NewGrid(con.X0, con.DX, con.NX)
	return err == nil
}
func (con *SplineConfig) ValidY() bool {
	_, err := interpolate.NewGrid(con.Y0, con.DY, con.NY)
	return con.Dimensions < 2 || err == nil
}
func (con *SplineConfig) ValidZ() bool {
	_, err := interpolate.NewGrid(con.Z0, con.DZ, con.NZ)
	return con.Dimensions < 3 || err == nil
}
func (con *SplineConfig) ValidBoundary() bool {
	_, err := interpolate.ParseBoundaryCondition(con.Boundary)
	return err == nil
}
func (con *SplineConfig) ValidValueColumn() bool {
	return con.ValueColumn >= 0
}
func (con *SplineConfig) ValidQueries() bool {
	return con.Queries != ""
}
func (con *SplineConfig) ValidQuantity() bool {
	_, err := con.Quantities()
	return err == nil
}
func (con *SplineConfig) ValidPlotFile() bool {
	return con.PlotFile != ""
}

// BoundaryCondition returns the boundary condition named by Boundary, with
// the clamped slopes filled in.
func (con *SplineConfig) BoundaryCondition() (interpolate.BoundaryCondition, error) {
	bc, err := interpolate.ParseBoundaryCondition(con.Boundary)
	if err != nil {
		return bc, err
	}
	if bc.Kind == interpolate.Clamped {
		bc.LoSlope, bc.HiSlope = con.LoSlope, con.HiSlope
	}
	return bc, nil
}

// Grids returns the grid of every axis up to Dimensions.
func (con *SplineConfig) Grids() ([]interpolate.Grid, error) {
	origins := []float64{con.X0, con.Y0, con.Z0}
	steps := []float64{con.DX, con.DY, con.DZ}
	counts := []int{con.NX, con.NY, con.NZ}

	grids := make([]interpolate.Grid, con.Dimensions)
	for i := range grids {
		g, err := interpolate.NewGrid(origins[i], steps[i], counts[i])
		if err != nil {
			return nil, fmt.Errorf("%s axis: %w", axisNames[i], err)
		}
		grids[i] = g
	}
	return grids, nil
}

// Quantities returns the quantities named by Quantity, or Value if no
// quantity was given.
func (con *SplineConfig) Quantities() ([]Quantity, error) {
	names := con.Quantity
	if len(names) == 0 {
		names = []string{"Value"}
	}

	qs := make([]Quantity, len(names))
	for i, name := range names {
		q, err := ParseQuantity(name, con.Dimensions)
		if err != nil {
			return nil, err
		}
		qs[i] = q
	}
	return qs, nil
}

// ReadSplineConfig reads a [Spline] config file and checks every variable in
// it.
func ReadSplineConfig(fname string) (*SplineConfig, error) {
	wrap := DefaultSplineWrapper()
	if err := gcfg.ReadFileInto(wrap, fname); err != nil {
		return nil, err
	}
	con := &wrap.Spline

	switch {
	case !con.ValidInput():
		return nil, fmt.Errorf("Invalid/non-existent 'Input' value.")
	case !con.ValidOutput() && con.ValidQueries():
		return nil, fmt.Errorf("'Queries' is set, but 'Output' is not.")
	case !con.ValidDimensions():
		return nil, fmt.Errorf(
			"'Dimensions' must be 1, 2, or 3, but is %d.", con.Dimensions,
		)
	case !con.ValidX():
		return nil, fmt.Errorf("Invalid/non-existent 'X0', 'DX', or 'NX'.")
	case !con.ValidY():
		return nil, fmt.Errorf("Invalid/non-existent 'Y0', 'DY', or 'NY'.")
	case !con.ValidZ():
		return nil, fmt.Errorf("Invalid/non-existent 'Z0', 'DZ', or 'NZ'.")
	case !con.ValidValueColumn():
		return nil, fmt.Errorf(
			"'ValueColumn' must be non-negative, but is %d.", con.ValueColumn,
		)
	case con.ValidPlotFile() && con.Dimensions != 1:
		return nil, fmt.Errorf("'PlotFile' can only be set for 1D splines.")
	}

	if _, err := con.BoundaryCondition(); err != nil {
		return nil, fmt.Errorf("Invalid 'Boundary' value: %w", err)
	} else if _, err := con.Quantities(); err != nil {
		return nil, fmt.Errorf("Invalid 'Quantity' value: %w", err)
	}

	return con, nil
}

var axisNames = []string{"x", "y", "z"}

// Quantity is a value or partial derivative of a spline which can be written
// to an output table.
type Quantity struct {
	Name string
	// Orders gives the derivative order along each axis.
	Orders []int
}

// ParseQuantity converts a quantity name like "Value", "DerivX", or "DerivXZ"
// into the per-axis derivative orders of a spline with dim axes. Matching is
// case-insensitive.
func ParseQuantity(name string, dim int) (Quantity, error) {
	if dim < 1 || dim > len(axisNames) {
		return Quantity{}, fmt.Errorf("Splines cannot have %d dimensions.", dim)
	}
	trimmed := strings.TrimSpace(name)
	upper := strings.ToUpper(trimmed)
	q := Quantity{Name: trimmed, Orders: make([]int, dim)}

	if upper == "VALUE" {
		return q, nil
	} else if !strings.HasPrefix(upper, "DERIV") || len(upper) == 5 {
		return Quantity{}, fmt.Errorf("Unrecognized quantity '%s'.", name)
	}

	axes := upper[5:]
	if len(axes) > 2 {
		return Quantity{}, fmt.Errorf(
			"Quantity '%s' has more than two derivatives.", name,
		)
	}
	for _, c := range axes {
		ax := strings.IndexRune("XYZ", c)
		if ax < 0 || ax >= dim {
			return Quantity{}, fmt.Errorf(
				"Quantity '%s' differentiates along an axis which a %dD "+
					"spline doesn't have.", name, dim,
			)
		}
		q.Orders[ax]++
	}
	return q, nil
}
