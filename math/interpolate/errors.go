package interpolate

import (
	"errors"
)

// Errors returned by the spline constructors and evaluators. Returned errors
// wrap one of these values and carry the offending axis, index, or length in
// their message, so callers should test for them with errors.Is.
var (
	// ErrShapeMismatch means a sample or query array does not have the
	// length implied by the grids it is defined on.
	ErrShapeMismatch = errors.New("interpolate: shape mismatch")
	// ErrInvalidGrid means an axis has too few nodes, a non-positive or
	// non-finite spacing, or nodes which are not uniformly spaced.
	ErrInvalidGrid = errors.New("interpolate: invalid grid")
	// ErrUnknownBoundaryCondition means a boundary condition name is not one
	// of AvailableBoundaryConditions().
	ErrUnknownBoundaryCondition = errors.New(
		"interpolate: unknown boundary condition",
	)
	// ErrNumerical means the tridiagonal solver hit a vanishing pivot.
	ErrNumerical = errors.New("interpolate: numerical failure")
	// ErrUnsupportedDerivative means a derivative with more than two total
	// orders, or more than two orders along any axis, was requested.
	ErrUnsupportedDerivative = errors.New(
		"interpolate: unsupported derivative",
	)
	// ErrOutOfRange means a coefficient index lies outside the coefficient
	// array.
	ErrOutOfRange = errors.New("interpolate: index out of range")
)
