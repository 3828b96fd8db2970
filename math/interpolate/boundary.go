package interpolate

import (
	"fmt"
	"strings"
)

// BoundaryKind identifies one of the supported spline end conditions.
type BoundaryKind int

const (
	// Natural splines have a vanishing second derivative at both ends.
	Natural BoundaryKind = iota
	// NotAKnot splines have a continuous third derivative across the first
	// and last interior nodes.
	NotAKnot
	// Clamped splines have fixed first derivatives at both ends.
	Clamped
	// E3 splines use a closure on the two second derivatives nearest each
	// end which is exact for quartic data, giving fourth order accuracy all
	// the way to the boundary. On axes with only four nodes the closure has
	// no room for the quartic term and the not-a-knot closure is used, which
	// reproduces the cubic through the samples. It is the default.
	E3
	endBoundaryKind
)

// e3QuarticNodes is the number of nodes needed for the quartic E(3) closures
// at the two ends to be independent of one another.
const e3QuarticNodes = 5

var boundaryNames = [endBoundaryKind]string{
	Natural:  "natural",
	NotAKnot: "not-a-knot",
	Clamped:  "clamped",
	E3:       "E(3)",
}

func (k BoundaryKind) String() string {
	if k < 0 || k >= endBoundaryKind {
		return fmt.Sprintf("BoundaryKind(%d)", int(k))
	}
	return boundaryNames[k]
}

// AvailableBoundaryConditions returns the names of every supported boundary
// condition, in a fixed order.
func AvailableBoundaryConditions() []string {
	names := make([]string, len(boundaryNames))
	copy(names, boundaryNames[:])
	return names
}

// BoundaryCondition selects the equations which close the spline system at
// the two ends of every axis. LoSlope and HiSlope are only used by Clamped
// conditions and give the first derivatives at the low and high ends.
type BoundaryCondition struct {
	Kind             BoundaryKind
	LoSlope, HiSlope float64
}

// NaturalBC returns a natural boundary condition.
func NaturalBC() BoundaryCondition { return BoundaryCondition{Kind: Natural} }

// NotAKnotBC returns a not-a-knot boundary condition.
func NotAKnotBC() BoundaryCondition { return BoundaryCondition{Kind: NotAKnot} }

// E3BC returns an E(3) boundary condition.
func E3BC() BoundaryCondition { return BoundaryCondition{Kind: E3} }

// ClampedBC returns a clamped boundary condition with the given end slopes.
func ClampedBC(lo, hi float64) BoundaryCondition {
	return BoundaryCondition{Kind: Clamped, LoSlope: lo, HiSlope: hi}
}

// DefaultBC returns the boundary condition used when none is specified.
func DefaultBC() BoundaryCondition { return E3BC() }

// ParseBoundaryCondition returns the boundary condition with the given name.
// Matching ignores case and surrounding whitespace. Clamped conditions are
// returned with zero end slopes.
func ParseBoundaryCondition(name string) (BoundaryCondition, error) {
	trimmed := strings.TrimSpace(name)
	for k, bcName := range boundaryNames {
		if strings.EqualFold(trimmed, bcName) {
			return BoundaryCondition{Kind: BoundaryKind(k)}, nil
		}
	}
	return BoundaryCondition{}, fmt.Errorf(
		"'%s' is not one of [%s]: %w", name,
		strings.Join(boundaryNames[:], ", "), ErrUnknownBoundaryCondition,
	)
}

func (bc BoundaryCondition) String() string {
	if bc.Kind == Clamped {
		return fmt.Sprintf("clamped(%g, %g)", bc.LoSlope, bc.HiSlope)
	}
	return bc.Kind.String()
}

// check returns an error if bc is not a supported boundary condition.
func (bc BoundaryCondition) check() error {
	if bc.Kind < 0 || bc.Kind >= endBoundaryKind {
		return fmt.Errorf("boundary kind %d: %w",
			int(bc.Kind), ErrUnknownBoundaryCondition)
	}
	return nil
}

// closure is one boundary equation,
//
//     ms[0]*m_end + ms[1]*m_next + ms[2]*m_nextnext = rhs,
//
// where m_end is the second derivative at an end node and the others are the
// second derivatives at the next two nodes moving inwards.
type closure struct {
	ms  [3]float64
	rhs float64
}

// closures returns the boundary equations at the low and high ends of a line
// of samples, fs, with spacing h.
func (bc BoundaryCondition) closures(fs []float64, h float64) (lo, hi closure) {
	n := len(fs)
	switch bc.Kind {
	case Natural:
		lo.ms[0], hi.ms[0] = 1, 1
	case Clamped:
		lo.ms = [3]float64{h / 3, h / 6, 0}
		lo.rhs = (fs[1]-fs[0])/h - bc.LoSlope
		hi.ms = [3]float64{h / 3, h / 6, 0}
		hi.rhs = bc.HiSlope - (fs[n-1]-fs[n-2])/h
	case NotAKnot:
		lo.ms = [3]float64{1, -2, 1}
		hi.ms = [3]float64{1, -2, 1}
	case E3:
		if n < e3QuarticNodes {
			lo.ms = [3]float64{1, -2, 1}
			hi.ms = [3]float64{1, -2, 1}
			break
		}
		h2 := h * h
		lo.ms = [3]float64{1, 5, 0}
		lo.rhs = (7*fs[0] - 15*fs[1] + 9*fs[2] - fs[3]) / h2
		hi.ms = [3]float64{1, 5, 0}
		hi.rhs = (7*fs[n-1] - 15*fs[n-2] + 9*fs[n-3] - fs[n-4]) / h2
	default:
		panic(fmt.Sprintf("Unrecognized boundary kind %d.", int(bc.Kind)))
	}
	return lo, hi
}
