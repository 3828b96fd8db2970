package interpolate

import (
	"fmt"
)

// maxOrder is the highest derivative order supported along a single axis and
// also the highest total order of a mixed partial derivative.
const maxOrder = 2

// checkOrders returns an error if the partial derivative with the given
// per-axis orders is not modeled by the splines.
func checkOrders(orders ...int) error {
	total := 0
	for _, o := range orders {
		if o < 0 || o > maxOrder {
			return fmt.Errorf(
				"derivative orders %v: each order must be in [0, %d]: %w",
				orders, maxOrder, ErrUnsupportedDerivative,
			)
		}
		total += o
	}
	if total > maxOrder {
		return fmt.Errorf(
			"derivative orders %v: total order %d is larger than %d: %w",
			orders, total, maxOrder, ErrUnsupportedDerivative,
		)
	}
	return nil
}

// horner evaluates the order-th derivative of the cubic
// c[0] + c[1] t + c[2] t^2 + c[3] t^3.
func horner(c []float64, t float64, order int) float64 {
	switch order {
	case 0:
		return c[0] + t*(c[1]+t*(c[2]+t*c[3]))
	case 1:
		return c[1] + t*(2*c[2]+t*3*c[3])
	case 2:
		return 2*c[2] + 6*c[3]*t
	}
	panic(fmt.Sprintf("Unsupported derivative order %d.", order))
}

// horner2 evaluates a bicubic cell, c[4*p + q] t_x^p t_y^q, by reducing the y
// powers first and then the x powers.
func horner2(c []float64, tx, ty float64, nx, ny int) float64 {
	var r [4]float64
	for p := 0; p < 4; p++ {
		r[p] = horner(c[4*p:4*p+4], ty, ny)
	}
	return horner(r[:], tx, nx)
}

// horner3 evaluates a tricubic cell, c[16*p + 4*q + r] t_x^p t_y^q t_z^r, by
// reducing z, then y, then x.
func horner3(c []float64, tx, ty, tz float64, nx, ny, nz int) float64 {
	var s [16]float64
	for pq := 0; pq < 16; pq++ {
		s[pq] = horner(c[4*pq:4*pq+4], tz, nz)
	}
	return horner2(s[:], tx, ty, nx, ny)
}
