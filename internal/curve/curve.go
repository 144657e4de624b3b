// Package curve implements the group law of the Jubjub twisted Edwards curve
//
//	A·x² + y² = 1 + D·x²·y²
//
// over the BLS12-381 scalar field, with A = -1 and D = -(10240/10241). Curve constants are taken from gnark-crypto.
package curve

import (
	"errors"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/twistededwards"
	"github.com/ziesha-network/zwallet/internal/math"
)

// ErrNotOnCurve is returned for coordinates that do not satisfy the curve equation, and for x-coordinates for which no
// matching y-coordinate exists.
var ErrNotOnCurve = errors.New("point is not on the curve")

var (
	a, d math.FieldElement
	base Point
)

func init() {
	params := twistededwards.GetEdwardsCurve()
	a = math.NewFieldElementFromFr(&params.A)
	d = math.NewFieldElementFromFr(&params.D)
	base = NewPoint(math.NewFieldElementFromFr(&params.Base.X), math.NewFieldElementFromFr(&params.Base.Y))

	if params.Order.Cmp(math.SubgroupOrder.BigInt()) != 0 {
		panic("curve: subgroup order mismatch, got " + params.Order.String())
	}
}

// A returns the curve coefficient A.
func A() math.FieldElement {
	return a
}

// D returns the curve coefficient D.
func D() math.FieldElement {
	return d
}

// Base returns the generator of the prime order subgroup of order math.SubgroupOrder.
func Base() Point {
	return base
}

// Identity returns the neutral element (0, 1).
func Identity() Point {
	one := math.NewFieldElement(1)
	return Point{x: math.NewFieldElement(0), y: one, z: one}
}

// BaseMult returns k·Base().
func BaseMult(k math.Scalar) Point {
	return base.ScalarMult(k)
}
