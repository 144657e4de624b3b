// Constant time implementation of scalar arithmetic based on the bigmod package from Go's internal stdlib, exported
// via flippo.io/bigmod.

package math

import (
	"math/big"

	"filippo.io/bigmod"
)

// Scalar represents a scalar value modulo a modulus, in practice the Jubjub subgroup order n.
// Scalars of different moduli are not compatible, and cannot be used together in arithmetic operations.
type Scalar = *scalar

type scalar struct {
	value   *bigmod.Nat
	modulus *Modulus
}

// NewScalar creates a new scalar with the given modulus.
// The value is initialized to zero.
func NewScalar(m *Modulus) Scalar {
	return &scalar{bigmod.NewNat().ExpandFor(&m.value), m}
}

// NewScalarFromFieldElement returns f mod m. Field elements may exceed the subgroup order, in which case they are
// reduced.
func NewScalarFromFieldElement(f FieldElement, m *Modulus) Scalar {
	return NewScalar(m).setReduced(f.Bytes())
}

// setReduced sets x to b mod x.modulus, b being interpreted as big-endian number of arbitrary length.
func (x Scalar) setReduced(b []byte) Scalar {
	// Build a modulus that is larger than b (when interpreted as big-endian number).
	largeModBytes := make([]byte, len(b)+1)
	largeModBytes[0] = 1
	largeMod, err := bigmod.NewModulus(largeModBytes)
	if err != nil {
		panic(err)
	}

	// Convert the bytes into a Nat (mod largeMod), the value fits and no modulus reduction is needed.
	t, err := bigmod.NewNat().SetBytes(b, largeMod)
	if err != nil {
		panic(err)
	}

	x.value.Mod(t, &x.modulus.value)
	return x
}

func (x Scalar) Add(y Scalar) Scalar {
	x.value.Add(y.value, &x.modulus.value)
	return x
}

func (x Scalar) Multiply(y Scalar) Scalar {
	x.value.Mul(y.value, &x.modulus.value)
	return x
}

// x.Bytes() returns the canonical big-endian encoding of x, of the byte size of its modulus.
func (x Scalar) Bytes() []byte {
	return x.value.Bytes(&x.modulus.value)
}

// x.FieldElement() embeds x into the base field. Only valid for moduli not exceeding the field modulus, which holds for
// the subgroup order.
func (x Scalar) FieldElement() FieldElement {
	return ReduceBytes(x.Bytes())
}

// Non-constant time function, to be used for testing purposes.
func (x Scalar) String() string {
	return new(big.Int).SetBytes(x.value.Bytes(&x.modulus.value)).String()
}
