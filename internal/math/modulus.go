package math

import (
	"math/big"

	"filippo.io/bigmod"
)

// SubgroupOrder is the order n of the prime-order subgroup of the Jubjub curve spanned by its base point.
// Signature scalars and scalar multiplication factors are reduced modulo n.
var SubgroupOrder = NewModulus("6554484396890773809930967563523245729705921265872317281365359162392183254199")

type Modulus struct {
	value bigmod.Modulus
}

// Non-constant time function, to be used for testing purposes and initialization only.
// Panics on invalid input; value must represent a natural number.
func NewModulus(value string) *Modulus {
	n, ok := new(big.Int).SetString(value, 10)
	if !ok {
		panic("invalid modulus value: " + value)
	}
	m, err := bigmod.NewModulus(n.Bytes())
	if err != nil {
		panic("invalid modulus value: " + value + ", error: " + err.Error())
	}
	return &Modulus{*m}
}

func (m *Modulus) Bytes() []byte {
	return (&m.value).Nat().Bytes(&m.value)
}

// Non-constant time function, to be used for testing purposes and initialization only.
func (m *Modulus) BigInt() *big.Int {
	return new(big.Int).SetBytes(m.Bytes())
}
