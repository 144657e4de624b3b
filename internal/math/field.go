// Arithmetic over the scalar field of BLS12-381, which is the base field of the Jubjub curve. The heavy lifting is
// done by gnark-crypto's fr package; this file restricts its API to immutable values and explicit errors.

package math

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/ziesha-network/zwallet/internal/codec"
)

// FieldElementSize is the length in bytes of the fixed-width encoding of a field element.
const FieldElementSize = fr.Bytes

var (
	// montgomeryR is R = 2^256 mod p. It is only used to produce the wire format of signatures and token ids.
	montgomeryR    FieldElement
	montgomeryRInv FieldElement
)

func init() {
	montgomeryR.value.SetBigInt(new(big.Int).Lsh(big.NewInt(1), 256))
	montgomeryRInv.value.Inverse(&montgomeryR.value)
}

// FieldElement is an integer in [0, p), p being the BLS12-381 scalar field modulus. The zero value represents 0.
// Values are immutable, all operations return new values and never modify their receiver or arguments.
type FieldElement struct {
	value fr.Element
}

var _ codec.Unmarshaler[FieldElement] = FieldElement{}

// FieldModulus returns a copy of the field modulus p.
func FieldModulus() *big.Int {
	return fr.Modulus()
}

func NewFieldElement(v uint64) FieldElement {
	var x FieldElement
	x.value.SetUint64(v)
	return x
}

// NewFieldElementFromFr wraps a gnark-crypto field element.
func NewFieldElementFromFr(v *fr.Element) FieldElement {
	return FieldElement{*v}
}

// FieldElementFromBigInt fails with ErrArithmeticRange unless 0 <= v < p.
func FieldElementFromBigInt(v *big.Int) (FieldElement, error) {
	if v.Sign() < 0 || v.Cmp(fr.Modulus()) >= 0 {
		return FieldElement{}, fmt.Errorf("%w: %s is not in [0, p)", ErrArithmeticRange, v.String())
	}
	var x FieldElement
	x.value.SetBigInt(v)
	return x, nil
}

// FieldElementFromString parses a decimal string, or a hexadecimal string if prefixed with "0x" or "0X".
// Malformed input fails with ErrParse, values not smaller than p fail with ErrArithmeticRange.
func FieldElementFromString(s string) (FieldElement, error) {
	base, digits := 10, s
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		base, digits = 16, s[2:]
	}
	if digits == "" || strings.ContainsAny(digits, "+-_") {
		return FieldElement{}, fmt.Errorf("%w: %q", ErrParse, s)
	}
	v, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return FieldElement{}, fmt.Errorf("%w: %q", ErrParse, s)
	}
	return FieldElementFromBigInt(v)
}

// Non-constant time function, to be used for testing purposes and initialization only.
// Panics on invalid input; see FieldElementFromString for the accepted formats.
func MustFieldElement(s string) FieldElement {
	x, err := FieldElementFromString(s)
	if err != nil {
		panic(err)
	}
	return x
}

// FieldElementFromBytes decodes the fixed-width big-endian encoding produced by FieldElement.Bytes(). The input must be
// exactly FieldElementSize bytes long and encode a value smaller than p.
func FieldElementFromBytes(b []byte) (FieldElement, error) {
	if len(b) != FieldElementSize {
		return FieldElement{}, fmt.Errorf("%w: field element encoding must be %d bytes, got %d",
			ErrParse, FieldElementSize, len(b))
	}
	var x FieldElement
	if err := x.value.SetBytesCanonical(b); err != nil {
		return FieldElement{}, fmt.Errorf("%w: %x", ErrArithmeticRange, b)
	}
	return x, nil
}

// FieldElementFromHex decodes exactly 64 hexadecimal digits (big-endian, no prefix).
func FieldElementFromHex(s string) (FieldElement, error) {
	if len(s) != 2*FieldElementSize {
		return FieldElement{}, fmt.Errorf("%w: expected %d hex digits, got %d", ErrParse, 2*FieldElementSize, len(s))
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return FieldElement{}, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return FieldElementFromBytes(b)
}

// ReduceBytes interprets b as a big-endian unsigned integer of arbitrary length and reduces it modulo p.
func ReduceBytes(b []byte) FieldElement {
	var x FieldElement
	x.value.SetBytes(b)
	return x
}

func (x FieldElement) Add(y FieldElement) FieldElement {
	var z FieldElement
	z.value.Add(&x.value, &y.value)
	return z
}

func (x FieldElement) Subtract(y FieldElement) FieldElement {
	var z FieldElement
	z.value.Sub(&x.value, &y.value)
	return z
}

func (x FieldElement) Multiply(y FieldElement) FieldElement {
	var z FieldElement
	z.value.Mul(&x.value, &y.value)
	return z
}

func (x FieldElement) Square() FieldElement {
	var z FieldElement
	z.value.Square(&x.value)
	return z
}

func (x FieldElement) Negate() FieldElement {
	var z FieldElement
	z.value.Neg(&x.value)
	return z
}

// Inverse returns x⁻¹ mod p, or ErrDivisionByZero if x is zero.
func (x FieldElement) Inverse() (FieldElement, error) {
	if x.value.IsZero() {
		return FieldElement{}, ErrDivisionByZero
	}
	var z FieldElement
	z.value.Inverse(&x.value)
	return z, nil
}

// Sqrt returns a square root of x, and false if x is not a quadratic residue. Which of the two roots is returned is
// unspecified, callers fix the sign themselves (see IsOdd).
func (x FieldElement) Sqrt() (FieldElement, bool) {
	var z FieldElement
	if z.value.Sqrt(&x.value) == nil {
		return FieldElement{}, false
	}
	return z, true
}

func (x FieldElement) IsZero() bool {
	return x.value.IsZero()
}

// IsOdd reports whether the canonical integer representative of x is odd.
func (x FieldElement) IsOdd() bool {
	return x.value.Bits()[0]&1 == 1
}

func (x FieldElement) Equal(y FieldElement) bool {
	return x.value.Equal(&y.value)
}

// Limbs returns the canonical (non-Montgomery) integer value of x as four 64-bit limbs, least significant first.
func (x FieldElement) Limbs() [4]uint64 {
	return x.value.Bits()
}

// Bytes returns the 32-byte big-endian encoding of x.
func (x FieldElement) Bytes() []byte {
	b := x.value.Bytes()
	return b[:]
}

// Hex returns the encoding of x as 64 lowercase, zero-padded hexadecimal digits.
func (x FieldElement) Hex() string {
	return hex.EncodeToString(x.Bytes())
}

// Non-constant time function, to be used for testing and logging purposes.
func (x FieldElement) BigInt() *big.Int {
	return x.value.BigInt(new(big.Int))
}

// Fr returns a copy of the underlying gnark-crypto element.
func (x FieldElement) Fr() fr.Element {
	return x.value
}

// String returns the decimal representation of x.
func (x FieldElement) String() string {
	return x.value.String()
}

// Montgomery returns x·R mod p with R = 2^256. The result is only meant for serialization, never for arithmetic.
func (x FieldElement) Montgomery() FieldElement {
	return x.Multiply(montgomeryR)
}

// FromMontgomery maps a value in Montgomery form back to its plain representation, i.e. returns m·R⁻¹ mod p.
func FromMontgomery(m FieldElement) FieldElement {
	return m.Multiply(montgomeryRInv)
}

func (x FieldElement) MarshalTo(target codec.Target) {
	target.WriteBytes(x.Bytes())
}

func (FieldElement) UnmarshalFrom(source codec.Source) FieldElement {
	x, err := FieldElementFromBytes(source.ReadBytes(FieldElementSize))
	if err != nil {
		panic(err)
	}
	return x
}
