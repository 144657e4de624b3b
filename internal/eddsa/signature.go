package eddsa

import (
	"github.com/ziesha-network/zwallet/internal/codec"
	"github.com/ziesha-network/zwallet/internal/curve"
	"github.com/ziesha-network/zwallet/internal/math"
	"github.com/ziesha-network/zwallet/internal/sponge"
)

// SignatureSize is the length of the binary encoding R.x ‖ R.y ‖ s.
const SignatureSize = curve.PointSize + math.FieldElementSize

// Signature is the pair (R, s), with R an affine point and s reduced modulo the subgroup order.
type Signature struct {
	r curve.Point
	s math.FieldElement
}

var _ codec.Unmarshaler[Signature] = Signature{}

// NewSignature assembles a signature from its components. No validation takes place, Verify rejects invalid values.
func NewSignature(r curve.Point, s math.FieldElement) Signature {
	return Signature{r.Affine(), s}
}

func (sig Signature) R() curve.Point {
	return sig.r
}

func (sig Signature) S() math.FieldElement {
	return sig.s
}

func (sig Signature) Equal(other Signature) bool {
	return sig.r.Equal(other.r) && sig.s.Equal(other.s)
}

// Sign computes
//
//	r = H2(randomness, msg)
//	R = r·Base
//	h = H5(R.x, R.y, pub.x, pub.y, msg)
//	s = r + h·scalar (mod n)
//
// The nonce r only depends on the key and the message: signing the same message twice yields the same signature.
func Sign(h sponge.Hasher, k *PrivateKey, msg math.FieldElement) Signature {
	r := h.Hash2([2]math.FieldElement{k.randomness, msg})
	R := curve.Base().ScalarMultField(r).Affine()
	challenge := h.Hash5([5]math.FieldElement{R.X(), R.Y(), k.publicKey.X(), k.publicKey.Y(), msg})

	s := math.NewScalarFromFieldElement(challenge, math.SubgroupOrder).
		Multiply(math.NewScalarFromFieldElement(k.scalar, math.SubgroupOrder)).
		Add(math.NewScalarFromFieldElement(r, math.SubgroupOrder))

	return Signature{R, s.FieldElement()}
}

// Verify reports whether sig is a valid signature of msg under pk. It never fails with an error: points off the curve
// and mismatching signatures both yield false.
func Verify(h sponge.Hasher, pk PublicKey, msg math.FieldElement, sig Signature) bool {
	if !pk.point.IsOnCurve() || !sig.r.IsOnCurve() {
		return false
	}
	challenge := h.Hash5([5]math.FieldElement{sig.r.X(), sig.r.Y(), pk.X(), pk.Y(), msg})

	lhs := curve.Base().ScalarMultField(sig.s)
	rhs := pk.point.ScalarMultField(challenge).Add(sig.r)
	return lhs.Equal(rhs)
}

// MarshalTo writes R.x ‖ R.y ‖ s, 32 bytes each, big-endian. R is not checked against the curve.
func (sig Signature) MarshalTo(target codec.Target) {
	sig.r.X().MarshalTo(target)
	sig.r.Y().MarshalTo(target)
	sig.s.MarshalTo(target)
}

// UnmarshalFrom reads a signature and panics (recovered by the codec package) if R is not on the curve.
func (Signature) UnmarshalFrom(source codec.Source) Signature {
	r := codec.ReadObject(source, curve.Point{})
	s := codec.ReadObject(source, math.FieldElement{})
	return Signature{r, s}
}
