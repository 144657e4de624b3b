// Package eddsa implements deterministic key derivation and the Schnorr signature scheme over the Jubjub curve used by
// the ledger: signing nonces and challenges are computed with fixed-arity sponge hashes over field elements.
package eddsa

import (
	"errors"
	"fmt"

	"github.com/ziesha-network/zwallet/internal/codec"
	"github.com/ziesha-network/zwallet/internal/curve"
	"github.com/ziesha-network/zwallet/internal/math"
	"github.com/ziesha-network/zwallet/internal/sponge"
)

// accountIndexMask selects the low 30 bits of the public x-coordinate, the ledger's account shard index.
const accountIndexMask = 1<<30 - 1

var ErrEmptySeed = errors.New("seed must not be empty")

// PublicKey is an affine curve point, immutable.
type PublicKey struct {
	point curve.Point
}

var _ codec.Unmarshaler[PublicKey] = PublicKey{}

// NewPublicKey wraps p after checking that it is on the curve.
func NewPublicKey(p curve.Point) (PublicKey, error) {
	if !p.IsOnCurve() {
		return PublicKey{}, fmt.Errorf("invalid public key: %w", curve.ErrNotOnCurve)
	}
	return PublicKey{p.Affine()}, nil
}

func (pk PublicKey) Point() curve.Point {
	return pk.point
}

func (pk PublicKey) X() math.FieldElement {
	return pk.point.X()
}

func (pk PublicKey) Y() math.FieldElement {
	return pk.point.Y()
}

func (pk PublicKey) Equal(other PublicKey) bool {
	return pk.point.Equal(other.point)
}

// AccountIndex returns the low 30 bits of the x-coordinate, which the ledger uses to shard its account tree.
func (pk PublicKey) AccountIndex() uint32 {
	return uint32(pk.X().Limbs()[0] & accountIndexMask)
}

// Verify checks sig against msg using the default sponge.
func (pk PublicKey) Verify(msg math.FieldElement, sig Signature) bool {
	return Verify(sponge.Default(), pk, msg, sig)
}

func (pk PublicKey) MarshalTo(target codec.Target) {
	pk.point.MarshalTo(target)
}

func (PublicKey) UnmarshalFrom(source codec.Source) PublicKey {
	return PublicKey{codec.ReadObject(source, curve.Point{})}
}

// PrivateKey holds the signing secrets derived from a seed. It is never serialized; callers should invoke Zero once
// the key is no longer needed.
type PrivateKey struct {
	randomness math.FieldElement
	scalar     math.FieldElement
	publicKey  PublicKey
}

// NewPrivateKey derives a key pair from seed:
//
//	randomness = SeedHash(seed)
//	scalar     = SeedHash(randomness encoded as 32 bytes big-endian)
//	publicKey  = scalar·Base
//
// Identical seeds always yield identical keys.
func NewPrivateKey(seed []byte) (*PrivateKey, error) {
	if len(seed) == 0 {
		return nil, ErrEmptySeed
	}
	randomness := sponge.SeedHash(seed)
	scalar := sponge.SeedHash(randomness.Bytes())
	return &PrivateKey{
		randomness: randomness,
		scalar:     scalar,
		publicKey:  PublicKey{curve.Base().ScalarMultField(scalar).Affine()},
	}, nil
}

func (k *PrivateKey) PublicKey() PublicKey {
	return k.publicKey
}

// Randomness returns the per-key secret from which signing nonces are derived.
func (k *PrivateKey) Randomness() math.FieldElement {
	return k.randomness
}

// Scalar returns the secret signing scalar.
func (k *PrivateKey) Scalar() math.FieldElement {
	return k.scalar
}

// Sign signs msg using the default sponge.
func (k *PrivateKey) Sign(msg math.FieldElement) Signature {
	return Sign(sponge.Default(), k, msg)
}

// Zero overwrites the secrets held by k. The key must not be used afterwards.
func (k *PrivateKey) Zero() {
	k.randomness = math.FieldElement{}
	k.scalar = math.FieldElement{}
}

// Implement Stringer and GoStringer interfaces to ensure that secrets are never accidentally logged.
func (k *PrivateKey) String() string {
	return k.GoString()
}

func (k *PrivateKey) GoString() string {
	return fmt.Sprintf("PrivateKey{pub: %s}", k.publicKey.point)
}
