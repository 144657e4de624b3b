package sponge

import (
	"slices"

	"github.com/ziesha-network/zwallet/internal/math"
	"golang.org/x/crypto/sha3"
)

// SeedHash maps arbitrary bytes to a field element: the SHA3-256 digest of b, byte order reversed, interpreted as a
// big-endian integer and reduced modulo p.
func SeedHash(b []byte) math.FieldElement {
	digest := sha3.Sum256(b)
	reversed := digest[:]
	slices.Reverse(reversed)
	return math.ReduceBytes(reversed)
}
