// Package sponge provides the fixed-arity hash functions over field elements used by the signature scheme and the
// transaction hash, and the byte-oriented seed hash used for key derivation.
//
// The arithmetic hashes must match the parameterization of the remote verifier bit for bit. They are therefore
// accessed through the Hasher interface, and the permutation itself is consumed from gnark-crypto rather than
// implemented here.
package sponge

import (
	"sync"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/poseidon2"
	"github.com/ziesha-network/zwallet/internal/math"
)

// Hasher is a set of collision resistant compression functions with fixed input arity. Implementations must be
// deterministic and safe for concurrent use.
type Hasher interface {
	Hash2(in [2]math.FieldElement) math.FieldElement
	Hash5(in [5]math.FieldElement) math.FieldElement
	Hash7(in [7]math.FieldElement) math.FieldElement
}

const (
	width           = 3
	rate            = width - 1
	fullRounds      = 8
	partialRounds   = 56
	capacityLane    = 0
	firstOutputLane = 1
)

// Poseidon is a sponge over the width-3 Poseidon2 permutation of gnark-crypto, with 8 full and 56 partial rounds.
//
// The state is initialized to (arity, 0, 0). Inputs are absorbed two at a time by adding them into lanes 1 and 2, the
// last block being padded with zeros, and the permutation is applied after every block. The digest is lane 1.
type Poseidon struct {
	permutation *poseidon2.Permutation
}

var _ Hasher = &Poseidon{}

func NewPoseidon() *Poseidon {
	return &Poseidon{poseidon2.NewPermutation(width, fullRounds, partialRounds)}
}

var defaultPoseidon = sync.OnceValue(NewPoseidon)

// Default returns a shared Poseidon instance. The round constants are derived once on first use.
func Default() Hasher {
	return defaultPoseidon()
}

func (h *Poseidon) Hash2(in [2]math.FieldElement) math.FieldElement {
	return h.sum(in[:])
}

func (h *Poseidon) Hash5(in [5]math.FieldElement) math.FieldElement {
	return h.sum(in[:])
}

func (h *Poseidon) Hash7(in [7]math.FieldElement) math.FieldElement {
	return h.sum(in[:])
}

func (h *Poseidon) sum(inputs []math.FieldElement) math.FieldElement {
	state := make([]fr.Element, width)
	state[capacityLane].SetUint64(uint64(len(inputs)))

	for len(inputs) > 0 {
		n := min(rate, len(inputs))
		for i := range n {
			v := inputs[i].Fr()
			state[firstOutputLane+i].Add(&state[firstOutputLane+i], &v)
		}
		inputs = inputs[n:]

		if err := h.permutation.Permutation(state); err != nil {
			// Only returned for a state of the wrong width.
			panic(err)
		}
	}
	return math.NewFieldElementFromFr(&state[firstOutputLane])
}
