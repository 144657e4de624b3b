// Package tx builds and checks the signed payment transactions submitted to the ledger.
package tx

import (
	"github.com/ziesha-network/zwallet/internal/eddsa"
	"github.com/ziesha-network/zwallet/internal/math"
	"github.com/ziesha-network/zwallet/internal/sponge"
)

// tokenTag is hashed in place of the amount and fee token types. Only the native token is supported, which the ledger
// tags with 1.
var tokenTag = math.NewFieldElement(1)

// Hash returns the canonical transaction hash
//
//	H7(nonce, to.x, to.y, 1, amount, 1, fee)
//
// which is the message signed by the sender.
func Hash(h sponge.Hasher, nonce uint64, to eddsa.PublicKey, amount, fee uint64) math.FieldElement {
	return h.Hash7([7]math.FieldElement{
		math.NewFieldElement(nonce),
		to.X(),
		to.Y(),
		tokenTag,
		math.NewFieldElement(amount),
		tokenTag,
		math.NewFieldElement(fee),
	})
}
