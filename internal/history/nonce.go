package history

import (
	"errors"
	"math/bits"

	"github.com/ziesha-network/zwallet/internal/tx"
)

var ErrAmountOverflow = errors.New("pending amounts overflow")

// NextNonce returns the nonce for a new transaction: the account nonce, or one past the highest nonce found in the
// history if that is larger.
func NextNonce(accountNonce uint64, hist []tx.Payload) uint64 {
	nonce := accountNonce
	for _, p := range hist {
		if p.Nonce >= nonce {
			nonce = p.Nonce + 1
		}
	}
	return nonce
}

// Pending returns the transactions of hist that the ledger has not applied yet, i.e. those with a nonce not below the
// account nonce.
func Pending(accountNonce uint64, hist []tx.Payload) []tx.Payload {
	var pending []tx.Payload
	for _, p := range hist {
		if p.Nonce >= accountNonce {
			pending = append(pending, p)
		}
	}
	return pending
}

// PendingAmount sums amount and fee of the pending transactions. It fails with ErrAmountOverflow if the sum does not
// fit into a uint64.
func PendingAmount(accountNonce uint64, hist []tx.Payload) (uint64, error) {
	var total, carry uint64
	for _, p := range Pending(accountNonce, hist) {
		var c1, c2 uint64
		total, c1 = bits.Add64(total, p.Amount, 0)
		total, c2 = bits.Add64(total, p.Fee, 0)
		carry |= c1 | c2
	}
	if carry != 0 {
		return 0, ErrAmountOverflow
	}
	return total, nil
}
