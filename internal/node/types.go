package node

import "github.com/ziesha-network/zwallet/internal/tx"

// TokenBalance is one entry of an account's token list.
type TokenBalance struct {
	TokenID tx.TokenID `json:"token_id"`
	Amount  uint64     `json:"amount"`
}

// Account is the ledger state of an MPN account.
type Account struct {
	Nonce  uint64         `json:"nonce"`
	Tokens []TokenBalance `json:"tokens"`
}

// NativeBalance returns the native token balance, which the ledger keeps in the first token slot.
func (a Account) NativeBalance() uint64 {
	if len(a.Tokens) > 0 && a.Tokens[0].TokenID.IsNative() {
		return a.Tokens[0].Amount
	}
	return 0
}

// CustomBalances returns the balances of all tokens in slots other than the first, keyed by token id string. If a
// token occupies several slots, the first one wins.
func (a Account) CustomBalances() map[string]uint64 {
	balances := make(map[string]uint64)
	for i, t := range a.Tokens {
		if i == 0 {
			continue
		}
		if _, ok := balances[t.TokenID.String()]; !ok {
			balances[t.TokenID.String()] = t.Amount
		}
	}
	return balances
}

type accountResponse struct {
	Account Account `json:"account"`
}

// Token holds the metadata of a token.
type Token struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

type tokenResponse struct {
	Token Token `json:"token"`
}

// Mempool lists the transactions the node has accepted but not yet included in a block.
type Mempool struct {
	Updates []tx.Payload `json:"updates"`
}

type transactRequest struct {
	Tx tx.Payload `json:"tx"`
}
