// Package wallet combines a keyring, a ledger node and the local transaction history into the operations offered to
// wallet users: inspecting the account, sending payments and tracking payments that are not yet settled.
package wallet

import (
	"context"
	"errors"
	"fmt"
	"math/bits"

	"github.com/ziesha-network/zwallet/internal/address"
	"github.com/ziesha-network/zwallet/internal/history"
	"github.com/ziesha-network/zwallet/internal/logging"
	"github.com/ziesha-network/zwallet/internal/node"
	"github.com/ziesha-network/zwallet/internal/tx"
	"github.com/ziesha-network/zwallet/zkeyring"
)

var (
	ErrSendToSelf          = errors.New("cannot send to yourself")
	ErrInsufficientBalance = errors.New("balance insufficient")
)

// Node is the subset of the node API used by the wallet. It is implemented by *node.Client.
type Node interface {
	Account(ctx context.Context, index uint32) (node.Account, error)
	Token(ctx context.Context, id tx.TokenID) (node.Token, error)
	Mempool(ctx context.Context) (node.Mempool, error)
	Transact(ctx context.Context, p tx.Payload) (string, error)
}

var _ Node = &node.Client{}

type Service struct {
	node    Node
	history history.Store
	keyring *zkeyring.Keyring
	logger  logging.Logger
}

func New(n Node, h history.Store, kr *zkeyring.Keyring, logger logging.Logger) *Service {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Service{n, h, kr, logger}
}

func (s *Service) Address() string {
	return s.keyring.Address()
}

// TokenHolding is a balance of a custom token together with the token's metadata.
type TokenHolding struct {
	ID     string
	Token  node.Token
	Amount uint64
}

// State is a snapshot of the wallet's account as seen by the node, combined with the local history.
type State struct {
	Address      string
	AccountIndex uint32
	Nonce        uint64
	NextNonce    uint64
	Balance      uint64
	Spent        uint64 // amount plus fee of the pending payments
	Tokens       []TokenHolding
	Pending      []tx.Payload
	Incoming     []tx.Payload
}

// Load fetches the account, the metadata of its custom tokens and the mempool. Token metadata that cannot be fetched
// is left empty.
func (s *Service) Load(ctx context.Context) (State, error) {
	acc, err := s.account(ctx)
	if err != nil {
		return State{}, err
	}
	hist, err := s.history.List(s.Address())
	if err != nil {
		return State{}, fmt.Errorf("reading history: %w", err)
	}
	incoming, err := s.Incoming(ctx)
	if err != nil {
		return State{}, err
	}

	spent, err := history.PendingAmount(acc.Nonce, hist)
	if err != nil {
		return State{}, fmt.Errorf("reading history: %w", err)
	}

	state := State{
		Address:      s.Address(),
		AccountIndex: s.keyring.AccountIndex(),
		Nonce:        acc.Nonce,
		NextNonce:    history.NextNonce(acc.Nonce, hist),
		Balance:      acc.NativeBalance(),
		Spent:        spent,
		Pending:      history.Pending(acc.Nonce, hist),
		Incoming:     incoming,
	}

	seen := make(map[string]bool)
	for _, t := range acc.Tokens[min(1, len(acc.Tokens)):] {
		id := t.TokenID.String()
		if t.TokenID.IsNative() || seen[id] {
			continue
		}
		seen[id] = true

		holding := TokenHolding{ID: id, Amount: t.Amount}
		token, err := s.node.Token(ctx, t.TokenID)
		if err != nil {
			s.logger.Warn("token metadata unavailable", logging.Fields{"token_id": id, "error": err})
		} else {
			holding.Token = token
		}
		state.Tokens = append(state.Tokens, holding)
	}
	return state, nil
}

// NextNonce returns the nonce the next payment will be signed with.
func (s *Service) NextNonce(ctx context.Context) (uint64, error) {
	acc, err := s.account(ctx)
	if err != nil {
		return 0, err
	}
	hist, err := s.history.List(s.Address())
	if err != nil {
		return 0, fmt.Errorf("reading history: %w", err)
	}
	return history.NextNonce(acc.Nonce, hist), nil
}

// Send signs a payment of amount plus fee base units to the address to, records it in the history and submits it to
// the node. The payment is kept in the history even if the submission fails, so it can be resent later.
func (s *Service) Send(ctx context.Context, to string, amount, fee uint64) (tx.Payload, error) {
	dst, err := address.Decode(to)
	if err != nil {
		return tx.Payload{}, err
	}
	if dst.Equal(s.keyring.PublicKey()) {
		return tx.Payload{}, ErrSendToSelf
	}

	acc, err := s.account(ctx)
	if err != nil {
		return tx.Payload{}, err
	}
	total, carry := bits.Add64(amount, fee, 0)
	if balance := acc.NativeBalance(); carry != 0 || total > balance {
		return tx.Payload{}, fmt.Errorf("%w: sending %s with balance %s",
			ErrInsufficientBalance, tx.FormatAmount(amount), tx.FormatAmount(balance))
	}

	hist, err := s.history.List(s.Address())
	if err != nil {
		return tx.Payload{}, fmt.Errorf("reading history: %w", err)
	}
	nonce := history.NextNonce(acc.Nonce, hist)

	p := s.keyring.Pay(nonce, dst, amount, fee)
	if err := s.history.Append(s.Address(), p); err != nil {
		return tx.Payload{}, fmt.Errorf("recording transaction: %w", err)
	}
	fields := logging.Fields{"address": s.Address(), "to": to, "nonce": nonce, "amount": amount, "fee": fee}
	if _, err := s.node.Transact(ctx, p); err != nil {
		s.logger.Warn("transaction recorded but not submitted", fields)
		return p, err
	}
	s.logger.Info("transaction submitted", fields)
	return p, nil
}

// Pending returns the payments in the history that the ledger has not applied yet.
func (s *Service) Pending(ctx context.Context) ([]tx.Payload, error) {
	acc, err := s.account(ctx)
	if err != nil {
		return nil, err
	}
	hist, err := s.history.List(s.Address())
	if err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}
	return history.Pending(acc.Nonce, hist), nil
}

// ResendPending submits all pending payments again, in nonce order as recorded, and returns how many were submitted.
// It stops at the first failed submission.
func (s *Service) ResendPending(ctx context.Context) (int, error) {
	pending, err := s.Pending(ctx)
	if err != nil {
		return 0, err
	}
	for i, p := range pending {
		if _, err := s.node.Transact(ctx, p); err != nil {
			return i, fmt.Errorf("resending nonce %d: %w", p.Nonce, err)
		}
		s.logger.Info("transaction resent", logging.Fields{"address": s.Address(), "nonce": p.Nonce})
	}
	return len(pending), nil
}

// Incoming returns the mempool transactions addressed to this wallet.
func (s *Service) Incoming(ctx context.Context) ([]tx.Payload, error) {
	mempool, err := s.node.Mempool(ctx)
	if err != nil {
		return nil, err
	}
	var incoming []tx.Payload
	for _, p := range mempool.Updates {
		if p.DstPubKey == s.Address() {
			incoming = append(incoming, p)
		}
	}
	return incoming, nil
}

// History returns all payments sent from this wallet, oldest first.
func (s *Service) History() ([]tx.Payload, error) {
	return s.history.List(s.Address())
}

func (s *Service) ClearHistory() error {
	s.logger.Info("clearing history", logging.Fields{"address": s.Address()})
	return s.history.Clear(s.Address())
}

func (s *Service) account(ctx context.Context) (node.Account, error) {
	index := s.keyring.AccountIndex()
	acc, err := s.node.Account(ctx, index)
	if err != nil {
		return node.Account{}, fmt.Errorf("fetching account %d: %w", index, err)
	}
	s.logger.Debug("account loaded", logging.Fields{"account_index": index, "nonce": acc.Nonce})
	return acc, nil
}
