// Package fakenode provides an in-memory ledger node serving the subset of the node HTTP API used by the wallet.
package fakenode

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/ziesha-network/zwallet/internal/node"
	"github.com/ziesha-network/zwallet/internal/tx"
)

type Node struct {
	*httptest.Server

	network string

	mu        sync.Mutex
	accounts  map[uint32]node.Account
	tokens    map[string]node.Token
	mempool   []tx.Payload
	submitted []tx.Payload
	failing   bool
	rejecting bool
}

// New starts a fake node serving the given network name; it is shut down when the test ends. Requests carrying a
// different network header are rejected with 400.
func New(t *testing.T, network string) *Node {
	n := &Node{
		network:  network,
		accounts: make(map[uint32]node.Account),
		tokens:   make(map[string]node.Token),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /mpn/account", n.handleAccount)
	mux.HandleFunc("GET /token", n.handleToken)
	mux.HandleFunc("GET /mempool", n.handleMempool)
	mux.HandleFunc("POST /transact/zero", n.handleTransact)

	n.Server = httptest.NewServer(n.checkNetwork(mux))
	t.Cleanup(n.Close)
	return n
}

func (n *Node) SetAccount(index uint32, acc node.Account) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.accounts[index] = acc
}

func (n *Node) SetToken(id tx.TokenID, token node.Token) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.tokens[id.String()] = token
}

func (n *Node) AddToMempool(p tx.Payload) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.mempool = append(n.mempool, p)
}

// SetFailing makes every subsequent request fail with 503.
func (n *Node) SetFailing(failing bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.failing = failing
}

// SetRejectTransactions makes the transact endpoint fail with 500 while other endpoints keep working.
func (n *Node) SetRejectTransactions(reject bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.rejecting = reject
}

// Submitted returns the payloads received by the transact endpoint, in order.
func (n *Node) Submitted() []tx.Payload {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]tx.Payload(nil), n.submitted...)
}

func (n *Node) checkNetwork(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n.mu.Lock()
		failing := n.failing
		n.mu.Unlock()

		if failing {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		if r.Header.Get(node.NetworkHeader) != n.network {
			http.Error(w, "wrong network", http.StatusBadRequest)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (n *Node) handleAccount(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.ParseUint(r.URL.Query().Get("index"), 10, 32)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	n.mu.Lock()
	acc, ok := n.accounts[uint32(index)]
	n.mu.Unlock()
	if !ok {
		acc = node.Account{Tokens: []node.TokenBalance{}}
	}
	writeJSON(w, map[string]any{"account": acc})
}

func (n *Node) handleToken(w http.ResponseWriter, r *http.Request) {
	n.mu.Lock()
	token, ok := n.tokens[r.URL.Query().Get("token_id")]
	n.mu.Unlock()
	if !ok {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, map[string]any{"token": token})
}

func (n *Node) handleMempool(w http.ResponseWriter, _ *http.Request) {
	n.mu.Lock()
	updates := append([]tx.Payload{}, n.mempool...)
	n.mu.Unlock()
	writeJSON(w, map[string]any{"updates": updates})
}

func (n *Node) handleTransact(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Tx tx.Payload `json:"tx"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	n.mu.Lock()
	if n.rejecting {
		n.mu.Unlock()
		http.Error(w, "rejected", http.StatusInternalServerError)
		return
	}
	n.submitted = append(n.submitted, req.Tx)
	n.mempool = append(n.mempool, req.Tx)
	n.mu.Unlock()
	writeJSON(w, map[string]any{})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
