package node_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ziesha-network/zwallet/internal/address"
	"github.com/ziesha-network/zwallet/internal/eddsa"
	"github.com/ziesha-network/zwallet/internal/math"
	"github.com/ziesha-network/zwallet/internal/metrics"
	"github.com/ziesha-network/zwallet/internal/node"
	"github.com/ziesha-network/zwallet/internal/sponge"
	"github.com/ziesha-network/zwallet/internal/testimplementations/fakenode"
	"github.com/ziesha-network/zwallet/internal/tx"
)

const network = "pelmeni-3"

func TestAccountDecoding(t *testing.T) {
	// Amounts beyond 2^53 must survive decoding unchanged.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/mpn/account", r.URL.Path)
		assert.Equal(t, "580146802", r.URL.Query().Get("index"))
		assert.Equal(t, network, r.Header.Get(node.NetworkHeader))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_, _ = w.Write([]byte(`{"account":{"nonce":12,"tokens":[
			{"token_id":"Ziesha","amount":18446744073709551615},
			{"token_id":{"Custom":[7766464950911665710,6527542596728932964,15248741861379854227,1323768386605897540]},"amount":9007199254740993}
		]}}`))
	}))
	defer srv.Close()

	c := node.NewClient(srv.URL, network, srv.Client(), nil, nil)
	acc, err := c.Account(context.Background(), 580146802)
	require.NoError(t, err)

	assert.Equal(t, uint64(12), acc.Nonce)
	assert.Equal(t, uint64(18446744073709551615), acc.NativeBalance())
	assert.Equal(t,
		map[string]uint64{"0x1234567890abcdef1122334455667788990011223344556677889900aabbccdd": 9007199254740993},
		acc.CustomBalances(),
	)
}

func TestNativeBalanceWithoutNativeToken(t *testing.T) {
	custom := tx.NewCustomTokenID(math.NewFieldElement(5))
	acc := node.Account{Tokens: []node.TokenBalance{{TokenID: custom, Amount: 3}}}
	assert.Equal(t, uint64(0), acc.NativeBalance())
	assert.Empty(t, acc.CustomBalances())
}

func TestClientAgainstFakeNode(t *testing.T) {
	fake := fakenode.New(t, network)
	registry := prometheus.NewRegistry()
	m, err := metrics.New(registry)
	require.NoError(t, err)

	// Scheme-less addresses are accepted, like the node's default address.
	c := node.NewClient(strings.TrimPrefix(fake.URL, "http://"), network, nil, nil, m)
	ctx := context.Background()

	tokenID := tx.NewCustomTokenID(math.NewFieldElement(99))
	fake.SetToken(tokenID, node.Token{Name: "Test", Symbol: "TST"})
	token, err := c.Token(ctx, tokenID)
	require.NoError(t, err)
	assert.Equal(t, node.Token{Name: "Test", Symbol: "TST"}, token)

	_, err = c.Token(ctx, tx.NewCustomTokenID(math.NewFieldElement(100)))
	require.Error(t, err)

	k, err := eddsa.NewPrivateKey([]byte("node client"))
	require.NoError(t, err)
	p := tx.Create(sponge.Default(), k, 0, address.MustDecode(
		"z2314e428356bdc7cf43f02c42d1f8ce0bd10a6cd692d93d61fb040044d7a4d242"), 10, 0)

	_, err = c.Transact(ctx, p)
	require.NoError(t, err)
	require.Equal(t, []tx.Payload{p}, fake.Submitted())

	mempool, err := c.Mempool(ctx)
	require.NoError(t, err)
	require.Len(t, mempool.Updates, 1)
	assert.Equal(t, p.Sig, mempool.Updates[0].Sig)

	assert.Equal(t, 1.0, nodeRequests(t, registry, "/transact/zero", "200"))
	assert.Equal(t, 1.0, nodeRequests(t, registry, "/token", "404"))
}

func nodeRequests(t *testing.T, registry *prometheus.Registry, endpoint, status string) float64 {
	families, err := registry.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() != "zwallet_node_requests_total" {
			continue
		}
		for _, m := range f.GetMetric() {
			labels := map[string]string{}
			for _, l := range m.GetLabel() {
				labels[l.GetName()] = l.GetValue()
			}
			if labels["endpoint"] == endpoint && labels["status"] == status {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func TestClientWrongNetwork(t *testing.T) {
	fake := fakenode.New(t, network)
	c := node.NewClient(fake.URL, "mainnet", nil, nil, nil)
	_, err := c.Mempool(context.Background())
	require.ErrorContains(t, err, "400")
}

func TestClientCancelledContext(t *testing.T) {
	fake := fakenode.New(t, network)
	c := node.NewClient(fake.URL, network, nil, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Account(ctx, 1)
	require.ErrorIs(t, err, context.Canceled)
}
