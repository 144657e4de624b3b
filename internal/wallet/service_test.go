package wallet_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ziesha-network/zwallet/internal/address"
	"github.com/ziesha-network/zwallet/internal/history"
	zmath "github.com/ziesha-network/zwallet/internal/math"
	"github.com/ziesha-network/zwallet/internal/node"
	"github.com/ziesha-network/zwallet/internal/sponge"
	"github.com/ziesha-network/zwallet/internal/testimplementations/fakenode"
	"github.com/ziesha-network/zwallet/internal/testimplementations/testhelpers"
	"github.com/ziesha-network/zwallet/internal/testimplementations/unsaferand"
	"github.com/ziesha-network/zwallet/internal/tx"
	"github.com/ziesha-network/zwallet/internal/wallet"
	"github.com/ziesha-network/zwallet/zkeyring"
)

const (
	network   = "pelmeni-3"
	recipient = "z2314e428356bdc7cf43f02c42d1f8ce0bd10a6cd692d93d61fb040044d7a4d242"
	coin      = uint64(tx.UnitsPerCoin)
)

type fixture struct {
	fake    *fakenode.Node
	keyring *zkeyring.Keyring
	store   *history.FileStore
	wallet  *wallet.Service
}

func newFixture(t *testing.T) *fixture {
	kr, err := zkeyring.FromSeed([]byte("zwallet golden seed"))
	require.NoError(t, err)

	fake := fakenode.New(t, network)
	store := history.NewFileStore(t.TempDir())
	client := node.NewClient(fake.URL, network, fake.Client(), nil, nil)
	return &fixture{fake, kr, store, wallet.New(client, store, kr, nil)}
}

func (f *fixture) setAccount(nonce, balance uint64, extra ...node.TokenBalance) {
	tokens := append([]node.TokenBalance{{TokenID: tx.Ziesha, Amount: balance}}, extra...)
	f.fake.SetAccount(f.keyring.AccountIndex(), node.Account{Nonce: nonce, Tokens: tokens})
}

func TestSendGoldenTransaction(t *testing.T) {
	f := newFixture(t)
	f.setAccount(0, 1*coin)
	ctx := context.Background()

	// Sending the entire balance is allowed.
	p, err := f.wallet.Send(ctx, recipient, 1*coin, 0)
	require.NoError(t, err)

	assert.Equal(t, uint64(0), p.Nonce)
	assert.Equal(t, f.keyring.Address(), p.SrcPubKey)
	assert.Equal(t, recipient, p.DstPubKey)
	assert.Equal(t,
		"d829475755cc9c2d1473558702ad0e46b9d6c2b28631b55a29db16e74b8d465c"+
			"050cd2fea32c7852314d0158dc2aaa290b4f8db42e37230e911d0f9ed331f21b"+
			"6dd7eb27b1c096b1aea96dc9eae241ba936a0968ad9282062f7a60da25c95315",
		p.Sig,
	)
	require.NoError(t, p.Verify(sponge.Default()))

	assert.Equal(t, []tx.Payload{p}, f.fake.Submitted())
	hist, err := f.wallet.History()
	require.NoError(t, err)
	assert.Equal(t, []tx.Payload{p}, hist)
}

func TestSendNonceSelection(t *testing.T) {
	f := newFixture(t)
	f.setAccount(3, 10*coin)
	ctx := context.Background()

	for want := uint64(3); want < 6; want++ {
		nonce, err := f.wallet.NextNonce(ctx)
		require.NoError(t, err)
		require.Equal(t, want, nonce)

		p, err := f.wallet.Send(ctx, recipient, coin, 0)
		require.NoError(t, err)
		require.Equal(t, want, p.Nonce)
	}

	// The ledger catches up with the first two payments.
	f.setAccount(5, 8*coin)
	pending, err := f.wallet.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, uint64(5), pending[0].Nonce)

	nonce, err := f.wallet.NextNonce(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(6), nonce)

	// Once the ledger is ahead of the history, its nonce wins.
	f.setAccount(9, 8*coin)
	nonce, err = f.wallet.NextNonce(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(9), nonce)
}

func TestSendGuards(t *testing.T) {
	f := newFixture(t)
	f.setAccount(0, 2*coin)
	ctx := context.Background()

	_, err := f.wallet.Send(ctx, f.keyring.Address(), coin, 0)
	require.ErrorIs(t, err, wallet.ErrSendToSelf)

	_, err = f.wallet.Send(ctx, recipient, 2*coin+1, 0)
	require.ErrorIs(t, err, wallet.ErrInsufficientBalance)

	_, err = f.wallet.Send(ctx, recipient, 2*coin, 1)
	require.ErrorIs(t, err, wallet.ErrInsufficientBalance)

	_, err = f.wallet.Send(ctx, recipient, math.MaxUint64, 1)
	require.ErrorIs(t, err, wallet.ErrInsufficientBalance)

	_, err = f.wallet.Send(ctx, "z4"+recipient[2:], coin, 0)
	require.ErrorIs(t, err, address.ErrAddressFormat)

	assert.Empty(t, f.fake.Submitted())
	hist, err := f.wallet.History()
	require.NoError(t, err)
	assert.Empty(t, hist)
}

func TestSendWithoutAccountBalance(t *testing.T) {
	f := newFixture(t)
	_, err := f.wallet.Send(context.Background(), recipient, 1, 0)
	require.ErrorIs(t, err, wallet.ErrInsufficientBalance)
}

func TestResendPending(t *testing.T) {
	f := newFixture(t)
	f.setAccount(0, 10*coin)
	ctx := context.Background()

	_, err := f.wallet.Send(ctx, recipient, coin, 0)
	require.NoError(t, err)

	// A payment that fails to reach the node stays in the history.
	f.fake.SetRejectTransactions(true)
	p, err := f.wallet.Send(ctx, recipient, 2*coin, 0)
	require.Error(t, err)
	assert.Equal(t, uint64(1), p.Nonce)

	n, err := f.wallet.ResendPending(ctx)
	require.Error(t, err)
	assert.Zero(t, n)
	f.fake.SetRejectTransactions(false)

	n, err = f.wallet.ResendPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	submitted := f.fake.Submitted()
	require.Len(t, submitted, 3)
	assert.Equal(t, []uint64{0, 0, 1}, []uint64{submitted[0].Nonce, submitted[1].Nonce, submitted[2].Nonce})

	require.NoError(t, f.wallet.ClearHistory())
	pending, err := f.wallet.Pending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
	n, err = f.wallet.ResendPending(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestLoad(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	known := tx.NewCustomTokenID(zmath.NewFieldElement(42))
	unknown := tx.NewCustomTokenID(zmath.NewFieldElement(43))
	f.fake.SetToken(known, node.Token{Name: "Test Token", Symbol: "TST"})
	f.setAccount(4, 3*coin,
		node.TokenBalance{TokenID: known, Amount: 700},
		node.TokenBalance{TokenID: unknown, Amount: 5},
		node.TokenBalance{TokenID: known, Amount: 1},
	)

	sent, err := f.wallet.Send(ctx, recipient, coin, 0)
	require.NoError(t, err)

	senders, _ := testhelpers.NewKeyrings(t, 2, unsaferand.New("incoming"))
	incoming := senders[0].Pay(0, f.keyring.PublicKey(), 5*coin, 0)
	f.fake.AddToMempool(incoming)
	f.fake.AddToMempool(senders[1].Pay(3, senders[0].PublicKey(), coin, 0))

	state, err := f.wallet.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, f.keyring.Address(), state.Address)
	assert.Equal(t, uint32(580146802), state.AccountIndex)
	assert.Equal(t, uint64(4), state.Nonce)
	assert.Equal(t, uint64(5), state.NextNonce)
	assert.Equal(t, 3*coin, state.Balance)
	assert.Equal(t, coin, state.Spent)
	assert.Equal(t, []tx.Payload{sent}, state.Pending)
	assert.Equal(t, []tx.Payload{incoming}, state.Incoming)
	assert.Equal(t, []wallet.TokenHolding{
		{ID: known.String(), Token: node.Token{Name: "Test Token", Symbol: "TST"}, Amount: 700},
		{ID: unknown.String(), Amount: 5},
	}, state.Tokens)
}

func TestLoadRejectsOverflowingHistory(t *testing.T) {
	f := newFixture(t)
	f.setAccount(0, coin)
	for nonce := range uint64(2) {
		p := f.keyring.Pay(nonce, address.MustDecode(recipient), math.MaxUint64/2+1, 0)
		require.NoError(t, f.store.Append(f.keyring.Address(), p))
	}

	_, err := f.wallet.Load(context.Background())
	require.ErrorIs(t, err, history.ErrAmountOverflow)
}

func TestLoadNodeUnavailable(t *testing.T) {
	f := newFixture(t)
	f.fake.SetFailing(true)
	_, err := f.wallet.Load(context.Background())
	require.ErrorContains(t, err, "503")
}
