// Package zkeyring holds a wallet's signing key. A Keyring is derived deterministically from a seed, usually the BIP39
// seed of a mnemonic, and never exposes the secret material through fmt.
package zkeyring

import (
	"encoding"
	"errors"
	"fmt"
	"io"

	"github.com/tyler-smith/go-bip39"
	"github.com/ziesha-network/zwallet/internal/address"
	"github.com/ziesha-network/zwallet/internal/eddsa"
	"github.com/ziesha-network/zwallet/internal/math"
	"github.com/ziesha-network/zwallet/internal/metrics"
	"github.com/ziesha-network/zwallet/internal/sponge"
	"github.com/ziesha-network/zwallet/internal/tx"
)

// SeedLength is the length of seeds produced by New and of BIP39 seeds.
const SeedLength = 64

// MnemonicEntropyBits is the entropy used by NewMnemonic (12 words).
const MnemonicEntropyBits = 128

var ErrInvalidMnemonic = errors.New("invalid mnemonic")

var _ encoding.BinaryMarshaler = &Keyring{}
var _ encoding.BinaryUnmarshaler = &Keyring{}
var _ fmt.Stringer = &Keyring{}
var _ fmt.GoStringer = &Keyring{}

type Keyring struct {
	seed    []byte
	key     *eddsa.PrivateKey
	hasher  sponge.Hasher
	metrics *metrics.Metrics
}

// Implement Stringer and GoStringer interfaces to ensure that the seed is never accidentally logged.
func (kr *Keyring) String() string {
	return kr.GoString()
}

func (kr *Keyring) GoString() string {
	if kr.key == nil {
		return "Keyring{}"
	}
	return fmt.Sprintf("Keyring{address: %q}", kr.Address())
}

// New initializes a keyring from a freshly generated seed. Typically applications should pass [crypto/rand.Reader].
func New(rand io.Reader) (*Keyring, error) {
	seed := make([]byte, SeedLength)
	if _, err := io.ReadFull(rand, seed); err != nil {
		return nil, err
	}
	return FromSeed(seed)
}

// FromSeed derives the keyring from arbitrary seed bytes. The seed is copied.
func FromSeed(seed []byte) (*Keyring, error) {
	key, err := eddsa.NewPrivateKey(seed)
	if err != nil {
		return nil, err
	}
	return &Keyring{seed: append([]byte(nil), seed...), key: key, hasher: sponge.Default()}, nil
}

// FromMnemonic derives the keyring from the BIP39 seed of mnemonic, using an empty passphrase.
func FromMnemonic(mnemonic string) (*Keyring, error) {
	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, "")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMnemonic, err)
	}
	return FromSeed(seed)
}

// NewMnemonic generates a new 12 word mnemonic.
func NewMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(MnemonicEntropyBits)
	if err != nil {
		return "", err
	}
	return bip39.NewMnemonic(entropy)
}

// WithMetrics makes the keyring count the signatures it produces.
func (kr *Keyring) WithMetrics(m *metrics.Metrics) *Keyring {
	kr.metrics = m
	return kr
}

func (kr *Keyring) PublicKey() eddsa.PublicKey {
	return kr.key.PublicKey()
}

func (kr *Keyring) Address() string {
	return address.Encode(kr.key.PublicKey())
}

func (kr *Keyring) AccountIndex() uint32 {
	return kr.key.PublicKey().AccountIndex()
}

// PrivateKey exposes the underlying key for transaction building.
func (kr *Keyring) PrivateKey() *eddsa.PrivateKey {
	return kr.key
}

func (kr *Keyring) Sign(msg math.FieldElement) eddsa.Signature {
	sig := eddsa.Sign(kr.hasher, kr.key, msg)
	kr.metrics.SignatureCreated()
	return sig
}

// Zero wipes the seed and the derived key. The keyring must not be used afterwards.
func (kr *Keyring) Zero() {
	clear(kr.seed)
	if kr.key != nil {
		kr.key.Zero()
	}
}

// MarshalBinary implements encoding.BinaryMarshaler by exporting the seed.
func (kr *Keyring) MarshalBinary() ([]byte, error) {
	return append([]byte(nil), kr.seed...), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler by re-deriving the key from the seed.
func (kr *Keyring) UnmarshalBinary(data []byte) error {
	restored, err := FromSeed(data)
	if err != nil {
		return fmt.Errorf("failed to derive key from seed: %w", err)
	}
	kr.Zero()
	kr.seed, kr.key, kr.hasher = restored.seed, restored.key, restored.hasher
	return nil
}

// Pay signs a native token payment to the given recipient.
func (kr *Keyring) Pay(nonce uint64, to eddsa.PublicKey, amount, fee uint64) tx.Payload {
	p := tx.Create(kr.hasher, kr.key, nonce, to, amount, fee)
	kr.metrics.SignatureCreated()
	return p
}
