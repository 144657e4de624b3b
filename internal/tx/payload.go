package tx

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ziesha-network/zwallet/internal/address"
	"github.com/ziesha-network/zwallet/internal/codec"
	"github.com/ziesha-network/zwallet/internal/eddsa"
	"github.com/ziesha-network/zwallet/internal/sponge"
)

var ErrInvalidSignature = errors.New("invalid transaction signature")

// Payload is a signed payment as submitted to the node's /transact/zero endpoint.
type Payload struct {
	Nonce            uint64  `json:"nonce"`
	SrcPubKey        string  `json:"src_pub_key"`
	DstPubKey        string  `json:"dst_pub_key"`
	SrcTokenIndex    uint32  `json:"src_token_index"`
	SrcFeeTokenIndex uint32  `json:"src_fee_token_index"`
	DstTokenIndex    uint32  `json:"dst_token_index"`
	AmountTokenID    TokenID `json:"amount_token_id"`
	FeeTokenID       TokenID `json:"fee_token_id"`
	Amount           uint64  `json:"amount"`
	Fee              uint64  `json:"fee"`
	Sig              string  `json:"sig"`
}

// Create signs a native token payment of amount (plus fee) base units from key to the given recipient.
func Create(h sponge.Hasher, key *eddsa.PrivateKey, nonce uint64, to eddsa.PublicKey, amount, fee uint64) Payload {
	sig := eddsa.Sign(h, key, Hash(h, nonce, to, amount, fee))
	return Payload{
		Nonce:         nonce,
		SrcPubKey:     address.Encode(key.PublicKey()),
		DstPubKey:     address.Encode(to),
		AmountTokenID: Ziesha,
		FeeTokenID:    Ziesha,
		Amount:        amount,
		Fee:           fee,
		Sig:           SignatureHex(sig),
	}
}

// Verify recomputes the transaction hash and checks the signature against the source address.
func (p Payload) Verify(h sponge.Hasher) error {
	src, err := decodeAddress("src_pub_key", p.SrcPubKey)
	if err != nil {
		return err
	}
	dst, err := decodeAddress("dst_pub_key", p.DstPubKey)
	if err != nil {
		return err
	}
	if !p.AmountTokenID.IsNative() || !p.FeeTokenID.IsNative() {
		return fmt.Errorf("only native token payments are supported, got %s and %s", p.AmountTokenID, p.FeeTokenID)
	}
	sig, err := ParseSignatureHex(p.Sig)
	if err != nil {
		return fmt.Errorf("invalid sig: %w", err)
	}
	if !eddsa.Verify(h, src, Hash(h, p.Nonce, dst, p.Amount, p.Fee), sig) {
		return ErrInvalidSignature
	}
	return nil
}

// MarshalTo writes the compact binary form of the payload: fixed-width integers, the two public keys as affine
// points and the signature as R.x ‖ R.y ‖ s. Only native token payments can be encoded.
func (p Payload) MarshalTo(target codec.Target) {
	src := address.MustDecode(p.SrcPubKey)
	dst := address.MustDecode(p.DstPubKey)
	sig, err := ParseSignatureHex(p.Sig)
	if err != nil {
		panic(err)
	}
	if !p.AmountTokenID.IsNative() || !p.FeeTokenID.IsNative() {
		panic("only native token payments can be encoded")
	}

	target.WriteUint64(p.Nonce)
	target.Write(src)
	target.Write(dst)
	target.WriteInt(int(p.SrcTokenIndex))
	target.WriteInt(int(p.SrcFeeTokenIndex))
	target.WriteInt(int(p.DstTokenIndex))
	target.WriteUint64(p.Amount)
	target.WriteUint64(p.Fee)
	target.Write(sig)
}

func (Payload) UnmarshalFrom(source codec.Source) Payload {
	p := Payload{AmountTokenID: Ziesha, FeeTokenID: Ziesha}
	p.Nonce = source.ReadUint64()
	p.SrcPubKey = address.Encode(codec.ReadObject(source, eddsa.PublicKey{}))
	p.DstPubKey = address.Encode(codec.ReadObject(source, eddsa.PublicKey{}))
	p.SrcTokenIndex = uint32(source.ReadNonNegativeInt())
	p.SrcFeeTokenIndex = uint32(source.ReadNonNegativeInt())
	p.DstTokenIndex = uint32(source.ReadNonNegativeInt())
	p.Amount = source.ReadUint64()
	p.Fee = source.ReadUint64()
	p.Sig = SignatureHex(codec.ReadObject(source, eddsa.Signature{}))
	return p
}

// EncodeRaw returns the 0x-prefixed hex form of the binary encoding of p. Raw payloads can be carried to another
// machine and submitted from there.
func EncodeRaw(p Payload) (string, error) {
	data, err := codec.Marshal(p)
	if err != nil {
		return "", err
	}
	return hexutil.Encode(data), nil
}

// DecodeRaw parses a payload produced by EncodeRaw. The signature is not verified.
func DecodeRaw(raw string) (Payload, error) {
	data, err := hexutil.Decode(raw)
	if err != nil {
		return Payload{}, fmt.Errorf("invalid raw payload: %w", err)
	}
	return codec.Unmarshal(data, Payload{})
}

func decodeAddress(field, s string) (eddsa.PublicKey, error) {
	pk, err := address.Decode(s)
	if err != nil {
		return eddsa.PublicKey{}, fmt.Errorf("invalid %s: %w", field, err)
	}
	return pk, nil
}
