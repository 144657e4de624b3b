package tx

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
	"github.com/ziesha-network/zwallet/internal/math"
)

const nativeTokenName = "Ziesha"

// TokenID identifies a ledger token. The zero value is the native token, which is encoded in JSON as the string
// "Ziesha". Custom tokens are identified by a field element, encoded in JSON as {"Custom": [l0, l1, l2, l3]} where the
// limbs hold the Montgomery form of the id, least significant limb first.
type TokenID struct {
	custom *uint256.Int
}

// Ziesha is the native token.
var Ziesha = TokenID{}

// NewCustomTokenID returns the id of the custom token identified by v.
func NewCustomTokenID(v math.FieldElement) TokenID {
	limbs := uint256.Int(v.Montgomery().Limbs())
	return TokenID{&limbs}
}

func (id TokenID) IsNative() bool {
	return id.custom == nil
}

// Value returns the field element identifying a custom token, and false for the native token.
func (id TokenID) Value() (math.FieldElement, bool) {
	if id.custom == nil {
		return math.FieldElement{}, false
	}
	b := id.custom.Bytes32()
	m, err := math.FieldElementFromBytes(b[:])
	if err != nil {
		// Limbs are range checked on construction.
		panic(err)
	}
	return math.FromMontgomery(m), true
}

// String returns "Ziesha" for the native token, and the 0x-prefixed 64 digit hex encoding of the id otherwise. This
// is the form expected by the node's token endpoint.
func (id TokenID) String() string {
	v, ok := id.Value()
	if !ok {
		return nativeTokenName
	}
	return hexutil.Encode(v.Bytes())
}

func (id TokenID) Equal(other TokenID) bool {
	if id.custom == nil || other.custom == nil {
		return id.custom == other.custom
	}
	return id.custom.Eq(other.custom)
}

type customTokenJSON struct {
	Custom [4]uint64 `json:"Custom"`
}

func (id TokenID) MarshalJSON() ([]byte, error) {
	if id.custom == nil {
		return json.Marshal(nativeTokenName)
	}
	return json.Marshal(customTokenJSON{[4]uint64(*id.custom)})
}

func (id *TokenID) UnmarshalJSON(data []byte) error {
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte(`"`)) {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		if name != nativeTokenName {
			return fmt.Errorf("%w: unknown token %q", math.ErrParse, name)
		}
		*id = Ziesha
		return nil
	}

	var custom customTokenJSON
	if err := json.Unmarshal(data, &custom); err != nil {
		return fmt.Errorf("%w: invalid token id: %w", math.ErrParse, err)
	}
	limbs := uint256.Int(custom.Custom)
	if limbs.CmpBig(math.FieldModulus()) >= 0 {
		return fmt.Errorf("%w: token id %s is not a field element", math.ErrArithmeticRange, limbs.Hex())
	}
	*id = TokenID{&limbs}
	return nil
}
