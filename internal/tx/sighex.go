package tx

import (
	"encoding/hex"
	"fmt"
	"slices"

	"github.com/ziesha-network/zwallet/internal/curve"
	"github.com/ziesha-network/zwallet/internal/eddsa"
	"github.com/ziesha-network/zwallet/internal/math"
)

// SignatureHexLength is the length of the ledger's textual signature encoding.
const SignatureHexLength = 3 * 2 * math.FieldElementSize

// SignatureHex encodes sig the way the ledger expects it: R.x, R.y and s are each converted to Montgomery form,
// encoded as 32 bytes in little-endian order and rendered as lowercase hex, then concatenated.
func SignatureHex(sig eddsa.Signature) string {
	r := sig.R().Affine()
	out := make([]byte, 0, SignatureHexLength)
	for _, v := range []math.FieldElement{r.X(), r.Y(), sig.S()} {
		b := v.Montgomery().Bytes()
		slices.Reverse(b)
		out = hex.AppendEncode(out, b)
	}
	return string(out)
}

// ParseSignatureHex inverts SignatureHex. R is not checked against the curve, verification rejects such signatures.
func ParseSignatureHex(s string) (eddsa.Signature, error) {
	if len(s) != SignatureHexLength {
		return eddsa.Signature{}, fmt.Errorf("%w: signature must be %d hex digits, got %d",
			math.ErrParse, SignatureHexLength, len(s))
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return eddsa.Signature{}, fmt.Errorf("%w: %w", math.ErrParse, err)
	}

	var values [3]math.FieldElement
	for i := range values {
		chunk := slices.Clone(b[i*math.FieldElementSize : (i+1)*math.FieldElementSize])
		slices.Reverse(chunk)
		m, err := math.FieldElementFromBytes(chunk)
		if err != nil {
			return eddsa.Signature{}, err
		}
		values[i] = math.FromMontgomery(m)
	}
	return eddsa.NewSignature(curve.NewPoint(values[0], values[1]), values[2]), nil
}
