// Package address converts public keys to and from their 66 character textual form
//
//	'z' ‖ parity ‖ hex(x)
//
// where parity is '3' if the y-coordinate is odd and '2' otherwise, and hex(x) are 64 lowercase, zero-padded,
// big-endian hexadecimal digits.
package address

import (
	"errors"
	"fmt"

	"github.com/ziesha-network/zwallet/internal/curve"
	"github.com/ziesha-network/zwallet/internal/eddsa"
	"github.com/ziesha-network/zwallet/internal/math"
)

const (
	Length = 2 + 2*math.FieldElementSize

	prefix     = 'z'
	evenParity = '2'
	oddParity  = '3'
)

// ErrAddressFormat is returned for strings of the wrong length, prefix, parity marker or hex payload.
var ErrAddressFormat = errors.New("invalid address format")

func Encode(pk eddsa.PublicKey) string {
	parity := byte(evenParity)
	if pk.Y().IsOdd() {
		parity = oddParity
	}
	return string([]byte{prefix, parity}) + pk.X().Hex()
}

// Decode parses an address and recovers the y-coordinate from x and the parity marker. It fails with ErrAddressFormat
// on malformed input and with curve.ErrNotOnCurve if no curve point has the encoded x-coordinate.
func Decode(s string) (eddsa.PublicKey, error) {
	if len(s) != Length {
		return eddsa.PublicKey{}, fmt.Errorf("%w: expected %d characters, got %d", ErrAddressFormat, Length, len(s))
	}
	if s[0] != prefix {
		return eddsa.PublicKey{}, fmt.Errorf("%w: expected prefix %q, got %q", ErrAddressFormat, prefix, s[0])
	}
	if s[1] != evenParity && s[1] != oddParity {
		return eddsa.PublicKey{}, fmt.Errorf("%w: invalid parity marker %q", ErrAddressFormat, s[1])
	}
	for _, c := range s[2:] {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return eddsa.PublicKey{}, fmt.Errorf("%w: invalid hex digit %q", ErrAddressFormat, c)
		}
	}

	x, err := math.FieldElementFromHex(s[2:])
	if err != nil {
		return eddsa.PublicKey{}, fmt.Errorf("%w: %w", ErrAddressFormat, err)
	}
	p, err := curve.RecoverPoint(x, s[1] == oddParity)
	if err != nil {
		return eddsa.PublicKey{}, err
	}
	return eddsa.NewPublicKey(p)
}

// MustDecode is like Decode but panics on error. To be used for constants and tests only.
func MustDecode(s string) eddsa.PublicKey {
	pk, err := Decode(s)
	if err != nil {
		panic(err)
	}
	return pk
}
