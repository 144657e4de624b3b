package tx

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/holiman/uint256"
	"github.com/ziesha-network/zwallet/internal/math"
)

const (
	// UnitsPerCoin is the number of base units in one coin of the native token.
	UnitsPerCoin = 1_000_000_000
	decimals     = 9
)

// FormatAmount renders a base unit amount in coins, always with at least one decimal, e.g. 2500000000 as "2.5".
func FormatAmount(units uint64) string {
	whole, frac := units/UnitsPerCoin, units%UnitsPerCoin
	fraction := strings.TrimRight(fmt.Sprintf("%0*d", decimals, frac), "0")
	if fraction == "" {
		fraction = "0"
	}
	return strconv.FormatUint(whole, 10) + "." + fraction
}

// ParseAmount converts a decimal coin amount such as "2.5" into base units. At most 9 decimals are accepted.
func ParseAmount(s string) (uint64, error) {
	whole, fraction, _ := strings.Cut(s, ".")
	if whole == "" && fraction == "" {
		return 0, fmt.Errorf("%w: empty amount", math.ErrParse)
	}
	if len(fraction) > decimals {
		return 0, fmt.Errorf("%w: at most %d decimals are supported, got %q", math.ErrParse, decimals, s)
	}
	for _, part := range []string{whole, fraction} {
		if strings.Trim(part, "0123456789") != "" {
			return 0, fmt.Errorf("%w: invalid amount %q", math.ErrParse, s)
		}
	}
	if whole == "" {
		whole = "0"
	}
	fraction += strings.Repeat("0", decimals-len(fraction))

	var w, f uint256.Int
	if err := w.SetFromDecimal(whole); err != nil {
		return 0, fmt.Errorf("%w: %w", math.ErrArithmeticRange, err)
	}
	if err := f.SetFromDecimal(fraction); err != nil {
		return 0, fmt.Errorf("%w: %w", math.ErrParse, err)
	}

	total, overflow := new(uint256.Int).MulOverflow(&w, uint256.NewInt(UnitsPerCoin))
	if !overflow {
		total, overflow = total.AddOverflow(total, &f)
	}
	if overflow || !total.IsUint64() {
		return 0, fmt.Errorf("%w: amount %q does not fit into 64 bits", math.ErrArithmeticRange, s)
	}
	return total.Uint64(), nil
}
