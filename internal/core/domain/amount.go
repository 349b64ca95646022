package domain

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// EtherDecimals is the number of wei digits in one ether.
const EtherDecimals = 18

// maxExponent bounds the decimal exponent accepted from callers. Anything
// outside it is either finer than a wei or larger than MaxWei, and
// rescaling it would be unbounded work.
const maxExponent = 96

// MaxWei is the largest amount a 256-bit chain value can carry.
var MaxWei = decimal.NewFromBigInt(new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1)), 0)

// ParseEther converts an ether denominated decimal string such as "0.1"
// into wei. Fractions finer than one wei and amounts above MaxWei are
// rejected.
func ParseEther(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse ether amount %q: %w", s, err)
	}
	if exp := d.Exponent(); exp > maxExponent || exp < -maxExponent {
		return decimal.Zero, fmt.Errorf("parse ether amount %q: %w", s, ErrInvalidAmount)
	}
	wei := d.Shift(EtherDecimals)
	if !wei.IsInteger() || !inRange(wei.Abs()) {
		return decimal.Zero, fmt.Errorf("parse ether amount %q: %w", s, ErrInvalidAmount)
	}
	return wei, nil
}

// FormatEther renders a wei amount as an ether denominated decimal string.
func FormatEther(wei decimal.Decimal) string {
	return wei.Shift(-EtherDecimals).String()
}

// validWei reports whether v is a strictly positive integer amount no
// larger than MaxWei.
func validWei(v decimal.Decimal) bool {
	return v.IsPositive() && inRange(v) && v.IsInteger()
}

// inRange reports whether the non-negative v fits in 256 bits.
func inRange(v decimal.Decimal) bool {
	if exp := v.Exponent(); exp > maxExponent || exp < -maxExponent {
		return false
	}
	return v.BigInt().BitLen() <= 256
}
