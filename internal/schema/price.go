package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yanun0323/decimal"
)

// PriceScale is the fixed-point denominator for wire prices.
const PriceScale = 1_000_000_000

// PriceNull marks an absent price on the wire.
const PriceNull = Price(1<<63 - 1)

// Price is a fixed-point price scaled by 1e-9.
type Price int64

// IsNull reports whether the price carries the wire null sentinel.
func (p Price) IsNull() bool {
	return p == PriceNull
}

// Float returns the price as a float64. Lossy above 2^53 units.
func (p Price) Float() float64 {
	return float64(p) / PriceScale
}

// Decimal returns the price as an exact decimal value.
func (p Price) Decimal() decimal.Decimal {
	var d decimal.Decimal
	_ = json.Unmarshal([]byte(p.String()), &d)
	return d
}

// String renders the price in fixed decimal notation with trailing
// zeros trimmed, e.g. 4123_500_000_000 -> "4123.5".
func (p Price) String() string {
	v := int64(p)
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	frac := strings.TrimRight(fmt.Sprintf("%09d", v%PriceScale), "0")
	if frac == "" {
		return fmt.Sprintf("%s%d", sign, v/PriceScale)
	}
	return fmt.Sprintf("%s%d.%s", sign, v/PriceScale, frac)
}
