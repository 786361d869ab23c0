// Package money holds the rounding rule shared by every monetary value in tabledine.
package money

import (
	"math"

	"github.com/shopspring/decimal"
)

// Places is the number of fractional digits stored for currency amounts.
const Places = 2

// Round2 rounds d to two decimal places, half away from zero.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}

// FromFloat converts f using its shortest decimal representation, so 1.005 stays
// 1.005 instead of 1.00499999... Non-finite input maps to zero.
func FromFloat(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

// NonNegative clamps d at zero.
func NonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
