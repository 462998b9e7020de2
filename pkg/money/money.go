package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Prices are stored as integer major units of NGN throughout the catalog and
// orders. The payment gateway expects minor units (kobo), so conversions run
// through decimal to avoid float drift on formatting paths.

const minorUnitsPerMajor = 100

// ToMinorUnits converts a major-unit amount to gateway minor units.
func ToMinorUnits(amount int) int64 {
	return decimal.NewFromInt(int64(amount)).
		Mul(decimal.NewFromInt(minorUnitsPerMajor)).
		IntPart()
}

// FromMinorUnits converts gateway minor units back to a major-unit amount,
// truncating sub-unit remainders.
func FromMinorUnits(minor int64) int {
	return int(decimal.NewFromInt(minor).
		Div(decimal.NewFromInt(minorUnitsPerMajor)).
		IntPart())
}

// Format renders a major-unit amount with a currency code, e.g. "NGN 50,000".
func Format(amount int, currency string) string {
	return fmt.Sprintf("%s %s", currency, group(amount))
}

func group(amount int) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	s := decimal.NewFromInt(int64(amount)).String()
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}
