package normalize

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var maxMinorUnits = decimal.NewFromInt(math.MaxInt64)

// Any nonzero amount with a larger decimal exponent overflows minor units.
const maxAmountExponent = 20

var moneyStripper = strings.NewReplacer(",", "", "$", "")

// MinorUnits converts a raw monetary value to non-negative integer cents.
// Halves round away from zero, so 0.125 becomes 13.
func MinorUnits(field string, v any) (int64, error) {
	if v == nil {
		return 0, MissingField(field)
	}
	amount, err := parseDecimal(field, v)
	if err != nil {
		return 0, err
	}
	// Rescaling cost grows with the exponent, so bound it first.
	if amount.IsZero() {
		return 0, nil
	}
	if amount.Exponent() > maxAmountExponent {
		return 0, Invalid(KindInvalidAmount, field, v, "amount %s overflows minor units", renderValue(v))
	}
	if int(amount.Exponent())+amount.NumDigits() <= -3 {
		// Magnitude below a tenth of a cent.
		return 0, nil
	}

	cents := amount.Shift(2).Round(0)
	if cents.IsNegative() {
		return 0, Invalid(KindInvalidAmount, field, v, "amount %s is negative", renderValue(v))
	}
	if cents.GreaterThan(maxMinorUnits) {
		return 0, Invalid(KindInvalidAmount, field, v, "amount %s overflows minor units", renderValue(v))
	}
	return cents.IntPart(), nil
}

func parseDecimal(field string, v any) (decimal.Decimal, error) {
	switch x := v.(type) {
	case string:
		s := strings.Join(strings.Fields(moneyStripper.Replace(x)), "")
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Decimal{}, Invalid(KindInvalidAmount, field, v, "unparseable amount %q", x)
		}
		return d, nil
	case json.Number:
		d, err := decimal.NewFromString(x.String())
		if err != nil {
			return decimal.Decimal{}, Invalid(KindInvalidAmount, field, v, "unparseable amount %q", x.String())
		}
		return d, nil
	case float32:
		return fromFloat(field, v, float64(x))
	case float64:
		return fromFloat(field, v, x)
	}
	if n, ok := Int(v); ok {
		return decimal.NewFromInt(n), nil
	}
	return decimal.Decimal{}, Invalid(KindInvalidAmount, field, v, "amount must be a number or string, got %s", kindName(v))
}

func fromFloat(field string, raw any, f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Decimal{}, Invalid(KindInvalidAmount, field, raw, "amount %v is not finite", f)
	}
	return decimal.NewFromFloat(f), nil
}
