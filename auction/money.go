package auction

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of fractional digits carried by every amount
const MoneyScale = 2

// MaxAmount is the largest amount the NUMERIC(12,2) money columns can hold
var MaxAmount = decimal.RequireFromString("9999999999.99")

// ParseAmount parses a user-supplied amount such as "55" or "55.00"
func ParseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", raw, err)
	}
	return amount, nil
}

// FormatAmount renders an amount with exactly two fractional digits
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(MoneyScale)
}

// FitsMoneyColumn reports whether the amount can be stored without overflow
func FitsMoneyColumn(amount decimal.Decimal) bool {
	return amount.Abs().LessThanOrEqual(MaxAmount)
}

// HasMoneyPrecision reports whether the amount fits in two fractional digits
func HasMoneyPrecision(amount decimal.Decimal) bool {
	return amount.Equal(amount.Round(MoneyScale))
}
