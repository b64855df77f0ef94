package helpers

import (
	"strconv"

	"github.com/shopspring/decimal"
)

func StringToInt(s string) (int, error) {
	return strconv.Atoi(s)
}

// StringToAmount parses a monetary form field. Empty means zero.
func StringToAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
