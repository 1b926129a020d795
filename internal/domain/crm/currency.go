package crm

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseCurrency coerces a hand-entered money value to a number. Every
// character that is not a digit, '.' or '-' is stripped before parsing, so
// "$1,200.00", " 1200 " and "1200" all read as 1200. Empty or unparsable
// input reads as 0.
func ParseCurrency(raw string) float64 {
	var sb strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			sb.WriteRune(r)
		}
	}
	cleaned := sb.String()
	if cleaned == "" {
		return 0
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0
	}
	return d.InexactFloat64()
}
