package csvbank

import (
	"strings"

	"github.com/shopspring/decimal"
)

// parseAmount parses a formatted amount. With decimalComma "1.234,56" is 1234.56; with
// decimalDot "1,234.56" is. Currency symbols and spaces are ignored.
func parseAmount(s string, mark decimalMark) (decimal.Decimal, error) {
	clean := strings.NewReplacer("R$", "", "€", "", " ", "", " ", "").Replace(s)

	switch mark {
	case decimalComma:
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	case decimalDot:
		clean = strings.ReplaceAll(clean, ",", "")
	}

	return decimal.NewFromString(clean)
}
