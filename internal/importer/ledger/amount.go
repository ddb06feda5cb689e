package ledger

import (
	"strings"

	"github.com/shopspring/decimal"
)

// parseAmount parses a Colombian-formatted amount into whole pesos.
// Format examples: "25.000.000" -> 25000000, "$ 4.750.000,50" -> 4750001.
func parseAmount(s string) (int64, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimPrefix(clean, "$")
	clean = strings.TrimSpace(clean)
	clean = strings.ReplaceAll(clean, ".", "")
	clean = strings.ReplaceAll(clean, ",", ".")

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, err
	}

	return d.Round(0).IntPart(), nil
}
