package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
)

// parseRupiah parses an Indonesian-formatted amount into whole rupiah.
// Accepted examples: "Rp 12.500" -> 12500, "12.500,50" -> 12501 (rounded),
// "12500" -> 12500.
func parseRupiah(s string) (int64, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimPrefix(clean, "Rp")
	clean = strings.TrimSpace(clean)
	clean = strings.ReplaceAll(clean, ".", "")
	clean = strings.ReplaceAll(clean, ",", ".")

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, err
	}

	return d.Round(0).IntPart(), nil
}
