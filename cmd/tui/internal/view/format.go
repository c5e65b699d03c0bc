package view

import (
	"strconv"
	"strings"
	"time"
)

// FormatRupiah renders an integer rupiah amount with dot thousand
// separators, e.g. 12500 -> "Rp 12.500".
func FormatRupiah(amount int64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	digits := strconv.FormatInt(amount, 10)

	var sb strings.Builder

	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			sb.WriteByte('.')
		}

		sb.WriteRune(d)
	}

	if negative {
		return "-Rp " + sb.String()
	}

	return "Rp " + sb.String()
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
