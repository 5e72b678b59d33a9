package table

import (
	"strconv"
	"strings"
)

// Stock bucket labels published instead of raw quantities. The boundaries
// are the supplier's convention: exact counts are commercially sensitive,
// the buckets are not.
const (
	BucketZero   = "0"
	BucketLow    = "<10"
	BucketMedium = "<50"
	BucketHigh   = ">50"
)

// BucketStock maps a raw stock cell to one of the fixed bucket labels.
// It is total: empty cells, placeholder strings and unparseable values all
// land in the zero bucket rather than failing the run. Comma decimal
// separators are accepted because the workbook locale uses them.
func BucketStock(raw string) string {
	s := strings.TrimSpace(raw)
	n := 0
	if s != "" && s != "None" && s != "nan" {
		f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
		if err == nil {
			n = int(f)
		}
	}

	switch {
	case n <= 0:
		return BucketZero
	case n < 10:
		return BucketLow
	case n < 50:
		return BucketMedium
	default:
		return BucketHigh
	}
}
