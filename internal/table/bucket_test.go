package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBucketStock(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{name: "zero", raw: "0", expected: BucketZero},
		{name: "negative", raw: "-3", expected: BucketZero},
		{name: "empty", raw: "", expected: BucketZero},
		{name: "whitespace only", raw: "   ", expected: BucketZero},
		{name: "python none placeholder", raw: "None", expected: BucketZero},
		{name: "pandas nan placeholder", raw: "nan", expected: BucketZero},
		{name: "garbage", raw: "n/a", expected: BucketZero},
		{name: "one", raw: "1", expected: BucketLow},
		{name: "upper low boundary", raw: "9", expected: BucketLow},
		{name: "low boundary", raw: "10", expected: BucketMedium},
		{name: "mid range", raw: "49", expected: BucketMedium},
		{name: "medium boundary", raw: "50", expected: BucketHigh},
		{name: "large", raw: "1200", expected: BucketHigh},
		{name: "decimal point", raw: "3.7", expected: BucketLow},
		{name: "decimal comma", raw: "12,5", expected: BucketMedium},
		{name: "padded", raw: " 51 ", expected: BucketHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BucketStock(tt.raw))
		})
	}
}

func TestBucketStock_AlwaysReturnsKnownLabel(t *testing.T) {
	known := map[string]bool{
		BucketZero:   true,
		BucketLow:    true,
		BucketMedium: true,
		BucketHigh:   true,
	}

	inputs := []string{"", "None", "nan", "-1", "0", "0.4", "9.99", "10", "49,9", "50", "9999", "abc", "1e3"}
	for _, in := range inputs {
		assert.True(t, known[BucketStock(in)], "input %q produced unknown label", in)
	}
}
