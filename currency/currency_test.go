package currency

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	testCases := []struct {
		amount   int64
		expected string
	}{
		{0, "0 DZD"},
		{950, "950 DZD"},
		{12500, "12,500 DZD"},
		{125000, "125,000 DZD"},
		{1250000, "1,250,000 DZD"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, Format(decimal.NewFromInt(tc.amount)))
		})
	}
}

func TestFormatRoundsFractions(t *testing.T) {
	assert.Equal(t, "12,500 DZD", Format(decimal.NewFromFloat(12499.50)))
}

func TestParse(t *testing.T) {
	testCases := []struct {
		input    string
		expected int64
	}{
		{"12,500 DZD", 12500},
		{"12500", 12500},
		{"125,000", 125000},
		{"garbage", 0},
		{"", 0},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.True(t, Parse(tc.input).Equal(decimal.NewFromInt(tc.expected)),
				"parsing %q", tc.input)
		})
	}
}

func TestDiscount(t *testing.T) {
	testCases := []struct {
		original   int64
		discounted int64
		expected   string
	}{
		{135000, 125000, "-7%"},
		{210000, 185000, "-12%"},
		{100000, 50000, "-50%"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			got := Discount(decimal.NewFromInt(tc.original), decimal.NewFromInt(tc.discounted))
			assert.Equal(t, tc.expected, got)
		})
	}
}
