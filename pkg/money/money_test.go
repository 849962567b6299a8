package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToCents(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"1000.00", 100000},
		{"0.01", 1},
		{"0.015", 2},
		{"500", 50000},
		{"", 0},
		{"-12.34", -1234},
	}
	for _, tc := range cases {
		got, err := ToCents(tc.in)
		assert.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestToCentsRejectsGarbage(t *testing.T) {
	_, err := ToCents("abc")
	assert.Error(t, err)
}

func TestFromCents(t *testing.T) {
	assert.Equal(t, "1.234,56", FromCents(123456))
	assert.Equal(t, "0,00", FromCents(0))
	assert.Equal(t, "0,05", FromCents(5))
	assert.Equal(t, "12,00", FromCents(1200))
	assert.Equal(t, "1.000.000,00", FromCents(100000000))
	assert.Equal(t, "-1.234,56", FromCents(-123456))
}

func TestFormatBRL(t *testing.T) {
	assert.Equal(t, "R$ 2.000,00", FormatBRL(200000))
}
