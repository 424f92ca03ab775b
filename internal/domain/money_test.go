package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		name     string
		currency string
		value    string
		expected string
		wantErr  bool
	}{
		{name: "integer", currency: USD, value: "120", expected: "120"},
		{name: "fraction", currency: CAD, value: "119.9876", expected: "119.9876"},
		{name: "exponent", currency: EUR, value: "1.5e2", expected: "150"},
		{name: "negative", currency: USD, value: "-3.25", expected: "-3.25"},
		{name: "unknown currency", currency: "ZZZ", value: "1", wantErr: true},
		{name: "lower case currency", currency: "usd", value: "1", wantErr: true},
		{name: "empty currency", currency: "", value: "1", wantErr: true},
		{name: "crypto is not a quote currency", currency: BTC, value: "1", wantErr: true},
		{name: "not a number", currency: USD, value: "abc", wantErr: true},
		{name: "empty value", currency: USD, value: "", wantErr: true},
		{name: "embedded space", currency: USD, value: "1 000", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			money, err := ParseMoney(tt.currency, tt.value)
			if tt.wantErr {
				var formatErr *MoneyFormatError
				require.True(t, errors.As(err, &formatErr), "expected MoneyFormatError, got %v", err)
				assert.Equal(t, tt.currency, formatErr.Currency)
				assert.Equal(t, tt.value, formatErr.Value)
				assert.Equal(t, Money{}, money)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.currency, money.Currency)
			assert.True(t, money.Amount.Equal(decimal.RequireFromString(tt.expected)),
				"expected %s, got %s", tt.expected, money.Amount)
		})
	}
}

func TestNewMoney(t *testing.T) {
	amount := decimal.RequireFromString("0.00000001")

	money, err := NewMoney(CAD, amount)
	require.NoError(t, err)
	assert.Equal(t, CAD, money.Currency)
	assert.True(t, money.Amount.Equal(amount))

	_, err = NewMoney("XYZ1", amount)
	var formatErr *MoneyFormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, "XYZ1", formatErr.Currency)
	assert.Equal(t, "0.00000001", formatErr.Value)
}

func TestParseDecimal(t *testing.T) {
	d, err := ParseDecimal("12.340")
	require.NoError(t, err)
	assert.Equal(t, "12.34", d.String())

	_, err = ParseDecimal("twelve")
	var formatErr *MoneyFormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Empty(t, formatErr.Currency)
	assert.Contains(t, formatErr.Error(), "twelve")
}

func TestMoneyPlainString(t *testing.T) {
	tests := []struct {
		value    string
		expected string
	}{
		{"120.500", "120.5"},
		{"120", "120"},
		{"1.2E3", "1200"},
		{"0.0001000", "0.0001"},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			money, err := ParseMoney(USD, tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, money.PlainString())
		})
	}
}

func TestMoneyString(t *testing.T) {
	money, err := ParseMoney(USD, "1.50")
	require.NoError(t, err)
	assert.Equal(t, "USD 1.5", money.String())
}
