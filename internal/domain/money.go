package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

var errCurrencyCase = errors.New("currency code must be upper case")

// Money is an exact decimal amount tagged with the currency it is
// denominated in.
type Money struct {
	Currency string          `json:"currency"`
	Amount   decimal.Decimal `json:"amount"`
}

// NewMoney tags amount with currencyCode. The code must be a recognised
// ISO 4217 code written in upper case.
func NewMoney(currencyCode string, amount decimal.Decimal) (Money, error) {
	if err := checkCurrency(currencyCode); err != nil {
		return Money{}, &MoneyFormatError{Currency: currencyCode, Value: amount.String(), Err: err}
	}
	return Money{Currency: currencyCode, Amount: amount}, nil
}

// ParseMoney parses value as an exact decimal denominated in currencyCode.
func ParseMoney(currencyCode string, value string) (Money, error) {
	if err := checkCurrency(currencyCode); err != nil {
		return Money{}, &MoneyFormatError{Currency: currencyCode, Value: value, Err: err}
	}
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, &MoneyFormatError{Currency: currencyCode, Value: value, Err: err}
	}
	return Money{Currency: currencyCode, Amount: amount}, nil
}

// ParseDecimal parses value as an exact decimal with no currency.
func ParseDecimal(value string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, &MoneyFormatError{Value: value, Err: err}
	}
	return amount, nil
}

func checkCurrency(code string) error {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return err
	}
	if unit.String() != code {
		return errCurrencyCase
	}
	return nil
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Currency, m.Amount.String())
}

// PlainString returns the amount in plain notation with trailing zeros
// stripped, e.g. "120.5" for 120.500.
func (m Money) PlainString() string {
	return m.Amount.String()
}
