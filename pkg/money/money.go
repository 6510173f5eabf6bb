// Package money implements a fixed-precision currency amount.
package money

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

var (
	ErrCurrencyMismatch = errors.New("the currencies of the amounts do not match")
	ErrInvalidCurrency  = errors.New("the currency code is not a valid ISO 4217 code")
	ErrInvalidAmount    = errors.New("the amount is not a valid decimal number")
)

// Money is an amount in a specific currency.
//
// The amount is always rounded to the minor unit of the currency, e.g.
// two decimal places for EUR and none for JPY.
type Money struct {
	amount   decimal.Decimal
	currency currency.Unit
}

// Scale returns the number of decimal places of the minor unit of the currency.
func Scale(unit currency.Unit) int32 {
	scale, _ := currency.Standard.Rounding(unit)
	return int32(scale)
}

// New returns a Money for the amount, rounded to the minor unit of the currency.
func New(amount decimal.Decimal, unit currency.Unit) Money {
	return Money{
		amount:   amount.Round(Scale(unit)),
		currency: unit,
	}
}

// Zero returns zero in the given currency.
func Zero(unit currency.Unit) Money {
	return Money{amount: decimal.Zero, currency: unit}
}

// ParseCurrency parses an ISO 4217 currency code.
func ParseCurrency(code string) (currency.Unit, error) {
	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return currency.Unit{}, fmt.Errorf("%w: %s", ErrInvalidCurrency, code)
	}

	return unit, nil
}

// Parse parses an amount string and ISO 4217 currency code.
func Parse(amount, code string) (Money, error) {
	unit, err := ParseCurrency(code)
	if err != nil {
		return Money{}, err
	}

	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return Money{}, fmt.Errorf("%w: %s", ErrInvalidAmount, amount)
	}

	return New(d, unit), nil
}

// Amount returns the decimal amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency unit.
func (m Money) Currency() currency.Unit {
	return m.currency
}

// SameCurrency reports whether m and n share a currency.
func (m Money) SameCurrency(n Money) bool {
	return m.currency == n.currency
}

// Add returns m + n.
func (m Money) Add(n Money) (Money, error) {
	if !m.SameCurrency(n) {
		return Money{}, fmt.Errorf("%w: %s and %s", ErrCurrencyMismatch, m.currency, n.currency)
	}

	return Money{amount: m.amount.Add(n.amount), currency: m.currency}, nil
}

// Sub returns m - n.
func (m Money) Sub(n Money) (Money, error) {
	if !m.SameCurrency(n) {
		return Money{}, fmt.Errorf("%w: %s and %s", ErrCurrencyMismatch, m.currency, n.currency)
	}

	return Money{amount: m.amount.Sub(n.amount), currency: m.currency}, nil
}

// Cmp compares m and n and returns -1, 0 or +1.
func (m Money) Cmp(n Money) (int, error) {
	if !m.SameCurrency(n) {
		return 0, fmt.Errorf("%w: %s and %s", ErrCurrencyMismatch, m.currency, n.currency)
	}

	return m.amount.Cmp(n.amount), nil
}

// Equal reports whether m and n are the same amount in the same currency.
func (m Money) Equal(n Money) bool {
	return m.SameCurrency(n) && m.amount.Equal(n.amount)
}

func (m Money) Neg() Money {
	return Money{amount: m.amount.Neg(), currency: m.currency}
}

func (m Money) Abs() Money {
	return Money{amount: m.amount.Abs(), currency: m.currency}
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// String returns the amount with the minor unit precision and the currency code, e.g. "12.30 EUR".
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.StringFixed(Scale(m.currency)), m.currency)
}

type jsonMoney struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// MarshalJSON implements the json.Marshaler interface.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonMoney{Amount: m.amount, Currency: m.currency.String()})
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (m *Money) UnmarshalJSON(data []byte) error {
	var j jsonMoney
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}

	unit, err := ParseCurrency(j.Currency)
	if err != nil {
		return err
	}

	*m = New(j.Amount, unit)
	return nil
}
