package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is the ledger's home currency.
const DefaultCurrency = "JPY"

// Money represents a monetary value with currency
type Money struct {
	Amount   decimal.Decimal `json:"amount" yaml:"amount"`
	Currency string          `json:"currency" yaml:"currency"`
}

// NewMoney creates a new Money instance with the given amount and currency
func NewMoney(amount decimal.Decimal, currency string) Money {
	return Money{Amount: amount, Currency: currency}
}

// ZeroMoney returns a Money instance with zero amount in the given currency
func ZeroMoney(currency string) Money {
	return Money{Amount: decimal.Zero, Currency: currency}
}

// currencyMarkers is checked in order, longest marker first. The first
// marker present names the currency.
var currencyMarkers = []struct {
	marker string
	code   string
}{
	{"JPY", "JPY"},
	{"USD", "USD"},
	{"EUR", "EUR"},
	{"￥", "JPY"},
	{"¥", "JPY"},
	{"円", "JPY"},
	{"$", "USD"},
	{"€", "EUR"},
}

// ParseMoney parses amounts as they appear in statements and CSV exports:
// "1,280", "¥1,280", "1280円", "-3,000 JPY". Commas are thousand separators.
// When the text names no currency, fallbackCurrency is used. Every known
// marker is stripped.
func ParseMoney(text, fallbackCurrency string) (Money, error) {
	cleaned := strings.TrimSpace(text)
	currency := ""
	for _, m := range currencyMarkers {
		if !strings.Contains(cleaned, m.marker) {
			continue
		}
		if currency == "" {
			currency = m.code
		}
		cleaned = strings.ReplaceAll(cleaned, m.marker, "")
	}
	if currency == "" {
		currency = fallbackCurrency
	}
	cleaned = strings.NewReplacer(",", "", " ", "", "'", "").Replace(cleaned)
	if cleaned == "" {
		return Money{}, fmt.Errorf("invalid amount string '%s': empty", text)
	}

	dec, err := decimal.NewFromString(cleaned)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount string '%s': %w", text, err)
	}
	return Money{Amount: dec, Currency: currency}, nil
}

// IsZero returns true if the amount is zero
func (m Money) IsZero() bool {
	return m.Amount.IsZero()
}

// IsNegative returns true if the amount is negative
func (m Money) IsNegative() bool {
	return m.Amount.IsNegative()
}

// Abs returns the absolute value of the money amount
func (m Money) Abs() Money {
	return Money{Amount: m.Amount.Abs(), Currency: m.Currency}
}

// String renders the amount with the currency's customary precision.
func (m Money) String() string {
	places := int32(2)
	if m.Currency == "JPY" {
		places = 0
	}
	return fmt.Sprintf("%s %s", m.Amount.StringFixed(places), m.Currency)
}
