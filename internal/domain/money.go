package domain

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// RUB is the storefront's display currency.
var RUB = currency.MustParseISO("RUB")

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

func NewMoney(amount decimal.Decimal) Money {
	return Money{Amount: amount, Currency: RUB}
}

var symbols = map[string]string{
	"RUB": "₽",
	"USD": "$",
	"EUR": "€",
}

// Display renders the amount the way the storefront prints it, e.g. "500 ₽".
func (m Money) Display() string {
	unit := m.Currency
	if (unit == currency.Unit{}) {
		unit = RUB
	}
	sym, ok := symbols[unit.String()]
	if !ok {
		sym = unit.String()
	}
	return m.Amount.String() + " " + sym
}

// The wire carries a bare amount, no unit.
func (m *Money) UnmarshalJSON(data []byte) error {
	var amount decimal.Decimal
	if err := amount.UnmarshalJSON(data); err != nil {
		return err
	}
	m.Amount = amount
	m.Currency = RUB
	return nil
}

func (m Money) MarshalJSON() ([]byte, error) {
	return m.Amount.MarshalJSON()
}
