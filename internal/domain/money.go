package domain

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// DefaultCurrency is the currency the catalog quotes prices in.
var DefaultCurrency = currency.USD

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

func NewMoney(amount decimal.Decimal) Money {
	return Money{Amount: amount, Currency: DefaultCurrency}
}

// String renders the amount with two decimals, e.g. "$19.98" or "EUR 3.50".
func (m Money) String() string {
	amount := m.Amount.StringFixed(2)
	if m.Currency == currency.USD {
		return "$" + amount
	}
	return m.Currency.String() + " " + amount
}
