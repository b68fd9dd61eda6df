package domain

import "github.com/shopspring/decimal"

// Cart is a point-in-time view of the cart store.
type Cart struct {
	SessionID  string
	Items      []CartItem
	TotalPrice Money
	ItemCount  int
}

type CartItem struct {
	Product
	Quantity int
}

// Subtotal is price × quantity for a single line.
func (i CartItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// TotalPrice sums price × quantity over items.
func TotalPrice(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}
