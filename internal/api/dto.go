package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nikolayk812/storefront/internal/domain"
)

func init() {
	// Prices and totals go out as JSON numbers, e.g. "price":9.99.
	decimal.MarshalJSONWithoutQuotes = true
}

type addItemRequest struct {
	ProductID int `json:"product_id" validate:"required,gt=0"`
	// Quantity defaults to 1 when omitted.
	Quantity int `json:"quantity" validate:"gte=0,lte=100"`
}

type cartItemResponse struct {
	domain.Product
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type cartResponse struct {
	SessionID      string             `json:"session_id"`
	Items          []cartItemResponse `json:"items"`
	TotalPrice     decimal.Decimal    `json:"total_price"`
	Currency       string             `json:"currency"`
	FormattedTotal string             `json:"formatted_total"`
	ItemCount      int                `json:"item_count"`
}

func newCartResponse(c domain.Cart) cartResponse {
	items := make([]cartItemResponse, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, cartItemResponse{
			Product:  item.Product,
			Quantity: item.Quantity,
			Subtotal: item.Subtotal(),
		})
	}

	return cartResponse{
		SessionID:      c.SessionID,
		Items:          items,
		TotalPrice:     c.TotalPrice.Amount,
		Currency:       c.TotalPrice.Currency.String(),
		FormattedTotal: c.TotalPrice.String(),
		ItemCount:      c.ItemCount,
	}
}

type orderLineResponse struct {
	ProductID int             `json:"product_id"`
	Title     string          `json:"title"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

type orderResponse struct {
	ID             string              `json:"id"`
	SessionID      string              `json:"session_id"`
	Lines          []orderLineResponse `json:"lines"`
	Total          decimal.Decimal     `json:"total"`
	Currency       string              `json:"currency"`
	FormattedTotal string              `json:"formatted_total"`
	CreatedAt      time.Time           `json:"created_at"`
}

func newOrderResponse(o domain.Order) orderResponse {
	lines := make([]orderLineResponse, 0, len(o.Lines))
	for _, line := range o.Lines {
		lines = append(lines, orderLineResponse{
			ProductID: line.ProductID,
			Title:     line.Title,
			UnitPrice: line.UnitPrice.Amount,
			Quantity:  line.Quantity,
		})
	}

	return orderResponse{
		ID:             o.ID.String(),
		SessionID:      o.SessionID,
		Lines:          lines,
		Total:          o.Total.Amount,
		Currency:       o.Total.Currency.String(),
		FormattedTotal: o.Total.String(),
		CreatedAt:      o.CreatedAt,
	}
}
