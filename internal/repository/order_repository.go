package repository

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/text/currency"

	"github.com/nikolayk812/storefront/internal/db"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

type orderRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewOrder(pool *pgxpool.Pool) port.OrderRepository {
	return &orderRepository{
		q:    db.New(pool),
		pool: pool,
	}
}

func NewOrderWithTx(tx pgx.Tx) port.OrderRepository {
	return &orderRepository{
		q:    db.New(tx),
		pool: nil, // use provided transaction instead
	}
}

// SaveOrder writes the order header and its lines atomically and returns the
// order with its database timestamp.
func (r *orderRepository) SaveOrder(ctx context.Context, order domain.Order) (domain.Order, error) {
	if order.ID == uuid.Nil {
		return domain.Order{}, fmt.Errorf("orderID is empty")
	}
	if order.SessionID == "" {
		return domain.Order{}, fmt.Errorf("sessionID is empty")
	}
	if len(order.Lines) == 0 {
		return domain.Order{}, fmt.Errorf("order has no lines")
	}
	for i, line := range order.Lines {
		if line.ProductID <= 0 || line.ProductID > math.MaxInt32 {
			return domain.Order{}, fmt.Errorf("line[%d]: productID %d is out of range", i, line.ProductID)
		}
		if line.Quantity <= 0 || line.Quantity > math.MaxInt32 {
			return domain.Order{}, fmt.Errorf("line[%d]: quantity %d is out of range", i, line.Quantity)
		}
	}

	return withTx(ctx, r.pool, r.q, func(q *db.Queries) (domain.Order, error) {
		createdAt, err := q.InsertOrder(ctx, db.InsertOrderParams{
			ID:          order.ID,
			SessionID:   order.SessionID,
			TotalAmount: order.Total.Amount,
			Currency:    order.Total.Currency.String(),
		})
		if err != nil {
			return domain.Order{}, fmt.Errorf("q.InsertOrder: %w", err)
		}

		for i, line := range order.Lines {
			err := q.InsertOrderLine(ctx, db.InsertOrderLineParams{
				OrderID:   order.ID,
				Position:  int32(i),
				ProductID: int32(line.ProductID),
				Title:     line.Title,
				UnitPrice: line.UnitPrice.Amount,
				Quantity:  int32(line.Quantity),
			})
			if err != nil {
				return domain.Order{}, fmt.Errorf("q.InsertOrderLine[%d]: %w", i, err)
			}
		}

		order.CreatedAt = createdAt
		return order, nil
	})
}

func (r *orderRepository) GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	if orderID == uuid.Nil {
		return domain.Order{}, fmt.Errorf("orderID is empty")
	}

	row, err := r.q.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Order{}, domain.ErrOrderNotFound
		}
		return domain.Order{}, fmt.Errorf("q.GetOrder: %w", err)
	}

	lines, err := r.q.GetOrderLines(ctx, orderID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("q.GetOrderLines: %w", err)
	}

	order, err := mapOrderToDomain(row, lines)
	if err != nil {
		return domain.Order{}, fmt.Errorf("mapOrderToDomain: %w", err)
	}

	return order, nil
}

func mapOrderToDomain(row db.GetOrderRow, lines []db.GetOrderLinesRow) (domain.Order, error) {
	parsedCurrency, err := currency.ParseISO(row.Currency)
	if err != nil {
		return domain.Order{}, fmt.Errorf("currency[%s] is not valid: %w", row.Currency, err)
	}

	order := domain.Order{
		ID:        row.ID,
		SessionID: row.SessionID,
		Total:     domain.Money{Amount: row.TotalAmount, Currency: parsedCurrency},
		Lines:     make([]domain.OrderLine, 0, len(lines)),
		CreatedAt: row.CreatedAt,
	}

	for _, line := range lines {
		order.Lines = append(order.Lines, domain.OrderLine{
			ProductID: int(line.ProductID),
			Title:     line.Title,
			UnitPrice: domain.Money{Amount: line.UnitPrice, Currency: parsedCurrency},
			Quantity:  int(line.Quantity),
		})
	}

	return order, nil
}
