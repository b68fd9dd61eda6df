package db

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const insertOrder = `-- name: InsertOrder :one
INSERT INTO orders (id, session_id, total_amount, currency)
VALUES ($1, $2, $3, $4)
RETURNING created_at
`

type InsertOrderParams struct {
	ID          uuid.UUID
	SessionID   string
	TotalAmount decimal.Decimal
	Currency    string
}

func (q *Queries) InsertOrder(ctx context.Context, arg InsertOrderParams) (time.Time, error) {
	row := q.db.QueryRow(ctx, insertOrder,
		arg.ID,
		arg.SessionID,
		arg.TotalAmount,
		arg.Currency,
	)
	var created_at time.Time
	err := row.Scan(&created_at)
	return created_at, err
}

const insertOrderLine = `-- name: InsertOrderLine :exec
INSERT INTO order_lines (order_id, position, product_id, title, unit_price, quantity)
VALUES ($1, $2, $3, $4, $5, $6)
`

type InsertOrderLineParams struct {
	OrderID   uuid.UUID
	Position  int32
	ProductID int32
	Title     string
	UnitPrice decimal.Decimal
	Quantity  int32
}

func (q *Queries) InsertOrderLine(ctx context.Context, arg InsertOrderLineParams) error {
	_, err := q.db.Exec(ctx, insertOrderLine,
		arg.OrderID,
		arg.Position,
		arg.ProductID,
		arg.Title,
		arg.UnitPrice,
		arg.Quantity,
	)
	return err
}

const getOrder = `-- name: GetOrder :one
SELECT id, session_id, total_amount, currency, created_at
FROM orders
WHERE id = $1
`

type GetOrderRow struct {
	ID          uuid.UUID
	SessionID   string
	TotalAmount decimal.Decimal
	Currency    string
	CreatedAt   time.Time
}

func (q *Queries) GetOrder(ctx context.Context, id uuid.UUID) (GetOrderRow, error) {
	row := q.db.QueryRow(ctx, getOrder, id)
	var i GetOrderRow
	err := row.Scan(
		&i.ID,
		&i.SessionID,
		&i.TotalAmount,
		&i.Currency,
		&i.CreatedAt,
	)
	return i, err
}

const getOrderLines = `-- name: GetOrderLines :many
SELECT product_id, title, unit_price, quantity
FROM order_lines
WHERE order_id = $1
ORDER BY position
`

type GetOrderLinesRow struct {
	ProductID int32
	Title     string
	UnitPrice decimal.Decimal
	Quantity  int32
}

func (q *Queries) GetOrderLines(ctx context.Context, orderID uuid.UUID) ([]GetOrderLinesRow, error) {
	rows, err := q.db.Query(ctx, getOrderLines, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []GetOrderLinesRow
	for rows.Next() {
		var i GetOrderLinesRow
		if err := rows.Scan(
			&i.ProductID,
			&i.Title,
			&i.UnitPrice,
			&i.Quantity,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
