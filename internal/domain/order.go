package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Order is the immutable record written when a cart is checked out.
type Order struct {
	ID        uuid.UUID
	SessionID string
	Lines     []OrderLine
	Total     Money

	CreatedAt time.Time
}

type OrderLine struct {
	ProductID int
	Title     string
	UnitPrice Money
	Quantity  int
}

var ErrOrderNotFound = errors.New("order not found")
