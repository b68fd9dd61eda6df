// Package checkout turns the live cart into a persisted order.
package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/nikolayk812/storefront/internal/cart"
	"github.com/nikolayk812/storefront/internal/domain"
	pkgerrors "github.com/nikolayk812/storefront/internal/errors"
	"github.com/nikolayk812/storefront/internal/port"
)

// Recorder observes checkout outcomes.
type Recorder interface {
	Checkout(err error)
}

type Service struct {
	store    *cart.Store
	orders   port.OrderRepository
	recorder Recorder
}

// NewService wires checkout to the cart. orders may be nil, in which case
// checkout reports a dependency error.
func NewService(store *cart.Store, orders port.OrderRepository, recorder Recorder) *Service {
	return &Service{
		store:    store,
		orders:   orders,
		recorder: recorder,
	}
}

// Checkout persists the current cart as an order and empties the cart. The
// cart is left untouched when anything fails.
func (s *Service) Checkout(ctx context.Context) (_ domain.Order, err error) {
	defer func() {
		if s.recorder != nil {
			s.recorder.Checkout(err)
		}
	}()

	if s.orders == nil {
		return domain.Order{}, pkgerrors.New(pkgerrors.CodeDependency, "checkout is not configured")
	}

	var order domain.Order
	err = s.store.Commit(func(snap domain.Cart) error {
		if len(snap.Items) == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
		}

		saved, err := s.orders.SaveOrder(ctx, orderFromCart(snap))
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("orders.SaveOrder: %w", err), "save order")
		}
		order = saved
		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}

	return order, nil
}

func (s *Service) GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	if s.orders == nil {
		return domain.Order{}, pkgerrors.New(pkgerrors.CodeDependency, "checkout is not configured")
	}

	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return domain.Order{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "order not found")
		}
		return domain.Order{}, pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("orders.GetOrder: %w", err), "load order")
	}

	return order, nil
}

func orderFromCart(c domain.Cart) domain.Order {
	lines := make([]domain.OrderLine, 0, len(c.Items))
	for _, item := range c.Items {
		lines = append(lines, domain.OrderLine{
			ProductID: item.ID,
			Title:     item.Title,
			UnitPrice: domain.NewMoney(item.Price),
			Quantity:  item.Quantity,
		})
	}

	return domain.Order{
		ID:        uuid.New(),
		SessionID: c.SessionID,
		Lines:     lines,
		Total:     c.TotalPrice,
	}
}
