// Package cart holds the process-local shopping cart.
package cart

import (
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nikolayk812/storefront/internal/domain"
)

// Store owns the cart state. All mutation goes through AddItem, RemoveItem,
// IncreaseQuantity and DecreaseQuantity; every operation is total and an
// unknown product ID is a no-op. Operations are applied in call order.
type Store struct {
	mu        sync.Mutex
	sessionID string
	items     []domain.CartItem
	observer  Observer
}

// Observer is notified after each action that changed the cart. Actions on
// an absent product are not reported.
type Observer interface {
	CartAction(action string)
}

type Option func(*Store)

func WithObserver(o Observer) Option {
	return func(s *Store) {
		if o != nil {
			s.observer = o
		}
	}
}

func WithSessionID(id string) Option {
	return func(s *Store) {
		if id != "" {
			s.sessionID = id
		}
	}
}

func NewStore(opts ...Option) *Store {
	s := &Store{sessionID: uuid.NewString()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) SessionID() string {
	return s.sessionID
}

// AddItem appends product with quantity 1, or bumps the quantity of the
// existing line in place.
func (s *Store) AddItem(product domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.addLocked(product)
	s.notify("add")
}

// AddItems adds product n times; n below 1 adds it once.
func (s *Store) AddItems(product domain.Product, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, count := 0, max(n, 1); i < count; i++ {
		s.addLocked(product)
	}
	s.notify("add")
}

func (s *Store) RemoveItem(productID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexLocked(productID); i >= 0 {
		s.items = slices.Delete(s.items, i, i+1)
		s.notify("remove")
	}
}

func (s *Store) IncreaseQuantity(productID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexLocked(productID); i >= 0 {
		s.items[i].Quantity++
		s.notify("increase")
	}
}

// DecreaseQuantity drops the line once its quantity reaches zero.
func (s *Store) DecreaseQuantity(productID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexLocked(productID); i >= 0 {
		s.items[i].Quantity--
		if s.items[i].Quantity <= 0 {
			s.items = slices.Delete(s.items, i, i+1)
		}
		s.notify("decrease")
	}
}

// Items returns a copy of the lines in insertion order.
func (s *Store) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.items)
}

// TotalPrice is recomputed from the items on every call.
func (s *Store) TotalPrice() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	return domain.TotalPrice(s.items)
}

// ItemCount is the sum of quantities.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return countLocked(s.items)
}

// Snapshot returns a consistent view of items, total and count.
func (s *Store) Snapshot() domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshotLocked()
}

// Commit hands fn a snapshot while holding the cart and empties the cart
// only if fn succeeds. Other actions wait until fn returns.
func (s *Store) Commit(fn func(domain.Cart) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fn(s.snapshotLocked()); err != nil {
		return err
	}

	s.items = nil
	s.notify("clear")
	return nil
}

func (s *Store) snapshotLocked() domain.Cart {
	items := slices.Clone(s.items)
	if items == nil {
		items = []domain.CartItem{}
	}

	return domain.Cart{
		SessionID:  s.sessionID,
		Items:      items,
		TotalPrice: domain.NewMoney(domain.TotalPrice(items)),
		ItemCount:  countLocked(items),
	}
}

func (s *Store) addLocked(product domain.Product) {
	if i := s.indexLocked(product.ID); i >= 0 {
		s.items[i].Quantity++
		return
	}
	s.items = append(s.items, domain.CartItem{Product: product, Quantity: 1})
}

func (s *Store) indexLocked(productID int) int {
	return slices.IndexFunc(s.items, func(item domain.CartItem) bool {
		return item.ID == productID
	})
}

func (s *Store) notify(action string) {
	if s.observer != nil {
		s.observer.CartAction(action)
	}
}

func countLocked(items []domain.CartItem) int {
	n := 0
	for _, item := range items {
		n += item.Quantity
	}
	return n
}
