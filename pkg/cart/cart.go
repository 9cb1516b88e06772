// Package cart implements the customer-facing cart: an item list kept
// across visits that checks out into the order ledger.
package cart

import (
	"context"
	"errors"

	"maeled/pkg/logger"
	"maeled/pkg/order"
	"maeled/pkg/storage"
)

// Collection is the stored collection name.
const Collection = "cart"

// Item is one cart entry. Name and Price are snapshots taken when the
// item was added.
type Item struct {
	ItemID   int     `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Service owns the persisted cart and hands it to the ledger on
// checkout.
type Service struct {
	store  *storage.Store
	ledger *order.Ledger
	log    *logger.Logger
	fee    float64
}

// NewService creates a cart service. fee is the surcharge applied on
// checkout.
func NewService(store *storage.Store, ledger *order.Ledger, log *logger.Logger, fee float64) *Service {
	return &Service{store: store, ledger: ledger, log: log, fee: fee}
}

// Items returns the current cart contents.
func (s *Service) Items(ctx context.Context) ([]Item, error) {
	return storage.Load[Item](ctx, s.store, Collection)
}

// Add puts one more of the given item in the cart: a new entry with
// quantity 1, or an increment when the item is already there.
func (s *Service) Add(ctx context.Context, id int, name string, price float64) error {
	_, err := storage.Mutate(ctx, s.store, Collection, func(items []Item) ([]Item, error) {
		for i := range items {
			if items[i].ItemID == id {
				items[i].Quantity++
				return items, nil
			}
		}
		return append(items, Item{ItemID: id, Name: name, Price: price, Quantity: 1}), nil
	})
	return err
}

// SetQuantity sets an entry's quantity, floored at 1. Unknown ids are
// ignored.
func (s *Service) SetQuantity(ctx context.Context, id, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}
	_, err := storage.Mutate(ctx, s.store, Collection, func(items []Item) ([]Item, error) {
		for i := range items {
			if items[i].ItemID == id {
				items[i].Quantity = quantity
				break
			}
		}
		return items, nil
	})
	return err
}

// Remove drops an entry from the cart.
func (s *Service) Remove(ctx context.Context, id int) error {
	_, err := storage.Mutate(ctx, s.store, Collection, func(items []Item) ([]Item, error) {
		out := items[:0]
		for _, it := range items {
			if it.ItemID != id {
				out = append(out, it)
			}
		}
		return out, nil
	})
	return err
}

// Clear empties the cart.
func (s *Service) Clear(ctx context.Context) error {
	_, err := storage.Mutate(ctx, s.store, Collection, func([]Item) ([]Item, error) {
		return nil, nil
	})
	return err
}

// Count returns the summed quantity across all entries.
func (s *Service) Count(ctx context.Context) (int, error) {
	items, err := s.Items(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n, nil
}

// Subtotal returns the cart total before the service fee.
func (s *Service) Subtotal(ctx context.Context) (float64, error) {
	items, err := s.Items(ctx)
	if err != nil {
		return 0, err
	}
	sum := 0.0
	for _, it := range items {
		sum += it.Price * float64(it.Quantity)
	}
	return sum, nil
}

// Checkout turns the cart into a committed customer order and empties
// it. Validation failures keep the cart intact so the customer can fix
// the problem; once the commit is attempted the cart is cleared no
// matter what, so a stale cart can never be submitted twice.
func (s *Service) Checkout(ctx context.Context, table string) (order.Record, error) {
	items, err := s.Items(ctx)
	if err != nil {
		return order.Record{}, err
	}
	lines := make([]order.Line, len(items))
	for i, it := range items {
		lines[i] = order.Line{ItemID: it.ItemID, Name: it.Name, UnitPrice: it.Price, Quantity: it.Quantity}
	}

	rec, err := s.ledger.Checkout(ctx, table, lines, order.CustomerCheckout(s.fee))
	if errors.Is(err, order.ErrInvalid) {
		return order.Record{}, err
	}
	if clearErr := s.Clear(ctx); clearErr != nil {
		s.log.Warn(ctx, "cart not cleared after checkout", "error", clearErr)
	}
	if err != nil {
		return order.Record{}, err
	}
	return rec, nil
}
