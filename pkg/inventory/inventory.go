// Package inventory tracks stock levels and reorder needs.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"

	"maeled/pkg/logger"
	"maeled/pkg/notify"
	"maeled/pkg/storage"
)

// Collection is the stored collection name.
const Collection = "inventory"

// StockStatus classifies an item's current level against its minimum.
type StockStatus string

const (
	StockOut StockStatus = "out"
	StockLow StockStatus = "low"
	StockOK  StockStatus = "ok"
)

// Item is one stock entry. Quantities are fractional because units can
// be kilograms or liters.
type Item struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Quantity    float64   `json:"quantity"`
	Unit        string    `json:"unit"`
	MinQuantity float64   `json:"minQuantity"`
	UnitCost    float64   `json:"unitCost,omitempty"`
	Supplier    string    `json:"supplier,omitempty"`
	ExpiryDate  string    `json:"expiryDate,omitempty"` // YYYY-MM-DD
	Location    string    `json:"location,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	LastUpdated time.Time `json:"lastUpdated"`
	Created     time.Time `json:"created"`
}

// StockStatus classifies the item: out at zero, low at or below the
// minimum, ok above it.
func (i Item) StockStatus() StockStatus {
	switch {
	case i.Quantity <= 0:
		return StockOut
	case i.Quantity <= i.MinQuantity:
		return StockLow
	default:
		return StockOK
	}
}

// Value returns quantity times unit cost.
func (i Item) Value() float64 {
	return i.Quantity * i.UnitCost
}

// Suggestion is one reorder proposal: enough to reach twice the
// minimum, never less than the minimum itself.
type Suggestion struct {
	Item   Item    `json:"item"`
	Amount float64 `json:"amount"`
}

// Filter narrows List results.
type Filter struct {
	Query    string
	Category string
	Status   StockStatus // empty means all
}

var (
	ErrNotFound = errors.New("inventory item not found")
	ErrInvalid  = errors.New("invalid inventory item")
)

// Service exposes stock operations over the snapshot store.
type Service struct {
	store *storage.Store
	feed  *notify.Feed
	log   *logger.Logger
	now   func() time.Time
}

// NewService creates an inventory service.
func NewService(store *storage.Store, feed *notify.Feed, log *logger.Logger) *Service {
	return &Service{store: store, feed: feed, log: log, now: time.Now}
}

// List returns matching items sorted by name.
func (s *Service) List(ctx context.Context, f Filter) ([]Item, error) {
	list, err := storage.Load[Item](ctx, s.store, Collection)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(f.Query)
	out := make([]Item, 0, len(list))
	for _, it := range list {
		if q != "" && !strings.Contains(strings.ToLower(it.Name), q) &&
			!strings.Contains(strings.ToLower(it.Supplier), q) {
			continue
		}
		if f.Category != "" && it.Category != f.Category {
			continue
		}
		if f.Status != "" && it.StockStatus() != f.Status {
			continue
		}
		out = append(out, it)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Get returns one item by id.
func (s *Service) Get(ctx context.Context, id int) (Item, error) {
	list, err := storage.Load[Item](ctx, s.store, Collection)
	if err != nil {
		return Item{}, err
	}
	for _, it := range list {
		if it.ID == id {
			return it, nil
		}
	}
	return Item{}, ErrNotFound
}

// Create validates and appends a new item, allocating its id.
func (s *Service) Create(ctx context.Context, item Item) (Item, error) {
	if err := validate(item); err != nil {
		return Item{}, err
	}
	now := s.now()
	item.Created = now
	item.LastUpdated = now
	_, err := storage.Mutate(ctx, s.store, Collection, func(list []Item) ([]Item, error) {
		item.ID = storage.NextID(ids(list), 0)
		return append(list, item), nil
	})
	if err != nil {
		return Item{}, err
	}
	s.feed.Push(ctx, "Stock item %q added (%.1f %s)", item.Name, item.Quantity, item.Unit)
	return item, nil
}

// Update replaces an existing item, keyed by id. Creation time is
// preserved and LastUpdated is bumped.
func (s *Service) Update(ctx context.Context, item Item) (Item, error) {
	if err := validate(item); err != nil {
		return Item{}, err
	}
	item.LastUpdated = s.now()
	var updated Item
	_, err := storage.Mutate(ctx, s.store, Collection, func(list []Item) ([]Item, error) {
		for i := range list {
			if list[i].ID == item.ID {
				item.Created = list[i].Created
				list[i] = item
				updated = item
				return list, nil
			}
		}
		return nil, ErrNotFound
	})
	if err != nil {
		return Item{}, err
	}
	return updated, nil
}

// Delete removes an item.
func (s *Service) Delete(ctx context.Context, id int) error {
	var name string
	_, err := storage.Mutate(ctx, s.store, Collection, func(list []Item) ([]Item, error) {
		out := list[:0]
		found := false
		for _, it := range list {
			if it.ID == id {
				found = true
				name = it.Name
				continue
			}
			out = append(out, it)
		}
		if !found {
			return nil, ErrNotFound
		}
		return out, nil
	})
	if err != nil {
		return err
	}
	s.feed.Push(ctx, "Stock item %q removed", name)
	return nil
}

// Adjust shifts an item's quantity by delta, floored at zero, and bumps
// LastUpdated. A restock or usage both go through here.
func (s *Service) Adjust(ctx context.Context, id int, delta float64) (Item, error) {
	var updated Item
	_, err := storage.Mutate(ctx, s.store, Collection, func(list []Item) ([]Item, error) {
		for i := range list {
			if list[i].ID == id {
				list[i].Quantity += delta
				if list[i].Quantity < 0 {
					list[i].Quantity = 0
				}
				list[i].LastUpdated = s.now()
				updated = list[i]
				return list, nil
			}
		}
		return nil, ErrNotFound
	})
	if err != nil {
		return Item{}, err
	}
	if updated.StockStatus() != StockOK {
		s.feed.Push(ctx, "Low stock: %q at %.1f %s", updated.Name, updated.Quantity, updated.Unit)
	}
	return updated, nil
}

// LowStock returns every item at or below its minimum, emptiest first.
func (s *Service) LowStock(ctx context.Context) ([]Item, error) {
	list, err := storage.Load[Item](ctx, s.store, Collection)
	if err != nil {
		return nil, err
	}
	out := make([]Item, 0, len(list))
	for _, it := range list {
		if it.StockStatus() != StockOK {
			out = append(out, it)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Quantity < out[j].Quantity })
	return out, nil
}

// ReorderSuggestions proposes an order amount for every low item:
// enough to reach twice the minimum, never less than the minimum.
func (s *Service) ReorderSuggestions(ctx context.Context) ([]Suggestion, error) {
	low, err := s.LowStock(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Suggestion, 0, len(low))
	for _, it := range low {
		amount := it.MinQuantity*2 - it.Quantity
		if amount < it.MinQuantity {
			amount = it.MinQuantity
		}
		out = append(out, Suggestion{Item: it, Amount: amount})
	}
	return out, nil
}

// TotalValue returns the summed stock value.
func (s *Service) TotalValue(ctx context.Context) (float64, error) {
	list, err := storage.Load[Item](ctx, s.store, Collection)
	if err != nil {
		return 0, err
	}
	total := 0.0
	for _, it := range list {
		total += it.Value()
	}
	return total, nil
}

func validate(item Item) error {
	var errs *multierror.Error
	if strings.TrimSpace(item.Name) == "" {
		errs = multierror.Append(errs, errors.New("name is required"))
	}
	if strings.TrimSpace(item.Unit) == "" {
		errs = multierror.Append(errs, errors.New("unit is required"))
	}
	if item.Quantity < 0 {
		errs = multierror.Append(errs, errors.New("quantity must not be negative"))
	}
	if item.MinQuantity < 0 {
		errs = multierror.Append(errs, errors.New("minimum quantity must not be negative"))
	}
	if errs != nil {
		errs.ErrorFormat = oneLine
		return fmt.Errorf("%w: %v", ErrInvalid, errs)
	}
	return nil
}

func oneLine(es []error) string {
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = e.Error()
	}
	return strings.Join(parts, "; ")
}

func ids(list []Item) []int {
	out := make([]int, len(list))
	for i, it := range list {
		out[i] = it.ID
	}
	return out
}
