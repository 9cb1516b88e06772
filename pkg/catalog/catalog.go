// Package catalog manages the menu: the orderable items the draft
// builder and the public menu read from.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"

	"maeled/pkg/logger"
	"maeled/pkg/notify"
	"maeled/pkg/storage"
)

// Collection is the stored collection name.
const Collection = "menu"

// Item is one menu entry.
type Item struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Cost        float64 `json:"cost,omitempty"`
	Available   bool    `json:"available"`
	Popularity  int     `json:"popularity"`
	Ingredients string  `json:"ingredients,omitempty"`
	Description string  `json:"description,omitempty"`
	PrepTime    int     `json:"prepTime,omitempty"`
	Image       string  `json:"image,omitempty"`
}

// Margin returns the gross margin percentage, or 0 when cost is unknown.
func (i Item) Margin() float64 {
	if i.Cost <= 0 || i.Price <= 0 {
		return 0
	}
	return (i.Price - i.Cost) / i.Price * 100
}

// Filter narrows List results.
type Filter struct {
	Query        string
	Category     string
	Availability string // "", "available" or "unavailable"
}

var (
	ErrNotFound = errors.New("menu item not found")
	ErrInvalid  = errors.New("invalid menu item")
)

// Section groups the public menu by category.
type Section struct {
	Category string `json:"category"`
	Items    []Item `json:"items"`
}

// standardCategories fixes the display order of the public menu.
var standardCategories = []string{"starters", "pizzas", "pasta", "desserts", "drinks"}

// Service exposes menu operations over the snapshot store.
type Service struct {
	store *storage.Store
	feed  *notify.Feed
	log   *logger.Logger
}

// NewService creates a catalog service.
func NewService(store *storage.Store, feed *notify.Feed, log *logger.Logger) *Service {
	return &Service{store: store, feed: feed, log: log}
}

// List returns matching items, most popular first.
func (s *Service) List(ctx context.Context, f Filter) ([]Item, error) {
	items, err := storage.Load[Item](ctx, s.store, Collection)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(f.Query)
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if q != "" && !strings.Contains(strings.ToLower(it.Name), q) &&
			!strings.Contains(strings.ToLower(it.Ingredients), q) {
			continue
		}
		if f.Category != "" && it.Category != f.Category {
			continue
		}
		switch f.Availability {
		case "available":
			if !it.Available {
				continue
			}
		case "unavailable":
			if it.Available {
				continue
			}
		}
		out = append(out, it)
	}
	sortByPopularity(out)
	return out, nil
}

// Get returns one item by id.
func (s *Service) Get(ctx context.Context, id int) (Item, error) {
	items, err := storage.Load[Item](ctx, s.store, Collection)
	if err != nil {
		return Item{}, err
	}
	for _, it := range items {
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
	item.Popularity = clamp(item.Popularity, 0, 100)
	_, err := storage.Mutate(ctx, s.store, Collection, func(items []Item) ([]Item, error) {
		item.ID = storage.NextID(ids(items), 0)
		return append(items, item), nil
	})
	if err != nil {
		return Item{}, err
	}
	s.feed.Push(ctx, "Menu item %q added", item.Name)
	return item, nil
}

// Update replaces an existing item, keyed by its id.
func (s *Service) Update(ctx context.Context, item Item) (Item, error) {
	if err := validate(item); err != nil {
		return Item{}, err
	}
	item.Popularity = clamp(item.Popularity, 0, 100)
	_, err := storage.Mutate(ctx, s.store, Collection, func(items []Item) ([]Item, error) {
		for i := range items {
			if items[i].ID == item.ID {
				items[i] = item
				return items, nil
			}
		}
		return nil, ErrNotFound
	})
	if err != nil {
		return Item{}, err
	}
	s.feed.Push(ctx, "Menu item %q updated", item.Name)
	return item, nil
}

// Delete removes an item.
func (s *Service) Delete(ctx context.Context, id int) error {
	var name string
	_, err := storage.Mutate(ctx, s.store, Collection, func(items []Item) ([]Item, error) {
		out := items[:0]
		found := false
		for _, it := range items {
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
	s.feed.Push(ctx, "Menu item %q removed", name)
	return nil
}

// SetAvailable toggles whether an item can be ordered.
func (s *Service) SetAvailable(ctx context.Context, id int, available bool) (Item, error) {
	var updated Item
	_, err := storage.Mutate(ctx, s.store, Collection, func(items []Item) ([]Item, error) {
		for i := range items {
			if items[i].ID == id {
				items[i].Available = available
				updated = items[i]
				return items, nil
			}
		}
		return nil, ErrNotFound
	})
	if err != nil {
		return Item{}, err
	}
	state := "unavailable"
	if available {
		state = "available"
	}
	s.feed.Push(ctx, "%q is now %s", updated.Name, state)
	return updated, nil
}

// AvailableForOrdering returns the items the draft builder offers:
// available only, most popular first, name as tiebreak.
func (s *Service) AvailableForOrdering(ctx context.Context) ([]Item, error) {
	return s.List(ctx, Filter{Availability: "available"})
}

// Menu returns the public menu grouped by category, standard categories
// first, any extra categories after.
func (s *Service) Menu(ctx context.Context) ([]Section, error) {
	items, err := s.AvailableForOrdering(ctx)
	if err != nil {
		return nil, err
	}
	byCategory := make(map[string][]Item)
	for _, it := range items {
		byCategory[it.Category] = append(byCategory[it.Category], it)
	}

	var sections []Section
	seen := make(map[string]bool)
	for _, cat := range standardCategories {
		seen[cat] = true
		if group := byCategory[cat]; len(group) > 0 {
			sections = append(sections, Section{Category: cat, Items: group})
		}
	}
	var extras []string
	for cat := range byCategory {
		if !seen[cat] {
			extras = append(extras, cat)
		}
	}
	sort.Strings(extras)
	for _, cat := range extras {
		sections = append(sections, Section{Category: cat, Items: byCategory[cat]})
	}
	return sections, nil
}

func validate(item Item) error {
	var errs *multierror.Error
	if strings.TrimSpace(item.Name) == "" {
		errs = multierror.Append(errs, errors.New("name is required"))
	}
	if strings.TrimSpace(item.Category) == "" {
		errs = multierror.Append(errs, errors.New("category is required"))
	}
	if item.Price < 0 {
		errs = multierror.Append(errs, errors.New("price must not be negative"))
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

func sortByPopularity(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Popularity != items[j].Popularity {
			return items[i].Popularity > items[j].Popularity
		}
		return items[i].Name < items[j].Name
	})
}

func ids(items []Item) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
