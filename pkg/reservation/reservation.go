// Package reservation manages table bookings.
package reservation

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"

	"maeled/pkg/logger"
	"maeled/pkg/notify"
	"maeled/pkg/storage"
)

// Collection is the stored collection name.
const Collection = "reservations"

// Status is a reservation's lifecycle state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// Reservation is one booking. Table stays empty until confirmation
// assigns one.
type Reservation struct {
	ID      int       `json:"id"`
	Name    string    `json:"name"`
	Phone   string    `json:"phone"`
	Date    string    `json:"date"` // YYYY-MM-DD
	Time    string    `json:"time"` // HH:MM
	Guests  int       `json:"guests"`
	Status  Status    `json:"status"`
	Table   string    `json:"table"`
	Notes   string    `json:"notes,omitempty"`
	Created time.Time `json:"created"`
}

// Filter narrows List results.
type Filter struct {
	Query  string
	Status Status // empty means all
}

var (
	ErrNotFound = errors.New("reservation not found")
	ErrInvalid  = errors.New("invalid reservation")
	// ErrConflict indicates another reservation already holds the same
	// table at the same date and time.
	ErrConflict = errors.New("table already reserved for that slot")
)

// Service exposes reservation operations over the snapshot store.
type Service struct {
	store *storage.Store
	feed  *notify.Feed
	log   *logger.Logger
	now   func() time.Time
	// pickTable assigns a table on confirmation when none was chosen.
	pickTable func() string
}

// NewService creates a reservation service.
func NewService(store *storage.Store, feed *notify.Feed, log *logger.Logger) *Service {
	return &Service{
		store: store,
		feed:  feed,
		log:   log,
		now:   time.Now,
		pickTable: func() string {
			return fmt.Sprintf("T%d", rand.IntN(20)+1)
		},
	}
}

// Create validates and stores a new reservation in pending state.
func (s *Service) Create(ctx context.Context, r Reservation) (Reservation, error) {
	if err := validate(r); err != nil {
		return Reservation{}, err
	}
	if strings.TrimSpace(r.Phone) == "" {
		r.Phone = "Not provided"
	}
	r.Status = StatusPending
	r.Created = s.now()

	_, err := storage.Mutate(ctx, s.store, Collection, func(list []Reservation) ([]Reservation, error) {
		if conflicts(list, r, 0) {
			return nil, ErrConflict
		}
		r.ID = storage.NextID(ids(list), 0)
		return append(list, r), nil
	})
	if err != nil {
		return Reservation{}, err
	}

	s.feed.Push(ctx, "New reservation: %s for %d guests", r.Name, r.Guests)
	s.log.Info(ctx, "reservation created", "id", r.ID, "name", r.Name, "date", r.Date, "time", r.Time)
	return r, nil
}

// Update replaces a reservation's booking details. Status and creation
// time are preserved; use Confirm or Cancel to move the lifecycle.
func (s *Service) Update(ctx context.Context, r Reservation) (Reservation, error) {
	if err := validate(r); err != nil {
		return Reservation{}, err
	}
	if strings.TrimSpace(r.Phone) == "" {
		r.Phone = "Not provided"
	}

	var updated Reservation
	_, err := storage.Mutate(ctx, s.store, Collection, func(list []Reservation) ([]Reservation, error) {
		if conflicts(list, r, r.ID) {
			return nil, ErrConflict
		}
		for i := range list {
			if list[i].ID == r.ID {
				r.Status = list[i].Status
				r.Created = list[i].Created
				list[i] = r
				updated = r
				return list, nil
			}
		}
		return nil, ErrNotFound
	})
	if err != nil {
		return Reservation{}, err
	}
	return updated, nil
}

// Confirm moves a reservation to confirmed, assigning a table when the
// booking never chose one.
func (s *Service) Confirm(ctx context.Context, id int) (Reservation, error) {
	var updated Reservation
	_, err := storage.Mutate(ctx, s.store, Collection, func(list []Reservation) ([]Reservation, error) {
		for i := range list {
			if list[i].ID == id {
				list[i].Status = StatusConfirmed
				if strings.TrimSpace(list[i].Table) == "" {
					list[i].Table = s.pickTable()
				}
				updated = list[i]
				return list, nil
			}
		}
		return nil, ErrNotFound
	})
	if err != nil {
		return Reservation{}, err
	}
	s.feed.Push(ctx, "Reservation for %s confirmed on table %s", updated.Name, updated.Table)
	return updated, nil
}

// Cancel moves a reservation to cancelled without deleting it.
func (s *Service) Cancel(ctx context.Context, id int) (Reservation, error) {
	var updated Reservation
	_, err := storage.Mutate(ctx, s.store, Collection, func(list []Reservation) ([]Reservation, error) {
		for i := range list {
			if list[i].ID == id {
				list[i].Status = StatusCancelled
				updated = list[i]
				return list, nil
			}
		}
		return nil, ErrNotFound
	})
	if err != nil {
		return Reservation{}, err
	}
	s.feed.Push(ctx, "Reservation for %s cancelled", updated.Name)
	return updated, nil
}

// Delete removes a reservation.
func (s *Service) Delete(ctx context.Context, id int) error {
	var name string
	_, err := storage.Mutate(ctx, s.store, Collection, func(list []Reservation) ([]Reservation, error) {
		out := list[:0]
		found := false
		for _, r := range list {
			if r.ID == id {
				found = true
				name = r.Name
				continue
			}
			out = append(out, r)
		}
		if !found {
			return nil, ErrNotFound
		}
		return out, nil
	})
	if err != nil {
		return err
	}
	s.feed.Push(ctx, "Reservation for %s deleted", name)
	return nil
}

// Get returns one reservation by id.
func (s *Service) Get(ctx context.Context, id int) (Reservation, error) {
	list, err := storage.Load[Reservation](ctx, s.store, Collection)
	if err != nil {
		return Reservation{}, err
	}
	for _, r := range list {
		if r.ID == id {
			return r, nil
		}
	}
	return Reservation{}, ErrNotFound
}

// List returns matching reservations, nearest slot first by date and
// time descending.
func (s *Service) List(ctx context.Context, f Filter) ([]Reservation, error) {
	list, err := storage.Load[Reservation](ctx, s.store, Collection)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(f.Query)
	out := make([]Reservation, 0, len(list))
	for _, r := range list {
		if q != "" && !strings.Contains(strings.ToLower(r.Name), q) &&
			!strings.Contains(strings.ToLower(r.Phone), q) &&
			!strings.Contains(strings.ToLower(r.Table), q) {
			continue
		}
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date+" "+out[i].Time > out[j].Date+" "+out[j].Time
	})
	return out, nil
}

// conflicts reports whether another reservation already holds r's table
// at r's slot. Bookings without an assigned table never conflict.
func conflicts(list []Reservation, r Reservation, excludeID int) bool {
	if strings.TrimSpace(r.Table) == "" {
		return false
	}
	for _, other := range list {
		if other.ID == excludeID || other.Status == StatusCancelled {
			continue
		}
		if other.Table == r.Table && other.Date == r.Date && other.Time == r.Time {
			return true
		}
	}
	return false
}

func validate(r Reservation) error {
	var errs *multierror.Error
	if strings.TrimSpace(r.Name) == "" {
		errs = multierror.Append(errs, errors.New("name is required"))
	}
	if strings.TrimSpace(r.Date) == "" {
		errs = multierror.Append(errs, errors.New("date is required"))
	}
	if strings.TrimSpace(r.Time) == "" {
		errs = multierror.Append(errs, errors.New("time is required"))
	}
	if r.Guests < 1 {
		errs = multierror.Append(errs, errors.New("at least one guest is required"))
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

func ids(list []Reservation) []int {
	out := make([]int, len(list))
	for i, r := range list {
		out[i] = r.ID
	}
	return out
}
