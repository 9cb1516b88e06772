// Package staff manages the employee roster and shift planning.
package staff

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
const Collection = "staff"

// Status is an employee's employment state.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusLeave    Status = "leave"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusLeave:
		return true
	}
	return false
}

// Employee is one roster entry. ShiftDays holds weekday names
// ("Monday".."Sunday").
type Employee struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Salary       float64   `json:"salary,omitempty"`
	HireDate     string    `json:"hireDate,omitempty"` // YYYY-MM-DD
	Address      string    `json:"address,omitempty"`
	HoursPerWeek int       `json:"hoursPerWeek,omitempty"`
	Status       Status    `json:"status"`
	ShiftDays    []string  `json:"shiftDays,omitempty"`
	ShiftTime    string    `json:"shiftTime,omitempty"`
	Created      time.Time `json:"created"`
}

// OnDutyToday reports whether the employee is active and today is one
// of their shift days.
func (e Employee) OnDutyToday(now time.Time) bool {
	if e.Status != StatusActive {
		return false
	}
	today := now.Weekday().String()
	for _, d := range e.ShiftDays {
		if d == today {
			return true
		}
	}
	return false
}

// Filter narrows List results.
type Filter struct {
	Query  string
	Role   string
	Status Status // empty means all
}

// Stats summarizes the roster for the dashboard.
type Stats struct {
	Total  int `json:"total"`
	Active int `json:"active"`
	OnDuty int `json:"onDuty"`
	Absent int `json:"absent"`
}

var (
	ErrNotFound = errors.New("employee not found")
	ErrInvalid  = errors.New("invalid employee")
)

// Service exposes roster operations over the snapshot store.
type Service struct {
	store *storage.Store
	feed  *notify.Feed
	log   *logger.Logger
	now   func() time.Time
}

// NewService creates a staff service.
func NewService(store *storage.Store, feed *notify.Feed, log *logger.Logger) *Service {
	return &Service{store: store, feed: feed, log: log, now: time.Now}
}

// List returns matching employees, active first, then by name.
func (s *Service) List(ctx context.Context, f Filter) ([]Employee, error) {
	list, err := storage.Load[Employee](ctx, s.store, Collection)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(f.Query)
	out := make([]Employee, 0, len(list))
	for _, e := range list {
		if q != "" && !strings.Contains(strings.ToLower(e.Name), q) &&
			!strings.Contains(strings.ToLower(e.Role), q) &&
			!strings.Contains(strings.ToLower(e.Email), q) {
			continue
		}
		if f.Role != "" && !strings.EqualFold(e.Role, f.Role) {
			continue
		}
		if f.Status != "" && e.Status != f.Status {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		ai, aj := out[i].Status == StatusActive, out[j].Status == StatusActive
		if ai != aj {
			return ai
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// Get returns one employee by id.
func (s *Service) Get(ctx context.Context, id int) (Employee, error) {
	list, err := storage.Load[Employee](ctx, s.store, Collection)
	if err != nil {
		return Employee{}, err
	}
	for _, e := range list {
		if e.ID == id {
			return e, nil
		}
	}
	return Employee{}, ErrNotFound
}

// Create validates and appends a new employee, allocating their id.
func (s *Service) Create(ctx context.Context, e Employee) (Employee, error) {
	if err := validate(e); err != nil {
		return Employee{}, err
	}
	if e.Status == "" {
		e.Status = StatusActive
	}
	e.Created = s.now()
	_, err := storage.Mutate(ctx, s.store, Collection, func(list []Employee) ([]Employee, error) {
		e.ID = storage.NextID(ids(list), 0)
		return append(list, e), nil
	})
	if err != nil {
		return Employee{}, err
	}
	s.feed.Push(ctx, "%s joined the team as %s", e.Name, e.Role)
	return e, nil
}

// Update replaces an existing employee, keyed by id. Creation time is
// preserved.
func (s *Service) Update(ctx context.Context, e Employee) (Employee, error) {
	if err := validate(e); err != nil {
		return Employee{}, err
	}
	var updated Employee
	_, err := storage.Mutate(ctx, s.store, Collection, func(list []Employee) ([]Employee, error) {
		for i := range list {
			if list[i].ID == e.ID {
				e.Created = list[i].Created
				list[i] = e
				updated = e
				return list, nil
			}
		}
		return nil, ErrNotFound
	})
	if err != nil {
		return Employee{}, err
	}
	s.feed.Push(ctx, "Employee record for %s updated", updated.Name)
	return updated, nil
}

// Delete removes an employee from the roster.
func (s *Service) Delete(ctx context.Context, id int) error {
	var name string
	_, err := storage.Mutate(ctx, s.store, Collection, func(list []Employee) ([]Employee, error) {
		out := list[:0]
		found := false
		for _, e := range list {
			if e.ID == id {
				found = true
				name = e.Name
				continue
			}
			out = append(out, e)
		}
		if !found {
			return nil, ErrNotFound
		}
		return out, nil
	})
	if err != nil {
		return err
	}
	s.feed.Push(ctx, "%s removed from the roster", name)
	return nil
}

// SetStatus moves an employee to an explicit status.
func (s *Service) SetStatus(ctx context.Context, id int, status Status) (Employee, error) {
	if !status.Valid() {
		return Employee{}, fmt.Errorf("%w: unknown status %q", ErrInvalid, status)
	}
	var updated Employee
	_, err := storage.Mutate(ctx, s.store, Collection, func(list []Employee) ([]Employee, error) {
		for i := range list {
			if list[i].ID == id {
				list[i].Status = status
				updated = list[i]
				return list, nil
			}
		}
		return nil, ErrNotFound
	})
	if err != nil {
		return Employee{}, err
	}
	return updated, nil
}

// Stats summarizes the roster: on duty means active with a shift today.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	list, err := storage.Load[Employee](ctx, s.store, Collection)
	if err != nil {
		return Stats{}, err
	}
	now := s.now()
	var st Stats
	st.Total = len(list)
	for _, e := range list {
		if e.Status == StatusActive {
			st.Active++
		} else {
			st.Absent++
		}
		if e.OnDutyToday(now) {
			st.OnDuty++
		}
	}
	return st, nil
}

func validate(e Employee) error {
	var errs *multierror.Error
	if strings.TrimSpace(e.Name) == "" {
		errs = multierror.Append(errs, errors.New("name is required"))
	}
	if strings.TrimSpace(e.Role) == "" {
		errs = multierror.Append(errs, errors.New("role is required"))
	}
	if e.Salary < 0 {
		errs = multierror.Append(errs, errors.New("salary must not be negative"))
	}
	if e.Status != "" && !e.Status.Valid() {
		errs = multierror.Append(errs, fmt.Errorf("unknown status %q", e.Status))
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

func ids(list []Employee) []int {
	out := make([]int, len(list))
	for i, e := range list {
		out[i] = e.ID
	}
	return out
}
