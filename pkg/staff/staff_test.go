package staff

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maeled/pkg/logger"
	"maeled/pkg/notify"
	"maeled/pkg/storage"
	"maeled/pkg/storage/memory"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	store := storage.New(memory.New())
	log := logger.New(io.Discard, logger.LevelError, "test", nil)
	s := NewService(store, notify.New(store, nil), log)
	s.now = func() time.Time {
		return time.Date(2024, time.March, 6, 10, 0, 0, 0, time.UTC) // a Wednesday
	}
	return s
}

func TestCreateAndGet(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)

	e, err := s.Create(ctx, Employee{Name: "Marie Laurent", Role: "Manager"})
	require.NoError(t, err)
	assert.Equal(t, 1, e.ID)
	assert.Equal(t, StatusActive, e.Status)
	assert.False(t, e.Created.IsZero())

	got, err := s.Get(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, e, got)
}

func TestCreateValidation(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)

	_, err := s.Create(ctx, Employee{Salary: -1})
	require.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "name is required")
	assert.Contains(t, err.Error(), "role is required")
	assert.Contains(t, err.Error(), "salary must not be negative")
}

func TestUpdatePreservesCreated(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)

	e, err := s.Create(ctx, Employee{Name: "Marie Laurent", Role: "Manager"})
	require.NoError(t, err)

	e.Role = "Owner"
	e.Created = time.Time{}
	updated, err := s.Update(ctx, e)
	require.NoError(t, err)
	assert.Equal(t, "Owner", updated.Role)
	assert.False(t, updated.Created.IsZero())
}

func TestListSortsActiveFirst(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)

	_, err := s.Create(ctx, Employee{Name: "Aline", Role: "Waiter", Status: StatusLeave})
	require.NoError(t, err)
	_, err = s.Create(ctx, Employee{Name: "Zoé", Role: "Chef", Status: StatusActive})
	require.NoError(t, err)

	list, err := s.List(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Zoé", list[0].Name)

	waiters, err := s.List(ctx, Filter{Role: "waiter"})
	require.NoError(t, err)
	require.Len(t, waiters, 1)
	assert.Equal(t, "Aline", waiters[0].Name)
}

func TestSetStatus(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)

	e, err := s.Create(ctx, Employee{Name: "Marie Laurent", Role: "Manager"})
	require.NoError(t, err)

	updated, err := s.SetStatus(ctx, e.ID, StatusLeave)
	require.NoError(t, err)
	assert.Equal(t, StatusLeave, updated.Status)

	_, err = s.SetStatus(ctx, e.ID, Status("retired"))
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)

	// today is Wednesday
	_, err := s.Create(ctx, Employee{Name: "A", Role: "Chef", Status: StatusActive, ShiftDays: []string{"Wednesday", "Thursday"}})
	require.NoError(t, err)
	_, err = s.Create(ctx, Employee{Name: "B", Role: "Waiter", Status: StatusActive, ShiftDays: []string{"Saturday"}})
	require.NoError(t, err)
	_, err = s.Create(ctx, Employee{Name: "C", Role: "Waiter", Status: StatusLeave, ShiftDays: []string{"Wednesday"}})
	require.NoError(t, err)

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, Stats{Total: 3, Active: 2, OnDuty: 1, Absent: 1}, stats)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)

	e, err := s.Create(ctx, Employee{Name: "Marie Laurent", Role: "Manager"})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, e.ID))
	_, err = s.Get(ctx, e.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
