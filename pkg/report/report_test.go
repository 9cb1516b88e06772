package report

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maeled/pkg/inventory"
	"maeled/pkg/order"
	"maeled/pkg/staff"
	"maeled/pkg/storage"
	"maeled/pkg/storage/memory"
)

func newTestService(t *testing.T) (*Service, *storage.Store) {
	t.Helper()
	store := storage.New(memory.New())
	s := NewService(store)
	s.now = func() time.Time {
		return time.Date(2024, time.March, 6, 10, 0, 0, 0, time.UTC)
	}
	return s, store
}

func seedOrders(t *testing.T, store *storage.Store) {
	t.Helper()
	records := []order.Record{
		{
			ID: 1001, Table: "T1", Status: order.StatusServed, Date: "2024-03-06", Total: 34.50,
			Items: []order.Line{
				{ItemID: 2, Name: "Pizza 4 Fromages", UnitPrice: 12, Quantity: 2},
				{ItemID: 1, Name: "Salade César", UnitPrice: 8.50, Quantity: 1},
			},
		},
		{
			ID: 1002, Table: "T2", Status: order.StatusPending, Date: "2024-03-05", Total: 12,
			Items: []order.Line{{ItemID: 2, Name: "Pizza 4 Fromages", UnitPrice: 12, Quantity: 1}},
		},
		{
			ID: 1003, Table: "T1", Status: order.StatusCancelled, Date: "2024-03-05", Total: 50,
			Items: []order.Line{{ItemID: 4, Name: "Tiramisu", UnitPrice: 7, Quantity: 7}},
		},
	}
	require.NoError(t, storage.Save(context.Background(), store, order.Collection, records))
}

func TestOverview(t *testing.T) {
	ctx := context.Background()
	s, store := newTestService(t)
	seedOrders(t, store)

	require.NoError(t, storage.Save(ctx, store, staff.Collection, []staff.Employee{
		{ID: 1, Name: "A", Status: staff.StatusActive},
		{ID: 2, Name: "B", Status: staff.StatusLeave},
	}))
	require.NoError(t, storage.Save(ctx, store, inventory.Collection, []inventory.Item{
		{ID: 1, Name: "Tomates", Quantity: 4, MinQuantity: 6},
		{ID: 2, Name: "Farine", Quantity: 25, MinQuantity: 10},
	}))

	ov, err := s.Overview(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, ov.TotalOrders)
	assert.InDelta(t, 96.50, ov.TotalRevenue, 1e-9)
	assert.Equal(t, 1, ov.PendingOrders)
	assert.Equal(t, 1, ov.ActiveStaff)
	assert.Equal(t, 1, ov.LowStockItems)
	assert.Equal(t, 2, ov.UniqueTables)
}

func TestRevenueByDayIncludesEmptyDays(t *testing.T) {
	ctx := context.Background()
	s, store := newTestService(t)
	seedOrders(t, store)

	out, err := s.RevenueByDay(ctx, 3)
	require.NoError(t, err)
	require.Len(t, out, 3)

	assert.Equal(t, "2024-03-04", out[0].Date)
	assert.Equal(t, 0.0, out[0].Revenue)
	assert.Equal(t, "2024-03-05", out[1].Date)
	assert.InDelta(t, 62, out[1].Revenue, 1e-9)
	assert.Equal(t, 2, out[1].Orders)
	assert.Equal(t, "2024-03-06", out[2].Date)
	assert.InDelta(t, 34.50, out[2].Revenue, 1e-9)
}

func TestRevenueByDayClampsWindow(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t)

	out, err := s.RevenueByDay(ctx, 1_000_000_000)
	require.NoError(t, err)
	assert.Len(t, out, 366)

	out, err = s.RevenueByDay(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, out, 7)
}

func TestPopularDishesSkipsCancelled(t *testing.T) {
	ctx := context.Background()
	s, store := newTestService(t)
	seedOrders(t, store)

	dishes, err := s.PopularDishes(ctx, 5)
	require.NoError(t, err)
	require.Len(t, dishes, 2)

	assert.Equal(t, "Pizza 4 Fromages", dishes[0].Name)
	assert.Equal(t, 3, dishes[0].Quantity)
	assert.InDelta(t, 36, dishes[0].Revenue, 1e-9)
	assert.Equal(t, "Salade César", dishes[1].Name)

	top1, err := s.PopularDishes(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, top1, 1)
}

func TestStatusDistribution(t *testing.T) {
	ctx := context.Background()
	s, store := newTestService(t)
	seedOrders(t, store)

	st, err := s.StatusDistribution(ctx)
	require.NoError(t, err)
	assert.Equal(t, order.Stats{Pending: 1, Served: 1, Cancelled: 1}, st)
}

func TestStockDistribution(t *testing.T) {
	ctx := context.Background()
	s, store := newTestService(t)

	require.NoError(t, storage.Save(ctx, store, inventory.Collection, []inventory.Item{
		{ID: 1, Quantity: 0, MinQuantity: 3},
		{ID: 2, Quantity: 4, MinQuantity: 6},
		{ID: 3, Quantity: 25, MinQuantity: 10},
	}))

	dist, err := s.Stock(ctx)
	require.NoError(t, err)
	assert.Equal(t, StockDistribution{OK: 1, Low: 1, Out: 1}, dist)
}
