// Package report computes the dashboard aggregates. It reads the other
// packages' collections directly; everything here is derived, nothing
// is written.
package report

import (
	"context"
	"sort"
	"time"

	"maeled/pkg/catalog"
	"maeled/pkg/inventory"
	"maeled/pkg/order"
	"maeled/pkg/staff"
	"maeled/pkg/storage"
)

// Overview is the headline card row of the dashboard.
type Overview struct {
	TotalOrders   int     `json:"totalOrders"`
	TotalRevenue  float64 `json:"totalRevenue"`
	PendingOrders int     `json:"pendingOrders"`
	ActiveStaff   int     `json:"activeStaff"`
	LowStockItems int     `json:"lowStockItems"`
	UniqueTables  int     `json:"uniqueTables"`
}

// maxRevenueDays bounds the revenue chart window.
const maxRevenueDays = 366

// DayRevenue is one bar of the revenue chart.
type DayRevenue struct {
	Date    string  `json:"date"` // YYYY-MM-DD
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

// Dish is one row of the popularity ranking.
type Dish struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

// StockDistribution buckets the stock by status.
type StockDistribution struct {
	OK  int `json:"ok"`
	Low int `json:"low"`
	Out int `json:"out"`
}

// Service computes aggregates over the snapshot store.
type Service struct {
	store *storage.Store
	now   func() time.Time
}

// NewService creates a report service.
func NewService(store *storage.Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Overview returns the headline counters.
func (s *Service) Overview(ctx context.Context) (Overview, error) {
	orders, err := storage.Load[order.Record](ctx, s.store, order.Collection)
	if err != nil {
		return Overview{}, err
	}
	employees, err := storage.Load[staff.Employee](ctx, s.store, staff.Collection)
	if err != nil {
		return Overview{}, err
	}
	stock, err := storage.Load[inventory.Item](ctx, s.store, inventory.Collection)
	if err != nil {
		return Overview{}, err
	}

	var ov Overview
	ov.TotalOrders = len(orders)
	tables := make(map[string]bool)
	for _, o := range orders {
		ov.TotalRevenue += o.Total
		if o.Status == order.StatusPending {
			ov.PendingOrders++
		}
		if o.Table != "" {
			tables[o.Table] = true
		}
	}
	ov.UniqueTables = len(tables)
	for _, e := range employees {
		if e.Status == staff.StatusActive {
			ov.ActiveStaff++
		}
	}
	for _, it := range stock {
		if it.StockStatus() != inventory.StockOK {
			ov.LowStockItems++
		}
	}
	return ov, nil
}

// RevenueByDay returns one entry per day for the last days days, oldest
// first, including days without orders.
func (s *Service) RevenueByDay(ctx context.Context, days int) ([]DayRevenue, error) {
	orders, err := storage.Load[order.Record](ctx, s.store, order.Collection)
	if err != nil {
		return nil, err
	}
	if days < 1 {
		days = 7
	}
	// the window sizes an allocation, so cap request-supplied values
	if days > maxRevenueDays {
		days = maxRevenueDays
	}

	byDate := make(map[string]*DayRevenue, days)
	out := make([]DayRevenue, days)
	for i := 0; i < days; i++ {
		date := s.now().AddDate(0, 0, i-days+1).Format("2006-01-02")
		out[i] = DayRevenue{Date: date}
		byDate[date] = &out[i]
	}
	for _, o := range orders {
		if day, ok := byDate[o.Date]; ok {
			day.Revenue += o.Total
			day.Orders++
		}
	}
	return out, nil
}

// PopularDishes ranks dishes by quantity sold across all orders.
func (s *Service) PopularDishes(ctx context.Context, limit int) ([]Dish, error) {
	orders, err := storage.Load[order.Record](ctx, s.store, order.Collection)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]*Dish)
	for _, o := range orders {
		if o.Status == order.StatusCancelled {
			continue
		}
		for _, line := range o.Items {
			d, ok := byName[line.Name]
			if !ok {
				d = &Dish{Name: line.Name}
				byName[line.Name] = d
			}
			d.Quantity += line.Quantity
			d.Revenue += line.Total()
		}
	}
	out := make([]Dish, 0, len(byName))
	for _, d := range byName {
		out = append(out, *d)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Quantity != out[j].Quantity {
			return out[i].Quantity > out[j].Quantity
		}
		return out[i].Name < out[j].Name
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// StatusDistribution returns the order counts per status.
func (s *Service) StatusDistribution(ctx context.Context) (order.Stats, error) {
	orders, err := storage.Load[order.Record](ctx, s.store, order.Collection)
	if err != nil {
		return order.Stats{}, err
	}
	var st order.Stats
	for _, o := range orders {
		switch o.Status {
		case order.StatusPending:
			st.Pending++
		case order.StatusPreparing:
			st.Preparing++
		case order.StatusServed:
			st.Served++
		case order.StatusCancelled:
			st.Cancelled++
		}
	}
	return st, nil
}

// Stock buckets the inventory by stock status.
func (s *Service) Stock(ctx context.Context) (StockDistribution, error) {
	stock, err := storage.Load[inventory.Item](ctx, s.store, inventory.Collection)
	if err != nil {
		return StockDistribution{}, err
	}
	var dist StockDistribution
	for _, it := range stock {
		switch it.StockStatus() {
		case inventory.StockOK:
			dist.OK++
		case inventory.StockLow:
			dist.Low++
		case inventory.StockOut:
			dist.Out++
		}
	}
	return dist, nil
}

// TopMargins ranks menu items by gross margin, best first.
func (s *Service) TopMargins(ctx context.Context, limit int) ([]catalog.Item, error) {
	items, err := storage.Load[catalog.Item](ctx, s.store, catalog.Collection)
	if err != nil {
		return nil, err
	}
	out := make([]catalog.Item, 0, len(items))
	for _, it := range items {
		if it.Margin() > 0 {
			out = append(out, it)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Margin() > out[j].Margin() })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
