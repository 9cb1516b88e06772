package order

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"

	"maeled/pkg/logger"
	"maeled/pkg/notify"
	"maeled/pkg/storage"
)

// idFloor makes the first ever order id 1001.
const idFloor = 1000

// Period narrows List by order date.
type Period string

const (
	PeriodAll       Period = "all"
	PeriodToday     Period = "today"
	PeriodYesterday Period = "yesterday"
	PeriodWeek      Period = "week"
)

// Filter narrows List results.
type Filter struct {
	Query  string
	Status Status // empty means all
	Period Period // empty means all
}

// Stats counts orders per status.
type Stats struct {
	Pending   int `json:"pending"`
	Preparing int `json:"preparing"`
	Served    int `json:"served"`
	Cancelled int `json:"cancelled"`
}

// DailyReport summarizes today's business.
type DailyReport struct {
	Date    string   `json:"date"`
	Orders  []Record `json:"orders"`
	Served  int      `json:"served"`
	Items   int      `json:"items"`
	Revenue float64  `json:"revenue"`
}

// Ledger owns the persisted order collection. fee is the customer
// service fee, used to derive subtotals for legacy records that never
// stored one.
type Ledger struct {
	store *storage.Store
	feed  *notify.Feed
	log   *logger.Logger
	fee   float64
	now   func() time.Time
}

// NewLedger creates a ledger over the given store.
func NewLedger(store *storage.Store, feed *notify.Feed, log *logger.Logger, fee float64) *Ledger {
	return &Ledger{store: store, feed: feed, log: log, fee: fee, now: time.Now}
}

// normalize backfills derived fields on read. Stored data is never
// rewritten; legacy records keep their missing subtotal on disk.
func (l *Ledger) normalize(r Record) Record {
	r.Subtotal = r.EffectiveSubtotal(l.fee)
	return r
}

// Commit validates the draft and writes it to the ledger: append for a
// new draft, in-place replace when editing. On validation failure the
// ledger is untouched and the draft stays editable.
func (l *Ledger) Commit(ctx context.Context, d *Draft, path CheckoutPath) (Record, error) {
	if err := validateDraft(d.Table, d.Empty()); err != nil {
		return Record{}, err
	}

	if d.Editing() {
		return l.commitEdit(ctx, d)
	}
	rec, err := l.create(ctx, d.Table, d.Guests, d.Notes, d.Lines(), path)
	if err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Checkout commits a customer cart as one new order: one guest, no
// notes, the path's fee on top of the subtotal.
func (l *Ledger) Checkout(ctx context.Context, table string, lines []Line, path CheckoutPath) (Record, error) {
	if err := validateDraft(table, len(lines) == 0); err != nil {
		return Record{}, err
	}
	return l.create(ctx, table, 1, "", lines, path)
}

func (l *Ledger) create(ctx context.Context, table string, guests int, notes string, lines []Line, path CheckoutPath) (Record, error) {
	subtotal := 0.0
	for _, line := range lines {
		subtotal += line.Total()
	}
	now := l.now()
	rec := Record{
		Table:    table,
		Items:    lines,
		Subtotal: subtotal,
		Total:    subtotal + path.ServiceFee,
		Status:   StatusPending,
		Time:     now.Format("15:04"),
		Date:     now.Format("2006-01-02"),
		Guests:   guests,
		Notes:    notes,
		Waiter:   path.Waiter,
	}

	_, err := storage.Mutate(ctx, l.store, Collection, func(records []Record) ([]Record, error) {
		rec.ID = storage.NextID(recordIDs(records), idFloor)
		return append(records, rec), nil
	})
	if err != nil {
		return Record{}, err
	}

	l.feed.Push(ctx, "New order #%d on %s - %.2f", rec.ID, rec.Table, rec.Total)
	l.log.Info(ctx, "order created", "id", rec.ID, "table", rec.Table, "total", rec.Total, "waiter", rec.Waiter)
	return rec, nil
}

func (l *Ledger) commitEdit(ctx context.Context, d *Draft) (Record, error) {
	var updated Record
	now := l.now()
	_, err := storage.Mutate(ctx, l.store, Collection, func(records []Record) ([]Record, error) {
		for i := range records {
			if records[i].ID != d.ID() {
				continue
			}
			rec := records[i]
			rec.Table = d.Table
			rec.Guests = d.Guests
			rec.Notes = d.Notes
			rec.Items = d.Lines()
			rec.Subtotal = d.Subtotal()
			rec.Total = rec.Subtotal
			// original date/time are history; only backfill when a
			// legacy record never had them
			if rec.Time == "" {
				rec.Time = now.Format("15:04")
			}
			if rec.Date == "" {
				rec.Date = now.Format("2006-01-02")
			}
			records[i] = rec
			updated = rec
			return records, nil
		}
		return nil, ErrNotFound
	})
	if err != nil {
		return Record{}, err
	}

	l.feed.Push(ctx, "Order #%d updated - %.2f", updated.ID, updated.Total)
	l.log.Info(ctx, "order updated", "id", updated.ID, "table", updated.Table)
	return updated, nil
}

// List returns matching orders, most recent first.
func (l *Ledger) List(ctx context.Context, f Filter) ([]Record, error) {
	records, err := storage.Load[Record](ctx, l.store, Collection)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(f.Query)
	today := l.now().Format("2006-01-02")
	yesterday := l.now().AddDate(0, 0, -1).Format("2006-01-02")
	weekStart := startOfWeek(l.now()).Format("2006-01-02")

	out := make([]Record, 0, len(records))
	for _, r := range records {
		if q != "" &&
			!strings.Contains(strings.ToLower(r.Table), q) &&
			!strings.Contains(strconv.Itoa(r.ID), q) &&
			!strings.Contains(strings.ToLower(r.Notes), q) {
			continue
		}
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		switch f.Period {
		case PeriodToday:
			if r.Date != today {
				continue
			}
		case PeriodYesterday:
			if r.Date != yesterday {
				continue
			}
		case PeriodWeek:
			if r.Date < weekStart {
				continue
			}
		}
		out = append(out, l.normalize(r))
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date+" "+out[i].Time > out[j].Date+" "+out[j].Time
	})
	return out, nil
}

// Get returns one order by id.
func (l *Ledger) Get(ctx context.Context, id int) (Record, error) {
	records, err := storage.Load[Record](ctx, l.store, Collection)
	if err != nil {
		return Record{}, err
	}
	for _, r := range records {
		if r.ID == id {
			return l.normalize(r), nil
		}
	}
	return Record{}, ErrNotFound
}

// Delete removes an order.
func (l *Ledger) Delete(ctx context.Context, id int) error {
	_, err := storage.Mutate(ctx, l.store, Collection, func(records []Record) ([]Record, error) {
		out := records[:0]
		found := false
		for _, r := range records {
			if r.ID == id {
				found = true
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
	l.feed.Push(ctx, "Order #%d deleted", id)
	return nil
}

// CycleStatus advances an order to the next status in the cycle.
func (l *Ledger) CycleStatus(ctx context.Context, id int) (Record, error) {
	return l.setStatus(ctx, id, func(s Status) Status { return s.Next() })
}

// SetStatus moves an order to an explicit status.
func (l *Ledger) SetStatus(ctx context.Context, id int, status Status) (Record, error) {
	if !status.Valid() {
		return Record{}, fmt.Errorf("%w: unknown status %q", ErrInvalid, status)
	}
	return l.setStatus(ctx, id, func(Status) Status { return status })
}

func (l *Ledger) setStatus(ctx context.Context, id int, next func(Status) Status) (Record, error) {
	var updated Record
	_, err := storage.Mutate(ctx, l.store, Collection, func(records []Record) ([]Record, error) {
		for i := range records {
			if records[i].ID == id {
				records[i].Status = next(records[i].Status)
				updated = records[i]
				return records, nil
			}
		}
		return nil, ErrNotFound
	})
	if err != nil {
		return Record{}, err
	}
	l.feed.Push(ctx, "Order #%d: %s", updated.ID, updated.Status)
	return updated, nil
}

// Stats counts all orders per status.
func (l *Ledger) Stats(ctx context.Context) (Stats, error) {
	records, err := storage.Load[Record](ctx, l.store, Collection)
	if err != nil {
		return Stats{}, err
	}
	var st Stats
	for _, r := range records {
		switch r.Status {
		case StatusPending:
			st.Pending++
		case StatusPreparing:
			st.Preparing++
		case StatusServed:
			st.Served++
		case StatusCancelled:
			st.Cancelled++
		}
	}
	return st, nil
}

// Today summarizes today's orders for the printed report.
func (l *Ledger) Today(ctx context.Context) (DailyReport, error) {
	today := l.now().Format("2006-01-02")
	records, err := storage.Load[Record](ctx, l.store, Collection)
	if err != nil {
		return DailyReport{}, err
	}
	rep := DailyReport{Date: today}
	for _, r := range records {
		if r.Date != today {
			continue
		}
		r = l.normalize(r)
		rep.Orders = append(rep.Orders, r)
		rep.Revenue += r.Total
		rep.Items += r.ItemCount()
		if r.Status == StatusServed {
			rep.Served++
		}
	}
	return rep, nil
}

func validateDraft(table string, empty bool) error {
	var errs *multierror.Error
	if strings.TrimSpace(table) == "" {
		errs = multierror.Append(errs, errors.New("table is required"))
	}
	if empty {
		errs = multierror.Append(errs, errors.New("at least one item is required"))
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

func recordIDs(records []Record) []int {
	out := make([]int, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

// startOfWeek returns the Monday of now's week.
func startOfWeek(now time.Time) time.Time {
	offset := (int(now.Weekday()) + 6) % 7
	return now.AddDate(0, 0, -offset)
}
