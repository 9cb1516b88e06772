// Package order implements the order composition workflow: the draft a
// waiter builds from the menu, and the ledger of committed orders.
package order

import "errors"

// Collection is the stored collection name.
const Collection = "orders"

// DefaultServiceFee is the fixed surcharge on customer-facing checkout.
const DefaultServiceFee = 2.00

// Status is an order's kitchen state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusPreparing Status = "preparing"
	StatusServed    Status = "served"
	StatusCancelled Status = "cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPreparing, StatusServed, StatusCancelled:
		return true
	}
	return false
}

// Next returns the following status in the cycle pending → preparing →
// served → cancelled → pending. Unknown statuses restart the cycle.
func (s Status) Next() Status {
	switch s {
	case StatusPending:
		return StatusPreparing
	case StatusPreparing:
		return StatusServed
	case StatusServed:
		return StatusCancelled
	default:
		return StatusPending
	}
}

// Line is one item entry on a draft or committed order. Name and
// UnitPrice are snapshots taken when the item was first selected; later
// menu edits do not reach back into existing orders.
type Line struct {
	ItemID    int     `json:"id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Total returns the line total.
func (l Line) Total() float64 {
	return l.UnitPrice * float64(l.Quantity)
}

// Record is a committed order as stored in the ledger.
type Record struct {
	ID       int     `json:"id"`
	Table    string  `json:"table"`
	Items    []Line  `json:"items"`
	Subtotal float64 `json:"subtotal"`
	Total    float64 `json:"total"`
	Status   Status  `json:"status"`
	Time     string  `json:"time"` // HH:MM
	Date     string  `json:"date"` // YYYY-MM-DD
	Guests   int     `json:"guests"`
	Notes    string  `json:"notes"`
	Waiter   string  `json:"waiter"`
}

// EffectiveSubtotal returns the stored subtotal, falling back for legacy
// records to total minus the service fee, floored at zero.
func (r Record) EffectiveSubtotal(fee float64) float64 {
	if r.Subtotal > 0 {
		return r.Subtotal
	}
	if sub := r.Total - fee; sub > 0 {
		return sub
	}
	return 0
}

// ItemCount returns the summed quantity across all lines.
func (r Record) ItemCount() int {
	n := 0
	for _, l := range r.Items {
		n += l.Quantity
	}
	return n
}

// CheckoutPath carries the settings that differ between the admin order
// form and the customer cart: who the order is recorded for and whether
// the service fee applies.
type CheckoutPath struct {
	Waiter     string
	ServiceFee float64
}

// AdminCheckout is the back-office path: no surcharge.
func AdminCheckout() CheckoutPath {
	return CheckoutPath{Waiter: "Admin"}
}

// CustomerCheckout is the public cart path: fixed surcharge on top of
// the subtotal.
func CustomerCheckout(fee float64) CheckoutPath {
	return CheckoutPath{Waiter: "Client", ServiceFee: fee}
}

var (
	// ErrNotFound indicates the requested order does not exist.
	ErrNotFound = errors.New("order not found")
	// ErrInvalid tags validation failures; the message lists every
	// violated rule.
	ErrInvalid = errors.New("invalid order")
)
