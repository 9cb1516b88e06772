package order

import "maeled/pkg/catalog"

// Draft is the staging area for one order being composed. The line list
// is the single source of truth: the checkbox view (Selected) and the
// quantity view (Quantity) are both derived from it, so the two can
// never drift apart.
type Draft struct {
	id     int // 0 while creating, the record id while editing
	Table  string
	Guests int
	Notes  string

	menu  map[int]catalog.Item
	lines []Line
}

// NewDraft opens an empty draft over the given menu snapshot.
func NewDraft(menu []catalog.Item) *Draft {
	return &Draft{Guests: 2, menu: indexMenu(menu)}
}

// EditDraft opens a draft seeded from an existing record.
func EditDraft(menu []catalog.Item, rec Record) *Draft {
	d := &Draft{
		id:     rec.ID,
		Table:  rec.Table,
		Guests: rec.Guests,
		Notes:  rec.Notes,
		menu:   indexMenu(menu),
	}
	d.lines = append(d.lines, rec.Items...)
	if d.Guests < 1 {
		d.Guests = 1
	}
	return d
}

func indexMenu(menu []catalog.Item) map[int]catalog.Item {
	m := make(map[int]catalog.Item, len(menu))
	for _, it := range menu {
		m[it.ID] = it
	}
	return m
}

// ID returns the record id being edited, or 0 for a new order.
func (d *Draft) ID() int { return d.id }

// Editing reports whether the draft was seeded from an existing record.
func (d *Draft) Editing() bool { return d.id != 0 }

// Empty reports whether no items are selected.
func (d *Draft) Empty() bool { return len(d.lines) == 0 }

// SetQuantity sets the quantity for a menu item. Zero removes the line.
// A new line snapshots the item's current name and price; an existing
// line keeps its original snapshot and only the quantity changes.
// Unknown item ids are ignored.
func (d *Draft) SetQuantity(itemID, quantity int) {
	if quantity <= 0 {
		d.remove(itemID)
		return
	}
	if line := d.find(itemID); line != nil {
		line.Quantity = quantity
		return
	}
	item, ok := d.menu[itemID]
	if !ok {
		return
	}
	d.lines = append(d.lines, Line{
		ItemID:    item.ID,
		Name:      item.Name,
		UnitPrice: item.Price,
		Quantity:  quantity,
	})
}

// Toggle mirrors the checkbox view. Including an unselected item adds it
// with quantity 1; including an already selected item keeps its quantity
// (floored at 1); excluding removes the line whatever its quantity.
func (d *Draft) Toggle(itemID int, included bool) {
	if !included {
		d.remove(itemID)
		return
	}
	if line := d.find(itemID); line != nil {
		if line.Quantity < 1 {
			line.Quantity = 1
		}
		return
	}
	d.SetQuantity(itemID, 1)
}

// Quantity is the derived numeric view: 0 when the item is unselected.
func (d *Draft) Quantity(itemID int) int {
	if line := d.find(itemID); line != nil {
		return line.Quantity
	}
	return 0
}

// Selected is the derived checkbox view.
func (d *Draft) Selected(itemID int) bool {
	return d.find(itemID) != nil
}

// Lines returns a copy of the selection, in selection order.
func (d *Draft) Lines() []Line {
	out := make([]Line, len(d.lines))
	copy(out, d.lines)
	return out
}

// Subtotal returns Σ(unit price × quantity) over the selection.
func (d *Draft) Subtotal() float64 {
	sum := 0.0
	for _, l := range d.lines {
		sum += l.Total()
	}
	return sum
}

func (d *Draft) find(itemID int) *Line {
	for i := range d.lines {
		if d.lines[i].ItemID == itemID {
			return &d.lines[i]
		}
	}
	return nil
}

func (d *Draft) remove(itemID int) {
	out := d.lines[:0]
	for _, l := range d.lines {
		if l.ItemID != itemID {
			out = append(out, l)
		}
	}
	d.lines = out
}
