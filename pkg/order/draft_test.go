package order

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"maeled/pkg/catalog"
)

func testMenu() []catalog.Item {
	return []catalog.Item{
		{ID: 1, Name: "Salade César", Price: 8.50, Available: true},
		{ID: 2, Name: "Pizza 4 Fromages", Price: 12.00, Available: true},
		{ID: 3, Name: "Tiramisu", Price: 7.00, Available: true},
	}
}

func TestDraftSetQuantityAddsSnapshot(t *testing.T) {
	d := NewDraft(testMenu())

	d.SetQuantity(2, 3)

	lines := d.Lines()
	assert.Len(t, lines, 1)
	assert.Equal(t, Line{ItemID: 2, Name: "Pizza 4 Fromages", UnitPrice: 12.00, Quantity: 3}, lines[0])
	assert.True(t, d.Selected(2))
	assert.Equal(t, 3, d.Quantity(2))
}

func TestDraftSetQuantityZeroRemoves(t *testing.T) {
	d := NewDraft(testMenu())

	d.SetQuantity(1, 2)
	d.SetQuantity(1, 0)

	assert.True(t, d.Empty())
	assert.False(t, d.Selected(1))
	assert.Equal(t, 0, d.Quantity(1))
}

func TestDraftUnknownItemIgnored(t *testing.T) {
	d := NewDraft(testMenu())

	d.SetQuantity(99, 2)

	assert.True(t, d.Empty())
}

func TestDraftToggleViewsStayConsistent(t *testing.T) {
	d := NewDraft(testMenu())

	d.Toggle(1, true)
	assert.Equal(t, 1, d.Quantity(1))

	d.SetQuantity(1, 4)
	assert.True(t, d.Selected(1))

	// re-including a selected item must not reset its quantity
	d.Toggle(1, true)
	assert.Equal(t, 4, d.Quantity(1))

	d.Toggle(1, false)
	assert.False(t, d.Selected(1))
	assert.Equal(t, 0, d.Quantity(1))
}

func TestDraftReAddAfterRemoveResnapshots(t *testing.T) {
	menu := testMenu()
	d := NewDraft(menu)

	d.SetQuantity(3, 1)
	d.SetQuantity(3, 0)

	// simulate a price change between selections
	d2 := NewDraft([]catalog.Item{{ID: 3, Name: "Tiramisu", Price: 9.00, Available: true}})
	d2.SetQuantity(3, 1)
	assert.Equal(t, 9.00, d2.Lines()[0].UnitPrice)

	d.SetQuantity(3, 2)
	assert.Equal(t, 7.00, d.Lines()[0].UnitPrice)
}

func TestDraftSubtotal(t *testing.T) {
	d := NewDraft(testMenu())

	d.SetQuantity(1, 1)
	d.SetQuantity(2, 2)

	assert.InDelta(t, 8.50+2*12.00, d.Subtotal(), 1e-9)
}

func TestEditDraftSeedsFromRecord(t *testing.T) {
	rec := Record{
		ID:     1001,
		Table:  "T4",
		Guests: 0,
		Notes:  "no onions",
		Items:  []Line{{ItemID: 1, Name: "Salade César", UnitPrice: 8.00, Quantity: 2}},
	}
	d := EditDraft(testMenu(), rec)

	assert.True(t, d.Editing())
	assert.Equal(t, 1001, d.ID())
	assert.Equal(t, "T4", d.Table)
	assert.Equal(t, 1, d.Guests)
	assert.Equal(t, "no onions", d.Notes)

	// the seeded line keeps its original price even though the menu
	// price moved to 8.50
	assert.Equal(t, 8.00, d.Lines()[0].UnitPrice)

	d.SetQuantity(1, 3)
	assert.Equal(t, 8.00, d.Lines()[0].UnitPrice)
	assert.Equal(t, 3, d.Quantity(1))
}
