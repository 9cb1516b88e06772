package cart_test

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maeled/pkg/cart"
	"maeled/pkg/logger"
	"maeled/pkg/notify"
	"maeled/pkg/order"
	"maeled/pkg/storage"
	"maeled/pkg/storage/memory"
)

func newTestCart(t *testing.T, backend storage.Backend) (*cart.Service, *order.Ledger) {
	t.Helper()
	store := storage.New(backend)
	log := logger.New(io.Discard, logger.LevelError, "test", nil)
	ledger := order.NewLedger(store, notify.New(store, nil), log, order.DefaultServiceFee)
	return cart.NewService(store, ledger, log, order.DefaultServiceFee), ledger
}

func TestAddUpserts(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestCart(t, memory.New())

	require.NoError(t, svc.Add(ctx, 1, "Salade César", 8.50))
	require.NoError(t, svc.Add(ctx, 2, "Pizza 4 Fromages", 12.00))
	require.NoError(t, svc.Add(ctx, 1, "Salade César", 8.50))

	items, err := svc.Items(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 1, items[1].Quantity)

	count, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	subtotal, err := svc.Subtotal(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 2*8.50+12.00, subtotal, 1e-9)
}

func TestSetQuantityFloorsAtOne(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestCart(t, memory.New())

	require.NoError(t, svc.Add(ctx, 1, "Salade César", 8.50))
	require.NoError(t, svc.SetQuantity(ctx, 1, 0))

	items, err := svc.Items(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestRemoveAndClear(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestCart(t, memory.New())

	require.NoError(t, svc.Add(ctx, 1, "Salade César", 8.50))
	require.NoError(t, svc.Add(ctx, 2, "Pizza 4 Fromages", 12.00))

	require.NoError(t, svc.Remove(ctx, 1))
	items, err := svc.Items(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].ItemID)

	require.NoError(t, svc.Clear(ctx))
	count, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestCheckoutCommitsAndClears(t *testing.T) {
	ctx := context.Background()
	svc, ledger := newTestCart(t, memory.New())

	require.NoError(t, svc.Add(ctx, 1, "Salade César", 6.00))
	require.NoError(t, svc.Add(ctx, 2, "Pizza 4 Fromages", 12.00))

	rec, err := svc.Checkout(ctx, "T5")
	require.NoError(t, err)

	assert.Equal(t, "Client", rec.Waiter)
	assert.Equal(t, 1, rec.Guests)
	assert.InDelta(t, 18.00, rec.Subtotal, 1e-9)
	assert.InDelta(t, 20.00, rec.Total, 1e-9)

	items, err := svc.Items(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	records, err := ledger.List(ctx, order.Filter{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, rec.ID, records[0].ID)
}

func TestCheckoutValidationKeepsCart(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestCart(t, memory.New())

	require.NoError(t, svc.Add(ctx, 1, "Salade César", 8.50))

	_, err := svc.Checkout(ctx, "")
	require.ErrorIs(t, err, order.ErrInvalid)

	items, err := svc.Items(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

// ordersDownBackend accepts cart writes but refuses the order
// collection, simulating a half-broken store.
type ordersDownBackend struct {
	inner *memory.Backend
}

func (b ordersDownBackend) Read(ctx context.Context, name string) ([]byte, error) {
	return b.inner.Read(ctx, name)
}

func (b ordersDownBackend) Write(ctx context.Context, name string, data []byte) error {
	if name == order.Collection {
		return assert.AnError
	}
	return b.inner.Write(ctx, name, data)
}

func TestCheckoutClearsEvenWhenCommitFails(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestCart(t, ordersDownBackend{inner: memory.New()})

	require.NoError(t, svc.Add(ctx, 1, "Salade César", 8.50))

	_, err := svc.Checkout(ctx, "T5")
	require.Error(t, err)

	items, err := svc.Items(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}
