package notify

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maeled/pkg/storage"
	"maeled/pkg/storage/memory"
)

func newTestFeed(t *testing.T) (*Feed, *storage.Store) {
	t.Helper()
	store := storage.New(memory.New())
	f := New(store, nil)
	f.now = func() time.Time {
		return time.Date(2024, time.March, 1, 18, 30, 0, 0, time.UTC)
	}
	return f, store
}

func TestPushPrependsNewestFirst(t *testing.T) {
	ctx := context.Background()
	f, _ := newTestFeed(t)

	f.Push(ctx, "first")
	f.Push(ctx, "second %d", 2)

	list, err := f.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "second 2", list[0].Message)
	assert.Equal(t, "first", list[1].Message)
	assert.Equal(t, "18:30", list[0].Time)
	assert.Equal(t, 2, list[0].ID)
	assert.False(t, list[0].Read)
}

func TestUnreadCountAndMarkAllRead(t *testing.T) {
	ctx := context.Background()
	f, _ := newTestFeed(t)

	f.Push(ctx, "one")
	f.Push(ctx, "two")
	f.Push(ctx, "three")

	n, err := f.UnreadCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	require.NoError(t, f.MarkAllRead(ctx))

	n, err = f.UnreadCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestPushSwallowsStorageErrors(t *testing.T) {
	ctx := context.Background()
	store := storage.New(failingBackend{})
	f := New(store, nil)

	// must not panic or surface the error
	f.Push(ctx, "dropped")
}

type failingBackend struct{}

func (failingBackend) Read(context.Context, string) ([]byte, error) {
	return nil, assert.AnError
}

func (failingBackend) Write(context.Context, string, []byte) error {
	return assert.AnError
}
