package storage_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maeled/pkg/storage"
	"maeled/pkg/storage/memory"
)

type record struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func TestLoadMissingCollection(t *testing.T) {
	s := storage.New(memory.New())

	items, err := storage.Load[record](context.Background(), s, "orders")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestSaveLoadRoundtrip(t *testing.T) {
	ctx := context.Background()
	s := storage.New(memory.New())

	in := []record{{ID: 1, Name: "one"}, {ID: 2, Name: "two"}}
	require.NoError(t, storage.Save(ctx, s, "orders", in))

	out, err := storage.Load[record](ctx, s, "orders")
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestSaveNilWritesEmptyList(t *testing.T) {
	ctx := context.Background()
	backend := memory.New()
	s := storage.New(backend)

	require.NoError(t, storage.Save[record](ctx, s, "orders", nil))

	data, err := backend.Read(ctx, "orders")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

func TestLenientDecodeTreatsMalformedAsEmpty(t *testing.T) {
	ctx := context.Background()
	backend := memory.New()
	require.NoError(t, backend.Write(ctx, "orders", []byte("{not json")))
	s := storage.New(backend)

	items, err := storage.Load[record](ctx, s, "orders")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestStrictDecodeSurfacesMalformed(t *testing.T) {
	ctx := context.Background()
	backend := memory.New()
	require.NoError(t, backend.Write(ctx, "orders", []byte("{not json")))
	s := storage.New(backend, storage.WithStrictDecode())

	_, err := storage.Load[record](ctx, s, "orders")
	require.Error(t, err)

	var mErr *storage.MalformedError
	require.ErrorAs(t, err, &mErr)
	assert.Equal(t, "orders", mErr.Collection)
}

func TestMutateWritesResult(t *testing.T) {
	ctx := context.Background()
	s := storage.New(memory.New())

	out, err := storage.Mutate(ctx, s, "orders", func(items []record) ([]record, error) {
		return append(items, record{ID: 1, Name: "one"}), nil
	})
	require.NoError(t, err)
	require.Len(t, out, 1)

	items, err := storage.Load[record](ctx, s, "orders")
	require.NoError(t, err)
	assert.Equal(t, out, items)
}

func TestMutateErrorLeavesCollectionUntouched(t *testing.T) {
	ctx := context.Background()
	s := storage.New(memory.New())
	require.NoError(t, storage.Save(ctx, s, "orders", []record{{ID: 1}}))

	boom := errors.New("boom")
	_, err := storage.Mutate(ctx, s, "orders", func(items []record) ([]record, error) {
		return nil, boom
	})
	require.ErrorIs(t, err, boom)

	items, err := storage.Load[record](ctx, s, "orders")
	require.NoError(t, err)
	assert.Equal(t, []record{{ID: 1}}, items)
}

func TestNextID(t *testing.T) {
	assert.Equal(t, 1, storage.NextID(nil, 0))
	assert.Equal(t, 1001, storage.NextID(nil, 1000))
	assert.Equal(t, 1006, storage.NextID([]int{1000, 1005, 1002}, 1000))
	assert.Equal(t, 4, storage.NextID([]int{3, 1, 2}, 0))
}
