package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maeled/pkg/storage/file"
)

func TestReadMissingReturnsNil(t *testing.T) {
	b, err := file.New(t.TempDir())
	require.NoError(t, err)

	data, err := b.Read(context.Background(), "orders")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestWriteReadRoundtrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	b, err := file.New(dir)
	require.NoError(t, err)

	require.NoError(t, b.Write(ctx, "orders", []byte(`[{"id":1}]`)))

	data, err := b.Read(ctx, "orders")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, string(data))

	// stored under the shared key prefix
	_, err = os.Stat(filepath.Join(dir, "maeled_orders.json"))
	assert.NoError(t, err)
}

func TestWriteLeavesNoTempFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	b, err := file.New(dir)
	require.NoError(t, err)

	require.NoError(t, b.Write(ctx, "orders", []byte("[]")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "maeled_orders.json", entries[0].Name())
}

func TestInvalidCollectionName(t *testing.T) {
	b, err := file.New(t.TempDir())
	require.NoError(t, err)

	_, err = b.Read(context.Background(), "../etc/passwd")
	assert.Error(t, err)

	err = b.Write(context.Background(), "", []byte("[]"))
	assert.Error(t, err)
}
