// Package redis implements the storage backend on redis, letting several
// back-office instances share the same snapshots.
package redis

import (
	"context"
	"errors"

	goredis "github.com/redis/go-redis/v9"
)

// Backend keeps each collection under the key maeled_<name>.
type Backend struct {
	client *goredis.Client
}

// New wraps an existing redis client.
func New(client *goredis.Client) *Backend {
	return &Backend{client: client}
}

// Read returns the stored snapshot, or nil when absent.
func (b *Backend) Read(ctx context.Context, name string) ([]byte, error) {
	data, err := b.client.Get(ctx, "maeled_"+name).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	return data, err
}

// Write replaces the stored snapshot.
func (b *Backend) Write(ctx context.Context, name string, data []byte) error {
	return b.client.Set(ctx, "maeled_"+name, data, 0).Err()
}
