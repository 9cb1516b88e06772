// Package file implements the storage backend on plain JSON files, one
// per collection.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Backend keeps each collection in <dir>/maeled_<name>.json. Writes go
// through a temp file and rename so readers never see a torn snapshot.
type Backend struct {
	dir string
}

// New creates the data directory if needed.
func New(dir string) (*Backend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	return &Backend{dir: dir}, nil
}

// Read returns the stored snapshot, or nil when the collection has never
// been written.
func (b *Backend) Read(ctx context.Context, name string) ([]byte, error) {
	path, err := b.path(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return data, err
}

// Write replaces the stored snapshot atomically.
func (b *Backend) Write(ctx context.Context, name string, data []byte) error {
	path, err := b.path(name)
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func (b *Backend) path(name string) (string, error) {
	if !validName(name) {
		return "", fmt.Errorf("invalid collection name %q", name)
	}
	return filepath.Join(b.dir, "maeled_"+name+".json"), nil
}

func validName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '_' {
			return false
		}
	}
	return true
}
