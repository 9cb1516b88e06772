// Package storage persists named collections as full JSON snapshots.
// Every read decodes the whole collection and every write replaces it,
// mirroring the stored data layout this system is compatible with.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"maeled/pkg/logger"
)

// Backend stores one opaque document per collection name. Read returns
// (nil, nil) for a collection that does not exist yet.
type Backend interface {
	Read(ctx context.Context, name string) ([]byte, error)
	Write(ctx context.Context, name string, data []byte) error
}

// MalformedError reports a stored collection that no longer decodes.
type MalformedError struct {
	Collection string
	Err        error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("collection %q is malformed: %v", e.Collection, e.Err)
}

func (e *MalformedError) Unwrap() error { return e.Err }

// Store wraps a backend with per-collection locking and a uniform decode
// policy. By default a malformed collection degrades to an empty one and
// is logged; in strict mode it surfaces as a *MalformedError.
type Store struct {
	backend Backend
	strict  bool
	log     *logger.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithStrictDecode makes malformed collections an error instead of an
// empty read.
func WithStrictDecode() Option {
	return func(s *Store) { s.strict = true }
}

// WithLogger attaches a logger for decode warnings.
func WithLogger(log *logger.Logger) Option {
	return func(s *Store) { s.log = log }
}

// New creates a Store over the given backend.
func New(b Backend, opts ...Option) *Store {
	s := &Store{backend: b, locks: make(map[string]*sync.Mutex)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) collLock(name string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	mu, ok := s.locks[name]
	if !ok {
		mu = &sync.Mutex{}
		s.locks[name] = mu
	}
	return mu
}

// Load reads the full collection. A missing collection is an empty one.
func Load[T any](ctx context.Context, s *Store, name string) ([]T, error) {
	mu := s.collLock(name)
	mu.Lock()
	defer mu.Unlock()
	return load[T](ctx, s, name)
}

// Save replaces the full collection.
func Save[T any](ctx context.Context, s *Store, name string, items []T) error {
	mu := s.collLock(name)
	mu.Lock()
	defer mu.Unlock()
	return save(ctx, s, name, items)
}

// Mutate runs fn on the decoded collection and writes the result back,
// all under the collection lock. When fn returns an error nothing is
// written. The written items are returned.
func Mutate[T any](ctx context.Context, s *Store, name string, fn func(items []T) ([]T, error)) ([]T, error) {
	mu := s.collLock(name)
	mu.Lock()
	defer mu.Unlock()

	items, err := load[T](ctx, s, name)
	if err != nil {
		return nil, err
	}
	out, err := fn(items)
	if err != nil {
		return nil, err
	}
	if err := save(ctx, s, name, out); err != nil {
		return nil, err
	}
	return out, nil
}

func load[T any](ctx context.Context, s *Store, name string) ([]T, error) {
	data, err := s.backend.Read(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("reading collection %q: %w", name, err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		mErr := &MalformedError{Collection: name, Err: err}
		if s.strict {
			return nil, mErr
		}
		if s.log != nil {
			s.log.Warn(ctx, "malformed collection, treating as empty", "collection", name, "error", err)
		}
		return nil, nil
	}
	return items, nil
}

func save[T any](ctx context.Context, s *Store, name string, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding collection %q: %w", name, err)
	}
	if err := s.backend.Write(ctx, name, data); err != nil {
		return fmt.Errorf("writing collection %q: %w", name, err)
	}
	return nil
}

// NextID allocates the next record id: max(existing, floor) + 1.
func NextID(existing []int, floor int) int {
	max := floor
	for _, id := range existing {
		if id > max {
			max = id
		}
	}
	return max + 1
}
