// Package notify maintains the notification feed every mutating
// operation appends to. The feed is display-only; a failed push must
// never fail the operation that triggered it, so Push logs and swallows
// errors.
package notify

import (
	"context"
	"fmt"
	"time"

	"maeled/pkg/logger"
	"maeled/pkg/storage"
)

// Collection is the stored collection name.
const Collection = "notifications"

// Notification is a single feed entry. IDs are monotonic within the
// list only: len+1 at prepend time, as the stored data has always done.
type Notification struct {
	ID      int    `json:"id"`
	Message string `json:"message"`
	Time    string `json:"time"` // HH:MM local clock
	Read    bool   `json:"read"`
}

// Feed appends to and reads the notification collection.
type Feed struct {
	store *storage.Store
	log   *logger.Logger
	now   func() time.Time
}

// New creates a feed over the given store.
func New(store *storage.Store, log *logger.Logger) *Feed {
	return &Feed{store: store, log: log, now: time.Now}
}

// Push prepends a new unread notification.
func (f *Feed) Push(ctx context.Context, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	_, err := storage.Mutate(ctx, f.store, Collection, func(items []Notification) ([]Notification, error) {
		n := Notification{
			ID:      len(items) + 1,
			Message: msg,
			Time:    f.now().Format("15:04"),
		}
		return append([]Notification{n}, items...), nil
	})
	if err != nil && f.log != nil {
		f.log.Warn(ctx, "notification dropped", "message", msg, "error", err)
	}
}

// List returns the feed, newest first.
func (f *Feed) List(ctx context.Context) ([]Notification, error) {
	return storage.Load[Notification](ctx, f.store, Collection)
}

// UnreadCount returns the badge count.
func (f *Feed) UnreadCount(ctx context.Context) (int, error) {
	items, err := f.List(ctx)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, n := range items {
		if !n.Read {
			count++
		}
	}
	return count, nil
}

// MarkAllRead clears the badge.
func (f *Feed) MarkAllRead(ctx context.Context) error {
	_, err := storage.Mutate(ctx, f.store, Collection, func(items []Notification) ([]Notification, error) {
		for i := range items {
			items[i].Read = true
		}
		return items, nil
	})
	return err
}
