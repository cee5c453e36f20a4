package replaycache

import (
	"context"

	"github.com/unkn0wn-root/replaycache/store"
)

// Cache stores values under random keys and reads them back, counting and
// recording every Store call when the backing store can hold counters and lists.
type Cache interface {
	// Store writes data under a fresh UUIDv4 key and returns the key.
	// data is a string, []byte, integer, float, bool or encoding.BinaryMarshaler.
	Store(ctx context.Context, data any) (string, error)

	// Get returns the raw value; (nil, false, nil) on miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	GetStr(ctx context.Context, key string) (string, bool, error)
	// GetInt parses the value as a base-10 int64.
	GetInt(ctx context.Context, key string) (int64, bool, error)

	// StoreMethod returns the replayable reference to Store.
	StoreMethod() *Method

	// Instrumented reports whether Store calls are counted and recorded.
	Instrumented() bool

	Close(ctx context.Context) error
}

// Getter is the read side used by GetAs and GetDecoded.
type Getter interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
}

// Storer is the write side used by StoreEncoded.
type Storer interface {
	Store(ctx context.Context, data any) (string, error)
}

// Options configure a Cache. Only Store is required.
type Options struct {
	// Required
	Store store.Client // a store.Ledger enables call counting and history

	StoreMethodID string        // stable id for Store calls; "" => DefaultStoreMethodID
	SkipFlush     bool          // default false => FLUSHDB on New (destroys existing data)
	Logger        Logger        // if nil, NopLogger is used
	Hooks         Hooks         // if nil, NopHooks is used
	NewKey        func() string // key generator; nil => UUIDv4
}

// New builds a Cache over opts.Store. Unless SkipFlush is set the whole
// backing database is flushed first.
func New(opts Options) (Cache, error) {
	return newCache(opts)
}
