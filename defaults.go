package replaycache

import "github.com/google/uuid"

// DefaultStoreMethodID is the stable identifier under which Cache.Store
// calls are counted and recorded.
const DefaultStoreMethodID = "Cache.store"

// newKey returns a random UUIDv4 string.
func newKey() string { return uuid.NewString() }

// coalesce returns def when v is the zero value of T - otherwise v.
func coalesce[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
