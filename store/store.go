// Package store defines the key-value store abstraction used by replaycache.
//
// A Client only needs plain string commands (GET, SET, FLUSHDB). A Ledger
// additionally supports counters and lists (INCR, RPUSH, LRANGE, EXISTS) and
// is what the cache needs to record call counts and call history. Whether a
// configured Client is also a Ledger is decided once, when the cache is built.
//
// Values passed to Set are encoded the way Redis encodes command arguments
// (see Encode), so Get returns the same bytes regardless of the adapter.
package store

import (
	"context"
	"errors"
)

var (
	// ErrWrongType mirrors Redis WRONGTYPE: a string command hit a list or
	// the other way around.
	ErrWrongType = errors.New("store: operation against a key holding the wrong kind of value")
	// ErrNotInteger mirrors the Redis INCR error for non-integer values.
	ErrNotInteger = errors.New("store: value is not an integer or out of range")
	// ErrUnsupportedValue is returned by Encode for types Redis cannot take
	// as a command argument.
	ErrUnsupportedValue = errors.New("store: unsupported value type")
)

// Client is a minimal string store.
type Client interface {
	// Get returns (value, true, nil) on hit; (nil, false, nil) on miss.
	// If an IO/remote error happens, return (nil, false, err).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key without expiry. value is any type Encode accepts.
	Set(ctx context.Context, key string, value any) error

	// FlushDB removes every key of the selected database.
	FlushDB(ctx context.Context) error

	// Close releases resources.
	Close(ctx context.Context) error
}

// Ledger is a Client that can also keep counters and append-only lists.
type Ledger interface {
	Client

	// Incr atomically increments the integer at key (missing => 0) and returns the new value.
	Incr(ctx context.Context, key string) (int64, error)

	// RPush appends values to the list at key, creating it when missing.
	RPush(ctx context.Context, key string, values ...string) error

	// LRange returns list elements between start and stop inclusive.
	// Negative indexes count from the tail (-1 is the last element).
	LRange(ctx context.Context, key string, start, stop int64) ([]string, error)

	// Exists reports whether key holds any value.
	Exists(ctx context.Context, key string) (bool, error)
}
