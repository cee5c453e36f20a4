// Package local is an in-process store.Ledger. It keeps strings and lists in
// a map guarded by a single mutex, so every command is atomic. Useful for
// tests and single-process tools that do not want a Redis server.
package local

import (
	"context"
	"strconv"
	"sync"

	"github.com/unkn0wn-root/replaycache/store"
)

type entry struct {
	str  []byte
	list []string
	// isList distinguishes an empty string from a list.
	isList bool
}

// Store keeps values in-process.
type Store struct {
	mu sync.RWMutex
	m  map[string]entry
}

var _ store.Ledger = (*Store)(nil)

func New() *Store {
	return &Store{m: make(map[string]entry)}
}

func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	e, ok := s.m[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if e.isList {
		return nil, false, store.ErrWrongType
	}
	return append([]byte(nil), e.str...), true, nil
}

func (s *Store) Set(_ context.Context, key string, value any) error {
	b, err := store.Encode(value)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.m[key] = entry{str: b}
	s.mu.Unlock()
	return nil
}

func (s *Store) Incr(_ context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.m[key]
	if ok && e.isList {
		return 0, store.ErrWrongType
	}
	var n int64
	if ok {
		v, err := strconv.ParseInt(string(e.str), 10, 64)
		if err != nil {
			return 0, store.ErrNotInteger
		}
		n = v
	}
	n++
	s.m[key] = entry{str: strconv.AppendInt(nil, n, 10)}
	return n, nil
}

func (s *Store) RPush(_ context.Context, key string, values ...string) error {
	if len(values) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.m[key]
	if ok && !e.isList {
		return store.ErrWrongType
	}
	e.isList = true
	e.list = append(e.list, values...)
	s.m[key] = e
	return nil
}

func (s *Store) LRange(_ context.Context, key string, start, stop int64) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.m[key]
	if !ok {
		return []string{}, nil
	}
	if !e.isList {
		return nil, store.ErrWrongType
	}
	lo, hi := store.Window(len(e.list), start, stop)
	out := make([]string, hi-lo)
	copy(out, e.list[lo:hi])
	return out, nil
}

func (s *Store) Exists(_ context.Context, key string) (bool, error) {
	s.mu.RLock()
	_, ok := s.m[key]
	s.mu.RUnlock()
	return ok, nil
}

// FlushDB drops every key.
func (s *Store) FlushDB(_ context.Context) error {
	s.mu.Lock()
	s.m = make(map[string]entry)
	s.mu.Unlock()
	return nil
}

// Close is a no-op; the data stays readable.
func (s *Store) Close(_ context.Context) error { return nil }

// Len returns the number of keys held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}
