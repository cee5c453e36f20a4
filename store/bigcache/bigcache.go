// Package bigcache is a store.Ledger on top of allegro/bigcache.
//
// Every entry carries a one byte kind tag; lists are msgpack-encoded string
// slices. Read-modify-write commands (INCR, RPUSH) hold a store-wide mutex so
// they stay atomic. Entries older than LifeWindow are dropped by bigcache.
//
// Leave HardMaxCacheSizeMB at 0 when call history matters: once the hard cap
// is reached bigcache evicts the oldest entries, and those can be a method's
// counter or its inputs/outputs lists.
package bigcache

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	bc "github.com/allegro/bigcache/v3"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/unkn0wn-root/replaycache/store"
)

const (
	kindString byte = 's'
	kindList   byte = 'l'

	// effectively "never": bigcache has no per-entry TTL switch.
	defaultLifeWindow = 100 * 365 * 24 * time.Hour

	// bigcache preallocates MaxEntriesInWindow*MaxEntrySize bytes; its own
	// defaults come to ~300MB.
	defaultEntriesInWindow = 1024
	defaultMaxEntrySize    = 256
)

var errCorrupt = errors.New("bigcache store: corrupt entry")

type Store struct {
	mu sync.Mutex
	c  *bc.BigCache
}

var _ store.Ledger = (*Store)(nil)

type Config struct {
	LifeWindow         time.Duration // 0 => no practical expiry
	Shards             int           // power of two; 0 => bigcache default
	MaxEntriesInWindow int           // sizing hint; 0 => 1024
	MaxEntrySize       int           // sizing hint in bytes; 0 => 256
	HardMaxCacheSizeMB int           // ~ memory limit; 0 = unlimited. A cap may evict history.
}

func New(cfg Config) (*Store, error) {
	life := cfg.LifeWindow
	if life <= 0 {
		life = defaultLifeWindow
	}
	conf := bc.DefaultConfig(life)
	conf.CleanWindow = 0
	conf.Verbose = false
	conf.MaxEntriesInWindow = defaultEntriesInWindow
	conf.MaxEntrySize = defaultMaxEntrySize
	if cfg.Shards > 0 {
		conf.Shards = cfg.Shards
	}
	if cfg.MaxEntriesInWindow > 0 {
		conf.MaxEntriesInWindow = cfg.MaxEntriesInWindow
	}
	if cfg.MaxEntrySize > 0 {
		conf.MaxEntrySize = cfg.MaxEntrySize
	}
	if cfg.HardMaxCacheSizeMB > 0 {
		conf.HardMaxCacheSize = cfg.HardMaxCacheSizeMB
	}
	c, err := bc.New(context.Background(), conf)
	if err != nil {
		return nil, err
	}
	return &Store{c: c}, nil
}

func (s *Store) read(key string) (kind byte, payload []byte, ok bool, err error) {
	b, err := s.c.Get(key)
	if errors.Is(err, bc.ErrEntryNotFound) {
		return 0, nil, false, nil
	}
	if err != nil {
		return 0, nil, false, err
	}
	if len(b) == 0 {
		return 0, nil, false, errCorrupt
	}
	return b[0], b[1:], true, nil
}

func (s *Store) write(key string, kind byte, payload []byte) error {
	b := make([]byte, 0, len(payload)+1)
	b = append(b, kind)
	b = append(b, payload...)
	return s.c.Set(key, b)
}

func (s *Store) readList(key string) ([]string, error) {
	kind, payload, ok, err := s.read(key)
	if err != nil || !ok {
		return nil, err
	}
	if kind != kindList {
		return nil, store.ErrWrongType
	}
	var list []string
	if err := msgpack.Unmarshal(payload, &list); err != nil {
		return nil, errCorrupt
	}
	return list, nil
}

func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	kind, payload, ok, err := s.read(key)
	if err != nil || !ok {
		return nil, false, err
	}
	if kind != kindString {
		return nil, false, store.ErrWrongType
	}
	return payload, true, nil
}

func (s *Store) Set(_ context.Context, key string, value any) error {
	b, err := store.Encode(value)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(key, kindString, b)
}

func (s *Store) Incr(_ context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kind, payload, ok, err := s.read(key)
	if err != nil {
		return 0, err
	}
	var n int64
	if ok {
		if kind != kindString {
			return 0, store.ErrWrongType
		}
		if n, err = strconv.ParseInt(string(payload), 10, 64); err != nil {
			return 0, store.ErrNotInteger
		}
	}
	n++
	if err := s.write(key, kindString, strconv.AppendInt(nil, n, 10)); err != nil {
		return 0, err
	}
	return n, nil
}

func (s *Store) RPush(_ context.Context, key string, values ...string) error {
	if len(values) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	list, err := s.readList(key)
	if err != nil {
		return err
	}
	list = append(list, values...)
	b, err := msgpack.Marshal(list)
	if err != nil {
		return err
	}
	return s.write(key, kindList, b)
}

func (s *Store) LRange(_ context.Context, key string, start, stop int64) ([]string, error) {
	list, err := s.readList(key)
	if err != nil {
		return nil, err
	}
	lo, hi := store.Window(len(list), start, stop)
	out := make([]string, hi-lo)
	copy(out, list[lo:hi])
	return out, nil
}

func (s *Store) Exists(_ context.Context, key string) (bool, error) {
	_, _, ok, err := s.read(key)
	return ok, err
}

func (s *Store) FlushDB(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Reset()
}

func (s *Store) Close(_ context.Context) error {
	return s.c.Close()
}

// Len returns the number of entries held by bigcache.
func (s *Store) Len() int { return s.c.Len() }
