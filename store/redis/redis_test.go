package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/unkn0wn-root/replaycache/store"
	"github.com/unkn0wn-root/replaycache/store/local"
)

// stubClient answers go-redis commands from an in-process store.
type stubClient struct {
	data   *local.Store
	fail   error
	closed int
}

var _ Commands = (*stubClient)(nil)

func newStubClient() *stubClient { return &stubClient{data: local.New()} }

func (c *stubClient) Get(ctx context.Context, key string) *goredis.StringCmd {
	if c.fail != nil {
		return goredis.NewStringResult("", c.fail)
	}
	v, ok, err := c.data.Get(ctx, key)
	if err == nil && !ok {
		err = goredis.Nil
	}
	return goredis.NewStringResult(string(v), err)
}

func (c *stubClient) Set(ctx context.Context, key string, value interface{}, _ time.Duration) *goredis.StatusCmd {
	if c.fail != nil {
		return goredis.NewStatusResult("", c.fail)
	}
	return goredis.NewStatusResult("OK", c.data.Set(ctx, key, value))
}

func (c *stubClient) Incr(ctx context.Context, key string) *goredis.IntCmd {
	if c.fail != nil {
		return goredis.NewIntResult(0, c.fail)
	}
	return goredis.NewIntResult(c.data.Incr(ctx, key))
}

func (c *stubClient) RPush(ctx context.Context, key string, values ...interface{}) *goredis.IntCmd {
	if c.fail != nil {
		return goredis.NewIntResult(0, c.fail)
	}
	strs := make([]string, len(values))
	for i, v := range values {
		b, err := store.Encode(v)
		if err != nil {
			return goredis.NewIntResult(0, err)
		}
		strs[i] = string(b)
	}
	if err := c.data.RPush(ctx, key, strs...); err != nil {
		return goredis.NewIntResult(0, err)
	}
	all, err := c.data.LRange(ctx, key, 0, -1)
	return goredis.NewIntResult(int64(len(all)), err)
}

func (c *stubClient) LRange(ctx context.Context, key string, start, stop int64) *goredis.StringSliceCmd {
	if c.fail != nil {
		return goredis.NewStringSliceResult(nil, c.fail)
	}
	return goredis.NewStringSliceResult(c.data.LRange(ctx, key, start, stop))
}

func (c *stubClient) Exists(ctx context.Context, keys ...string) *goredis.IntCmd {
	if c.fail != nil {
		return goredis.NewIntResult(0, c.fail)
	}
	var n int64
	for _, k := range keys {
		if ok, _ := c.data.Exists(ctx, k); ok {
			n++
		}
	}
	return goredis.NewIntResult(n, nil)
}

func (c *stubClient) FlushDB(ctx context.Context) *goredis.StatusCmd {
	if c.fail != nil {
		return goredis.NewStatusResult("", c.fail)
	}
	return goredis.NewStatusResult("OK", c.data.FlushDB(ctx))
}

func (c *stubClient) Close() error {
	c.closed++
	if c.closed > 1 {
		return goredis.ErrClosed
	}
	return nil
}

func TestNewRequiresClient(t *testing.T) {
	if _, err := New(Config{}); !errors.Is(err, ErrNilClient) {
		t.Fatalf("want ErrNilClient, got %v", err)
	}
}

func TestStoreOperationsWithStubClient(t *testing.T) {
	ctx := context.Background()
	client := newStubClient()
	s, err := New(Config{Client: client})
	if err != nil {
		t.Fatal(err)
	}

	if _, ok, err := s.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("miss expected: ok=%v err=%v", ok, err)
	}
	if err := s.Set(ctx, "n", 42); err != nil {
		t.Fatalf("set: %v", err)
	}
	if v, ok, err := s.Get(ctx, "n"); err != nil || !ok || string(v) != "42" {
		t.Fatalf("get: v=%q ok=%v err=%v", v, ok, err)
	}

	if n, err := s.Incr(ctx, "calls"); err != nil || n != 1 {
		t.Fatalf("incr: n=%d err=%v", n, err)
	}
	if ok, err := s.Exists(ctx, "calls"); err != nil || !ok {
		t.Fatalf("exists: ok=%v err=%v", ok, err)
	}

	if err := s.RPush(ctx, "l"); err != nil { // no-op path
		t.Fatalf("rpush empty: %v", err)
	}
	if ok, _ := s.Exists(ctx, "l"); ok {
		t.Fatalf("empty rpush must not create the list")
	}
	if err := s.RPush(ctx, "l", "a", "b"); err != nil {
		t.Fatalf("rpush: %v", err)
	}
	got, err := s.LRange(ctx, "l", 0, -1)
	if err != nil || len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("lrange: got=%v err=%v", got, err)
	}

	if err := s.FlushDB(ctx); err != nil {
		t.Fatalf("flushdb: %v", err)
	}
	if ok, _ := s.Exists(ctx, "n"); ok {
		t.Fatalf("expected flushed key to be gone")
	}
}

func TestStorePropagatesTransportErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("connection refused")
	client := newStubClient()
	client.fail = boom
	s, _ := New(Config{Client: client})

	if _, _, err := s.Get(ctx, "k"); !errors.Is(err, boom) {
		t.Fatalf("get: want boom, got %v", err)
	}
	if err := s.Set(ctx, "k", "v"); !errors.Is(err, boom) {
		t.Fatalf("set: want boom, got %v", err)
	}
	if _, err := s.Incr(ctx, "k"); !errors.Is(err, boom) {
		t.Fatalf("incr: want boom, got %v", err)
	}
	if err := s.RPush(ctx, "k", "v"); !errors.Is(err, boom) {
		t.Fatalf("rpush: want boom, got %v", err)
	}
	if _, err := s.LRange(ctx, "k", 0, -1); !errors.Is(err, boom) {
		t.Fatalf("lrange: want boom, got %v", err)
	}
	if _, err := s.Exists(ctx, "k"); !errors.Is(err, boom) {
		t.Fatalf("exists: want boom, got %v", err)
	}
	if err := s.FlushDB(ctx); !errors.Is(err, boom) {
		t.Fatalf("flushdb: want boom, got %v", err)
	}
}

func TestCloseOnlyWhenOwned(t *testing.T) {
	ctx := context.Background()

	shared := newStubClient()
	s, _ := New(Config{Client: shared})
	if err := s.Close(ctx); err != nil {
		t.Fatal(err)
	}
	if shared.closed != 0 {
		t.Fatalf("shared client must not be closed, closed=%d", shared.closed)
	}

	owned := newStubClient()
	s, _ = New(Config{Client: owned, CloseClient: true})
	if err := s.Close(ctx); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(ctx); err != nil {
		t.Fatalf("second close should swallow ErrClosed, got %v", err)
	}
	if owned.closed != 2 {
		t.Fatalf("owned client close count=%d want 2", owned.closed)
	}
}
