package replaycache

import (
	"context"
	"fmt"
	"strconv"

	"github.com/unkn0wn-root/replaycache/store"
)

type cache struct {
	client  store.Client
	rec     *Recorder // nil when client is not a store.Ledger
	log     Logger
	hooks   Hooks
	storeID string
	newKey  func() string

	store Func[any, string] // storeValue wrapped with history (outer) and counting (inner)
}

func newCache(opts Options) (*cache, error) {
	if opts.Store == nil {
		return nil, ErrNilStore
	}

	c := &cache{client: opts.Store}

	// defaults
	c.log = coalesce[Logger](opts.Logger, NopLogger{})
	c.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	c.storeID = coalesce(opts.StoreMethodID, DefaultStoreMethodID)
	c.newKey = opts.NewKey
	if c.newKey == nil {
		c.newKey = newKey
	}

	// capability is fixed here; wrappers never re-check the store type
	if ledger, ok := opts.Store.(store.Ledger); ok {
		c.rec = NewRecorder(ledger, RecorderOptions{Logger: c.log, Hooks: c.hooks})
	} else {
		storeType := fmt.Sprintf("%T", opts.Store)
		c.log.Warn("store cannot keep counters or lists; instrumentation disabled", Fields{"store": storeType})
		c.hooks.InstrumentationDisabled(storeType)
	}
	c.store = CallHistory(c.rec, c.storeID, CountCalls[any, string](c.rec, c.storeID, c.storeValue))

	if !opts.SkipFlush {
		if err := c.client.FlushDB(context.Background()); err != nil {
			return nil, fmt.Errorf("replaycache: flush: %w", err)
		}
		c.log.Info("flushed backing database", Fields{"store": fmt.Sprintf("%T", opts.Store)})
		c.hooks.Flushed()
	}

	return c, nil
}

func (c *cache) Store(ctx context.Context, data any) (string, error) {
	return c.store(ctx, data)
}

func (c *cache) storeValue(ctx context.Context, data any) (string, error) {
	key := c.newKey()
	if err := c.client.Set(ctx, key, data); err != nil {
		return "", err
	}
	return key, nil
}

func (c *cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return c.client.Get(ctx, key)
}

func (c *cache) GetStr(ctx context.Context, key string) (string, bool, error) {
	return GetAs(ctx, c, key, func(b []byte) (string, error) { return string(b), nil })
}

func (c *cache) GetInt(ctx context.Context, key string) (int64, bool, error) {
	return GetAs(ctx, c, key, func(b []byte) (int64, error) {
		return strconv.ParseInt(string(b), 10, 64)
	})
}

func (c *cache) StoreMethod() *Method {
	return &Method{id: c.storeID, owner: c}
}

func (c *cache) Instrumented() bool { return c.rec.Enabled() }

func (c *cache) Close(ctx context.Context) error {
	return c.client.Close(ctx)
}
