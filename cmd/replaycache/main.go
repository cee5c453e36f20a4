// Command replaycache stores a few sample values, reads them back and prints
// the recorded history of Cache.store.
//
// Settings come from ./replaycache.yaml (or the file named by
// REPLAYCACHE_CONFIG) and REPLAYCACHE_* environment variables.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/unkn0wn-root/replaycache"
	"github.com/unkn0wn-root/replaycache/internal/config"
	zaplog "github.com/unkn0wn-root/replaycache/log/zap"
	"github.com/unkn0wn-root/replaycache/store"
	bigcachestore "github.com/unkn0wn-root/replaycache/store/bigcache"
	"github.com/unkn0wn-root/replaycache/store/local"
	redisstore "github.com/unkn0wn-root/replaycache/store/redis"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "replaycache:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(os.Getenv(config.EnvPrefix + "_CONFIG"))
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}

	cache, err := replaycache.New(replaycache.Options{
		Store:         st,
		StoreMethodID: cfg.Cache.StoreMethodID,
		SkipFlush:     !cfg.Cache.Flush,
		Logger:        zaplog.ZapLogger{L: logger},
	})
	if err != nil {
		_ = st.Close(ctx)
		return err
	}
	defer cache.Close(ctx)

	samples := []any{"foo", 42, "bar", []byte("baz"), 3.14}
	keys := make([]string, 0, len(samples))
	for _, v := range samples {
		k, err := cache.Store(ctx, v)
		if err != nil {
			return fmt.Errorf("store %v: %w", v, err)
		}
		keys = append(keys, k)
	}

	raw, _, err := cache.Get(ctx, keys[0])
	if err != nil {
		return err
	}
	fmt.Printf("%s -> %q (raw)\n", keys[0], raw)

	s, _, err := cache.GetStr(ctx, keys[2])
	if err != nil {
		return err
	}
	fmt.Printf("%s -> %q (str)\n", keys[2], s)

	n, _, err := cache.GetInt(ctx, keys[1])
	if err != nil {
		return err
	}
	fmt.Printf("%s -> %d (int)\n", keys[1], n)

	if _, ok, err := cache.Get(ctx, "missing-key"); err != nil {
		return err
	} else if !ok {
		fmt.Println("missing-key -> <none>")
	}

	fmt.Println()
	return replaycache.Replay(ctx, cache.StoreMethod())
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	zc := zap.NewDevelopmentConfig()
	if cfg.Log.Format == "json" {
		zc = zap.NewProductionConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(cfg.ZapLevel())
	return zc.Build()
}

func openStore(ctx context.Context, cfg *config.Config) (store.Client, error) {
	switch cfg.Cache.Backend {
	case config.BackendLocal:
		return local.New(), nil
	case config.BackendBigcache:
		s, err := bigcachestore.New(bigcachestore.Config{})
		if err != nil {
			return nil, fmt.Errorf("bigcache: %w", err)
		}
		return s, nil
	default:
		s, err := redisstore.Dial(ctx, redisstore.DialConfig{
			Addr:     cfg.Redis.Addr,
			Username: cfg.Redis.Username,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}
