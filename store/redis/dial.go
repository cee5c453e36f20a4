package redis

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
)

// DialConfig holds connection settings for Dial.
type DialConfig struct {
	Addr     string
	Username string
	Password string
	DB       int
}

// Dial opens a client, checks it with PING and returns a store that owns it.
func Dial(ctx context.Context, cfg DialConfig) (*Redis, error) {
	cli := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := cli.Ping(ctx).Err(); err != nil {
		_ = cli.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return New(Config{Client: cli, CloseClient: true})
}
