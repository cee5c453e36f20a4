// Package config loads settings for the replaycache command from an
// optional YAML file and REPLAYCACHE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/unkn0wn-root/replaycache"
)

const (
	EnvPrefix = "REPLAYCACHE"

	BackendRedis    = "redis"
	BackendLocal    = "local"
	BackendBigcache = "bigcache"
)

// Config stores all configuration of the command.
type Config struct {
	Redis RedisConfig `mapstructure:"redis"`
	Cache CacheConfig `mapstructure:"cache"`
	Log   LogConfig   `mapstructure:"log"`
}

// RedisConfig stores connection details, used when Cache.Backend is "redis".
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type CacheConfig struct {
	Backend       string `mapstructure:"backend"`         // "redis", "local", "bigcache"
	Flush         bool   `mapstructure:"flush"`           // FLUSHDB when the cache is built
	StoreMethodID string `mapstructure:"store_method_id"` // key prefix for Store history
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // "json" or "console"
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.username", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("cache.backend", BackendRedis)
	v.SetDefault("cache.flush", true)
	v.SetDefault("cache.store_method_id", replaycache.DefaultStoreMethodID)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// Load reads configPath when given, otherwise looks for replaycache.yaml in
// the working directory; a missing default file is not an error.
// Environment variables override file values, e.g. REPLAYCACHE_REDIS_ADDR.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("replaycache")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case BackendRedis, BackendLocal, BackendBigcache:
	default:
		return fmt.Errorf("config: unknown cache.backend %q", c.Cache.Backend)
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: log.level: %w", err)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: unknown log.format %q", c.Log.Format)
	}
	if c.Cache.Backend == BackendRedis && c.Redis.Addr == "" {
		return errors.New("config: redis.addr is required for the redis backend")
	}
	return nil
}

// ZapLevel returns the parsed log level; Validate guarantees it parses.
func (c *Config) ZapLevel() zapcore.Level {
	l, err := zapcore.ParseLevel(c.Log.Level)
	if err != nil {
		return zapcore.InfoLevel
	}
	return l
}
