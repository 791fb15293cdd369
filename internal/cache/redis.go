package cache

import (
	"context"
	"time"

	"booksim/internal/config"
	"booksim/internal/logging"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// InitRedis connects when REDIS_ADDR is set. Without an address every helper
// below is a no-op.
func InitRedis(ctx context.Context, cfg *config.Config) error {
	logger := logging.Component("redis")
	if cfg.RedisAddr == "" {
		logger.Info().Msg("REDIS_ADDR not set, cache disabled")
		return nil
	}

	c := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return err
	}

	client = c
	logger.Info().Str("addr", cfg.RedisAddr).Msg("connected")
	return nil
}

// Use installs an existing client. nil disables the cache.
func Use(c *redis.Client) {
	client = c
}

func Enabled() bool {
	return client != nil
}

// GetJSON reads key and, when present, decodes it into dest.
func GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if client == nil {
		return false, nil
	}

	val, err := client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal(val, dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON stores value as JSON with the given TTL in seconds.
func SetJSON(ctx context.Context, key string, value any, ttlSeconds int) error {
	if client == nil {
		return nil
	}

	b, err := json.Marshal(value)
	if err != nil {
		return err
	}

	ttl := time.Duration(ttlSeconds) * time.Second
	return client.Set(ctx, key, b, ttl).Err()
}

func Close() error {
	if client == nil {
		return nil
	}
	err := client.Close()
	client = nil
	return err
}
