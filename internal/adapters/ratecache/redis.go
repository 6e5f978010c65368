package ratecache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/chatledger/internal/core/domain"
	portsrepo "github.com/SscSPs/chatledger/internal/core/ports/repositories"
	"github.com/SscSPs/chatledger/internal/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const keyPrefix = "chatledger:rate:"

// RedisCache shares rate buckets between several instances. Cache failures
// are logged and treated as misses so the FX source stays reachable.
type RedisCache struct {
	client redis.UniversalClient
}

// NewRedisCache parses a redis:// URL, connects and pings the server.
func NewRedisCache(ctx context.Context, url string) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return NewRedisCacheFromClient(client), nil
}

// NewRedisCacheFromClient wraps an existing client without pinging it.
func NewRedisCacheFromClient(client redis.UniversalClient) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, key domain.RateKey) (decimal.Decimal, bool) {
	val, err := c.client.Get(ctx, keyPrefix+key.String()).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			middleware.GetLoggerFromCtx(ctx).Warn("Rate cache read failed", slog.String("bucket", key.String()), slog.String("error", err.Error()))
		}
		return decimal.Zero, false
	}
	rate, err := decimal.NewFromString(val)
	if err != nil || !rate.IsPositive() {
		return decimal.Zero, false
	}
	return rate, true
}

func (c *RedisCache) Set(ctx context.Context, key domain.RateKey, rate decimal.Decimal, expiresAt time.Time) {
	if !rate.IsPositive() {
		return
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return
	}
	if err := c.client.Set(ctx, keyPrefix+key.String(), rate.String(), ttl).Err(); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Rate cache write failed", slog.String("bucket", key.String()), slog.String("error", err.Error()))
	}
}

// Close releases the underlying connection pool.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

var _ portsrepo.RateCache = (*RedisCache)(nil)
