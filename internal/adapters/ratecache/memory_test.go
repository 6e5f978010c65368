package ratecache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/chatledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMemoryCache_SetGet(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	c := NewMemoryCache()
	c.now = func() time.Time { return now }

	key := domain.NewRateKey("usd", "EUR", now)
	c.Set(ctx, key, decimal.RequireFromString("0.92"), key.Expiry())

	rate, ok := c.Get(ctx, key)
	assert.True(t, ok)
	assert.True(t, rate.Equal(decimal.RequireFromString("0.92")))

	_, ok = c.Get(ctx, domain.NewRateKey("USD", "EUR", now.AddDate(0, 0, 1)))
	assert.False(t, ok, "different day is a different bucket")
}

func TestMemoryCache_RejectsNonPositiveRates(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	key := domain.NewRateKey("USD", "EUR", time.Now())

	c.Set(ctx, key, decimal.Zero, time.Now().Add(time.Hour))
	c.Set(ctx, key, decimal.NewFromInt(-1), time.Now().Add(time.Hour))

	_, ok := c.Get(ctx, key)
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 23, 0, 0, 0, time.UTC)
	c := NewMemoryCache()
	c.now = func() time.Time { return now }

	key := domain.NewRateKey("USD", "EUR", now)
	c.Set(ctx, key, decimal.NewFromInt(1), key.Expiry())
	assert.Equal(t, 1, c.Len())

	now = key.Expiry()
	_, ok := c.Get(ctx, key)
	assert.False(t, ok)

	c.Set(ctx, key, decimal.NewFromInt(1), now.Add(time.Minute))
	now = now.Add(2 * time.Minute)
	assert.Equal(t, 1, c.Sweep())
	assert.Equal(t, 0, c.Len())
}

func TestMemoryCache_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	key := domain.NewRateKey("USD", "EUR", time.Now())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			c.Set(ctx, key, decimal.RequireFromString("0.9"), time.Now().Add(time.Hour))
		}()
		go func() {
			defer wg.Done()
			if rate, ok := c.Get(ctx, key); ok {
				assert.True(t, rate.IsPositive())
			}
		}()
	}
	wg.Wait()
}
