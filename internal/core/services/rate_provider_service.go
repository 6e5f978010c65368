package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/chatledger/internal/apperrors"
	"github.com/SscSPs/chatledger/internal/core/domain"
	portsrepo "github.com/SscSPs/chatledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/chatledger/internal/core/ports/services"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

// DefaultRateFallbackTTL bounds how long a bucket for a day that has already
// ended stays cached.
const DefaultRateFallbackTTL = time.Hour

// rateProviderService is the only caller of the external FX source.
type rateProviderService struct {
	BaseService
	source      portsrepo.RateSource
	cache       portsrepo.RateCache
	fallbackTTL time.Duration
	group       singleflight.Group
}

// RateProviderOption configures the rate provider.
type RateProviderOption func(*rateProviderService)

// WithRateFallbackTTL sets the lifetime of buckets for past days.
func WithRateFallbackTTL(ttl time.Duration) RateProviderOption {
	return func(s *rateProviderService) {
		if ttl > 0 {
			s.fallbackTTL = ttl
		}
	}
}

// WithRateClock replaces the clock used to compute bucket expiry.
func WithRateClock(now func() time.Time) RateProviderOption {
	return func(s *rateProviderService) {
		s.Now = now
	}
}

// NewRateProviderService creates a rate provider backed by source and cache.
func NewRateProviderService(source portsrepo.RateSource, cache portsrepo.RateCache, opts ...RateProviderOption) portssvc.RateProviderSvc {
	s := &rateProviderService{
		source:      source,
		cache:       cache,
		fallbackTTL: DefaultRateFallbackTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetRate returns the rate for one unit of source expressed in target on the
// UTC day containing at.
func (s *rateProviderService) GetRate(ctx context.Context, source, target string, at time.Time) (decimal.Decimal, error) {
	source = domain.NormalizeCurrencyCode(source)
	target = domain.NormalizeCurrencyCode(target)
	if source == target {
		return decimal.NewFromInt(1), nil
	}
	if !domain.IsWellFormedCurrency(source) || !domain.IsWellFormedCurrency(target) {
		return decimal.Zero, fmt.Errorf("%w: %w: pair %s/%s", apperrors.ErrRateUnavailable, apperrors.ErrInvalidCurrency, source, target)
	}

	key := domain.NewRateKey(source, target, at)
	if rate, ok := s.cache.Get(ctx, key); ok && rate.IsPositive() {
		s.LogDebug(ctx, "Rate served from cache", slog.String("bucket", key.String()))
		return rate, nil
	}

	if err := ctx.Err(); err != nil {
		return decimal.Zero, fmt.Errorf("%w: %w", apperrors.ErrRateUnavailable, err)
	}

	// Concurrent misses on the same bucket share one upstream call. The call
	// outlives a cancelled caller; the source's own timeout bounds it.
	fetchCtx := context.WithoutCancel(ctx)
	ch := s.group.DoChan(key.String(), func() (any, error) {
		return s.fetch(fetchCtx, key)
	})
	select {
	case <-ctx.Done():
		return decimal.Zero, fmt.Errorf("%w: %w", apperrors.ErrRateUnavailable, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return decimal.Zero, res.Err
		}
		return res.Val.(decimal.Decimal), nil
	}
}

func (s *rateProviderService) fetch(ctx context.Context, key domain.RateKey) (decimal.Decimal, error) {
	rate, err := s.source.FetchRate(ctx, key.Source, key.Target, key.Day)
	if err != nil {
		s.LogError(ctx, err, "FX source failed", slog.String("bucket", key.String()))
		return decimal.Zero, fmt.Errorf("%w: %s: %w", apperrors.ErrRateUnavailable, key, err)
	}
	if !rate.IsPositive() {
		s.LogError(ctx, fmt.Errorf("non-positive rate %s", rate), "FX source returned unusable rate", slog.String("bucket", key.String()))
		return decimal.Zero, fmt.Errorf("%w: %s: non-positive rate %s", apperrors.ErrRateUnavailable, key, rate)
	}

	s.cache.Set(ctx, key, rate, s.expiry(key))
	s.LogDebug(ctx, "Rate fetched", slog.String("bucket", key.String()), slog.String("rate", rate.String()))
	return rate, nil
}

// expiry keeps a bucket until its calendar day ends. Buckets for days that
// already ended use the fallback TTL.
func (s *rateProviderService) expiry(key domain.RateKey) time.Time {
	now := s.CurrentTime()
	if end := key.Expiry(); end.After(now) {
		return end
	}
	return now.Add(s.fallbackTTL)
}

var _ portssvc.RateProviderSvc = (*rateProviderService)(nil)
