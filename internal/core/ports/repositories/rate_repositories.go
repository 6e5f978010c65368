package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/chatledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RateSource is the external FX service. Only the rate provider calls it.
type RateSource interface {
	// FetchRate returns how many units of target one unit of source buys on day.
	FetchRate(ctx context.Context, source, target string, day time.Time) (decimal.Decimal, error)
}

// RateCache stores rate buckets. Implementations must be safe for concurrent use
// and must only ever hold positive rates.
type RateCache interface {
	Get(ctx context.Context, key domain.RateKey) (decimal.Decimal, bool)
	Set(ctx context.Context, key domain.RateKey, rate decimal.Decimal, expiresAt time.Time)
}
