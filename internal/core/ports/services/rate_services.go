package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// RateProviderSvc answers "how many units of target for one unit of source at a given day".
type RateProviderSvc interface {
	// GetRate returns a strictly positive rate, or an error wrapping
	// apperrors.ErrRateUnavailable. Same-currency pairs always yield 1.
	GetRate(ctx context.Context, source, target string, at time.Time) (decimal.Decimal, error)
}
