package domain

import (
	"fmt"
	"time"
)

// RateKey identifies a cached rate bucket: a currency pair on a UTC calendar day.
type RateKey struct {
	Source string
	Target string
	Day    time.Time
}

// NewRateKey builds the bucket key for a pair at instant at.
func NewRateKey(source, target string, at time.Time) RateKey {
	return RateKey{
		Source: NormalizeCurrencyCode(source),
		Target: NormalizeCurrencyCode(target),
		Day:    StartOfDay(at),
	}
}

func (k RateKey) String() string {
	return fmt.Sprintf("%s:%s:%s", k.Source, k.Target, k.Day.Format(time.DateOnly))
}

// Expiry is the end of the bucket's calendar day.
func (k RateKey) Expiry() time.Time {
	return k.Day.Add(24 * time.Hour)
}
