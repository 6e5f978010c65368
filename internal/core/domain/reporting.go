package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CurrencyBreakdown aggregates transactions recorded in one original currency.
type CurrencyBreakdown struct {
	Currency  string          `json:"currency"`
	Count     int             `json:"count"`
	Original  decimal.Decimal `json:"original"`  // sum in Currency
	Converted decimal.Decimal `json:"converted"` // sum in the report currency
}

// DayBreakdown aggregates transactions by UTC calendar day.
type DayBreakdown struct {
	Day       time.Time       `json:"day"`
	Count     int             `json:"count"`
	Converted decimal.Decimal `json:"converted"`
}

// ReportResult is the outcome of a report command.
type ReportResult struct {
	Scope            ReportScope         `json:"scope"`
	From             time.Time           `json:"from"`
	To               time.Time           `json:"to"`
	WindowDays       int                 `json:"windowDays"`
	BaseCurrency     string              `json:"baseCurrency"`
	Currency         string              `json:"currency"`
	Total            decimal.Decimal     `json:"total"`
	TransactionCount int                 `json:"transactionCount"`
	ByCurrency       []CurrencyBreakdown `json:"byCurrency"`
	ByDay            []DayBreakdown      `json:"byDay"`
	// UsedLiveRate is true when stored base-currency values were re-converted
	// with today's rate instead of the rate captured at record time.
	UsedLiveRate bool            `json:"usedLiveRate"`
	LiveRate     decimal.Decimal `json:"liveRate"`
}

// IsEmpty reports whether no transaction fell inside the window.
func (r ReportResult) IsEmpty() bool {
	return r.TransactionCount == 0
}
