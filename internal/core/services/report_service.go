package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/SscSPs/chatledger/internal/apperrors"
	"github.com/SscSPs/chatledger/internal/core/domain"
	portsrepo "github.com/SscSPs/chatledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/chatledger/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// reportService aggregates ledger transactions for a user or an organization.
type reportService struct {
	BaseService
	txnRepo portsrepo.TransactionReader
	rates   portssvc.RateProviderSvc
}

// NewReportService creates a new report engine.
func NewReportService(txnRepo portsrepo.TransactionReader, rates portssvc.RateProviderSvc) portssvc.ReportSvc {
	return &reportService{
		txnRepo: txnRepo,
		rates:   rates,
	}
}

// BuildReport sums the transactions created in the last cmd.WindowDays days.
//
// Stored values are already in the organization's base currency. When the
// report asks for another currency they are re-converted with the rate for
// now, and the result says so through UsedLiveRate.
func (s *reportService) BuildReport(ctx context.Context, user domain.User, org domain.Organization, cmd domain.ReportCommand, now time.Time) (*domain.ReportResult, error) {
	scope := cmd.Scope
	if scope == "" {
		scope = domain.ScopeMine
	}
	if scope == domain.ScopeOrg && !user.IsAdmin {
		s.LogWarn(ctx, "Non-admin requested organization report", slog.Int64("user_id", user.UserID))
		return nil, fmt.Errorf("%w: organization reports require an admin", apperrors.ErrForbidden)
	}

	days := cmd.WindowDays
	if days <= 0 {
		days = domain.DefaultReportWindowDays
	}
	now = now.UTC()
	base := domain.NormalizeCurrencyCode(org.Currency)
	target := base
	if code := domain.NormalizeCurrencyCode(cmd.Currency); domain.IsWellFormedCurrency(code) {
		if _, err := domain.ParseISOCurrency(code); err != nil {
			return nil, fmt.Errorf("%w: %q is not an ISO 4217 currency", apperrors.ErrInvalidCurrency, code)
		}
		target = code
	}

	filter := domain.TransactionFilter{
		From: now.Add(-time.Duration(days) * 24 * time.Hour),
		To:   now,
	}
	switch scope {
	case domain.ScopeOrg:
		filter.OrganizationID = &org.OrganizationID
	default:
		filter.UserID = &user.UserID
	}

	result := &domain.ReportResult{
		Scope:        scope,
		From:         filter.From,
		To:           filter.To,
		WindowDays:   days,
		BaseCurrency: base,
		Currency:     target,
		Total:        decimal.Zero,
		ByCurrency:   []domain.CurrencyBreakdown{},
		ByDay:        []domain.DayBreakdown{},
	}

	txns, err := s.txnRepo.QueryTransactions(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to query transactions", slog.String("scope", string(scope)))
		return nil, storageErr("failed to query transactions", err)
	}
	if len(txns) == 0 {
		return result, nil
	}

	rate := decimal.NewFromInt(1)
	if target != base {
		rate, err = s.rates.GetRate(ctx, base, target, now)
		if err != nil {
			s.LogError(ctx, err, "Report conversion failed", slog.String("from", base), slog.String("to", target))
			return nil, fmt.Errorf("%w: %w", apperrors.ErrConversionFailed, err)
		}
		result.UsedLiveRate = true
		result.LiveRate = rate
	}

	aggregate(result, txns, rate, domain.Scale(target))

	s.LogDebug(ctx, "Report built",
		slog.String("scope", string(scope)),
		slog.Int("transactions", result.TransactionCount),
		slog.String("currency", target),
		slog.Bool("used_live_rate", result.UsedLiveRate))
	return result, nil
}

// aggregate fills totals and breakdowns. Each transaction is converted and
// rounded once so that breakdown lines add up to the total.
func aggregate(result *domain.ReportResult, txns []domain.Transaction, rate decimal.Decimal, scale int32) {
	byCurrency := make(map[string]*domain.CurrencyBreakdown)
	byDay := make(map[time.Time]*domain.DayBreakdown)

	for _, txn := range txns {
		converted := txn.ValueConverted
		if result.UsedLiveRate {
			converted = converted.Mul(rate).Round(scale)
		}

		result.Total = result.Total.Add(converted)
		result.TransactionCount++

		cb, ok := byCurrency[txn.Currency]
		if !ok {
			cb = &domain.CurrencyBreakdown{Currency: txn.Currency}
			byCurrency[txn.Currency] = cb
		}
		cb.Count++
		cb.Original = cb.Original.Add(txn.Value)
		cb.Converted = cb.Converted.Add(converted)

		day := domain.StartOfDay(txn.CreatedAt)
		db, ok := byDay[day]
		if !ok {
			db = &domain.DayBreakdown{Day: day}
			byDay[day] = db
		}
		db.Count++
		db.Converted = db.Converted.Add(converted)
	}

	for _, cb := range byCurrency {
		result.ByCurrency = append(result.ByCurrency, *cb)
	}
	sort.Slice(result.ByCurrency, func(i, j int) bool {
		return result.ByCurrency[i].Currency < result.ByCurrency[j].Currency
	})

	for _, db := range byDay {
		result.ByDay = append(result.ByDay, *db)
	}
	sort.Slice(result.ByDay, func(i, j int) bool {
		return result.ByDay[i].Day.Before(result.ByDay[j].Day)
	})
}

var _ portssvc.ReportSvc = (*reportService)(nil)
