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
)

// ledgerService records transactions with their base-currency conversion.
type ledgerService struct {
	BaseService
	txnRepo portsrepo.TransactionWriter
	rates   portssvc.RateProviderSvc
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(txnRepo portsrepo.TransactionWriter, rates portssvc.RateProviderSvc) portssvc.LedgerSvc {
	return &ledgerService{
		txnRepo: txnRepo,
		rates:   rates,
	}
}

// RecordTransaction converts cmd into the organization's base currency and
// persists it. Either the transaction is stored with a positive converted
// value or nothing is stored.
func (s *ledgerService) RecordTransaction(ctx context.Context, user domain.User, org domain.Organization, cmd domain.RecordCommand, now time.Time) (*domain.Transaction, error) {
	code := domain.NormalizeCurrencyCode(cmd.Currency)
	if !domain.IsWellFormedCurrency(code) {
		return nil, fmt.Errorf("%w: %q is not a 3-letter code", apperrors.ErrInvalidCurrency, cmd.Currency)
	}
	if _, err := domain.ParseISOCurrency(code); err != nil {
		return nil, fmt.Errorf("%w: %q is not an ISO 4217 currency", apperrors.ErrInvalidCurrency, code)
	}
	if !cmd.Value.IsPositive() {
		return nil, fmt.Errorf("%w: value must be positive", apperrors.ErrValidation)
	}
	if err := domain.CheckStorableAmount(cmd.Value); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}

	converted, err := s.convert(ctx, cmd.Value, code, org.Currency, now)
	if err != nil {
		return nil, err
	}

	txn := domain.Transaction{
		UserID:         user.UserID,
		CreatedAt:      now.UTC(),
		Label:          cmd.Label,
		Value:          cmd.Value,
		Currency:       code,
		ValueConverted: converted,
		Description:    cmd.Description,
	}
	if err := txn.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}

	// The rate lookup may have outlived the caller's deadline.
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("transaction not recorded: %w", err)
	}

	id, err := s.txnRepo.CreateTransaction(ctx, txn)
	if err != nil {
		s.LogError(ctx, err, "Failed to persist transaction", slog.Int64("user_id", user.UserID))
		return nil, storageErr("failed to persist transaction", err)
	}
	txn.TransactionID = id

	s.LogInfo(ctx, "Transaction recorded",
		slog.Int64("transaction_id", id),
		slog.Int64("user_id", user.UserID),
		slog.String("currency", code),
		slog.String("value", txn.Value.String()),
		slog.String("value_converted", txn.ValueConverted.String()))
	return &txn, nil
}

// convert expresses value in base, rounded to the base currency's minor units.
func (s *ledgerService) convert(ctx context.Context, value decimal.Decimal, from, base string, at time.Time) (decimal.Decimal, error) {
	if from == domain.NormalizeCurrencyCode(base) {
		return value, nil
	}
	rate, err := s.rates.GetRate(ctx, from, base, at)
	if err != nil {
		s.LogError(ctx, err, "Conversion failed", slog.String("from", from), slog.String("to", base))
		return decimal.Zero, fmt.Errorf("%w: %w", apperrors.ErrConversionFailed, err)
	}
	converted := value.Mul(rate).Round(domain.Scale(base))
	if !converted.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %s %s rounds to zero in %s", apperrors.ErrConversionFailed, value, from, base)
	}
	return converted, nil
}

var _ portssvc.LedgerSvc = (*ledgerService)(nil)
