package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/chatledger/internal/apperrors"
	"github.com/SscSPs/chatledger/internal/core/domain"
	portssvc "github.com/SscSPs/chatledger/internal/core/ports/services"
)

// dispatcherService is the only component that knows about all the others
// and the only place where error kinds become chat text.
type dispatcherService struct {
	BaseService
	identity    portssvc.IdentityResolverSvc
	parser      portssvc.CommandParser
	ledger      portssvc.LedgerSvc
	reports     portssvc.ReportSvc
	replies     *replyCatalog
	defaultLang domain.Language
}

// DispatcherOption configures the dispatcher.
type DispatcherOption func(*dispatcherService)

// WithDefaultLanguage sets the language used when no organization is known,
// which is the case for the access-denied reply.
func WithDefaultLanguage(lang domain.Language) DispatcherOption {
	return func(s *dispatcherService) {
		if lang.IsSupported() {
			s.defaultLang = lang
		}
	}
}

// WithDispatcherClock replaces the clock used when a message carries no receive time.
func WithDispatcherClock(now func() time.Time) DispatcherOption {
	return func(s *dispatcherService) {
		s.Now = now
	}
}

// NewDispatcherService wires the engines together.
func NewDispatcherService(
	identity portssvc.IdentityResolverSvc,
	parser portssvc.CommandParser,
	ledger portssvc.LedgerSvc,
	reports portssvc.ReportSvc,
	opts ...DispatcherOption,
) portssvc.DispatcherSvc {
	s := &dispatcherService{
		identity:    identity,
		parser:      parser,
		ledger:      ledger,
		reports:     reports,
		replies:     newReplyCatalog(),
		defaultLang: domain.LanguageEN,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dispatch handles one inbound message and always returns a reply.
func (s *dispatcherService) Dispatch(ctx context.Context, msg domain.InboundMessage) string {
	user, org, err := s.identity.Resolve(ctx, msg.SenderAddress)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			return s.replies.denied(s.defaultLang)
		}
		return s.errorReply(ctx, s.defaultLang, err, "")
	}

	logger := s.GetLogger(ctx).With(
		slog.Int64("user_id", user.UserID),
		slog.Int64("organization_id", org.OrganizationID))

	now := msg.ReceivedAt
	if now.IsZero() {
		now = s.CurrentTime()
	}
	lang := org.Language

	cmd := s.parser.Parse(msg.Body)
	logger.Debug("Dispatching command", slog.String("kind", cmd.Kind().String()))

	switch c := cmd.(type) {
	case domain.RecordCommand:
		txn, err := s.ledger.RecordTransaction(ctx, *user, *org, c, now)
		if err != nil {
			return s.errorReply(ctx, lang, err, c.Currency)
		}
		return s.replies.recorded(lang, *txn, org.Currency)
	case domain.ReportCommand:
		res, err := s.reports.BuildReport(ctx, *user, *org, c, now)
		if err != nil {
			return s.errorReply(ctx, lang, err, c.Currency)
		}
		return s.replies.report(lang, *res)
	case domain.HelpCommand:
		return s.replies.help(lang)
	default:
		return s.replies.unknown(lang)
	}
}

// errorReply turns an error kind into plain-language text. Raw error strings
// never reach the user.
func (s *dispatcherService) errorReply(ctx context.Context, lang domain.Language, err error, currency string) string {
	p := s.replies.printer(lang)
	switch {
	case errors.Is(err, apperrors.ErrInvalidCurrency):
		return p.Sprintf(msgErrCurrency, domain.NormalizeCurrencyCode(currency))
	case errors.Is(err, apperrors.ErrRateUnavailable), errors.Is(err, apperrors.ErrConversionFailed):
		return p.Sprintf(msgErrRate)
	case errors.Is(err, apperrors.ErrForbidden):
		return p.Sprintf(msgErrForbidden)
	case errors.Is(err, apperrors.ErrValidation):
		return p.Sprintf(msgErrInvalidInput)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		s.LogWarn(ctx, "Message handling timed out", slog.String("error", err.Error()))
		return p.Sprintf(msgErrTimeout)
	default:
		s.LogError(ctx, err, "Message handling failed")
		return p.Sprintf(msgErrInternal)
	}
}

var _ portssvc.DispatcherSvc = (*dispatcherService)(nil)
