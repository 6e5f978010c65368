package services

import (
	"context"
	"time"

	"github.com/SscSPs/chatledger/internal/core/domain"
)

// CommandParser turns raw message text into a typed command. It never fails;
// unrecognised input becomes domain.UnknownCommand.
type CommandParser interface {
	Parse(rawText string) domain.Command
}

// LedgerSvc records expense transactions.
type LedgerSvc interface {
	RecordTransaction(ctx context.Context, user domain.User, org domain.Organization, cmd domain.RecordCommand, now time.Time) (*domain.Transaction, error)
}

// ReportSvc aggregates stored transactions into a report.
type ReportSvc interface {
	BuildReport(ctx context.Context, user domain.User, org domain.Organization, cmd domain.ReportCommand, now time.Time) (*domain.ReportResult, error)
}

// DispatcherSvc is the single entry point for inbound chat messages. It always
// produces a reply and never surfaces an error to the transport.
type DispatcherSvc interface {
	Dispatch(ctx context.Context, msg domain.InboundMessage) string
}
