package repositories

import (
	"context"

	"github.com/SscSPs/chatledger/internal/core/domain"
)

// TransactionReader defines read operations for transaction data
type TransactionReader interface {
	// QueryTransactions returns the transactions matching filter, oldest first.
	QueryTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for transaction data.
// There is intentionally no update or delete.
type TransactionWriter interface {
	// CreateTransaction appends a transaction and returns its assigned ID.
	// The write is atomic: on error nothing is stored.
	CreateTransaction(ctx context.Context, txn domain.Transaction) (int64, error)
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
