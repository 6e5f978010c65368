package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/chatledger/internal/apperrors"
	"github.com/SscSPs/chatledger/internal/core/domain"
	portsrepo "github.com/SscSPs/chatledger/internal/core/ports/repositories"
	"github.com/SscSPs/chatledger/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(db *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

// CreateTransaction inserts a single row; the INSERT is atomic on its own.
func (r *PgxTransactionRepository) CreateTransaction(ctx context.Context, txn domain.Transaction) (int64, error) {
	if err := txn.Validate(); err != nil {
		return 0, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}
	m := models.FromDomainTransaction(txn)
	query := `
		INSERT INTO "transaction" (user_id, created_at, label, value, currency, value_converted, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id;
	`
	var id int64
	err := r.Pool.QueryRow(ctx, query,
		m.UserID,
		m.CreatedAt,
		m.Label,
		m.Value,
		m.Currency,
		m.ValueConverted,
		m.Description,
	).Scan(&id)
	if err != nil {
		return 0, translateError(err, "transaction")
	}
	return id, nil
}

func (r *PgxTransactionRepository) QueryTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	if err := filter.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}

	var (
		query string
		owner int64
	)
	if filter.UserID != nil {
		owner = *filter.UserID
		query = `
			SELECT t.id, t.user_id, t.created_at, t.label, t.value, t.currency, t.value_converted, t.description
			FROM "transaction" t
			WHERE t.user_id = $1 AND t.created_at BETWEEN $2 AND $3
			ORDER BY t.created_at, t.id;
		`
	} else {
		owner = *filter.OrganizationID
		query = `
			SELECT t.id, t.user_id, t.created_at, t.label, t.value, t.currency, t.value_converted, t.description
			FROM "transaction" t
			JOIN "user" u ON u.id = t.user_id
			WHERE u.organization_id = $1 AND t.created_at BETWEEN $2 AND $3
			ORDER BY t.created_at, t.id;
		`
	}

	rows, err := r.Pool.Query(ctx, query, owner, filter.From.UTC(), filter.To.UTC())
	if err != nil {
		return nil, translateError(err, "transactions")
	}
	defer rows.Close()

	modelTxns, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Transaction, error) {
		var m models.Transaction
		err := row.Scan(&m.ID, &m.UserID, &m.CreatedAt, &m.Label, &m.Value, &m.Currency, &m.ValueConverted, &m.Description)
		return m, err
	})
	if err != nil {
		return nil, translateError(err, "transactions")
	}

	txns := make([]domain.Transaction, len(modelTxns))
	for i, m := range modelTxns {
		txns[i] = models.ToDomainTransaction(m)
	}
	return txns, nil
}
