package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/SscSPs/chatledger/internal/apperrors"
	"github.com/SscSPs/chatledger/internal/core/domain"
	portsrepo "github.com/SscSPs/chatledger/internal/core/ports/repositories"
	"github.com/SscSPs/chatledger/internal/models"
)

type TransactionRepository struct {
	db *sql.DB
}

var _ portsrepo.TransactionRepositoryFacade = (*TransactionRepository)(nil)

func (r *TransactionRepository) CreateTransaction(ctx context.Context, txn domain.Transaction) (int64, error) {
	if err := txn.Validate(); err != nil {
		return 0, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}
	m := models.FromDomainTransaction(txn)
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO "transaction" (user_id, created_at, label, value, currency, value_converted, description)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.UserID, formatTime(m.CreatedAt), m.Label, m.Value.String(), m.Currency, m.ValueConverted.String(), m.Description)
	if err != nil {
		return 0, translateError(err, "transaction")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, translateError(err, "transaction")
	}
	return id, nil
}

func (r *TransactionRepository) QueryTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	if err := filter.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}

	const cols = `t.id, t.user_id, t.created_at, t.label, t.value, t.currency, t.value_converted, t.description`
	var (
		query string
		owner int64
	)
	if filter.UserID != nil {
		owner = *filter.UserID
		query = `SELECT ` + cols + ` FROM "transaction" t
			WHERE t.user_id = ? AND t.created_at BETWEEN ? AND ?
			ORDER BY t.created_at, t.id`
	} else {
		owner = *filter.OrganizationID
		query = `SELECT ` + cols + ` FROM "transaction" t
			JOIN user u ON u.id = t.user_id
			WHERE u.organization_id = ? AND t.created_at BETWEEN ? AND ?
			ORDER BY t.created_at, t.id`
	}

	rows, err := r.db.QueryContext(ctx, query, owner, formatTime(filter.From), formatTime(filter.To))
	if err != nil {
		return nil, translateError(err, "transactions")
	}
	defer rows.Close()

	txns := make([]domain.Transaction, 0)
	for rows.Next() {
		var (
			m         models.Transaction
			createdAt string
		)
		if err := rows.Scan(&m.ID, &m.UserID, &createdAt, &m.Label, &m.Value, &m.Currency, &m.ValueConverted, &m.Description); err != nil {
			return nil, translateError(err, "transactions")
		}
		if m.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, translateError(err, "transactions")
		}
		txns = append(txns, models.ToDomainTransaction(m))
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err, "transactions")
	}
	return txns, nil
}
