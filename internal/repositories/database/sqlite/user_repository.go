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

type UserRepository struct {
	db *sql.DB
}

var _ portsrepo.UserRepositoryFacade = (*UserRepository)(nil)

const userColumns = `id, organization_id, created_at, whatsapp_phone, name, is_admin`

func (r *UserRepository) CreateUser(ctx context.Context, user domain.User) (int64, error) {
	m := models.FromDomainUser(user)
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO user (organization_id, created_at, whatsapp_phone, name, is_admin) VALUES (?, ?, ?, ?, ?)`,
		m.OrganizationID, formatTime(m.CreatedAt), m.WhatsappPhone, m.Name, m.IsAdmin)
	if err != nil {
		return 0, translateError(err, fmt.Sprintf("user with address %s", m.WhatsappPhone))
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, translateError(err, "user")
	}
	return id, nil
}

func (r *UserRepository) FindUserByAddress(ctx context.Context, address string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM user WHERE whatsapp_phone = ?`, address)
	return scanUser(row, "user")
}

func (r *UserRepository) FindUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM user WHERE id = ?`, userID)
	return scanUser(row, fmt.Sprintf("user %d", userID))
}

func (r *UserRepository) UpdateUserName(ctx context.Context, userID int64, name string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE user SET name = ? WHERE id = ?`, name, userID)
	if err != nil {
		return translateError(err, fmt.Sprintf("user %d", userID))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return translateError(err, fmt.Sprintf("user %d", userID))
	}
	if n == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("user %d", userID))
	}
	return nil
}

func scanUser(row *sql.Row, what string) (*domain.User, error) {
	var (
		m         models.User
		createdAt string
	)
	if err := row.Scan(&m.ID, &m.OrganizationID, &createdAt, &m.WhatsappPhone, &m.Name, &m.IsAdmin); err != nil {
		return nil, translateError(err, what)
	}
	var err error
	if m.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, translateError(err, what)
	}
	user := models.ToDomainUser(m)
	return &user, nil
}
