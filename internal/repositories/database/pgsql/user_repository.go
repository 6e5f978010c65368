package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/chatledger/internal/apperrors"
	"github.com/SscSPs/chatledger/internal/core/domain"
	portsrepo "github.com/SscSPs/chatledger/internal/core/ports/repositories"
	"github.com/SscSPs/chatledger/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(db *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: db}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const userColumns = `id, organization_id, created_at, whatsapp_phone, name, is_admin`

func (r *PgxUserRepository) CreateUser(ctx context.Context, user domain.User) (int64, error) {
	m := models.FromDomainUser(user)
	query := `
		INSERT INTO "user" (organization_id, created_at, whatsapp_phone, name, is_admin)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id;
	`
	var id int64
	err := r.Pool.QueryRow(ctx, query, m.OrganizationID, m.CreatedAt, m.WhatsappPhone, m.Name, m.IsAdmin).Scan(&id)
	if err != nil {
		return 0, translateError(err, fmt.Sprintf("user with address %s", m.WhatsappPhone))
	}
	return id, nil
}

func (r *PgxUserRepository) FindUserByAddress(ctx context.Context, address string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM "user" WHERE whatsapp_phone = $1;`
	return r.findOne(ctx, query, address, "user")
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM "user" WHERE id = $1;`
	return r.findOne(ctx, query, userID, fmt.Sprintf("user %d", userID))
}

func (r *PgxUserRepository) UpdateUserName(ctx context.Context, userID int64, name string) error {
	query := `UPDATE "user" SET name = $1 WHERE id = $2;`
	tag, err := r.Pool.Exec(ctx, query, name, userID)
	if err != nil {
		return translateError(err, fmt.Sprintf("user %d", userID))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("user %d", userID))
	}
	return nil
}

func (r *PgxUserRepository) findOne(ctx context.Context, query string, arg any, what string) (*domain.User, error) {
	var m models.User
	err := r.Pool.QueryRow(ctx, query, arg).Scan(
		&m.ID,
		&m.OrganizationID,
		&m.CreatedAt,
		&m.WhatsappPhone,
		&m.Name,
		&m.IsAdmin,
	)
	if err != nil {
		return nil, translateError(err, what)
	}
	user := models.ToDomainUser(m)
	return &user, nil
}
