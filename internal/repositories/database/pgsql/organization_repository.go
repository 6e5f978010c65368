package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/chatledger/internal/core/domain"
	portsrepo "github.com/SscSPs/chatledger/internal/core/ports/repositories"
	"github.com/SscSPs/chatledger/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxOrganizationRepository struct {
	BaseRepository
}

func newPgxOrganizationRepository(db *pgxpool.Pool) portsrepo.OrganizationRepositoryFacade {
	return &PgxOrganizationRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.OrganizationRepositoryFacade = (*PgxOrganizationRepository)(nil)

func (r *PgxOrganizationRepository) CreateOrganization(ctx context.Context, org domain.Organization) (int64, error) {
	m := models.FromDomainOrganization(org)
	query := `
		INSERT INTO organization (created_at, name, currency, language)
		VALUES ($1, $2, $3, $4)
		RETURNING id;
	`
	var id int64
	if err := r.Pool.QueryRow(ctx, query, m.CreatedAt, m.Name, m.Currency, m.Language).Scan(&id); err != nil {
		return 0, translateError(err, "organization")
	}
	return id, nil
}

func (r *PgxOrganizationRepository) FindOrganization(ctx context.Context, organizationID int64) (*domain.Organization, error) {
	query := `
		SELECT id, created_at, name, currency, language
		FROM organization
		WHERE id = $1;
	`
	var m models.Organization
	err := r.Pool.QueryRow(ctx, query, organizationID).Scan(&m.ID, &m.CreatedAt, &m.Name, &m.Currency, &m.Language)
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("organization %d", organizationID))
	}
	org := models.ToDomainOrganization(m)
	return &org, nil
}
