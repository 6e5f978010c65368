package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/SscSPs/chatledger/internal/core/domain"
	portsrepo "github.com/SscSPs/chatledger/internal/core/ports/repositories"
	"github.com/SscSPs/chatledger/internal/models"
)

type OrganizationRepository struct {
	db *sql.DB
}

var _ portsrepo.OrganizationRepositoryFacade = (*OrganizationRepository)(nil)

func (r *OrganizationRepository) CreateOrganization(ctx context.Context, org domain.Organization) (int64, error) {
	m := models.FromDomainOrganization(org)
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO organization (created_at, name, currency, language) VALUES (?, ?, ?, ?)`,
		formatTime(m.CreatedAt), m.Name, m.Currency, m.Language)
	if err != nil {
		return 0, translateError(err, "organization")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, translateError(err, "organization")
	}
	return id, nil
}

func (r *OrganizationRepository) FindOrganization(ctx context.Context, organizationID int64) (*domain.Organization, error) {
	var (
		m         models.Organization
		createdAt string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, created_at, name, currency, language FROM organization WHERE id = ?`, organizationID).
		Scan(&m.ID, &createdAt, &m.Name, &m.Currency, &m.Language)
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("organization %d", organizationID))
	}
	if m.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, translateError(err, "organization")
	}
	org := models.ToDomainOrganization(m)
	return &org, nil
}
