package repositories

import (
	"context"

	"github.com/SscSPs/chatledger/internal/core/domain"
)

// OrganizationReader defines read operations for organization data
type OrganizationReader interface {
	// FindOrganization retrieves an organization by ID.
	// Returns apperrors.ErrNotFound when it does not exist.
	FindOrganization(ctx context.Context, organizationID int64) (*domain.Organization, error)
}

// OrganizationWriter defines write operations for organization data
type OrganizationWriter interface {
	// CreateOrganization persists a new organization and returns its assigned ID.
	CreateOrganization(ctx context.Context, org domain.Organization) (int64, error)
}

// OrganizationRepositoryFacade combines all organization-related repository interfaces
type OrganizationRepositoryFacade interface {
	OrganizationReader
	OrganizationWriter
}
