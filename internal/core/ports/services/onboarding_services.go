package services

import (
	"context"

	"github.com/SscSPs/chatledger/internal/core/domain"
)

// CreateOrganizationCmd carries the data needed to onboard a tenant.
type CreateOrganizationCmd struct {
	Name     string
	Currency string
	Language string
}

// RegisterUserCmd carries the data needed to authorize a chat address.
type RegisterUserCmd struct {
	OrganizationID int64
	Address        string
	Name           string
	IsAdmin        bool
}

// OrganizationSvc defines operations for managing organizations
type OrganizationSvc interface {
	CreateOrganization(ctx context.Context, cmd CreateOrganizationCmd) (*domain.Organization, error)
	GetOrganization(ctx context.Context, organizationID int64) (*domain.Organization, error)
}

// UserSvc defines operations for managing chat users
type UserSvc interface {
	RegisterUser(ctx context.Context, cmd RegisterUserCmd) (*domain.User, error)
	RenameUser(ctx context.Context, userID int64, name string) (*domain.User, error)
}

// OnboardingSvcFacade combines organization and user administration.
type OnboardingSvcFacade interface {
	OrganizationSvc
	UserSvc
}
