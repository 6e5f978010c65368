package services

import (
	"context"

	"github.com/SscSPs/chatledger/internal/core/domain"
)

// IdentityResolverSvc maps a chat sender address to a known user and its organization.
type IdentityResolverSvc interface {
	// Resolve returns apperrors.ErrUnauthorized for unknown or disabled senders,
	// and apperrors.ErrStorage when the lookup itself failed.
	Resolve(ctx context.Context, address string) (*domain.User, *domain.Organization, error)
}
