package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/chatledger/internal/apperrors"
	"github.com/SscSPs/chatledger/internal/core/domain"
	portsrepo "github.com/SscSPs/chatledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/chatledger/internal/core/ports/services"
	"github.com/SscSPs/chatledger/internal/utils"
)

// identityService resolves chat senders against the organization roster.
type identityService struct {
	BaseService
	userRepo portsrepo.UserReader
	orgRepo  portsrepo.OrganizationReader
}

// NewIdentityService creates a new identity resolver.
func NewIdentityService(userRepo portsrepo.UserReader, orgRepo portsrepo.OrganizationReader) portssvc.IdentityResolverSvc {
	return &identityService{
		userRepo: userRepo,
		orgRepo:  orgRepo,
	}
}

// Resolve maps a sender address to its user and organization. Unknown
// addresses and users whose organization is gone both yield ErrUnauthorized.
func (s *identityService) Resolve(ctx context.Context, address string) (*domain.User, *domain.Organization, error) {
	normalized, err := utils.NormalizeAddress(address)
	if err != nil {
		s.LogWarn(ctx, "Rejected sender with unusable address")
		return nil, nil, fmt.Errorf("%w: %w", apperrors.ErrUnauthorized, err)
	}

	user, err := s.userRepo.FindUserByAddress(ctx, normalized)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogWarn(ctx, "Rejected unknown sender", slog.String("address", normalized))
			return nil, nil, apperrors.ErrUnauthorized
		}
		s.LogError(ctx, err, "Failed to look up sender", slog.String("address", normalized))
		return nil, nil, storageErr("failed to look up sender", err)
	}

	org, err := s.orgRepo.FindOrganization(ctx, user.OrganizationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogWarn(ctx, "Rejected sender without organization",
				slog.String("address", normalized),
				slog.Int64("organization_id", user.OrganizationID))
			return nil, nil, apperrors.ErrUnauthorized
		}
		s.LogError(ctx, err, "Failed to load sender organization", slog.Int64("organization_id", user.OrganizationID))
		return nil, nil, storageErr("failed to load organization", err)
	}

	return user, org, nil
}

// storageErr makes sure a repository failure carries ErrStorage, whatever the
// backend wrapped it with.
func storageErr(msg string, err error) error {
	if errors.Is(err, apperrors.ErrStorage) {
		return fmt.Errorf("%s: %w", msg, err)
	}
	return apperrors.NewStorageError(msg, err)
}

var _ portssvc.IdentityResolverSvc = (*identityService)(nil)
