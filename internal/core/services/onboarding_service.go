package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/chatledger/internal/apperrors"
	"github.com/SscSPs/chatledger/internal/core/domain"
	portsrepo "github.com/SscSPs/chatledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/chatledger/internal/core/ports/services"
	"github.com/SscSPs/chatledger/internal/utils"
)

// onboardingService administers organizations and their chat users.
// Organization currency and language are set here once and never changed.
type onboardingService struct {
	BaseService
	orgRepo  portsrepo.OrganizationRepositoryFacade
	userRepo portsrepo.UserRepositoryFacade
}

// NewOnboardingService creates a new onboarding service.
func NewOnboardingService(orgRepo portsrepo.OrganizationRepositoryFacade, userRepo portsrepo.UserRepositoryFacade) portssvc.OnboardingSvcFacade {
	return &onboardingService{
		orgRepo:  orgRepo,
		userRepo: userRepo,
	}
}

func (s *onboardingService) CreateOrganization(ctx context.Context, cmd portssvc.CreateOrganizationCmd) (*domain.Organization, error) {
	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("organization name is required")
	}
	code := domain.NormalizeCurrencyCode(cmd.Currency)
	if _, err := domain.ParseISOCurrency(code); err != nil || !domain.IsWellFormedCurrency(code) {
		return nil, fmt.Errorf("%w: %q is not an ISO 4217 currency", apperrors.ErrInvalidCurrency, cmd.Currency)
	}
	lang, err := domain.ParseLanguage(cmd.Language)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}

	org := domain.Organization{
		CreatedAt: s.CurrentTime(),
		Name:      name,
		Currency:  code,
		Language:  lang,
	}
	id, err := s.orgRepo.CreateOrganization(ctx, org)
	if err != nil {
		s.LogError(ctx, err, "Failed to create organization", slog.String("name", name))
		return nil, passThroughOrStorage("failed to create organization", err)
	}
	org.OrganizationID = id

	s.LogInfo(ctx, "Organization created",
		slog.Int64("organization_id", id),
		slog.String("currency", code),
		slog.String("language", string(lang)))
	return &org, nil
}

func (s *onboardingService) GetOrganization(ctx context.Context, organizationID int64) (*domain.Organization, error) {
	org, err := s.orgRepo.FindOrganization(ctx, organizationID)
	if err != nil {
		return nil, passThroughOrStorage("failed to get organization", err)
	}
	return org, nil
}

func (s *onboardingService) RegisterUser(ctx context.Context, cmd portssvc.RegisterUserCmd) (*domain.User, error) {
	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("user name is required")
	}
	address, err := utils.NormalizeAddress(cmd.Address)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}

	if _, err := s.orgRepo.FindOrganization(ctx, cmd.OrganizationID); err != nil {
		return nil, passThroughOrStorage("failed to load organization", err)
	}

	user := domain.User{
		OrganizationID: cmd.OrganizationID,
		CreatedAt:      s.CurrentTime(),
		Address:        address,
		Name:           name,
		IsAdmin:        cmd.IsAdmin,
	}
	id, err := s.userRepo.CreateUser(ctx, user)
	if err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to register user", slog.Int64("organization_id", cmd.OrganizationID))
		}
		return nil, passThroughOrStorage("failed to register user", err)
	}
	user.UserID = id

	s.LogInfo(ctx, "User registered",
		slog.Int64("user_id", id),
		slog.Int64("organization_id", cmd.OrganizationID),
		slog.Bool("is_admin", cmd.IsAdmin))
	return &user, nil
}

func (s *onboardingService) RenameUser(ctx context.Context, userID int64, name string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("user name is required")
	}
	if err := s.userRepo.UpdateUserName(ctx, userID, name); err != nil {
		return nil, passThroughOrStorage("failed to rename user", err)
	}
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, passThroughOrStorage("failed to reload user", err)
	}
	return user, nil
}

// passThroughOrStorage keeps not-found and duplicate kinds visible to the
// admin API and folds everything else into ErrStorage.
func passThroughOrStorage(msg string, err error) error {
	if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrDuplicate) {
		return fmt.Errorf("%s: %w", msg, err)
	}
	return storageErr(msg, err)
}

var _ portssvc.OnboardingSvcFacade = (*onboardingService)(nil)
