package services

import (
	"time"

	"github.com/SscSPs/chatledger/internal/core/command"
	"github.com/SscSPs/chatledger/internal/core/domain"
	portsrepo "github.com/SscSPs/chatledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/chatledger/internal/core/ports/services"
	"github.com/SscSPs/chatledger/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, source portsrepo.RateSource, cache portsrepo.RateCache) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The rate provider is shared so both engines hit the same cache.
	container.Rates = NewRateProviderService(source, cache, WithRateFallbackTTL(cfg.RateCacheFallbackTTL))
	container.Identity = NewIdentityService(repos.UserRepo, repos.OrganizationRepo)
	container.Ledger = NewLedgerService(repos.TransactionRepo, container.Rates)
	container.Reporting = NewReportService(repos.TransactionRepo, container.Rates)
	container.Onboarding = NewOnboardingService(repos.OrganizationRepo, repos.UserRepo)

	defaultLang, err := domain.ParseLanguage(cfg.DefaultLanguage)
	if err != nil {
		defaultLang = domain.LanguageEN
	}
	container.Dispatcher = NewDispatcherService(
		container.Identity,
		command.NewParser(),
		container.Ledger,
		container.Reporting,
		WithDefaultLanguage(defaultLang),
		WithDispatcherClock(time.Now),
	)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.CommandParser       = (*command.Parser)(nil)
	_ portssvc.OnboardingSvcFacade = (*onboardingService)(nil)
)
