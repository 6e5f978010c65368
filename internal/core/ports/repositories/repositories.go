package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// Every storage backend (pgsql, sqlite, memory) builds one of these.
type RepositoryProvider struct {
	OrganizationRepo OrganizationRepositoryFacade
	UserRepo         UserRepositoryFacade
	TransactionRepo  TransactionRepositoryFacade
}
