// Package memory is a process-local repository backend for development and tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/SscSPs/chatledger/internal/apperrors"
	"github.com/SscSPs/chatledger/internal/core/domain"
	portsrepo "github.com/SscSPs/chatledger/internal/core/ports/repositories"
)

// Store keeps organizations, users and transactions in maps guarded by one
// RWMutex. Every write is atomic.
type Store struct {
	mu sync.RWMutex

	orgs      map[int64]domain.Organization
	users     map[int64]domain.User
	byAddress map[string]int64
	txns      []domain.Transaction

	nextOrgID  int64
	nextUserID int64
	nextTxnID  int64
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		orgs:      make(map[int64]domain.Organization),
		users:     make(map[int64]domain.User),
		byAddress: make(map[string]int64),
	}
}

// NewRepositoryProvider exposes one store through all repository ports.
func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		OrganizationRepo: store,
		UserRepo:         store,
		TransactionRepo:  store,
	}
}

func (s *Store) FindOrganization(ctx context.Context, organizationID int64) (*domain.Organization, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	org, ok := s.orgs[organizationID]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("organization %d", organizationID))
	}
	return &org, nil
}

func (s *Store) CreateOrganization(ctx context.Context, org domain.Organization) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextOrgID++
	org.OrganizationID = s.nextOrgID
	s.orgs[org.OrganizationID] = org
	return org.OrganizationID, nil
}

func (s *Store) FindUserByAddress(ctx context.Context, address string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byAddress[address]
	if !ok {
		return nil, apperrors.NewNotFoundError("user")
	}
	user := s.users[id]
	return &user, nil
}

func (s *Store) FindUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[userID]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("user %d", userID))
	}
	return &user, nil
}

func (s *Store) CreateUser(ctx context.Context, user domain.User) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orgs[user.OrganizationID]; !ok {
		return 0, apperrors.NewNotFoundError(fmt.Sprintf("organization %d", user.OrganizationID))
	}
	if _, taken := s.byAddress[user.Address]; taken {
		return 0, fmt.Errorf("%w: address %s", apperrors.ErrDuplicate, user.Address)
	}
	s.nextUserID++
	user.UserID = s.nextUserID
	s.users[user.UserID] = user
	s.byAddress[user.Address] = user.UserID
	return user.UserID, nil
}

func (s *Store) UpdateUserName(ctx context.Context, userID int64, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[userID]
	if !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("user %d", userID))
	}
	user.Name = name
	s.users[userID] = user
	return nil
}

func (s *Store) CreateTransaction(ctx context.Context, txn domain.Transaction) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := txn.Validate(); err != nil {
		return 0, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[txn.UserID]; !ok {
		return 0, apperrors.NewNotFoundError(fmt.Sprintf("user %d", txn.UserID))
	}
	s.nextTxnID++
	txn.TransactionID = s.nextTxnID
	s.txns = append(s.txns, txn)
	return txn.TransactionID, nil
}

func (s *Store) QueryTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := filter.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Transaction, 0)
	for _, txn := range s.txns {
		if !filter.Contains(txn.CreatedAt) {
			continue
		}
		if filter.UserID != nil && txn.UserID != *filter.UserID {
			continue
		}
		if filter.OrganizationID != nil && s.users[txn.UserID].OrganizationID != *filter.OrganizationID {
			continue
		}
		out = append(out, txn)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

var (
	_ portsrepo.OrganizationRepositoryFacade = (*Store)(nil)
	_ portsrepo.UserRepositoryFacade         = (*Store)(nil)
	_ portsrepo.TransactionRepositoryFacade  = (*Store)(nil)
)
