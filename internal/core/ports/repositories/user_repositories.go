package repositories

import (
	"context"

	"github.com/SscSPs/chatledger/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByAddress retrieves the user owning a normalized chat address.
	// Returns apperrors.ErrNotFound when no user matches.
	FindUserByAddress(ctx context.Context, address string) (*domain.User, error)

	// FindUserByID retrieves a specific user by ID.
	FindUserByID(ctx context.Context, userID int64) (*domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// CreateUser persists a new user and returns its assigned ID.
	// Returns apperrors.ErrDuplicate when the address is already registered.
	CreateUser(ctx context.Context, user domain.User) (int64, error)

	// UpdateUserName changes a user's display name.
	UpdateUserName(ctx context.Context, userID int64, name string) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
