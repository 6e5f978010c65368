package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/chatledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByAddress(ctx context.Context, address string) (*domain.User, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user domain.User) (int64, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) UpdateUserName(ctx context.Context, userID int64, name string) error {
	args := m.Called(ctx, userID, name)
	return args.Error(0)
}

// --- Mock OrganizationRepository ---
type MockOrganizationRepository struct {
	mock.Mock
}

func (m *MockOrganizationRepository) FindOrganization(ctx context.Context, organizationID int64) (*domain.Organization, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) CreateOrganization(ctx context.Context, org domain.Organization) (int64, error) {
	args := m.Called(ctx, org)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) CreateTransaction(ctx context.Context, txn domain.Transaction) (int64, error) {
	args := m.Called(ctx, txn)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransactionRepository) QueryTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

// --- Mock RateSource ---
type MockRateSource struct {
	mock.Mock
}

func (m *MockRateSource) FetchRate(ctx context.Context, source, target string, day time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, source, target, day)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Mock RateProvider ---
type MockRateProvider struct {
	mock.Mock
}

func (m *MockRateProvider) GetRate(ctx context.Context, source, target string, at time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, source, target, at)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Mock IdentityResolver ---
type MockIdentityResolver struct {
	mock.Mock
}

func (m *MockIdentityResolver) Resolve(ctx context.Context, address string) (*domain.User, *domain.Organization, error) {
	args := m.Called(ctx, address)
	var user *domain.User
	var org *domain.Organization
	if u := args.Get(0); u != nil {
		user = u.(*domain.User)
	}
	if o := args.Get(1); o != nil {
		org = o.(*domain.Organization)
	}
	return user, org, args.Error(2)
}

// --- Mock CommandParser ---
type MockCommandParser struct {
	mock.Mock
}

func (m *MockCommandParser) Parse(rawText string) domain.Command {
	args := m.Called(rawText)
	return args.Get(0).(domain.Command)
}

// --- Mock Ledger ---
type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) RecordTransaction(ctx context.Context, user domain.User, org domain.Organization, cmd domain.RecordCommand, now time.Time) (*domain.Transaction, error) {
	args := m.Called(ctx, user, org, cmd, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

// --- Mock ReportEngine ---
type MockReportEngine struct {
	mock.Mock
}

func (m *MockReportEngine) BuildReport(ctx context.Context, user domain.User, org domain.Organization, cmd domain.ReportCommand, now time.Time) (*domain.ReportResult, error) {
	args := m.Called(ctx, user, org, cmd, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReportResult), args.Error(1)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
