package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/chatledger/internal/apperrors"
	"github.com/SscSPs/chatledger/internal/core/domain"
	portssvc "github.com/SscSPs/chatledger/internal/core/ports/services"
	"github.com/SscSPs/chatledger/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	mockTxnRepo *MockTransactionRepository
	mockRates   *MockRateProvider
	service     portssvc.LedgerSvc

	user domain.User
	org  domain.Organization
	now  time.Time
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockRates = new(MockRateProvider)
	suite.service = services.NewLedgerService(suite.mockTxnRepo, suite.mockRates)

	suite.user = domain.User{UserID: 11, OrganizationID: 2, Address: "+573001234567", Name: "Luis"}
	suite.org = domain.Organization{OrganizationID: 2, Name: "Casa", Currency: "EUR", Language: domain.LanguageES}
	suite.now = time.Date(2026, 3, 10, 9, 15, 0, 0, time.UTC)
}

func (suite *LedgerServiceTestSuite) TestRecord_ConvertsWithRate() {
	ctx := context.Background()
	cmd := domain.RecordCommand{Value: dec("42.50"), Currency: "USD", Label: "Coffee", Description: "team meeting"}
	suite.mockRates.On("GetRate", ctx, "USD", "EUR", suite.now).Return(dec("0.92"), nil).Once()
	suite.mockTxnRepo.On("CreateTransaction", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.UserID == 11 &&
			txn.Currency == "USD" &&
			txn.Value.Equal(dec("42.50")) &&
			txn.ValueConverted.Equal(dec("39.10")) &&
			txn.Label == "Coffee" &&
			txn.Description == "team meeting" &&
			txn.CreatedAt.Equal(suite.now)
	})).Return(int64(501), nil).Once()

	txn, err := suite.service.RecordTransaction(ctx, suite.user, suite.org, cmd, suite.now)

	suite.Require().NoError(err)
	suite.Equal(int64(501), txn.TransactionID)
	suite.Equal("39.10", txn.ValueConverted.StringFixed(2))
	suite.mockRates.AssertExpectations(suite.T())
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestRecord_SameCurrencySkipsRateProvider() {
	ctx := context.Background()
	cmd := domain.RecordCommand{Value: dec("12.345"), Currency: "eur", Label: "Bread"}
	suite.mockTxnRepo.On("CreateTransaction", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.ValueConverted.Equal(txn.Value) && txn.Currency == "EUR"
	})).Return(int64(1), nil).Once()

	txn, err := suite.service.RecordTransaction(ctx, suite.user, suite.org, cmd, suite.now)

	suite.Require().NoError(err)
	suite.True(txn.ValueConverted.Equal(dec("12.345")))
	suite.mockRates.AssertNotCalled(suite.T(), "GetRate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestRecord_RoundsToBaseCurrencyScale() {
	ctx := context.Background()
	org := suite.org
	org.Currency = "JPY"
	cmd := domain.RecordCommand{Value: dec("10"), Currency: "USD", Label: "Taxi"}
	suite.mockRates.On("GetRate", ctx, "USD", "JPY", suite.now).Return(dec("149.876"), nil).Once()
	suite.mockTxnRepo.On("CreateTransaction", ctx, mock.Anything).Return(int64(2), nil).Once()

	txn, err := suite.service.RecordTransaction(ctx, suite.user, org, cmd, suite.now)

	suite.Require().NoError(err)
	suite.Equal("1499", txn.ValueConverted.String())
}

func (suite *LedgerServiceTestSuite) TestRecord_InvalidCurrency() {
	for _, code := range []string{"US", "ABC", "12X"} {
		cmd := domain.RecordCommand{Value: dec("1"), Currency: code, Label: "x"}

		_, err := suite.service.RecordTransaction(context.Background(), suite.user, suite.org, cmd, suite.now)

		suite.ErrorIs(err, apperrors.ErrInvalidCurrency, code)
	}
	suite.mockRates.AssertNotCalled(suite.T(), "GetRate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "CreateTransaction", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestRecord_RateUnavailableStoresNothing() {
	ctx := context.Background()
	cmd := domain.RecordCommand{Value: dec("5"), Currency: "USD", Label: "Snack"}
	suite.mockRates.On("GetRate", ctx, "USD", "EUR", suite.now).
		Return(decimal.Zero, apperrors.ErrRateUnavailable).Once()

	txn, err := suite.service.RecordTransaction(ctx, suite.user, suite.org, cmd, suite.now)

	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrConversionFailed)
	suite.mockTxnRepo.AssertNumberOfCalls(suite.T(), "CreateTransaction", 0)
}

func (suite *LedgerServiceTestSuite) TestRecord_ConvertedRoundsToZero() {
	ctx := context.Background()
	cmd := domain.RecordCommand{Value: dec("0.01"), Currency: "JPY", Label: "Gum"}
	suite.mockRates.On("GetRate", ctx, "JPY", "EUR", suite.now).Return(dec("0.0062"), nil).Once()

	_, err := suite.service.RecordTransaction(ctx, suite.user, suite.org, cmd, suite.now)

	suite.ErrorIs(err, apperrors.ErrConversionFailed)
	suite.mockTxnRepo.AssertNumberOfCalls(suite.T(), "CreateTransaction", 0)
}

func (suite *LedgerServiceTestSuite) TestRecord_CancelledBeforePersist() {
	ctx, cancel := context.WithCancel(context.Background())
	cmd := domain.RecordCommand{Value: dec("5"), Currency: "USD", Label: "Snack"}
	suite.mockRates.On("GetRate", ctx, "USD", "EUR", suite.now).
		Run(func(mock.Arguments) { cancel() }).
		Return(dec("0.9"), nil).Once()

	_, err := suite.service.RecordTransaction(ctx, suite.user, suite.org, cmd, suite.now)

	suite.ErrorIs(err, context.Canceled)
	suite.mockTxnRepo.AssertNumberOfCalls(suite.T(), "CreateTransaction", 0)
}

func (suite *LedgerServiceTestSuite) TestRecord_StorageFailure() {
	ctx := context.Background()
	cmd := domain.RecordCommand{Value: dec("5"), Currency: "EUR", Label: "Snack"}
	suite.mockTxnRepo.On("CreateTransaction", ctx, mock.Anything).Return(int64(0), errors.New("disk full")).Once()

	_, err := suite.service.RecordTransaction(ctx, suite.user, suite.org, cmd, suite.now)

	suite.ErrorIs(err, apperrors.ErrStorage)
}

func (suite *LedgerServiceTestSuite) TestRecord_ValueBeyondStoragePrecision() {
	for _, value := range []string{"0.000000001", "1234567.891234567", "1000000000000", "1234567890123.5"} {
		cmd := domain.RecordCommand{Value: dec(value), Currency: "EUR", Label: "Big"}

		txn, err := suite.service.RecordTransaction(context.Background(), suite.user, suite.org, cmd, suite.now)

		suite.Nil(txn, value)
		suite.ErrorIs(err, apperrors.ErrValidation, value)
	}
	suite.mockRates.AssertNotCalled(suite.T(), "GetRate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "CreateTransaction", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestRecord_StoragePrecisionLimitsAccepted() {
	ctx := context.Background()
	suite.mockTxnRepo.On("CreateTransaction", ctx, mock.Anything).Return(int64(3), nil).Twice()

	for _, value := range []string{"0.00000001", "999999999999.99999999"} {
		txn, err := suite.service.RecordTransaction(ctx, suite.user, suite.org,
			domain.RecordCommand{Value: dec(value), Currency: "EUR", Label: "Edge"}, suite.now)

		suite.Require().NoError(err, value)
		suite.True(txn.ValueConverted.Equal(dec(value)), value)
	}
}

func (suite *LedgerServiceTestSuite) TestRecord_ConvertedValueTooLarge() {
	ctx := context.Background()
	org := suite.org
	org.Currency = "COP"
	cmd := domain.RecordCommand{Value: dec("500000000"), Currency: "USD", Label: "House"}
	suite.mockRates.On("GetRate", ctx, "USD", "COP", suite.now).Return(dec("3950.25"), nil).Once()

	_, err := suite.service.RecordTransaction(ctx, suite.user, org, cmd, suite.now)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "CreateTransaction", mock.Anything, mock.Anything)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
