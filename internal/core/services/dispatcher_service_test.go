package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/chatledger/internal/apperrors"
	"github.com/SscSPs/chatledger/internal/core/command"
	"github.com/SscSPs/chatledger/internal/core/domain"
	portssvc "github.com/SscSPs/chatledger/internal/core/ports/services"
	"github.com/SscSPs/chatledger/internal/core/services"
	"github.com/SscSPs/chatledger/internal/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type DispatcherServiceTestSuite struct {
	suite.Suite
	mockIdentity *MockIdentityResolver
	mockParser   *MockCommandParser
	mockLedger   *MockLedger
	mockReports  *MockReportEngine
	service      portssvc.DispatcherSvc

	user *domain.User
	org  *domain.Organization
	now  time.Time
}

func (suite *DispatcherServiceTestSuite) SetupTest() {
	suite.mockIdentity = new(MockIdentityResolver)
	suite.mockParser = new(MockCommandParser)
	suite.mockLedger = new(MockLedger)
	suite.mockReports = new(MockReportEngine)
	suite.service = services.NewDispatcherService(suite.mockIdentity, suite.mockParser, suite.mockLedger, suite.mockReports)

	suite.user = &domain.User{UserID: 5, OrganizationID: 1, Name: "Ana"}
	suite.org = &domain.Organization{OrganizationID: 1, Currency: "EUR", Language: domain.LanguageEN}
	suite.now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
}

func (suite *DispatcherServiceTestSuite) message(body string) domain.InboundMessage {
	return domain.InboundMessage{SenderAddress: "+15551234567", Body: body, ReceivedAt: suite.now}
}

func (suite *DispatcherServiceTestSuite) authorize() {
	suite.mockIdentity.On("Resolve", mock.Anything, "+15551234567").Return(suite.user, suite.org, nil)
}

func (suite *DispatcherServiceTestSuite) TestUnauthorized_FixedDenialNoParsing() {
	suite.mockIdentity.On("Resolve", mock.Anything, "+15551234567").Return(nil, nil, apperrors.ErrUnauthorized).Once()

	reply := suite.service.Dispatch(context.Background(), suite.message("record 1 USD \"x\""))

	suite.Equal("Sorry, this number is not authorized to use the ledger.", reply)
	suite.mockParser.AssertNotCalled(suite.T(), "Parse", mock.Anything)
	suite.mockLedger.AssertNotCalled(suite.T(), "RecordTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockReports.AssertNotCalled(suite.T(), "BuildReport", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DispatcherServiceTestSuite) TestUnauthorized_DefaultLanguage() {
	svc := services.NewDispatcherService(suite.mockIdentity, suite.mockParser, suite.mockLedger, suite.mockReports,
		services.WithDefaultLanguage(domain.LanguageES))
	suite.mockIdentity.On("Resolve", mock.Anything, mock.Anything).Return(nil, nil, apperrors.ErrUnauthorized).Once()

	reply := svc.Dispatch(context.Background(), suite.message("help"))

	suite.Contains(reply, "no está autorizado")
}

func (suite *DispatcherServiceTestSuite) TestRecord_Confirmation() {
	suite.authorize()
	cmd := domain.RecordCommand{Value: dec("42.50"), Currency: "USD", Label: "Coffee", Description: "team meeting"}
	suite.mockParser.On("Parse", "record 42.50 USD \"Coffee\" team meeting").Return(cmd).Once()
	suite.mockLedger.On("RecordTransaction", mock.Anything, *suite.user, *suite.org, cmd, suite.now).
		Return(&domain.Transaction{TransactionID: 77, Value: dec("42.50"), Currency: "USD", ValueConverted: dec("39.1"), Label: "Coffee"}, nil).Once()

	reply := suite.service.Dispatch(context.Background(), suite.message("record 42.50 USD \"Coffee\" team meeting"))

	suite.Equal("Recorded 42.50 USD \"Coffee\" (39.10 EUR). Ref #77", reply)
}

func (suite *DispatcherServiceTestSuite) TestRecord_SpanishOrganization() {
	suite.org.Language = domain.LanguageES
	suite.authorize()
	cmd := domain.RecordCommand{Value: dec("3"), Currency: "EUR", Label: "Pan"}
	suite.mockParser.On("Parse", mock.Anything).Return(cmd).Once()
	suite.mockLedger.On("RecordTransaction", mock.Anything, mock.Anything, mock.Anything, cmd, suite.now).
		Return(&domain.Transaction{TransactionID: 1, Value: dec("3"), Currency: "EUR", ValueConverted: dec("3"), Label: "Pan"}, nil).Once()

	reply := suite.service.Dispatch(context.Background(), suite.message("record 3 EUR \"Pan\""))

	suite.Equal("Registrado 3.00 EUR \"Pan\". Ref #1", reply)
}

func (suite *DispatcherServiceTestSuite) TestRecord_ConfirmationShowsStoredValue() {
	suite.authorize()
	cmd := domain.RecordCommand{Value: dec("12.345"), Currency: "EUR", Label: "Fuel"}
	suite.mockParser.On("Parse", mock.Anything).Return(cmd).Once()
	suite.mockLedger.On("RecordTransaction", mock.Anything, mock.Anything, mock.Anything, cmd, suite.now).
		Return(&domain.Transaction{TransactionID: 9, Value: dec("12.345"), Currency: "EUR", ValueConverted: dec("12.345"), Label: "Fuel"}, nil).Once()

	reply := suite.service.Dispatch(context.Background(), suite.message("record 12.345 EUR \"Fuel\""))

	suite.Equal("Recorded 12.345 EUR \"Fuel\". Ref #9", reply)
}

func (suite *DispatcherServiceTestSuite) TestRecord_ErrorKindsBecomePlainText() {
	tests := []struct {
		err      error
		contains string
	}{
		{fmt.Errorf("%w: upstream 503 from fx.example", apperrors.ErrConversionFailed), "exchange rate"},
		{apperrors.ErrInvalidCurrency, "XYZ is not a currency"},
		{apperrors.NewStorageError("insert", errors.New("pq: relation does not exist")), "went wrong on our side"},
		{context.DeadlineExceeded, "took too long"},
	}
	for _, tt := range tests {
		suite.SetupTest()
		suite.authorize()
		cmd := domain.RecordCommand{Value: dec("1"), Currency: "XYZ", Label: "x"}
		suite.mockParser.On("Parse", mock.Anything).Return(cmd).Once()
		suite.mockLedger.On("RecordTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, tt.err).Once()

		reply := suite.service.Dispatch(context.Background(), suite.message("record 1 XYZ \"x\""))

		suite.Contains(reply, tt.contains)
		suite.NotContains(reply, "503")
		suite.NotContains(reply, "relation")
	}
}

func (suite *DispatcherServiceTestSuite) TestReport_Rendered() {
	suite.authorize()
	cmd := domain.ReportCommand{Scope: domain.ScopeMine, WindowDays: 7, Currency: "USD"}
	suite.mockParser.On("Parse", "report days=7 currency=USD").Return(cmd).Once()
	day := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	suite.mockReports.On("BuildReport", mock.Anything, *suite.user, *suite.org, cmd, suite.now).Return(&domain.ReportResult{
		Scope:            domain.ScopeMine,
		From:             suite.now.AddDate(0, 0, -7),
		To:               suite.now,
		WindowDays:       7,
		BaseCurrency:     "EUR",
		Currency:         "USD",
		Total:            dec("43.01"),
		TransactionCount: 1,
		ByCurrency:       []domain.CurrencyBreakdown{{Currency: "USD", Count: 1, Original: dec("42.5"), Converted: dec("43.01")}},
		ByDay:            []domain.DayBreakdown{{Day: day, Count: 1, Converted: dec("43.01")}},
		UsedLiveRate:     true,
		LiveRate:         dec("1.1"),
	}, nil).Once()

	reply := suite.service.Dispatch(context.Background(), suite.message("report days=7 currency=USD"))

	suite.Contains(reply, "Report for you, last 7 days (2026-03-03 to 2026-03-10)")
	suite.Contains(reply, "Total: 43.01 USD (1 transactions)")
	suite.Contains(reply, "- USD: 42.50 USD = 43.01 USD (1)")
	suite.Contains(reply, "- 2026-03-09: 43.01 USD (1)")
	suite.Contains(reply, "today's rate: 1 EUR = 1.1 USD")
}

func (suite *DispatcherServiceTestSuite) TestReport_Forbidden() {
	suite.authorize()
	cmd := domain.ReportCommand{Scope: domain.ScopeOrg, WindowDays: 30}
	suite.mockParser.On("Parse", mock.Anything).Return(cmd).Once()
	suite.mockReports.On("BuildReport", mock.Anything, mock.Anything, mock.Anything, cmd, mock.Anything).
		Return(nil, apperrors.ErrForbidden).Once()

	reply := suite.service.Dispatch(context.Background(), suite.message("report org"))

	suite.Equal("Only organization admins can run organization-wide reports.", reply)
}

func (suite *DispatcherServiceTestSuite) TestHelpAndUnknown() {
	suite.authorize()
	suite.mockParser.On("Parse", "help").Return(domain.HelpCommand{}).Once()
	suite.mockParser.On("Parse", "hola").Return(domain.UnknownCommand{RawText: "hola"}).Once()

	help := suite.service.Dispatch(context.Background(), suite.message("help"))
	unknown := suite.service.Dispatch(context.Background(), suite.message("hola"))

	suite.Contains(help, "record <value> <currency>")
	suite.Contains(unknown, "did not understand")
	suite.Contains(unknown, help)
}

func (suite *DispatcherServiceTestSuite) TestIdentityStorageFailure() {
	suite.mockIdentity.On("Resolve", mock.Anything, mock.Anything).
		Return(nil, nil, apperrors.NewStorageError("lookup", errors.New("dial tcp"))).Once()

	reply := suite.service.Dispatch(context.Background(), suite.message("help"))

	suite.Contains(reply, "went wrong on our side")
	suite.mockParser.AssertNotCalled(suite.T(), "Parse", mock.Anything)
}

func TestDispatcherServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DispatcherServiceTestSuite))
}

// End to end through the real parser and engines over the in-memory store.
func TestDispatcher_RecordThenReportRoundTrip(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	store := memory.NewStore()
	orgID, err := store.CreateOrganization(ctx, domain.Organization{Name: "Acme", Currency: "EUR", Language: domain.LanguageEN, CreatedAt: now})
	require.NoError(t, err)
	_, err = store.CreateUser(ctx, domain.User{OrganizationID: orgID, Address: "+15551234567", Name: "Ana", CreatedAt: now})
	require.NoError(t, err)

	rates := new(MockRateProvider)
	rates.On("GetRate", mock.Anything, "USD", "EUR", now).Return(dec("0.92"), nil).Once()

	svc := services.NewDispatcherService(
		services.NewIdentityService(store, store),
		command.NewParser(),
		services.NewLedgerService(store, rates),
		services.NewReportService(store, rates))

	recorded := svc.Dispatch(ctx, domain.InboundMessage{
		SenderAddress: "whatsapp:+1 555 123 4567",
		Body:          `record 42.50 USD "Coffee" team meeting`,
		ReceivedAt:    now,
	})
	assert.Equal(t, `Recorded 42.50 USD "Coffee" (39.10 EUR). Ref #1`, recorded)

	report := svc.Dispatch(ctx, domain.InboundMessage{
		SenderAddress: "+15551234567",
		Body:          "report mine days=1",
		ReceivedAt:    now.Add(time.Minute),
	})
	assert.Contains(t, report, "Total: 39.10 EUR (1 transactions)")
	assert.NotContains(t, report, "today's rate")
	rates.AssertExpectations(t)
}
