package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/SscSPs/chatledger/internal/apperrors"
	"github.com/SscSPs/chatledger/internal/core/domain"
	portssvc "github.com/SscSPs/chatledger/internal/core/ports/services"
	"github.com/SscSPs/chatledger/internal/core/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type IdentityServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	mockOrgRepo  *MockOrganizationRepository
	service      portssvc.IdentityResolverSvc
}

func (suite *IdentityServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockOrgRepo = new(MockOrganizationRepository)
	suite.service = services.NewIdentityService(suite.mockUserRepo, suite.mockOrgRepo)
}

func (suite *IdentityServiceTestSuite) TestResolve_Success() {
	ctx := context.Background()
	user := &domain.User{UserID: 7, OrganizationID: 3, Address: "+15551234567", Name: "Ana"}
	org := &domain.Organization{OrganizationID: 3, Name: "Acme", Currency: "EUR", Language: domain.LanguageEN}
	suite.mockUserRepo.On("FindUserByAddress", ctx, "+15551234567").Return(user, nil).Once()
	suite.mockOrgRepo.On("FindOrganization", ctx, int64(3)).Return(org, nil).Once()

	gotUser, gotOrg, err := suite.service.Resolve(ctx, "whatsapp:+1 (555) 123-4567")

	suite.Require().NoError(err)
	suite.Equal(user, gotUser)
	suite.Equal(org, gotOrg)
	suite.mockUserRepo.AssertExpectations(suite.T())
	suite.mockOrgRepo.AssertExpectations(suite.T())
}

func (suite *IdentityServiceTestSuite) TestResolve_UnknownSender() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByAddress", ctx, "+15550000000").Return(nil, apperrors.ErrNotFound).Once()

	user, org, err := suite.service.Resolve(ctx, "+1 555 000 0000")

	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.Nil(user)
	suite.Nil(org)
	suite.mockOrgRepo.AssertNotCalled(suite.T(), "FindOrganization", mock.Anything, mock.Anything)
}

func (suite *IdentityServiceTestSuite) TestResolve_DisabledSenderLooksUnknown() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByAddress", ctx, "+15551234567").
		Return(&domain.User{UserID: 7, OrganizationID: 99}, nil).Once()
	suite.mockOrgRepo.On("FindOrganization", ctx, int64(99)).Return(nil, apperrors.ErrNotFound).Once()

	_, _, err := suite.service.Resolve(ctx, "+15551234567")

	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.NotErrorIs(err, apperrors.ErrNotFound)
}

func (suite *IdentityServiceTestSuite) TestResolve_EmptyAddress() {
	_, _, err := suite.service.Resolve(context.Background(), "whatsapp:")

	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "FindUserByAddress", mock.Anything, mock.Anything)
}

func (suite *IdentityServiceTestSuite) TestResolve_StorageFailure() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByAddress", ctx, "+15551234567").Return(nil, errors.New("connection reset")).Once()

	_, _, err := suite.service.Resolve(ctx, "+15551234567")

	suite.ErrorIs(err, apperrors.ErrStorage)
	suite.NotErrorIs(err, apperrors.ErrUnauthorized)
}

func TestIdentityServiceTestSuite(t *testing.T) {
	suite.Run(t, new(IdentityServiceTestSuite))
}
