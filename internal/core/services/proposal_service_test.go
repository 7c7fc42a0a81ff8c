package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/praxisbill/lpm_backend/internal/apperrors"
	"github.com/praxisbill/lpm_backend/internal/core/domain"
	portssvc "github.com/praxisbill/lpm_backend/internal/core/ports/services"
	"github.com/praxisbill/lpm_backend/internal/core/services"
	"github.com/praxisbill/lpm_backend/internal/dto"
)

type ProposalServiceTestSuite struct {
	suite.Suite
	mockProposalRepo *MockProposalRepository
	service          portssvc.ProposalSvcFacade

	actorID string
}

func (suite *ProposalServiceTestSuite) SetupTest() {
	suite.mockProposalRepo = new(MockProposalRepository)
	suite.service = services.NewProposalService(suite.mockProposalRepo)
	suite.actorID = uuid.NewString()
}

func (suite *ProposalServiceTestSuite) TestCreateProposal_PercentDiscount() {
	ctx := context.Background()
	clientID := uuid.NewString()
	req := dto.CreateProposalRequest{
		ClientID:        &clientID,
		CurrencyCode:    "EUR",
		TaxRate:         dec("23"),
		DiscountPercent: decPtr("10"),
	}

	suite.mockProposalRepo.On("SaveProposal", ctx, mock.MatchedBy(func(p domain.WorkProposal) bool {
		return p.Discount.Type == domain.DiscountPercent &&
			p.Discount.Value.Equal(dec("10")) &&
			p.CreatedBy == suite.actorID
	})).Return(nil).Once()

	proposal, err := suite.service.CreateProposal(ctx, req, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(domain.DiscountPercent, proposal.Discount.Type)
	suite.mockProposalRepo.AssertExpectations(suite.T())
}

func (suite *ProposalServiceTestSuite) TestCreateProposal_BothDiscountFieldsRejected() {
	ctx := context.Background()
	clientID := uuid.NewString()
	req := dto.CreateProposalRequest{
		ClientID:        &clientID,
		CurrencyCode:    "EUR",
		DiscountPercent: decPtr("10"),
		DiscountAmount:  decPtr("50"),
	}

	proposal, err := suite.service.CreateProposal(ctx, req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidDiscountConfig)
	suite.Nil(proposal)
	suite.mockProposalRepo.AssertNotCalled(suite.T(), "SaveProposal", mock.Anything, mock.Anything)
}

func (suite *ProposalServiceTestSuite) TestCreateProposal_NeedsExactlyOneParty() {
	ctx := context.Background()

	proposal, err := suite.service.CreateProposal(ctx, dto.CreateProposalRequest{CurrencyCode: "EUR"}, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(proposal)

	clientID := uuid.NewString()
	leadID := uuid.NewString()
	proposal, err = suite.service.CreateProposal(ctx, dto.CreateProposalRequest{
		ClientID:     &clientID,
		LeadID:       &leadID,
		CurrencyCode: "EUR",
	}, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(proposal)
}

func (suite *ProposalServiceTestSuite) TestCreateProposal_InvertedRateRange() {
	ctx := context.Background()
	clientID := uuid.NewString()
	req := dto.CreateProposalRequest{
		ClientID:     &clientID,
		CurrencyCode: "EUR",
		RateRangeMin: decPtr("100"),
		RateRangeMax: decPtr("50"),
	}

	proposal, err := suite.service.CreateProposal(ctx, req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(proposal)
}

func (suite *ProposalServiceTestSuite) TestGetProposal_NotFound() {
	ctx := context.Background()
	proposalID := uuid.NewString()

	suite.mockProposalRepo.On("FindProposalByID", ctx, proposalID).Return(nil, nil).Once()

	proposal, err := suite.service.GetProposal(ctx, proposalID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(proposal)
}

func TestProposalService(t *testing.T) {
	suite.Run(t, new(ProposalServiceTestSuite))
}
