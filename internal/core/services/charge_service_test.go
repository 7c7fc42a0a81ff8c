package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/praxisbill/lpm_backend/internal/apperrors"
	"github.com/praxisbill/lpm_backend/internal/core/domain"
	portssvc "github.com/praxisbill/lpm_backend/internal/core/ports/services"
	"github.com/praxisbill/lpm_backend/internal/core/services"
	"github.com/praxisbill/lpm_backend/internal/dto"
)

type ChargeServiceTestSuite struct {
	suite.Suite
	mockChargeRepo  *MockChargeRepository
	mockProjectRepo *MockProjectRepository
	service         portssvc.ChargeSvcFacade

	actorID string
}

func (suite *ChargeServiceTestSuite) SetupTest() {
	suite.mockChargeRepo = new(MockChargeRepository)
	suite.mockProjectRepo = new(MockProjectRepository)
	suite.service = services.NewChargeService(suite.mockChargeRepo, suite.mockProjectRepo)
	suite.actorID = uuid.NewString()
}

func (suite *ChargeServiceTestSuite) TestCreateCharge_AmountIsQuantityTimesUnitPrice() {
	ctx := context.Background()
	clientID := uuid.NewString()
	project := domain.Project{ProjectID: uuid.NewString(), ClientID: &clientID}
	req := dto.CreateChargeRequest{
		ProjectID:   project.ProjectID,
		Description: "Document review batch",
		Quantity:    dec("3"),
		UnitPrice:   dec("33.335"),
	}

	suite.mockProjectRepo.On("FindProjectByID", ctx, project.ProjectID).Return(&project, nil).Once()
	suite.mockChargeRepo.On("SaveCharge", ctx, mock.MatchedBy(func(c domain.Charge) bool {
		return c.Amount.Equal(dec("100.01")) && c.Recurrence == domain.RecurrenceNone
	})).Return(nil).Once()

	charge, err := suite.service.CreateCharge(ctx, req, suite.actorID)

	suite.Require().NoError(err)
	suite.True(charge.Amount.Equal(dec("100.01")))
	suite.mockChargeRepo.AssertExpectations(suite.T())
}

func (suite *ChargeServiceTestSuite) TestCreateCharge_RecurringNeedsNextRunDate() {
	ctx := context.Background()
	clientID := uuid.NewString()
	project := domain.Project{ProjectID: uuid.NewString(), ClientID: &clientID}
	req := dto.CreateChargeRequest{
		ProjectID:   project.ProjectID,
		Description: "Monthly retainer",
		Quantity:    dec("1"),
		UnitPrice:   dec("500"),
		Recurrence:  "MONTHLY",
	}

	suite.mockProjectRepo.On("FindProjectByID", ctx, project.ProjectID).Return(&project, nil).Once()

	charge, err := suite.service.CreateCharge(ctx, req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(charge)
}

func (suite *ChargeServiceTestSuite) TestRollRecurring_MaterializesAndAdvances() {
	ctx := context.Background()
	asOf := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	runAt := time.Date(2026, 3, 28, 0, 0, 0, 0, time.UTC)
	template := domain.Charge{
		ChargeID:    uuid.NewString(),
		ProjectID:   uuid.NewString(),
		Description: "Monthly retainer",
		Quantity:    dec("1"),
		UnitPrice:   dec("500"),
		Amount:      dec("500"),
		Recurrence:  domain.RecurrenceMonthly,
		NextRunAt:   &runAt,
	}

	suite.mockChargeRepo.On("FindDueRecurring", ctx, asOf).Return([]domain.Charge{template}, nil).Once()
	suite.mockChargeRepo.On("SaveCharge", ctx, mock.MatchedBy(func(c domain.Charge) bool {
		// Materialized instance is a plain one-off charge.
		return c.ChargeID != template.ChargeID &&
			c.Recurrence == domain.RecurrenceNone &&
			c.NextRunAt == nil &&
			c.Amount.Equal(dec("500"))
	})).Return(nil).Once()
	suite.mockChargeRepo.On("UpdateCharge", ctx, mock.MatchedBy(func(c domain.Charge) bool {
		return c.ChargeID == template.ChargeID &&
			c.NextRunAt != nil &&
			c.NextRunAt.Equal(time.Date(2026, 4, 28, 0, 0, 0, 0, time.UTC))
	})).Return(nil).Once()

	materialized, err := suite.service.RollRecurring(ctx, asOf, suite.actorID)

	suite.Require().NoError(err)
	suite.Len(materialized, 1)
	suite.mockChargeRepo.AssertExpectations(suite.T())
}

func (suite *ChargeServiceTestSuite) TestRollRecurring_NothingDue() {
	ctx := context.Background()
	asOf := time.Now().UTC()

	suite.mockChargeRepo.On("FindDueRecurring", ctx, asOf).Return([]domain.Charge{}, nil).Once()

	materialized, err := suite.service.RollRecurring(ctx, asOf, suite.actorID)

	suite.Require().NoError(err)
	suite.Empty(materialized)
	suite.mockChargeRepo.AssertNotCalled(suite.T(), "SaveCharge", mock.Anything, mock.Anything)
}

func TestChargeService(t *testing.T) {
	suite.Run(t, new(ChargeServiceTestSuite))
}
