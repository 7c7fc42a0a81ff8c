package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/praxisbill/lpm_backend/internal/apperrors"
	"github.com/praxisbill/lpm_backend/internal/core/domain"
	portsrepo "github.com/praxisbill/lpm_backend/internal/core/ports/repositories"
	portssvc "github.com/praxisbill/lpm_backend/internal/core/ports/services"
	"github.com/praxisbill/lpm_backend/internal/core/services"
	"github.com/praxisbill/lpm_backend/internal/dto"
	"github.com/praxisbill/lpm_backend/internal/utils/billing"
)

type InvoiceServiceTestSuite struct {
	suite.Suite
	mockInvoiceRepo   *MockInvoiceRepository
	mockProposalRepo  *MockProposalRepository
	mockProjectRepo   *MockProjectRepository
	mockTimesheetRepo *MockTimesheetRepository
	mockChargeRepo    *MockChargeRepository
	mockExpenseRepo   *MockExpenseRepository
	mockFinderFeeSvc  *MockFinderFeeService
	service           portssvc.InvoiceSvcFacade

	actor domain.Actor
	admin domain.Actor
}

func (suite *InvoiceServiceTestSuite) SetupTest() {
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockProposalRepo = new(MockProposalRepository)
	suite.mockProjectRepo = new(MockProjectRepository)
	suite.mockTimesheetRepo = new(MockTimesheetRepository)
	suite.mockChargeRepo = new(MockChargeRepository)
	suite.mockExpenseRepo = new(MockExpenseRepository)
	suite.mockFinderFeeSvc = new(MockFinderFeeService)
	suite.service = services.NewInvoiceService(
		suite.mockInvoiceRepo,
		suite.mockProposalRepo,
		suite.mockProjectRepo,
		suite.mockTimesheetRepo,
		suite.mockChargeRepo,
		suite.mockExpenseRepo,
		suite.mockFinderFeeSvc,
	)
	suite.actor = domain.Actor{UserID: uuid.NewString(), Role: domain.RoleMember}
	suite.admin = domain.Actor{UserID: uuid.NewString(), Role: domain.RoleAdmin}
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func strPtr(s string) *string { return &s }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// fixture returns a client-billed project, its proposal, one 10h x 50 entry
// and one 50 charge: a 550 raw subtotal.
func (suite *InvoiceServiceTestSuite) fixture() (domain.Project, domain.WorkProposal, []domain.TimesheetEntry, []domain.Charge) {
	proposalID := uuid.NewString()
	clientID := uuid.NewString()
	project := domain.Project{
		ProjectID:  uuid.NewString(),
		Name:       "Acme retainer",
		ProposalID: &proposalID,
		ClientID:   &clientID,
	}
	proposal := domain.WorkProposal{
		ProposalID:     proposalID,
		ClientID:       &clientID,
		ProposalNumber: strPtr("PROP-2026-014"),
		CurrencyCode:   "EUR",
		TaxRate:        decimal.Zero,
		Discount:       domain.NoDiscount(),
	}
	entries := []domain.TimesheetEntry{{
		EntryID:   uuid.NewString(),
		ProjectID: project.ProjectID,
		WorkerID:  uuid.NewString(),
		EntryDate: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		Hours:     dec("10"),
		Rate:      decPtr("50"),
	}}
	charges := []domain.Charge{{
		ChargeID:    uuid.NewString(),
		ProjectID:   project.ProjectID,
		Description: "Court filing fee",
		Quantity:    dec("1"),
		UnitPrice:   dec("50"),
		Amount:      dec("50"),
	}}
	return project, proposal, entries, charges
}

func (suite *InvoiceServiceTestSuite) TestGenerateInvoice_Success() {
	ctx := context.Background()
	project, proposal, entries, charges := suite.fixture()

	suite.mockProjectRepo.On("FindProjectByID", ctx, project.ProjectID).Return(&project, nil).Once()
	suite.mockTimesheetRepo.On("FindUnbilledByProject", ctx, project.ProjectID).Return(entries, nil).Once()
	suite.mockChargeRepo.On("FindUnbilledByProject", ctx, project.ProjectID).Return(charges, nil).Once()
	suite.mockExpenseRepo.On("FindUnbilledByProject", ctx, project.ProjectID).Return([]domain.Expense{}, nil).Once()
	suite.mockProposalRepo.On("FindProposalByID", ctx, proposal.ProposalID).Return(&proposal, nil).Once()
	suite.mockInvoiceRepo.On("FindPaidUpfrontInvoices", ctx, proposal.ProposalID).Return([]domain.Invoice{}, nil).Once()
	suite.mockInvoiceRepo.On("CountInvoicesForProposal", ctx, proposal.ProposalID).Return(0, nil).Once()
	suite.mockInvoiceRepo.On("InvoiceNumberExists", ctx, "INV-2026-014-1").Return(false, nil).Once()

	suite.mockInvoiceRepo.On("CreateInvoiceWithLineItems", ctx,
		mock.MatchedBy(func(inv domain.Invoice) bool {
			return inv.Subtotal.Equal(dec("550")) &&
				inv.Amount.Equal(dec("550")) &&
				inv.CreditApplied.IsZero() &&
				inv.Status == domain.InvoiceDraft &&
				inv.InvoiceNumber != nil && *inv.InvoiceNumber == "INV-2026-014-1" &&
				inv.CreatedBy == suite.actor.UserID
		}),
		mock.AnythingOfType("[]domain.InvoiceLineItem"),
		mock.MatchedBy(func(src portsrepo.BilledSources) bool {
			return len(src.TimesheetEntryIDs) == 1 && src.TimesheetEntryIDs[0] == entries[0].EntryID &&
				len(src.ChargeIDs) == 1 && src.ChargeIDs[0] == charges[0].ChargeID &&
				len(src.ExpenseIDs) == 0
		}),
		mock.Anything,
	).Return(&domain.Invoice{InvoiceID: uuid.NewString(), Subtotal: dec("550"), Amount: dec("550"), CreditApplied: decimal.Zero}, nil).Once()

	invoice, lines, err := suite.service.GenerateInvoice(ctx, project.ProjectID, suite.actor)

	suite.Require().NoError(err)
	suite.Require().NotNil(invoice)
	suite.Len(lines, 2)
	suite.Equal(domain.LineItemTimesheet, lines[0].Type)
	suite.True(lines[0].Amount.Equal(dec("500")))
	suite.Equal(domain.LineItemCharge, lines[1].Type)
	suite.True(lines[1].Amount.Equal(dec("50")))

	suite.mockInvoiceRepo.AssertExpectations(suite.T())
	suite.mockProjectRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestGenerateInvoice_AppliesUpfrontCredit() {
	ctx := context.Background()
	project, proposal, entries, charges := suite.fixture()

	upfront := domain.Invoice{
		InvoiceID:        uuid.NewString(),
		InvoiceNumber:    strPtr("INV-2026-014-1"),
		Amount:           dec("200"),
		CreditApplied:    decimal.Zero,
		IsUpfrontPayment: true,
		Status:           domain.InvoicePaid,
	}

	suite.mockProjectRepo.On("FindProjectByID", ctx, project.ProjectID).Return(&project, nil).Once()
	suite.mockTimesheetRepo.On("FindUnbilledByProject", ctx, project.ProjectID).Return(entries, nil).Once()
	suite.mockChargeRepo.On("FindUnbilledByProject", ctx, project.ProjectID).Return(charges, nil).Once()
	suite.mockExpenseRepo.On("FindUnbilledByProject", ctx, project.ProjectID).Return([]domain.Expense{}, nil).Once()
	suite.mockProposalRepo.On("FindProposalByID", ctx, proposal.ProposalID).Return(&proposal, nil).Once()
	suite.mockInvoiceRepo.On("FindPaidUpfrontInvoices", ctx, proposal.ProposalID).Return([]domain.Invoice{upfront}, nil).Once()
	suite.mockInvoiceRepo.On("CountInvoicesForProposal", ctx, proposal.ProposalID).Return(1, nil).Once()
	suite.mockInvoiceRepo.On("InvoiceNumberExists", ctx, "INV-2026-014-2").Return(false, nil).Once()

	suite.mockInvoiceRepo.On("CreateInvoiceWithLineItems", ctx,
		mock.MatchedBy(func(inv domain.Invoice) bool {
			// Subtotal keeps the raw figure; credit shows up in Amount only.
			return inv.Subtotal.Equal(dec("550")) &&
				inv.CreditApplied.Equal(dec("200")) &&
				inv.Amount.Equal(dec("350"))
		}),
		mock.AnythingOfType("[]domain.InvoiceLineItem"),
		mock.AnythingOfType("repositories.BilledSources"),
		mock.MatchedBy(func(allocs []billing.CreditAllocation) bool {
			return len(allocs) == 1 &&
				allocs[0].InvoiceID == upfront.InvoiceID &&
				allocs[0].Amount.Equal(dec("200"))
		}),
	).Return(&domain.Invoice{InvoiceID: uuid.NewString()}, nil).Once()

	_, lines, err := suite.service.GenerateInvoice(ctx, project.ProjectID, suite.actor)

	suite.Require().NoError(err)
	suite.Require().Len(lines, 3)
	suite.Equal(domain.LineItemCredit, lines[0].Type)
	suite.True(lines[0].IsCredit)
	suite.True(lines[0].Amount.Equal(dec("-200")))
	suite.Contains(lines[0].Description, "INV-2026-014-1")

	// Line amounts minus credit reconcile with the invoice amount.
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Amount)
	}
	suite.True(total.Equal(dec("350")))

	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestGenerateInvoice_CreditMayExceedRemainingAmount() {
	ctx := context.Background()
	project, proposal, entries, charges := suite.fixture()

	// A large retainer leaves the applied credit bigger than what is left to
	// pay. 550 - 400 = 150 due, with the full 400 recorded as applied.
	upfront := domain.Invoice{
		InvoiceID:        uuid.NewString(),
		InvoiceNumber:    strPtr("INV-2026-014-1"),
		Amount:           dec("400"),
		CreditApplied:    decimal.Zero,
		IsUpfrontPayment: true,
		Status:           domain.InvoicePaid,
	}

	suite.mockProjectRepo.On("FindProjectByID", ctx, project.ProjectID).Return(&project, nil).Once()
	suite.mockTimesheetRepo.On("FindUnbilledByProject", ctx, project.ProjectID).Return(entries, nil).Once()
	suite.mockChargeRepo.On("FindUnbilledByProject", ctx, project.ProjectID).Return(charges, nil).Once()
	suite.mockExpenseRepo.On("FindUnbilledByProject", ctx, project.ProjectID).Return([]domain.Expense{}, nil).Once()
	suite.mockProposalRepo.On("FindProposalByID", ctx, proposal.ProposalID).Return(&proposal, nil).Once()
	suite.mockInvoiceRepo.On("FindPaidUpfrontInvoices", ctx, proposal.ProposalID).Return([]domain.Invoice{upfront}, nil).Once()
	suite.mockInvoiceRepo.On("CountInvoicesForProposal", ctx, proposal.ProposalID).Return(1, nil).Once()
	suite.mockInvoiceRepo.On("InvoiceNumberExists", ctx, "INV-2026-014-2").Return(false, nil).Once()

	suite.mockInvoiceRepo.On("CreateInvoiceWithLineItems", ctx,
		mock.MatchedBy(func(inv domain.Invoice) bool {
			return inv.Subtotal.Equal(dec("550")) &&
				inv.CreditApplied.Equal(dec("400")) &&
				inv.Amount.Equal(dec("150")) &&
				inv.CreditApplied.GreaterThan(inv.Amount)
		}),
		mock.AnythingOfType("[]domain.InvoiceLineItem"),
		mock.AnythingOfType("repositories.BilledSources"),
		mock.MatchedBy(func(allocs []billing.CreditAllocation) bool {
			return len(allocs) == 1 && allocs[0].Amount.Equal(dec("400"))
		}),
	).Return(&domain.Invoice{InvoiceID: uuid.NewString()}, nil).Once()

	_, lines, err := suite.service.GenerateInvoice(ctx, project.ProjectID, suite.actor)

	suite.Require().NoError(err)
	suite.Require().Len(lines, 3)
	suite.True(lines[0].Amount.Equal(dec("-400")))
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestGenerateInvoice_NoUnbilledItems() {
	ctx := context.Background()
	project, _, _, _ := suite.fixture()

	suite.mockProjectRepo.On("FindProjectByID", ctx, project.ProjectID).Return(&project, nil).Once()
	suite.mockTimesheetRepo.On("FindUnbilledByProject", ctx, project.ProjectID).Return([]domain.TimesheetEntry{}, nil).Once()
	suite.mockChargeRepo.On("FindUnbilledByProject", ctx, project.ProjectID).Return([]domain.Charge{}, nil).Once()
	suite.mockExpenseRepo.On("FindUnbilledByProject", ctx, project.ProjectID).Return([]domain.Expense{}, nil).Once()

	invoice, lines, err := suite.service.GenerateInvoice(ctx, project.ProjectID, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNoUnbilledItems)
	suite.Nil(invoice)
	suite.Nil(lines)

	// Nothing was written.
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "CreateInvoiceWithLineItems", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestGenerateInvoice_ProjectNotFound() {
	ctx := context.Background()
	projectID := uuid.NewString()

	suite.mockProjectRepo.On("FindProjectByID", ctx, projectID).Return(nil, nil).Once()

	invoice, _, err := suite.service.GenerateInvoice(ctx, projectID, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(invoice)
}

func (suite *InvoiceServiceTestSuite) TestGenerateInvoice_DiscountAndTaxFromProposal() {
	ctx := context.Background()
	project, proposal, entries, charges := suite.fixture()
	proposal.Discount = domain.PercentDiscount(dec("10"))
	proposal.TaxRate = dec("23")

	suite.mockProjectRepo.On("FindProjectByID", ctx, project.ProjectID).Return(&project, nil).Once()
	suite.mockTimesheetRepo.On("FindUnbilledByProject", ctx, project.ProjectID).Return(entries, nil).Once()
	suite.mockChargeRepo.On("FindUnbilledByProject", ctx, project.ProjectID).Return(charges, nil).Once()
	suite.mockExpenseRepo.On("FindUnbilledByProject", ctx, project.ProjectID).Return([]domain.Expense{}, nil).Once()
	suite.mockProposalRepo.On("FindProposalByID", ctx, proposal.ProposalID).Return(&proposal, nil).Once()
	suite.mockInvoiceRepo.On("FindPaidUpfrontInvoices", ctx, proposal.ProposalID).Return([]domain.Invoice{}, nil).Once()
	suite.mockInvoiceRepo.On("CountInvoicesForProposal", ctx, proposal.ProposalID).Return(0, nil).Once()
	suite.mockInvoiceRepo.On("InvoiceNumberExists", ctx, mock.AnythingOfType("string")).Return(false, nil).Once()

	// 550 - 10% = 495, +23% tax = 608.85
	suite.mockInvoiceRepo.On("CreateInvoiceWithLineItems", ctx,
		mock.MatchedBy(func(inv domain.Invoice) bool {
			return inv.Amount.Equal(dec("608.85")) &&
				inv.Discount.Type == domain.DiscountPercent &&
				inv.TaxRate.Equal(dec("23"))
		}),
		mock.Anything, mock.Anything, mock.Anything,
	).Return(&domain.Invoice{InvoiceID: uuid.NewString()}, nil).Once()

	_, _, err := suite.service.GenerateInvoice(ctx, project.ProjectID, suite.actor)

	suite.Require().NoError(err)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestCreateUpfrontInvoice_Success() {
	ctx := context.Background()
	_, proposal, _, _ := suite.fixture()
	req := dto.CreateUpfrontInvoiceRequest{ProposalID: proposal.ProposalID, Amount: dec("200")}

	suite.mockProposalRepo.On("FindProposalByID", ctx, proposal.ProposalID).Return(&proposal, nil).Once()
	suite.mockInvoiceRepo.On("CountInvoicesForProposal", ctx, proposal.ProposalID).Return(0, nil).Once()
	suite.mockInvoiceRepo.On("InvoiceNumberExists", ctx, "INV-2026-014-1").Return(false, nil).Once()
	suite.mockInvoiceRepo.On("CreateInvoiceWithLineItems", ctx,
		mock.MatchedBy(func(inv domain.Invoice) bool {
			return inv.IsUpfrontPayment &&
				inv.Subtotal.Equal(dec("200")) &&
				inv.Amount.Equal(dec("200")) &&
				inv.Status == domain.InvoiceDraft
		}),
		mock.MatchedBy(func(lines []domain.InvoiceLineItem) bool {
			return len(lines) == 1 && lines[0].Description == "Upfront payment"
		}),
		mock.AnythingOfType("repositories.BilledSources"),
		mock.Anything,
	).Return(&domain.Invoice{InvoiceID: uuid.NewString(), IsUpfrontPayment: true}, nil).Once()

	invoice, err := suite.service.CreateUpfrontInvoice(ctx, req, suite.actor)

	suite.Require().NoError(err)
	suite.Require().NotNil(invoice)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestCreateUpfrontInvoice_NonPositiveAmount() {
	ctx := context.Background()
	req := dto.CreateUpfrontInvoiceRequest{ProposalID: uuid.NewString(), Amount: decimal.Zero}

	invoice, err := suite.service.CreateUpfrontInvoice(ctx, req, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(invoice)
}

func (suite *InvoiceServiceTestSuite) TestTransitionInvoice_MarkPaidTriggersFinderFees() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	existing := &domain.Invoice{InvoiceID: invoiceID, Status: domain.InvoiceApproved, Amount: dec("1000")}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).Return(existing, nil).Once()
	suite.mockInvoiceRepo.On("UpdateInvoiceStatus", ctx, mock.MatchedBy(func(inv domain.Invoice) bool {
		return inv.Status == domain.InvoicePaid && inv.PaidAt != nil
	}), domain.InvoiceApproved).Return(nil).Once()
	suite.mockFinderFeeSvc.On("CalculateAndCreateFees", ctx, invoiceID, suite.admin.UserID).Return([]domain.FinderFee{}, nil).Once()

	updated, err := suite.service.TransitionInvoice(ctx, invoiceID, domain.ActionMarkPaid, suite.admin)

	suite.Require().NoError(err)
	suite.Equal(domain.InvoicePaid, updated.Status)
	suite.NotNil(updated.PaidAt)
	suite.mockFinderFeeSvc.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestTransitionInvoice_FinderFeeFailureIsNonFatal() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	existing := &domain.Invoice{InvoiceID: invoiceID, Status: domain.InvoiceApproved, Amount: dec("1000")}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).Return(existing, nil).Once()
	suite.mockInvoiceRepo.On("UpdateInvoiceStatus", ctx, mock.AnythingOfType("domain.Invoice"), domain.InvoiceApproved).Return(nil).Once()
	suite.mockFinderFeeSvc.On("CalculateAndCreateFees", ctx, invoiceID, suite.admin.UserID).Return(nil, assert.AnError).Once()

	updated, err := suite.service.TransitionInvoice(ctx, invoiceID, domain.ActionMarkPaid, suite.admin)

	// The PAID transition stands even though fee computation failed.
	suite.Require().NoError(err)
	suite.Equal(domain.InvoicePaid, updated.Status)
}

func (suite *InvoiceServiceTestSuite) TestTransitionInvoice_CancelReleasesSourcesAtomically() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	existing := &domain.Invoice{InvoiceID: invoiceID, Status: domain.InvoiceDraft}

	// Cancellation goes through the single repository call that updates the
	// status and releases the billed sources together.
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).Return(existing, nil).Once()
	suite.mockInvoiceRepo.On("CancelInvoice", ctx, mock.MatchedBy(func(inv domain.Invoice) bool {
		return inv.Status == domain.InvoiceCancelled && inv.LastUpdatedBy == suite.actor.UserID
	}), domain.InvoiceDraft).Return(nil).Once()

	updated, err := suite.service.TransitionInvoice(ctx, invoiceID, domain.ActionCancel, suite.actor)

	suite.Require().NoError(err)
	suite.Equal(domain.InvoiceCancelled, updated.Status)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "UpdateInvoiceStatus", mock.Anything, mock.Anything, mock.Anything)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestTransitionInvoice_ConcurrentTransitionConflicts() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	existing := &domain.Invoice{InvoiceID: invoiceID, Status: domain.InvoiceSubmitted}

	// Another transition landed between the read and the write; the
	// status-guarded update reports the conflict instead of clobbering it.
	conflict := apperrors.NewAppError(409, "invoice "+invoiceID+" was modified concurrently", nil)
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).Return(existing, nil).Once()
	suite.mockInvoiceRepo.On("UpdateInvoiceStatus", ctx, mock.AnythingOfType("domain.Invoice"), domain.InvoiceSubmitted).Return(conflict).Once()

	updated, err := suite.service.TransitionInvoice(ctx, invoiceID, domain.ActionApprove, suite.admin)

	suite.Require().Error(err)
	var appErr *apperrors.AppError
	suite.Require().ErrorAs(err, &appErr)
	suite.Equal(409, appErr.Code)
	suite.Nil(updated)
	suite.mockFinderFeeSvc.AssertNotCalled(suite.T(), "CalculateAndCreateFees", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestTransitionInvoice_MemberCannotApprove() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	existing := &domain.Invoice{InvoiceID: invoiceID, Status: domain.InvoiceSubmitted}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).Return(existing, nil).Once()

	updated, err := suite.service.TransitionInvoice(ctx, invoiceID, domain.ActionApprove, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(updated)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "UpdateInvoiceStatus", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestTransitionInvoice_IllegalFromPaid() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	existing := &domain.Invoice{InvoiceID: invoiceID, Status: domain.InvoicePaid}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).Return(existing, nil).Once()

	updated, err := suite.service.TransitionInvoice(ctx, invoiceID, domain.ActionCancel, suite.admin)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
	suite.Nil(updated)
}

func (suite *InvoiceServiceTestSuite) TestAvailableCredit_SkipsExhaustedSources() {
	ctx := context.Background()
	_, proposal, _, _ := suite.fixture()
	upfronts := []domain.Invoice{
		{InvoiceID: "up-1", Amount: dec("200"), CreditApplied: dec("200")},
		{InvoiceID: "up-2", Amount: dec("300"), CreditApplied: dec("120")},
	}

	suite.mockProposalRepo.On("FindProposalByID", ctx, proposal.ProposalID).Return(&proposal, nil).Once()
	suite.mockInvoiceRepo.On("FindPaidUpfrontInvoices", ctx, proposal.ProposalID).Return(upfronts, nil).Once()

	resp, err := suite.service.AvailableCredit(ctx, proposal.ProposalID)

	suite.Require().NoError(err)
	suite.Require().Len(resp.Sources, 1)
	suite.Equal("up-2", resp.Sources[0].InvoiceID)
	suite.True(resp.TotalAvailable.Equal(dec("180")))
}

func (suite *InvoiceServiceTestSuite) TestAvailableCredit_ProposalNotFound() {
	ctx := context.Background()
	proposalID := uuid.NewString()

	suite.mockProposalRepo.On("FindProposalByID", ctx, proposalID).Return(nil, nil).Once()

	resp, err := suite.service.AvailableCredit(ctx, proposalID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(resp)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "FindPaidUpfrontInvoices", mock.Anything, mock.Anything)
}

func TestInvoiceService(t *testing.T) {
	suite.Run(t, new(InvoiceServiceTestSuite))
}
