package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/praxisbill/lpm_backend/internal/core/domain"
	portsrepo "github.com/praxisbill/lpm_backend/internal/core/ports/repositories"
	"github.com/praxisbill/lpm_backend/internal/utils/billing"
)

// --- Mock ProposalRepository ---
type MockProposalRepository struct {
	mock.Mock
}

func (m *MockProposalRepository) FindProposalByID(ctx context.Context, proposalID string) (*domain.WorkProposal, error) {
	args := m.Called(ctx, proposalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkProposal), args.Error(1)
}

func (m *MockProposalRepository) SaveProposal(ctx context.Context, proposal domain.WorkProposal) error {
	args := m.Called(ctx, proposal)
	return args.Error(0)
}

func (m *MockProposalRepository) UpdateProposal(ctx context.Context, proposal domain.WorkProposal) error {
	args := m.Called(ctx, proposal)
	return args.Error(0)
}

// --- Mock ProjectRepository ---
type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

// --- Mock WorkerRepository ---
type MockWorkerRepository struct {
	mock.Mock
}

func (m *MockWorkerRepository) FindWorkerByID(ctx context.Context, workerID string) (*domain.WorkerProfile, error) {
	args := m.Called(ctx, workerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkerProfile), args.Error(1)
}

// --- Mock TimesheetRepository ---
type MockTimesheetRepository struct {
	mock.Mock
}

func (m *MockTimesheetRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.TimesheetEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TimesheetEntry), args.Error(1)
}

func (m *MockTimesheetRepository) FindUnbilledByProject(ctx context.Context, projectID string) ([]domain.TimesheetEntry, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TimesheetEntry), args.Error(1)
}

func (m *MockTimesheetRepository) SaveEntry(ctx context.Context, entry domain.TimesheetEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockTimesheetRepository) UpdateEntry(ctx context.Context, entry domain.TimesheetEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// --- Mock ChargeRepository ---
type MockChargeRepository struct {
	mock.Mock
}

func (m *MockChargeRepository) FindUnbilledByProject(ctx context.Context, projectID string) ([]domain.Charge, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Charge), args.Error(1)
}

func (m *MockChargeRepository) FindDueRecurring(ctx context.Context, asOf time.Time) ([]domain.Charge, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Charge), args.Error(1)
}

func (m *MockChargeRepository) SaveCharge(ctx context.Context, charge domain.Charge) error {
	args := m.Called(ctx, charge)
	return args.Error(0)
}

func (m *MockChargeRepository) UpdateCharge(ctx context.Context, charge domain.Charge) error {
	args := m.Called(ctx, charge)
	return args.Error(0)
}

// --- Mock ExpenseRepository ---
type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) FindUnbilledByProject(ctx context.Context, projectID string) ([]domain.Expense, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

// --- Mock InvoiceRepository ---
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindLineItemsByInvoiceID(ctx context.Context, invoiceID string) ([]domain.InvoiceLineItem, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InvoiceLineItem), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoicesByProject(ctx context.Context, projectID string, limit int, nextToken *string) ([]domain.Invoice, *string, error) {
	args := m.Called(ctx, projectID, limit, nextToken)
	var invoices []domain.Invoice
	if args.Get(0) != nil {
		invoices = args.Get(0).([]domain.Invoice)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return invoices, token, args.Error(2)
}

func (m *MockInvoiceRepository) CountInvoicesForProposal(ctx context.Context, proposalID string) (int, error) {
	args := m.Called(ctx, proposalID)
	return args.Int(0), args.Error(1)
}

func (m *MockInvoiceRepository) InvoiceNumberExists(ctx context.Context, number string) (bool, error) {
	args := m.Called(ctx, number)
	return args.Bool(0), args.Error(1)
}

func (m *MockInvoiceRepository) FindPaidUpfrontInvoices(ctx context.Context, proposalID string) ([]domain.Invoice, error) {
	args := m.Called(ctx, proposalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) CreateInvoiceWithLineItems(ctx context.Context, invoice domain.Invoice, lines []domain.InvoiceLineItem, sources portsrepo.BilledSources, creditAllocs []billing.CreditAllocation) (*domain.Invoice, error) {
	args := m.Called(ctx, invoice, lines, sources, creditAllocs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) UpdateInvoiceStatus(ctx context.Context, invoice domain.Invoice, prior domain.InvoiceStatus) error {
	args := m.Called(ctx, invoice, prior)
	return args.Error(0)
}

func (m *MockInvoiceRepository) CancelInvoice(ctx context.Context, invoice domain.Invoice, prior domain.InvoiceStatus) error {
	args := m.Called(ctx, invoice, prior)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockInvoiceRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock ClientRepository ---
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

// --- Mock FinderFeeRepository ---
type MockFinderFeeRepository struct {
	mock.Mock
}

func (m *MockFinderFeeRepository) FindFeeByID(ctx context.Context, feeID string) (*domain.FinderFee, error) {
	args := m.Called(ctx, feeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinderFee), args.Error(1)
}

func (m *MockFinderFeeRepository) FindFeesByInvoiceID(ctx context.Context, invoiceID string) ([]domain.FinderFee, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FinderFee), args.Error(1)
}

func (m *MockFinderFeeRepository) SaveFees(ctx context.Context, fees []domain.FinderFee) error {
	args := m.Called(ctx, fees)
	return args.Error(0)
}

func (m *MockFinderFeeRepository) RecordPayment(ctx context.Context, payment domain.FinderFeePayment, fee domain.FinderFee, priorPaid decimal.Decimal) error {
	args := m.Called(ctx, payment, fee, priorPaid)
	return args.Error(0)
}

// --- Mock FinderFeeService ---
type MockFinderFeeService struct {
	mock.Mock
}

func (m *MockFinderFeeService) CalculateAndCreateFees(ctx context.Context, invoiceID string, actorID string) ([]domain.FinderFee, error) {
	args := m.Called(ctx, invoiceID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FinderFee), args.Error(1)
}

func (m *MockFinderFeeService) RecordPayment(ctx context.Context, feeID string, amount decimal.Decimal, date time.Time, actorID string) (*domain.FinderFee, error) {
	args := m.Called(ctx, feeID, amount, date, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinderFee), args.Error(1)
}

func (m *MockFinderFeeService) ListFeesByInvoice(ctx context.Context, invoiceID string) ([]domain.FinderFee, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FinderFee), args.Error(1)
}

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
