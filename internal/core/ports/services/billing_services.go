package services

import (
	"context"
	"time"

	"github.com/praxisbill/lpm_backend/internal/core/domain"
	"github.com/praxisbill/lpm_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// InvoiceReaderSvc defines read operations for invoices.
type InvoiceReaderSvc interface {
	// GetInvoice retrieves an invoice and its line items.
	GetInvoice(ctx context.Context, invoiceID string) (*domain.Invoice, []domain.InvoiceLineItem, error)

	// ListInvoices retrieves a paginated invoice list for a project.
	ListInvoices(ctx context.Context, projectID string, params dto.ListInvoicesParams) (*dto.ListInvoicesResponse, error)

	// AvailableCredit previews the upfront credit currently available on a proposal.
	AvailableCredit(ctx context.Context, proposalID string) (*dto.CreditSummaryResponse, error)
}

// InvoiceWriterSvc defines invoice-creating and state-changing operations.
type InvoiceWriterSvc interface {
	// GenerateInvoice turns a project's unbilled work into a DRAFT invoice.
	GenerateInvoice(ctx context.Context, projectID string, actor domain.Actor) (*domain.Invoice, []domain.InvoiceLineItem, error)

	// CreateUpfrontInvoice creates an upfront-payment invoice against a proposal.
	CreateUpfrontInvoice(ctx context.Context, req dto.CreateUpfrontInvoiceRequest, actor domain.Actor) (*domain.Invoice, error)

	// TransitionInvoice applies a status-machine action; marking an invoice PAID
	// triggers finder-fee computation (non-fatally).
	TransitionInvoice(ctx context.Context, invoiceID string, action domain.InvoiceAction, actor domain.Actor) (*domain.Invoice, error)
}

// InvoiceSvcFacade combines invoice service interfaces.
type InvoiceSvcFacade interface {
	InvoiceReaderSvc
	InvoiceWriterSvc
}

// FinderFeeSvcFacade exposes finder-fee computation and payout tracking.
type FinderFeeSvcFacade interface {
	// CalculateAndCreateFees computes finder fees for a newly paid invoice.
	CalculateAndCreateFees(ctx context.Context, invoiceID string, actorID string) ([]domain.FinderFee, error)

	// RecordPayment records a payout against a fee, enforcing the remaining-amount cap.
	RecordPayment(ctx context.Context, feeID string, amount decimal.Decimal, date time.Time, actorID string) (*domain.FinderFee, error)

	// ListFeesByInvoice returns the fees created for an invoice.
	ListFeesByInvoice(ctx context.Context, invoiceID string) ([]domain.FinderFee, error)
}

// TimesheetSvcFacade exposes timesheet entry operations.
type TimesheetSvcFacade interface {
	CreateEntry(ctx context.Context, req dto.CreateTimesheetRequest, actorID string) (*domain.TimesheetEntry, error)
	UpdateEntry(ctx context.Context, entryID string, req dto.UpdateTimesheetRequest, actorID string) (*domain.TimesheetEntry, error)
}

// ChargeSvcFacade exposes charge operations.
type ChargeSvcFacade interface {
	CreateCharge(ctx context.Context, req dto.CreateChargeRequest, actorID string) (*domain.Charge, error)

	// RollRecurring materializes every recurring charge due at or before asOf
	// and advances its next run date.
	RollRecurring(ctx context.Context, asOf time.Time, actorID string) ([]domain.Charge, error)
}

// ExpenseSvcFacade exposes expense operations.
type ExpenseSvcFacade interface {
	CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, actorID string) (*domain.Expense, error)
}

// ProposalSvcFacade exposes proposal operations.
type ProposalSvcFacade interface {
	CreateProposal(ctx context.Context, req dto.CreateProposalRequest, actorID string) (*domain.WorkProposal, error)
	GetProposal(ctx context.Context, proposalID string) (*domain.WorkProposal, error)
}
