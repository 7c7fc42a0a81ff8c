package repositories

import (
	"context"
	"time"

	"github.com/praxisbill/lpm_backend/internal/core/domain"
	"github.com/praxisbill/lpm_backend/internal/utils/billing"
	"github.com/shopspring/decimal"
)

// ProposalReader defines read operations for proposal data.
type ProposalReader interface {
	// FindProposalByID retrieves a proposal by its unique identifier.
	FindProposalByID(ctx context.Context, proposalID string) (*domain.WorkProposal, error)
}

// ProposalWriter defines write operations for proposal data.
type ProposalWriter interface {
	// SaveProposal persists a new proposal.
	SaveProposal(ctx context.Context, proposal domain.WorkProposal) error

	// UpdateProposal applies an administrative correction to a proposal.
	UpdateProposal(ctx context.Context, proposal domain.WorkProposal) error
}

// ProposalRepositoryFacade combines proposal repository interfaces.
type ProposalRepositoryFacade interface {
	ProposalReader
	ProposalWriter
}

// ProjectReader defines read operations for project data.
type ProjectReader interface {
	FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error)
}

// WorkerReader defines read operations for worker profiles.
type WorkerReader interface {
	FindWorkerByID(ctx context.Context, workerID string) (*domain.WorkerProfile, error)
}

// TimesheetReader defines read operations for timesheet entries.
type TimesheetReader interface {
	FindEntryByID(ctx context.Context, entryID string) (*domain.TimesheetEntry, error)

	// FindUnbilledByProject returns entries with billable=true and billed=false.
	FindUnbilledByProject(ctx context.Context, projectID string) ([]domain.TimesheetEntry, error)
}

// TimesheetWriter defines write operations for timesheet entries.
type TimesheetWriter interface {
	SaveEntry(ctx context.Context, entry domain.TimesheetEntry) error
	UpdateEntry(ctx context.Context, entry domain.TimesheetEntry) error
}

// TimesheetRepositoryFacade combines timesheet repository interfaces.
type TimesheetRepositoryFacade interface {
	TimesheetReader
	TimesheetWriter
}

// ChargeReader defines read operations for charges.
type ChargeReader interface {
	// FindUnbilledByProject returns charges with billed=false.
	FindUnbilledByProject(ctx context.Context, projectID string) ([]domain.Charge, error)

	// FindDueRecurring returns recurring charges whose next run date is at or before asOf.
	FindDueRecurring(ctx context.Context, asOf time.Time) ([]domain.Charge, error)
}

// ChargeWriter defines write operations for charges.
type ChargeWriter interface {
	SaveCharge(ctx context.Context, charge domain.Charge) error
	UpdateCharge(ctx context.Context, charge domain.Charge) error
}

// ChargeRepositoryFacade combines charge repository interfaces.
type ChargeRepositoryFacade interface {
	ChargeReader
	ChargeWriter
}

// ExpenseReader defines read operations for expenses.
type ExpenseReader interface {
	// FindUnbilledByProject returns expenses with billable=true and no billed timestamp.
	FindUnbilledByProject(ctx context.Context, projectID string) ([]domain.Expense, error)
}

// ExpenseWriter defines write operations for expenses.
type ExpenseWriter interface {
	SaveExpense(ctx context.Context, expense domain.Expense) error
}

// ExpenseRepositoryFacade combines expense repository interfaces.
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseWriter
}

// BilledSources lists the source rows an invoice consumes; the repository marks
// them billed inside the invoice-creation transaction.
type BilledSources struct {
	TimesheetEntryIDs []string
	ChargeIDs         []string
	ExpenseIDs        []string
}

// InvoiceReader defines read operations for invoice data.
type InvoiceReader interface {
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	FindLineItemsByInvoiceID(ctx context.Context, invoiceID string) ([]domain.InvoiceLineItem, error)

	// ListInvoicesByProject retrieves a paginated invoice list using token-based pagination.
	ListInvoicesByProject(ctx context.Context, projectID string, limit int, nextToken *string) ([]domain.Invoice, *string, error)

	// CountInvoicesForProposal counts all invoices (any status, upfront included)
	// referencing a proposal. Drives the invoice-number suffix.
	CountInvoicesForProposal(ctx context.Context, proposalID string) (int, error)

	// InvoiceNumberExists reports whether a number is already used system-wide.
	InvoiceNumberExists(ctx context.Context, number string) (bool, error)

	// FindPaidUpfrontInvoices returns PAID upfront invoices for a proposal,
	// ordered by creation time ascending (FIFO credit order).
	FindPaidUpfrontInvoices(ctx context.Context, proposalID string) ([]domain.Invoice, error)
}

// InvoiceWriter defines write operations for invoice data.
type InvoiceWriter interface {
	// CreateInvoiceWithLineItems atomically persists an invoice with its line
	// items, marks the consumed sources billed, and draws the credit
	// allocations down from their upfront invoices. The proposal row is locked
	// for the duration, and the invoice number is re-derived on collision.
	CreateInvoiceWithLineItems(ctx context.Context, invoice domain.Invoice, lines []domain.InvoiceLineItem, sources BilledSources, creditAllocs []billing.CreditAllocation) (*domain.Invoice, error)

	// UpdateInvoiceStatus records a state-machine transition result. The
	// update only applies while the row still holds prior; a concurrent
	// transition surfaces as a 409 AppError.
	UpdateInvoiceStatus(ctx context.Context, invoice domain.Invoice, prior domain.InvoiceStatus) error

	// CancelInvoice marks the invoice cancelled and, in the same transaction,
	// un-bills every source row referenced by its line items and restores any
	// credit drawn from upfront invoices. The update only applies while the
	// row still holds prior; a concurrent transition surfaces as a 409
	// AppError.
	CancelInvoice(ctx context.Context, invoice domain.Invoice, prior domain.InvoiceStatus) error
}

// InvoiceRepositoryFacade combines invoice repository interfaces.
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}

// InvoiceRepositoryWithTx extends InvoiceRepositoryFacade with transaction capabilities.
type InvoiceRepositoryWithTx interface {
	InvoiceRepositoryFacade
	TransactionManager
}

// ClientReader defines read operations for clients (including configured finders).
type ClientReader interface {
	FindClientByID(ctx context.Context, clientID string) (*domain.Client, error)
}

// FinderFeeReader defines read operations for finder fees.
type FinderFeeReader interface {
	FindFeeByID(ctx context.Context, feeID string) (*domain.FinderFee, error)
	FindFeesByInvoiceID(ctx context.Context, invoiceID string) ([]domain.FinderFee, error)
}

// FinderFeeWriter defines write operations for finder fees.
type FinderFeeWriter interface {
	// SaveFees persists a batch of newly computed finder fees.
	SaveFees(ctx context.Context, fees []domain.FinderFee) error

	// RecordPayment persists a payment and the fee's updated totals as one
	// atomic write. The update is conditional on the fee's prior paid amount so
	// concurrent payments cannot overdraw.
	RecordPayment(ctx context.Context, payment domain.FinderFeePayment, fee domain.FinderFee, priorPaid decimal.Decimal) error
}

// FinderFeeRepositoryFacade combines finder-fee repository interfaces.
type FinderFeeRepositoryFacade interface {
	FinderFeeReader
	FinderFeeWriter
}
