package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/praxisbill/lpm_backend/internal/apperrors"
	"github.com/praxisbill/lpm_backend/internal/core/domain"
	portsrepo "github.com/praxisbill/lpm_backend/internal/core/ports/repositories"
	portssvc "github.com/praxisbill/lpm_backend/internal/core/ports/services"
	"github.com/praxisbill/lpm_backend/internal/dto"
	"github.com/praxisbill/lpm_backend/internal/middleware"
	"github.com/praxisbill/lpm_backend/internal/utils/billing"
)

// invoiceService orchestrates invoice assembly: unbilled-item aggregation,
// credit allocation, pricing, numbering, and the atomic persistence call.
type invoiceService struct {
	invoiceRepo   portsrepo.InvoiceRepositoryWithTx
	proposalRepo  portsrepo.ProposalReader
	projectRepo   portsrepo.ProjectReader
	timesheetRepo portsrepo.TimesheetReader
	chargeRepo    portsrepo.ChargeReader
	expenseRepo   portsrepo.ExpenseReader
	finderFeeSvc  portssvc.FinderFeeSvcFacade
}

// NewInvoiceService creates a new invoice service.
func NewInvoiceService(
	invoiceRepo portsrepo.InvoiceRepositoryWithTx,
	proposalRepo portsrepo.ProposalReader,
	projectRepo portsrepo.ProjectReader,
	timesheetRepo portsrepo.TimesheetReader,
	chargeRepo portsrepo.ChargeReader,
	expenseRepo portsrepo.ExpenseReader,
	finderFeeSvc portssvc.FinderFeeSvcFacade,
) portssvc.InvoiceSvcFacade {
	return &invoiceService{
		invoiceRepo:   invoiceRepo,
		proposalRepo:  proposalRepo,
		projectRepo:   projectRepo,
		timesheetRepo: timesheetRepo,
		chargeRepo:    chargeRepo,
		expenseRepo:   expenseRepo,
		finderFeeSvc:  finderFeeSvc,
	}
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

// unbilledItems is the aggregation result for one project.
type unbilledItems struct {
	entries  []domain.TimesheetEntry
	charges  []domain.Charge
	expenses []domain.Expense

	timesheetTotal decimal.Decimal
	chargesTotal   decimal.Decimal
	expensesTotal  decimal.Decimal
}

func (u unbilledItems) empty() bool {
	return len(u.entries) == 0 && len(u.charges) == 0 && len(u.expenses) == 0
}

func (u unbilledItems) rawSubtotal() decimal.Decimal {
	return u.timesheetTotal.Add(u.chargesTotal).Add(u.expensesTotal)
}

// collectUnbilled gathers everything billable for a project: timesheet entries
// (billable, not billed), charges (not billed), expenses (billable, not billed).
func (s *invoiceService) collectUnbilled(ctx context.Context, projectID string) (unbilledItems, error) {
	var items unbilledItems

	entries, err := s.timesheetRepo.FindUnbilledByProject(ctx, projectID)
	if err != nil {
		return items, fmt.Errorf("fetching unbilled timesheet entries: %w", err)
	}
	charges, err := s.chargeRepo.FindUnbilledByProject(ctx, projectID)
	if err != nil {
		return items, fmt.Errorf("fetching unbilled charges: %w", err)
	}
	expenses, err := s.expenseRepo.FindUnbilledByProject(ctx, projectID)
	if err != nil {
		return items, fmt.Errorf("fetching unbilled expenses: %w", err)
	}

	items.entries = entries
	items.charges = charges
	items.expenses = expenses

	items.timesheetTotal = decimal.Zero
	for _, e := range entries {
		items.timesheetTotal = items.timesheetTotal.Add(e.LineAmount())
	}
	items.chargesTotal = decimal.Zero
	for _, c := range charges {
		items.chargesTotal = items.chargesTotal.Add(c.Amount)
	}
	items.expensesTotal = decimal.Zero
	for _, e := range expenses {
		items.expensesTotal = items.expensesTotal.Add(e.Amount)
	}

	return items, nil
}

// GenerateInvoice turns a project's unbilled work into a DRAFT invoice.
// Tax and discount configuration is copied from the proposal once here and is
// independently editable on the invoice afterwards.
func (s *invoiceService) GenerateInvoice(ctx context.Context, projectID string, actor domain.Actor) (*domain.Invoice, []domain.InvoiceLineItem, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	project, err := s.projectRepo.FindProjectByID(ctx, projectID)
	if err != nil {
		return nil, nil, fmt.Errorf("finding project %s: %w", projectID, err)
	}
	if project == nil {
		return nil, nil, fmt.Errorf("%w: project %s", apperrors.ErrNotFound, projectID)
	}
	if (project.ClientID == nil) == (project.LeadID == nil) {
		return nil, nil, fmt.Errorf("%w: project must reference exactly one of client or lead", apperrors.ErrValidation)
	}

	items, err := s.collectUnbilled(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}
	if items.empty() {
		return nil, nil, fmt.Errorf("%w: project %s", apperrors.ErrNoUnbilledItems, projectID)
	}
	rawSubtotal := items.rawSubtotal()

	var proposal *domain.WorkProposal
	if project.ProposalID != nil {
		proposal, err = s.proposalRepo.FindProposalByID(ctx, *project.ProposalID)
		if err != nil {
			return nil, nil, fmt.Errorf("finding proposal %s: %w", *project.ProposalID, err)
		}
	}

	discount := domain.NoDiscount()
	taxRate := decimal.Zero
	taxInclusive := false
	currency := defaultCurrencyCode
	var creditSources []billing.CreditSource
	var upfronts []domain.Invoice
	if proposal != nil {
		discount = proposal.Discount
		taxRate = proposal.TaxRate
		taxInclusive = proposal.TaxInclusive
		currency = proposal.CurrencyCode

		upfronts, err = s.invoiceRepo.FindPaidUpfrontInvoices(ctx, proposal.ProposalID)
		if err != nil {
			return nil, nil, fmt.Errorf("fetching upfront invoices for proposal %s: %w", proposal.ProposalID, err)
		}
		for _, u := range upfronts {
			creditSources = append(creditSources, billing.CreditSource{
				InvoiceID:     u.InvoiceID,
				Amount:        u.Amount,
				CreditApplied: u.CreditApplied,
			})
		}
	}

	creditUsed, creditAllocs, err := billing.AllocateCredit(rawSubtotal, creditSources)
	if err != nil {
		return nil, nil, err
	}

	price := billing.Price(rawSubtotal.Sub(creditUsed), discount, taxRate, taxInclusive)

	now := time.Now().UTC()
	invoiceID := uuid.NewString()

	invoice := domain.Invoice{
		InvoiceID:     invoiceID,
		ProjectID:     projectID,
		ClientID:      project.ClientID,
		LeadID:        project.LeadID,
		CurrencyCode:  currency,
		Subtotal:      rawSubtotal, // Display value, credit not subtracted
		Discount:      discount,
		TaxRate:       taxRate,
		TaxInclusive:  taxInclusive,
		Amount:        price.FinalAmount,
		CreditApplied: creditUsed,
		Status:        domain.InvoiceDraft,
		AuditFields:   newAuditFields(actor.UserID, now),
	}
	if proposal != nil {
		invoice.ProposalID = &proposal.ProposalID

		count, err := s.invoiceRepo.CountInvoicesForProposal(ctx, proposal.ProposalID)
		if err != nil {
			return nil, nil, fmt.Errorf("counting invoices for proposal %s: %w", proposal.ProposalID, err)
		}
		number, err := billing.NextInvoiceNumber(proposal.ProposalNumber, count, func(candidate string) (bool, error) {
			return s.invoiceRepo.InvoiceNumberExists(ctx, candidate)
		})
		if err != nil {
			return nil, nil, err
		}
		invoice.InvoiceNumber = number
	}

	lines := buildLineItems(invoice, items, creditAllocs, upfronts, actor.UserID, now)

	sources := portsrepo.BilledSources{}
	for _, e := range items.entries {
		sources.TimesheetEntryIDs = append(sources.TimesheetEntryIDs, e.EntryID)
	}
	for _, c := range items.charges {
		sources.ChargeIDs = append(sources.ChargeIDs, c.ChargeID)
	}
	for _, e := range items.expenses {
		sources.ExpenseIDs = append(sources.ExpenseIDs, e.ExpenseID)
	}

	created, err := s.invoiceRepo.CreateInvoiceWithLineItems(ctx, invoice, lines, sources, creditAllocs)
	if err != nil {
		return nil, nil, fmt.Errorf("persisting invoice: %w", err)
	}

	logger.Info("Invoice generated",
		slog.String("invoice_id", created.InvoiceID),
		slog.String("project_id", projectID),
		slog.String("subtotal", created.Subtotal.String()),
		slog.String("amount", created.Amount.String()),
		slog.String("credit_applied", created.CreditApplied.String()),
	)
	return created, lines, nil
}

// buildLineItems assembles invoice lines in a fixed order: credit lines first,
// then timesheet, charge, and expense lines.
func buildLineItems(invoice domain.Invoice, items unbilledItems, creditAllocs []billing.CreditAllocation, upfronts []domain.Invoice, actorID string, now time.Time) []domain.InvoiceLineItem {
	upfrontNumbers := make(map[string]string, len(upfronts))
	for _, u := range upfronts {
		if u.InvoiceNumber != nil {
			upfrontNumbers[u.InvoiceID] = *u.InvoiceNumber
		} else {
			upfrontNumbers[u.InvoiceID] = u.InvoiceID
		}
	}

	var lines []domain.InvoiceLineItem
	one := decimal.NewFromInt(1)

	for _, alloc := range creditAllocs {
		upfrontID := alloc.InvoiceID
		lines = append(lines, domain.InvoiceLineItem{
			LineItemID:  uuid.NewString(),
			InvoiceID:   invoice.InvoiceID,
			Type:        domain.LineItemCredit,
			SourceID:    &upfrontID,
			Description: fmt.Sprintf("Credit from upfront payment %s", upfrontNumbers[alloc.InvoiceID]),
			Quantity:    one,
			Rate:        alloc.Amount.Neg(),
			Amount:      alloc.Amount.Neg(),
			IsCredit:    true,
			AuditFields: newAuditFields(actorID, now),
		})
	}

	for _, e := range items.entries {
		entryID := e.EntryID
		rate := decimal.Zero
		if e.Rate != nil {
			rate = *e.Rate
		}
		desc := fmt.Sprintf("Time logged %s", e.EntryDate.Format("2006-01-02"))
		if e.Notes != "" {
			desc = e.Notes
		}
		lines = append(lines, domain.InvoiceLineItem{
			LineItemID:  uuid.NewString(),
			InvoiceID:   invoice.InvoiceID,
			Type:        domain.LineItemTimesheet,
			SourceID:    &entryID,
			Description: desc,
			Quantity:    e.Hours,
			Rate:        rate,
			Amount:      e.LineAmount(),
			AuditFields: newAuditFields(actorID, now),
		})
	}

	for _, c := range items.charges {
		chargeID := c.ChargeID
		lines = append(lines, domain.InvoiceLineItem{
			LineItemID:  uuid.NewString(),
			InvoiceID:   invoice.InvoiceID,
			Type:        domain.LineItemCharge,
			SourceID:    &chargeID,
			Description: c.Description,
			Quantity:    c.Quantity,
			Rate:        c.UnitPrice,
			Amount:      c.Amount,
			AuditFields: newAuditFields(actorID, now),
		})
	}

	for _, e := range items.expenses {
		expenseID := e.ExpenseID
		lines = append(lines, domain.InvoiceLineItem{
			LineItemID:  uuid.NewString(),
			InvoiceID:   invoice.InvoiceID,
			Type:        domain.LineItemExpense,
			SourceID:    &expenseID,
			Description: e.Description,
			Quantity:    one,
			Rate:        e.Amount,
			Amount:      e.Amount,
			AuditFields: newAuditFields(actorID, now),
		})
	}

	return lines
}

// CreateUpfrontInvoice creates an upfront-payment invoice against a proposal.
// Once paid, its amount becomes a credit pool for later invoices on the same
// proposal. Upfront and regular invoices share one number sequence.
func (s *invoiceService) CreateUpfrontInvoice(ctx context.Context, req dto.CreateUpfrontInvoiceRequest, actor domain.Actor) (*domain.Invoice, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: upfront amount must be positive", apperrors.ErrValidation)
	}

	proposal, err := s.proposalRepo.FindProposalByID(ctx, req.ProposalID)
	if err != nil {
		return nil, fmt.Errorf("finding proposal %s: %w", req.ProposalID, err)
	}
	if proposal == nil {
		return nil, fmt.Errorf("%w: proposal %s", apperrors.ErrNotFound, req.ProposalID)
	}

	// The upfront amount is the agreed figure; only tax configuration applies.
	price := billing.Price(req.Amount, domain.NoDiscount(), proposal.TaxRate, proposal.TaxInclusive)

	now := time.Now().UTC()
	invoice := domain.Invoice{
		InvoiceID:        uuid.NewString(),
		ProposalID:       &proposal.ProposalID,
		ClientID:         proposal.ClientID,
		LeadID:           proposal.LeadID,
		CurrencyCode:     proposal.CurrencyCode,
		Subtotal:         req.Amount,
		Discount:         domain.NoDiscount(),
		TaxRate:          proposal.TaxRate,
		TaxInclusive:     proposal.TaxInclusive,
		Amount:           price.FinalAmount,
		CreditApplied:    decimal.Zero,
		Status:           domain.InvoiceDraft,
		IsUpfrontPayment: true,
		DueDate:          req.DueDate,
		AuditFields:      newAuditFields(actor.UserID, now),
	}

	count, err := s.invoiceRepo.CountInvoicesForProposal(ctx, proposal.ProposalID)
	if err != nil {
		return nil, fmt.Errorf("counting invoices for proposal %s: %w", proposal.ProposalID, err)
	}
	number, err := billing.NextInvoiceNumber(proposal.ProposalNumber, count, func(candidate string) (bool, error) {
		return s.invoiceRepo.InvoiceNumberExists(ctx, candidate)
	})
	if err != nil {
		return nil, err
	}
	invoice.InvoiceNumber = number

	lines := []domain.InvoiceLineItem{{
		LineItemID:  uuid.NewString(),
		InvoiceID:   invoice.InvoiceID,
		Type:        domain.LineItemCharge,
		Description: "Upfront payment",
		Quantity:    decimal.NewFromInt(1),
		Rate:        req.Amount,
		Amount:      req.Amount,
		AuditFields: newAuditFields(actor.UserID, now),
	}}

	created, err := s.invoiceRepo.CreateInvoiceWithLineItems(ctx, invoice, lines, portsrepo.BilledSources{}, nil)
	if err != nil {
		return nil, fmt.Errorf("persisting upfront invoice: %w", err)
	}
	return created, nil
}

// TransitionInvoice applies a status-machine action. Reaching PAID triggers
// finder-fee computation; a fee computation failure is logged and reported but
// never rolls back the PAID transition.
func (s *invoiceService) TransitionInvoice(ctx context.Context, invoiceID string, action domain.InvoiceAction, actor domain.Actor) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("finding invoice %s: %w", invoiceID, err)
	}
	if invoice == nil {
		return nil, fmt.Errorf("%w: invoice %s", apperrors.ErrNotFound, invoiceID)
	}

	now := time.Now().UTC()
	updated, err := invoice.Transition(action, actor, now)
	if err != nil {
		return nil, err
	}

	if updated.Status == domain.InvoiceCancelled {
		// Status change and source release commit in one transaction.
		if err := s.invoiceRepo.CancelInvoice(ctx, updated, invoice.Status); err != nil {
			return nil, fmt.Errorf("cancelling invoice %s: %w", updated.InvoiceID, err)
		}
	} else if err := s.invoiceRepo.UpdateInvoiceStatus(ctx, updated, invoice.Status); err != nil {
		return nil, fmt.Errorf("updating invoice status: %w", err)
	}

	if updated.Status == domain.InvoicePaid && invoice.Status != domain.InvoicePaid {
		if _, feeErr := s.finderFeeSvc.CalculateAndCreateFees(ctx, updated.InvoiceID, actor.UserID); feeErr != nil {
			// Deliberately non-fatal: payment confirmation wins, fee
			// bookkeeping is repaired manually.
			logger.Error("Finder fee computation failed after invoice marked paid",
				slog.String("invoice_id", updated.InvoiceID),
				slog.String("error", feeErr.Error()),
			)
		}
	}

	return &updated, nil
}

// GetInvoice retrieves an invoice and its line items.
func (s *invoiceService) GetInvoice(ctx context.Context, invoiceID string) (*domain.Invoice, []domain.InvoiceLineItem, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, nil, fmt.Errorf("finding invoice %s: %w", invoiceID, err)
	}
	if invoice == nil {
		return nil, nil, fmt.Errorf("%w: invoice %s", apperrors.ErrNotFound, invoiceID)
	}

	lines, err := s.invoiceRepo.FindLineItemsByInvoiceID(ctx, invoiceID)
	if err != nil {
		return nil, nil, fmt.Errorf("finding line items for invoice %s: %w", invoiceID, err)
	}
	return invoice, lines, nil
}

// ListInvoices retrieves a paginated invoice list for a project.
func (s *invoiceService) ListInvoices(ctx context.Context, projectID string, params dto.ListInvoicesParams) (*dto.ListInvoicesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	invoices, nextToken, err := s.invoiceRepo.ListInvoicesByProject(ctx, projectID, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("listing invoices for project %s: %w", projectID, err)
	}

	resp := &dto.ListInvoicesResponse{NextToken: nextToken}
	for _, inv := range invoices {
		resp.Invoices = append(resp.Invoices, dto.ToInvoiceResponse(inv, nil))
	}
	return resp, nil
}

// AvailableCredit previews the upfront credit currently available on a proposal.
func (s *invoiceService) AvailableCredit(ctx context.Context, proposalID string) (*dto.CreditSummaryResponse, error) {
	proposal, err := s.proposalRepo.FindProposalByID(ctx, proposalID)
	if err != nil {
		return nil, fmt.Errorf("finding proposal %s: %w", proposalID, err)
	}
	if proposal == nil {
		return nil, fmt.Errorf("%w: proposal %s", apperrors.ErrNotFound, proposalID)
	}

	upfronts, err := s.invoiceRepo.FindPaidUpfrontInvoices(ctx, proposalID)
	if err != nil {
		return nil, fmt.Errorf("fetching upfront invoices for proposal %s: %w", proposalID, err)
	}

	resp := &dto.CreditSummaryResponse{ProposalID: proposalID, TotalAvailable: decimal.Zero}
	for _, u := range upfronts {
		remaining := u.Amount.Sub(u.CreditApplied)
		if !remaining.IsPositive() {
			continue
		}
		resp.Sources = append(resp.Sources, dto.CreditAllocationResponse{InvoiceID: u.InvoiceID, Available: remaining})
		resp.TotalAvailable = resp.TotalAvailable.Add(remaining)
	}
	return resp, nil
}
