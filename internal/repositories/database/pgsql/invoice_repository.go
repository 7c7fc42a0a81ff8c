package pgsql

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/praxisbill/lpm_backend/internal/apperrors"
	"github.com/praxisbill/lpm_backend/internal/core/domain"
	portsrepo "github.com/praxisbill/lpm_backend/internal/core/ports/repositories"
	"github.com/praxisbill/lpm_backend/internal/models"
	"github.com/praxisbill/lpm_backend/internal/utils/billing"
	"github.com/praxisbill/lpm_backend/internal/utils/mapping"
	"github.com/praxisbill/lpm_backend/internal/utils/pagination"
)

type PgxInvoiceRepository struct {
	BaseRepository
}

// newPgxInvoiceRepository creates a new repository for invoice and line item data.
func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryWithTx {
	return &PgxInvoiceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InvoiceRepositoryWithTx = (*PgxInvoiceRepository)(nil)

const invoiceColumns = `invoice_id, proposal_id, project_id, client_id, lead_id, invoice_number, currency_code,
	subtotal, discount_percent, discount_amount, tax_rate, tax_inclusive, amount, credit_applied,
	status, is_upfront_payment, related_invoice_id, due_date, paid_at,
	created_at, created_by, last_updated_at, last_updated_by`

func scanInvoice(row pgx.Row) (models.Invoice, error) {
	var m models.Invoice
	err := row.Scan(
		&m.InvoiceID,
		&m.ProposalID,
		&m.ProjectID,
		&m.ClientID,
		&m.LeadID,
		&m.InvoiceNumber,
		&m.CurrencyCode,
		&m.Subtotal,
		&m.DiscountPercent,
		&m.DiscountAmount,
		&m.TaxRate,
		&m.TaxInclusive,
		&m.Amount,
		&m.CreditApplied,
		&m.Status,
		&m.IsUpfrontPayment,
		&m.RelatedInvoiceID,
		&m.DueDate,
		&m.PaidAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// CreateInvoiceWithLineItems atomically persists an invoice, its line items,
// the billed flags on every consumed source row, and the credit draws on the
// funding upfront invoices. The proposal row is locked first so concurrent
// generations against the same proposal serialize; the invoice number is
// re-derived inside the transaction if a concurrent writer took it.
func (r *PgxInvoiceRepository) CreateInvoiceWithLineItems(ctx context.Context, invoice domain.Invoice, lines []domain.InvoiceLineItem, sources portsrepo.BilledSources, creditAllocs []billing.CreditAllocation) (*domain.Invoice, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelInvoice(invoice)

	// 1. Serialize on the proposal row and settle the invoice number.
	if m.ProposalID != nil {
		if _, err := tx.Exec(ctx, `SELECT 1 FROM proposals WHERE proposal_id = $1 FOR UPDATE;`, *m.ProposalID); err != nil {
			return nil, apperrors.NewAppError(500, "failed to lock proposal "+*m.ProposalID, err)
		}
		number, err := r.settleInvoiceNumber(ctx, tx, invoice)
		if err != nil {
			return nil, err
		}
		m.InvoiceNumber = number
	}

	// 2. Insert the invoice.
	invoiceQuery := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23);
	`
	_, err = tx.Exec(ctx, invoiceQuery,
		m.InvoiceID,
		m.ProposalID,
		m.ProjectID,
		m.ClientID,
		m.LeadID,
		m.InvoiceNumber,
		m.CurrencyCode,
		m.Subtotal,
		m.DiscountPercent,
		m.DiscountAmount,
		m.TaxRate,
		m.TaxInclusive,
		m.Amount,
		m.CreditApplied,
		m.Status,
		m.IsUpfrontPayment,
		m.RelatedInvoiceID,
		m.DueDate,
		m.PaidAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.ErrDuplicateInvoiceNumber
		}
		return nil, apperrors.NewAppError(500, "failed to insert invoice "+m.InvoiceID, err)
	}

	// 3. Insert the line items as one batch.
	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO invoice_line_items (line_item_id, invoice_id, type, source_id, description, quantity, rate, amount, is_credit,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	for _, line := range lines {
		ml := mapping.ToModelLineItem(line)
		batch.Queue(lineQuery,
			ml.LineItemID,
			ml.InvoiceID,
			ml.Type,
			ml.SourceID,
			ml.Description,
			ml.Quantity,
			ml.Rate,
			ml.Amount,
			ml.IsCredit,
			ml.CreatedAt,
			ml.CreatedBy,
			ml.LastUpdatedAt,
			ml.LastUpdatedBy,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to execute line item batch for invoice "+m.InvoiceID, err)
	}

	// 4. Mark the consumed sources billed. The billed = FALSE condition makes
	// consumption exclusive: a row another invoice grabbed first drops the
	// affected count and fails the whole transaction.
	if err := r.markSourcesBilled(ctx, tx, m, sources); err != nil {
		return nil, err
	}

	// 5. Draw the credit allocations down from their upfront invoices.
	for _, alloc := range creditAllocs {
		tag, err := tx.Exec(ctx, `
			UPDATE invoices
			SET credit_applied = credit_applied + $2, related_invoice_id = $3, last_updated_at = $4, last_updated_by = $5
			WHERE invoice_id = $1 AND status = 'PAID' AND is_upfront_payment = TRUE
			  AND credit_applied + $2 <= amount;
		`, alloc.InvoiceID, alloc.Amount, m.InvoiceID, m.LastUpdatedAt, m.LastUpdatedBy)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to draw credit from upfront invoice "+alloc.InvoiceID, err)
		}
		if tag.RowsAffected() == 0 {
			// A concurrent generation spent this credit between our read and now.
			return nil, apperrors.ErrCreditOverAllocation
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	created := mapping.ToDomainInvoice(m)
	return &created, nil
}

// settleInvoiceNumber re-derives the invoice number inside the transaction.
// The proposal lock means the count is stable, but numbers from other proposals
// can still collide, so the uniqueness probe runs against committed rows.
func (r *PgxInvoiceRepository) settleInvoiceNumber(ctx context.Context, tx pgx.Tx, invoice domain.Invoice) (*string, error) {
	if invoice.ProposalID == nil {
		return invoice.InvoiceNumber, nil
	}

	var proposalNumber *string
	err := tx.QueryRow(ctx, `SELECT proposal_number FROM proposals WHERE proposal_id = $1;`, *invoice.ProposalID).Scan(&proposalNumber)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to read proposal number for "+*invoice.ProposalID, err)
	}

	var count int
	err = tx.QueryRow(ctx, `SELECT COUNT(*) FROM invoices WHERE proposal_id = $1;`, *invoice.ProposalID).Scan(&count)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to count invoices for proposal "+*invoice.ProposalID, err)
	}

	return billing.NextInvoiceNumber(proposalNumber, count, func(candidate string) (bool, error) {
		var exists bool
		err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM invoices WHERE invoice_number = $1);`, candidate).Scan(&exists)
		if err != nil {
			return false, apperrors.NewAppError(500, "failed to probe invoice number "+candidate, err)
		}
		return exists, nil
	})
}

func (r *PgxInvoiceRepository) markSourcesBilled(ctx context.Context, tx pgx.Tx, m models.Invoice, sources portsrepo.BilledSources) error {
	if len(sources.TimesheetEntryIDs) > 0 {
		tag, err := tx.Exec(ctx, `
			UPDATE timesheet_entries
			SET billed = TRUE, last_updated_at = $2, last_updated_by = $3
			WHERE entry_id = ANY($1) AND billed = FALSE;
		`, sources.TimesheetEntryIDs, m.LastUpdatedAt, m.LastUpdatedBy)
		if err != nil {
			return apperrors.NewAppError(500, "failed to mark timesheet entries billed for invoice "+m.InvoiceID, err)
		}
		if int(tag.RowsAffected()) != len(sources.TimesheetEntryIDs) {
			return apperrors.ErrSourceAlreadyBilled
		}
	}

	if len(sources.ChargeIDs) > 0 {
		tag, err := tx.Exec(ctx, `
			UPDATE charges
			SET billed = TRUE, last_updated_at = $2, last_updated_by = $3
			WHERE charge_id = ANY($1) AND billed = FALSE;
		`, sources.ChargeIDs, m.LastUpdatedAt, m.LastUpdatedBy)
		if err != nil {
			return apperrors.NewAppError(500, "failed to mark charges billed for invoice "+m.InvoiceID, err)
		}
		if int(tag.RowsAffected()) != len(sources.ChargeIDs) {
			return apperrors.ErrSourceAlreadyBilled
		}
	}

	if len(sources.ExpenseIDs) > 0 {
		tag, err := tx.Exec(ctx, `
			UPDATE expenses
			SET billed_at = $2, invoice_id = $3, last_updated_at = $2, last_updated_by = $4
			WHERE expense_id = ANY($1) AND billed_at IS NULL;
		`, sources.ExpenseIDs, m.LastUpdatedAt, m.InvoiceID, m.LastUpdatedBy)
		if err != nil {
			return apperrors.NewAppError(500, "failed to mark expenses billed for invoice "+m.InvoiceID, err)
		}
		if int(tag.RowsAffected()) != len(sources.ExpenseIDs) {
			return apperrors.ErrSourceAlreadyBilled
		}
	}

	return nil
}

// UpdateInvoiceStatus records a state-machine transition result. The row must
// still hold the status the transition started from, otherwise a concurrent
// transition won and the caller gets a conflict.
func (r *PgxInvoiceRepository) UpdateInvoiceStatus(ctx context.Context, invoice domain.Invoice, prior domain.InvoiceStatus) error {
	m := mapping.ToModelInvoice(invoice)
	query := `
		UPDATE invoices
		SET status = $2, paid_at = $3, last_updated_at = $4, last_updated_by = $5
		WHERE invoice_id = $1 AND status = $6;
	`
	tag, err := r.Pool.Exec(ctx, query, m.InvoiceID, m.Status, m.PaidAt, m.LastUpdatedAt, m.LastUpdatedBy, string(prior))
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status of invoice "+m.InvoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewAppError(409, "invoice "+m.InvoiceID+" was modified concurrently", nil)
	}
	return nil
}

// CancelInvoice marks the invoice cancelled and, within the same transaction,
// un-bills every source row it consumed and returns its credit draws to their
// upfront invoices. The release is driven entirely by the invoice's own line
// items. The status update carries the same precondition as
// UpdateInvoiceStatus, so a concurrent transition aborts the whole release.
func (r *PgxInvoiceRepository) CancelInvoice(ctx context.Context, invoice domain.Invoice, prior domain.InvoiceStatus) error {
	m := mapping.ToModelInvoice(invoice)
	invoiceID := m.InvoiceID
	updatedAt := m.LastUpdatedAt
	updatedBy := m.LastUpdatedBy

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	tag, err := tx.Exec(ctx, `
		UPDATE invoices
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE invoice_id = $1 AND status = $5;
	`, invoiceID, m.Status, updatedAt, updatedBy, string(prior))
	if err != nil {
		return apperrors.NewAppError(500, "failed to cancel invoice "+invoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewAppError(409, "invoice "+invoiceID+" was modified concurrently", nil)
	}

	_, err = tx.Exec(ctx, `
		UPDATE timesheet_entries
		SET billed = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE entry_id IN (
			SELECT source_id FROM invoice_line_items WHERE invoice_id = $1 AND type = 'TIMESHEET'
		);
	`, invoiceID, updatedAt, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to release timesheet entries for invoice "+invoiceID, err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE charges
		SET billed = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE charge_id IN (
			SELECT source_id FROM invoice_line_items WHERE invoice_id = $1 AND type = 'CHARGE' AND source_id IS NOT NULL
		);
	`, invoiceID, updatedAt, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to release charges for invoice "+invoiceID, err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE expenses
		SET billed_at = NULL, invoice_id = NULL, last_updated_at = $2, last_updated_by = $3
		WHERE expense_id IN (
			SELECT source_id FROM invoice_line_items WHERE invoice_id = $1 AND type = 'EXPENSE'
		);
	`, invoiceID, updatedAt, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to release expenses for invoice "+invoiceID, err)
	}

	// Credit lines are negative, so adding their amounts hands the draw back.
	_, err = tx.Exec(ctx, `
		UPDATE invoices AS u
		SET credit_applied = u.credit_applied + li.amount,
		    related_invoice_id = NULL,
		    last_updated_at = $2, last_updated_by = $3
		FROM invoice_line_items AS li
		WHERE li.invoice_id = $1 AND li.type = 'CREDIT' AND li.source_id = u.invoice_id;
	`, invoiceID, updatedAt, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to return credit draws for invoice "+invoiceID, err)
	}

	return r.Commit(ctx, tx)
}

// FindInvoiceByID retrieves an invoice by its ID.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1;`
	m, err := scanInvoice(r.Pool.QueryRow(ctx, query, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find invoice by ID "+invoiceID, err)
	}

	invoice := mapping.ToDomainInvoice(m)
	return &invoice, nil
}

// FindLineItemsByInvoiceID retrieves an invoice's line items in insertion order.
func (r *PgxInvoiceRepository) FindLineItemsByInvoiceID(ctx context.Context, invoiceID string) ([]domain.InvoiceLineItem, error) {
	query := `
		SELECT line_item_id, invoice_id, type, source_id, description, quantity, rate, amount, is_credit,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM invoice_line_items
		WHERE invoice_id = $1
		ORDER BY created_at, line_item_id;
	`
	rows, err := r.Pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query line items for invoice "+invoiceID, err)
	}
	defer rows.Close()

	items := []models.InvoiceLineItem{}
	for rows.Next() {
		var li models.InvoiceLineItem
		err := rows.Scan(
			&li.LineItemID,
			&li.InvoiceID,
			&li.Type,
			&li.SourceID,
			&li.Description,
			&li.Quantity,
			&li.Rate,
			&li.Amount,
			&li.IsCredit,
			&li.CreatedAt,
			&li.CreatedBy,
			&li.LastUpdatedAt,
			&li.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line item row for invoice "+invoiceID, err)
		}
		items = append(items, li)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line item rows for invoice "+invoiceID, err)
	}

	return mapping.ToDomainLineItemSlice(items), nil
}

// ListInvoicesByProject retrieves a paginated invoice list for a project using
// token-based pagination, newest first.
func (r *PgxInvoiceRepository) ListInvoicesByProject(ctx context.Context, projectID string, limit int, nextToken *string) ([]domain.Invoice, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to know whether a next page exists.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + invoiceColumns + ` FROM invoices WHERE project_id = $1`
	orderByClause := `ORDER BY created_at DESC, invoice_id DESC`

	args := []interface{}{projectID}
	query := baseQuery
	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query += ` AND (created_at, invoice_id) < ($2, $3)`
		args = append(args, lastCreatedAt, lastID)
	}
	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query invoices for project "+projectID, err)
	}
	defer rows.Close()

	fetched := []models.Invoice{}
	for rows.Next() {
		m, err := scanInvoice(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan invoice row for project "+projectID, err)
		}
		fetched = append(fetched, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating invoice rows for project "+projectID, err)
	}

	var nextTokenVal *string
	results := fetched
	if len(fetched) > limit {
		last := fetched[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.InvoiceID)
		nextTokenVal = &token
		results = fetched[:limit]
	}

	invoices := make([]domain.Invoice, len(results))
	for i, m := range results {
		invoices[i] = mapping.ToDomainInvoice(m)
	}
	return invoices, nextTokenVal, nil
}

// CountInvoicesForProposal counts every invoice referencing a proposal,
// regardless of status.
func (r *PgxInvoiceRepository) CountInvoicesForProposal(ctx context.Context, proposalID string) (int, error) {
	var count int
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM invoices WHERE proposal_id = $1;`, proposalID).Scan(&count)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to count invoices for proposal "+proposalID, err)
	}
	return count, nil
}

// InvoiceNumberExists reports whether a number is already used system-wide.
func (r *PgxInvoiceRepository) InvoiceNumberExists(ctx context.Context, number string) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM invoices WHERE invoice_number = $1);`, number).Scan(&exists)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to probe invoice number "+number, err)
	}
	return exists, nil
}

// FindPaidUpfrontInvoices returns PAID upfront invoices for a proposal in
// creation order, which fixes the first-in-first-out credit consumption order.
func (r *PgxInvoiceRepository) FindPaidUpfrontInvoices(ctx context.Context, proposalID string) ([]domain.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE proposal_id = $1 AND is_upfront_payment = TRUE AND status = 'PAID'
		ORDER BY created_at, invoice_id;
	`
	rows, err := r.Pool.Query(ctx, query, proposalID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query upfront invoices for proposal "+proposalID, err)
	}
	defer rows.Close()

	invoices := []domain.Invoice{}
	for rows.Next() {
		m, err := scanInvoice(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan upfront invoice row for proposal "+proposalID, err)
		}
		invoices = append(invoices, mapping.ToDomainInvoice(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating upfront invoice rows for proposal "+proposalID, err)
	}
	return invoices, nil
}
