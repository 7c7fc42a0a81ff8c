package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/praxisbill/lpm_backend/internal/apperrors"
	"github.com/praxisbill/lpm_backend/internal/core/domain"
	portsrepo "github.com/praxisbill/lpm_backend/internal/core/ports/repositories"
	"github.com/praxisbill/lpm_backend/internal/models"
	"github.com/praxisbill/lpm_backend/internal/utils/mapping"
)

type PgxFinderFeeRepository struct {
	BaseRepository
}

// newPgxFinderFeeRepository creates a new repository for finder fee data.
func newPgxFinderFeeRepository(pool *pgxpool.Pool) portsrepo.FinderFeeRepositoryFacade {
	return &PgxFinderFeeRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.FinderFeeRepositoryFacade = (*PgxFinderFeeRepository)(nil)

const finderFeeColumns = `finder_fee_id, invoice_id, client_id, referrer_id, fee_percent, fee_amount,
	paid_amount, remaining_amount, status, created_at, created_by, last_updated_at, last_updated_by`

func scanFinderFee(row pgx.Row) (models.FinderFee, error) {
	var m models.FinderFee
	err := row.Scan(
		&m.FinderFeeID,
		&m.InvoiceID,
		&m.ClientID,
		&m.ReferrerID,
		&m.FeePercent,
		&m.FeeAmount,
		&m.PaidAmount,
		&m.RemainingAmount,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindFeeByID retrieves a finder fee by its ID.
func (r *PgxFinderFeeRepository) FindFeeByID(ctx context.Context, feeID string) (*domain.FinderFee, error) {
	query := `SELECT ` + finderFeeColumns + ` FROM finder_fees WHERE finder_fee_id = $1;`
	m, err := scanFinderFee(r.Pool.QueryRow(ctx, query, feeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find finder fee by ID "+feeID, err)
	}

	fee := mapping.ToDomainFinderFee(m)
	return &fee, nil
}

// FindFeesByInvoiceID retrieves all finder fees computed for an invoice.
func (r *PgxFinderFeeRepository) FindFeesByInvoiceID(ctx context.Context, invoiceID string) ([]domain.FinderFee, error) {
	query := `SELECT ` + finderFeeColumns + ` FROM finder_fees WHERE invoice_id = $1 ORDER BY created_at, finder_fee_id;`
	rows, err := r.Pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query finder fees for invoice "+invoiceID, err)
	}
	defer rows.Close()

	fees := []domain.FinderFee{}
	for rows.Next() {
		m, err := scanFinderFee(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan finder fee row for invoice "+invoiceID, err)
		}
		fees = append(fees, mapping.ToDomainFinderFee(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating finder fee rows for invoice "+invoiceID, err)
	}
	return fees, nil
}

// SaveFees persists a batch of newly computed finder fees.
func (r *PgxFinderFeeRepository) SaveFees(ctx context.Context, fees []domain.FinderFee) error {
	if len(fees) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO finder_fees (` + finderFeeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	for _, fee := range fees {
		m := mapping.ToModelFinderFee(fee)
		batch.Queue(query,
			m.FinderFeeID,
			m.InvoiceID,
			m.ClientID,
			m.ReferrerID,
			m.FeePercent,
			m.FeeAmount,
			m.PaidAmount,
			m.RemainingAmount,
			m.Status,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}
	if err := r.Pool.SendBatch(ctx, batch).Close(); err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to execute finder fee batch", err)
	}
	return nil
}

// RecordPayment persists a payment row and the fee's updated totals in one
// transaction. The fee update is conditional on the paid amount the caller read,
// so two concurrent payments against the same fee cannot both apply.
func (r *PgxFinderFeeRepository) RecordPayment(ctx context.Context, payment domain.FinderFeePayment, fee domain.FinderFee, priorPaid decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	mf := mapping.ToModelFinderFee(fee)
	tag, err := tx.Exec(ctx, `
		UPDATE finder_fees
		SET paid_amount = $2, remaining_amount = $3, status = $4, last_updated_at = $5, last_updated_by = $6
		WHERE finder_fee_id = $1 AND paid_amount = $7;
	`, mf.FinderFeeID, mf.PaidAmount, mf.RemainingAmount, mf.Status, mf.LastUpdatedAt, mf.LastUpdatedBy, priorPaid)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update finder fee "+mf.FinderFeeID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewAppError(409, "finder fee "+mf.FinderFeeID+" was modified concurrently", nil)
	}

	mp := mapping.ToModelFinderFeePayment(payment)
	_, err = tx.Exec(ctx, `
		INSERT INTO finder_fee_payments (payment_id, finder_fee_id, amount, payment_date,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`, mp.PaymentID, mp.FinderFeeID, mp.Amount, mp.PaymentDate, mp.CreatedAt, mp.CreatedBy, mp.LastUpdatedAt, mp.LastUpdatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert payment for finder fee "+mf.FinderFeeID, err)
	}

	return r.Commit(ctx, tx)
}
