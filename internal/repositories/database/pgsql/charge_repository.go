package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/praxisbill/lpm_backend/internal/apperrors"
	"github.com/praxisbill/lpm_backend/internal/core/domain"
	portsrepo "github.com/praxisbill/lpm_backend/internal/core/ports/repositories"
	"github.com/praxisbill/lpm_backend/internal/models"
	"github.com/praxisbill/lpm_backend/internal/utils/mapping"
)

type PgxChargeRepository struct {
	BaseRepository
}

func newPgxChargeRepository(pool *pgxpool.Pool) portsrepo.ChargeRepositoryFacade {
	return &PgxChargeRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ChargeRepositoryFacade = (*PgxChargeRepository)(nil)

const chargeColumns = `charge_id, project_id, description, quantity, unit_price, amount, billed, recurrence, next_run_at,
	created_at, created_by, last_updated_at, last_updated_by`

func scanCharge(row pgx.Row) (models.Charge, error) {
	var m models.Charge
	err := row.Scan(
		&m.ChargeID,
		&m.ProjectID,
		&m.Description,
		&m.Quantity,
		&m.UnitPrice,
		&m.Amount,
		&m.Billed,
		&m.Recurrence,
		&m.NextRunAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxChargeRepository) queryCharges(ctx context.Context, query string, args ...interface{}) ([]domain.Charge, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query charges", err)
	}
	defer rows.Close()

	charges := []domain.Charge{}
	for rows.Next() {
		m, err := scanCharge(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan charge row", err)
		}
		charges = append(charges, mapping.ToDomainCharge(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating charge rows", err)
	}
	return charges, nil
}

// FindUnbilledByProject returns unbilled charges, oldest first. Recurring
// templates are excluded; only their materialized instances are billable.
func (r *PgxChargeRepository) FindUnbilledByProject(ctx context.Context, projectID string) ([]domain.Charge, error) {
	query := `
		SELECT ` + chargeColumns + `
		FROM charges
		WHERE project_id = $1 AND billed = FALSE AND recurrence = 'NONE'
		ORDER BY created_at;
	`
	return r.queryCharges(ctx, query, projectID)
}

// FindDueRecurring returns recurring charge templates whose next run date is at
// or before asOf.
func (r *PgxChargeRepository) FindDueRecurring(ctx context.Context, asOf time.Time) ([]domain.Charge, error) {
	query := `
		SELECT ` + chargeColumns + `
		FROM charges
		WHERE recurrence != 'NONE' AND next_run_at IS NOT NULL AND next_run_at <= $1
		ORDER BY next_run_at;
	`
	return r.queryCharges(ctx, query, asOf)
}

// SaveCharge persists a new charge.
func (r *PgxChargeRepository) SaveCharge(ctx context.Context, charge domain.Charge) error {
	m := mapping.ToModelCharge(charge)
	query := `
		INSERT INTO charges (` + chargeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ChargeID,
		m.ProjectID,
		m.Description,
		m.Quantity,
		m.UnitPrice,
		m.Amount,
		m.Billed,
		m.Recurrence,
		m.NextRunAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert charge "+m.ChargeID, err)
	}
	return nil
}

// UpdateCharge updates a charge, used mainly to advance recurring templates.
func (r *PgxChargeRepository) UpdateCharge(ctx context.Context, charge domain.Charge) error {
	m := mapping.ToModelCharge(charge)
	query := `
		UPDATE charges
		SET description = $2, quantity = $3, unit_price = $4, amount = $5,
		    recurrence = $6, next_run_at = $7, last_updated_at = $8, last_updated_by = $9
		WHERE charge_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.ChargeID,
		m.Description,
		m.Quantity,
		m.UnitPrice,
		m.Amount,
		m.Recurrence,
		m.NextRunAt,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update charge "+m.ChargeID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
