package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/praxisbill/lpm_backend/internal/apperrors"
	"github.com/praxisbill/lpm_backend/internal/core/domain"
	portsrepo "github.com/praxisbill/lpm_backend/internal/core/ports/repositories"
	"github.com/praxisbill/lpm_backend/internal/models"
	"github.com/praxisbill/lpm_backend/internal/utils/mapping"
)

type PgxTimesheetRepository struct {
	BaseRepository
}

func newPgxTimesheetRepository(pool *pgxpool.Pool) portsrepo.TimesheetRepositoryFacade {
	return &PgxTimesheetRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TimesheetRepositoryFacade = (*PgxTimesheetRepository)(nil)

const timesheetColumns = `entry_id, project_id, worker_id, entry_date, hours, rate, billable, billed, notes,
	created_at, created_by, last_updated_at, last_updated_by`

func scanTimesheetEntry(row pgx.Row) (models.TimesheetEntry, error) {
	var m models.TimesheetEntry
	err := row.Scan(
		&m.EntryID,
		&m.ProjectID,
		&m.WorkerID,
		&m.EntryDate,
		&m.Hours,
		&m.Rate,
		&m.Billable,
		&m.Billed,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindEntryByID retrieves a timesheet entry by its ID.
func (r *PgxTimesheetRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.TimesheetEntry, error) {
	query := `SELECT ` + timesheetColumns + ` FROM timesheet_entries WHERE entry_id = $1;`
	m, err := scanTimesheetEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find timesheet entry by ID "+entryID, err)
	}

	entry := mapping.ToDomainTimesheetEntry(m)
	return &entry, nil
}

// FindUnbilledByProject returns billable entries not yet consumed by an invoice,
// oldest first.
func (r *PgxTimesheetRepository) FindUnbilledByProject(ctx context.Context, projectID string) ([]domain.TimesheetEntry, error) {
	query := `
		SELECT ` + timesheetColumns + `
		FROM timesheet_entries
		WHERE project_id = $1 AND billable = TRUE AND billed = FALSE
		ORDER BY entry_date, created_at;
	`
	rows, err := r.Pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query unbilled entries for project "+projectID, err)
	}
	defer rows.Close()

	entries := []domain.TimesheetEntry{}
	for rows.Next() {
		m, err := scanTimesheetEntry(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan timesheet row for project "+projectID, err)
		}
		entries = append(entries, mapping.ToDomainTimesheetEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating timesheet rows for project "+projectID, err)
	}
	return entries, nil
}

// SaveEntry persists a new timesheet entry.
func (r *PgxTimesheetRepository) SaveEntry(ctx context.Context, entry domain.TimesheetEntry) error {
	m := mapping.ToModelTimesheetEntry(entry)
	query := `
		INSERT INTO timesheet_entries (` + timesheetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.EntryID,
		m.ProjectID,
		m.WorkerID,
		m.EntryDate,
		m.Hours,
		m.Rate,
		m.Billable,
		m.Billed,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert timesheet entry "+m.EntryID, err)
	}
	return nil
}

// UpdateEntry updates an unbilled entry's editable fields. The billed guard is
// enforced here as well so a concurrent invoice generation cannot race an edit.
func (r *PgxTimesheetRepository) UpdateEntry(ctx context.Context, entry domain.TimesheetEntry) error {
	m := mapping.ToModelTimesheetEntry(entry)
	query := `
		UPDATE timesheet_entries
		SET hours = $2, rate = $3, billable = $4, notes = $5, last_updated_at = $6, last_updated_by = $7
		WHERE entry_id = $1 AND billed = FALSE;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.EntryID,
		m.Hours,
		m.Rate,
		m.Billable,
		m.Notes,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update timesheet entry "+m.EntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
