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

type PgxWorkerRepository struct {
	BaseRepository
}

func newPgxWorkerRepository(pool *pgxpool.Pool) portsrepo.WorkerReader {
	return &PgxWorkerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.WorkerReader = (*PgxWorkerRepository)(nil)

// FindWorkerByID retrieves a worker profile by its ID.
func (r *PgxWorkerRepository) FindWorkerByID(ctx context.Context, workerID string) (*domain.WorkerProfile, error) {
	query := `
		SELECT worker_id, name, rate_table_key, default_hourly_rate,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM workers
		WHERE worker_id = $1;
	`
	var m models.WorkerProfile
	err := r.Pool.QueryRow(ctx, query, workerID).Scan(
		&m.WorkerID,
		&m.Name,
		&m.RateTableKey,
		&m.DefaultHourlyRate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find worker by ID "+workerID, err)
	}

	worker := mapping.ToDomainWorker(m)
	return &worker, nil
}
