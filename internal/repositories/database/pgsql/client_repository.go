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

type PgxClientRepository struct {
	BaseRepository
}

// newPgxClientRepository creates a new repository for client data.
func newPgxClientRepository(pool *pgxpool.Pool) portsrepo.ClientReader {
	return &PgxClientRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ClientReader = (*PgxClientRepository)(nil)

// FindClientByID retrieves a client together with its configured finders.
func (r *PgxClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	query := `
		SELECT client_id, name, created_at, created_by, last_updated_at, last_updated_by
		FROM clients
		WHERE client_id = $1;
	`
	var m models.Client
	err := r.Pool.QueryRow(ctx, query, clientID).Scan(
		&m.ClientID,
		&m.Name,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find client by ID "+clientID, err)
	}

	finders, err := r.findFinders(ctx, clientID)
	if err != nil {
		return nil, err
	}

	client := mapping.ToDomainClient(m, finders)
	return &client, nil
}

func (r *PgxClientRepository) findFinders(ctx context.Context, clientID string) ([]models.ClientFinder, error) {
	query := `
		SELECT client_id, referrer_id, fee_percent
		FROM client_finders
		WHERE client_id = $1
		ORDER BY referrer_id;
	`
	rows, err := r.Pool.Query(ctx, query, clientID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query finders for client "+clientID, err)
	}
	defer rows.Close()

	finders := []models.ClientFinder{}
	for rows.Next() {
		var f models.ClientFinder
		if err := rows.Scan(&f.ClientID, &f.ReferrerID, &f.FeePercent); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan finder row for client "+clientID, err)
		}
		finders = append(finders, f)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating finder rows for client "+clientID, err)
	}
	return finders, nil
}
