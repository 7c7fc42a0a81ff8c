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

type PgxProposalRepository struct {
	BaseRepository
}

// newPgxProposalRepository creates a new repository for proposal data.
func newPgxProposalRepository(pool *pgxpool.Pool) portsrepo.ProposalRepositoryFacade {
	return &PgxProposalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ProposalRepositoryFacade = (*PgxProposalRepository)(nil)

// FindProposalByID retrieves a proposal by its ID.
func (r *PgxProposalRepository) FindProposalByID(ctx context.Context, proposalID string) (*domain.WorkProposal, error) {
	query := `
		SELECT proposal_id, client_id, lead_id, proposal_number, currency_code,
		       use_blended_rate, blended_rate, rate_table_type, rate_table_rates,
		       rate_range_min, rate_range_max,
		       tax_rate, tax_inclusive, discount_percent, discount_amount,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM proposals
		WHERE proposal_id = $1;
	`
	var m models.WorkProposal
	err := r.Pool.QueryRow(ctx, query, proposalID).Scan(
		&m.ProposalID,
		&m.ClientID,
		&m.LeadID,
		&m.ProposalNumber,
		&m.CurrencyCode,
		&m.UseBlendedRate,
		&m.BlendedRate,
		&m.RateTableType,
		&m.RateTableRates,
		&m.RateRangeMin,
		&m.RateRangeMax,
		&m.TaxRate,
		&m.TaxInclusive,
		&m.DiscountPercent,
		&m.DiscountAmount,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find proposal by ID "+proposalID, err)
	}

	proposal := mapping.ToDomainProposal(m)
	return &proposal, nil
}

// SaveProposal persists a new proposal.
func (r *PgxProposalRepository) SaveProposal(ctx context.Context, proposal domain.WorkProposal) error {
	m := mapping.ToModelProposal(proposal)
	query := `
		INSERT INTO proposals (
			proposal_id, client_id, lead_id, proposal_number, currency_code,
			use_blended_rate, blended_rate, rate_table_type, rate_table_rates,
			rate_range_min, rate_range_max,
			tax_rate, tax_inclusive, discount_percent, discount_amount,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ProposalID,
		m.ClientID,
		m.LeadID,
		m.ProposalNumber,
		m.CurrencyCode,
		m.UseBlendedRate,
		m.BlendedRate,
		m.RateTableType,
		m.RateTableRates,
		m.RateRangeMin,
		m.RateRangeMax,
		m.TaxRate,
		m.TaxInclusive,
		m.DiscountPercent,
		m.DiscountAmount,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert proposal "+m.ProposalID, err)
	}
	return nil
}

// UpdateProposal applies an administrative correction to a proposal.
func (r *PgxProposalRepository) UpdateProposal(ctx context.Context, proposal domain.WorkProposal) error {
	m := mapping.ToModelProposal(proposal)
	query := `
		UPDATE proposals
		SET currency_code = $2, use_blended_rate = $3, blended_rate = $4,
		    rate_table_type = $5, rate_table_rates = $6, rate_range_min = $7, rate_range_max = $8,
		    tax_rate = $9, tax_inclusive = $10, discount_percent = $11, discount_amount = $12,
		    last_updated_at = $13, last_updated_by = $14
		WHERE proposal_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.ProposalID,
		m.CurrencyCode,
		m.UseBlendedRate,
		m.BlendedRate,
		m.RateTableType,
		m.RateTableRates,
		m.RateRangeMin,
		m.RateRangeMax,
		m.TaxRate,
		m.TaxInclusive,
		m.DiscountPercent,
		m.DiscountAmount,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update proposal "+m.ProposalID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
