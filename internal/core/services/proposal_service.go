package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/praxisbill/lpm_backend/internal/apperrors"
	"github.com/praxisbill/lpm_backend/internal/core/domain"
	portsrepo "github.com/praxisbill/lpm_backend/internal/core/ports/repositories"
	portssvc "github.com/praxisbill/lpm_backend/internal/core/ports/services"
	"github.com/praxisbill/lpm_backend/internal/dto"
)

type proposalService struct {
	proposalRepo portsrepo.ProposalRepositoryFacade
}

// NewProposalService creates a new proposal service.
func NewProposalService(proposalRepo portsrepo.ProposalRepositoryFacade) portssvc.ProposalSvcFacade {
	return &proposalService{proposalRepo: proposalRepo}
}

var _ portssvc.ProposalSvcFacade = (*proposalService)(nil)

// CreateProposal persists a work proposal. The two nullable discount fields on
// the request collapse into a single tagged discount; carrying both is invalid.
func (s *proposalService) CreateProposal(ctx context.Context, req dto.CreateProposalRequest, actorID string) (*domain.WorkProposal, error) {
	if (req.ClientID == nil) == (req.LeadID == nil) {
		return nil, fmt.Errorf("%w: proposal needs exactly one of clientID or leadID", apperrors.ErrValidation)
	}

	discount, err := discountFromFields(req.DiscountPercent, req.DiscountAmount)
	if err != nil {
		return nil, err
	}

	if req.TaxRate.IsNegative() {
		return nil, fmt.Errorf("%w: tax rate must not be negative", apperrors.ErrValidation)
	}
	if req.RateRangeMin != nil && req.RateRangeMax != nil && req.RateRangeMax.LessThan(*req.RateRangeMin) {
		return nil, fmt.Errorf("%w: rate range max is below min", apperrors.ErrValidation)
	}

	rates := domain.RateConfig{
		UseBlendedRate: req.UseBlendedRate,
		BlendedRate:    req.BlendedRate,
		RateTableRates: req.RateTableRates,
		RateRangeMin:   req.RateRangeMin,
		RateRangeMax:   req.RateRangeMax,
	}
	if req.RateTableType != nil {
		tableType := domain.RateTableType(*req.RateTableType)
		rates.RateTableType = &tableType
	}

	proposal := domain.WorkProposal{
		ProposalID:     uuid.NewString(),
		ClientID:       req.ClientID,
		LeadID:         req.LeadID,
		ProposalNumber: req.ProposalNumber,
		CurrencyCode:   req.CurrencyCode,
		Rates:          rates,
		TaxRate:        req.TaxRate,
		TaxInclusive:   req.TaxInclusive,
		Discount:       discount,
		AuditFields:    newAuditFields(actorID, time.Now().UTC()),
	}

	if err := s.proposalRepo.SaveProposal(ctx, proposal); err != nil {
		return nil, fmt.Errorf("saving proposal: %w", err)
	}
	return &proposal, nil
}

// GetProposal retrieves a proposal by ID.
func (s *proposalService) GetProposal(ctx context.Context, proposalID string) (*domain.WorkProposal, error) {
	proposal, err := s.proposalRepo.FindProposalByID(ctx, proposalID)
	if err != nil {
		return nil, fmt.Errorf("finding proposal %s: %w", proposalID, err)
	}
	if proposal == nil {
		return nil, fmt.Errorf("%w: proposal %s", apperrors.ErrNotFound, proposalID)
	}
	return proposal, nil
}

// discountFromFields builds the tagged discount from the request's nullable
// pair. Percent takes precedence only when amount is absent; both set is a
// configuration error rather than a silent pick.
func discountFromFields(percent, amount *decimal.Decimal) (domain.Discount, error) {
	switch {
	case percent != nil && amount != nil:
		return domain.Discount{}, fmt.Errorf("%w: discountPercent and discountAmount are mutually exclusive", apperrors.ErrInvalidDiscountConfig)
	case percent != nil:
		return domain.PercentDiscount(*percent), nil
	case amount != nil:
		return domain.AmountDiscount(*amount), nil
	default:
		return domain.NoDiscount(), nil
	}
}
