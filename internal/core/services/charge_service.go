package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/praxisbill/lpm_backend/internal/apperrors"
	"github.com/praxisbill/lpm_backend/internal/core/domain"
	portsrepo "github.com/praxisbill/lpm_backend/internal/core/ports/repositories"
	portssvc "github.com/praxisbill/lpm_backend/internal/core/ports/services"
	"github.com/praxisbill/lpm_backend/internal/dto"
	"github.com/praxisbill/lpm_backend/internal/middleware"
	"github.com/praxisbill/lpm_backend/internal/utils/billing"
)

// chargeService manages one-off and recurring charges. Recurring charges act as
// templates: the aggregator only ever bills their materialized instances.
type chargeService struct {
	chargeRepo  portsrepo.ChargeRepositoryFacade
	projectRepo portsrepo.ProjectReader
}

// NewChargeService creates a new charge service.
func NewChargeService(chargeRepo portsrepo.ChargeRepositoryFacade, projectRepo portsrepo.ProjectReader) portssvc.ChargeSvcFacade {
	return &chargeService{chargeRepo: chargeRepo, projectRepo: projectRepo}
}

var _ portssvc.ChargeSvcFacade = (*chargeService)(nil)

// CreateCharge adds a charge to a project. Amount is always quantity times
// unit price, rounded to cents.
func (s *chargeService) CreateCharge(ctx context.Context, req dto.CreateChargeRequest, actorID string) (*domain.Charge, error) {
	if req.Quantity.IsNegative() || req.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: quantity and unit price must not be negative", apperrors.ErrValidation)
	}

	project, err := s.projectRepo.FindProjectByID(ctx, req.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("finding project %s: %w", req.ProjectID, err)
	}
	if project == nil {
		return nil, fmt.Errorf("%w: project %s", apperrors.ErrNotFound, req.ProjectID)
	}

	recurrence := domain.RecurrenceNone
	if req.Recurrence != "" {
		recurrence = domain.RecurrenceInterval(req.Recurrence)
	}
	if recurrence != domain.RecurrenceNone && req.NextRunAt == nil {
		return nil, fmt.Errorf("%w: recurring charges need a next run date", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	charge := domain.Charge{
		ChargeID:    uuid.NewString(),
		ProjectID:   req.ProjectID,
		Description: req.Description,
		Quantity:    req.Quantity,
		UnitPrice:   req.UnitPrice,
		Amount:      billing.RoundMoney(req.Quantity.Mul(req.UnitPrice)),
		Recurrence:  recurrence,
		NextRunAt:   req.NextRunAt,
		AuditFields: newAuditFields(actorID, now),
	}

	if err := s.chargeRepo.SaveCharge(ctx, charge); err != nil {
		return nil, fmt.Errorf("saving charge: %w", err)
	}
	return &charge, nil
}

// RollRecurring materializes every recurring charge due at or before asOf as a
// plain one-off charge and advances the template's next run date.
func (s *chargeService) RollRecurring(ctx context.Context, asOf time.Time, actorID string) ([]domain.Charge, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	due, err := s.chargeRepo.FindDueRecurring(ctx, asOf)
	if err != nil {
		return nil, fmt.Errorf("finding due recurring charges: %w", err)
	}

	now := time.Now().UTC()
	var materialized []domain.Charge
	for _, template := range due {
		instance := domain.Charge{
			ChargeID:    uuid.NewString(),
			ProjectID:   template.ProjectID,
			Description: template.Description,
			Quantity:    template.Quantity,
			UnitPrice:   template.UnitPrice,
			Amount:      template.Amount,
			Recurrence:  domain.RecurrenceNone,
			AuditFields: newAuditFields(actorID, now),
		}
		if err := s.chargeRepo.SaveCharge(ctx, instance); err != nil {
			return materialized, fmt.Errorf("materializing recurring charge %s: %w", template.ChargeID, err)
		}
		materialized = append(materialized, instance)

		template.NextRunAt = template.NextRecurrence(*template.NextRunAt)
		template.LastUpdatedAt = now
		template.LastUpdatedBy = actorID
		if err := s.chargeRepo.UpdateCharge(ctx, template); err != nil {
			return materialized, fmt.Errorf("advancing recurring charge %s: %w", template.ChargeID, err)
		}
	}

	if len(materialized) > 0 {
		logger.Info("Recurring charges rolled", slog.Int("count", len(materialized)))
	}
	return materialized, nil
}
