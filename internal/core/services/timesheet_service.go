package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/praxisbill/lpm_backend/internal/apperrors"
	"github.com/praxisbill/lpm_backend/internal/core/domain"
	portsrepo "github.com/praxisbill/lpm_backend/internal/core/ports/repositories"
	portssvc "github.com/praxisbill/lpm_backend/internal/core/ports/services"
	"github.com/praxisbill/lpm_backend/internal/dto"
	"github.com/praxisbill/lpm_backend/internal/utils/billing"
)

// timesheetService manages timesheet entries. Rates are resolved once at entry
// creation from the proposal's rate configuration.
type timesheetService struct {
	timesheetRepo portsrepo.TimesheetRepositoryFacade
	projectRepo   portsrepo.ProjectReader
	proposalRepo  portsrepo.ProposalReader
	workerRepo    portsrepo.WorkerReader
}

// NewTimesheetService creates a new timesheet service.
func NewTimesheetService(
	timesheetRepo portsrepo.TimesheetRepositoryFacade,
	projectRepo portsrepo.ProjectReader,
	proposalRepo portsrepo.ProposalReader,
	workerRepo portsrepo.WorkerReader,
) portssvc.TimesheetSvcFacade {
	return &timesheetService{
		timesheetRepo: timesheetRepo,
		projectRepo:   projectRepo,
		proposalRepo:  proposalRepo,
		workerRepo:    workerRepo,
	}
}

var _ portssvc.TimesheetSvcFacade = (*timesheetService)(nil)

// CreateEntry logs work against a project. An explicit rate in the request
// always wins; otherwise the rate comes from the proposal configuration with
// the worker's default as fallback.
func (s *timesheetService) CreateEntry(ctx context.Context, req dto.CreateTimesheetRequest, actorID string) (*domain.TimesheetEntry, error) {
	if req.Hours.IsNegative() {
		return nil, fmt.Errorf("%w: hours must not be negative", apperrors.ErrValidation)
	}

	project, err := s.projectRepo.FindProjectByID(ctx, req.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("finding project %s: %w", req.ProjectID, err)
	}
	if project == nil {
		return nil, fmt.Errorf("%w: project %s", apperrors.ErrNotFound, req.ProjectID)
	}

	worker, err := s.workerRepo.FindWorkerByID(ctx, req.WorkerID)
	if err != nil {
		return nil, fmt.Errorf("finding worker %s: %w", req.WorkerID, err)
	}
	if worker == nil {
		return nil, fmt.Errorf("%w: worker %s", apperrors.ErrNotFound, req.WorkerID)
	}

	var rateCfg *domain.RateConfig
	if project.ProposalID != nil {
		proposal, err := s.proposalRepo.FindProposalByID(ctx, *project.ProposalID)
		if err != nil {
			return nil, fmt.Errorf("finding proposal %s: %w", *project.ProposalID, err)
		}
		if proposal != nil {
			rateCfg = &proposal.Rates
		}
	}

	billable := true
	if req.Billable != nil {
		billable = *req.Billable
	}

	now := time.Now().UTC()
	entry := domain.TimesheetEntry{
		EntryID:     uuid.NewString(),
		ProjectID:   req.ProjectID,
		WorkerID:    req.WorkerID,
		EntryDate:   req.EntryDate,
		Hours:       req.Hours,
		Rate:        billing.ResolveRate(rateCfg, *worker, req.Rate),
		Billable:    billable,
		Notes:       req.Notes,
		AuditFields: newAuditFields(actorID, now),
	}

	if err := s.timesheetRepo.SaveEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("saving timesheet entry: %w", err)
	}
	return &entry, nil
}

// UpdateEntry edits an unbilled entry. Billed entries are frozen; editing one
// requires explicit un-billing (cancelling the invoice) first.
func (s *timesheetService) UpdateEntry(ctx context.Context, entryID string, req dto.UpdateTimesheetRequest, actorID string) (*domain.TimesheetEntry, error) {
	entry, err := s.timesheetRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("finding timesheet entry %s: %w", entryID, err)
	}
	if entry == nil {
		return nil, fmt.Errorf("%w: timesheet entry %s", apperrors.ErrNotFound, entryID)
	}
	if entry.Billed {
		return nil, fmt.Errorf("%w: entry %s is billed and frozen", apperrors.ErrValidation, entryID)
	}

	if req.Hours != nil {
		if req.Hours.IsNegative() {
			return nil, fmt.Errorf("%w: hours must not be negative", apperrors.ErrValidation)
		}
		entry.Hours = *req.Hours
	}
	if req.Rate != nil {
		entry.Rate = req.Rate
	}
	if req.Notes != nil {
		entry.Notes = *req.Notes
	}
	entry.LastUpdatedAt = time.Now().UTC()
	entry.LastUpdatedBy = actorID

	if err := s.timesheetRepo.UpdateEntry(ctx, *entry); err != nil {
		return nil, fmt.Errorf("updating timesheet entry %s: %w", entryID, err)
	}
	return entry, nil
}
