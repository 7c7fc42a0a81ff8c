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
)

type expenseService struct {
	expenseRepo portsrepo.ExpenseRepositoryFacade
	projectRepo portsrepo.ProjectReader
}

// NewExpenseService creates a new expense service.
func NewExpenseService(expenseRepo portsrepo.ExpenseRepositoryFacade, projectRepo portsrepo.ProjectReader) portssvc.ExpenseSvcFacade {
	return &expenseService{expenseRepo: expenseRepo, projectRepo: projectRepo}
}

var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

// CreateExpense records a project expense. Billable defaults to true.
func (s *expenseService) CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, actorID string) (*domain.Expense, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: expense amount must be positive", apperrors.ErrValidation)
	}

	project, err := s.projectRepo.FindProjectByID(ctx, req.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("finding project %s: %w", req.ProjectID, err)
	}
	if project == nil {
		return nil, fmt.Errorf("%w: project %s", apperrors.ErrNotFound, req.ProjectID)
	}

	billable := true
	if req.Billable != nil {
		billable = *req.Billable
	}

	expense := domain.Expense{
		ExpenseID:   uuid.NewString(),
		ProjectID:   req.ProjectID,
		Description: req.Description,
		Amount:      req.Amount,
		Billable:    billable,
		AuditFields: newAuditFields(actorID, time.Now().UTC()),
	}

	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		return nil, fmt.Errorf("saving expense: %w", err)
	}
	return &expense, nil
}
