package services

import (
	portsrepo "github.com/praxisbill/lpm_backend/internal/core/ports/repositories"
	portssvc "github.com/praxisbill/lpm_backend/internal/core/ports/services"
	"github.com/praxisbill/lpm_backend/pkg/config"
)

// NewServiceContainer wires every service against the repository provider.
// The finder-fee service is built first because invoice transitions call into
// it when an invoice reaches PAID.
func NewServiceContainer(cfg *config.Config, repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	finderFeeSvc := NewFinderFeeService(repos.FinderFeeRepo, repos.InvoiceRepo, repos.ClientRepo)

	invoiceSvc := NewInvoiceService(
		repos.InvoiceRepo,
		repos.ProposalRepo,
		repos.ProjectRepo,
		repos.TimesheetRepo,
		repos.ChargeRepo,
		repos.ExpenseRepo,
		finderFeeSvc,
	)

	return &portssvc.ServiceContainer{
		Invoice:   invoiceSvc,
		FinderFee: finderFeeSvc,
		Timesheet: NewTimesheetService(repos.TimesheetRepo, repos.ProjectRepo, repos.ProposalRepo, repos.WorkerRepo),
		Charge:    NewChargeService(repos.ChargeRepo, repos.ProjectRepo),
		Expense:   NewExpenseService(repos.ExpenseRepo, repos.ProjectRepo),
		Proposal:  NewProposalService(repos.ProposalRepo),
		User:      NewUserService(repos.UserRepo),
		Token:     NewTokenService(cfg.JWTSecret, cfg.JWTExpiryDuration, cfg.JWTIssuer),
	}
}
