package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/praxisbill/lpm_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	proposalRepo := newPgxProposalRepository(dbPool)
	projectRepo := newPgxProjectRepository(dbPool)
	workerRepo := newPgxWorkerRepository(dbPool)
	timesheetRepo := newPgxTimesheetRepository(dbPool)
	chargeRepo := newPgxChargeRepository(dbPool)
	expenseRepo := newPgxExpenseRepository(dbPool)
	invoiceRepo := newPgxInvoiceRepository(dbPool)
	clientRepo := newPgxClientRepository(dbPool)
	finderFeeRepo := newPgxFinderFeeRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)

	return portsrepo.RepositoryProvider{
		ProposalRepo:  proposalRepo,
		ProjectRepo:   projectRepo,
		WorkerRepo:    workerRepo,
		TimesheetRepo: timesheetRepo,
		ChargeRepo:    chargeRepo,
		ExpenseRepo:   expenseRepo,
		InvoiceRepo:   invoiceRepo,
		ClientRepo:    clientRepo,
		FinderFeeRepo: finderFeeRepo,
		UserRepo:      userRepo,
	}
}
