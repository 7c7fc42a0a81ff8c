package repositories

// RepositoryProvider bundles every repository implementation for service wiring.
type RepositoryProvider struct {
	ProposalRepo  ProposalRepositoryFacade
	ProjectRepo   ProjectReader
	WorkerRepo    WorkerReader
	TimesheetRepo TimesheetRepositoryFacade
	ChargeRepo    ChargeRepositoryFacade
	ExpenseRepo   ExpenseRepositoryFacade
	InvoiceRepo   InvoiceRepositoryWithTx
	ClientRepo    ClientReader
	FinderFeeRepo FinderFeeRepositoryFacade
	UserRepo      UserRepositoryFacade
}
