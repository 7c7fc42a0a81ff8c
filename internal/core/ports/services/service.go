package services

// ServiceContainer bundles every service facade for handler wiring.
type ServiceContainer struct {
	Invoice   InvoiceSvcFacade
	FinderFee FinderFeeSvcFacade
	Timesheet TimesheetSvcFacade
	Charge    ChargeSvcFacade
	Expense   ExpenseSvcFacade
	Proposal  ProposalSvcFacade
	User      UserSvcFacade
	Token     TokenSvc
}
