package services

// ServiceContainer holds instances of all the application services.
// Handlers receive their dependencies from it.
type ServiceContainer struct {
	Account AccountSvcFacade
	Journal JournalSvcFacade
	Ledger  LedgerSvcFacade
	FxRate  FxRateSvcFacade
	Tenant  TenantSettingsSvc
	Billing BillingSvcFacade
	FxClose FxCloseSvcFacade
	Payroll PayrollPostingSvc
}
