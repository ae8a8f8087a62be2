package services

import (
	portsrepo "github.com/SscSPs/backoffice_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/backoffice_ledger/internal/core/ports/services"
	"github.com/SscSPs/backoffice_ledger/internal/platform/config"
)

// NewServiceContainer wires every core service. rateRepo is the FX rate
// repository to read through, usually a cache in front of uow.FxRates().
func NewServiceContainer(cfg *config.Config, uow portsrepo.UnitOfWork, rateRepo portsrepo.FxRateRepositoryFacade) *portssvc.ServiceContainer {
	if rateRepo == nil {
		rateRepo = uow.FxRates()
	}

	container := &portssvc.ServiceContainer{}

	// Tenant settings come first since rate resolution depends on them
	container.Tenant = NewTenantSettingsService(
		uow.Tenants(),
		WithDefaultBaseCurrency(cfg.BaseCurrency),
		WithDefaultStrictFxRates(cfg.FxStrictRates),
	)
	container.FxRate = NewFxRateService(rateRepo, container.Tenant)
	container.Account = NewAccountService(uow.Accounts())

	journal := NewJournalService(uow)
	container.Journal = journal
	container.Ledger = NewLedgerService(uow)

	container.Billing = NewBillingService(uow, journal, container.Account, container.FxRate, container.Tenant)
	container.FxClose = NewFxCloseService(uow, journal, container.Account, container.FxRate, container.Tenant)
	container.Payroll = NewPayrollPostingService(uow, journal, container.Account)

	return container
}
