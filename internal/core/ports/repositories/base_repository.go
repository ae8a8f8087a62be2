package repositories

import "context"

// Store exposes every repository bound to one connection or transaction.
type Store interface {
	Accounts() AccountRepositoryFacade
	Journals() JournalRepositoryFacade
	Billing() BillingRepositoryFacade
	FxRates() FxRateRepositoryFacade
	Tenants() TenantRepositoryFacade
	Reporting() ReportingReader
}

// TransactionManager runs fn inside a single transaction. The Store passed to
// fn is bound to that transaction; returning an error rolls everything back.
// Calling WithTx on a transactional Store nests via a savepoint.
type TransactionManager interface {
	WithTx(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
}

// UnitOfWork is a Store that can also open transactions.
type UnitOfWork interface {
	Store
	TransactionManager
}
