// Package memory is an in-process implementation of the repository ports.
// It backs scenario tests and local runs without PostgreSQL.
//
// Transactions are serialized. Each one snapshots the whole state and
// restores it when the callback fails; a nested WithTx behaves like a
// savepoint. Reads outside a transaction never block on an open one and may
// observe its uncommitted writes. Writes outside a transaction wait for open
// transactions to finish, so they must not be issued from inside a WithTx
// callback through the root store.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/backoffice_ledger/internal/core/ports/repositories"
)

type state struct {
	accounts map[string]domain.Account
	roles    map[string]map[domain.AccountRole]domain.AccountRoleMapping
	entries  []domain.JournalEntry
	invoices map[string]domain.Invoice
	payments []domain.Payment
	rates    []domain.FxRate
	tenants  map[string]domain.TenantSettings
}

func newState() state {
	return state{
		accounts: make(map[string]domain.Account),
		roles:    make(map[string]map[domain.AccountRole]domain.AccountRoleMapping),
		invoices: make(map[string]domain.Invoice),
		tenants:  make(map[string]domain.TenantSettings),
	}
}

// clone copies the containers. Stored values are replaced, never mutated in
// place, so a shallow copy of each value is enough.
func (st state) clone() state {
	c := state{
		accounts: make(map[string]domain.Account, len(st.accounts)),
		roles:    make(map[string]map[domain.AccountRole]domain.AccountRoleMapping, len(st.roles)),
		entries:  append([]domain.JournalEntry(nil), st.entries...),
		invoices: make(map[string]domain.Invoice, len(st.invoices)),
		payments: append([]domain.Payment(nil), st.payments...),
		rates:    append([]domain.FxRate(nil), st.rates...),
		tenants:  make(map[string]domain.TenantSettings, len(st.tenants)),
	}
	for k, v := range st.accounts {
		c.accounts[k] = v
	}
	for tenant, m := range st.roles {
		cm := make(map[domain.AccountRole]domain.AccountRoleMapping, len(m))
		for r, v := range m {
			cm[r] = v
		}
		c.roles[tenant] = cm
	}
	for k, v := range st.invoices {
		c.invoices[k] = v
	}
	for k, v := range st.tenants {
		c.tenants[k] = v
	}
	return c
}

type database struct {
	txMu sync.Mutex
	mu   sync.RWMutex
	st   state
}

// Store is a UnitOfWork over process memory.
type Store struct {
	db   *database
	inTx bool
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{db: &database{st: newState()}}
}

var _ portsrepo.UnitOfWork = (*Store)(nil)

func (s *Store) Accounts() portsrepo.AccountRepositoryFacade { return accountRepo{s} }
func (s *Store) Journals() portsrepo.JournalRepositoryFacade { return journalRepo{s} }
func (s *Store) Billing() portsrepo.BillingRepositoryFacade  { return billingRepo{s} }
func (s *Store) FxRates() portsrepo.FxRateRepositoryFacade   { return fxRateRepo{s} }
func (s *Store) Tenants() portsrepo.TenantRepositoryFacade   { return tenantRepo{s} }
func (s *Store) Reporting() portsrepo.ReportingReader        { return reportingRepo{s} }

// WithTx runs fn against a transactional view of the store.
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.Store) error) error {
	if !s.inTx {
		s.db.txMu.Lock()
		defer s.db.txMu.Unlock()
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.db.mu.RLock()
	snapshot := s.db.st.clone()
	s.db.mu.RUnlock()

	if err := fn(ctx, &Store{db: s.db, inTx: true}); err != nil {
		s.db.mu.Lock()
		s.db.st = snapshot
		s.db.mu.Unlock()
		return err
	}
	return nil
}

func (s *Store) read(fn func(st *state)) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	fn(&s.db.st)
}

func (s *Store) write(fn func(st *state) error) error {
	if !s.inTx {
		s.db.txMu.Lock()
		defer s.db.txMu.Unlock()
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return fn(&s.db.st)
}

func inRange(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}
