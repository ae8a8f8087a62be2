package pgsql

import (
	"context"
	"log/slog"

	"github.com/SscSPs/backoffice_ledger/internal/apperrors"
	portsrepo "github.com/SscSPs/backoffice_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/backoffice_ledger/internal/middleware"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store binds every repository to either the pool or one open transaction.
type Store struct {
	pool *pgxpool.Pool
	db   DBTX
	tx   pgx.Tx
}

// NewStore creates a UnitOfWork over the pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool, db: pool}
}

var _ portsrepo.UnitOfWork = (*Store)(nil)

func (s *Store) Accounts() portsrepo.AccountRepositoryFacade {
	return &pgxAccountRepository{BaseRepository{db: s.db}}
}

func (s *Store) Journals() portsrepo.JournalRepositoryFacade {
	return &pgxJournalRepository{BaseRepository{db: s.db}}
}

func (s *Store) Billing() portsrepo.BillingRepositoryFacade {
	return &pgxBillingRepository{BaseRepository{db: s.db}}
}

func (s *Store) FxRates() portsrepo.FxRateRepositoryFacade {
	return &pgxFxRateRepository{BaseRepository{db: s.db}}
}

func (s *Store) Tenants() portsrepo.TenantRepositoryFacade {
	return &pgxTenantRepository{BaseRepository{db: s.db}}
}

func (s *Store) Reporting() portsrepo.ReportingReader {
	return &reportingRepository{BaseRepository{db: s.db}}
}

// WithTx runs fn in a READ COMMITTED transaction, or in a savepoint when s is
// already transactional. fn's error rolls back; otherwise the work commits.
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.Store) error) (err error) {
	var tx pgx.Tx
	if s.tx != nil {
		tx, err = s.tx.Begin(ctx)
	} else {
		tx, err = s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	}
	if err != nil {
		return apperrors.NewAppError(apperrors.KindInternal, "failed to begin transaction", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = rollback(ctx, tx)
			panic(p)
		}
	}()

	if err := fn(ctx, &Store{pool: s.pool, db: tx, tx: tx}); err != nil {
		if rbErr := rollback(ctx, tx); rbErr != nil {
			middleware.GetLoggerFromCtx(ctx).Error("Rollback failed", slog.String("error", rbErr.Error()))
		}
		return err
	}
	return commit(ctx, tx)
}
