package cache_test

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/backoffice_ledger/internal/apperrors"
	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/backoffice_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/backoffice_ledger/internal/repositories/cache"
	"github.com/SscSPs/backoffice_ledger/internal/repositories/memory"
)

type countingRates struct {
	portsrepo.FxRateRepositoryFacade
	finds int
}

func (c *countingRates) FindLatestRate(ctx context.Context, baseCode, quoteCode string, asOf *time.Time) (*domain.FxRate, error) {
	c.finds++
	return c.FxRateRepositoryFacade.FindLatestRate(ctx, baseCode, quoteCode, asOf)
}

func newTestCache(t *testing.T) (*cache.FxRateCache, *countingRates, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := &countingRates{FxRateRepositoryFacade: memory.NewStore().FxRates()}
	return cache.NewFxRateCache(repo, client, time.Minute), repo, mr
}

func rate(value string, date time.Time) domain.FxRate {
	return domain.FxRate{
		RateID:    "rate-" + value,
		BaseCode:  "USD",
		QuoteCode: "INR",
		Rate:      decimal.RequireFromString(value),
		Date:      date,
	}
}

func TestFxRateCacheServesRepeatedLookups(t *testing.T) {
	ctx := context.Background()
	c, repo, mr := newTestCache(t)
	require.NoError(t, c.SaveFxRate(ctx, rate("83", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))))

	first, err := c.FindLatestRate(ctx, "USD", "INR", nil)
	require.NoError(t, err)
	second, err := c.FindLatestRate(ctx, "USD", "INR", nil)
	require.NoError(t, err)

	assert.Equal(t, 1, repo.finds)
	assert.True(t, first.Rate.Equal(second.Rate))
	assert.True(t, mr.Exists("fx:latest:USD:INR"))
}

func TestFxRateCacheInvalidatesOnSave(t *testing.T) {
	ctx := context.Background()
	c, repo, mr := newTestCache(t)
	require.NoError(t, c.SaveFxRate(ctx, rate("83", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))))
	_, err := c.FindLatestRate(ctx, "USD", "INR", nil)
	require.NoError(t, err)

	require.NoError(t, c.SaveFxRate(ctx, rate("84.5", time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC))))
	assert.False(t, mr.Exists("fx:latest:USD:INR"))

	latest, err := c.FindLatestRate(ctx, "USD", "INR", nil)
	require.NoError(t, err)
	assert.Equal(t, "84.5", latest.Rate.String())
	assert.Equal(t, 2, repo.finds)
}

func TestFxRateCacheBypassesDatedLookups(t *testing.T) {
	ctx := context.Background()
	c, repo, mr := newTestCache(t)
	require.NoError(t, c.SaveFxRate(ctx, rate("83", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))))

	asOf := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	_, err := c.FindLatestRate(ctx, "USD", "INR", &asOf)
	require.NoError(t, err)
	_, err = c.FindLatestRate(ctx, "USD", "INR", &asOf)
	require.NoError(t, err)

	assert.Equal(t, 2, repo.finds)
	assert.False(t, mr.Exists("fx:latest:USD:INR"))
}

func TestFxRateCacheDoesNotCacheMisses(t *testing.T) {
	ctx := context.Background()
	c, repo, mr := newTestCache(t)

	_, err := c.FindLatestRate(ctx, "USD", "INR", nil)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = c.FindLatestRate(ctx, "USD", "INR", nil)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	assert.Equal(t, 2, repo.finds)
	assert.False(t, mr.Exists("fx:latest:USD:INR"))
}

type ctxObservingRates struct {
	portsrepo.FxRateRepositoryFacade
	seen chan error
}

func (r *ctxObservingRates) FindLatestRate(ctx context.Context, baseCode, quoteCode string, asOf *time.Time) (*domain.FxRate, error) {
	r.seen <- ctx.Err()
	return r.FxRateRepositoryFacade.FindLatestRate(ctx, baseCode, quoteCode, asOf)
}

func TestFxRateCacheLoadSurvivesCancelledCaller(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	store := memory.NewStore().FxRates()
	require.NoError(t, store.SaveFxRate(context.Background(), rate("83", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))))
	repo := &ctxObservingRates{FxRateRepositoryFacade: store, seen: make(chan error, 1)}
	c := cache.NewFxRateCache(repo, client, time.Minute)

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	_, _ = c.FindLatestRate(cancelled, "USD", "INR", nil)

	select {
	case err := <-repo.seen:
		assert.NoError(t, err, "shared load must not inherit the caller's cancellation")
	case <-time.After(time.Second):
		t.Fatal("rate was never loaded")
	}
	assert.Eventually(t, func() bool { return mr.Exists("fx:latest:USD:INR") }, time.Second, 10*time.Millisecond)
}
