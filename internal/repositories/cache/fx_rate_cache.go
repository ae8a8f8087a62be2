// Package cache decorates repositories with a Redis read-through cache.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/backoffice_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/backoffice_ledger/internal/middleware"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// FxRateCache caches the globally latest rate per pair. Dated lookups
// (asOf != nil) always go to the wrapped repository.
type FxRateCache struct {
	next   portsrepo.FxRateRepositoryFacade
	client *redis.Client
	ttl    time.Duration
	group  singleflight.Group
}

var _ portsrepo.FxRateRepositoryFacade = (*FxRateCache)(nil)

// NewFxRateCache wraps next. A nil client disables caching.
func NewFxRateCache(next portsrepo.FxRateRepositoryFacade, client *redis.Client, ttl time.Duration) *FxRateCache {
	return &FxRateCache{next: next, client: client, ttl: ttl}
}

func latestKey(baseCode, quoteCode string) string {
	return fmt.Sprintf("fx:latest:%s:%s", baseCode, quoteCode)
}

// FindLatestRate serves undated lookups from Redis, loading misses once per key.
func (c *FxRateCache) FindLatestRate(ctx context.Context, baseCode, quoteCode string, asOf *time.Time) (*domain.FxRate, error) {
	if asOf != nil || c.client == nil {
		return c.next.FindLatestRate(ctx, baseCode, quoteCode, asOf)
	}
	logger := middleware.GetLoggerFromCtx(ctx)
	key := latestKey(baseCode, quoteCode)

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var rate domain.FxRate
		if jsonErr := json.Unmarshal(raw, &rate); jsonErr == nil {
			return &rate, nil
		}
		logger.Warn("Discarding undecodable cached fx rate", slog.String("key", key))
	case !errors.Is(err, redis.Nil):
		logger.Warn("Fx rate cache read failed", slog.String("key", key), slog.String("error", err.Error()))
	}

	// The load is shared by every waiter on key, so it must outlive the first caller.
	loadCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (interface{}, error) {
		rate, err := c.next.FindLatestRate(loadCtx, baseCode, quoteCode, nil)
		if err != nil {
			return nil, err
		}
		if payload, err := json.Marshal(rate); err == nil {
			if err := c.client.Set(loadCtx, key, payload, c.ttl).Err(); err != nil {
				logger.Warn("Fx rate cache write failed", slog.String("key", key), slog.String("error", err.Error()))
			}
		}
		return rate, nil
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*domain.FxRate), nil
	}
}

// SaveFxRate stores through and drops the cached latest rate of the pair.
func (c *FxRateCache) SaveFxRate(ctx context.Context, rate domain.FxRate) error {
	if err := c.next.SaveFxRate(ctx, rate); err != nil {
		return err
	}
	if c.client == nil {
		return nil
	}
	if err := c.client.Del(ctx, latestKey(rate.BaseCode, rate.QuoteCode)).Err(); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Fx rate cache invalidation failed",
			slog.String("base", rate.BaseCode), slog.String("quote", rate.QuoteCode), slog.String("error", err.Error()))
	}
	return nil
}
