package handlers

import (
	"fmt"

	portssvc "github.com/SscSPs/backoffice_ledger/internal/core/ports/services"
	"github.com/SscSPs/backoffice_ledger/internal/middleware"
	"github.com/SscSPs/backoffice_ledger/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) error {

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	return setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
) error {
	chain := []gin.HandlerFunc{}
	if cfg.RateLimit != "" {
		limiter, err := middleware.NewRateLimiter(cfg.RateLimit)
		if err != nil {
			return fmt.Errorf("invalid rate limit %q: %w", cfg.RateLimit, err)
		}
		chain = append(chain, middleware.RateLimit(limiter))
	}
	chain = append(chain, middleware.AuthMiddleware(cfg.JWTSecret))

	v1 := r.Group("/api/v1", chain...)

	registerTenantRoutes(v1, service.Tenant)
	registerAccountRoutes(v1, service.Account, service.Ledger)
	registerJournalRoutes(v1, service.Journal)
	registerLedgerRoutes(v1, service.Ledger)
	registerFxRoutes(v1, service.FxRate, service.FxClose)
	registerBillingRoutes(v1, service.Billing)
	registerPayrollRoutes(v1, service.Payroll)
	return nil
}
