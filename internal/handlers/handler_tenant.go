package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/backoffice_ledger/internal/core/ports/services"
	"github.com/SscSPs/backoffice_ledger/internal/dto"
	"github.com/SscSPs/backoffice_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

type tenantHandler struct {
	tenantService portssvc.TenantSettingsSvc
}

func registerTenantRoutes(rg *gin.RouterGroup, tenantService portssvc.TenantSettingsSvc) {
	h := &tenantHandler{tenantService: tenantService}

	rg.GET("/settings", h.getSettings)
	rg.PUT("/settings", h.updateSettings)
}

// getSettings godoc
// @Summary Tenant ledger settings
// @Description Returns stored settings or the configured defaults
// @Tags settings
// @Produce  json
// @Success 200 {object} domain.TenantSettings
// @Security BearerAuth
// @Router /settings [get]
func (h *tenantHandler) getSettings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, _, ok := identity(c, logger)
	if !ok {
		return
	}

	settings, err := h.tenantService.GetSettings(c.Request.Context(), tenantID)
	if err != nil {
		respondError(c, logger, err, "Failed to load settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}

// updateSettings godoc
// @Summary Update tenant ledger settings
// @Tags settings
// @Accept  json
// @Produce  json
// @Param   settings body dto.UpdateTenantSettingsRequest true "Settings"
// @Success 200 {object} domain.TenantSettings
// @Failure 400 {object} map[string]string "Unknown currency"
// @Security BearerAuth
// @Router /settings [put]
func (h *tenantHandler) updateSettings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateTenantSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, "request format", err)
		return
	}
	tenantID, userID, ok := identity(c, logger)
	if !ok {
		return
	}

	settings, err := h.tenantService.UpdateSettings(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to update settings")
		return
	}

	logger.Info("Tenant settings updated", slog.String("base_currency", settings.BaseCurrencyCode), slog.Bool("strict_fx_rates", settings.StrictFxRates))
	c.JSON(http.StatusOK, settings)
}
