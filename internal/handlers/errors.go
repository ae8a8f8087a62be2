package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/SscSPs/backoffice_ledger/internal/apperrors"
	"github.com/SscSPs/backoffice_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// statusForKind maps an error kind to its HTTP status.
func statusForKind(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindValidation:
		return http.StatusBadRequest
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindDuplicateCode:
		return http.StatusConflict
	case apperrors.KindUnbalancedEntry, apperrors.KindMissingConfiguration:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes {"error", "kind"} for err. Internal failures are logged
// and answered with failMsg so storage details never reach the client.
func respondError(c *gin.Context, logger *slog.Logger, err error, failMsg string) {
	kind := apperrors.KindOf(err)
	status := statusForKind(kind)
	if status == http.StatusInternalServerError {
		logger.Error(failMsg, slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": failMsg, "kind": kind})
		return
	}
	logger.Warn(failMsg, slog.String("kind", string(kind)), slog.String("error", err.Error()))
	c.JSON(status, gin.H{"error": apperrors.MessageOf(err), "kind": kind})
}

// badRequest answers a binding failure.
func badRequest(c *gin.Context, logger *slog.Logger, what string, err error) {
	logger.Warn("Failed to bind "+what, slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + what + ": " + err.Error(), "kind": apperrors.KindValidation})
}

// identity returns the tenant and user set by AuthMiddleware, answering 401 when absent.
func identity(c *gin.Context, logger *slog.Logger) (tenantID, userID string, ok bool) {
	userID, okUser := middleware.GetUserIDFromContext(c)
	tenantID, okTenant := middleware.GetTenantIDFromContext(c)
	if !okUser || !okTenant {
		logger.Error("Identity not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", "", false
	}
	return tenantID, userID, true
}

// bindOptionalJSON binds the body into obj when one was sent.
func bindOptionalJSON(c *gin.Context, obj any) error {
	if c.Request.Body == nil || c.Request.Body == http.NoBody || c.Request.ContentLength == 0 {
		return nil
	}
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
