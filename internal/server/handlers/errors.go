package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/deliciarte/internal/domain/models"
	"github.com/mamadbah2/deliciarte/internal/repository"
	"github.com/mamadbah2/deliciarte/internal/service/reporting"
)

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidInput),
		errors.Is(err, models.ErrInvalidStatus),
		errors.Is(err, models.ErrUnknownAssetCategory):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, reporting.ErrExportDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes {"error": msg}. Internal failures are logged and their
// details are not exposed.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err))
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, logger *zap.Logger, err error) {
	logger.Warn("invalid request body", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
}

func orNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
