package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "spendtrack/internal/errors"
	"spendtrack/internal/logger"
	"spendtrack/internal/uuid"
)

// getUserID extracts the authenticated user ID from the Gin context.
// Returns ErrNotAuthenticated if not present.
func getUserID(c *gin.Context) (string, error) {
	userID, exists := c.Get("userID")
	if !exists {
		return "", apperrors.ErrNotAuthenticated
	}
	id, ok := userID.(string)
	if !ok || id == "" {
		return "", apperrors.ErrNotAuthenticated
	}
	return id, nil
}

// pathID returns the :id path parameter. Record ids are always UUIDs, so
// a malformed id is reported as the given not-found error without a store
// round trip.
func pathID(c *gin.Context, notFound *apperrors.AppError) (string, error) {
	id := c.Param("id")
	if !uuid.IsValid(id) {
		return "", notFound
	}
	return id, nil
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, gin.H{
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, gin.H{
		"error": gin.H{
			"code":    apperrors.ErrInternalServer.Code,
			"message": apperrors.ErrInternalServer.Message,
		},
	})
}
