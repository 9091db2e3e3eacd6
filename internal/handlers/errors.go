package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"chatroom-service/internal/service"
)

func invalidJSON(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON"})
}

func success(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// writeError renders a use-case failure.
func writeError(c *gin.Context, err error) {
	_ = c.Error(err)
	switch {
	case errors.Is(err, service.ErrInvalidPayload):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
	case errors.Is(err, service.ErrDuplicateUsername):
		c.JSON(http.StatusBadRequest, gin.H{"error": "username taken"})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	case errors.Is(err, service.ErrNotAuthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "not admin"})
	case errors.Is(err, service.ErrUnknownUser):
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown user"})
	case errors.Is(err, service.ErrUnknownRoom):
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown chatroom"})
	case errors.Is(err, service.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
