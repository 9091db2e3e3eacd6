package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"chatroom-service/internal/middleware"
	"chatroom-service/internal/telemetry"
)

func requestIDFromContext(c *gin.Context) string {
	if id := c.GetString(middleware.RequestIDKey); id != "" {
		return id
	}

	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Set(middleware.RequestIDKey, requestID)
	return requestID
}

// claimedUser returns the username as an optional audit field.
func claimedUser(username string) *string {
	if username == "" {
		return nil
	}
	return &username
}

func emitAudit(c *gin.Context, audit *telemetry.AuditEmitter, level, text, username string) {
	if audit == nil {
		return
	}
	audit.Emit(c.Request.Context(), level, text, requestIDFromContext(c), claimedUser(username))
}
