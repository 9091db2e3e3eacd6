package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"chatroom-service/internal/service"
	"chatroom-service/internal/telemetry"
)

// AccountHandler serves registration, login/logout and avatars.
type AccountHandler struct {
	accounts service.AccountService
	audit    *telemetry.AuditEmitter
}

// NewAccountHandler constructs an AccountHandler.
func NewAccountHandler(accounts service.AccountService, audit *telemetry.AuditEmitter) *AccountHandler {
	return &AccountHandler{accounts: accounts, audit: audit}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register handles POST /register.
func (h *AccountHandler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidJSON(c)
		return
	}

	if err := h.accounts.Register(c.Request.Context(), req.Username, req.Password); err != nil {
		writeError(c, err)
		return
	}

	emitAudit(c, h.audit, "INFO", "User registered", req.Username)
	success(c)
}

// Login handles POST /login.
func (h *AccountHandler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidJSON(c)
		return
	}

	if err := h.accounts.Login(c.Request.Context(), req.Username, req.Password); err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			emitAudit(c, h.audit, "ERROR", "invalid credentials", req.Username)
		}
		writeError(c, err)
		return
	}

	emitAudit(c, h.audit, "INFO", "User logged in", req.Username)
	success(c)
}

// Logout handles POST /logout.
func (h *AccountHandler) Logout(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidJSON(c)
		return
	}

	if err := h.accounts.Logout(c.Request.Context(), service.ClaimIdentity(req.Username)); err != nil {
		writeError(c, err)
		return
	}

	emitAudit(c, h.audit, "INFO", "User logged out", req.Username)
	success(c)
}

// GetAvatar handles GET /avatar?user=U.
func (h *AccountHandler) GetAvatar(c *gin.Context) {
	avatar, err := h.accounts.GetAvatar(c.Request.Context(), service.ClaimIdentity(c.Query("user")))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"avatar": avatar})
}

// SetAvatar handles POST /avatar.
func (h *AccountHandler) SetAvatar(c *gin.Context) {
	var req struct {
		User   string `json:"user"`
		Avatar string `json:"avatar"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidJSON(c)
		return
	}

	if err := h.accounts.SetAvatar(c.Request.Context(), service.ClaimIdentity(req.User), req.Avatar); err != nil {
		writeError(c, err)
		return
	}

	emitAudit(c, h.audit, "INFO", "Avatar updated", req.User)
	success(c)
}
