package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"chatroom-service/internal/models"
	"chatroom-service/internal/service"
	"chatroom-service/internal/telemetry"
)

// MessageHandler serves the per-room message history.
type MessageHandler struct {
	messages service.MessageService
	audit    *telemetry.AuditEmitter
}

// NewMessageHandler constructs a MessageHandler.
func NewMessageHandler(messages service.MessageService, audit *telemetry.AuditEmitter) *MessageHandler {
	return &MessageHandler{messages: messages, audit: audit}
}

// ListMessages handles GET /messages?chatroom_id=R[&after=ID][&limit=N].
func (h *MessageHandler) ListMessages(c *gin.Context) {
	chatroomID, ok := queryID(c.Query("chatroom_id"))
	if !ok {
		c.JSON(http.StatusOK, []models.MessageView{})
		return
	}

	page, err := historyPage(c)
	if err != nil {
		writeError(c, err)
		return
	}

	msgs, err := h.messages.ListMessages(c.Request.Context(), chatroomID, page)
	if err != nil {
		writeError(c, err)
		return
	}
	respondHistory(c, msgs)
}

// PostMessage handles POST /messages and answers with the refreshed history.
func (h *MessageHandler) PostMessage(c *gin.Context) {
	var req struct {
		User       string `json:"user"`
		Content    string `json:"content"`
		ChatroomID flexID `json:"chatroom_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidJSON(c)
		return
	}

	msgs, err := h.messages.PostMessage(c.Request.Context(), service.ClaimIdentity(req.User), int64(req.ChatroomID), req.Content)
	if err != nil {
		writeError(c, err)
		return
	}

	emitAudit(c, h.audit, "INFO", "Message posted", req.User)
	respondHistory(c, msgs)
}

func historyPage(c *gin.Context) (models.HistoryPage, error) {
	var page models.HistoryPage
	if raw := c.Query("after"); raw != "" {
		after, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || after < 0 {
			return page, service.ErrInvalidPayload
		}
		page.AfterID = after
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return page, service.ErrInvalidPayload
		}
		page.Limit = limit
	}
	return page, nil
}

func respondHistory(c *gin.Context, msgs []models.MessageView) {
	if msgs == nil {
		msgs = []models.MessageView{}
	}
	c.JSON(http.StatusOK, msgs)
}
