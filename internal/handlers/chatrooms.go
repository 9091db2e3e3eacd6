package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"chatroom-service/internal/models"
	"chatroom-service/internal/service"
	"chatroom-service/internal/telemetry"
)

// ChatroomHandler serves room creation, listing and admin membership changes.
type ChatroomHandler struct {
	chatrooms service.ChatroomService
	audit     *telemetry.AuditEmitter
}

// NewChatroomHandler constructs a ChatroomHandler.
func NewChatroomHandler(chatrooms service.ChatroomService, audit *telemetry.AuditEmitter) *ChatroomHandler {
	return &ChatroomHandler{chatrooms: chatrooms, audit: audit}
}

// ListChatrooms handles GET /chatrooms?user=U.
func (h *ChatroomHandler) ListChatrooms(c *gin.Context) {
	user := c.Query("user")
	if user == "" {
		c.JSON(http.StatusOK, []models.Chatroom{})
		return
	}

	rooms, err := h.chatrooms.ListRoomsForUser(c.Request.Context(), service.ClaimIdentity(user))
	if err != nil {
		writeError(c, err)
		return
	}
	if rooms == nil {
		rooms = []models.Chatroom{}
	}
	c.JSON(http.StatusOK, rooms)
}

// CreateChatroom handles POST /chatrooms.
func (h *ChatroomHandler) CreateChatroom(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
		User string `json:"user"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidJSON(c)
		return
	}

	room, err := h.chatrooms.CreateRoom(c.Request.Context(), service.ClaimIdentity(req.User), req.Name)
	if err != nil {
		writeError(c, err)
		return
	}

	emitAudit(c, h.audit, "INFO", "Chatroom created", req.User)
	c.JSON(http.StatusOK, room)
}

type membershipRequest struct {
	User       string `json:"user"`
	Username   string `json:"username"`
	ChatroomID flexID `json:"chatroom_id"`
}

// AddUser handles POST /add_user.
func (h *ChatroomHandler) AddUser(c *gin.Context) {
	h.changeMembership(c, "Member added", h.chatrooms.AddMember)
}

// RemoveUser handles POST /remove_user.
func (h *ChatroomHandler) RemoveUser(c *gin.Context) {
	h.changeMembership(c, "Member removed", h.chatrooms.RemoveMember)
}

func (h *ChatroomHandler) changeMembership(c *gin.Context, auditText string, change func(ctx context.Context, requester service.Identity, target string, chatroomID int64) error) {
	var req membershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidJSON(c)
		return
	}

	err := change(c.Request.Context(), service.ClaimIdentity(req.User), req.Username, int64(req.ChatroomID))
	if errors.Is(err, service.ErrNotAuthorized) {
		emitAudit(c, h.audit, "ERROR", "not admin", req.User)
	}
	if err != nil {
		writeError(c, err)
		return
	}

	emitAudit(c, h.audit, "INFO", auditText, req.User)
	success(c)
}

// ListMembers handles GET /members?chatroom_id=R.
func (h *ChatroomHandler) ListMembers(c *gin.Context) {
	chatroomID, ok := queryID(c.Query("chatroom_id"))
	if !ok {
		c.JSON(http.StatusOK, []models.Member{})
		return
	}

	members, err := h.chatrooms.ListMembers(c.Request.Context(), chatroomID)
	if err != nil {
		writeError(c, err)
		return
	}
	if members == nil {
		members = []models.Member{}
	}
	c.JSON(http.StatusOK, members)
}
