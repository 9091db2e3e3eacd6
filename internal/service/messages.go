package service

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"chatroom-service/internal/models"
	"chatroom-service/internal/observability"
)

// PostMessage appends content to the room and returns the refreshed full history.
// Membership is not checked: any caller knowing the room id may post.
func (s *Service) PostMessage(ctx context.Context, author Identity, chatroomID int64, content string) (history []models.MessageView, err error) {
	ctx, end := s.begin(ctx, "PostMessage", attribute.String("user", author.Username), attribute.Int64("chatroom_id", chatroomID))
	defer end(&err)

	if content == "" || !author.valid() {
		return nil, ErrInvalidPayload
	}
	authorID, err := s.users.FindUserID(ctx, author.Username)
	if err != nil {
		return nil, err
	}
	if history, err = s.messages.AppendAndHistory(ctx, chatroomID, authorID, content, s.now()); err != nil {
		return nil, err
	}
	observability.IncMessagesPosted()
	return history, nil
}

// ListMessages returns the room's history, the whole of it for a zero page.
func (s *Service) ListMessages(ctx context.Context, chatroomID int64, page models.HistoryPage) (history []models.MessageView, err error) {
	ctx, end := s.begin(ctx, "ListMessages", attribute.Int64("chatroom_id", chatroomID))
	defer end(&err)

	return s.messages.History(ctx, chatroomID, page)
}
