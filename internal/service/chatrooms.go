package service

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"

	"chatroom-service/internal/models"
	"chatroom-service/internal/observability"
	"chatroom-service/internal/repositories"
)

// CreateRoom creates a room administered by who, who also becomes its first member.
func (s *Service) CreateRoom(ctx context.Context, who Identity, name string) (room models.Chatroom, err error) {
	ctx, end := s.begin(ctx, "CreateRoom", attribute.String("user", who.Username))
	defer end(&err)

	if name == "" || !who.valid() {
		return models.Chatroom{}, ErrInvalidPayload
	}
	creatorID, err := s.users.FindUserID(ctx, who.Username)
	if err != nil {
		return models.Chatroom{}, err
	}
	if room, err = s.chatrooms.CreateChatroom(ctx, name, creatorID); err != nil {
		return models.Chatroom{}, err
	}
	observability.IncChatroomsCreated()
	return room, nil
}

// ListRoomsForUser returns the rooms who is a member of. Unknown users have none.
func (s *Service) ListRoomsForUser(ctx context.Context, who Identity) (rooms []models.Chatroom, err error) {
	ctx, end := s.begin(ctx, "ListRoomsForUser", attribute.String("user", who.Username))
	defer end(&err)

	userID, err := s.users.FindUserID(ctx, who.Username)
	if errors.Is(err, repositories.ErrUserNotFound) {
		return []models.Chatroom{}, nil
	}
	if err != nil {
		return nil, err
	}
	return s.chatrooms.ListChatroomsForUser(ctx, userID)
}

// AddMember adds target to the room when requester is its admin. Idempotent.
func (s *Service) AddMember(ctx context.Context, requester Identity, target string, chatroomID int64) (err error) {
	ctx, end := s.begin(ctx, "AddMember", attribute.String("user", requester.Username), attribute.Int64("chatroom_id", chatroomID))
	defer end(&err)

	requesterID, targetID, err := s.resolvePair(ctx, requester, target)
	if err != nil {
		return err
	}
	if err = s.memberships.AddMember(ctx, chatroomID, targetID, requesterID); err != nil {
		return err
	}
	observability.RecordMembershipChange("add")
	return nil
}

// RemoveMember removes target from the room when requester is its admin.
func (s *Service) RemoveMember(ctx context.Context, requester Identity, target string, chatroomID int64) (err error) {
	ctx, end := s.begin(ctx, "RemoveMember", attribute.String("user", requester.Username), attribute.Int64("chatroom_id", chatroomID))
	defer end(&err)

	requesterID, targetID, err := s.resolvePair(ctx, requester, target)
	if err != nil {
		return err
	}
	if err = s.memberships.RemoveMember(ctx, chatroomID, targetID, requesterID); err != nil {
		return err
	}
	observability.RecordMembershipChange("remove")
	return nil
}

func (s *Service) resolvePair(ctx context.Context, requester Identity, target string) (int64, int64, error) {
	if !requester.valid() || target == "" {
		return 0, 0, ErrInvalidPayload
	}
	requesterID, err := s.users.FindUserID(ctx, requester.Username)
	if err != nil {
		return 0, 0, err
	}
	targetID, err := s.users.FindUserID(ctx, target)
	if err != nil {
		return 0, 0, err
	}
	return requesterID, targetID, nil
}

// ListMembers returns the room's members with their presence, ordered by username.
func (s *Service) ListMembers(ctx context.Context, chatroomID int64) (members []models.Member, err error) {
	ctx, end := s.begin(ctx, "ListMembers", attribute.Int64("chatroom_id", chatroomID))
	defer end(&err)

	users, err := s.memberships.ListMembers(ctx, chatroomID)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(users))
	for _, u := range users {
		names = append(names, u.Username)
	}
	online, err := s.presence.OnlineStatus(ctx, names)
	if err != nil {
		return nil, err
	}

	members = make([]models.Member, 0, len(users))
	for _, u := range users {
		members = append(members, models.Member{Username: u.Username, Online: online[u.Username]})
	}
	return members, nil
}
