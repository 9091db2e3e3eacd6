package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"chatroom-service/internal/models"
	"chatroom-service/internal/repositories"
)

var (
	_ repositories.UserRepository       = (*UserRepositoryMock)(nil)
	_ repositories.PresenceTracker      = (*PresenceTrackerMock)(nil)
	_ repositories.ChatroomRepository   = (*ChatroomRepositoryMock)(nil)
	_ repositories.MembershipRepository = (*MembershipRepositoryMock)(nil)
	_ repositories.MessageRepository    = (*MessageRepositoryMock)(nil)
)

type UserRepositoryMock struct {
	mock.Mock
}

func (m *UserRepositoryMock) CreateUser(ctx context.Context, username, passwordHash string) (models.User, error) {
	args := m.Called(ctx, username, passwordHash)
	var user models.User
	if val := args.Get(0); val != nil {
		user = val.(models.User)
	}
	return user, args.Error(1)
}

func (m *UserRepositoryMock) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	args := m.Called(ctx, username)
	var user models.User
	if val := args.Get(0); val != nil {
		user = val.(models.User)
	}
	return user, args.Error(1)
}

func (m *UserRepositoryMock) FindUserID(ctx context.Context, username string) (int64, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(int64), args.Error(1)
}

func (m *UserRepositoryMock) SetAvatar(ctx context.Context, username, avatar string) error {
	args := m.Called(ctx, username, avatar)
	return args.Error(0)
}

func (m *UserRepositoryMock) GetAvatar(ctx context.Context, username string) (*string, error) {
	args := m.Called(ctx, username)
	var avatar *string
	if val := args.Get(0); val != nil {
		avatar = val.(*string)
	}
	return avatar, args.Error(1)
}

type PresenceTrackerMock struct {
	mock.Mock
}

func (m *PresenceTrackerMock) SetOnline(ctx context.Context, username string, online bool) error {
	args := m.Called(ctx, username, online)
	return args.Error(0)
}

func (m *PresenceTrackerMock) IsOnline(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *PresenceTrackerMock) OnlineStatus(ctx context.Context, usernames []string) (map[string]bool, error) {
	args := m.Called(ctx, usernames)
	var status map[string]bool
	if val := args.Get(0); val != nil {
		status = val.(map[string]bool)
	}
	return status, args.Error(1)
}

type ChatroomRepositoryMock struct {
	mock.Mock
}

func (m *ChatroomRepositoryMock) CreateChatroom(ctx context.Context, name string, adminID int64) (models.Chatroom, error) {
	args := m.Called(ctx, name, adminID)
	var room models.Chatroom
	if val := args.Get(0); val != nil {
		room = val.(models.Chatroom)
	}
	return room, args.Error(1)
}

func (m *ChatroomRepositoryMock) ListChatroomsForUser(ctx context.Context, userID int64) ([]models.Chatroom, error) {
	args := m.Called(ctx, userID)
	var rooms []models.Chatroom
	if val := args.Get(0); val != nil {
		rooms = val.([]models.Chatroom)
	}
	return rooms, args.Error(1)
}

func (m *ChatroomRepositoryMock) AdminOf(ctx context.Context, chatroomID int64) (int64, error) {
	args := m.Called(ctx, chatroomID)
	return args.Get(0).(int64), args.Error(1)
}

type MembershipRepositoryMock struct {
	mock.Mock
}

func (m *MembershipRepositoryMock) AddMember(ctx context.Context, chatroomID, targetID, requesterID int64) error {
	args := m.Called(ctx, chatroomID, targetID, requesterID)
	return args.Error(0)
}

func (m *MembershipRepositoryMock) RemoveMember(ctx context.Context, chatroomID, targetID, requesterID int64) error {
	args := m.Called(ctx, chatroomID, targetID, requesterID)
	return args.Error(0)
}

func (m *MembershipRepositoryMock) IsMember(ctx context.Context, chatroomID, userID int64) (bool, error) {
	args := m.Called(ctx, chatroomID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MembershipRepositoryMock) ListMembers(ctx context.Context, chatroomID int64) ([]models.User, error) {
	args := m.Called(ctx, chatroomID)
	var users []models.User
	if val := args.Get(0); val != nil {
		users = val.([]models.User)
	}
	return users, args.Error(1)
}

type MessageRepositoryMock struct {
	mock.Mock
}

func (m *MessageRepositoryMock) AppendMessage(ctx context.Context, chatroomID, authorID int64, content string, at time.Time) (models.Message, error) {
	args := m.Called(ctx, chatroomID, authorID, content, at)
	var msg models.Message
	if val := args.Get(0); val != nil {
		msg = val.(models.Message)
	}
	return msg, args.Error(1)
}

func (m *MessageRepositoryMock) History(ctx context.Context, chatroomID int64, page models.HistoryPage) ([]models.MessageView, error) {
	args := m.Called(ctx, chatroomID, page)
	var msgs []models.MessageView
	if val := args.Get(0); val != nil {
		msgs = val.([]models.MessageView)
	}
	return msgs, args.Error(1)
}

func (m *MessageRepositoryMock) AppendAndHistory(ctx context.Context, chatroomID, authorID int64, content string, at time.Time) ([]models.MessageView, error) {
	args := m.Called(ctx, chatroomID, authorID, content, at)
	var msgs []models.MessageView
	if val := args.Get(0); val != nil {
		msgs = val.([]models.MessageView)
	}
	return msgs, args.Error(1)
}
