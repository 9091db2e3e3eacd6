package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"chatroom-service/internal/models"
	"chatroom-service/internal/service"
)

var (
	_ service.AccountService  = (*AccountServiceMock)(nil)
	_ service.ChatroomService = (*ChatroomServiceMock)(nil)
	_ service.MessageService  = (*MessageServiceMock)(nil)
)

type AccountServiceMock struct {
	mock.Mock
}

func (m *AccountServiceMock) Register(ctx context.Context, username, password string) error {
	args := m.Called(ctx, username, password)
	return args.Error(0)
}

func (m *AccountServiceMock) Login(ctx context.Context, username, password string) error {
	args := m.Called(ctx, username, password)
	return args.Error(0)
}

func (m *AccountServiceMock) Logout(ctx context.Context, who service.Identity) error {
	args := m.Called(ctx, who)
	return args.Error(0)
}

func (m *AccountServiceMock) IsOnline(ctx context.Context, who service.Identity) (bool, error) {
	args := m.Called(ctx, who)
	return args.Bool(0), args.Error(1)
}

func (m *AccountServiceMock) GetAvatar(ctx context.Context, who service.Identity) (*string, error) {
	args := m.Called(ctx, who)
	var avatar *string
	if val := args.Get(0); val != nil {
		avatar = val.(*string)
	}
	return avatar, args.Error(1)
}

func (m *AccountServiceMock) SetAvatar(ctx context.Context, who service.Identity, avatar string) error {
	args := m.Called(ctx, who, avatar)
	return args.Error(0)
}

type ChatroomServiceMock struct {
	mock.Mock
}

func (m *ChatroomServiceMock) CreateRoom(ctx context.Context, who service.Identity, name string) (models.Chatroom, error) {
	args := m.Called(ctx, who, name)
	var room models.Chatroom
	if val := args.Get(0); val != nil {
		room = val.(models.Chatroom)
	}
	return room, args.Error(1)
}

func (m *ChatroomServiceMock) ListRoomsForUser(ctx context.Context, who service.Identity) ([]models.Chatroom, error) {
	args := m.Called(ctx, who)
	var rooms []models.Chatroom
	if val := args.Get(0); val != nil {
		rooms = val.([]models.Chatroom)
	}
	return rooms, args.Error(1)
}

func (m *ChatroomServiceMock) AddMember(ctx context.Context, requester service.Identity, target string, chatroomID int64) error {
	args := m.Called(ctx, requester, target, chatroomID)
	return args.Error(0)
}

func (m *ChatroomServiceMock) RemoveMember(ctx context.Context, requester service.Identity, target string, chatroomID int64) error {
	args := m.Called(ctx, requester, target, chatroomID)
	return args.Error(0)
}

func (m *ChatroomServiceMock) ListMembers(ctx context.Context, chatroomID int64) ([]models.Member, error) {
	args := m.Called(ctx, chatroomID)
	var members []models.Member
	if val := args.Get(0); val != nil {
		members = val.([]models.Member)
	}
	return members, args.Error(1)
}

type MessageServiceMock struct {
	mock.Mock
}

func (m *MessageServiceMock) PostMessage(ctx context.Context, author service.Identity, chatroomID int64, content string) ([]models.MessageView, error) {
	args := m.Called(ctx, author, chatroomID, content)
	var msgs []models.MessageView
	if val := args.Get(0); val != nil {
		msgs = val.([]models.MessageView)
	}
	return msgs, args.Error(1)
}

func (m *MessageServiceMock) ListMessages(ctx context.Context, chatroomID int64, page models.HistoryPage) ([]models.MessageView, error) {
	args := m.Called(ctx, chatroomID, page)
	var msgs []models.MessageView
	if val := args.Get(0); val != nil {
		msgs = val.([]models.MessageView)
	}
	return msgs, args.Error(1)
}
