package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"chatroom-service/internal/models"
	"chatroom-service/internal/repositories"
)

const defaultStoreTimeout = 5 * time.Second

// AccountService covers registration, sessions-by-claim, presence and avatars.
type AccountService interface {
	Register(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) error
	Logout(ctx context.Context, who Identity) error
	IsOnline(ctx context.Context, who Identity) (bool, error)
	GetAvatar(ctx context.Context, who Identity) (*string, error)
	SetAvatar(ctx context.Context, who Identity, avatar string) error
}

// ChatroomService covers the room directory and admin-gated membership.
type ChatroomService interface {
	CreateRoom(ctx context.Context, who Identity, name string) (models.Chatroom, error)
	ListRoomsForUser(ctx context.Context, who Identity) ([]models.Chatroom, error)
	AddMember(ctx context.Context, requester Identity, target string, chatroomID int64) error
	RemoveMember(ctx context.Context, requester Identity, target string, chatroomID int64) error
	ListMembers(ctx context.Context, chatroomID int64) ([]models.Member, error)
}

// MessageService covers the per-room message ledger.
type MessageService interface {
	PostMessage(ctx context.Context, author Identity, chatroomID int64, content string) ([]models.MessageView, error)
	ListMessages(ctx context.Context, chatroomID int64, page models.HistoryPage) ([]models.MessageView, error)
}

// Stores groups the repositories the service composes.
type Stores struct {
	Users       repositories.UserRepository
	Presence    repositories.PresenceTracker
	Chatrooms   repositories.ChatroomRepository
	Memberships repositories.MembershipRepository
	Messages    repositories.MessageRepository
}

// Service implements every use-case on top of Stores.
type Service struct {
	users       repositories.UserRepository
	presence    repositories.PresenceTracker
	chatrooms   repositories.ChatroomRepository
	memberships repositories.MembershipRepository
	messages    repositories.MessageRepository

	timeout time.Duration
	now     func() time.Time
	tracer  trace.Tracer
	hash    func(string) (string, error)
}

var (
	_ AccountService  = (*Service)(nil)
	_ ChatroomService = (*Service)(nil)
	_ MessageService  = (*Service)(nil)
)

// Option customises a Service.
type Option func(*Service)

// WithTimeout bounds the store work of each use-case.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithClock replaces the timestamp source for posted messages.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithHasher replaces the credential hashing function.
func WithHasher(hash func(string) (string, error)) Option {
	return func(s *Service) { s.hash = hash }
}

// New constructs the Service.
func New(stores Stores, opts ...Option) *Service {
	s := &Service{
		users:       stores.Users,
		presence:    stores.Presence,
		chatrooms:   stores.Chatrooms,
		memberships: stores.Memberships,
		messages:    stores.Messages,
		timeout:     defaultStoreTimeout,
		now:         func() time.Time { return time.Now().UTC() },
		tracer:      otel.Tracer("chatroom-service/internal/service"),
		hash:        hashPassword,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// begin opens the use-case span and store deadline. The returned func must be
// deferred with the address of the named error result.
func (s *Service) begin(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, func(*error)) {
	ctx, span := s.tracer.Start(ctx, "service."+op, trace.WithAttributes(attrs...))
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	return ctx, func(errp *error) {
		if *errp != nil {
			*errp = s.translate(ctx, op, *errp)
			span.RecordError(*errp)
			span.SetStatus(codes.Error, (*errp).Error())
		}
		cancel()
		span.End()
	}
}

// translate maps store errors onto the use-case taxonomy.
func (s *Service) translate(ctx context.Context, op string, err error) error {
	switch {
	case isDomainError(err):
		return err
	case errors.Is(err, context.DeadlineExceeded), errors.Is(ctx.Err(), context.DeadlineExceeded):
		zerolog.Ctx(ctx).Warn().Err(err).Str("op", op).Msg("store timeout")
		return ErrUnavailable
	case errors.Is(err, repositories.ErrDuplicateUsername):
		return ErrDuplicateUsername
	case errors.Is(err, repositories.ErrUserNotFound):
		return ErrUnknownUser
	case errors.Is(err, repositories.ErrChatroomNotFound):
		return ErrUnknownRoom
	case errors.Is(err, repositories.ErrNotAdmin):
		return ErrNotAuthorized
	}
	zerolog.Ctx(ctx).Error().Err(err).Str("op", op).Msg("store failure")
	return fmt.Errorf("%s: %w", op, err)
}
