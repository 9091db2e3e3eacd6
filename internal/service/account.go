package service

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"

	"chatroom-service/internal/auth"
	"chatroom-service/internal/observability"
	"chatroom-service/internal/repositories"
)

func hashPassword(password string) (string, error) {
	return auth.HashPassword(password)
}

// Register creates an account. The plaintext password is never stored.
func (s *Service) Register(ctx context.Context, username, password string) (err error) {
	ctx, end := s.begin(ctx, "Register", attribute.String("user", username))
	defer end(&err)

	if username == "" || password == "" {
		observability.RecordRegistration("invalid")
		return ErrInvalidPayload
	}

	hash, err := s.hash(password)
	if errors.Is(err, auth.ErrEmptyPassword) || errors.Is(err, auth.ErrPasswordTooLong) {
		observability.RecordRegistration("invalid")
		return ErrInvalidPayload
	}
	if err != nil {
		return err
	}
	if _, err = s.users.CreateUser(ctx, username, hash); err != nil {
		if errors.Is(err, repositories.ErrDuplicateUsername) {
			observability.RecordRegistration("duplicate")
		}
		return err
	}
	observability.RecordRegistration("success")
	return nil
}

// Login verifies the credential and marks the user online.
func (s *Service) Login(ctx context.Context, username, password string) (err error) {
	ctx, end := s.begin(ctx, "Login", attribute.String("user", username))
	defer end(&err)

	user, err := s.users.GetUserByUsername(ctx, username)
	if errors.Is(err, repositories.ErrUserNotFound) {
		observability.RecordLogin("failure")
		return ErrInvalidCredentials
	}
	if err != nil {
		return err
	}
	if !auth.CheckPassword(password, user.PasswordHash) {
		observability.RecordLogin("failure")
		return ErrInvalidCredentials
	}

	if err = s.presence.SetOnline(ctx, username, true); err != nil {
		return err
	}
	observability.RecordLogin("success")
	return nil
}

// Logout marks the user offline. It always succeeds for unknown or empty usernames.
func (s *Service) Logout(ctx context.Context, who Identity) (err error) {
	ctx, end := s.begin(ctx, "Logout", attribute.String("user", who.Username))
	defer end(&err)

	if !who.valid() {
		return nil
	}
	return s.presence.SetOnline(ctx, who.Username, false)
}

// IsOnline reports the presence flag of the user.
func (s *Service) IsOnline(ctx context.Context, who Identity) (online bool, err error) {
	ctx, end := s.begin(ctx, "IsOnline", attribute.String("user", who.Username))
	defer end(&err)

	return s.presence.IsOnline(ctx, who.Username)
}

// GetAvatar returns the avatar reference, nil when unset.
func (s *Service) GetAvatar(ctx context.Context, who Identity) (avatar *string, err error) {
	ctx, end := s.begin(ctx, "GetAvatar", attribute.String("user", who.Username))
	defer end(&err)

	if !who.valid() {
		return nil, ErrInvalidPayload
	}
	return s.users.GetAvatar(ctx, who.Username)
}

// SetAvatar stores the avatar reference verbatim.
func (s *Service) SetAvatar(ctx context.Context, who Identity, avatar string) (err error) {
	ctx, end := s.begin(ctx, "SetAvatar", attribute.String("user", who.Username))
	defer end(&err)

	if !who.valid() {
		return ErrInvalidPayload
	}
	return s.users.SetAvatar(ctx, who.Username, avatar)
}
