package service

import "errors"

// Use-case failures surfaced to the transport layer.
var (
	ErrInvalidPayload     = errors.New("invalid payload")
	ErrDuplicateUsername  = errors.New("username taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotAuthorized      = errors.New("not admin")
	ErrUnknownUser        = errors.New("unknown user")
	ErrUnknownRoom        = errors.New("unknown chatroom")
	ErrUnavailable        = errors.New("store unavailable")
)

func isDomainError(err error) bool {
	for _, target := range []error{
		ErrInvalidPayload,
		ErrDuplicateUsername,
		ErrInvalidCredentials,
		ErrNotAuthorized,
		ErrUnknownUser,
		ErrUnknownRoom,
		ErrUnavailable,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
