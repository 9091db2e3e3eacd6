package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"chatroom-service/internal/models"
)

// UserRepository is the credential store: identities, verifiers and avatars.
type UserRepository interface {
	CreateUser(ctx context.Context, username, passwordHash string) (models.User, error)
	GetUserByUsername(ctx context.Context, username string) (models.User, error)
	FindUserID(ctx context.Context, username string) (int64, error)
	SetAvatar(ctx context.Context, username, avatar string) error
	GetAvatar(ctx context.Context, username string) (*string, error)
}

// UserRepo is a sqlx implementation of UserRepository.
type UserRepo struct {
	db *sqlx.DB
}

// NewUserRepo constructs a UserRepo.
func NewUserRepo(db *sqlx.DB) *UserRepo {
	return &UserRepo{db: db}
}

// CreateUser inserts a user; a taken username yields ErrDuplicateUsername.
func (r *UserRepo) CreateUser(ctx context.Context, username, passwordHash string) (models.User, error) {
	user := models.User{Username: username, PasswordHash: passwordHash, CreatedAt: time.Now().UTC()}
	query := r.db.Rebind(`INSERT INTO users (username, password_hash, created_at) VALUES (?, ?, ?) RETURNING id`)
	if err := r.db.QueryRowxContext(ctx, query, username, passwordHash, user.CreatedAt).Scan(&user.ID); err != nil {
		if isUniqueViolation(err) {
			return models.User{}, ErrDuplicateUsername
		}
		return models.User{}, err
	}
	return user, nil
}

// GetUserByUsername fetches the full user record including the credential.
func (r *UserRepo) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	var user models.User
	query := r.db.Rebind(`SELECT id, username, password_hash, online, avatar, created_at FROM users WHERE username = ?`)
	err := r.db.GetContext(ctx, &user, query, username)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	return user, err
}

// FindUserID resolves a username to its id.
func (r *UserRepo) FindUserID(ctx context.Context, username string) (int64, error) {
	var id int64
	err := r.db.GetContext(ctx, &id, r.db.Rebind(`SELECT id FROM users WHERE username = ?`), username)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrUserNotFound
	}
	return id, err
}

// SetAvatar stores the avatar reference for the user.
func (r *UserRepo) SetAvatar(ctx context.Context, username, avatar string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`UPDATE users SET avatar = ? WHERE username = ?`), avatar, username)
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrUserNotFound
	}
	return nil
}

// GetAvatar returns the avatar reference, or nil when none is set.
func (r *UserRepo) GetAvatar(ctx context.Context, username string) (*string, error) {
	var avatar sql.NullString
	err := r.db.GetContext(ctx, &avatar, r.db.Rebind(`SELECT avatar FROM users WHERE username = ?`), username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	if !avatar.Valid {
		return nil, nil
	}
	return &avatar.String, nil
}
