package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"chatroom-service/internal/models"
)

// ChatroomRepository is the room directory.
type ChatroomRepository interface {
	CreateChatroom(ctx context.Context, name string, adminID int64) (models.Chatroom, error)
	ListChatroomsForUser(ctx context.Context, userID int64) ([]models.Chatroom, error)
	AdminOf(ctx context.Context, chatroomID int64) (int64, error)
}

// ChatroomRepo is a sqlx implementation of ChatroomRepository.
type ChatroomRepo struct {
	db *sqlx.DB
}

// NewChatroomRepo constructs a ChatroomRepo.
func NewChatroomRepo(db *sqlx.DB) *ChatroomRepo {
	return &ChatroomRepo{db: db}
}

// CreateChatroom creates the room and the admin's own membership atomically.
func (r *ChatroomRepo) CreateChatroom(ctx context.Context, name string, adminID int64) (room models.Chatroom, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return models.Chatroom{}, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	now := time.Now().UTC()
	room = models.Chatroom{Name: name, AdminID: adminID, CreatedAt: now}
	if err = tx.QueryRowxContext(ctx, tx.Rebind(`INSERT INTO chatrooms (name, admin_id, created_at) VALUES (?, ?, ?) RETURNING id`), name, adminID, now).
		Scan(&room.ID); err != nil {
		return models.Chatroom{}, err
	}

	if err = insertMember(ctx, tx, room.ID, adminID, now); err != nil {
		return models.Chatroom{}, err
	}

	if err = tx.Commit(); err != nil {
		return models.Chatroom{}, err
	}
	return room, nil
}

// ListChatroomsForUser returns rooms the user is a member of, in creation order.
func (r *ChatroomRepo) ListChatroomsForUser(ctx context.Context, userID int64) ([]models.Chatroom, error) {
	rooms := []models.Chatroom{}
	err := r.db.SelectContext(ctx, &rooms, r.db.Rebind(`SELECT c.id, c.name, c.admin_id, c.created_at FROM chatrooms c
        INNER JOIN chatroom_members cm ON cm.chatroom_id = c.id
        WHERE cm.user_id = ?
        ORDER BY c.id ASC`), userID)
	return rooms, err
}

// AdminOf returns the admin id of the room.
func (r *ChatroomRepo) AdminOf(ctx context.Context, chatroomID int64) (int64, error) {
	return adminOf(ctx, r.db, chatroomID)
}

// adminOf runs on either the pool or an open transaction.
func adminOf(ctx context.Context, q sqlx.ExtContext, chatroomID int64) (int64, error) {
	var adminID int64
	err := sqlx.GetContext(ctx, q, &adminID, q.Rebind(`SELECT admin_id FROM chatrooms WHERE id = ?`), chatroomID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrChatroomNotFound
	}
	return adminID, err
}

func insertMember(ctx context.Context, tx *sqlx.Tx, chatroomID, userID int64, joinedAt time.Time) error {
	_, err := tx.ExecContext(ctx, tx.Rebind(`INSERT INTO chatroom_members (chatroom_id, user_id, joined_at) VALUES (?, ?, ?)
        ON CONFLICT (chatroom_id, user_id) DO NOTHING`), chatroomID, userID, joinedAt)
	return err
}
