package repositories

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"chatroom-service/internal/models"
)

// MessageRepository is the append-only per-room ledger.
type MessageRepository interface {
	AppendMessage(ctx context.Context, chatroomID, authorID int64, content string, at time.Time) (models.Message, error)
	History(ctx context.Context, chatroomID int64, page models.HistoryPage) ([]models.MessageView, error)
	AppendAndHistory(ctx context.Context, chatroomID, authorID int64, content string, at time.Time) ([]models.MessageView, error)
}

// MessageRepo is a sqlx-backed ledger. Message ids come from the store sequence,
// so history order is total even under concurrent posts.
type MessageRepo struct {
	db *sqlx.DB
}

// NewMessageRepo constructs a MessageRepo.
func NewMessageRepo(db *sqlx.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

// AppendMessage stores a message in an existing chatroom.
func (r *MessageRepo) AppendMessage(ctx context.Context, chatroomID, authorID int64, content string, at time.Time) (msg models.Message, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return models.Message{}, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if msg, err = appendMessage(ctx, tx, chatroomID, authorID, content, at); err != nil {
		return models.Message{}, err
	}
	if err = tx.Commit(); err != nil {
		return models.Message{}, err
	}
	return msg, nil
}

// History returns the room's messages ordered by id ascending.
func (r *MessageRepo) History(ctx context.Context, chatroomID int64, page models.HistoryPage) ([]models.MessageView, error) {
	return history(ctx, r.db, chatroomID, page)
}

// AppendAndHistory appends and re-reads the full history in one transaction.
func (r *MessageRepo) AppendAndHistory(ctx context.Context, chatroomID, authorID int64, content string, at time.Time) (msgs []models.MessageView, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = appendMessage(ctx, tx, chatroomID, authorID, content, at); err != nil {
		return nil, err
	}
	if msgs, err = history(ctx, tx, chatroomID, models.HistoryPage{}); err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return msgs, nil
}

func appendMessage(ctx context.Context, tx *sqlx.Tx, chatroomID, authorID int64, content string, at time.Time) (models.Message, error) {
	if _, err := adminOf(ctx, tx, chatroomID); err != nil {
		return models.Message{}, err
	}

	msg := models.Message{ChatroomID: chatroomID, AuthorID: authorID, Content: content, CreatedAt: at}
	err := tx.QueryRowxContext(ctx, tx.Rebind(`INSERT INTO messages (chatroom_id, user_id, content, created_at) VALUES (?, ?, ?, ?) RETURNING id`), chatroomID, authorID, content, at).
		Scan(&msg.ID)
	return msg, err
}

func history(ctx context.Context, q sqlx.ExtContext, chatroomID int64, page models.HistoryPage) ([]models.MessageView, error) {
	query := `SELECT m.id, u.username, m.content, m.created_at FROM messages m
        INNER JOIN users u ON u.id = m.user_id
        WHERE m.chatroom_id = ? AND m.id > ?
        ORDER BY m.id ASC`
	args := []interface{}{chatroomID, page.AfterID}
	if page.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, page.Limit)
	}

	msgs := []models.MessageView{}
	err := sqlx.SelectContext(ctx, q, &msgs, q.Rebind(query), args...)
	return msgs, err
}
