package repositories

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"chatroom-service/internal/models"
)

// MembershipRepository is the user<->chatroom relation with admin-gated mutation.
type MembershipRepository interface {
	AddMember(ctx context.Context, chatroomID, targetID, requesterID int64) error
	RemoveMember(ctx context.Context, chatroomID, targetID, requesterID int64) error
	IsMember(ctx context.Context, chatroomID, userID int64) (bool, error)
	ListMembers(ctx context.Context, chatroomID int64) ([]models.User, error)
}

// MembershipRepo is a sqlx implementation of MembershipRepository.
type MembershipRepo struct {
	db *sqlx.DB
}

// NewMembershipRepo constructs a MembershipRepo.
func NewMembershipRepo(db *sqlx.DB) *MembershipRepo {
	return &MembershipRepo{db: db}
}

// AddMember inserts the membership when requesterID is the room admin.
// Re-adding an existing member is a no-op.
func (r *MembershipRepo) AddMember(ctx context.Context, chatroomID, targetID, requesterID int64) error {
	return r.asAdmin(ctx, chatroomID, requesterID, func(tx *sqlx.Tx) error {
		return insertMember(ctx, tx, chatroomID, targetID, time.Now().UTC())
	})
}

// RemoveMember deletes the membership when requesterID is the room admin.
// Removing a non-member is a no-op.
func (r *MembershipRepo) RemoveMember(ctx context.Context, chatroomID, targetID, requesterID int64) error {
	return r.asAdmin(ctx, chatroomID, requesterID, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM chatroom_members WHERE chatroom_id = ? AND user_id = ?`), chatroomID, targetID)
		return err
	})
}

// asAdmin runs fn in a transaction after checking the stored admin id.
func (r *MembershipRepo) asAdmin(ctx context.Context, chatroomID, requesterID int64, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	adminID, err := adminOf(ctx, tx, chatroomID)
	if err != nil {
		return err
	}
	if adminID != requesterID {
		err = ErrNotAdmin
		return err
	}

	if err = fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// IsMember checks membership.
func (r *MembershipRepo) IsMember(ctx context.Context, chatroomID, userID int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, r.db.Rebind(`SELECT EXISTS(SELECT 1 FROM chatroom_members WHERE chatroom_id = ? AND user_id = ?)`), chatroomID, userID)
	return exists, err
}

// ListMembers returns the member users of a room ordered by username.
func (r *MembershipRepo) ListMembers(ctx context.Context, chatroomID int64) ([]models.User, error) {
	users := []models.User{}
	err := r.db.SelectContext(ctx, &users, r.db.Rebind(`SELECT u.id, u.username, u.online FROM users u
        INNER JOIN chatroom_members cm ON cm.user_id = u.id
        WHERE cm.chatroom_id = ?
        ORDER BY u.username ASC`), chatroomID)
	return users, err
}
