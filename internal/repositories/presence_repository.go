package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// PresenceTracker records the online flag per username.
// Setting presence for an unknown user is a no-op.
type PresenceTracker interface {
	SetOnline(ctx context.Context, username string, online bool) error
	IsOnline(ctx context.Context, username string) (bool, error)
	OnlineStatus(ctx context.Context, usernames []string) (map[string]bool, error)
}

// SQLPresence keeps presence in the users.online column.
type SQLPresence struct {
	db *sqlx.DB
}

// NewSQLPresence constructs a SQLPresence.
func NewSQLPresence(db *sqlx.DB) *SQLPresence {
	return &SQLPresence{db: db}
}

// SetOnline flips the flag; zero affected rows is not an error.
func (p *SQLPresence) SetOnline(ctx context.Context, username string, online bool) error {
	_, err := p.db.ExecContext(ctx, p.db.Rebind(`UPDATE users SET online = ? WHERE username = ?`), online, username)
	return err
}

// IsOnline reports the flag; unknown users are offline.
func (p *SQLPresence) IsOnline(ctx context.Context, username string) (bool, error) {
	var online bool
	err := p.db.GetContext(ctx, &online, p.db.Rebind(`SELECT online FROM users WHERE username = ?`), username)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return online, err
}

// OnlineStatus returns the flag for each requested username that exists.
func (p *SQLPresence) OnlineStatus(ctx context.Context, usernames []string) (map[string]bool, error) {
	result := make(map[string]bool, len(usernames))
	if len(usernames) == 0 {
		return result, nil
	}

	query, args, err := sqlx.In(`SELECT username, online FROM users WHERE username IN (?)`, usernames)
	if err != nil {
		return nil, err
	}

	var rows []struct {
		Username string `db:"username"`
		Online   bool   `db:"online"`
	}
	if err := p.db.SelectContext(ctx, &rows, p.db.Rebind(query), args...); err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.Username] = row.Online
	}
	return result, nil
}
