package models

import "time"

// User is a registered account. PasswordHash never leaves the service.
type User struct {
	ID           int64     `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Online       bool      `db:"online" json:"online"`
	Avatar       *string   `db:"avatar" json:"avatar,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Member is the presence-aware projection of a chatroom member.
type Member struct {
	Username string `json:"username"`
	Online   bool   `json:"online"`
}
