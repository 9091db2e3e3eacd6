package models

import "time"

// Chatroom is a named message scope with exactly one admin, fixed at creation.
type Chatroom struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	AdminID   int64     `db:"admin_id" json:"admin_id"`
	CreatedAt time.Time `db:"created_at" json:"-"`
}
