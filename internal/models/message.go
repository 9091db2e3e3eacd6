package models

import "time"

// Message is an immutable ledger entry in a chatroom.
type Message struct {
	ID         int64     `db:"id" json:"id"`
	ChatroomID int64     `db:"chatroom_id" json:"chatroom_id"`
	AuthorID   int64     `db:"user_id" json:"user_id"`
	Content    string    `db:"content" json:"content"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// MessageView is a message joined with its author's username.
type MessageView struct {
	ID        int64     `db:"id" json:"-"`
	User      string    `db:"username" json:"user"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"-"`
}

// HistoryPage bounds a history read. The zero value selects the full history.
type HistoryPage struct {
	AfterID int64
	Limit   int
}
