package models

import (
	"time"

	"github.com/google/uuid"
)

// CommentDB represents a comment row in the database.
type CommentDB struct {
	CommentID uuid.UUID `db:"comment_id" json:"id"`
	PostID    uuid.UUID `db:"post_id" json:"post_id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	Username  string    `db:"username" json:"username"`
	Text      string    `db:"text" json:"text"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
