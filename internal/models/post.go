package models

import (
	"time"

	"github.com/google/uuid"
)

// PostDB represents a post row in the database.
type PostDB struct {
	PostID      uuid.UUID `db:"post_id" json:"id"`
	UserID      uuid.UUID `db:"user_id" json:"user_id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	ImageURL    string    `db:"image_url" json:"image_url"`
	ImageKey    *string   `db:"image_key" json:"-"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Post is a post with its set-valued relations resolved.
type Post struct {
	PostDB
	Categories []string     `json:"categories"`
	Likes      []uuid.UUID  `json:"likes"`
	Comments   []*CommentDB `json:"comments,omitempty"`
}
