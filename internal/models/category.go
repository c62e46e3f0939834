package models

import (
	"time"

	"github.com/google/uuid"
)

// CategoryDB represents a category row in the database.
type CategoryDB struct {
	CategoryID uuid.UUID `db:"category_id" json:"id"`
	UserID     uuid.UUID `db:"user_id" json:"user_id"`
	Title      string    `db:"title" json:"title"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
