package models

import (
	"time"

	"github.com/google/uuid"
)

// VerificationTokenDB is a single-use secret proving control of an email
// address or authorization to reset a password. At most one row exists per
// user; the row is deleted when the token is consumed.
type VerificationTokenDB struct {
	UserID    uuid.UUID `db:"user_id"`
	Token     string    `db:"token"`
	CreatedAt time.Time `db:"created_at"`
}
