package models

import (
	"time"

	"github.com/google/uuid"
)

// UserDB represents a user row in the database.
type UserDB struct {
	UserID            uuid.UUID `db:"user_id"`
	Username          string    `db:"username"`
	Email             string    `db:"email"`
	PasswordHash      string    `db:"password_hash"`
	Bio               string    `db:"bio"`
	ProfilePhotoURL   string    `db:"profile_photo_url"`
	ProfilePhotoKey   *string   `db:"profile_photo_key"`
	IsAdmin           bool      `db:"is_admin"`
	IsAccountVerified bool      `db:"is_account_verified"`
	CreatedAt         time.Time `db:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"`
}

// UserProfile is the outward representation of a user, password hash stripped.
type UserProfile struct {
	UserID            uuid.UUID   `json:"id"`
	Username          string      `json:"username"`
	Email             string      `json:"email"`
	Bio               string      `json:"bio"`
	ProfilePhotoURL   string      `json:"profile_photo_url"`
	IsAdmin           bool        `json:"is_admin"`
	IsAccountVerified bool        `json:"is_account_verified"`
	Followers         []uuid.UUID `json:"followers"`
	Following         []uuid.UUID `json:"following"`
	Posts             []*PostDB   `json:"posts,omitempty"`
	CreatedAt         time.Time   `json:"created_at"`
}

// Profile builds the outward representation of a user row.
func (u *UserDB) Profile() *UserProfile {
	return &UserProfile{
		UserID:            u.UserID,
		Username:          u.Username,
		Email:             u.Email,
		Bio:               u.Bio,
		ProfilePhotoURL:   u.ProfilePhotoURL,
		IsAdmin:           u.IsAdmin,
		IsAccountVerified: u.IsAccountVerified,
		Followers:         []uuid.UUID{},
		Following:         []uuid.UUID{},
		CreatedAt:         u.CreatedAt,
	}
}
