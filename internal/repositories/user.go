package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/devister/devister/internal/logger"
	"github.com/devister/devister/internal/models"
)

const userColumns = `
	user_id, username, email, password_hash, bio,
	profile_photo_url, profile_photo_key,
	is_admin, is_account_verified, created_at, updated_at
`

type UserReadRepository struct {
	db *sqlx.DB
}

func NewUserReadRepository(db *sqlx.DB) *UserReadRepository {
	return &UserReadRepository{db: db}
}

// GetByID returns the user with the given id, or nil if absent.
func (r *UserReadRepository) GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1`

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, userID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// GetByEmail returns the user with the given email, or nil if absent.
func (r *UserReadRepository) GetByEmail(ctx context.Context, email string) (*models.UserDB, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, email)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{email},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// List returns all users, newest first.
func (r *UserReadRepository) List(ctx context.Context) ([]*models.UserDB, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`

	var users []*models.UserDB
	err := r.db.SelectContext(ctx, &users, query)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"result", len(users),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return users, nil
}

// Random returns users in random order.
func (r *UserReadRepository) Random(ctx context.Context) ([]*models.UserDB, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY RANDOM()`

	var users []*models.UserDB
	err := r.db.SelectContext(ctx, &users, query)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"result", len(users),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return users, nil
}

// Count returns the total number of users.
func (r *UserReadRepository) Count(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM users`

	var count int64
	err := r.db.GetContext(ctx, &count, query)

	logger.Log.Infow(
		"query", query,
		"result", count,
		"error", err,
	)

	return count, err
}

// GetFollowers returns the ids of users following the given user.
func (r *UserReadRepository) GetFollowers(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	const query = `SELECT follower_id FROM user_follows WHERE followee_id = $1 ORDER BY created_at`

	followers := []uuid.UUID{}
	err := r.db.SelectContext(ctx, &followers, query, userID)

	logger.Log.Infow(
		"query", query,
		"args", []any{userID},
		"result", len(followers),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return followers, nil
}

// GetFollowing returns the ids of users the given user follows.
func (r *UserReadRepository) GetFollowing(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	const query = `SELECT followee_id FROM user_follows WHERE follower_id = $1 ORDER BY created_at`

	following := []uuid.UUID{}
	err := r.db.SelectContext(ctx, &following, query, userID)

	logger.Log.Infow(
		"query", query,
		"args", []any{userID},
		"result", len(following),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return following, nil
}

type UserWriteRepository struct {
	db *sqlx.DB
}

func NewUserWriteRepository(db *sqlx.DB) *UserWriteRepository {
	return &UserWriteRepository{db: db}
}

// Save inserts a new user row. The UNIQUE constraint on email surfaces
// duplicate registrations as an error.
func (r *UserWriteRepository) Save(ctx context.Context, user *models.UserDB) error {
	const query = `
		INSERT INTO users (user_id, username, email, password_hash, is_admin, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`
	args := []any{user.UserID, user.Username, user.Email, user.PasswordHash, user.IsAdmin}

	_, err := r.db.ExecContext(ctx, query, args...)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{user.UserID, user.Username, user.Email},
		"error", err,
	)

	return err
}

// Update overwrites the provided profile fields, leaving nil ones untouched.
func (r *UserWriteRepository) Update(ctx context.Context, userID uuid.UUID, username, passwordHash, bio *string) error {
	const query = `
		UPDATE users
		SET username = COALESCE($2, username),
		    password_hash = COALESCE($3, password_hash),
		    bio = COALESCE($4, bio),
		    updated_at = NOW()
		WHERE user_id = $1
	`

	_, err := r.db.ExecContext(ctx, query, userID, username, passwordHash, bio)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID, username, bio},
		"error", err,
	)

	return err
}

// SetVerified flips the account's verified flag. The transition is one-way:
// callers only ever set it to true.
func (r *UserWriteRepository) SetVerified(ctx context.Context, userID uuid.UUID, verified bool) error {
	const query = `UPDATE users SET is_account_verified = $2, updated_at = NOW() WHERE user_id = $1`

	_, err := r.db.ExecContext(ctx, query, userID, verified)

	logger.Log.Infow(
		"query", query,
		"args", []any{userID, verified},
		"error", err,
	)

	return err
}

// SetPassword overwrites the stored password hash.
func (r *UserWriteRepository) SetPassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	const query = `UPDATE users SET password_hash = $2, updated_at = NOW() WHERE user_id = $1`

	_, err := r.db.ExecContext(ctx, query, userID, passwordHash)

	logger.Log.Infow(
		"query", query,
		"args", []any{userID},
		"error", err,
	)

	return err
}

// SetProfilePhoto replaces the profile photo reference.
func (r *UserWriteRepository) SetProfilePhoto(ctx context.Context, userID uuid.UUID, url string, key *string) error {
	const query = `
		UPDATE users
		SET profile_photo_url = $2, profile_photo_key = $3, updated_at = NOW()
		WHERE user_id = $1
	`

	_, err := r.db.ExecContext(ctx, query, userID, url, key)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID, url, key},
		"error", err,
	)

	return err
}

// ToggleFollow flips followerID's membership in followeeID's follower set and
// reports whether the follower is a member afterwards.
func (r *UserWriteRepository) ToggleFollow(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	const deleteQuery = `DELETE FROM user_follows WHERE follower_id = $1 AND followee_id = $2`

	res, err := r.db.ExecContext(ctx, deleteQuery, followerID, followeeID)
	if err != nil {
		logger.Log.Infow("query", deleteQuery, "args", []any{followerID, followeeID}, "error", err)
		return false, err
	}

	rowsAffected, _ := res.RowsAffected()
	if rowsAffected > 0 {
		logger.Log.Infow("query", deleteQuery, "args", []any{followerID, followeeID}, "result", "unfollowed")
		return false, nil
	}

	const insertQuery = `
		INSERT INTO user_follows (follower_id, followee_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT DO NOTHING
	`

	_, err = r.db.ExecContext(ctx, insertQuery, followerID, followeeID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(insertQuery), " "),
		"args", []any{followerID, followeeID},
		"result", "followed",
		"error", err,
	)

	if err != nil {
		return false, err
	}

	return true, nil
}

// DeleteWithContent removes the user's comments, posts and the account row in
// a single transaction, so a crash cannot leave content without an owner.
// Follows, likes and any unconsumed verification token go with the account
// via ON DELETE CASCADE.
func (r *UserWriteRepository) DeleteWithContent(ctx context.Context, userID uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		logger.Log.Errorw("failed to begin cascade transaction", "error", err)
		return err
	}
	defer tx.Rollback()

	queries := []string{
		`DELETE FROM comments WHERE user_id = $1`,
		`DELETE FROM posts WHERE user_id = $1`,
		`DELETE FROM users WHERE user_id = $1`,
	}

	for _, query := range queries {
		if _, err := tx.ExecContext(ctx, query, userID); err != nil {
			logger.Log.Errorw("cascade delete failed", "query", query, "args", []any{userID}, "error", err)
			return err
		}
	}

	err = tx.Commit()

	logger.Log.Infow(
		"query", "cascade delete",
		"args", []any{userID},
		"error", err,
	)

	return err
}
