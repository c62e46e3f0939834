package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/devister/devister/internal/logger"
	"github.com/devister/devister/internal/models"
)

// IsUniqueViolation reports whether err is a Postgres unique-constraint error.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

type TokenReadRepository struct {
	db *sqlx.DB
}

func NewTokenReadRepository(db *sqlx.DB) *TokenReadRepository {
	return &TokenReadRepository{db: db}
}

// GetByUserID returns the user's active token, or nil if none exists.
func (r *TokenReadRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.VerificationTokenDB, error) {
	const query = `
		SELECT user_id, token, created_at
		FROM verification_tokens
		WHERE user_id = $1
	`

	var token models.VerificationTokenDB
	err := r.db.GetContext(ctx, &token, query, userID)

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

	return &token, nil
}

// GetByUserIDAndToken returns the row matching both the user id and the exact
// secret, or nil when absent or mismatched.
func (r *TokenReadRepository) GetByUserIDAndToken(ctx context.Context, userID uuid.UUID, token string) (*models.VerificationTokenDB, error) {
	const query = `
		SELECT user_id, token, created_at
		FROM verification_tokens
		WHERE user_id = $1 AND token = $2
	`

	var row models.VerificationTokenDB
	err := r.db.GetContext(ctx, &row, query, userID, token)

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

	return &row, nil
}

type TokenWriteRepository struct {
	db *sqlx.DB
}

func NewTokenWriteRepository(db *sqlx.DB) *TokenWriteRepository {
	return &TokenWriteRepository{db: db}
}

// Insert creates a token row. The UNIQUE constraint on user_id makes a
// duplicate insert fail rather than overwrite; callers detect that with
// IsUniqueViolation and reuse the surviving row.
func (r *TokenWriteRepository) Insert(ctx context.Context, userID uuid.UUID, token string) error {
	const query = `
		INSERT INTO verification_tokens (user_id, token, created_at)
		VALUES ($1, $2, NOW())
	`
	args := []any{userID, token}

	_, err := r.db.ExecContext(ctx, query, userID, token)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"error", err,
	)

	return err
}

// DeleteByUserID removes the user's token row regardless of its secret.
func (r *TokenWriteRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	const query = `DELETE FROM verification_tokens WHERE user_id = $1`

	_, err := r.db.ExecContext(ctx, query, userID)

	logger.Log.Infow(
		"query", query,
		"args", []any{userID},
		"error", err,
	)

	return err
}

// Consume atomically deletes the row matching (user_id, token) and reports
// whether a row was actually removed. Exactly one of two concurrent consumers
// observes true, which keeps the token strictly single-use.
func (r *TokenWriteRepository) Consume(ctx context.Context, userID uuid.UUID, token string) (bool, error) {
	const query = `DELETE FROM verification_tokens WHERE user_id = $1 AND token = $2`

	res, err := r.db.ExecContext(ctx, query, userID, token)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow(
		"query", query,
		"args", []any{userID},
		"result", rowsAffected,
		"error", err,
	)

	if err != nil {
		return false, err
	}

	return rowsAffected > 0, nil
}
