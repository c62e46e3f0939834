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

const commentColumns = `
	comment_id, post_id, user_id, username, text, created_at, updated_at
`

type CommentReadRepository struct {
	db *sqlx.DB
}

func NewCommentReadRepository(db *sqlx.DB) *CommentReadRepository {
	return &CommentReadRepository{db: db}
}

// GetByID returns the comment with the given id, or nil if absent.
func (r *CommentReadRepository) GetByID(ctx context.Context, commentID uuid.UUID) (*models.CommentDB, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE comment_id = $1`

	var comment models.CommentDB
	err := r.db.GetContext(ctx, &comment, query, commentID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{commentID},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &comment, nil
}

// List returns all comments, newest first.
func (r *CommentReadRepository) List(ctx context.Context) ([]*models.CommentDB, error) {
	query := `SELECT ` + commentColumns + ` FROM comments ORDER BY created_at DESC`

	var comments []*models.CommentDB
	err := r.db.SelectContext(ctx, &comments, query)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"result", len(comments),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return comments, nil
}

// GetByPostID returns the post's comments, oldest first.
func (r *CommentReadRepository) GetByPostID(ctx context.Context, postID uuid.UUID) ([]*models.CommentDB, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE post_id = $1 ORDER BY created_at`

	comments := []*models.CommentDB{}
	err := r.db.SelectContext(ctx, &comments, query, postID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{postID},
		"result", len(comments),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return comments, nil
}

type CommentWriteRepository struct {
	db *sqlx.DB
}

func NewCommentWriteRepository(db *sqlx.DB) *CommentWriteRepository {
	return &CommentWriteRepository{db: db}
}

// Save inserts a new comment row.
func (r *CommentWriteRepository) Save(ctx context.Context, comment *models.CommentDB) error {
	const query = `
		INSERT INTO comments (comment_id, post_id, user_id, username, text, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`
	args := []any{comment.CommentID, comment.PostID, comment.UserID, comment.Username, comment.Text}

	_, err := r.db.ExecContext(ctx, query, args...)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{comment.CommentID, comment.PostID, comment.UserID},
		"error", err,
	)

	return err
}

// Update overwrites the comment text.
func (r *CommentWriteRepository) Update(ctx context.Context, commentID uuid.UUID, text string) error {
	const query = `UPDATE comments SET text = $2, updated_at = NOW() WHERE comment_id = $1`

	_, err := r.db.ExecContext(ctx, query, commentID, text)

	logger.Log.Infow(
		"query", query,
		"args", []any{commentID},
		"error", err,
	)

	return err
}

// Delete removes a comment.
func (r *CommentWriteRepository) Delete(ctx context.Context, commentID uuid.UUID) error {
	const query = `DELETE FROM comments WHERE comment_id = $1`

	_, err := r.db.ExecContext(ctx, query, commentID)

	logger.Log.Infow(
		"query", query,
		"args", []any{commentID},
		"error", err,
	)

	return err
}
