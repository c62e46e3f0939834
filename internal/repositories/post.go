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

const postColumns = `
	post_id, user_id, title, description, image_url, image_key, created_at, updated_at
`

// PostsPerPage is the page size for paginated post listing.
const PostsPerPage = 10

type PostReadRepository struct {
	db *sqlx.DB
}

func NewPostReadRepository(db *sqlx.DB) *PostReadRepository {
	return &PostReadRepository{db: db}
}

// GetByID returns the post with the given id, or nil if absent.
func (r *PostReadRepository) GetByID(ctx context.Context, postID uuid.UUID) (*models.PostDB, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE post_id = $1`

	var post models.PostDB
	err := r.db.GetContext(ctx, &post, query, postID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{postID},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &post, nil
}

// List returns posts newest first. A non-nil page selects that page of
// PostsPerPage posts; a non-nil category filters by category membership.
func (r *PostReadRepository) List(ctx context.Context, page *int, category *string) ([]*models.PostDB, error) {
	query := `SELECT ` + postColumns + ` FROM posts ORDER BY created_at DESC`
	args := []any{}

	switch {
	case page != nil:
		query = `SELECT ` + postColumns + ` FROM posts ORDER BY created_at DESC OFFSET $1 LIMIT $2`
		args = []any{(*page - 1) * PostsPerPage, PostsPerPage}
	case category != nil:
		query = `
			SELECT ` + postColumns + `
			FROM posts
			WHERE post_id IN (SELECT post_id FROM post_categories WHERE category = $1)
			ORDER BY created_at DESC
		`
		args = []any{*category}
	}

	var posts []*models.PostDB
	err := r.db.SelectContext(ctx, &posts, query, args...)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", len(posts),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return posts, nil
}

// GetByUserID returns all posts owned by the user.
func (r *PostReadRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*models.PostDB, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE user_id = $1 ORDER BY created_at DESC`

	var posts []*models.PostDB
	err := r.db.SelectContext(ctx, &posts, query, userID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"result", len(posts),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return posts, nil
}

// Count returns the total number of posts.
func (r *PostReadRepository) Count(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM posts`

	var count int64
	err := r.db.GetContext(ctx, &count, query)

	logger.Log.Infow(
		"query", query,
		"result", count,
		"error", err,
	)

	return count, err
}

// GetCategories returns the post's category titles.
func (r *PostReadRepository) GetCategories(ctx context.Context, postID uuid.UUID) ([]string, error) {
	const query = `SELECT category FROM post_categories WHERE post_id = $1 ORDER BY category`

	categories := []string{}
	err := r.db.SelectContext(ctx, &categories, query, postID)

	logger.Log.Infow(
		"query", query,
		"args", []any{postID},
		"result", len(categories),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return categories, nil
}

// GetLikes returns the ids of users who liked the post.
func (r *PostReadRepository) GetLikes(ctx context.Context, postID uuid.UUID) ([]uuid.UUID, error) {
	const query = `SELECT user_id FROM post_likes WHERE post_id = $1 ORDER BY created_at`

	likes := []uuid.UUID{}
	err := r.db.SelectContext(ctx, &likes, query, postID)

	logger.Log.Infow(
		"query", query,
		"args", []any{postID},
		"result", len(likes),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return likes, nil
}

type PostWriteRepository struct {
	db *sqlx.DB
}

func NewPostWriteRepository(db *sqlx.DB) *PostWriteRepository {
	return &PostWriteRepository{db: db}
}

// Save inserts a post row and its category memberships in one transaction.
func (r *PostWriteRepository) Save(ctx context.Context, post *models.PostDB, categories []string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		logger.Log.Errorw("failed to begin transaction", "error", err)
		return err
	}
	defer tx.Rollback()

	const query = `
		INSERT INTO posts (post_id, user_id, title, description, image_url, image_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`

	if _, err := tx.ExecContext(ctx, query,
		post.PostID, post.UserID, post.Title, post.Description, post.ImageURL, post.ImageKey,
	); err != nil {
		logger.Log.Errorw("failed to insert post", "args", []any{post.PostID, post.UserID}, "error", err)
		return err
	}

	const categoryQuery = `
		INSERT INTO post_categories (post_id, category) VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`

	for _, category := range categories {
		if _, err := tx.ExecContext(ctx, categoryQuery, post.PostID, category); err != nil {
			logger.Log.Errorw("failed to insert post category", "args", []any{post.PostID, category}, "error", err)
			return err
		}
	}

	err = tx.Commit()

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{post.PostID, post.UserID, post.Title},
		"error", err,
	)

	return err
}

// Update overwrites the provided post fields, leaving nil ones untouched.
// A non-nil categories slice replaces the whole category set.
func (r *PostWriteRepository) Update(ctx context.Context, postID uuid.UUID, title, description *string, categories []string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		logger.Log.Errorw("failed to begin transaction", "error", err)
		return err
	}
	defer tx.Rollback()

	const query = `
		UPDATE posts
		SET title = COALESCE($2, title),
		    description = COALESCE($3, description),
		    updated_at = NOW()
		WHERE post_id = $1
	`

	if _, err := tx.ExecContext(ctx, query, postID, title, description); err != nil {
		logger.Log.Errorw("failed to update post", "args", []any{postID}, "error", err)
		return err
	}

	if categories != nil {
		if _, err := tx.ExecContext(ctx, `DELETE FROM post_categories WHERE post_id = $1`, postID); err != nil {
			logger.Log.Errorw("failed to clear post categories", "args", []any{postID}, "error", err)
			return err
		}
		const categoryQuery = `
			INSERT INTO post_categories (post_id, category) VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`
		for _, category := range categories {
			if _, err := tx.ExecContext(ctx, categoryQuery, postID, category); err != nil {
				logger.Log.Errorw("failed to insert post category", "args", []any{postID, category}, "error", err)
				return err
			}
		}
	}

	err = tx.Commit()

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{postID, title},
		"error", err,
	)

	return err
}

// SetImage replaces the post's image reference.
func (r *PostWriteRepository) SetImage(ctx context.Context, postID uuid.UUID, url string, key *string) error {
	const query = `UPDATE posts SET image_url = $2, image_key = $3, updated_at = NOW() WHERE post_id = $1`

	_, err := r.db.ExecContext(ctx, query, postID, url, key)

	logger.Log.Infow(
		"query", query,
		"args", []any{postID, url, key},
		"error", err,
	)

	return err
}

// ToggleLike flips userID's membership in the post's like set and reports
// whether the user likes the post afterwards.
func (r *PostWriteRepository) ToggleLike(ctx context.Context, postID, userID uuid.UUID) (bool, error) {
	const deleteQuery = `DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`

	res, err := r.db.ExecContext(ctx, deleteQuery, postID, userID)
	if err != nil {
		logger.Log.Infow("query", deleteQuery, "args", []any{postID, userID}, "error", err)
		return false, err
	}

	rowsAffected, _ := res.RowsAffected()
	if rowsAffected > 0 {
		logger.Log.Infow("query", deleteQuery, "args", []any{postID, userID}, "result", "unliked")
		return false, nil
	}

	const insertQuery = `
		INSERT INTO post_likes (post_id, user_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT DO NOTHING
	`

	_, err = r.db.ExecContext(ctx, insertQuery, postID, userID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(insertQuery), " "),
		"args", []any{postID, userID},
		"result", "liked",
		"error", err,
	)

	if err != nil {
		return false, err
	}

	return true, nil
}

// Delete removes a post. Its comments, likes and category memberships go with
// it via ON DELETE CASCADE.
func (r *PostWriteRepository) Delete(ctx context.Context, postID uuid.UUID) error {
	const query = `DELETE FROM posts WHERE post_id = $1`

	_, err := r.db.ExecContext(ctx, query, postID)

	logger.Log.Infow(
		"query", query,
		"args", []any{postID},
		"error", err,
	)

	return err
}
