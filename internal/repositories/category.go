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

type CategoryReadRepository struct {
	db *sqlx.DB
}

func NewCategoryReadRepository(db *sqlx.DB) *CategoryReadRepository {
	return &CategoryReadRepository{db: db}
}

// GetByID returns the category with the given id, or nil if absent.
func (r *CategoryReadRepository) GetByID(ctx context.Context, categoryID uuid.UUID) (*models.CategoryDB, error) {
	const query = `SELECT category_id, user_id, title, created_at FROM categories WHERE category_id = $1`

	var category models.CategoryDB
	err := r.db.GetContext(ctx, &category, query, categoryID)

	logger.Log.Infow(
		"query", query,
		"args", []any{categoryID},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &category, nil
}

// List returns all categories, newest first.
func (r *CategoryReadRepository) List(ctx context.Context) ([]*models.CategoryDB, error) {
	const query = `SELECT category_id, user_id, title, created_at FROM categories ORDER BY created_at DESC`

	var categories []*models.CategoryDB
	err := r.db.SelectContext(ctx, &categories, query)

	logger.Log.Infow(
		"query", query,
		"result", len(categories),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return categories, nil
}

type CategoryWriteRepository struct {
	db *sqlx.DB
}

func NewCategoryWriteRepository(db *sqlx.DB) *CategoryWriteRepository {
	return &CategoryWriteRepository{db: db}
}

// Save inserts a new category row.
func (r *CategoryWriteRepository) Save(ctx context.Context, category *models.CategoryDB) error {
	const query = `
		INSERT INTO categories (category_id, user_id, title, created_at)
		VALUES ($1, $2, $3, NOW())
	`
	args := []any{category.CategoryID, category.UserID, category.Title}

	_, err := r.db.ExecContext(ctx, query, args...)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"error", err,
	)

	return err
}

// Delete removes a category.
func (r *CategoryWriteRepository) Delete(ctx context.Context, categoryID uuid.UUID) error {
	const query = `DELETE FROM categories WHERE category_id = $1`

	_, err := r.db.ExecContext(ctx, query, categoryID)

	logger.Log.Infow(
		"query", query,
		"args", []any{categoryID},
		"error", err,
	)

	return err
}
