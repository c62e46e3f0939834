package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/devister/devister/internal/logger"
	"github.com/devister/devister/internal/models"
)

// Error variables
var (
	ErrCategoryNotFound = errors.New("category not found")
)

// CategoryReader defines read-only operations for categories.
type CategoryReader interface {
	GetByID(ctx context.Context, categoryID uuid.UUID) (*models.CategoryDB, error)
	List(ctx context.Context) ([]*models.CategoryDB, error)
}

// CategoryWriter defines write operations for categories.
type CategoryWriter interface {
	Save(ctx context.Context, category *models.CategoryDB) error
	Delete(ctx context.Context, categoryID uuid.UUID) error
}

// CategoryService handles category CRUD.
type CategoryService struct {
	reader CategoryReader
	writer CategoryWriter
}

// NewCategoryService creates a new CategoryService instance.
func NewCategoryService(reader CategoryReader, writer CategoryWriter) *CategoryService {
	return &CategoryService{
		reader: reader,
		writer: writer,
	}
}

// Create adds a category.
func (svc *CategoryService) Create(ctx context.Context, actorID uuid.UUID, title string) (*models.CategoryDB, error) {
	category := &models.CategoryDB{
		CategoryID: uuid.New(),
		UserID:     actorID,
		Title:      title,
	}

	if err := svc.writer.Save(ctx, category); err != nil {
		logger.Log.Errorw("failed to save category", "title", title, "err", err)
		return nil, err
	}

	return category, nil
}

// List returns all categories.
func (svc *CategoryService) List(ctx context.Context) ([]*models.CategoryDB, error) {
	categories, err := svc.reader.List(ctx)
	if err != nil {
		logger.Log.Errorw("failed to list categories", "err", err)
		return nil, err
	}
	return categories, nil
}

// Delete removes a category.
func (svc *CategoryService) Delete(ctx context.Context, categoryID uuid.UUID) error {
	category, err := svc.reader.GetByID(ctx, categoryID)
	if err != nil {
		logger.Log.Errorw("failed to get category", "category_id", categoryID, "err", err)
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}

	if err := svc.writer.Delete(ctx, categoryID); err != nil {
		logger.Log.Errorw("failed to delete category", "category_id", categoryID, "err", err)
		return err
	}

	return nil
}
