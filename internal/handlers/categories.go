package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/devister/devister/internal/logger"
	"github.com/devister/devister/internal/middlewares"
	"github.com/devister/devister/internal/models"
	"github.com/devister/devister/internal/services"
)

// CategoryProvider defines the interface that the category service must implement.
type CategoryProvider interface {
	Create(ctx context.Context, actorID uuid.UUID, title string) (*models.CategoryDB, error)
	List(ctx context.Context) ([]*models.CategoryDB, error)
	Delete(ctx context.Context, categoryID uuid.UUID) error
}

// CreateCategoryRequest represents the JSON body creating a category
// swagger:model CreateCategoryRequest
type CreateCategoryRequest struct {
	// Category title
	// required: true
	Title string `json:"title"`
}

func writeCategoryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrCategoryNotFound):
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(ErrorResponse{Error: "Category Not Found"})
	default:
		logger.Log.Errorw("internal server error", "err", err)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(ErrorResponse{Error: "Internal server error"})
	}
}

// NewCreateCategoryHandler returns an HTTP handler creating a category.
// Admin only, enforced by middleware.
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param createCategoryRequest body handlers.CreateCategoryRequest true "Category"
// @Success 201 {object} models.CategoryDB
// @Failure 400 {object} handlers.ErrorResponse "Invalid request"
// @Router /categories [post]
func NewCreateCategoryHandler(svc CategoryProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middlewares.ClaimsFromContext(r.Context())
		if claims == nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		var req CreateCategoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "invalid request body"})
			return
		}
		if req.Title == "" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "title is required"})
			return
		}

		category, err := svc.Create(r.Context(), claims.UserID, req.Title)
		if err != nil {
			writeCategoryError(w, err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(category)
	}
}

// NewListCategoriesHandler returns an HTTP handler listing all categories.
// @Summary List categories
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.CategoryDB
// @Router /categories [get]
func NewListCategoriesHandler(svc CategoryProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := svc.List(r.Context())
		if err != nil {
			writeCategoryError(w, err)
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(categories)
	}
}

// NewDeleteCategoryHandler returns an HTTP handler deleting a category.
// Admin only, enforced by middleware.
// @Summary Delete a category
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Success 200 {object} handlers.MessageResponse "Category deleted"
// @Failure 404 {object} handlers.ErrorResponse "Category not found"
// @Router /categories/{id} [delete]
func NewDeleteCategoryHandler(svc CategoryProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Category Not Found"})
			return
		}

		if err := svc.Delete(r.Context(), categoryID); err != nil {
			writeCategoryError(w, err)
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(MessageResponse{Message: "Category Deleted Successfully"})
	}
}
