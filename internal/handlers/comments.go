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

// CommentProvider defines the interface that the comment service must implement.
type CommentProvider interface {
	Create(ctx context.Context, actorID, postID uuid.UUID, text string) (*models.CommentDB, error)
	List(ctx context.Context) ([]*models.CommentDB, error)
	Update(ctx context.Context, actorID, commentID uuid.UUID, text string) (*models.CommentDB, error)
	Delete(ctx context.Context, actorID uuid.UUID, isAdmin bool, commentID uuid.UUID) error
}

// CreateCommentRequest represents the JSON body creating a comment
// swagger:model CreateCommentRequest
type CreateCommentRequest struct {
	// Post ID
	// required: true
	PostID uuid.UUID `json:"post_id"`

	// Comment text
	// required: true
	Text string `json:"text"`
}

// UpdateCommentRequest represents the JSON body updating a comment
// swagger:model UpdateCommentRequest
type UpdateCommentRequest struct {
	// Comment text
	// required: true
	Text string `json:"text"`
}

func writeCommentError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrCommentNotFound):
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(ErrorResponse{Error: "Comment Not Found"})
	case errors.Is(err, services.ErrPostNotFound):
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(ErrorResponse{Error: "Post Not Found"})
	case errors.Is(err, services.ErrUserNotFound):
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(ErrorResponse{Error: "User Not Found"})
	case errors.Is(err, services.ErrForbidden):
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(ErrorResponse{Error: "You Can Only Modify Your Own Comments"})
	default:
		logger.Log.Errorw("internal server error", "err", err)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(ErrorResponse{Error: "Internal server error"})
	}
}

// NewCreateCommentHandler returns an HTTP handler creating a comment.
// @Summary Create a comment
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param createCommentRequest body handlers.CreateCommentRequest true "Comment"
// @Success 201 {object} models.CommentDB
// @Failure 404 {object} handlers.ErrorResponse "Post or user not found"
// @Router /comments [post]
func NewCreateCommentHandler(svc CommentProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middlewares.ClaimsFromContext(r.Context())
		if claims == nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		var req CreateCommentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "invalid request body"})
			return
		}

		if req.Text == "" || req.PostID == uuid.Nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "post_id and text are required"})
			return
		}

		comment, err := svc.Create(r.Context(), claims.UserID, req.PostID, req.Text)
		if err != nil {
			writeCommentError(w, err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(comment)
	}
}

// NewListCommentsHandler returns an HTTP handler listing all comments.
// @Summary List comments
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.CommentDB
// @Router /comments [get]
func NewListCommentsHandler(svc CommentProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		comments, err := svc.List(r.Context())
		if err != nil {
			writeCommentError(w, err)
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(comments)
	}
}

// NewUpdateCommentHandler returns an HTTP handler updating a comment's text.
// @Summary Update a comment
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Comment ID"
// @Param updateCommentRequest body handlers.UpdateCommentRequest true "New text"
// @Success 200 {object} models.CommentDB
// @Failure 403 {object} handlers.ErrorResponse "Not the owner"
// @Failure 404 {object} handlers.ErrorResponse "Comment not found"
// @Router /comments/{id} [put]
func NewUpdateCommentHandler(svc CommentProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middlewares.ClaimsFromContext(r.Context())
		if claims == nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		commentID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Comment Not Found"})
			return
		}

		var req UpdateCommentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "invalid request body"})
			return
		}
		if req.Text == "" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "text is required"})
			return
		}

		comment, err := svc.Update(r.Context(), claims.UserID, commentID, req.Text)
		if err != nil {
			writeCommentError(w, err)
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(comment)
	}
}

// NewDeleteCommentHandler returns an HTTP handler deleting a comment.
// @Summary Delete a comment
// @Description Owner or admin only
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Comment ID"
// @Success 200 {object} handlers.MessageResponse "Comment deleted"
// @Failure 403 {object} handlers.ErrorResponse "Not the owner"
// @Failure 404 {object} handlers.ErrorResponse "Comment not found"
// @Router /comments/{id} [delete]
func NewDeleteCommentHandler(svc CommentProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middlewares.ClaimsFromContext(r.Context())
		if claims == nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		commentID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Comment Not Found"})
			return
		}

		if err := svc.Delete(r.Context(), claims.UserID, claims.IsAdmin, commentID); err != nil {
			writeCommentError(w, err)
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(MessageResponse{Message: "Comment Deleted Successfully"})
	}
}
