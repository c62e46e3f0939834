package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/devister/devister/internal/logger"
	"github.com/devister/devister/internal/middlewares"
	"github.com/devister/devister/internal/models"
	"github.com/devister/devister/internal/services"
)

// PostProvider defines the interface that the post service must implement.
type PostProvider interface {
	Create(ctx context.Context, userID uuid.UUID, title, description string, categories []string, image []byte, contentType string) (*models.Post, error)
	List(ctx context.Context, page *int, category *string) ([]*models.Post, error)
	Get(ctx context.Context, postID uuid.UUID) (*models.Post, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, actorID, postID uuid.UUID, title, description *string, categories []string) (*models.Post, error)
	UpdateImage(ctx context.Context, actorID, postID uuid.UUID, image []byte, contentType string) (*models.Post, error)
	Delete(ctx context.Context, actorID uuid.UUID, isAdmin bool, postID uuid.UUID) error
	ToggleLike(ctx context.Context, actorID, postID uuid.UUID) (*models.Post, error)
}

// UpdatePostRequest represents the JSON body for a post update
// swagger:model UpdatePostRequest
type UpdatePostRequest struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Categories  []string `json:"categories,omitempty"`
}

func writePostError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrPostNotFound):
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(ErrorResponse{Error: "Post Not Found"})
	case errors.Is(err, services.ErrForbidden):
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(ErrorResponse{Error: "You Can Only Modify Your Own Posts"})
	default:
		logger.Log.Errorw("internal server error", "err", err)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(ErrorResponse{Error: "Internal server error"})
	}
}

// NewCreatePostHandler returns an HTTP handler creating a post with its image.
// @Summary Create a post
// @Tags posts
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param description formData string true "Description"
// @Param categories formData string false "Category titles, repeatable"
// @Param image formData file true "Post image"
// @Success 201 {object} models.Post
// @Failure 400 {object} handlers.ErrorResponse "Invalid request"
// @Router /posts [post]
func NewCreatePostHandler(svc PostProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middlewares.ClaimsFromContext(r.Context())
		if claims == nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		data, contentType, msg := readImageUpload(r)
		if msg != "" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{Error: msg})
			return
		}

		title := r.FormValue("title")
		description := r.FormValue("description")
		if title == "" || description == "" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "title and description are required"})
			return
		}
		categories := r.MultipartForm.Value["categories"]

		post, err := svc.Create(r.Context(), claims.UserID, title, description, categories, data, contentType)
		if err != nil {
			writePostError(w, err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(post)
	}
}

// NewListPostsHandler returns an HTTP handler listing posts newest first.
// The optional pageNumber query selects one page, the optional category
// query keeps only posts carrying that category.
// @Summary List posts
// @Tags posts
// @Produce json
// @Param pageNumber query int false "Page number, 1-based"
// @Param category query string false "Category title filter"
// @Success 200 {array} models.Post
// @Router /posts [get]
func NewListPostsHandler(svc PostProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var page *int
		if raw := r.URL.Query().Get("pageNumber"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 {
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(ErrorResponse{Error: "pageNumber must be a positive integer"})
				return
			}
			page = &n
		}

		var category *string
		if raw := r.URL.Query().Get("category"); raw != "" {
			category = &raw
		}

		posts, err := svc.List(r.Context(), page, category)
		if err != nil {
			writePostError(w, err)
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(posts)
	}
}

// NewGetPostHandler returns an HTTP handler fetching one post with comments.
// @Summary Get a post
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} models.Post
// @Failure 404 {object} handlers.ErrorResponse "Post not found"
// @Router /posts/{id} [get]
func NewGetPostHandler(svc PostProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Post Not Found"})
			return
		}

		post, err := svc.Get(r.Context(), postID)
		if err != nil {
			writePostError(w, err)
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(post)
	}
}

// NewPostCountHandler returns an HTTP handler counting posts.
// @Summary Get posts count
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Success 200 {integer} int64
// @Router /posts/count [get]
func NewPostCountHandler(svc PostProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count, err := svc.Count(r.Context())
		if err != nil {
			writePostError(w, err)
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(count)
	}
}

// NewUpdatePostHandler returns an HTTP handler updating a post's fields.
// @Summary Update a post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Param updatePostRequest body handlers.UpdatePostRequest true "Post update"
// @Success 200 {object} models.Post
// @Failure 403 {object} handlers.ErrorResponse "Not the owner"
// @Failure 404 {object} handlers.ErrorResponse "Post not found"
// @Router /posts/{id} [put]
func NewUpdatePostHandler(svc PostProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middlewares.ClaimsFromContext(r.Context())
		if claims == nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		postID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Post Not Found"})
			return
		}

		var req UpdatePostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "invalid request body"})
			return
		}

		post, err := svc.Update(r.Context(), claims.UserID, postID, req.Title, req.Description, req.Categories)
		if err != nil {
			writePostError(w, err)
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(post)
	}
}

// NewPostImageUploadHandler returns an HTTP handler replacing a post's image.
// @Summary Replace post image
// @Tags posts
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Param image formData file true "Post image"
// @Success 200 {object} models.Post
// @Failure 400 {object} handlers.ErrorResponse "No file or unsupported format"
// @Failure 403 {object} handlers.ErrorResponse "Not the owner"
// @Failure 404 {object} handlers.ErrorResponse "Post not found"
// @Router /posts/post-image-upload/{id} [put]
func NewPostImageUploadHandler(svc PostProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middlewares.ClaimsFromContext(r.Context())
		if claims == nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		postID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Post Not Found"})
			return
		}

		data, contentType, msg := readImageUpload(r)
		if msg != "" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{Error: msg})
			return
		}

		post, err := svc.UpdateImage(r.Context(), claims.UserID, postID, data, contentType)
		if err != nil {
			writePostError(w, err)
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(post)
	}
}

// NewToggleLikeHandler returns an HTTP handler flipping the caller's like.
// @Summary Toggle post like
// @Description Likes the post if not yet liked, unlikes otherwise
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} models.Post
// @Failure 404 {object} handlers.ErrorResponse "Post not found"
// @Router /posts/like/{id} [put]
func NewToggleLikeHandler(svc PostProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middlewares.ClaimsFromContext(r.Context())
		if claims == nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		postID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Post Not Found"})
			return
		}

		post, err := svc.ToggleLike(r.Context(), claims.UserID, postID)
		if err != nil {
			writePostError(w, err)
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(post)
	}
}

// NewDeletePostHandler returns an HTTP handler deleting a post.
// @Summary Delete a post
// @Description Deletes the post, its comments and its remote image. Owner or admin only.
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} handlers.MessageResponse "Post deleted"
// @Failure 403 {object} handlers.ErrorResponse "Not the owner"
// @Failure 404 {object} handlers.ErrorResponse "Post not found"
// @Router /posts/{id} [delete]
func NewDeletePostHandler(svc PostProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middlewares.ClaimsFromContext(r.Context())
		if claims == nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		postID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Post Not Found"})
			return
		}

		if err := svc.Delete(r.Context(), claims.UserID, claims.IsAdmin, postID); err != nil {
			writePostError(w, err)
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(MessageResponse{Message: "Post Deleted Successfully"})
	}
}
