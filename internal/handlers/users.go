package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/devister/devister/internal/logger"
	"github.com/devister/devister/internal/middlewares"
	"github.com/devister/devister/internal/models"
	"github.com/devister/devister/internal/services"
)

// UserProvider defines the interface that the user service must implement.
type UserProvider interface {
	ListProfiles(ctx context.Context) ([]*models.UserProfile, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error)
	RandomProfiles(ctx context.Context) ([]*models.UserProfile, error)
	Count(ctx context.Context) (int64, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, username, password, oldPassword, bio *string) (*models.UserProfile, error)
	UploadProfilePhoto(ctx context.Context, userID uuid.UUID, data []byte, contentType string) (*models.UserProfile, error)
	ToggleFollow(ctx context.Context, actorID, targetID uuid.UUID) (*models.UserProfile, error)
	DeleteProfile(ctx context.Context, userID uuid.UUID) error
}

// UpdateUserRequest represents the JSON body for a profile update
// swagger:model UpdateUserRequest
type UpdateUserRequest struct {
	Username    *string `json:"username,omitempty"`
	Password    *string `json:"password,omitempty"`
	OldPassword *string `json:"old_password,omitempty"`
	Bio         *string `json:"bio,omitempty"`
}

// readImageUpload extracts and validates the uploaded image file.
func readImageUpload(r *http.Request) ([]byte, string, string) {
	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		return nil, "", "No File Provided"
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		return nil, "", "No File Provided"
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, "", "Unsupported File Format"
	}
	if header.Size > maxImageSize {
		return nil, "", "File Too Large"
	}

	data, err := io.ReadAll(io.LimitReader(file, maxImageSize))
	if err != nil {
		return nil, "", "No File Provided"
	}

	return data, contentType, ""
}

func writeUserError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(ErrorResponse{Error: "User Not Found"})
	case errors.Is(err, services.ErrInvalidOldPassword):
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(ErrorResponse{Error: "Old Password Is Invalid"})
	default:
		logger.Log.Errorw("internal server error", "err", err)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(ErrorResponse{Error: "Internal server error"})
	}
}

// NewListUsersHandler returns an HTTP handler listing all profiles.
// @Summary List all user profiles
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.UserProfile
// @Router /users/profile [get]
func NewListUsersHandler(svc UserProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profiles, err := svc.ListProfiles(r.Context())
		if err != nil {
			writeUserError(w, err)
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(profiles)
	}
}

// NewGetUserHandler returns an HTTP handler fetching one profile.
// @Summary Get a user profile
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} models.UserProfile
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Router /users/profile/{id} [get]
func NewGetUserHandler(svc UserProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "User Not Found"})
			return
		}

		profile, err := svc.GetProfile(r.Context(), userID)
		if err != nil {
			writeUserError(w, err)
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(profile)
	}
}

// NewRandomUsersHandler returns an HTTP handler listing profiles in random order.
// @Summary Get users in random order
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.UserProfile
// @Router /users/random [get]
func NewRandomUsersHandler(svc UserProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profiles, err := svc.RandomProfiles(r.Context())
		if err != nil {
			writeUserError(w, err)
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(profiles)
	}
}

// NewUserCountHandler returns an HTTP handler counting users.
// @Summary Get users count
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {integer} int64
// @Router /users/count [get]
func NewUserCountHandler(svc UserProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count, err := svc.Count(r.Context())
		if err != nil {
			writeUserError(w, err)
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(count)
	}
}

// NewUpdateUserHandler returns an HTTP handler updating a profile.
// @Summary Update user profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param updateUserRequest body handlers.UpdateUserRequest true "Profile update"
// @Success 200 {object} models.UserProfile
// @Failure 400 {object} handlers.ErrorResponse "Invalid request"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Router /users/profile/{id} [put]
func NewUpdateUserHandler(svc UserProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "User Not Found"})
			return
		}

		var req UpdateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "invalid request body"})
			return
		}

		if req.Password != nil && len(*req.Password) < 8 {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "password must be at least 8 characters"})
			return
		}

		profile, err := svc.UpdateProfile(r.Context(), userID, req.Username, req.Password, req.OldPassword, req.Bio)
		if err != nil {
			writeUserError(w, err)
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(profile)
	}
}

// NewProfilePhotoUploadHandler returns an HTTP handler replacing the
// authenticated user's profile photo.
// @Summary Upload profile photo
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param image formData file true "Profile photo"
// @Success 200 {object} models.UserProfile
// @Failure 400 {object} handlers.ErrorResponse "No file or unsupported format"
// @Router /users/profile-photo-upload [post]
func NewProfilePhotoUploadHandler(svc UserProvider) http.HandlerFunc {
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

		profile, err := svc.UploadProfilePhoto(r.Context(), claims.UserID, data, contentType)
		if err != nil {
			writeUserError(w, err)
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(profile)
	}
}

// NewToggleFollowHandler returns an HTTP handler flipping a follow edge.
// @Summary Toggle follow
// @Description Follows the target if not yet followed, unfollows otherwise
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "Target user ID"
// @Success 200 {object} models.UserProfile
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Router /users/follow/{id} [put]
func NewToggleFollowHandler(svc UserProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middlewares.ClaimsFromContext(r.Context())
		if claims == nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		targetID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "User Not Found"})
			return
		}

		profile, err := svc.ToggleFollow(r.Context(), claims.UserID, targetID)
		if err != nil {
			writeUserError(w, err)
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(profile)
	}
}

// NewDeleteUserHandler returns an HTTP handler deleting an account and
// cascading over its content.
// @Summary Delete user profile
// @Description Deletes the account, its posts, comments and remote images
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} handlers.MessageResponse "Profile deleted"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Router /users/profile/{id} [delete]
func NewDeleteUserHandler(svc UserProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "User Not Found"})
			return
		}

		if err := svc.DeleteProfile(r.Context(), userID); err != nil {
			writeUserError(w, err)
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(MessageResponse{Message: "Profile Deleted Successfully"})
	}
}
