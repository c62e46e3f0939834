package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/devister/devister/internal/logger"
	"github.com/devister/devister/internal/services"
)

// ResetLinkSender defines the interface for sending password reset links.
type ResetLinkSender interface {
	SendResetEmail(ctx context.Context, email string) error
}

// PasswordResetter defines the interface for validating and applying resets.
type PasswordResetter interface {
	CheckResetLink(ctx context.Context, userID uuid.UUID, token string) error
	ConsumeForPasswordReset(ctx context.Context, userID uuid.UUID, token, newPassword string) error
}

// ResetPasswordLinkRequest represents the JSON body requesting a reset link
// swagger:model ResetPasswordLinkRequest
type ResetPasswordLinkRequest struct {
	// Email
	// required: true
	Email string `json:"email"`
}

// ResetPasswordRequest represents the JSON body carrying the new password
// swagger:model ResetPasswordRequest
type ResetPasswordRequest struct {
	// New password
	// required: true
	Password string `json:"password"`
}

// NewResetPasswordLinkHandler returns an HTTP handler mailing a reset link.
// @Summary Send reset password link
// @Description Issues (or reuses) the account's verification token and mails the reset link
// @Tags password
// @Accept json
// @Produce json
// @Param resetPasswordLinkRequest body handlers.ResetPasswordLinkRequest true "Reset link request"
// @Success 200 {object} handlers.MessageResponse "Reset link sent"
// @Failure 404 {object} handlers.ErrorResponse "No user with that email"
// @Router /password/reset-password-link [post]
func NewResetPasswordLinkHandler(svc ResetLinkSender) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ResetPasswordLinkRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "invalid request body"})
			return
		}

		if _, err := mail.ParseAddress(req.Email); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "email must be a valid address"})
			return
		}

		if err := svc.SendResetEmail(r.Context(), req.Email); err != nil {
			switch {
			case errors.Is(err, services.ErrUserNotFound):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(ErrorResponse{Error: "User With Given Email Does Not Exist!"})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(ErrorResponse{Error: "Internal server error"})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(MessageResponse{
			Message: "Password Reset Link Sent To Your Email, Please Check Your Inbox",
		})
	}
}

// NewCheckResetLinkHandler returns an HTTP handler validating a reset link
// without consuming it.
// @Summary Check reset password link
// @Description Validates the reset link; the token stays usable
// @Tags password
// @Produce json
// @Param userId path string true "User ID"
// @Param token path string true "Verification token"
// @Success 200 {object} handlers.MessageResponse "Valid URL"
// @Failure 404 {object} handlers.ErrorResponse "Invalid link"
// @Router /password/reset-password/{userId}/{token} [get]
func NewCheckResetLinkHandler(svc PasswordResetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(chi.URLParam(r, "userId"))
		if err != nil {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Invalid Link"})
			return
		}
		token := chi.URLParam(r, "token")

		if err := svc.CheckResetLink(r.Context(), userID, token); err != nil {
			switch {
			case errors.Is(err, services.ErrUserNotFound),
				errors.Is(err, services.ErrInvalidLink):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(ErrorResponse{Error: "Invalid Link"})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(ErrorResponse{Error: "Internal server error"})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(MessageResponse{Message: "Valid URL"})
	}
}

// NewResetPasswordHandler returns an HTTP handler applying a password reset.
// @Summary Reset password
// @Description Consumes the reset token and overwrites the password. The token is single-use.
// @Tags password
// @Accept json
// @Produce json
// @Param userId path string true "User ID"
// @Param token path string true "Verification token"
// @Param resetPasswordRequest body handlers.ResetPasswordRequest true "New password"
// @Success 200 {object} handlers.MessageResponse "Password reset"
// @Failure 404 {object} handlers.ErrorResponse "Invalid link"
// @Router /password/reset-password/{userId}/{token} [post]
func NewResetPasswordHandler(svc PasswordResetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(chi.URLParam(r, "userId"))
		if err != nil {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Invalid Link"})
			return
		}
		token := chi.URLParam(r, "token")

		var req ResetPasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "invalid request body"})
			return
		}

		if len(req.Password) < 8 {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "password must be at least 8 characters"})
			return
		}

		if err := svc.ConsumeForPasswordReset(r.Context(), userID, token, req.Password); err != nil {
			switch {
			case errors.Is(err, services.ErrUserNotFound),
				errors.Is(err, services.ErrInvalidLink):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(ErrorResponse{Error: "Invalid Link"})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(ErrorResponse{Error: "Internal server error"})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(MessageResponse{Message: "Password Reset Successfully, Please Login"})
	}
}
