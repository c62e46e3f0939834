package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/devister/devister/internal/logger"
	"github.com/devister/devister/internal/services"
)

// EmailVerifier defines the interface that the verification service must implement.
type EmailVerifier interface {
	ConsumeForVerification(ctx context.Context, userID uuid.UUID, token string) error
}

// NewVerifyEmailHandler returns an HTTP handler consuming a verification link.
// @Summary Verify user email
// @Description Consumes the emailed verification token and marks the account verified. The token is single-use.
// @Tags auth
// @Produce json
// @Param userId path string true "User ID"
// @Param token path string true "Verification token"
// @Success 200 {object} handlers.MessageResponse "Account verified"
// @Failure 400 {object} handlers.ErrorResponse "Invalid link"
// @Router /auth/{userId}/verify/{token} [get]
func NewVerifyEmailHandler(svc EmailVerifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(chi.URLParam(r, "userId"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Invalid Link"})
			return
		}
		token := chi.URLParam(r, "token")

		if err := svc.ConsumeForVerification(r.Context(), userID, token); err != nil {
			switch {
			case errors.Is(err, services.ErrUserNotFound),
				errors.Is(err, services.ErrInvalidLink):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(ErrorResponse{Error: "Invalid Link"})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(ErrorResponse{Error: "Internal server error"})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(MessageResponse{Message: "Your Account Verified"})
	}
}
