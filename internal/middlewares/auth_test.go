package middlewares

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/devister/devister/internal/jwt"
)

func TestAuthMiddleware(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := ClaimsFromContext(r.Context())
		assert.NotNil(t, claims)
		assert.Equal(t, userID, claims.UserID)
		w.WriteHeader(http.StatusOK)
	})

	t.Run("valid token", func(t *testing.T) {
		mockTokener := NewMockTokener(ctrl)
		mockTokener.EXPECT().
			GetTokenFromRequest(gomock.Any(), gomock.Any()).
			Return("token123", nil)
		mockTokener.EXPECT().
			GetClaims(gomock.Any(), "token123").
			Return(&jwt.Claims{UserID: userID}, nil)

		handler := AuthMiddleware(mockTokener)(next)

		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		mockTokener := NewMockTokener(ctrl)
		mockTokener.EXPECT().
			GetTokenFromRequest(gomock.Any(), gomock.Any()).
			Return("", errors.New("no authorization header"))

		handler := AuthMiddleware(mockTokener)(next)

		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		mockTokener := NewMockTokener(ctrl)
		mockTokener.EXPECT().
			GetTokenFromRequest(gomock.Any(), gomock.Any()).
			Return("token123", nil)
		mockTokener.EXPECT().
			GetClaims(gomock.Any(), "token123").
			Return(nil, errors.New("token is not valid"))

		handler := AuthMiddleware(mockTokener)(next)

		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestAdminOnlyMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := AdminOnlyMiddleware()(next)

	tests := []struct {
		name         string
		claims       *jwt.Claims
		expectedCode int
	}{
		{"admin", &jwt.Claims{UserID: uuid.New(), IsAdmin: true}, http.StatusOK},
		{"regular user", &jwt.Claims{UserID: uuid.New()}, http.StatusForbidden},
		{"unauthenticated", nil, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/categories", nil)
			if tt.claims != nil {
				req = req.WithContext(ContextWithClaims(req.Context(), tt.claims))
			}

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
		})
	}
}

func TestSelfOnlyMiddleware(t *testing.T) {
	userID := uuid.New()

	router := chi.NewRouter()
	router.With(SelfOnlyMiddleware()).Put("/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name         string
		targetID     string
		claims       *jwt.Claims
		expectedCode int
	}{
		{"self", userID.String(), &jwt.Claims{UserID: userID}, http.StatusOK},
		{"other user", uuid.New().String(), &jwt.Claims{UserID: userID}, http.StatusForbidden},
		{"admin is not exempt", uuid.New().String(), &jwt.Claims{UserID: userID, IsAdmin: true}, http.StatusForbidden},
		{"malformed id", "not-a-uuid", &jwt.Claims{UserID: userID}, http.StatusForbidden},
		{"unauthenticated", userID.String(), nil, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/users/%s", tt.targetID), nil)
			if tt.claims != nil {
				req = req.WithContext(ContextWithClaims(req.Context(), tt.claims))
			}

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
		})
	}
}

func TestSelfOrAdminMiddleware(t *testing.T) {
	userID := uuid.New()

	router := chi.NewRouter()
	router.With(SelfOrAdminMiddleware()).Delete("/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name         string
		targetID     string
		claims       *jwt.Claims
		expectedCode int
	}{
		{"self", userID.String(), &jwt.Claims{UserID: userID}, http.StatusOK},
		{"admin deletes another user", uuid.New().String(), &jwt.Claims{UserID: userID, IsAdmin: true}, http.StatusOK},
		{"stranger", uuid.New().String(), &jwt.Claims{UserID: userID}, http.StatusForbidden},
		{"unauthenticated", userID.String(), nil, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/users/%s", tt.targetID), nil)
			if tt.claims != nil {
				req = req.WithContext(ContextWithClaims(req.Context(), tt.claims))
			}

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
		})
	}
}
