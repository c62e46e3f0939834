package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/devister/devister/internal/services"
)

func TestResetPasswordLinkHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name         string
		email        string
		mockSetup    func(m *MockResetLinkSender)
		expectedCode int
		expectedBody map[string]string
	}{
		{
			name:  "success",
			email: "alice@example.com",
			mockSetup: func(m *MockResetLinkSender) {
				m.EXPECT().SendResetEmail(gomock.Any(), "alice@example.com").Return(nil)
			},
			expectedCode: 200,
			expectedBody: map[string]string{
				"message": "Password Reset Link Sent To Your Email, Please Check Your Inbox",
			},
		},
		{
			name:  "unknown email",
			email: "nobody@example.com",
			mockSetup: func(m *MockResetLinkSender) {
				m.EXPECT().
					SendResetEmail(gomock.Any(), "nobody@example.com").
					Return(services.ErrUserNotFound)
			},
			expectedCode: 404,
			expectedBody: map[string]string{"error": "User With Given Email Does Not Exist!"},
		},
		{
			name:         "invalid email",
			email:        "not-an-email",
			expectedCode: 400,
			expectedBody: map[string]string{"error": "email must be a valid address"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockResetLinkSender(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			handler := NewResetPasswordLinkHandler(mockSvc)

			bodyBytes, _ := json.Marshal(ResetPasswordLinkRequest{Email: tt.email})
			req := httptest.NewRequest(http.MethodPost, "/password/reset-password-link", bytes.NewBuffer(bodyBytes))

			rr := httptest.NewRecorder()
			handler(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			var resp map[string]string
			assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.expectedBody, resp)
		})
	}
}

func TestCheckResetLinkHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	tests := []struct {
		name         string
		url          string
		mockSetup    func(m *MockPasswordResetter)
		expectedCode int
		expectedBody map[string]string
	}{
		{
			name: "valid link",
			url:  fmt.Sprintf("/password/reset-password/%s/tok123", userID),
			mockSetup: func(m *MockPasswordResetter) {
				m.EXPECT().CheckResetLink(gomock.Any(), userID, "tok123").Return(nil)
			},
			expectedCode: 200,
			expectedBody: map[string]string{"message": "Valid URL"},
		},
		{
			name: "invalid link",
			url:  fmt.Sprintf("/password/reset-password/%s/tok123", userID),
			mockSetup: func(m *MockPasswordResetter) {
				m.EXPECT().
					CheckResetLink(gomock.Any(), userID, "tok123").
					Return(services.ErrInvalidLink)
			},
			expectedCode: 404,
			expectedBody: map[string]string{"error": "Invalid Link"},
		},
		{
			name:         "malformed user id",
			url:          "/password/reset-password/not-a-uuid/tok123",
			expectedCode: 404,
			expectedBody: map[string]string{"error": "Invalid Link"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockPasswordResetter(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			router := chi.NewRouter()
			router.Get("/password/reset-password/{userId}/{token}", NewCheckResetLinkHandler(mockSvc))

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			var resp map[string]string
			assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.expectedBody, resp)
		})
	}
}

func TestResetPasswordHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	tests := []struct {
		name         string
		url          string
		password     string
		mockSetup    func(m *MockPasswordResetter)
		expectedCode int
		expectedBody map[string]string
	}{
		{
			name:     "success",
			url:      fmt.Sprintf("/password/reset-password/%s/tok123", userID),
			password: "newpassword",
			mockSetup: func(m *MockPasswordResetter) {
				m.EXPECT().
					ConsumeForPasswordReset(gomock.Any(), userID, "tok123", "newpassword").
					Return(nil)
			},
			expectedCode: 200,
			expectedBody: map[string]string{"message": "Password Reset Successfully, Please Login"},
		},
		{
			name:     "consumed token",
			url:      fmt.Sprintf("/password/reset-password/%s/tok123", userID),
			password: "newpassword",
			mockSetup: func(m *MockPasswordResetter) {
				m.EXPECT().
					ConsumeForPasswordReset(gomock.Any(), userID, "tok123", "newpassword").
					Return(services.ErrInvalidLink)
			},
			expectedCode: 404,
			expectedBody: map[string]string{"error": "Invalid Link"},
		},
		{
			name:         "short password",
			url:          fmt.Sprintf("/password/reset-password/%s/tok123", userID),
			password:     "short",
			expectedCode: 400,
			expectedBody: map[string]string{"error": "password must be at least 8 characters"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockPasswordResetter(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			router := chi.NewRouter()
			router.Post("/password/reset-password/{userId}/{token}", NewResetPasswordHandler(mockSvc))

			bodyBytes, _ := json.Marshal(ResetPasswordRequest{Password: tt.password})
			req := httptest.NewRequest(http.MethodPost, tt.url, bytes.NewBuffer(bodyBytes))

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			var resp map[string]string
			assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.expectedBody, resp)
		})
	}
}
