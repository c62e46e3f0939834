package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/devister/devister/internal/models"
	"github.com/devister/devister/internal/services"
)

func TestLoginHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	user := &models.UserDB{
		UserID:          userID,
		Username:        "alice",
		IsAdmin:         true,
		ProfilePhotoURL: "https://cdn/alice.png",
	}

	tests := []struct {
		name         string
		email        string
		password     string
		mockSetup    func(m *MockLoginer)
		expectedCode int
		checkBody    func(t *testing.T, body []byte)
	}{
		{
			name:     "success",
			email:    "alice@example.com",
			password: "secret123",
			mockSetup: func(m *MockLoginer) {
				m.EXPECT().
					Login(gomock.Any(), "alice@example.com", "secret123").
					Return(user, "token123", nil)
			},
			expectedCode: 200,
			checkBody: func(t *testing.T, body []byte) {
				var resp LoginResponse
				assert.NoError(t, json.Unmarshal(body, &resp))
				assert.Equal(t, userID, resp.ID)
				assert.Equal(t, "alice", resp.Username)
				assert.True(t, resp.IsAdmin)
				assert.Equal(t, "token123", resp.Token)
			},
		},
		{
			name:     "invalid credentials",
			email:    "alice@example.com",
			password: "wrong",
			mockSetup: func(m *MockLoginer) {
				m.EXPECT().
					Login(gomock.Any(), "alice@example.com", "wrong").
					Return(nil, "", services.ErrInvalidCredentials)
			},
			expectedCode: 400,
			checkBody: func(t *testing.T, body []byte) {
				var resp map[string]string
				assert.NoError(t, json.Unmarshal(body, &resp))
				assert.Equal(t, "Invalid Email Or Password", resp["error"])
			},
		},
		{
			name:     "unverified account",
			email:    "bob@example.com",
			password: "secret123",
			mockSetup: func(m *MockLoginer) {
				m.EXPECT().
					Login(gomock.Any(), "bob@example.com", "secret123").
					Return(nil, "", services.ErrAccountNotVerified)
			},
			expectedCode: 400,
			checkBody: func(t *testing.T, body []byte) {
				var resp map[string]string
				assert.NoError(t, json.Unmarshal(body, &resp))
				assert.Equal(t, "We Sent Email To You, Please Verify Your Email Address", resp["error"])
			},
		},
		{
			name:     "internal server error",
			email:    "alice@example.com",
			password: "secret123",
			mockSetup: func(m *MockLoginer) {
				m.EXPECT().
					Login(gomock.Any(), "alice@example.com", "secret123").
					Return(nil, "", errors.New("db down"))
			},
			expectedCode: 500,
			checkBody: func(t *testing.T, body []byte) {
				var resp map[string]string
				assert.NoError(t, json.Unmarshal(body, &resp))
				assert.Equal(t, "Internal server error", resp["error"])
			},
		},
		{
			name:         "missing fields",
			email:        "",
			password:     "",
			expectedCode: 400,
			checkBody: func(t *testing.T, body []byte) {
				var resp map[string]string
				assert.NoError(t, json.Unmarshal(body, &resp))
				assert.Equal(t, "email and password are required", resp["error"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockLoginer(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			handler := NewLoginHandler(mockSvc)

			bodyBytes, _ := json.Marshal(LoginRequest{Email: tt.email, Password: tt.password})
			req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBuffer(bodyBytes))

			rr := httptest.NewRecorder()
			handler(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			tt.checkBody(t, rr.Body.Bytes())
		})
	}
}
