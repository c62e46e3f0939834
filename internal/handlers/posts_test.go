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

	"github.com/devister/devister/internal/models"
	"github.com/devister/devister/internal/services"
)

func TestCreatePostHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	data := []byte("jpeg bytes")

	t.Run("success", func(t *testing.T) {
		mockSvc := NewMockPostProvider(ctrl)
		mockSvc.EXPECT().
			Create(gomock.Any(), userID, "my post", "about go", []string{"go", "backend"}, data, "image/jpeg").
			Return(&models.Post{PostDB: models.PostDB{PostID: uuid.New(), Title: "my post"}}, nil)

		handler := NewCreatePostHandler(mockSvc)

		req := newImageUploadRequest(t, http.MethodPost, "/posts", "image/jpeg", data, map[string][]string{
			"title":       {"my post"},
			"description": {"about go"},
			"categories":  {"go", "backend"},
		})
		req = withClaims(req, userID, false)

		rr := httptest.NewRecorder()
		handler(rr, req)

		assert.Equal(t, 201, rr.Code)
	})

	t.Run("missing title", func(t *testing.T) {
		mockSvc := NewMockPostProvider(ctrl)
		handler := NewCreatePostHandler(mockSvc)

		req := newImageUploadRequest(t, http.MethodPost, "/posts", "image/jpeg", data, map[string][]string{
			"description": {"about go"},
		})
		req = withClaims(req, userID, false)

		rr := httptest.NewRecorder()
		handler(rr, req)

		assert.Equal(t, 400, rr.Code)
	})

	t.Run("missing file", func(t *testing.T) {
		mockSvc := NewMockPostProvider(ctrl)
		handler := NewCreatePostHandler(mockSvc)

		req := newImageUploadRequest(t, http.MethodPost, "/posts", "", nil, map[string][]string{
			"title":       {"my post"},
			"description": {"about go"},
		})
		req = withClaims(req, userID, false)

		rr := httptest.NewRecorder()
		handler(rr, req)

		assert.Equal(t, 400, rr.Code)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		mockSvc := NewMockPostProvider(ctrl)
		handler := NewCreatePostHandler(mockSvc)

		req := newImageUploadRequest(t, http.MethodPost, "/posts", "image/jpeg", data, nil)

		rr := httptest.NewRecorder()
		handler(rr, req)

		assert.Equal(t, 401, rr.Code)
	})
}

func TestListPostsHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("no filters", func(t *testing.T) {
		mockSvc := NewMockPostProvider(ctrl)
		mockSvc.EXPECT().
			List(gomock.Any(), nil, nil).
			Return([]*models.Post{}, nil)

		handler := NewListPostsHandler(mockSvc)

		req := httptest.NewRequest(http.MethodGet, "/posts", nil)
		rr := httptest.NewRecorder()
		handler(rr, req)

		assert.Equal(t, 200, rr.Code)
	})

	t.Run("page and category", func(t *testing.T) {
		page := 2
		category := "go"

		mockSvc := NewMockPostProvider(ctrl)
		mockSvc.EXPECT().
			List(gomock.Any(), &page, &category).
			Return([]*models.Post{}, nil)

		handler := NewListPostsHandler(mockSvc)

		req := httptest.NewRequest(http.MethodGet, "/posts?pageNumber=2&category=go", nil)
		rr := httptest.NewRecorder()
		handler(rr, req)

		assert.Equal(t, 200, rr.Code)
	})

	t.Run("bad page number", func(t *testing.T) {
		mockSvc := NewMockPostProvider(ctrl)
		handler := NewListPostsHandler(mockSvc)

		req := httptest.NewRequest(http.MethodGet, "/posts?pageNumber=zero", nil)
		rr := httptest.NewRecorder()
		handler(rr, req)

		assert.Equal(t, 400, rr.Code)
	})
}

func TestGetPostHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	postID := uuid.New()

	t.Run("success", func(t *testing.T) {
		mockSvc := NewMockPostProvider(ctrl)
		mockSvc.EXPECT().
			Get(gomock.Any(), postID).
			Return(&models.Post{PostDB: models.PostDB{PostID: postID, Title: "my post"}}, nil)

		router := chi.NewRouter()
		router.Get("/posts/{id}", NewGetPostHandler(mockSvc))

		req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/posts/%s", postID), nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, 200, rr.Code)
	})

	t.Run("unknown post", func(t *testing.T) {
		mockSvc := NewMockPostProvider(ctrl)
		mockSvc.EXPECT().Get(gomock.Any(), postID).Return(nil, services.ErrPostNotFound)

		router := chi.NewRouter()
		router.Get("/posts/{id}", NewGetPostHandler(mockSvc))

		req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/posts/%s", postID), nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, 404, rr.Code)
	})
}

func TestUpdatePostHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	actorID := uuid.New()
	postID := uuid.New()
	title := "new title"

	t.Run("success", func(t *testing.T) {
		mockSvc := NewMockPostProvider(ctrl)
		mockSvc.EXPECT().
			Update(gomock.Any(), actorID, postID, &title, nil, nil).
			Return(&models.Post{PostDB: models.PostDB{PostID: postID, Title: title}}, nil)

		router := chi.NewRouter()
		router.Put("/posts/{id}", NewUpdatePostHandler(mockSvc))

		bodyBytes, _ := json.Marshal(UpdatePostRequest{Title: &title})
		req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/posts/%s", postID), bytes.NewBuffer(bodyBytes))
		req = withClaims(req, actorID, false)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, 200, rr.Code)
	})

	t.Run("not the owner", func(t *testing.T) {
		mockSvc := NewMockPostProvider(ctrl)
		mockSvc.EXPECT().
			Update(gomock.Any(), actorID, postID, &title, nil, nil).
			Return(nil, services.ErrForbidden)

		router := chi.NewRouter()
		router.Put("/posts/{id}", NewUpdatePostHandler(mockSvc))

		bodyBytes, _ := json.Marshal(UpdatePostRequest{Title: &title})
		req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/posts/%s", postID), bytes.NewBuffer(bodyBytes))
		req = withClaims(req, actorID, false)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, 403, rr.Code)
	})
}

func TestToggleLikeHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	actorID := uuid.New()
	postID := uuid.New()

	mockSvc := NewMockPostProvider(ctrl)
	mockSvc.EXPECT().
		ToggleLike(gomock.Any(), actorID, postID).
		Return(&models.Post{PostDB: models.PostDB{PostID: postID}, Likes: []uuid.UUID{actorID}}, nil)

	router := chi.NewRouter()
	router.Put("/posts/like/{id}", NewToggleLikeHandler(mockSvc))

	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/posts/like/%s", postID), nil)
	req = withClaims(req, actorID, false)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, 200, rr.Code)

	var resp models.Post
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Contains(t, resp.Likes, actorID)
}

func TestDeletePostHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	actorID := uuid.New()
	postID := uuid.New()

	tests := []struct {
		name         string
		isAdmin      bool
		mockSetup    func(m *MockPostProvider)
		expectedCode int
	}{
		{
			name: "owner deletes",
			mockSetup: func(m *MockPostProvider) {
				m.EXPECT().Delete(gomock.Any(), actorID, false, postID).Return(nil)
			},
			expectedCode: 200,
		},
		{
			name:    "admin deletes",
			isAdmin: true,
			mockSetup: func(m *MockPostProvider) {
				m.EXPECT().Delete(gomock.Any(), actorID, true, postID).Return(nil)
			},
			expectedCode: 200,
		},
		{
			name: "stranger is forbidden",
			mockSetup: func(m *MockPostProvider) {
				m.EXPECT().Delete(gomock.Any(), actorID, false, postID).Return(services.ErrForbidden)
			},
			expectedCode: 403,
		},
		{
			name: "unknown post",
			mockSetup: func(m *MockPostProvider) {
				m.EXPECT().Delete(gomock.Any(), actorID, false, postID).Return(services.ErrPostNotFound)
			},
			expectedCode: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockPostProvider(ctrl)
			tt.mockSetup(mockSvc)

			router := chi.NewRouter()
			router.Delete("/posts/{id}", NewDeletePostHandler(mockSvc))

			req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/posts/%s", postID), nil)
			req = withClaims(req, actorID, tt.isAdmin)

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
		})
	}
}
