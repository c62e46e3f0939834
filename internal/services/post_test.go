package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/devister/devister/internal/models"
	"github.com/devister/devister/internal/services"
)

type postServiceMocks struct {
	reader   *services.MockPostReader
	writer   *services.MockPostWriter
	comments *services.MockPostCommentsReader
	images   *services.MockImageStore
	cleanup  *services.MockCleanupEnqueuer
	events   *services.MockEventPublisher
}

func newPostService(ctrl *gomock.Controller) (*services.PostService, postServiceMocks) {
	m := postServiceMocks{
		reader:   services.NewMockPostReader(ctrl),
		writer:   services.NewMockPostWriter(ctrl),
		comments: services.NewMockPostCommentsReader(ctrl),
		images:   services.NewMockImageStore(ctrl),
		cleanup:  services.NewMockCleanupEnqueuer(ctrl),
		events:   services.NewMockEventPublisher(ctrl),
	}
	svc := services.NewPostService(m.reader, m.writer, m.comments, m.images, m.cleanup, m.events)
	return svc, m
}

func expectPostBuild(m postServiceMocks, postID uuid.UUID) {
	m.reader.EXPECT().GetCategories(gomock.Any(), postID).Return([]string{"go"}, nil)
	m.reader.EXPECT().GetLikes(gomock.Any(), postID).Return([]uuid.UUID{}, nil)
}

func TestPostService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	image := []byte("jpeg bytes")

	t.Run("uploads image, saves and publishes", func(t *testing.T) {
		svc, m := newPostService(ctrl)

		m.images.EXPECT().
			Upload(gomock.Any(), image, "image/jpeg").
			Return("https://cdn/post.jpg", "images/2026/03/03/post", nil)
		m.writer.EXPECT().
			Save(gomock.Any(), gomock.Any(), []string{"go"}).
			DoAndReturn(func(_ context.Context, post *models.PostDB, _ []string) error {
				assert.Equal(t, userID, post.UserID)
				assert.Equal(t, "title", post.Title)
				assert.Equal(t, "https://cdn/post.jpg", post.ImageURL)
				expectPostBuild(m, post.PostID)
				return nil
			})
		m.events.EXPECT().Publish(gomock.Any(), "post.created", gomock.Any())

		post, err := svc.Create(context.Background(), userID, "title", "desc", []string{"go"}, image, "image/jpeg")
		assert.NoError(t, err)
		assert.Equal(t, []string{"go"}, post.Categories)
	})

	t.Run("upload failure fails the call", func(t *testing.T) {
		svc, m := newPostService(ctrl)
		m.images.EXPECT().
			Upload(gomock.Any(), image, "image/jpeg").
			Return("", "", errors.New("s3 down"))

		_, err := svc.Create(context.Background(), userID, "title", "desc", nil, image, "image/jpeg")
		assert.Error(t, err)
	})
}

func TestPostService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	postID := uuid.New()
	post := &models.PostDB{PostID: postID, Title: "title"}

	t.Run("returns post with comments", func(t *testing.T) {
		svc, m := newPostService(ctrl)
		m.reader.EXPECT().GetByID(gomock.Any(), postID).Return(post, nil)
		expectPostBuild(m, postID)
		m.comments.EXPECT().
			GetByPostID(gomock.Any(), postID).
			Return([]*models.CommentDB{{CommentID: uuid.New(), PostID: postID}}, nil)

		got, err := svc.Get(context.Background(), postID)
		assert.NoError(t, err)
		assert.Len(t, got.Comments, 1)
	})

	t.Run("unknown post", func(t *testing.T) {
		svc, m := newPostService(ctrl)
		m.reader.EXPECT().GetByID(gomock.Any(), postID).Return(nil, nil)

		_, err := svc.Get(context.Background(), postID)
		assert.ErrorIs(t, err, services.ErrPostNotFound)
	})
}

func TestPostService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ownerID := uuid.New()
	strangerID := uuid.New()
	postID := uuid.New()
	post := &models.PostDB{PostID: postID, UserID: ownerID}
	newTitle := "new title"

	t.Run("owner updates", func(t *testing.T) {
		svc, m := newPostService(ctrl)
		m.reader.EXPECT().GetByID(gomock.Any(), postID).Return(post, nil)
		m.writer.EXPECT().Update(gomock.Any(), postID, &newTitle, nil, nil).Return(nil)
		m.reader.EXPECT().GetByID(gomock.Any(), postID).Return(post, nil)
		expectPostBuild(m, postID)
		m.comments.EXPECT().GetByPostID(gomock.Any(), postID).Return(nil, nil)

		_, err := svc.Update(context.Background(), ownerID, postID, &newTitle, nil, nil)
		assert.NoError(t, err)
	})

	t.Run("stranger is forbidden", func(t *testing.T) {
		svc, m := newPostService(ctrl)
		m.reader.EXPECT().GetByID(gomock.Any(), postID).Return(post, nil)

		_, err := svc.Update(context.Background(), strangerID, postID, &newTitle, nil, nil)
		assert.ErrorIs(t, err, services.ErrForbidden)
	})
}

func TestPostService_UpdateImage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ownerID := uuid.New()
	postID := uuid.New()
	oldKey := "images/2026/01/01/old"
	post := &models.PostDB{PostID: postID, UserID: ownerID, ImageKey: &oldKey}
	image := []byte("jpeg bytes")

	t.Run("failed old-image delete is queued", func(t *testing.T) {
		svc, m := newPostService(ctrl)
		m.reader.EXPECT().GetByID(gomock.Any(), postID).Return(post, nil)
		m.images.EXPECT().Remove(gomock.Any(), oldKey).Return(errors.New("s3 down"))
		m.cleanup.EXPECT().Enqueue(gomock.Any(), oldKey)
		m.images.EXPECT().
			Upload(gomock.Any(), image, "image/jpeg").
			Return("https://cdn/new.jpg", "images/2026/02/02/new", nil)
		m.writer.EXPECT().SetImage(gomock.Any(), postID, "https://cdn/new.jpg", gomock.Any()).Return(nil)
		m.reader.EXPECT().GetByID(gomock.Any(), postID).Return(post, nil)
		expectPostBuild(m, postID)
		m.comments.EXPECT().GetByPostID(gomock.Any(), postID).Return(nil, nil)

		_, err := svc.UpdateImage(context.Background(), ownerID, postID, image, "image/jpeg")
		assert.NoError(t, err)
	})

	t.Run("stranger is forbidden", func(t *testing.T) {
		svc, m := newPostService(ctrl)
		m.reader.EXPECT().GetByID(gomock.Any(), postID).Return(post, nil)

		_, err := svc.UpdateImage(context.Background(), uuid.New(), postID, image, "image/jpeg")
		assert.ErrorIs(t, err, services.ErrForbidden)
	})
}

func TestPostService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ownerID := uuid.New()
	adminID := uuid.New()
	postID := uuid.New()
	imageKey := "images/2026/01/01/img"
	post := &models.PostDB{PostID: postID, UserID: ownerID, ImageKey: &imageKey}

	tests := []struct {
		name    string
		actorID uuid.UUID
		isAdmin bool
		post    *models.PostDB
		wantErr error
	}{
		{name: "owner deletes", actorID: ownerID, post: post},
		{name: "admin deletes", actorID: adminID, isAdmin: true, post: post},
		{name: "stranger is forbidden", actorID: uuid.New(), post: post, wantErr: services.ErrForbidden},
		{name: "unknown post", actorID: ownerID, wantErr: services.ErrPostNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newPostService(ctrl)
			m.reader.EXPECT().GetByID(gomock.Any(), postID).Return(tt.post, nil)

			if tt.wantErr == nil {
				m.images.EXPECT().Remove(gomock.Any(), imageKey).Return(nil)
				m.writer.EXPECT().Delete(gomock.Any(), postID).Return(nil)
			}

			err := svc.Delete(context.Background(), tt.actorID, tt.isAdmin, postID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPostService_ToggleLike(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	actorID := uuid.New()
	postID := uuid.New()
	post := &models.PostDB{PostID: postID}

	t.Run("flips the like", func(t *testing.T) {
		svc, m := newPostService(ctrl)
		m.reader.EXPECT().GetByID(gomock.Any(), postID).Return(post, nil)
		m.writer.EXPECT().ToggleLike(gomock.Any(), postID, actorID).Return(true, nil)
		expectPostBuild(m, postID)

		_, err := svc.ToggleLike(context.Background(), actorID, postID)
		assert.NoError(t, err)
	})

	t.Run("unknown post", func(t *testing.T) {
		svc, m := newPostService(ctrl)
		m.reader.EXPECT().GetByID(gomock.Any(), postID).Return(nil, nil)

		_, err := svc.ToggleLike(context.Background(), actorID, postID)
		assert.ErrorIs(t, err, services.ErrPostNotFound)
	})
}
