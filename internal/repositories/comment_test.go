package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/devister/devister/internal/models"
)

func TestCommentRepository(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	readRepo := NewCommentReadRepository(db)
	writeRepo := NewCommentWriteRepository(db)
	ctx := context.Background()

	userID := insertTestUser(t, db, "alice", "alice@example.com")
	postID := uuid.New()
	_, err := db.Exec(
		`INSERT INTO posts (post_id, user_id, title, description) VALUES ($1, $2, 'post', 'desc')`,
		postID, userID,
	)
	assert.NoError(t, err)

	comment := &models.CommentDB{
		CommentID: uuid.New(),
		PostID:    postID,
		UserID:    userID,
		Username:  "alice",
		Text:      "nice post",
	}

	t.Run("Save and GetByID", func(t *testing.T) {
		assert.NoError(t, writeRepo.Save(ctx, comment))

		got, err := readRepo.GetByID(ctx, comment.CommentID)
		assert.NoError(t, err)
		assert.NotNil(t, got)
		assert.Equal(t, "nice post", got.Text)
		assert.Equal(t, "alice", got.Username)
	})

	t.Run("GetByPostID", func(t *testing.T) {
		second := &models.CommentDB{
			CommentID: uuid.New(),
			PostID:    postID,
			UserID:    userID,
			Username:  "alice",
			Text:      "another",
		}
		assert.NoError(t, writeRepo.Save(ctx, second))

		comments, err := readRepo.GetByPostID(ctx, postID)
		assert.NoError(t, err)
		assert.Len(t, comments, 2)

		comments, err = readRepo.GetByPostID(ctx, uuid.New())
		assert.NoError(t, err)
		assert.Empty(t, comments)
	})

	t.Run("List", func(t *testing.T) {
		comments, err := readRepo.List(ctx)
		assert.NoError(t, err)
		assert.Len(t, comments, 2)
	})

	t.Run("Update", func(t *testing.T) {
		assert.NoError(t, writeRepo.Update(ctx, comment.CommentID, "edited"))

		got, err := readRepo.GetByID(ctx, comment.CommentID)
		assert.NoError(t, err)
		assert.Equal(t, "edited", got.Text)
	})

	t.Run("Delete", func(t *testing.T) {
		assert.NoError(t, writeRepo.Delete(ctx, comment.CommentID))

		got, err := readRepo.GetByID(ctx, comment.CommentID)
		assert.NoError(t, err)
		assert.Nil(t, got)
	})
}
