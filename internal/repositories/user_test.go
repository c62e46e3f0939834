package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/devister/devister/internal/models"
)

func TestUserRepository_SaveAndGet(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	readRepo := NewUserReadRepository(db)
	writeRepo := NewUserWriteRepository(db)
	ctx := context.Background()

	user := &models.UserDB{
		UserID:       uuid.New(),
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "hash",
	}
	assert.NoError(t, writeRepo.Save(ctx, user))

	t.Run("ByID", func(t *testing.T) {
		got, err := readRepo.GetByID(ctx, user.UserID)
		assert.NoError(t, err)
		assert.NotNil(t, got)
		assert.Equal(t, "alice", got.Username)
		assert.Equal(t, "alice@example.com", got.Email)
		assert.False(t, got.IsAccountVerified)
	})

	t.Run("ByEmail", func(t *testing.T) {
		got, err := readRepo.GetByEmail(ctx, "alice@example.com")
		assert.NoError(t, err)
		assert.NotNil(t, got)
		assert.Equal(t, user.UserID, got.UserID)
	})

	t.Run("NotFound", func(t *testing.T) {
		got, err := readRepo.GetByID(ctx, uuid.New())
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		dup := &models.UserDB{
			UserID:       uuid.New(),
			Username:     "alice2",
			Email:        "alice@example.com",
			PasswordHash: "hash",
		}
		err := writeRepo.Save(ctx, dup)
		assert.Error(t, err)
		assert.True(t, IsUniqueViolation(err))
	})
}

func TestUserRepository_Update(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	readRepo := NewUserReadRepository(db)
	writeRepo := NewUserWriteRepository(db)
	ctx := context.Background()

	userID := insertTestUser(t, db, "alice", "alice@example.com")

	t.Run("partial update leaves nil fields untouched", func(t *testing.T) {
		bio := "gopher"
		assert.NoError(t, writeRepo.Update(ctx, userID, nil, nil, &bio))

		got, err := readRepo.GetByID(ctx, userID)
		assert.NoError(t, err)
		assert.Equal(t, "alice", got.Username)
		assert.Equal(t, "hash", got.PasswordHash)
		assert.Equal(t, "gopher", got.Bio)
	})

	t.Run("rename", func(t *testing.T) {
		username := "alice2"
		assert.NoError(t, writeRepo.Update(ctx, userID, &username, nil, nil))

		got, err := readRepo.GetByID(ctx, userID)
		assert.NoError(t, err)
		assert.Equal(t, "alice2", got.Username)
		assert.Equal(t, "gopher", got.Bio)
	})

	t.Run("SetPassword", func(t *testing.T) {
		assert.NoError(t, writeRepo.SetPassword(ctx, userID, "newhash"))

		got, err := readRepo.GetByID(ctx, userID)
		assert.NoError(t, err)
		assert.Equal(t, "newhash", got.PasswordHash)
	})

	t.Run("SetVerified", func(t *testing.T) {
		assert.NoError(t, writeRepo.SetVerified(ctx, userID, true))

		got, err := readRepo.GetByID(ctx, userID)
		assert.NoError(t, err)
		assert.True(t, got.IsAccountVerified)
	})

	t.Run("SetProfilePhoto", func(t *testing.T) {
		key := "images/2025/1/2/abc"
		assert.NoError(t, writeRepo.SetProfilePhoto(ctx, userID, "https://img.example.com/abc", &key))

		got, err := readRepo.GetByID(ctx, userID)
		assert.NoError(t, err)
		assert.Equal(t, "https://img.example.com/abc", got.ProfilePhotoURL)
		assert.NotNil(t, got.ProfilePhotoKey)
		assert.Equal(t, key, *got.ProfilePhotoKey)
	})
}

func TestUserRepository_ListAndCount(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	readRepo := NewUserReadRepository(db)
	ctx := context.Background()

	insertTestUser(t, db, "alice", "alice@example.com")
	insertTestUser(t, db, "bob", "bob@example.com")
	insertTestUser(t, db, "carol", "carol@example.com")

	users, err := readRepo.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, users, 3)

	random, err := readRepo.Random(ctx)
	assert.NoError(t, err)
	assert.Len(t, random, 3)

	count, err := readRepo.Count(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestUserRepository_ToggleFollow(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	readRepo := NewUserReadRepository(db)
	writeRepo := NewUserWriteRepository(db)
	ctx := context.Background()

	aliceID := insertTestUser(t, db, "alice", "alice@example.com")
	bobID := insertTestUser(t, db, "bob", "bob@example.com")

	t.Run("follow", func(t *testing.T) {
		following, err := writeRepo.ToggleFollow(ctx, aliceID, bobID)
		assert.NoError(t, err)
		assert.True(t, following)

		followers, err := readRepo.GetFollowers(ctx, bobID)
		assert.NoError(t, err)
		assert.Equal(t, []uuid.UUID{aliceID}, followers)

		followees, err := readRepo.GetFollowing(ctx, aliceID)
		assert.NoError(t, err)
		assert.Equal(t, []uuid.UUID{bobID}, followees)
	})

	t.Run("unfollow", func(t *testing.T) {
		following, err := writeRepo.ToggleFollow(ctx, aliceID, bobID)
		assert.NoError(t, err)
		assert.False(t, following)

		followers, err := readRepo.GetFollowers(ctx, bobID)
		assert.NoError(t, err)
		assert.Empty(t, followers)
	})
}

func TestUserRepository_DeleteWithContent(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	writeRepo := NewUserWriteRepository(db)
	ctx := context.Background()

	aliceID := insertTestUser(t, db, "alice", "alice@example.com")
	bobID := insertTestUser(t, db, "bob", "bob@example.com")

	// Alice owns a post with a like and a comment from Bob, follows Bob,
	// commented on nothing else, and has an unconsumed token.
	alicePostID := uuid.New()
	_, err := db.Exec(
		`INSERT INTO posts (post_id, user_id, title, description) VALUES ($1, $2, 'post', 'desc')`,
		alicePostID, aliceID,
	)
	assert.NoError(t, err)
	_, err = db.Exec(`INSERT INTO post_likes (post_id, user_id) VALUES ($1, $2)`, alicePostID, bobID)
	assert.NoError(t, err)
	_, err = db.Exec(
		`INSERT INTO comments (comment_id, post_id, user_id, username, text) VALUES ($1, $2, $3, 'bob', 'hi')`,
		uuid.New(), alicePostID, bobID,
	)
	assert.NoError(t, err)
	_, err = db.Exec(`INSERT INTO user_follows (follower_id, followee_id) VALUES ($1, $2)`, aliceID, bobID)
	assert.NoError(t, err)
	_, err = db.Exec(`INSERT INTO verification_tokens (user_id, token) VALUES ($1, 'tok')`, aliceID)
	assert.NoError(t, err)

	// Bob owns a post Alice commented on; it must survive the cascade.
	bobPostID := uuid.New()
	_, err = db.Exec(
		`INSERT INTO posts (post_id, user_id, title, description) VALUES ($1, $2, 'post', 'desc')`,
		bobPostID, bobID,
	)
	assert.NoError(t, err)
	_, err = db.Exec(
		`INSERT INTO comments (comment_id, post_id, user_id, username, text) VALUES ($1, $2, $3, 'alice', 'hi')`,
		uuid.New(), bobPostID, aliceID,
	)
	assert.NoError(t, err)

	assert.NoError(t, writeRepo.DeleteWithContent(ctx, aliceID))

	countRows := func(query string, args ...any) int64 {
		var count int64
		assert.NoError(t, db.Get(&count, query, args...))
		return count
	}

	assert.Equal(t, int64(0), countRows(`SELECT COUNT(*) FROM users WHERE user_id = $1`, aliceID))
	assert.Equal(t, int64(0), countRows(`SELECT COUNT(*) FROM posts WHERE user_id = $1`, aliceID))
	assert.Equal(t, int64(0), countRows(`SELECT COUNT(*) FROM comments WHERE user_id = $1`, aliceID))
	assert.Equal(t, int64(0), countRows(`SELECT COUNT(*) FROM user_follows WHERE follower_id = $1`, aliceID))
	assert.Equal(t, int64(0), countRows(`SELECT COUNT(*) FROM verification_tokens WHERE user_id = $1`, aliceID))

	// Comments and likes attached to Alice's posts are gone with the posts.
	assert.Equal(t, int64(0), countRows(`SELECT COUNT(*) FROM comments WHERE post_id = $1`, alicePostID))
	assert.Equal(t, int64(0), countRows(`SELECT COUNT(*) FROM post_likes WHERE post_id = $1`, alicePostID))

	// Bob and his post are untouched.
	assert.Equal(t, int64(1), countRows(`SELECT COUNT(*) FROM users WHERE user_id = $1`, bobID))
	assert.Equal(t, int64(1), countRows(`SELECT COUNT(*) FROM posts WHERE post_id = $1`, bobPostID))
}
