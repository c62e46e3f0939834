package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/devister/devister/internal/events"
	"github.com/devister/devister/internal/logger"
	"github.com/devister/devister/internal/models"
)

// Error variables
var (
	ErrPostNotFound = errors.New("post not found")
	ErrForbidden    = errors.New("not allowed")
)

// PostReader defines read-only operations for posts.
type PostReader interface {
	GetByID(ctx context.Context, postID uuid.UUID) (*models.PostDB, error)
	List(ctx context.Context, page *int, category *string) ([]*models.PostDB, error)
	Count(ctx context.Context) (int64, error)
	GetCategories(ctx context.Context, postID uuid.UUID) ([]string, error)
	GetLikes(ctx context.Context, postID uuid.UUID) ([]uuid.UUID, error)
}

// PostWriter defines write operations for posts.
type PostWriter interface {
	Save(ctx context.Context, post *models.PostDB, categories []string) error
	Update(ctx context.Context, postID uuid.UUID, title, description *string, categories []string) error
	SetImage(ctx context.Context, postID uuid.UUID, url string, key *string) error
	ToggleLike(ctx context.Context, postID, userID uuid.UUID) (bool, error)
	Delete(ctx context.Context, postID uuid.UUID) error
}

// PostCommentsReader lists the comments that belong to a post.
type PostCommentsReader interface {
	GetByPostID(ctx context.Context, postID uuid.UUID) ([]*models.CommentDB, error)
}

// PostService handles post CRUD, images and the like toggle.
type PostService struct {
	reader   PostReader
	writer   PostWriter
	comments PostCommentsReader
	images   ImageStore
	cleanup  CleanupEnqueuer
	events   EventPublisher
}

// NewPostService creates a new PostService instance.
func NewPostService(
	reader PostReader,
	writer PostWriter,
	comments PostCommentsReader,
	images ImageStore,
	cleanup CleanupEnqueuer,
	events EventPublisher,
) *PostService {
	return &PostService{
		reader:   reader,
		writer:   writer,
		comments: comments,
		images:   images,
		cleanup:  cleanup,
		events:   events,
	}
}

func (svc *PostService) buildPost(ctx context.Context, post *models.PostDB, withComments bool) (*models.Post, error) {
	result := &models.Post{PostDB: *post}

	categories, err := svc.reader.GetCategories(ctx, post.PostID)
	if err != nil {
		return nil, err
	}
	result.Categories = categories

	likes, err := svc.reader.GetLikes(ctx, post.PostID)
	if err != nil {
		return nil, err
	}
	result.Likes = likes

	if withComments {
		comments, err := svc.comments.GetByPostID(ctx, post.PostID)
		if err != nil {
			return nil, err
		}
		result.Comments = comments
	}

	return result, nil
}

// Create uploads the image, stores the post and publishes a creation event.
func (svc *PostService) Create(ctx context.Context, userID uuid.UUID, title, description string, categories []string, image []byte, contentType string) (*models.Post, error) {
	url, key, err := svc.images.Upload(ctx, image, contentType)
	if err != nil {
		logger.Log.Errorw("failed to upload post image", "user_id", userID, "err", err)
		return nil, err
	}

	post := &models.PostDB{
		PostID:      uuid.New(),
		UserID:      userID,
		Title:       title,
		Description: description,
		ImageURL:    url,
		ImageKey:    &key,
	}

	if err := svc.writer.Save(ctx, post, categories); err != nil {
		logger.Log.Errorw("failed to save post", "post_id", post.PostID, "err", err)
		return nil, err
	}

	svc.events.Publish(ctx, events.TypePostCreated, map[string]string{
		"post_id": post.PostID.String(),
		"user_id": userID.String(),
	})

	return svc.buildPost(ctx, post, false)
}

// List returns posts newest first, optionally one page or one category.
func (svc *PostService) List(ctx context.Context, page *int, category *string) ([]*models.Post, error) {
	posts, err := svc.reader.List(ctx, page, category)
	if err != nil {
		logger.Log.Errorw("failed to list posts", "err", err)
		return nil, err
	}

	result := make([]*models.Post, 0, len(posts))
	for _, post := range posts {
		built, err := svc.buildPost(ctx, post, false)
		if err != nil {
			logger.Log.Errorw("failed to build post", "post_id", post.PostID, "err", err)
			return nil, err
		}
		result = append(result, built)
	}

	return result, nil
}

// Get returns one post with its comments.
func (svc *PostService) Get(ctx context.Context, postID uuid.UUID) (*models.Post, error) {
	post, err := svc.reader.GetByID(ctx, postID)
	if err != nil {
		logger.Log.Errorw("failed to get post", "post_id", postID, "err", err)
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	return svc.buildPost(ctx, post, true)
}

// Count returns the number of posts.
func (svc *PostService) Count(ctx context.Context) (int64, error) {
	return svc.reader.Count(ctx)
}

// Update overwrites post fields. Only the owner may update.
func (svc *PostService) Update(ctx context.Context, actorID, postID uuid.UUID, title, description *string, categories []string) (*models.Post, error) {
	post, err := svc.reader.GetByID(ctx, postID)
	if err != nil {
		logger.Log.Errorw("failed to get post", "post_id", postID, "err", err)
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if post.UserID != actorID {
		return nil, ErrForbidden
	}

	if err := svc.writer.Update(ctx, postID, title, description, categories); err != nil {
		logger.Log.Errorw("failed to update post", "post_id", postID, "err", err)
		return nil, err
	}

	return svc.Get(ctx, postID)
}

// UpdateImage replaces the post's image. Only the owner may update; the old
// image is removed best-effort with failures queued for retry.
func (svc *PostService) UpdateImage(ctx context.Context, actorID, postID uuid.UUID, image []byte, contentType string) (*models.Post, error) {
	post, err := svc.reader.GetByID(ctx, postID)
	if err != nil {
		logger.Log.Errorw("failed to get post", "post_id", postID, "err", err)
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if post.UserID != actorID {
		return nil, ErrForbidden
	}

	if post.ImageKey != nil {
		if err := svc.images.Remove(ctx, *post.ImageKey); err != nil {
			logger.Log.Errorw("failed to remove old post image", "post_id", postID, "err", err)
			svc.cleanup.Enqueue(ctx, *post.ImageKey)
		}
	}

	url, key, err := svc.images.Upload(ctx, image, contentType)
	if err != nil {
		logger.Log.Errorw("failed to upload post image", "post_id", postID, "err", err)
		return nil, err
	}

	if err := svc.writer.SetImage(ctx, postID, url, &key); err != nil {
		logger.Log.Errorw("failed to set post image", "post_id", postID, "err", err)
		return nil, err
	}

	return svc.Get(ctx, postID)
}

// Delete removes a post, its remote image (best effort) and its comments.
// Owner or admin only.
func (svc *PostService) Delete(ctx context.Context, actorID uuid.UUID, isAdmin bool, postID uuid.UUID) error {
	post, err := svc.reader.GetByID(ctx, postID)
	if err != nil {
		logger.Log.Errorw("failed to get post", "post_id", postID, "err", err)
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	if !isAdmin && post.UserID != actorID {
		return ErrForbidden
	}

	if post.ImageKey != nil {
		if err := svc.images.Remove(ctx, *post.ImageKey); err != nil {
			logger.Log.Errorw("failed to remove post image", "post_id", postID, "err", err)
			svc.cleanup.Enqueue(ctx, *post.ImageKey)
		}
	}

	if err := svc.writer.Delete(ctx, postID); err != nil {
		logger.Log.Errorw("failed to delete post", "post_id", postID, "err", err)
		return err
	}

	return nil
}

// ToggleLike flips the acting user's membership in the post's like set and
// returns the updated post.
func (svc *PostService) ToggleLike(ctx context.Context, actorID, postID uuid.UUID) (*models.Post, error) {
	post, err := svc.reader.GetByID(ctx, postID)
	if err != nil {
		logger.Log.Errorw("failed to get post", "post_id", postID, "err", err)
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	if _, err := svc.writer.ToggleLike(ctx, postID, actorID); err != nil {
		logger.Log.Errorw("failed to toggle like", "post_id", postID, "actor_id", actorID, "err", err)
		return nil, err
	}

	return svc.buildPost(ctx, post, false)
}
