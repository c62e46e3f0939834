package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/devister/devister/internal/logger"
	"github.com/devister/devister/internal/models"
)

// Error variables
var (
	ErrCommentNotFound = errors.New("comment not found")
)

// CommentReader defines read-only operations for comments.
type CommentReader interface {
	GetByID(ctx context.Context, commentID uuid.UUID) (*models.CommentDB, error)
	List(ctx context.Context) ([]*models.CommentDB, error)
}

// CommentWriter defines write operations for comments.
type CommentWriter interface {
	Save(ctx context.Context, comment *models.CommentDB) error
	Update(ctx context.Context, commentID uuid.UUID, text string) error
	Delete(ctx context.Context, commentID uuid.UUID) error
}

// CommentAuthorReader resolves the commenting user for the username snapshot.
type CommentAuthorReader interface {
	GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error)
}

// CommentPostReader checks the commented post exists.
type CommentPostReader interface {
	GetByID(ctx context.Context, postID uuid.UUID) (*models.PostDB, error)
}

// CommentService handles comment CRUD.
type CommentService struct {
	reader CommentReader
	writer CommentWriter
	users  CommentAuthorReader
	posts  CommentPostReader
}

// NewCommentService creates a new CommentService instance.
func NewCommentService(reader CommentReader, writer CommentWriter, users CommentAuthorReader, posts CommentPostReader) *CommentService {
	return &CommentService{
		reader: reader,
		writer: writer,
		users:  users,
		posts:  posts,
	}
}

// Create adds a comment to a post, snapshotting the author's username.
func (svc *CommentService) Create(ctx context.Context, actorID, postID uuid.UUID, text string) (*models.CommentDB, error) {
	user, err := svc.users.GetByID(ctx, actorID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "user_id", actorID, "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	post, err := svc.posts.GetByID(ctx, postID)
	if err != nil {
		logger.Log.Errorw("failed to get post", "post_id", postID, "err", err)
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	comment := &models.CommentDB{
		CommentID: uuid.New(),
		PostID:    postID,
		UserID:    actorID,
		Username:  user.Username,
		Text:      text,
	}

	if err := svc.writer.Save(ctx, comment); err != nil {
		logger.Log.Errorw("failed to save comment", "comment_id", comment.CommentID, "err", err)
		return nil, err
	}

	return comment, nil
}

// List returns all comments, newest first.
func (svc *CommentService) List(ctx context.Context) ([]*models.CommentDB, error) {
	comments, err := svc.reader.List(ctx)
	if err != nil {
		logger.Log.Errorw("failed to list comments", "err", err)
		return nil, err
	}
	return comments, nil
}

// Update overwrites the comment text. Only the owner may update.
func (svc *CommentService) Update(ctx context.Context, actorID, commentID uuid.UUID, text string) (*models.CommentDB, error) {
	comment, err := svc.reader.GetByID(ctx, commentID)
	if err != nil {
		logger.Log.Errorw("failed to get comment", "comment_id", commentID, "err", err)
		return nil, err
	}
	if comment == nil {
		return nil, ErrCommentNotFound
	}
	if comment.UserID != actorID {
		return nil, ErrForbidden
	}

	if err := svc.writer.Update(ctx, commentID, text); err != nil {
		logger.Log.Errorw("failed to update comment", "comment_id", commentID, "err", err)
		return nil, err
	}

	comment.Text = text
	return comment, nil
}

// Delete removes a comment. Owner or admin only.
func (svc *CommentService) Delete(ctx context.Context, actorID uuid.UUID, isAdmin bool, commentID uuid.UUID) error {
	comment, err := svc.reader.GetByID(ctx, commentID)
	if err != nil {
		logger.Log.Errorw("failed to get comment", "comment_id", commentID, "err", err)
		return err
	}
	if comment == nil {
		return ErrCommentNotFound
	}
	if !isAdmin && comment.UserID != actorID {
		return ErrForbidden
	}

	if err := svc.writer.Delete(ctx, commentID); err != nil {
		logger.Log.Errorw("failed to delete comment", "comment_id", commentID, "err", err)
		return err
	}

	return nil
}
