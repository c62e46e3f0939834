package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/devister/devister/internal/events"
	"github.com/devister/devister/internal/logger"
	"github.com/devister/devister/internal/models"
)

// Error variables
var (
	ErrInvalidOldPassword = errors.New("old password is invalid")
)

// ProfileReader defines the account lookups profile operations need.
type ProfileReader interface {
	GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error)
	List(ctx context.Context) ([]*models.UserDB, error)
	Random(ctx context.Context) ([]*models.UserDB, error)
	Count(ctx context.Context) (int64, error)
	GetFollowers(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	GetFollowing(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

// ProfileWriter defines the account mutations profile operations perform.
type ProfileWriter interface {
	Update(ctx context.Context, userID uuid.UUID, username, passwordHash, bio *string) error
	SetProfilePhoto(ctx context.Context, userID uuid.UUID, url string, key *string) error
	ToggleFollow(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error)
	DeleteWithContent(ctx context.Context, userID uuid.UUID) error
}

// OwnedPostsReader lists the posts an account owns.
type OwnedPostsReader interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*models.PostDB, error)
}

// ImageStore uploads and removes images on the external image host.
type ImageStore interface {
	Upload(ctx context.Context, data []byte, contentType string) (string, string, error)
	Remove(ctx context.Context, publicID string) error
	RemoveMany(ctx context.Context, publicIDs []string) error
}

// CleanupEnqueuer records image public ids whose remote deletion failed.
type CleanupEnqueuer interface {
	Enqueue(ctx context.Context, publicIDs ...string)
}

// UserService handles profiles, the follow toggle and account deletion with
// its content cascade.
type UserService struct {
	reader  ProfileReader
	writer  ProfileWriter
	posts   OwnedPostsReader
	images  ImageStore
	cleanup CleanupEnqueuer
	events  EventPublisher
}

// NewUserService creates a new UserService instance.
func NewUserService(
	reader ProfileReader,
	writer ProfileWriter,
	posts OwnedPostsReader,
	images ImageStore,
	cleanup CleanupEnqueuer,
	events EventPublisher,
) *UserService {
	return &UserService{
		reader:  reader,
		writer:  writer,
		posts:   posts,
		images:  images,
		cleanup: cleanup,
		events:  events,
	}
}

func (svc *UserService) buildProfile(ctx context.Context, user *models.UserDB) (*models.UserProfile, error) {
	profile := user.Profile()

	followers, err := svc.reader.GetFollowers(ctx, user.UserID)
	if err != nil {
		return nil, err
	}
	profile.Followers = followers

	following, err := svc.reader.GetFollowing(ctx, user.UserID)
	if err != nil {
		return nil, err
	}
	profile.Following = following

	posts, err := svc.posts.GetByUserID(ctx, user.UserID)
	if err != nil {
		return nil, err
	}
	profile.Posts = posts

	return profile, nil
}

// ListProfiles returns all user profiles with their posts.
func (svc *UserService) ListProfiles(ctx context.Context) ([]*models.UserProfile, error) {
	users, err := svc.reader.List(ctx)
	if err != nil {
		logger.Log.Errorw("failed to list users", "err", err)
		return nil, err
	}

	profiles := make([]*models.UserProfile, 0, len(users))
	for _, user := range users {
		profile, err := svc.buildProfile(ctx, user)
		if err != nil {
			logger.Log.Errorw("failed to build profile", "user_id", user.UserID, "err", err)
			return nil, err
		}
		profiles = append(profiles, profile)
	}

	return profiles, nil
}

// GetProfile returns one user profile with followers, following and posts.
func (svc *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	user, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "user_id", userID, "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return svc.buildProfile(ctx, user)
}

// RandomProfiles returns user profiles in random order.
func (svc *UserService) RandomProfiles(ctx context.Context) ([]*models.UserProfile, error) {
	users, err := svc.reader.Random(ctx)
	if err != nil {
		logger.Log.Errorw("failed to get random users", "err", err)
		return nil, err
	}

	profiles := make([]*models.UserProfile, 0, len(users))
	for _, user := range users {
		profiles = append(profiles, user.Profile())
	}

	return profiles, nil
}

// Count returns the number of registered users.
func (svc *UserService) Count(ctx context.Context) (int64, error) {
	return svc.reader.Count(ctx)
}

// UpdateProfile overwrites the provided profile fields. Changing the password
// requires the old one when it is supplied.
func (svc *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, username, password, oldPassword, bio *string) (*models.UserProfile, error) {
	user, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "user_id", userID, "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if oldPassword != nil {
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(*oldPassword)); err != nil {
			return nil, ErrInvalidOldPassword
		}
	}

	var passwordHash *string
	if password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
		if err != nil {
			logger.Log.Errorw("failed to hash password", "err", err)
			return nil, err
		}
		hashedStr := string(hashed)
		passwordHash = &hashedStr
	}

	if err := svc.writer.Update(ctx, userID, username, passwordHash, bio); err != nil {
		logger.Log.Errorw("failed to update user", "user_id", userID, "err", err)
		return nil, err
	}

	return svc.GetProfile(ctx, userID)
}

// UploadProfilePhoto stores the photo on the image host and replaces the
// user's photo reference. The old photo is removed best-effort; a failed
// remote delete goes to the cleanup queue.
func (svc *UserService) UploadProfilePhoto(ctx context.Context, userID uuid.UUID, data []byte, contentType string) (*models.UserProfile, error) {
	user, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "user_id", userID, "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	url, key, err := svc.images.Upload(ctx, data, contentType)
	if err != nil {
		logger.Log.Errorw("failed to upload profile photo", "user_id", userID, "err", err)
		return nil, err
	}

	if user.ProfilePhotoKey != nil {
		if err := svc.images.Remove(ctx, *user.ProfilePhotoKey); err != nil {
			logger.Log.Errorw("failed to remove old profile photo", "user_id", userID, "err", err)
			svc.cleanup.Enqueue(ctx, *user.ProfilePhotoKey)
		}
	}

	if err := svc.writer.SetProfilePhoto(ctx, userID, url, &key); err != nil {
		logger.Log.Errorw("failed to set profile photo", "user_id", userID, "err", err)
		return nil, err
	}

	return svc.GetProfile(ctx, userID)
}

// ToggleFollow flips the acting user's membership in the target's follower
// set and returns the updated target profile.
func (svc *UserService) ToggleFollow(ctx context.Context, actorID, targetID uuid.UUID) (*models.UserProfile, error) {
	target, err := svc.reader.GetByID(ctx, targetID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "user_id", targetID, "err", err)
		return nil, err
	}
	if target == nil {
		return nil, ErrUserNotFound
	}

	if _, err := svc.writer.ToggleFollow(ctx, actorID, targetID); err != nil {
		logger.Log.Errorw("failed to toggle follow", "actor_id", actorID, "target_id", targetID, "err", err)
		return nil, err
	}

	return svc.GetProfile(ctx, targetID)
}

// DeleteProfile removes an account and cascades over its content: post
// images and the profile photo are deleted on the image host (best effort,
// failures queued for retry), then posts, comments and the account row are
// removed in a single transaction.
func (svc *UserService) DeleteProfile(ctx context.Context, userID uuid.UUID) error {
	user, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "user_id", userID, "err", err)
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	posts, err := svc.posts.GetByUserID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to list user posts", "user_id", userID, "err", err)
		return err
	}

	publicIDs := make([]string, 0, len(posts))
	for _, post := range posts {
		if post.ImageKey != nil {
			publicIDs = append(publicIDs, *post.ImageKey)
		}
	}

	if len(publicIDs) > 0 {
		if err := svc.images.RemoveMany(ctx, publicIDs); err != nil {
			logger.Log.Errorw("failed to remove post images", "user_id", userID, "err", err)
			svc.cleanup.Enqueue(ctx, publicIDs...)
		}
	}

	if user.ProfilePhotoKey != nil {
		if err := svc.images.Remove(ctx, *user.ProfilePhotoKey); err != nil {
			logger.Log.Errorw("failed to remove profile photo", "user_id", userID, "err", err)
			svc.cleanup.Enqueue(ctx, *user.ProfilePhotoKey)
		}
	}

	if err := svc.writer.DeleteWithContent(ctx, userID); err != nil {
		logger.Log.Errorw("failed to delete user with content", "user_id", userID, "err", err)
		return err
	}

	svc.events.Publish(ctx, events.TypeUserDeleted, map[string]string{
		"user_id": userID.String(),
	})

	return nil
}
