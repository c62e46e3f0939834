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
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountNotVerified = errors.New("account not verified")
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByEmail(ctx context.Context, email string) (*models.UserDB, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, user *models.UserDB) error
}

// JWTGenerator defines an interface for generating JWT tokens.
type JWTGenerator interface {
	GenerateWithAdmin(ctx context.Context, userID uuid.UUID, isAdmin bool) (string, error)
}

// VerificationMailer triggers a verification mail carrying the user's token.
type VerificationMailer interface {
	SendVerificationEmail(ctx context.Context, user *models.UserDB) error
}

// EventPublisher emits activity events.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, payload any)
}

// AuthService handles registration and login.
type AuthService struct {
	reader       UserReader
	writer       UserWriter
	jwt          JWTGenerator
	verification VerificationMailer
	events       EventPublisher
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader UserReader, writer UserWriter, jwt JWTGenerator, verification VerificationMailer, events EventPublisher) *AuthService {
	return &AuthService{
		reader:       reader,
		writer:       writer,
		jwt:          jwt,
		verification: verification,
		events:       events,
	}
}

// Register creates an unverified account and sends the verification mail.
func (svc *AuthService) Register(ctx context.Context, username, password, email string) error {
	user, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to check user exists", "err", err)
		return err
	}
	if user != nil {
		logger.Log.Errorw("user already exists", "username", username)
		return ErrUserAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return err
	}

	newUser := &models.UserDB{
		UserID:       uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	if err := svc.writer.Save(ctx, newUser); err != nil {
		logger.Log.Errorw("failed to save user", "err", err)
		return err
	}

	if err := svc.verification.SendVerificationEmail(ctx, newUser); err != nil {
		// The token row survives a failed send; a later register or login
		// attempt reuses it.
		return err
	}

	svc.events.Publish(ctx, events.TypeUserRegistered, map[string]string{
		"user_id":  newUser.UserID.String(),
		"username": newUser.Username,
	})

	return nil
}

// Login authenticates a user and returns the user row and a signed JWT.
// An unverified account gets its verification mail (re)sent and
// ErrAccountNotVerified instead of a token.
func (svc *AuthService) Login(ctx context.Context, email, password string) (*models.UserDB, string, error) {
	user, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Log.Errorw("invalid credentials", "user_id", user.UserID)
		return nil, "", ErrInvalidCredentials
	}

	if !user.IsAccountVerified {
		if err := svc.verification.SendVerificationEmail(ctx, user); err != nil {
			return nil, "", err
		}
		return nil, "", ErrAccountNotVerified
	}

	token, err := svc.jwt.GenerateWithAdmin(ctx, user.UserID, user.IsAdmin)
	if err != nil {
		logger.Log.Errorw("failed to generate JWT", "err", err)
		return nil, "", err
	}

	return user, token, nil
}
