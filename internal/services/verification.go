package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/devister/devister/internal/logger"
	"github.com/devister/devister/internal/models"
)

// Error variables
var (
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidLink  = errors.New("invalid link")
)

// TokenReader defines read-only operations for verification tokens.
type TokenReader interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.VerificationTokenDB, error)
	GetByUserIDAndToken(ctx context.Context, userID uuid.UUID, token string) (*models.VerificationTokenDB, error)
}

// TokenWriter defines write operations for verification tokens. Insert must
// fail when a row for the user already exists; Consume must atomically delete
// the matching row and report whether it existed.
type TokenWriter interface {
	Insert(ctx context.Context, userID uuid.UUID, token string) error
	Consume(ctx context.Context, userID uuid.UUID, token string) (bool, error)
}

// AccountReader defines the account lookups the lifecycle needs.
type AccountReader interface {
	GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error)
	GetByEmail(ctx context.Context, email string) (*models.UserDB, error)
}

// AccountWriter defines the account mutations the lifecycle performs.
type AccountWriter interface {
	SetVerified(ctx context.Context, userID uuid.UUID, verified bool) error
	SetPassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
}

// Sender delivers a notification to an external address.
type Sender interface {
	Send(to, subject, htmlBody string) error
}

// VerificationService orchestrates the verification-token lifecycle: token
// issuance, link building, link validation, consumption and the resulting
// account-state transition.
type VerificationService struct {
	tokenReader TokenReader
	tokenWriter TokenWriter
	users       AccountReader
	userWriter  AccountWriter
	sender      Sender

	// Domain is the client-facing domain links are built on.
	Domain string
	// ResetImpliesVerified makes a successful password reset also mark the
	// account verified: proving control of the mailbox is proof enough.
	ResetImpliesVerified bool
}

// NewVerificationService creates a new VerificationService instance.
func NewVerificationService(
	tokenReader TokenReader,
	tokenWriter TokenWriter,
	users AccountReader,
	userWriter AccountWriter,
	sender Sender,
	domain string,
	resetImpliesVerified bool,
) *VerificationService {
	return &VerificationService{
		tokenReader:          tokenReader,
		tokenWriter:          tokenWriter,
		users:                users,
		userWriter:           userWriter,
		sender:               sender,
		Domain:               domain,
		ResetImpliesVerified: resetImpliesVerified,
	}
}

func newTokenSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// IssueOrReuse returns the user's active token, creating one if absent.
// Tokens never expire and are never rotated: repeated calls before
// consumption return the same secret. When two callers race past the
// existence check, the store's uniqueness constraint fails the second insert
// and the surviving row is reused.
func (svc *VerificationService) IssueOrReuse(ctx context.Context, userID uuid.UUID) (string, error) {
	existing, err := svc.tokenReader.GetByUserID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to look up verification token", "user_id", userID, "err", err)
		return "", err
	}
	if existing != nil {
		return existing.Token, nil
	}

	secret, err := newTokenSecret()
	if err != nil {
		logger.Log.Errorw("failed to generate token secret", "err", err)
		return "", err
	}

	if insertErr := svc.tokenWriter.Insert(ctx, userID, secret); insertErr != nil {
		// A concurrent issuance may have won the insert; reuse its row.
		existing, err = svc.tokenReader.GetByUserID(ctx, userID)
		if err != nil {
			logger.Log.Errorw("failed to re-read verification token", "user_id", userID, "err", err)
			return "", err
		}
		if existing == nil {
			logger.Log.Errorw("failed to insert verification token", "user_id", userID, "err", insertErr)
			return "", insertErr
		}
		return existing.Token, nil
	}

	return secret, nil
}

// VerificationLink builds the email-verification URL for an issued token.
func (svc *VerificationService) VerificationLink(userID uuid.UUID, token string) string {
	return fmt.Sprintf("https://%s/users/%s/verify/%s", svc.Domain, userID, token)
}

// ResetLink builds the password-reset URL for an issued token.
func (svc *VerificationService) ResetLink(userID uuid.UUID, token string) string {
	return fmt.Sprintf("https://%s/reset-password/%s/%s", svc.Domain, userID, token)
}

// SendVerificationEmail issues (or reuses) the user's token and mails the
// verification link. A send failure fails the call, but the token row stays:
// a retriggered send reuses it.
func (svc *VerificationService) SendVerificationEmail(ctx context.Context, user *models.UserDB) error {
	token, err := svc.IssueOrReuse(ctx, user.UserID)
	if err != nil {
		return err
	}

	link := svc.VerificationLink(user.UserID, token)
	htmlBody := fmt.Sprintf(`
    <div>
      <p>Click On The Link Below To Verify Your Email</p>
      <a href="%s">Verify</a>
    </div>
  `, link)

	if err := svc.sender.Send(user.Email, "Verify Devister Email", htmlBody); err != nil {
		logger.Log.Errorw("failed to send verification email", "user_id", user.UserID, "err", err)
		return err
	}

	return nil
}

// SendResetEmail issues (or reuses) a token for the account with the given
// email and mails the reset link.
func (svc *VerificationService) SendResetEmail(ctx context.Context, email string) error {
	user, err := svc.users.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to look up user by email", "err", err)
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	token, err := svc.IssueOrReuse(ctx, user.UserID)
	if err != nil {
		return err
	}

	link := svc.ResetLink(user.UserID, token)
	htmlBody := fmt.Sprintf(`
    <div>
        <p>Click On The Link Below To Reset Your Password</p>
        <a href="%s">Reset Password</a>
    </div>
  `, link)

	if err := svc.sender.Send(user.Email, "Reset Password", htmlBody); err != nil {
		logger.Log.Errorw("failed to send reset email", "user_id", user.UserID, "err", err)
		return err
	}

	return nil
}

// CheckResetLink validates a reset link without consuming the token.
func (svc *VerificationService) CheckResetLink(ctx context.Context, userID uuid.UUID, token string) error {
	user, err := svc.users.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to look up user", "user_id", userID, "err", err)
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	row, err := svc.tokenReader.GetByUserIDAndToken(ctx, userID, token)
	if err != nil {
		logger.Log.Errorw("failed to look up verification token", "user_id", userID, "err", err)
		return err
	}
	if row == nil {
		return ErrInvalidLink
	}

	return nil
}

// ConsumeForVerification validates (userID, token) and marks the account
// verified. The token is deleted atomically before the flag is set, so a
// second presentation of the same secret fails with ErrInvalidLink while the
// flag stays true.
func (svc *VerificationService) ConsumeForVerification(ctx context.Context, userID uuid.UUID, token string) error {
	user, err := svc.users.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to look up user", "user_id", userID, "err", err)
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	consumed, err := svc.tokenWriter.Consume(ctx, userID, token)
	if err != nil {
		logger.Log.Errorw("failed to consume verification token", "user_id", userID, "err", err)
		return err
	}
	if !consumed {
		return ErrInvalidLink
	}

	if err := svc.userWriter.SetVerified(ctx, userID, true); err != nil {
		logger.Log.Errorw("failed to mark account verified", "user_id", userID, "err", err)
		return err
	}

	return nil
}

// ConsumeForPasswordReset validates (userID, token), overwrites the password
// hash and deletes the token. When ResetImpliesVerified is set, an
// unverified account comes out verified: same single-use consumption rules
// as ConsumeForVerification.
func (svc *VerificationService) ConsumeForPasswordReset(ctx context.Context, userID uuid.UUID, token, newPassword string) error {
	user, err := svc.users.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to look up user", "user_id", userID, "err", err)
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	consumed, err := svc.tokenWriter.Consume(ctx, userID, token)
	if err != nil {
		logger.Log.Errorw("failed to consume verification token", "user_id", userID, "err", err)
		return err
	}
	if !consumed {
		return ErrInvalidLink
	}

	if svc.ResetImpliesVerified && !user.IsAccountVerified {
		if err := svc.userWriter.SetVerified(ctx, userID, true); err != nil {
			logger.Log.Errorw("failed to mark account verified", "user_id", userID, "err", err)
			return err
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return err
	}

	if err := svc.userWriter.SetPassword(ctx, userID, string(hashedPassword)); err != nil {
		logger.Log.Errorw("failed to overwrite password", "user_id", userID, "err", err)
		return err
	}

	return nil
}
