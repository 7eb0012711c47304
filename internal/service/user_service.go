package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/amitkumarsingh01/ACS-Cyber/internal/model"
	"github.com/amitkumarsingh01/ACS-Cyber/internal/notify"
	"github.com/amitkumarsingh01/ACS-Cyber/internal/repository"
)

// resetTokenTTL is how long a password recovery token stays valid.
const resetTokenTTL = time.Hour

// UserService wraps account-related business logic.
type UserService struct {
	users *repository.UserRepository
	sink  notify.Sink
}

// NewUserService builds the service. sink may be nil when notifications are
// disabled.
func NewUserService(users *repository.UserRepository, sink notify.Sink) *UserService {
	return &UserService{users: users, sink: sink}
}

// SignUp creates an account with a hashed password and sends a welcome
// notification. Duplicate usernames or emails yield
// repository.ErrDuplicateUser.
func (s *UserService) SignUp(ctx context.Context, username, email, password string, tier model.Tier) (*model.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", ErrValidation)
	}
	if !model.IsValidTier(tier) {
		return nil, fmt.Errorf("%w: unknown tier %q", ErrValidation, tier)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Tier:         tier,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		return nil, err
	}

	s.notify(ctx, user, "Welcome to Task Manager", "Your account has been created successfully!")

	return &user, nil
}

// Authenticate verifies a username/password pair.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// ChangePassword replaces the password after verifying the current one.
func (s *UserService) ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error {
	if newPassword == "" {
		return fmt.Errorf("%w: new password is required", ErrValidation)
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.users.UpdatePassword(ctx, user.ID, string(hash))
}

// RequestPasswordReset issues a single-use recovery token and mails it to the
// account's address. The stored password is never sent. The token is also
// returned to the caller for auditing; transports must not expose it.
func (s *UserService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	token := model.PasswordResetToken{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(resetTokenTTL),
	}
	if err := s.users.CreateResetToken(ctx, &token); err != nil {
		return "", err
	}

	s.notify(ctx, *user, "Password Recovery",
		fmt.Sprintf("Use this token to reset your password: %s\nIt expires in one hour.", token.Token))

	return token.Token, nil
}

// ResetPassword consumes a recovery token and sets a new password.
func (s *UserService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if newPassword == "" {
		return fmt.Errorf("%w: new password is required", ErrValidation)
	}

	reset, err := s.users.ConsumeResetToken(ctx, token, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("consume reset token: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.users.UpdatePassword(ctx, reset.UserID, string(hash))
}

// SetTelegramChat links (or, with chatID zero, unlinks) a Telegram chat for
// event notifications.
func (s *UserService) SetTelegramChat(ctx context.Context, userID uint, chatID int64) error {
	return s.users.SetTelegramChat(ctx, userID, chatID)
}

// notify sends best effort: delivery failures are logged and never surface
// as operation errors.
func (s *UserService) notify(ctx context.Context, user model.User, subject, body string) {
	if s.sink == nil {
		return
	}
	if err := s.sink.Notify(ctx, user, subject, body); err != nil {
		log.Printf("[warn] notify %q: %v", subject, err)
	}
}
