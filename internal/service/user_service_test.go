package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/amitkumarsingh01/ACS-Cyber/internal/model"
	"github.com/amitkumarsingh01/ACS-Cyber/internal/repository"
)

func TestSignUpAndAuthenticate(t *testing.T) {
	f := newFixture(t)

	created, err := f.users.SignUp(context.Background(), "alice", "alice@example.com", "hunter22", model.TierRegular)
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}
	if created.PasswordHash == "hunter22" {
		t.Fatal("password stored in plaintext")
	}

	user, err := f.users.Authenticate(context.Background(), "alice", "hunter22")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if user.ID != created.ID || user.Tier != model.TierRegular {
		t.Fatalf("authenticated as %+v, want id %d tier Regular", user, created.ID)
	}

	subjects := f.sink.subjects()
	if len(subjects) != 1 || subjects[0] != "Welcome to Task Manager" {
		t.Fatalf("welcome notification = %v", subjects)
	}
}

func TestSignUpDuplicate(t *testing.T) {
	f := newFixture(t)
	f.signUp(t, "alice", model.TierRegular)

	cases := []struct {
		name     string
		username string
		email    string
	}{
		{"same username", "alice", "other@example.com"},
		{"same email", "other", "alice@example.com"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.users.SignUp(context.Background(), tc.username, tc.email, "pw123456", model.TierRegular)
			if !errors.Is(err, repository.ErrDuplicateUser) {
				t.Fatalf("got %v, want ErrDuplicateUser", err)
			}
		})
	}

	users, err := f.userRepo.ListAll(context.Background())
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("store changed by rejected signups: %d users", len(users))
	}
}

func TestSignUpValidation(t *testing.T) {
	f := newFixture(t)

	if _, err := f.users.SignUp(context.Background(), "", "a@example.com", "pw", model.TierRegular); !errors.Is(err, ErrValidation) {
		t.Fatalf("empty username: got %v, want ErrValidation", err)
	}
	if _, err := f.users.SignUp(context.Background(), "a", "a@example.com", "pw", "Gold"); !errors.Is(err, ErrValidation) {
		t.Fatalf("unknown tier: got %v, want ErrValidation", err)
	}
}

func TestAuthenticateRejectsBadCredentials(t *testing.T) {
	f := newFixture(t)
	f.signUp(t, "alice", model.TierRegular)

	if _, err := f.users.Authenticate(context.Background(), "alice", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: got %v, want ErrInvalidCredentials", err)
	}
	if _, err := f.users.Authenticate(context.Background(), "nobody", "whatever"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user: got %v, want ErrInvalidCredentials", err)
	}
}

func TestChangePassword(t *testing.T) {
	f := newFixture(t)
	user := f.signUp(t, "alice", model.TierRegular)

	if err := f.users.ChangePassword(context.Background(), user.ID, "wrong", "newpass99"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong old password: got %v, want ErrInvalidCredentials", err)
	}

	if err := f.users.ChangePassword(context.Background(), user.ID, "secret123", "newpass99"); err != nil {
		t.Fatalf("change password: %v", err)
	}
	if _, err := f.users.Authenticate(context.Background(), "alice", "newpass99"); err != nil {
		t.Fatalf("authenticate with new password: %v", err)
	}
	if _, err := f.users.Authenticate(context.Background(), "alice", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password still works")
	}
}

func TestPasswordResetFlow(t *testing.T) {
	f := newFixture(t)
	f.signUp(t, "alice", model.TierRegular)
	f.sink.sent = nil

	token, err := f.users.RequestPasswordReset(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("request reset: %v", err)
	}

	// The recovery mail carries the token, never the password.
	if len(f.sink.sent) != 1 {
		t.Fatalf("got %d notifications, want 1", len(f.sink.sent))
	}
	note := f.sink.sent[0]
	if note.subject != "Password Recovery" {
		t.Fatalf("subject = %q", note.subject)
	}
	if !strings.Contains(note.body, token) {
		t.Fatalf("recovery mail does not carry the token")
	}
	if strings.Contains(note.body, "secret123") {
		t.Fatalf("recovery mail leaks the password")
	}

	if err := f.users.ResetPassword(context.Background(), token, "rotated77"); err != nil {
		t.Fatalf("reset password: %v", err)
	}
	if _, err := f.users.Authenticate(context.Background(), "alice", "rotated77"); err != nil {
		t.Fatalf("authenticate after reset: %v", err)
	}

	// Tokens are single use.
	if err := f.users.ResetPassword(context.Background(), token, "again"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("reused token: got %v, want ErrNotFound", err)
	}
}

func TestPasswordResetUnknownEmailAndExpiredToken(t *testing.T) {
	f := newFixture(t)
	user := f.signUp(t, "alice", model.TierRegular)

	if _, err := f.users.RequestPasswordReset(context.Background(), "ghost@example.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown email: got %v, want ErrNotFound", err)
	}

	expired := model.PasswordResetToken{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	if err := f.userRepo.CreateResetToken(context.Background(), &expired); err != nil {
		t.Fatalf("seed expired token: %v", err)
	}
	if err := f.users.ResetPassword(context.Background(), expired.Token, "late"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expired token: got %v, want ErrNotFound", err)
	}
}

func TestSetTelegramChat(t *testing.T) {
	f := newFixture(t)
	user := f.signUp(t, "alice", model.TierRegular)

	if err := f.users.SetTelegramChat(context.Background(), user.ID, 424242); err != nil {
		t.Fatalf("set telegram chat: %v", err)
	}
	reloaded, err := f.userRepo.FindByID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if reloaded.TelegramChatID != 424242 {
		t.Fatalf("chat id = %d, want 424242", reloaded.TelegramChatID)
	}
}
