package config

import (
	"strings"
	"testing"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	for _, key := range []string{
		"HTTP_ADDR", "DATABASE_URL", "TELEGRAM_TOKEN", "REMINDER_TIME",
		"EMAIL_HOST", "EMAIL_PORT", "EMAIL_HOST_USER", "EMAIL_HOST_PASSWORD", "EMAIL_FROM_EMAIL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q, want :8080", cfg.HTTPAddr)
	}
	if cfg.DatabaseURL != "tasks.db" {
		t.Errorf("DatabaseURL = %q, want tasks.db", cfg.DatabaseURL)
	}
	if cfg.Mail.Enabled() {
		t.Error("mail should be disabled without settings")
	}
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "JWT_SECRET") {
		t.Fatalf("got %v, want JWT_SECRET error", err)
	}
}

func TestLoadMailAllOrNothing(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("EMAIL_HOST", "smtp.example.com")

	if _, err := Load(); err == nil {
		t.Fatal("partial mail config should fail startup")
	}

	t.Setenv("EMAIL_PORT", "465")
	t.Setenv("EMAIL_HOST_USER", "mailer")
	t.Setenv("EMAIL_HOST_PASSWORD", "hunter2")
	t.Setenv("EMAIL_FROM_EMAIL", "tasks@example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("full mail config: %v", err)
	}
	if !cfg.Mail.Enabled() || cfg.Mail.Port != 465 {
		t.Fatalf("mail = %+v, want enabled on port 465", cfg.Mail)
	}
}

func TestLoadRejectsBadMailPort(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("EMAIL_HOST", "smtp.example.com")
	t.Setenv("EMAIL_PORT", "not-a-port")
	t.Setenv("EMAIL_HOST_USER", "mailer")
	t.Setenv("EMAIL_HOST_PASSWORD", "hunter2")
	t.Setenv("EMAIL_FROM_EMAIL", "tasks@example.com")

	if _, err := Load(); err == nil {
		t.Fatal("bad port should fail startup")
	}
}
