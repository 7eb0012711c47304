package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config keeps runtime settings for the service.
type Config struct {
	HTTPAddr    string
	DatabaseURL string
	JWTSecret   string
	// TelegramToken, when set, enables the Telegram notification sink.
	TelegramToken string
	// ReminderTime is the local HH:MM at which the daily digest is sent.
	// Empty disables the digest job.
	ReminderTime string
	Mail         MailConfig
}

// MailConfig holds the outbound SMTP settings. The block is all-or-nothing:
// either every value is present and mail notifications are enabled, or none
// is and the service runs without them.
type MailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// Enabled reports whether mail notifications are configured.
func (m MailConfig) Enabled() bool {
	return m.Host != ""
}

// Load reads configuration from the environment, with an optional .env file.
func Load() (Config, error) {
	// A missing .env file is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg := Config{
		HTTPAddr:      strings.TrimSpace(os.Getenv("HTTP_ADDR")),
		DatabaseURL:   strings.TrimSpace(os.Getenv("DATABASE_URL")),
		JWTSecret:     strings.TrimSpace(os.Getenv("JWT_SECRET")),
		TelegramToken: strings.TrimSpace(os.Getenv("TELEGRAM_TOKEN")),
		ReminderTime:  strings.TrimSpace(os.Getenv("REMINDER_TIME")),
	}

	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "tasks.db"
	}
	if cfg.JWTSecret == "" {
		return cfg, fmt.Errorf("JWT_SECRET is required")
	}

	mail, err := loadMail()
	if err != nil {
		return cfg, err
	}
	cfg.Mail = mail

	return cfg, nil
}

func loadMail() (MailConfig, error) {
	mail := MailConfig{
		Host:     strings.TrimSpace(os.Getenv("EMAIL_HOST")),
		User:     strings.TrimSpace(os.Getenv("EMAIL_HOST_USER")),
		Password: os.Getenv("EMAIL_HOST_PASSWORD"),
		From:     strings.TrimSpace(os.Getenv("EMAIL_FROM_EMAIL")),
	}
	port := strings.TrimSpace(os.Getenv("EMAIL_PORT"))

	if mail.Host == "" && mail.User == "" && mail.From == "" && port == "" {
		return MailConfig{}, nil
	}

	if mail.Host == "" || mail.User == "" || mail.Password == "" || mail.From == "" || port == "" {
		return MailConfig{}, fmt.Errorf("incomplete mail configuration: EMAIL_HOST, EMAIL_PORT, EMAIL_HOST_USER, EMAIL_HOST_PASSWORD and EMAIL_FROM_EMAIL must all be set")
	}

	p, err := strconv.Atoi(port)
	if err != nil || p <= 0 {
		return MailConfig{}, fmt.Errorf("invalid EMAIL_PORT %q", port)
	}
	mail.Port = p

	return mail, nil
}
