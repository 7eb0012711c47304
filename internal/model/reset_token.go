package model

import "time"

// PasswordResetToken is a single-use credential for the password recovery
// flow. The recovery mail carries the token, never the password itself.
type PasswordResetToken struct {
	Token     string `gorm:"primaryKey;size:36"`
	UserID    uint   `gorm:"index"`
	ExpiresAt time.Time
	CreatedAt time.Time
}
