package model

import "time"

// User is an account in the task manager.
type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"uniqueIndex" json:"username"`
	Email        string `gorm:"uniqueIndex" json:"email"`
	PasswordHash string `json:"-"`
	Tier         Tier   `gorm:"column:user_type" json:"tier"`
	// TelegramChatID, when non-zero, routes event notifications to a
	// linked Telegram chat in addition to email.
	TelegramChatID int64     `gorm:"default:0" json:"telegram_chat_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
