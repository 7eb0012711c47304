package api

import "github.com/amitkumarsingh01/ACS-Cyber/internal/model"

// SignupRequest creates a new account.
type SignupRequest struct {
	Username string     `json:"username"`
	Email    string     `json:"email"`
	Password string     `json:"password"`
	Tier     model.Tier `json:"tier"`
}

// LoginRequest authenticates an account.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TaskRequest carries the full editable field set for create and update.
type TaskRequest struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	DueDate     string         `json:"due_date"`
	Category    string         `json:"category"`
	Priority    model.Priority `json:"priority"`
}

// StatusRequest toggles a task's completion flag.
type StatusRequest struct {
	Completed bool `json:"completed"`
}

// ChangePasswordRequest rotates the password of the logged-in account.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// ForgotPasswordRequest starts the recovery flow.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest completes the recovery flow with a mailed token.
type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// TelegramRequest links a Telegram chat for notifications.
type TelegramRequest struct {
	ChatID int64 `json:"chat_id"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID       uint       `json:"id"`
	Username string     `json:"username"`
	Email    string     `json:"email"`
	Tier     model.Tier `json:"tier"`
}

func newUserResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Tier:     user.Tier,
	}
}
