package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/amitkumarsingh01/ACS-Cyber/internal/model"
)

// UserRepository handles persistence for accounts and reset tokens.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new account. The uniqueness check and the insert run in
// one transaction so two concurrent signups cannot both claim a name.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.User{}).
			Where("username = ? OR email = ?", user.Username, user.Email).
			Count(&count).Error; err != nil {
			return fmt.Errorf("check uniqueness: %w", err)
		}
		if count > 0 {
			return ErrDuplicateUser
		}
		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		return nil
	})
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userID uint, passwordHash string) error {
	if err := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).
		Update("password_hash", passwordHash).Error; err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// SetTelegramChat links or unlinks (chatID zero) a Telegram chat.
func (r *UserRepository) SetTelegramChat(ctx context.Context, userID uint, chatID int64) error {
	if err := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).
		Update("telegram_chat_id", chatID).Error; err != nil {
		return fmt.Errorf("set telegram chat: %w", err)
	}
	return nil
}

func (r *UserRepository) ListAll(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) CreateResetToken(ctx context.Context, token *model.PasswordResetToken) error {
	if err := r.db.WithContext(ctx).Create(token).Error; err != nil {
		return fmt.Errorf("create reset token: %w", err)
	}
	return nil
}

// ConsumeResetToken deletes the token and returns it. Expired or unknown
// tokens yield gorm.ErrRecordNotFound.
func (r *UserRepository) ConsumeResetToken(ctx context.Context, token string, now time.Time) (*model.PasswordResetToken, error) {
	var reset model.PasswordResetToken
	db := r.db.WithContext(ctx)
	if err := db.Where("token = ?", token).First(&reset).Error; err != nil {
		return nil, err
	}
	if err := db.Delete(&model.PasswordResetToken{}, "token = ?", token).Error; err != nil {
		return nil, fmt.Errorf("consume reset token: %w", err)
	}
	if now.After(reset.ExpiresAt) {
		return nil, gorm.ErrRecordNotFound
	}
	return &reset, nil
}
