package repository

import (
	"context"
	"errors"
	"strings"

	"friender/pkg/logger"
	"friender/pkg/models"

	"gorm.io/gorm"
)

var (
	ErrEmailTaken = errors.New("email already taken")
	ErrNotFound   = errors.New("user not found")
)

type AuthRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) *AuthRepository {
	return &AuthRepository{db: db}
}

// 유저 생성
func (r *AuthRepository) CreateUser(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmailTaken
		}
		logger.Logger.Error().Err(err).Msg("❌ Failed to insert user")
		return err
	}
	return nil
}

// 이메일로 유저 조회
func (r *AuthRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		logger.Logger.Error().Err(err).Msg("❌ Failed to get user by email")
		return nil, err
	}
	return &user, nil
}
