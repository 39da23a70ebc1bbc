package repo

import (
	"context"
	"strings"

	"github.com/senkudev/otaku_shop/internal/models"
)

func (r *GormRepo) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.DB.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) FindUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) FindUserByProvider(ctx context.Context, provider, providerID string) (*models.User, error) {
	var user models.User
	err := r.DB.WithContext(ctx).
		Where("provider = ? AND provider_id = ?", provider, providerID).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindUserByVerificationToken and FindUserByResetToken look tokens up by
// their stored sha256.
func (r *GormRepo) FindUserByVerificationToken(ctx context.Context, tokenHash string) (*models.User, error) {
	var user models.User
	err := r.DB.WithContext(ctx).
		Where("verification_token = ?", tokenHash).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) FindUserByResetToken(ctx context.Context, tokenHash string) (*models.User, error) {
	var user models.User
	err := r.DB.WithContext(ctx).
		Where("reset_token = ?", tokenHash).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) CreateUser(ctx context.Context, user *models.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	return r.DB.WithContext(ctx).Create(user).Error
}

func (r *GormRepo) SaveUser(ctx context.Context, user *models.User) error {
	return r.DB.WithContext(ctx).Save(user).Error
}
