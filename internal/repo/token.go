package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/senkudev/otaku_shop/internal/models"
)

var ErrRefreshNotFound = errors.New("refresh token not found")
var ErrRefreshExpired = errors.New("refresh token expired")

func (r *GormRepo) AddRefreshToken(ctx context.Context, row *models.RefreshToken) error {
	return r.DB.WithContext(ctx).Create(row).Error
}

// RotateRefreshToken consumes the presented token and stores its replacement
// in one transaction. The old row is deleted, so a replayed token fails the
// lookup on the next rotation.
func (r *GormRepo) RotateRefreshToken(ctx context.Context, oldTokenHash string, newRow *models.RefreshToken) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var stored models.RefreshToken
		if err := tx.Where("token_hash = ?", oldTokenHash).First(&stored).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRefreshNotFound
			}
			return err
		}

		if stored.ExpiresAt < time.Now().Unix() {
			return ErrRefreshExpired
		}

		if err := tx.Delete(&stored).Error; err != nil {
			return err
		}

		return tx.Create(newRow).Error
	})
}

func (r *GormRepo) RefreshTokenExists(ctx context.Context, tokenHash string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("token_hash = ?", tokenHash).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteAllRefreshTokens revokes every session the user has (all devices).
func (r *GormRepo) DeleteAllRefreshTokens(ctx context.Context, userID uint) error {
	return r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.RefreshToken{}).Error
}

// PruneExpiredRefreshTokens drops rows whose expiry already passed, keeping
// the per-user session list from growing without bound.
func (r *GormRepo) PruneExpiredRefreshTokens(ctx context.Context, userID uint) error {
	return r.DB.WithContext(ctx).
		Where("user_id = ? AND expires_at < ?", userID, time.Now().Unix()).
		Delete(&models.RefreshToken{}).Error
}
