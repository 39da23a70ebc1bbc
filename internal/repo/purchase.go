package repo

import (
	"context"

	"github.com/senkudev/otaku_shop/internal/models"
)

func (r *GormRepo) CreatePurchase(ctx context.Context, purchase *models.Purchase) error {
	return r.DB.WithContext(ctx).Create(purchase).Error
}

func (r *GormRepo) FindPurchaseByID(ctx context.Context, id uint) (*models.Purchase, error) {
	var purchase models.Purchase
	if err := r.DB.WithContext(ctx).Preload("Items").First(&purchase, id).Error; err != nil {
		return nil, err
	}
	return &purchase, nil
}

func (r *GormRepo) ListPurchasesByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Purchase, error) {
	var purchases []models.Purchase
	err := r.DB.WithContext(ctx).Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&purchases).Error
	if err != nil {
		return nil, err
	}
	return purchases, nil
}

func (r *GormRepo) ListAllPurchases(ctx context.Context, limit, offset int) ([]models.Purchase, error) {
	var purchases []models.Purchase
	err := r.DB.WithContext(ctx).Preload("Items").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&purchases).Error
	if err != nil {
		return nil, err
	}
	return purchases, nil
}

func (r *GormRepo) SavePurchase(ctx context.Context, purchase *models.Purchase) error {
	return r.DB.WithContext(ctx).Save(purchase).Error
}
