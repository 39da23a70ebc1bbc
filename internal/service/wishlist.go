package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/senkudev/otaku_shop/internal/models"
	"github.com/senkudev/otaku_shop/internal/repo"
)

type WishlistService struct {
	Repo *repo.GormRepo
}

type AddWishlistItemInput struct {
	ProductID uint
	Name      string
	Price     float64
	Image     string
}

func (s *WishlistService) Get(ctx context.Context, userID uint) ([]models.WishlistItem, error) {
	return s.Repo.ListWishlist(ctx, userID)
}

func (s *WishlistService) AddItem(ctx context.Context, userID uint, in AddWishlistItemInput) (*models.WishlistItem, error) {
	if in.ProductID == 0 {
		return nil, fmt.Errorf("%w: product_id required", ErrValidation)
	}
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}
	if in.Price <= 0 {
		return nil, fmt.Errorf("%w: price must be > 0", ErrValidation)
	}

	item := &models.WishlistItem{
		UserID:    userID,
		ProductID: in.ProductID,
		Name:      in.Name,
		Price:     in.Price,
		Image:     in.Image,
	}
	if err := s.Repo.AddWishlistItem(ctx, item); err != nil {
		if errors.Is(err, repo.ErrDuplicateWishlistItem) {
			return nil, fmt.Errorf("%w: product %d already in wishlist", ErrDuplicateItem, in.ProductID)
		}
		return nil, err
	}
	return item, nil
}

func (s *WishlistService) RemoveItem(ctx context.Context, userID, productID uint) error {
	if err := s.Repo.RemoveWishlistItem(ctx, userID, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: product %d not in wishlist", ErrNotFound, productID)
		}
		return err
	}
	return nil
}

func (s *WishlistService) Clear(ctx context.Context, userID uint) error {
	return s.Repo.ClearWishlist(ctx, userID)
}

func (s *WishlistService) Contains(ctx context.Context, userID, productID uint) (bool, error) {
	return s.Repo.WishlistContains(ctx, userID, productID)
}
