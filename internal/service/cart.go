package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/senkudev/otaku_shop/internal/logging"
	"github.com/senkudev/otaku_shop/internal/models"
	"github.com/senkudev/otaku_shop/internal/mykafka"
	"github.com/senkudev/otaku_shop/internal/repo"
)

type CartService struct {
	Repo     *repo.GormRepo
	Producer *mykafka.Producer
}

type AddCartItemInput struct {
	ProductID uint
	Name      string
	Price     float64
	Quantity  int
	Size      string
	Color     string
	Image     string
}

// Get never fails with not-found: a missing cart is created empty.
func (s *CartService) Get(ctx context.Context, userID uint) (*models.Cart, error) {
	return s.Repo.GetOrCreateCart(ctx, userID)
}

func (s *CartService) AddItem(ctx context.Context, userID uint, in AddCartItemInput) (*models.Cart, error) {
	if in.ProductID == 0 {
		return nil, fmt.Errorf("%w: product_id required", ErrValidation)
	}
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}
	if in.Price <= 0 {
		return nil, fmt.Errorf("%w: price must be > 0", ErrValidation)
	}
	if in.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must be >= 1", ErrValidation)
	}
	if in.Quantity == 0 {
		in.Quantity = 1
	}

	item := &models.CartItem{
		ProductID: in.ProductID,
		Name:      in.Name,
		Price:     in.Price,
		Quantity:  in.Quantity,
		Size:      in.Size,
		Color:     in.Color,
		Image:     in.Image,
	}
	cart, err := s.Repo.AddCartItem(ctx, userID, item)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, userID, map[string]any{
		"type":       "cart_item_added",
		"user_id":    userID,
		"product_id": in.ProductID,
		"quantity":   in.Quantity,
	})
	return cart, nil
}

func (s *CartService) UpdateQuantity(ctx context.Context, userID, itemID uint, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be >= 1", ErrValidation)
	}

	cart, err := s.Repo.UpdateCartItemQuantity(ctx, userID, itemID, quantity)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: cart item %d", ErrNotFound, itemID)
		}
		return nil, err
	}

	s.publish(ctx, userID, map[string]any{
		"type":     "cart_item_updated",
		"user_id":  userID,
		"item_id":  itemID,
		"quantity": quantity,
	})
	return cart, nil
}

func (s *CartService) RemoveItem(ctx context.Context, userID, itemID uint) (*models.Cart, error) {
	cart, err := s.Repo.RemoveCartItem(ctx, userID, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: cart item %d", ErrNotFound, itemID)
		}
		return nil, err
	}

	s.publish(ctx, userID, map[string]any{
		"type":    "cart_item_removed",
		"user_id": userID,
		"item_id": itemID,
	})
	return cart, nil
}

func (s *CartService) Clear(ctx context.Context, userID uint) error {
	if err := s.Repo.ClearCart(ctx, userID); err != nil {
		return err
	}

	s.publish(ctx, userID, map[string]any{
		"type":    "cart_cleared",
		"user_id": userID,
	})
	return nil
}

func (s *CartService) publish(ctx context.Context, userID uint, event map[string]any) {
	if err := s.Producer.PublishEvent(ctx, "cart_events", fmt.Sprint(userID), event); err != nil {
		logging.FromContext(ctx).Error("kafka_publish_failed", "topic", "cart_events", "error", err)
	}
}
