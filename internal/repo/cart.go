package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/senkudev/otaku_shop/internal/models"
)

// GetOrCreateCart never fails with not-found: a missing cart is created empty.
func (r *GormRepo) GetOrCreateCart(ctx context.Context, userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := r.DB.WithContext(ctx).Preload("Items").
		Where("user_id = ?", userID).
		First(&cart).Error
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cart = models.Cart{UserID: userID}
	if err := r.DB.WithContext(ctx).Create(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddCartItem merges on the (product, size, color) tuple: a matching line has
// its quantity incremented instead of a new row appended. Totals are
// recomputed inside the same transaction.
func (r *GormRepo) AddCartItem(ctx context.Context, userID uint, item *models.CartItem) (*models.Cart, error) {
	var cart *models.Cart
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := r.getOrCreateCartTx(tx, userID)
		if err != nil {
			return err
		}

		var existing models.CartItem
		err = tx.Where("cart_id = ? AND product_id = ? AND size = ? AND color = ?",
			c.ID, item.ProductID, item.Size, item.Color).
			First(&existing).Error
		switch {
		case err == nil:
			existing.Quantity += item.Quantity
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			item.CartID = c.ID
			if err := tx.Create(item).Error; err != nil {
				return err
			}
		default:
			return err
		}

		cart, err = r.recomputeCartTx(tx, c.ID)
		return err
	})
	return cart, err
}

func (r *GormRepo) UpdateCartItemQuantity(ctx context.Context, userID, itemID uint, quantity int) (*models.Cart, error) {
	var cart *models.Cart
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := r.getOrCreateCartTx(tx, userID)
		if err != nil {
			return err
		}

		var item models.CartItem
		if err := tx.Where("id = ? AND cart_id = ?", itemID, c.ID).First(&item).Error; err != nil {
			return err
		}

		item.Quantity = quantity
		if err := tx.Save(&item).Error; err != nil {
			return err
		}

		cart, err = r.recomputeCartTx(tx, c.ID)
		return err
	})
	return cart, err
}

func (r *GormRepo) RemoveCartItem(ctx context.Context, userID, itemID uint) (*models.Cart, error) {
	var cart *models.Cart
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := r.getOrCreateCartTx(tx, userID)
		if err != nil {
			return err
		}

		res := tx.Where("id = ? AND cart_id = ?", itemID, c.ID).Delete(&models.CartItem{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		cart, err = r.recomputeCartTx(tx, c.ID)
		return err
	})
	return cart, err
}

// ClearCart empties the item list; the cart row itself is kept.
func (r *GormRepo) ClearCart(ctx context.Context, userID uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := r.getOrCreateCartTx(tx, userID)
		if err != nil {
			return err
		}

		if err := tx.Where("cart_id = ?", c.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}

		_, err = r.recomputeCartTx(tx, c.ID)
		return err
	})
}

func (r *GormRepo) getOrCreateCartTx(tx *gorm.DB, userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := tx.Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{UserID: userID}
		err = tx.Create(&cart).Error
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// recomputeCartTx re-derives total_amount and item_count from the item rows;
// they are never written independently of items.
func (r *GormRepo) recomputeCartTx(tx *gorm.DB, cartID uint) (*models.Cart, error) {
	var cart models.Cart
	if err := tx.Preload("Items").First(&cart, cartID).Error; err != nil {
		return nil, err
	}

	total := 0.0
	count := 0
	for _, it := range cart.Items {
		total += it.Price * float64(it.Quantity)
		count += it.Quantity
	}
	cart.TotalAmount = total
	cart.ItemCount = count

	if err := tx.Model(&models.Cart{}).Where("id = ?", cartID).
		Updates(map[string]any{"total_amount": total, "item_count": count}).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}
