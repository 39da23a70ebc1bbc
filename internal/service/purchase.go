package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/senkudev/otaku_shop/internal/logging"
	"github.com/senkudev/otaku_shop/internal/models"
	"github.com/senkudev/otaku_shop/internal/mykafka"
	"github.com/senkudev/otaku_shop/internal/repo"
)

type PurchaseService struct {
	Repo     *repo.GormRepo
	Producer *mykafka.Producer
}

type PurchaseItemInput struct {
	ProductID uint
	Name      string
	Price     float64
	Quantity  int
	Size      string
	Color     string
}

type CreatePurchaseInput struct {
	Items           []PurchaseItemInput
	TotalAmount     float64
	PaymentMethod   string
	PaymentID       string
	ShippingAddress models.Address
	Notes           string
}

var paymentMethods = map[string]bool{
	models.PaymentStripe:   true,
	models.PaymentPayPal:   true,
	models.PaymentRazorpay: true,
	models.PaymentCOD:      true,
}

var purchaseStatuses = map[string]bool{
	models.StatusPending:    true,
	models.StatusProcessing: true,
	models.StatusShipped:    true,
	models.StatusDelivered:  true,
	models.StatusCancelled:  true,
	models.StatusRefunded:   true,
	models.StatusCompleted:  true,
}

// Create records the order with status always pending; payment confirmation
// arrives later through UpdateStatus. The caller's cart is cleared afterwards
// as a second saga step: if the clear fails the purchase stands and the
// failure is surfaced as a warning, never a rollback.
func (s *PurchaseService) Create(ctx context.Context, userID uint, in CreatePurchaseInput) (*models.Purchase, string, error) {
	l := logging.FromContext(ctx).With("svc", "purchase.create")

	if len(in.Items) == 0 {
		return nil, "", fmt.Errorf("%w: items required", ErrValidation)
	}
	if in.TotalAmount <= 0 {
		return nil, "", fmt.Errorf("%w: total_amount must be > 0", ErrValidation)
	}
	if !paymentMethods[in.PaymentMethod] {
		return nil, "", fmt.Errorf("%w: payment_method required", ErrValidation)
	}

	items := make([]models.PurchaseItem, 0, len(in.Items))
	for i := range in.Items {
		it := in.Items[i]
		if it.ProductID == 0 {
			return nil, "", fmt.Errorf("%w: product_id required", ErrValidation)
		}
		if it.Name == "" {
			return nil, "", fmt.Errorf("%w: item name required", ErrValidation)
		}
		if it.Price <= 0 {
			return nil, "", fmt.Errorf("%w: item price must be > 0", ErrValidation)
		}
		if it.Quantity < 1 {
			return nil, "", fmt.Errorf("%w: item quantity must be >= 1", ErrValidation)
		}
		items = append(items, models.PurchaseItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
			Size:      it.Size,
			Color:     it.Color,
		})
	}

	purchase := &models.Purchase{
		UserID:          userID,
		Status:          models.StatusPending,
		TotalAmount:     in.TotalAmount,
		PaymentMethod:   in.PaymentMethod,
		PaymentID:       in.PaymentID,
		ShippingAddress: in.ShippingAddress,
		Notes:           in.Notes,
		Items:           items,
	}
	if err := s.Repo.CreatePurchase(ctx, purchase); err != nil {
		return nil, "", err
	}

	warning := ""
	if err := s.Repo.ClearCart(ctx, userID); err != nil {
		l.Warn("cart_clear_after_purchase_failed", "user_id", userID, "purchase_id", purchase.ID, "error", err)
		warning = "purchase created but cart could not be cleared"
	}

	s.publish(ctx, userID, map[string]any{
		"type":        "purchase_created",
		"user_id":     userID,
		"purchase_id": purchase.ID,
		"total":       purchase.TotalAmount,
		"method":      purchase.PaymentMethod,
	})

	l.Info("purchase_created", "user_id", userID, "purchase_id", purchase.ID)
	return purchase, warning, nil
}

func (s *PurchaseService) Get(ctx context.Context, purchaseID, actorID uint, actorRole string) (*models.Purchase, error) {
	purchase, err := s.Repo.FindPurchaseByID(ctx, purchaseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: purchase %d", ErrNotFound, purchaseID)
		}
		return nil, err
	}
	if purchase.UserID != actorID && !models.IsAdminRole(actorRole) {
		return nil, ErrForbidden
	}
	return purchase, nil
}

// UpdateStatus allows any status to follow any other; only ownership and role
// are enforced. delivered is the one transition that stamps a timestamp.
func (s *PurchaseService) UpdateStatus(ctx context.Context, purchaseID uint, newStatus string, actorID uint, actorRole string) (*models.Purchase, error) {
	if !purchaseStatuses[newStatus] {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, newStatus)
	}

	purchase, err := s.Repo.FindPurchaseByID(ctx, purchaseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: purchase %d", ErrNotFound, purchaseID)
		}
		return nil, err
	}
	if purchase.UserID != actorID && !models.IsAdminRole(actorRole) {
		return nil, ErrForbidden
	}

	purchase.Status = newStatus
	if newStatus == models.StatusDelivered {
		now := time.Now()
		purchase.DeliveredAt = &now
	}
	if err := s.Repo.SavePurchase(ctx, purchase); err != nil {
		return nil, err
	}

	s.publish(ctx, purchase.UserID, map[string]any{
		"type":        "purchase_status_changed",
		"purchase_id": purchase.ID,
		"status":      newStatus,
	})
	return purchase, nil
}

func (s *PurchaseService) ListForUser(ctx context.Context, userID uint, limit, offset int) ([]models.Purchase, error) {
	return s.Repo.ListPurchasesByUser(ctx, userID, limit, offset)
}

func (s *PurchaseService) ListAll(ctx context.Context, actorRole string, limit, offset int) ([]models.Purchase, error) {
	if !models.IsAdminRole(actorRole) {
		return nil, ErrForbidden
	}
	return s.Repo.ListAllPurchases(ctx, limit, offset)
}

func (s *PurchaseService) publish(ctx context.Context, userID uint, event map[string]any) {
	if err := s.Producer.PublishEvent(ctx, "order_events", fmt.Sprint(userID), event); err != nil {
		logging.FromContext(ctx).Error("kafka_publish_failed", "topic", "order_events", "error", err)
	}
}
