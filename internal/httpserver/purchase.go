package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/senkudev/otaku_shop/internal/logging"
	"github.com/senkudev/otaku_shop/internal/models"
	"github.com/senkudev/otaku_shop/internal/service"
	"github.com/senkudev/otaku_shop/internal/util"
)

type PurchaseHTTP struct {
	Svc *service.PurchaseService
}

type purchaseItemRequest struct {
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Size      string  `json:"size"`
	Color     string  `json:"color"`
}

func (h *PurchaseHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "purchase.create")

	userID, err := userIDFromContext(c)
	if err != nil {
		return respondFail(c, http.StatusUnauthorized, "unauthorized")
	}

	var req struct {
		Items           []purchaseItemRequest `json:"items"`
		TotalAmount     float64               `json:"total_amount"`
		PaymentMethod   string                `json:"payment_method"`
		PaymentID       string                `json:"payment_id"`
		ShippingAddress models.Address        `json:"shipping_address"`
		Notes           string                `json:"notes"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("create_purchase_error", "status", 400, "error", err)
		return respondFail(c, http.StatusBadRequest, "invalid body")
	}

	items := make([]service.PurchaseItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, service.PurchaseItemInput{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
			Size:      it.Size,
			Color:     it.Color,
		})
	}

	purchase, warning, err := h.Svc.Create(ctx, userID, service.CreatePurchaseInput{
		Items:           items,
		TotalAmount:     req.TotalAmount,
		PaymentMethod:   req.PaymentMethod,
		PaymentID:       req.PaymentID,
		ShippingAddress: req.ShippingAddress,
		Notes:           req.Notes,
	})
	if err != nil {
		l.Warn("create_purchase_error", "error", err)
		return respondServiceError(c, err)
	}

	if warning != "" {
		return respondMessageData(c, http.StatusCreated, warning, purchase)
	}
	return respondData(c, http.StatusCreated, purchase)
}

func (h *PurchaseHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "purchase.get")

	userID, err := userIDFromContext(c)
	if err != nil {
		return respondFail(c, http.StatusUnauthorized, "unauthorized")
	}

	purchaseID, err := strconv.Atoi(c.Param("id"))
	if err != nil || purchaseID <= 0 {
		return respondFail(c, http.StatusBadRequest, "invalid purchase id")
	}

	purchase, err := h.Svc.Get(ctx, uint(purchaseID), userID, roleFromContext(c))
	if err != nil {
		l.Warn("get_purchase_error", "error", err)
		return respondServiceError(c, err)
	}

	return respondData(c, http.StatusOK, purchase)
}

func (h *PurchaseHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "purchase.list")

	userID, err := userIDFromContext(c)
	if err != nil {
		return respondFail(c, http.StatusUnauthorized, "unauthorized")
	}

	offset, limit := pageParams(c)
	purchases, err := h.Svc.ListForUser(ctx, userID, limit, offset)
	if err != nil {
		l.Error("list_purchases_error", "error", err)
		return respondServiceError(c, err)
	}

	return respondDataCount(c, http.StatusOK, purchases, len(purchases))
}

func (h *PurchaseHTTP) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "purchase.update_status")

	userID, err := userIDFromContext(c)
	if err != nil {
		return respondFail(c, http.StatusUnauthorized, "unauthorized")
	}

	purchaseID, err := strconv.Atoi(c.Param("id"))
	if err != nil || purchaseID <= 0 {
		return respondFail(c, http.StatusBadRequest, "invalid purchase id")
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil || req.Status == "" {
		return respondFail(c, http.StatusBadRequest, "status required")
	}

	purchase, err := h.Svc.UpdateStatus(ctx, uint(purchaseID), req.Status, userID, roleFromContext(c))
	if err != nil {
		l.Warn("update_status_error", "error", err)
		return respondServiceError(c, err)
	}

	return respondData(c, http.StatusOK, purchase)
}

func (h *PurchaseHTTP) ListAll(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "purchase.list_all")

	offset, limit := pageParams(c)
	purchases, err := h.Svc.ListAll(ctx, roleFromContext(c), limit, offset)
	if err != nil {
		l.Warn("list_all_error", "error", err)
		return respondServiceError(c, err)
	}

	return respondDataCount(c, http.StatusOK, purchases, len(purchases))
}

func pageParams(c echo.Context) (offset, limit int) {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	return util.Calculate(page, size)
}
