package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/senkudev/otaku_shop/internal/logging"
	"github.com/senkudev/otaku_shop/internal/service"
)

type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	userID, err := userIDFromContext(c)
	if err != nil {
		return respondFail(c, http.StatusUnauthorized, "unauthorized")
	}

	cart, err := h.Svc.Get(ctx, userID)
	if err != nil {
		l.Error("get_cart_error", "error", err)
		return respondServiceError(c, err)
	}

	return respondDataCount(c, http.StatusOK, cart, cart.ItemCount)
}

func (h *CartHTTP) AddItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add_item")

	userID, err := userIDFromContext(c)
	if err != nil {
		return respondFail(c, http.StatusUnauthorized, "unauthorized")
	}

	var req struct {
		ProductID uint    `json:"product_id"`
		Name      string  `json:"name"`
		Price     float64 `json:"price"`
		Quantity  int     `json:"quantity"`
		Size      string  `json:"size"`
		Color     string  `json:"color"`
		Image     string  `json:"image"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("add_item_error", "status", 400, "error", err)
		return respondFail(c, http.StatusBadRequest, "invalid body")
	}

	cart, err := h.Svc.AddItem(ctx, userID, service.AddCartItemInput{
		ProductID: req.ProductID,
		Name:      req.Name,
		Price:     req.Price,
		Quantity:  req.Quantity,
		Size:      req.Size,
		Color:     req.Color,
		Image:     req.Image,
	})
	if err != nil {
		l.Warn("add_item_error", "error", err)
		return respondServiceError(c, err)
	}

	return respondDataCount(c, http.StatusOK, cart, cart.ItemCount)
}

func (h *CartHTTP) UpdateQuantity(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.update_quantity")

	userID, err := userIDFromContext(c)
	if err != nil {
		return respondFail(c, http.StatusUnauthorized, "unauthorized")
	}

	var req struct {
		ItemID   uint `json:"item_id"`
		Quantity int  `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil || req.ItemID == 0 {
		l.Warn("update_quantity_error", "status", 400)
		return respondFail(c, http.StatusBadRequest, "item_id required")
	}

	cart, err := h.Svc.UpdateQuantity(ctx, userID, req.ItemID, req.Quantity)
	if err != nil {
		l.Warn("update_quantity_error", "error", err)
		return respondServiceError(c, err)
	}

	return respondDataCount(c, http.StatusOK, cart, cart.ItemCount)
}

func (h *CartHTTP) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove_item")

	userID, err := userIDFromContext(c)
	if err != nil {
		return respondFail(c, http.StatusUnauthorized, "unauthorized")
	}

	itemID, err := strconv.Atoi(c.Param("itemId"))
	if err != nil || itemID <= 0 {
		return respondFail(c, http.StatusBadRequest, "invalid item id")
	}

	cart, err := h.Svc.RemoveItem(ctx, userID, uint(itemID))
	if err != nil {
		l.Warn("remove_item_error", "error", err)
		return respondServiceError(c, err)
	}

	return respondDataCount(c, http.StatusOK, cart, cart.ItemCount)
}

func (h *CartHTTP) Clear(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.clear")

	userID, err := userIDFromContext(c)
	if err != nil {
		return respondFail(c, http.StatusUnauthorized, "unauthorized")
	}

	if err := h.Svc.Clear(ctx, userID); err != nil {
		l.Error("clear_cart_error", "error", err)
		return respondServiceError(c, err)
	}

	return respondMessage(c, http.StatusOK, "cart cleared")
}
