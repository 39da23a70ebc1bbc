package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/senkudev/otaku_shop/internal/logging"
	"github.com/senkudev/otaku_shop/internal/service"
)

type WishlistHTTP struct {
	Svc *service.WishlistService
}

func (h *WishlistHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "wishlist.get")

	userID, err := userIDFromContext(c)
	if err != nil {
		return respondFail(c, http.StatusUnauthorized, "unauthorized")
	}

	items, err := h.Svc.Get(ctx, userID)
	if err != nil {
		l.Error("get_wishlist_error", "error", err)
		return respondServiceError(c, err)
	}

	return respondDataCount(c, http.StatusOK, items, len(items))
}

func (h *WishlistHTTP) AddItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "wishlist.add_item")

	userID, err := userIDFromContext(c)
	if err != nil {
		return respondFail(c, http.StatusUnauthorized, "unauthorized")
	}

	var req struct {
		ProductID uint    `json:"product_id"`
		Name      string  `json:"name"`
		Price     float64 `json:"price"`
		Image     string  `json:"image"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("add_item_error", "status", 400, "error", err)
		return respondFail(c, http.StatusBadRequest, "invalid body")
	}

	item, err := h.Svc.AddItem(ctx, userID, service.AddWishlistItemInput{
		ProductID: req.ProductID,
		Name:      req.Name,
		Price:     req.Price,
		Image:     req.Image,
	})
	if err != nil {
		l.Warn("add_item_error", "error", err)
		return respondServiceError(c, err)
	}

	return respondData(c, http.StatusCreated, item)
}

func (h *WishlistHTTP) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "wishlist.remove_item")

	userID, err := userIDFromContext(c)
	if err != nil {
		return respondFail(c, http.StatusUnauthorized, "unauthorized")
	}

	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil || productID <= 0 {
		return respondFail(c, http.StatusBadRequest, "invalid product id")
	}

	if err := h.Svc.RemoveItem(ctx, userID, uint(productID)); err != nil {
		l.Warn("remove_item_error", "error", err)
		return respondServiceError(c, err)
	}

	return respondMessage(c, http.StatusOK, "removed from wishlist")
}

func (h *WishlistHTTP) Clear(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "wishlist.clear")

	userID, err := userIDFromContext(c)
	if err != nil {
		return respondFail(c, http.StatusUnauthorized, "unauthorized")
	}

	if err := h.Svc.Clear(ctx, userID); err != nil {
		l.Error("clear_wishlist_error", "error", err)
		return respondServiceError(c, err)
	}

	return respondMessage(c, http.StatusOK, "wishlist cleared")
}

func (h *WishlistHTTP) Contains(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "wishlist.contains")

	userID, err := userIDFromContext(c)
	if err != nil {
		return respondFail(c, http.StatusUnauthorized, "unauthorized")
	}

	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil || productID <= 0 {
		return respondFail(c, http.StatusBadRequest, "invalid product id")
	}

	found, err := h.Svc.Contains(ctx, userID, uint(productID))
	if err != nil {
		l.Error("contains_error", "error", err)
		return respondServiceError(c, err)
	}

	return respondData(c, http.StatusOK, echo.Map{"in_wishlist": found})
}
