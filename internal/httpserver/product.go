package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/senkudev/otaku_shop/internal/logging"
	"github.com/senkudev/otaku_shop/internal/repo"
	"github.com/senkudev/otaku_shop/internal/service"
)

type ProductHTTP struct {
	Svc *service.ProductService
}

type productRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	InStock     *bool    `json:"in_stock"`
	Featured    *bool    `json:"featured"`
	Image       string   `json:"image"`
	Tags        []string `json:"tags"`
}

func (h *ProductHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.list")

	filter := repo.ProductFilter{Category: c.QueryParam("category")}
	if v := c.QueryParam("featured"); v != "" {
		b := v == "true"
		filter.Featured = &b
	}
	if v := c.QueryParam("in_stock"); v != "" {
		b := v == "true"
		filter.InStock = &b
	}

	offset, limit := pageParams(c)
	products, total, err := h.Svc.List(ctx, filter, limit, offset)
	if err != nil {
		l.Error("list_products_error", "error", err)
		return respondServiceError(c, err)
	}

	return respondDataCount(c, http.StatusOK, products, int(total))
}

func (h *ProductHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return respondFail(c, http.StatusBadRequest, "invalid product id")
	}

	product, err := h.Svc.Get(ctx, uint(id))
	if err != nil {
		l.Warn("get_product_error", "error", err)
		return respondServiceError(c, err)
	}

	return respondData(c, http.StatusOK, product)
}

func (h *ProductHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return respondFail(c, http.StatusBadRequest, "invalid body")
	}

	product, err := h.Svc.Create(ctx, service.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		InStock:     req.InStock,
		Featured:    req.Featured,
		Image:       req.Image,
		Tags:        req.Tags,
	})
	if err != nil {
		l.Warn("create_product_error", "error", err)
		return respondServiceError(c, err)
	}

	return respondData(c, http.StatusCreated, product)
}

func (h *ProductHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return respondFail(c, http.StatusBadRequest, "invalid product id")
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return respondFail(c, http.StatusBadRequest, "invalid body")
	}

	product, err := h.Svc.Update(ctx, uint(id), service.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		InStock:     req.InStock,
		Featured:    req.Featured,
		Image:       req.Image,
		Tags:        req.Tags,
	})
	if err != nil {
		l.Warn("update_product_error", "error", err)
		return respondServiceError(c, err)
	}

	return respondData(c, http.StatusOK, product)
}

func (h *ProductHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return respondFail(c, http.StatusBadRequest, "invalid product id")
	}

	if err := h.Svc.Delete(ctx, uint(id)); err != nil {
		l.Warn("delete_product_error", "error", err)
		return respondServiceError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
