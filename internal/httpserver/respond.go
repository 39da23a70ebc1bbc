package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/senkudev/otaku_shop/internal/service"
)

// Envelope is the response shape for every endpoint:
// { success, message?, data?, count? }.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Count   *int   `json:"count,omitempty"`
}

func respondData(c echo.Context, status int, data any) error {
	return c.JSON(status, Envelope{Success: true, Data: data})
}

func respondDataCount(c echo.Context, status int, data any, count int) error {
	return c.JSON(status, Envelope{Success: true, Data: data, Count: &count})
}

func respondMessage(c echo.Context, status int, message string) error {
	return c.JSON(status, Envelope{Success: true, Message: message})
}

func respondMessageData(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, Envelope{Success: true, Message: message, Data: data})
}

func respondFail(c echo.Context, status int, message string) error {
	return c.JSON(status, Envelope{Success: false, Message: message})
}

// respondServiceError maps service sentinels to statuses. Unexpected errors
// come out as a generic 500, their detail stays in the logs.
func respondServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrDuplicateItem):
		return respondFail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrInvalidRefreshToken),
		errors.Is(err, service.ErrMissingToken):
		return respondFail(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrForbidden):
		return respondFail(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrNotFound):
		return respondFail(c, http.StatusNotFound, err.Error())
	default:
		return respondFail(c, http.StatusInternalServerError, "internal server error")
	}
}

// HTTPErrorHandler renders echo-level errors (middleware rejections, unknown
// routes) in the same envelope.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := "internal server error"
	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		if msg, ok := he.Message.(string); ok {
			message = msg
		} else {
			message = http.StatusText(status)
		}
	}

	_ = respondFail(c, status, message)
}
