package httpserver

import (
	"errors"

	"github.com/labstack/echo/v4"
)

func userIDFromContext(c echo.Context) (uint, error) {
	id, ok := c.Get("user_id").(uint)
	if !ok || id == 0 {
		return 0, errors.New("unauthorized")
	}
	return id, nil
}

func roleFromContext(c echo.Context) string {
	role, _ := c.Get("role").(string)
	return role
}
