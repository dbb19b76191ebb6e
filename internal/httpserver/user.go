package httpserver

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// defaultUserID is the demo identity used when the caller sends no
// X-User-ID header. Authentication is out of scope; every operation still
// threads an explicit user id so multi-user behavior works without
// redesign.
const defaultUserID uint = 1

func userID(c echo.Context) uint {
	h := c.Request().Header.Get("X-User-ID")
	if h == "" {
		return defaultUserID
	}
	id, err := strconv.ParseUint(h, 10, 32)
	if err != nil || id == 0 {
		return defaultUserID
	}
	return uint(id)
}
