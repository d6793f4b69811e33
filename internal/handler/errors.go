package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// NotFound writes the generic resource-not-found body. It is shared by
// unmatched routes and lookups of ids that have no matching todo, so both
// cases are indistinguishable to clients.
func NotFound(c echo.Context) error {
	return c.JSON(http.StatusNotFound, map[string]any{
		"success": false,
		"error":   "Resource not found",
		"message": "The requested URL was not found on the server.",
	})
}

// InternalError writes the generic 500 body. No driver or stack detail is
// ever exposed to clients.
func InternalError(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, map[string]any{
		"success": false,
		"error":   "Internal server error",
		"message": "An unexpected error has occurred. Please try again later.",
	})
}
