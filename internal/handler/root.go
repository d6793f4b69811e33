package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const serviceVersion = "1.0.0"

// Root serves service metadata so clients can discover the API surface.
func Root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"message": "Welcome to the Todo API!",
		"version": serviceVersion,
		"endpoints": map[string]string{
			"health": "/api/health",
			"todos":  "/api/todos",
		},
	})
}
