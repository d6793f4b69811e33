package handler // declare the package name; contains HTTP handlers

import (
	"net/http" // net/http provides status codes and response helpers

	"github.com/labstack/echo/v4" // echo is the web framework used for this project

	"todoapi/internal/repository" // repository provides the storage probe
)

// HealthHandler reports liveness of the service and its storage engine.
// Load balancers and monitoring systems call it to decide whether the
// instance can serve traffic.
type HealthHandler struct {
	Repo *repository.TodoRepo
}

// NewHealthHandler constructs a HealthHandler and panics if the repository
// dependency is nil.
func NewHealthHandler(repo *repository.TodoRepo) *HealthHandler {
	if repo == nil {
		panic("nil repository passed to NewHealthHandler")
	}
	return &HealthHandler{Repo: repo}
}

// Check probes the database with a real query. A reachable database yields
// 200 healthy/connected; anything else yields 503 unhealthy/disconnected
// with the probe error attached.
func (h *HealthHandler) Check(c echo.Context) error {
	if err := h.Repo.Ping(c.Request().Context()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]any{
			"status":   "unhealthy",
			"database": "disconnected",
			"error":    err.Error(),
		})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"status":   "healthy",
		"database": "connected",
	})
}
