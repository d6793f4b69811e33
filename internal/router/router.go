package router // package router defines how HTTP routes are registered for the API

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"            // import the Echo web framework to handle routing
	echomw "github.com/labstack/echo/v4/middleware" // echo's built-in middleware (panic recovery)

	"todoapi/internal/handler" // import the handlers that implement business logic
)

// RegisterRoutes wires every API route plus the process-wide error handling
// onto the provided Echo instance. cacheMW and limitMW come from the
// middleware package and are passthroughs when Redis is not configured.
func RegisterRoutes(e *echo.Echo, todos *handler.TodoHandler, health *handler.HealthHandler, cacheMW, limitMW echo.MiddlewareFunc) {
	// Panics and returned errors funnel into errorHandler, which rolls them
	// up into the generic JSON bodies. The repository has already rolled
	// back any open transaction by the time an error reaches this point.
	e.HTTPErrorHandler = errorHandler
	e.Use(echomw.Recover())
	e.Use(limitMW)

	// Service metadata and liveness.
	e.GET("/", handler.Root)
	e.GET("/api/health", health.Check)

	// Todo CRUD. Only the read endpoints run through the response cache;
	// the write endpoints purge it themselves after a commit.
	g := e.Group("/api/todos")
	g.GET("", todos.List, cacheMW)
	g.POST("", todos.Create)
	g.GET("/:id", todos.Get, cacheMW)
	g.PUT("/:id", todos.Update)
	g.DELETE("/:id", todos.Delete)
}

// errorHandler translates everything that escapes a handler into the
// uniform JSON error surface: unmatched routes get the resource-not-found
// body, other framework errors keep their status with a terse body, and
// anything unexpected becomes the generic 500.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		switch he.Code {
		case http.StatusNotFound:
			_ = handler.NotFound(c)
			return
		case http.StatusInternalServerError:
			// fall through to the generic body below
		default:
			_ = c.JSON(he.Code, map[string]any{
				"success": false,
				"error":   http.StatusText(he.Code),
			})
			return
		}
	}
	log.Printf("http: unhandled error on %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	_ = handler.InternalError(c)
}
