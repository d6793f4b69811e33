package handler // handler package contains the todo CRUD handlers

import (
	"context"  // context carries request-scoped deadlines to side effects
	"errors"   // errors matches repository sentinel values
	"log"      // log records best-effort side effect failures
	"net/http" // http provides status code constants
	"strconv"  // strconv parses string identifiers to numeric types
	"strings"  // strings offers trimming utilities

	"github.com/labstack/echo/v4" // echo is the web framework used for handlers

	"todoapi/internal/middleware" // middleware provides the cache invalidator
	"todoapi/internal/model"      // model holds the todo entity and patch types
	"todoapi/internal/queue"      // queue defines the lifecycle event payloads
	"todoapi/internal/repository" // repository holds the data access layer
)

// Publisher delivers todo lifecycle events to interested consumers.
type Publisher interface {
	Publish(ctx context.Context, event queue.TodoEvent) error
}

// TodoHandler bundles the dependencies of the todo endpoints. Events and
// Cache are optional; leaving them nil disables event publishing and cache
// invalidation, which is how isolated test instances run.
type TodoHandler struct {
	Repo   *repository.TodoRepo    // Repo provides todo persistence
	Events Publisher               // Events receives lifecycle events, may be nil
	Cache  *middleware.Invalidator // Cache purges stale responses, may be nil
}

// NewTodoHandler constructs a TodoHandler and panics if the repository is nil.
func NewTodoHandler(repo *repository.TodoRepo) *TodoHandler {
	if repo == nil {
		panic("nil repository passed to NewTodoHandler")
	}
	return &TodoHandler{Repo: repo}
}

// parseID extracts the :id path parameter. Non-numeric and non-positive
// values report failure; callers answer with the generic 404 body so a
// malformed id behaves exactly like an unmatched route.
func parseID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// afterMutation performs the best-effort side effects of a successful write:
// cached GET responses are purged and a lifecycle event is published.
// Failures are logged and never surface to the client; the write itself has
// already committed.
func (h *TodoHandler) afterMutation(c echo.Context, action string, t *model.Todo) {
	ctx := c.Request().Context()
	if h.Cache != nil {
		if err := h.Cache.Invalidate(ctx); err != nil {
			log.Printf("cache: invalidate after %s failed: %v", action, err)
		}
	}
	if h.Events != nil {
		if err := h.Events.Publish(ctx, queue.NewTodoEvent(action, t)); err != nil {
			log.Printf("events: publish %s failed: %v", action, err)
		}
	}
}

// List handles GET /api/todos and returns every todo, newest created first.
func (h *TodoHandler) List(c echo.Context) error {
	todos, err := h.Repo.ListAll(c.Request().Context()) // fetch all todos ordered newest first
	if err != nil {                                     // any storage failure maps to a plain 500
		return c.JSON(http.StatusInternalServerError, map[string]any{"success": false, "error": "Database error"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"count":   len(todos),
		"data":    todos,
	})
}

// Create handles POST /api/todos. Title is the only validated input: it
// must be present and non-blank after trimming. Description is optional and
// defaults to the empty string.
func (h *TodoHandler) Create(c echo.Context) error {
	var body struct { // anonymous struct to bind incoming JSON
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := c.Bind(&body); err != nil { // a missing or malformed body cannot carry a title
		return c.JSON(http.StatusBadRequest, map[string]any{"success": false, "error": "Title is required"})
	}
	title := strings.TrimSpace(body.Title) // trim spaces around the title
	if title == "" {                       // ensure the title is not empty after trimming
		return c.JSON(http.StatusBadRequest, map[string]any{"success": false, "error": "Title is required"})
	}

	todo := &model.Todo{
		Title:       title,
		Description: body.Description,
	}
	if err := h.Repo.Create(c.Request().Context(), todo); err != nil { // delegate creation to the repository
		return c.JSON(http.StatusInternalServerError, map[string]any{"success": false, "error": "Database error"})
	}

	h.afterMutation(c, queue.ActionCreated, todo)
	return c.JSON(http.StatusCreated, map[string]any{
		"success": true,
		"data":    todo,
		"message": "Todo created successfully",
	})
}

// Get handles GET /api/todos/:id and returns a single todo.
func (h *TodoHandler) Get(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return NotFound(c)
	}
	todo, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrTodoNotFound) {
			return NotFound(c)
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"success": false, "error": "Database error"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"data":    todo,
	})
}

// Update handles PUT /api/todos/:id. Fields absent from the body keep their
// stored values; fields present overwrite them, including completed=false.
// A supplied title must remain non-blank after trimming, so the title-never-
// empty invariant holds on update as well as on create.
func (h *TodoHandler) Update(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return NotFound(c)
	}
	var patch model.TodoPatch
	if err := c.Bind(&patch); err != nil { // bind the partial update; nil fields were absent
		return c.JSON(http.StatusBadRequest, map[string]any{"success": false, "error": "Invalid request body"})
	}
	if patch.Title != nil { // validate the title only when the client supplied one
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return c.JSON(http.StatusBadRequest, map[string]any{"success": false, "error": "Title is required"})
		}
		patch.Title = &title
	}

	todo, err := h.Repo.Update(c.Request().Context(), id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrTodoNotFound) {
			return NotFound(c)
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"success": false, "error": "Database error"})
	}

	h.afterMutation(c, queue.ActionUpdated, todo)
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"data":    todo,
		"message": "Todo updated successfully",
	})
}

// Delete handles DELETE /api/todos/:id. The todo is fetched first so the
// published event carries its final state; a second delete of the same id
// answers 404.
func (h *TodoHandler) Delete(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return NotFound(c)
	}
	todo, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrTodoNotFound) {
			return NotFound(c)
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"success": false, "error": "Database error"})
	}
	if err := h.Repo.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrTodoNotFound) { // deleted concurrently between fetch and delete
			return NotFound(c)
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"success": false, "error": "Database error"})
	}

	h.afterMutation(c, queue.ActionDeleted, todo)
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"message": "Todo deleted successfully",
	})
}
