// Package repository contains data access logic separated from HTTP
// handlers. Sentinel values defined here let higher layers distinguish
// failure scenarios without inspecting driver errors: a missing todo maps
// to HTTP 404 while anything else from the storage engine maps to 500.
package repository

import "errors"

// ErrTodoNotFound is returned when no todo row matches the requested id.
// Handlers should translate this into an HTTP 404 response.
var ErrTodoNotFound = errors.New("todo not found")
