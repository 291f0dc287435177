// Package server provides the HTTP REST API for the resume fixer.
package server

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// ErrRunNotFound indicates the requested fix run does not exist
type ErrRunNotFound struct {
	RunID uuid.UUID
}

func (e *ErrRunNotFound) Error() string {
	return fmt.Sprintf("run not found: %s", e.RunID)
}

// ErrNoDatabase indicates a persistence endpoint was hit while the server
// runs without a database
type ErrNoDatabase struct{}

func (e *ErrNoDatabase) Error() string {
	return "run persistence is not configured"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrUnauthorized indicates a missing or wrong API key
type ErrUnauthorized struct{}

func (e *ErrUnauthorized) Error() string {
	return "invalid or missing API key"
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrRunNotFound:
		return http.StatusNotFound
	case *ErrNoDatabase:
		return http.StatusServiceUnavailable
	case *ErrValidation:
		return http.StatusBadRequest
	case *ErrUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
