// Package server provides the HTTP API for the TalentScout hiring assistant.
package server

import (
	"fmt"
	"net/http"
)

// ErrSessionNotFound indicates the chat session does not exist.
type ErrSessionNotFound struct {
	SessionID string
}

func (e *ErrSessionNotFound) Error() string {
	return fmt.Sprintf("session not found: %s", e.SessionID)
}

// ErrProfileNotFound indicates no candidate profile exists for the session.
type ErrProfileNotFound struct {
	SessionID string
}

func (e *ErrProfileNotFound) Error() string {
	return fmt.Sprintf("candidate profile not found: %s", e.SessionID)
}

// ErrValidation indicates request validation failure.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error.
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrSessionNotFound, *ErrProfileNotFound:
		return http.StatusNotFound
	case *ErrValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
