package client

import (
	"errors"
	"fmt"
)

// ErrNotAuthenticated is returned when a directory call has no token
var ErrNotAuthenticated = errors.New("not logged in")

// ValidationError rejects input before any request is sent
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// AuthError is a 401/403 answer from the API
type AuthError struct {
	Status  int
	Message string
}

func (e *AuthError) Error() string { return e.Message }

// ServerError is any other non-2xx answer
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error (%d): %s", e.Status, e.Message)
}

// NetworkError means no response was received
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return "network error: " + e.Err.Error() }
func (e *NetworkError) Unwrap() error { return e.Err }

// TimeoutError means the request deadline passed before a response
type TimeoutError struct {
	Err error
}

func (e *TimeoutError) Error() string { return "request timed out: " + e.Err.Error() }
func (e *TimeoutError) Unwrap() error { return e.Err }

// Message returns the text a screen should show for err
func Message(err error) string {
	var (
		ve *ValidationError
		ae *AuthError
		se *ServerError
		te *TimeoutError
		ne *NetworkError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &ve):
		return ve.Error()
	case errors.As(err, &ae):
		return ae.Message
	case errors.As(err, &se):
		return se.Message
	case errors.As(err, &te):
		return "The server took too long to answer. Please try again."
	case errors.As(err, &ne):
		return "Could not reach the server. Check your connection."
	case errors.Is(err, ErrNotAuthenticated):
		return "Please log in first."
	}
	return "Something went wrong. Please try again."
}
