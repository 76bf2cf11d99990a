package client

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/yeremiapane/restaurant-pos/models"
)

var (
	// ErrNetwork means the backend could not be reached at all.
	ErrNetwork = errors.New("backend unreachable")
	// ErrUnauthorized means the token is missing, expired or refused.
	ErrUnauthorized = errors.New("not logged in")
	// ErrRejected means the backend refused the request on business grounds.
	ErrRejected = errors.New("rejected by backend")
	ErrNotFound = errors.New("not found")
	// ErrBackend is a 5xx answer.
	ErrBackend     = errors.New("backend error")
	ErrBadResponse = models.ErrBadResponse
	// ErrValidation is shared with form validation done before any call.
	ErrValidation = models.ErrValidation
)

// APIError is a non-2xx answer from the backend.
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
	}
	return e.Message
}

func (e *APIError) Unwrap() []error {
	switch {
	case e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden:
		return []error{ErrUnauthorized}
	case e.StatusCode == http.StatusNotFound:
		return []error{ErrRejected, ErrNotFound}
	case e.StatusCode == http.StatusBadRequest || e.StatusCode == http.StatusUnprocessableEntity:
		return []error{ErrValidation}
	case e.StatusCode >= 500:
		return []error{ErrBackend}
	}
	return []error{ErrRejected}
}

// errorBody covers both {"error": ...} and the {"message": ...} envelope.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// DecodeError is a 2xx answer whose body did not have the expected shape.
type DecodeError struct {
	Method string
	Path   string
	Body   []byte
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s %s: %v", e.Method, e.Path, e.Err)
}

func (e *DecodeError) Unwrap() []error {
	return []error{ErrBadResponse, e.Err}
}
