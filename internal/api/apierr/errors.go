package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cardhouse/blackjackd/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeInvalidUser    = "INVALID_USER"
	CodeInvalidGame    = "INVALID_GAME"
	CodeNotFound       = "NOT_FOUND"
	CodeStoreError     = "STORE_ERROR"
	CodeInternalError  = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map session errors
	switch {
	case errors.Is(err, model.ErrInvalidUser):
		return &httpError{http.StatusNotFound, APIError{CodeInvalidUser, "No session for this connection"}}
	case errors.Is(err, model.ErrInvalidGame):
		return &httpError{http.StatusConflict, APIError{CodeInvalidGame, "Session has not joined a game"}}
	case errors.Is(err, model.ErrSessionNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeNotFound, "Session not found"}}
	case errors.Is(err, model.ErrStore):
		return &httpError{http.StatusBadGateway, APIError{CodeStoreError, "Session store unavailable"}}
	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
