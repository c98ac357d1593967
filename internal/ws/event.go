package ws

import (
	"encoding/json"
	"errors"

	"github.com/cardhouse/blackjackd/internal/model"
)

// Event is an inbound message on a player connection
type Event struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Result statuses
const (
	StatusOK           = "OK"
	StatusRequestError = "REQUEST_ERROR"
)

// Stable error codes consumed by clients to branch without string-matching
// prose messages
const (
	CodeInvalidUser   = "INVALID_USER"
	CodeInvalidGame   = "INVALID_GAME"
	CodeNotFound      = "NOT_FOUND"
	CodeStoreError    = "STORE_ERROR"
	CodeUnknownAction = "UNKNOWN_ACTION"
	CodeInternalError = "INTERNAL_ERROR"
)

// Result is the reply envelope for every event. On success Error is null
// and Content carries the reply; on failure Error carries a stable code.
type Result struct {
	Status  string  `json:"status"`
	Content any     `json:"content,omitempty"`
	Error   *string `json:"error"`
}

// OK builds a success result
func OK(content any) Result {
	return Result{Status: StatusOK, Content: content}
}

// RequestError builds a failure result carrying the error's stable code
func RequestError(err error) Result {
	code := ErrorCode(err)
	return Result{Status: StatusRequestError, Error: &code}
}

// ErrorCode maps an error to its wire code
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, model.ErrInvalidUser):
		return CodeInvalidUser
	case errors.Is(err, model.ErrInvalidGame):
		return CodeInvalidGame
	case errors.Is(err, model.ErrSessionNotFound):
		return CodeNotFound
	case errors.Is(err, model.ErrStore):
		return CodeStoreError
	default:
		return CodeInternalError
	}
}
