package model

import "errors"

// Common errors used across the application
var (
	// ErrInvalidUser means no session matched an identity/connection filter
	ErrInvalidUser = errors.New("invalid user")

	// ErrInvalidGame means the session exists but has not joined a game
	ErrInvalidGame = errors.New("invalid game")

	// ErrSessionNotFound means an update or delete targeted no matching record
	ErrSessionNotFound = errors.New("session not found")

	// ErrStore wraps failures of the underlying store that are opaque to
	// this layer (connectivity, constraint violations, panics)
	ErrStore = errors.New("store operation failed")
)
