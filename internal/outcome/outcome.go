// Package outcome is the uniform calling convention for store-facing
// operations: run the operation, and always come back with a (value, error)
// pair. A panic inside the operation never escapes to the caller; it is
// converted into the error slot as a store failure.
package outcome

import (
	"errors"
	"fmt"

	"github.com/cardhouse/blackjackd/internal/model"
)

// Do executes fn and returns its result, converting any panic into an
// error wrapping model.ErrStore. Exactly one of (value, error) is
// meaningful to the caller.
func Do[T any](fn func() (T, error)) (val T, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			val = zero
			err = fmt.Errorf("%w: panic: %v", model.ErrStore, r)
		}
	}()
	return fn()
}

// Do0 is Do for operations with no result value.
func Do0(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", model.ErrStore, r)
		}
	}()
	return fn()
}

// Normalize maps an error into the session error taxonomy. Errors already
// in the taxonomy pass through untouched so callers can branch on them;
// anything else is opaque to this layer and wrapped as a store failure.
func Normalize(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, model.ErrInvalidUser),
		errors.Is(err, model.ErrInvalidGame),
		errors.Is(err, model.ErrSessionNotFound),
		errors.Is(err, model.ErrStore):
		return err
	default:
		return fmt.Errorf("%w: %v", model.ErrStore, err)
	}
}
