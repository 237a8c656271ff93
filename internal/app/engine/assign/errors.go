// internal/app/engine/assign/errors.go
package assign

import (
	"errors"
	"fmt"
)

// Kind discriminates assignment-run failures. Solver failures are not a
// kind: the optimizer policy recovers them internally and they never reach
// callers as errors.
type Kind string

const (
	// KindValidation: the request was rejected before any computation
	// (missing field, room size < 2, invalid size range, empty pool, pool
	// smaller than one room).
	KindValidation Kind = "validation"

	// KindNotFound: a referenced scope or question does not exist.
	KindNotFound Kind = "not_found"

	// KindPersistence: the atomic commit (or a pre-commit read) failed. The
	// computed partition is discarded; a retry recomputes from scratch.
	KindPersistence Kind = "persistence"
)

// Error is the discriminated failure of an assignment run.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf extracts the failure kind, defaulting unknown errors to
// persistence (the only kind a caller can safely retry).
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindPersistence
}

func validationf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func notFoundf(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func persistence(message string, err error) *Error {
	return &Error{Kind: KindPersistence, Message: message, Err: err}
}
