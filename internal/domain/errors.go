package domain

import "errors"

var (
	// ErrNotFound signals that the requested resource does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnavailable signals a transient backend or network failure.
	ErrUnavailable = errors.New("service unavailable")
)

// ConflictError is returned when the backend rejects a batch with HTTP 409
// because a CPF already holds a confirmed registration for the event. The
// server message contains the conflicting CPF.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}
