package scripture

import (
	"errors"
	"fmt"
)

// Sentinel errors for provider operations.
var (
	// ErrProviderUnavailable means the provider could not be reached or
	// answered with a non-success status.
	ErrProviderUnavailable = errors.New("scripture: provider unavailable")
	// ErrProviderError means the provider answered 200 with a body that
	// could not be decoded or had an unexpected shape.
	ErrProviderError = errors.New("scripture: unexpected provider response")
	// ErrVerseOutOfRange means the requested verses are not in the chapter.
	ErrVerseOutOfRange = errors.New("scripture: verse out of range")
)

// Error wraps a provider failure with operation context.
type Error struct {
	Op     string // "chapter", "books", "translations"
	Path   string
	Status int // HTTP status when one was received
	Err    error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("scripture %s [%s] status %d: %v", e.Op, e.Path, e.Status, e.Err)
	}
	return fmt.Sprintf("scripture %s [%s]: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func wrapError(op, path string, status int, err error) error {
	return &Error{Op: op, Path: path, Status: status, Err: err}
}
