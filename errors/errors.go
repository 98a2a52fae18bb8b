package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrWorkerPanic        = fmt.Errorf("worker panic")
	ErrHandlerPanic       = fmt.Errorf("handler panic")
	ErrNotAuthorized      = fmt.Errorf("not authorized")
	ErrValidation         = fmt.Errorf("validation failure")
	ErrUnsupportedTarget  = fmt.Errorf("unsupported target")
	ErrStorage            = fmt.Errorf("storage fault")
	ErrConnectionNotFound = fmt.Errorf("connection not found in registry")
	ErrMissingRoom        = fmt.Errorf("no <room> provided for player connection")
	ErrMissingPlayer      = fmt.Errorf("no <player> provided for player connection")
	ErrMissingElementID   = fmt.Errorf("no element_id parameter provided")
	ErrChannelClosed      = fmt.Errorf("channel closed")
	ErrChannelFull        = fmt.Errorf("channel outbound buffer full")
)

// NotAuthorizedError carries the reason sent back to the client as a close message.
type NotAuthorizedError struct {
	Reason string
}

func NewNotAuthorized(reason string) NotAuthorizedError {
	return NotAuthorizedError{Reason: reason}
}

func (e NotAuthorizedError) Error() string { return e.Reason }

func (e NotAuthorizedError) Unwrap() error { return ErrNotAuthorized }

// ValidationErrors maps a field name to its violation messages.
// It is serialized as-is to the client.
type ValidationErrors map[string][]string

func (v ValidationErrors) Add(field, message string) {
	v[field] = append(v[field], message)
}

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(v[field], ", ")))
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(parts, "; "))
}

func (v ValidationErrors) Unwrap() error { return ErrValidation }

// Is and As are re-exported so callers only import this package.
func Is(err, target error) bool { return errors.Is(err, target) }

func As(err error, target any) bool { return errors.As(err, target) }
