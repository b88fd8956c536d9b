package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so the HTTP boundary can map it to an accurate
// status without inspecting error strings.
type Kind int

const (
	KindUnknown Kind = iota
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindInvalidArgument
	KindInvalidState
)

// Error is the single error type returned by the booking core and the
// authorization guard. Entity and Key are set for not-found failures.
type Error struct {
	Kind    Kind
	Entity  string
	Key     string
	Message string
}

func (e *Error) Error() string {
	if e.Kind == KindNotFound && e.Entity != "" {
		return fmt.Sprintf("%s not found: %s", e.Entity, e.Key)
	}
	return e.Message
}

// Unauthenticated reports that a principal was required but absent.
func Unauthenticated(message string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: message}
}

// Forbidden reports that the principal lacks ownership or a required role.
func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// NotFound reports a missing user, tour or booking by its lookup key.
func NotFound(entity, key string) *Error {
	return &Error{Kind: KindNotFound, Entity: entity, Key: key}
}

// InvalidArgument reports malformed input, e.g. a party size below 1.
func InvalidArgument(message string) *Error {
	return &Error{Kind: KindInvalidArgument, Message: message}
}

// InvalidState reports an operation that is not valid for the resource's
// current state, e.g. booking an unavailable tour or re-cancelling a
// cancelled booking.
func InvalidState(message string) *Error {
	return &Error{Kind: KindInvalidState, Message: message}
}

// KindOf extracts the classification of err, or KindUnknown for errors that
// did not originate in this package.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given classification.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
