// Package market defines the error taxonomy shared by the lifecycle engine.
//
// Every failure a service reports is a *market.Error carrying one of the five
// kinds below. Transport adapters map kinds to protocol status codes; services
// stay free of net/http.
package market

import "errors"

// Kind classifies a marketplace failure.
type Kind string

const (
	// KindValidation is malformed or missing caller input. Never retried.
	KindValidation Kind = "validation"
	// KindNotFound means a referenced invoice, bid or actor does not exist.
	KindNotFound Kind = "not_found"
	// KindForbidden means the caller is authenticated but the role or
	// ownership check failed.
	KindForbidden Kind = "forbidden"
	// KindConflict is a valid request that violates a state invariant:
	// duplicate phone, duplicate bid, already-approved invoice.
	KindConflict Kind = "conflict"
	// KindUnauthenticated means no valid session accompanies the request.
	KindUnauthenticated Kind = "unauthenticated"
)

// Error is a classified marketplace error.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// Is matches any *Error of the same kind, so callers can test
// errors.Is(err, market.Validation("")) style sentinels by kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

// Validation returns a KindValidation error.
func Validation(msg string) *Error { return &Error{Kind: KindValidation, Message: msg} }

// NotFound returns a KindNotFound error.
func NotFound(msg string) *Error { return &Error{Kind: KindNotFound, Message: msg} }

// Forbidden returns a KindForbidden error.
func Forbidden(msg string) *Error { return &Error{Kind: KindForbidden, Message: msg} }

// Conflict returns a KindConflict error.
func Conflict(msg string) *Error { return &Error{Kind: KindConflict, Message: msg} }

// Unauthenticated returns a KindUnauthenticated error.
func Unauthenticated(msg string) *Error { return &Error{Kind: KindUnauthenticated, Message: msg} }

// KindOf extracts the kind from err, or "" if err is not a marketplace error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
