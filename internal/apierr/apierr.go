// Package apierr classifies remote-call failures into conditions the
// rest of the client acts on, independent of transport detail.
package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is the condition a failed operation maps to.
type Kind int

const (
	// Unknown covers any non-2xx status with no more specific mapping.
	Unknown Kind = iota

	// AuthRequired means the operation was attempted with no active
	// session and was aborted before any network call.
	AuthRequired

	// NotFound means the target no longer exists (remote 404).
	NotFound

	// Unauthorized means the backend rejected the credential (401/403).
	Unauthorized

	// ValidationFailed means the backend rejected the payload (400).
	ValidationFailed

	// Conflict means the resource already exists (409, e.g. username taken).
	Conflict

	// RateLimited means the backend asked the client to back off (429).
	RateLimited

	// NetworkFailure means the request never produced a response.
	NetworkFailure
)

func (k Kind) String() string {
	switch k {
	case AuthRequired:
		return "auth required"
	case NotFound:
		return "not found"
	case Unauthorized:
		return "unauthorized"
	case ValidationFailed:
		return "validation failed"
	case Conflict:
		return "conflict"
	case RateLimited:
		return "rate limited"
	case NetworkFailure:
		return "network failure"
	default:
		return "unknown"
	}
}

// Error carries the classified condition together with whatever the
// backend said. StatusCode is zero for local conditions and transport
// failures.
type Error struct {
	Kind       Kind
	StatusCode int
	Body       string
	Err        error
}

func (e *Error) Error() string {
	switch {
	case e.StatusCode != 0 && e.Body != "":
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
	case e.StatusCode != 0:
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, http.StatusText(e.StatusCode))
	case e.Err != nil:
		return e.Err.Error()
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error { return e.Err }

// FromStatus classifies a non-2xx HTTP response.
func FromStatus(status int, body string) *Error {
	kind := Unknown
	switch status {
	case http.StatusNotFound:
		kind = NotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		kind = Unauthorized
	case http.StatusBadRequest:
		kind = ValidationFailed
	case http.StatusConflict:
		kind = Conflict
	case http.StatusTooManyRequests:
		kind = RateLimited
	}
	return &Error{Kind: kind, StatusCode: status, Body: body}
}

// Network wraps a transport-level failure that produced no response.
func Network(err error) *Error {
	return &Error{Kind: NetworkFailure, Err: err}
}

// New returns an Error for a local condition with no remote counterpart.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Err: errors.New(msg)}
}

// KindOf extracts the condition from err. Errors that did not come out
// of this package classify as Unknown; nil classifies as Unknown too,
// so callers must check err != nil first.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}

// IsKind reports whether err classifies as kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
