package models

import "net/http"

// OutcomeKind tags a resolver result. Every operation that derives data from
// page markup returns one of these instead of raising, so the serving layer
// can mirror it straight into an HTTP status code
type OutcomeKind int

const (
	OutcomeOk          OutcomeKind = iota // Payload is valid
	OutcomeNotFound                       // Expected page marker absent (invalid username)
	OutcomeServerError                    // Page fetched but its shape didn't match
	OutcomeUnavailable                    // Fetch exhausted all retries
)

// String implements fmt.Stringer for logging
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeOk:
		return "ok"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeServerError:
		return "server_error"
	case OutcomeUnavailable:
		return "unavailable"
	}
	return "unknown"
}

// HTTPStatus maps the outcome kind to the status code exposed by the API layer
func (k OutcomeKind) HTTPStatus() int {
	switch k {
	case OutcomeOk:
		return http.StatusOK
	case OutcomeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Outcome is a tagged resolver result: either an Ok value or a typed failure
// with a human-readable message
type Outcome[T any] struct {
	Kind    OutcomeKind
	Value   T
	Message string
}

// Ok wraps a successful payload
func Ok[T any](v T) Outcome[T] {
	return Outcome[T]{Kind: OutcomeOk, Value: v}
}

// NotFound reports an absent page marker (typically an invalid username)
func NotFound[T any](msg string) Outcome[T] {
	return Outcome[T]{Kind: OutcomeNotFound, Message: msg}
}

// ServerError reports a page whose shape didn't match expectations
func ServerError[T any](msg string) Outcome[T] {
	return Outcome[T]{Kind: OutcomeServerError, Message: msg}
}

// Unavailable reports an upstream that stayed unreachable through all retries
func Unavailable[T any](msg string) Outcome[T] {
	return Outcome[T]{Kind: OutcomeUnavailable, Message: msg}
}

// IsOk returns true when the outcome carries a valid payload
func (o Outcome[T]) IsOk() bool {
	return o.Kind == OutcomeOk
}
