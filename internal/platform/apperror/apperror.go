// Package apperror defines the error taxonomy shared by every domain
// service: validation, not-found, conflict and internal errors. Handlers
// map the kind to an HTTP status; services never log or panic.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for the HTTP boundary.
type Kind int

const (
	KindValidation Kind = iota
	KindNotFound
	KindConflict
	KindInternal
)

// FieldError is a single field → message pair produced by a validator.
type FieldError struct {
	Campo   string `json:"campo"`
	Mensaje string `json:"mensaje"`
}

// Error carries a kind, a human-readable Spanish message and, for
// validation failures, the offending fields. Internal errors wrap their
// cause but never leak it to the client.
type Error struct {
	Kind    Kind
	Mensaje string
	Campos  []FieldError
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Mensaje, e.cause)
	}
	return e.Mensaje
}

func (e *Error) Unwrap() error { return e.cause }

// Validation builds a validation error from a plain message.
func Validation(mensaje string) *Error {
	return &Error{Kind: KindValidation, Mensaje: mensaje}
}

// Validationf builds a validation error from a format string.
func Validationf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Mensaje: fmt.Sprintf(format, args...)}
}

// ValidationFields builds a validation error carrying field details.
func ValidationFields(mensaje string, campos []FieldError) *Error {
	return &Error{Kind: KindValidation, Mensaje: mensaje, Campos: campos}
}

// NotFound builds a not-found error.
func NotFound(mensaje string) *Error {
	return &Error{Kind: KindNotFound, Mensaje: mensaje}
}

// Conflict builds a conflict error (uniqueness or scheduling clash).
func Conflict(mensaje string) *Error {
	return &Error{Kind: KindConflict, Mensaje: mensaje}
}

// Internal wraps a storage or I/O failure. The client only ever sees the
// generic message; the cause stays available via errors.Unwrap for logs.
func Internal(cause error) *Error {
	return &Error{Kind: KindInternal, Mensaje: "Error interno del servidor", cause: cause}
}

// StatusCode maps an error to its HTTP status. Unknown errors are treated
// as internal.
func StatusCode(err error) int {
	var ae *Error
	if !errors.As(err, &ae) {
		return http.StatusInternalServerError
	}
	switch ae.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Payload renders the JSON body for an error response.
func Payload(err error) map[string]interface{} {
	var ae *Error
	if !errors.As(err, &ae) {
		return map[string]interface{}{"error": "Error interno del servidor"}
	}
	body := map[string]interface{}{"error": ae.Mensaje}
	if len(ae.Campos) > 0 {
		body["campos"] = ae.Campos
	}
	return body
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, k Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == k
}
