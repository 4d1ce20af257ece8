// Package apperr provides the error taxonomy shared by the domain and the
// transports. Domain code returns *Error values; the HTTP and MCP layers map
// their Kind to status codes and tool results.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Kind represents the category of error.
type Kind int

const (
	// KindUnknown is the zero value.
	KindUnknown Kind = iota
	// KindValidation marks malformed or out-of-range input.
	KindValidation
	// KindNotFound marks a missing account, lead or record.
	KindNotFound
	// KindConfig marks an invalid scoring configuration.
	KindConfig
	// KindUnavailable marks a transient backpressure condition.
	KindUnavailable
	// KindInternal marks an unexpected failure.
	KindInternal
)

// String returns the wire name of the kind.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation_error"
	case KindNotFound:
		return "not_found"
	case KindConfig:
		return "config_error"
	case KindUnavailable:
		return "unavailable"
	case KindInternal:
		return "internal_error"
	default:
		return "unknown"
	}
}

// FieldError describes one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is a typed application error.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Fields  []FieldError
	Err     error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if len(e.Fields) > 0 {
		parts := make([]string, len(e.Fields))
		for i, f := range e.Fields {
			parts[i] = f.Field + " " + f.Message
		}
		b.WriteString(" (")
		b.WriteString(strings.Join(parts, "; "))
		b.WriteString(")")
	}
	if e.Err != nil && e.Message == "" {
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *Error) Unwrap() error { return e.Err }

// HTTPStatus returns the HTTP status code for the error kind.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// New creates an error of the given kind.
func New(kind Kind, op, message string) *Error {
	return &Error{Kind: kind, Op: op, Message: message}
}

// Wrap creates an error of the given kind wrapping err.
func Wrap(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Message: err.Error(), Err: err}
}

// NotFound creates a not found error.
func NotFound(op, format string, args ...any) *Error {
	return New(KindNotFound, op, fmt.Sprintf(format, args...))
}

// Validation creates a validation error with optional field details.
func Validation(op, message string, fields ...FieldError) *Error {
	return &Error{Kind: KindValidation, Op: op, Message: message, Fields: fields}
}

// Config creates a configuration error.
func Config(op, format string, args ...any) *Error {
	return New(KindConfig, op, fmt.Sprintf(format, args...))
}

// Unavailable creates a backpressure error.
func Unavailable(op, message string) *Error {
	return New(KindUnavailable, op, message)
}

// FromValidator converts go-playground validation errors into a validation
// error with one FieldError per failed rule. Other errors are wrapped as
// validation errors unchanged.
func FromValidator(op string, err error) *Error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &Error{Kind: KindValidation, Op: op, Message: err.Error(), Err: err}
	}
	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{Field: fieldPath(fe), Message: describe(fe)})
	}
	return &Error{Kind: KindValidation, Op: op, Message: "invalid request", Fields: fields, Err: err}
}

// fieldPath is the namespace without the top-level struct name, so nested
// fields read "signals.website_visits_30d".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// FromVar is FromValidator for a single validated value, reported under
// field.
func FromVar(op, field string, err error) *Error {
	e := FromValidator(op, err)
	for i := range e.Fields {
		e.Fields[i].Field = field
	}
	if len(e.Fields) > 0 {
		e.Message = "invalid " + field
	}
	return e
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_without":
		return "is required"
	case "gte":
		return "must be >= " + fe.Param()
	case "lte":
		return "must be <= " + fe.Param()
	case "oneof":
		return "must be one of [" + fe.Param() + "]"
	case "max":
		return "must be at most " + fe.Param() + " long"
	case "entityid":
		return "must contain only letters, digits, '_', '-' or '.'"
	default:
		return "failed " + fe.Tag() + " rule"
	}
}

// KindOf extracts the kind from err, KindUnknown when err carries none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// StatusOf returns the HTTP status for any error.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.HTTPStatus()
	}
	return http.StatusInternalServerError
}
