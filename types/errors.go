package types

import (
	"errors"
	"fmt"
)

// Error kinds returned by the type layer.
// Use errors.Is to test for a kind; the concrete error is usually an *Error.
var (
	// ErrNotFound indicates a registry lookup miss.
	ErrNotFound = errors.New("not found")

	// ErrInvalidRegistration indicates an attempt to register a native type.
	ErrInvalidRegistration = errors.New("invalid registration")

	// ErrTypeMismatch indicates a value or storage type that does not match
	// the type it is paired with.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrValueTooLarge indicates a decimal, fixed-size binary or fixed-size list
	// that exceeds its representable bounds.
	ErrValueTooLarge = errors.New("value too large")

	// ErrUnimplemented indicates an extension point that a type does not provide.
	ErrUnimplemented = errors.New("unimplemented")

	// ErrInternal indicates a violated internal invariant, e.g. a physical array
	// whose declared element type does not match its decoded values.
	ErrInternal = errors.New("internal invariant violation")
)

// Error describes a failure involving a named entity (type, field, function).
type Error struct {
	// Kind is one of the Err* sentinels above.
	Kind error
	// Entity is the kind of thing involved, e.g. "logical type" or "field".
	Entity string
	// Name identifies the entity. May be empty.
	Name string
	// Detail is a human readable explanation.
	Detail string
	// Err is an optional underlying cause.
	Err error
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Entity != "" {
		msg += ": " + e.Entity
		if e.Name != "" {
			msg += " " + fmt.Sprintf("%q", e.Name)
		}
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns both the kind and the cause so errors.Is matches either.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NewError creates an *Error of the given kind.
func NewError(kind error, entity, name, format string, args ...any) *Error {
	return &Error{
		Kind:   kind,
		Entity: entity,
		Name:   name,
		Detail: fmt.Sprintf(format, args...),
	}
}

// WrapError creates an *Error of the given kind wrapping cause.
func WrapError(kind error, entity, name string, cause error) *Error {
	return &Error{
		Kind:   kind,
		Entity: entity,
		Name:   name,
		Err:    cause,
	}
}
