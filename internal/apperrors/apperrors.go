package apperrors

import (
	"errors"
	"fmt"
)

// Descriptor identifies one deliberately raised error kind. Each descriptor
// carries a stable numeric ID used for log correlation and a fmt-style
// message template taking positional arguments.
type Descriptor struct {
	ID       int
	Template string
}

// New builds an error for this descriptor with the supplied message arguments.
func (d Descriptor) New(args ...any) *Error {
	return &Error{desc: d, args: args}
}

// Wrap builds an error for this descriptor that records an underlying cause.
func (d Descriptor) Wrap(cause error, args ...any) *Error {
	return &Error{desc: d, args: args, cause: cause}
}

// Error is a catalog-backed error carrying a descriptor and its arguments.
type Error struct {
	desc  Descriptor
	args  []any
	cause error
}

// ID returns the stable numeric identifier of the underlying descriptor.
func (e *Error) ID() int { return e.desc.ID }

func (e *Error) Error() string {
	msg := fmt.Sprintf(e.desc.Template, e.args...)
	if e.cause != nil {
		return msg + ": " + e.cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.cause }

// Is matches two catalog errors by descriptor ID, so call sites can use
// errors.Is(err, SomeDescriptor.New()).
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return e.desc.ID == other.desc.ID
	}
	return false
}

// IsCode reports whether err carries the given descriptor anywhere in its chain.
func IsCode(err error, d Descriptor) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.desc.ID == d.ID
}

// From extracts the catalog error from err. Errors raised outside the catalog
// map to the Unexpected descriptor, preserving the original as the cause.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Unexpected.Wrap(err)
}
