package kernel

import (
	"errors"
	"fmt"
)

// Kind classifies a kernel failure. Every failure is terminal for the invocation.
type Kind string

const (
	KindMalformedInput  Kind = "malformed_input"
	KindInvalidArgument Kind = "invalid_argument"
	KindEmptyDeck       Kind = "empty_deck"
	KindInternal        Kind = "internal_error"
)

var (
	ErrMalformedInput  = errors.New("malformed input")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrEmptyDeck       = errors.New("empty deck")
)

// Error carries the failing field alongside its kind.
type Error struct {
	Kind    Kind
	Field   string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = fmt.Sprintf("%s: %s", e.Field, msg)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	prefix := string(e.Kind)
	if s := sentinel(e.Kind); s != nil {
		prefix = s.Error()
	}
	return prefix + ": " + msg
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches the sentinel for the error's kind, so errors.Is(err, ErrEmptyDeck) works
// on wrapped *Error values.
func (e *Error) Is(target error) bool {
	s := sentinel(e.Kind)
	return s != nil && s == target
}

// Malformed builds a MalformedInput error for field.
func Malformed(field, format string, args ...any) *Error {
	return &Error{Kind: KindMalformedInput, Field: field, Message: fmt.Sprintf(format, args...)}
}

// Invalid builds an InvalidArgument error for field.
func Invalid(field, format string, args ...any) *Error {
	return &Error{Kind: KindInvalidArgument, Field: field, Message: fmt.Sprintf(format, args...)}
}

// WithCause attaches the underlying error.
func (e *Error) WithCause(err error) *Error {
	e.Cause = err
	return e
}

// KindOf reports the kind of err, or KindInternal when err is not a kernel error.
func KindOf(err error) Kind {
	var ke *Error
	if errors.As(err, &ke) {
		return ke.Kind
	}
	switch {
	case errors.Is(err, ErrMalformedInput):
		return KindMalformedInput
	case errors.Is(err, ErrInvalidArgument):
		return KindInvalidArgument
	case errors.Is(err, ErrEmptyDeck):
		return KindEmptyDeck
	}
	return KindInternal
}

func sentinel(k Kind) error {
	switch k {
	case KindMalformedInput:
		return ErrMalformedInput
	case KindInvalidArgument:
		return ErrInvalidArgument
	case KindEmptyDeck:
		return ErrEmptyDeck
	}
	return nil
}
