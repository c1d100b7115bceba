package errx

import (
	"errors"
	"fmt"
)

// Kind classifies failures the operator has to be told about differently.
type Kind int

const (
	KindUnknown Kind = iota
	// KindNotFound is informational: the named thing does not exist.
	KindNotFound
	// KindMissingInput aborts an operation before any output is produced.
	KindMissingInput
	// KindStore wraps persistence failures.
	KindStore
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindMissingInput:
		return "missing_input"
	case KindStore:
		return "store"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is checks.
var (
	ErrNotFound     = &Error{Kind: KindNotFound, Message: "not found"}
	ErrMissingInput = &Error{Kind: KindMissingInput, Message: "missing input"}
	ErrStore        = &Error{Kind: KindStore, Message: "store failure"}
)

// Error carries a Kind, an operator-facing message and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrNotFound) works
// for every not-found error regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func MissingInput(format string, args ...any) *Error {
	return &Error{Kind: KindMissingInput, Message: fmt.Sprintf(format, args...)}
}

// Store wraps a persistence error. A nil err yields nil.
func Store(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindStore, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
