package qtree

import (
	"errors"
	"fmt"
)

// Kind classifies an Error.
type Kind string

const (
	KindEmptySelectOption   Kind = "EmptySelectOption"
	KindUnsupportedNodeType Kind = "UnsupportedNodeType"
	KindDuplicateName       Kind = "DuplicateName"
	KindMissingName         Kind = "MissingName"
	KindEmptyTree           Kind = "EmptyTree"
	KindFuncFailed          Kind = "FuncFailed"
	KindComputeFailed       Kind = "ComputeFailed"
	KindMissingAnswer       Kind = "MissingAnswer"
	KindInvalidAnswer       Kind = "InvalidAnswer"
)

// Error is the error type surfaced by question loading and traversal. Source
// names the component that produced it.
type Error struct {
	Source  string
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Source, e.Message)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// NewError builds an Error with a formatted message.
func NewError(source string, kind Kind, format string, args ...any) *Error {
	return &Error{Source: source, Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapError builds an Error that wraps a cause.
func WrapError(source string, kind Kind, err error, format string, args ...any) *Error {
	return &Error{Source: source, Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// IsKind reports whether err is, or wraps, an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var qe *Error
	return errors.As(err, &qe) && qe.Kind == kind
}
