package data

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	InvalidEngineSelection ErrorKind = "invalid engine selection"
	MissingRequiredPath    ErrorKind = "missing required path"
	DocumentReadFailure    ErrorKind = "document read failure"
	OCRInvocationFailure   ErrorKind = "ocr invocation failure"
	FileWriteFailure       ErrorKind = "file write failure"
)

// Error carries a kind so callers can tell validation problems from run failures.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so errors.Is(err, &Error{Kind: k}) works.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

func NewError(kind ErrorKind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or "".
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsValidation reports whether err was raised before a run could start.
func IsValidation(err error) bool {
	k := KindOf(err)
	return k == InvalidEngineSelection || k == MissingRequiredPath
}
