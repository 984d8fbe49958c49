package service

import "errors"

// Error kinds. Every failed operation surfaces exactly one of these, wrapped
// with a human-readable message. They are terminal business errors, never
// retried. Match with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrInvalidInput = errors.New("invalid input")
)

// Error pairs a kind with a caller-facing message.
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string { return e.msg }
func (e *Error) Unwrap() error { return e.kind }

func notFound(msg string) error     { return &Error{kind: ErrNotFound, msg: msg} }
func forbidden(msg string) error    { return &Error{kind: ErrForbidden, msg: msg} }
func conflict(msg string) error     { return &Error{kind: ErrConflict, msg: msg} }
func invalidInput(msg string) error { return &Error{kind: ErrInvalidInput, msg: msg} }
