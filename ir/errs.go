package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// Phase indicates which operation produced an error.
type Phase string

const (
	PhaseDecode   Phase = "decode"
	PhaseEncode   Phase = "encode"
	PhaseValidate Phase = "validate"
	PhasePath     Phase = "path"
)

// ErrorKind categorizes an Error.
type ErrorKind string

const (
	MalformedHeader  ErrorKind = "malformed header"
	OutOfBounds      ErrorKind = "out of bounds"
	UnknownFieldType ErrorKind = "unknown field type"
	TypeMismatch     ErrorKind = "type mismatch"
	PathNotFound     ErrorKind = "path not found"
)

// Sentinels for errors.Is. Each matches any *Error of the same kind,
// regardless of phase or context.
var (
	ErrMalformedHeader  = &Error{Kind: MalformedHeader, Offset: -1}
	ErrOutOfBounds      = &Error{Kind: OutOfBounds, Offset: -1}
	ErrUnknownFieldType = &Error{Kind: UnknownFieldType, Offset: -1}
	ErrTypeMismatch     = &Error{Kind: TypeMismatch, Offset: -1}
	ErrPathNotFound     = &Error{Kind: PathNotFound, Offset: -1}
)

// Error is the structured error returned by decoding, encoding,
// validation and path resolution.
type Error struct {
	Phase  Phase
	Kind   ErrorKind
	Offset int64 // byte offset into the input, -1 when not applicable
	Label  string
	Path   string
	Detail string
	Cause  error
}

// NewError starts an error of the given phase and kind; the With
// methods fill in context.
func NewError(phase Phase, kind ErrorKind) *Error {
	return &Error{Phase: phase, Kind: kind, Offset: -1}
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Phase != "" {
		b.WriteString(string(e.Phase))
		b.WriteString(": ")
	}
	b.WriteString(string(e.Kind))
	if e.Path != "" {
		b.WriteString(" at ")
		b.WriteString(e.Path)
	}
	if e.Label != "" {
		b.WriteString(" label ")
		b.WriteString(strconv.Quote(e.Label))
	}
	if e.Offset >= 0 {
		b.WriteString(" offset ")
		b.WriteString(strconv.FormatInt(e.Offset, 10))
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same kind. A target
// with a phase only matches errors of that phase.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Phase == "" || t.Phase == e.Phase
}

func (e *Error) At(offset int64) *Error {
	e.Offset = offset
	return e
}

func (e *Error) WithLabel(label string) *Error {
	e.Label = label
	return e
}

func (e *Error) WithPath(path string) *Error {
	e.Path = path
	return e
}

func (e *Error) Detailf(msg string, args ...any) *Error {
	if len(args) > 0 {
		e.Detail = fmt.Sprintf(msg, args...)
	} else {
		e.Detail = msg
	}
	return e
}

func (e *Error) WithCause(err error) *Error {
	e.Cause = err
	return e
}

func typeMismatch(phase Phase, msg string, args ...any) *Error {
	return NewError(phase, TypeMismatch).Detailf(msg, args...)
}

func pathNotFound(path string) *Error {
	return NewError(PhasePath, PathNotFound).WithPath(path)
}
