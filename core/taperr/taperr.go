// Package taperr is the closed error taxonomy of the annotation core.
//
// Every failure that aborts the annotation of one structure is returned as an
// *Error carrying a Kind, so callers can branch on the kind with KindOf or Is
// instead of matching message text.
package taperr

import (
	"errors"
	"fmt"
)

// Kind classifies a fatal annotation failure.
type Kind string

const (
	// ToolUnavailable: the accessibility executable could not be located.
	ToolUnavailable Kind = "tool_unavailable"

	// ToolExecutionFailure: the executable ran but produced no usable output.
	ToolExecutionFailure Kind = "tool_execution_failure"

	// AnnotationMismatch: residue count or identity differs between the
	// structure and the tool output.
	AnnotationMismatch Kind = "annotation_mismatch"

	// InputFormatError: unparsable structure file or a missing required chain.
	InputFormatError Kind = "input_format_error"
)

// Error wraps a failure with its kind and the operation that raised it.
type Error struct {
	Kind Kind
	Op   string // e.g. "surface.annotate", "structure.read"
	Path string // structure file, when known
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	var s string
	switch {
	case e.Path != "" && e.Op != "":
		s = fmt.Sprintf("%s %s [%s]: %s", e.Op, e.Path, e.Kind, e.Msg)
	case e.Op != "":
		s = fmt.Sprintf("%s [%s]: %s", e.Op, e.Kind, e.Msg)
	default:
		s = fmt.Sprintf("[%s] %s", e.Kind, e.Msg)
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an *Error without an underlying cause.
func New(kind Kind, op, msg string) *Error {
	return &Error{Kind: kind, Op: op, Msg: msg}
}

// Newf builds an *Error with a formatted message.
func Newf(kind Kind, op, format string, a ...any) *Error {
	return &Error{Kind: kind, Op: op, Msg: fmt.Sprintf(format, a...)}
}

// Wrap builds an *Error around an underlying cause.
func Wrap(kind Kind, op, msg string, err error) *Error {
	return &Error{Kind: kind, Op: op, Msg: msg, Err: err}
}

// WithPath returns a copy of e annotated with the structure path.
func (e *Error) WithPath(path string) *Error {
	cp := *e
	cp.Path = path
	return &cp
}

// KindOf extracts the kind from err. The second result is false when err does
// not carry an *Error anywhere in its chain.
func KindOf(err error) (Kind, bool) {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind, true
	}
	return "", false
}

// Is reports whether err carries an *Error of the given kind.
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
