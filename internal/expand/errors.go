package expand

import (
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/asmethod/internal/syntax"
)

// Expansion error codes (E200-E299)
const (
	ErrCodeArgument = "E201" // malformed or disallowed invocation input
	ErrCodeShape    = "E202" // function parsed but has the wrong shape
)

// ArgumentError reports malformed input to the invocation itself: non-empty
// attribute arguments, or an item the parser could not read as a function.
type ArgumentError struct {
	Message string
	Pos     syntax.Pos
	Err     error // parser failure, if any
}

func (e *ArgumentError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s", e.Pos, e.Message)
	}
	return e.Message
}

func (e *ArgumentError) Unwrap() error { return e.Err }

// Code returns the stable error code.
func (e *ArgumentError) Code() string { return ErrCodeArgument }

// ShapeError reports a function that parsed but violates a structural
// precondition: no parameters, or a `self` receiver.
type ShapeError struct {
	Message string
	Pos     syntax.Pos
}

func (e *ShapeError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s", e.Pos, e.Message)
	}
	return e.Message
}

// Code returns the stable error code.
func (e *ShapeError) Code() string { return ErrCodeShape }

// parseFailure is implemented by parser errors that know where they
// happened and can state the problem without the position prefix.
type parseFailure interface {
	Position() syntax.Pos
	Reason() string
}

// argumentErrorFrom forwards a parser failure as an ArgumentError. The cause
// is kept for errors.As but its message is used as-is.
func argumentErrorFrom(err error) *ArgumentError {
	var arg *ArgumentError
	if errors.As(err, &arg) {
		return arg
	}
	aerr := &ArgumentError{Message: err.Error(), Err: err}
	var pf parseFailure
	if errors.As(err, &pf) {
		aerr.Message = pf.Reason()
		aerr.Pos = pf.Position()
	}
	return aerr
}

// Message returns the user-facing message of an expansion error without the
// position prefix.
func Message(err error) string {
	var arg *ArgumentError
	if errors.As(err, &arg) {
		return arg.Message
	}
	var shape *ShapeError
	if errors.As(err, &shape) {
		return shape.Message
	}
	return err.Error()
}

// Position returns the source anchor of an expansion error, if known.
func Position(err error) syntax.Pos {
	var arg *ArgumentError
	if errors.As(err, &arg) {
		return arg.Pos
	}
	var shape *ShapeError
	if errors.As(err, &shape) {
		return shape.Pos
	}
	return syntax.Pos{}
}

// ErrorCode maps an expansion error to its code, or "" for foreign errors.
func ErrorCode(err error) string {
	var arg *ArgumentError
	if errors.As(err, &arg) {
		return ErrCodeArgument
	}
	var shape *ShapeError
	if errors.As(err, &shape) {
		return ErrCodeShape
	}
	return ""
}

// Diagnostic renders err as the single unit emitted in place of a failed
// expansion: a compile_error! invocation carrying the message.
func Diagnostic(err error) string {
	return "::core::compile_error! { " + rustString(Message(err)) + " }\n"
}

// rustString quotes s as a Rust string literal.
func rustString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\u{%x}`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
