package expand

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/asmethod/internal/syntax"
)

func TestDiagnosticEscaping(t *testing.T) {
	tests := []struct {
		name string
		msg  string
		want string
	}{
		{"plain", "expected `fn`", `::core::compile_error! { "expected ` + "`fn`" + `" }` + "\n"},
		{"quote", `say "hi"`, `::core::compile_error! { "say \"hi\"" }` + "\n"},
		{"backslash", `a\b`, `::core::compile_error! { "a\\b" }` + "\n"},
		{"newline", "a\nb\tc", `::core::compile_error! { "a\nb\tc" }` + "\n"},
		{"control", "a\x01b", `::core::compile_error! { "a\u{1}b" }` + "\n"},
		{"unicode", "naïve", `::core::compile_error! { "naïve" }` + "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Diagnostic(&ShapeError{Message: tt.msg}))
		})
	}
}

func TestErrorFormatting(t *testing.T) {
	pos := syntax.Pos{Filename: "src/lib.rs", Line: 3, Column: 9}

	assert.Equal(t, "src/lib.rs:3:9: expected at least one parameter",
		(&ShapeError{Message: "expected at least one parameter", Pos: pos}).Error())
	assert.Equal(t, "unexpected attr(s)", (&ArgumentError{Message: "unexpected attr(s)"}).Error())
	assert.Equal(t, ErrCodeArgument, (&ArgumentError{}).Code())
	assert.Equal(t, ErrCodeShape, (&ShapeError{}).Code())
}

func TestErrorAccessorsThroughWrapping(t *testing.T) {
	pos := syntax.Pos{Line: 7, Column: 2}
	err := fmt.Errorf("expanding lib.rs: %w", &ShapeError{Message: "unexpected self receiver", Pos: pos})

	assert.Equal(t, "unexpected self receiver", Message(err))
	assert.Equal(t, pos, Position(err))
	assert.Equal(t, ErrCodeShape, ErrorCode(err))

	foreign := errors.New("disk full")
	assert.Equal(t, "disk full", Message(foreign))
	assert.False(t, Position(foreign).IsValid())
	assert.Equal(t, "", ErrorCode(foreign))
}

func TestArgumentErrorFromKeepsExisting(t *testing.T) {
	orig := &ArgumentError{Message: "unexpected attr(s)"}
	assert.Same(t, orig, argumentErrorFrom(orig))
}
