package rustparse

import (
	"fmt"

	"github.com/roach88/asmethod/internal/syntax"
)

// ParseError is a syntax problem in an annotated item.
type ParseError struct {
	Message string
	Pos     syntax.Pos
}

func (e *ParseError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s", e.Pos, e.Message)
	}
	return e.Message
}

// Position returns where the problem was found.
func (e *ParseError) Position() syntax.Pos { return e.Pos }

// Reason returns the message without the position prefix.
func (e *ParseError) Reason() string { return e.Message }
