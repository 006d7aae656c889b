package syntax

import "fmt"

// Pos is a location in Rust source. Line and Column are 1-based; the zero
// value is an invalid position.
type Pos struct {
	Filename string `json:"filename,omitempty"`
	Offset   int    `json:"offset"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
}

// IsValid reports whether the position refers to real source.
func (p Pos) IsValid() bool { return p.Line > 0 }

// String formats the position as file:line:col, omitting unknown parts.
func (p Pos) String() string {
	if !p.IsValid() {
		if p.Filename != "" {
			return p.Filename
		}
		return "-"
	}
	if p.Filename == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}
