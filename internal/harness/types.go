package harness

import "github.com/roach88/asmethod/internal/syntax"

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when the expect clause and every assertion hold.
	Pass bool `json:"pass"`

	// Output is the printed expansion, or the diagnostic unit on failure.
	Output string `json:"output"`

	// Units holds each expansion unit printed on its own, keyed by
	// UnitFunction, UnitTrait and UnitImpl. Empty on failure.
	Units map[string]string `json:"units,omitempty"`

	ExpansionID  string `json:"expansion_id"`
	OutputDigest string `json:"output_digest"`

	// Code, Message and Pos describe the expansion error, if any.
	Code    string     `json:"code,omitempty"`
	Message string     `json:"message,omitempty"`
	Pos     syntax.Pos `json:"pos"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	Expansion *syntax.Expansion `json:"-"`
	Err       error             `json:"-"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Units:  make(map[string]string),
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Failed reports whether the expansion produced a diagnostic.
func (r *Result) Failed() bool { return r.Err != nil }
