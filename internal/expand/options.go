package expand

import "github.com/roach88/asmethod/internal/syntax"

// DefaultTypeParamPrefix names generated type parameters. The all-caps
// sentinel keeps them from colliding with ordinary identifiers.
const DefaultTypeParamPrefix = "AS_METHOD_SELF_T"

// LintAllowAttr is attached to the generated trait, whose name is usually
// snake_case.
const LintAllowAttr = "#[allow(non_camel_case_types)]"

// Options tunes emission. The zero value matches the attribute's defaults.
type Options struct {
	TypeParamPrefix string // default DefaultTypeParamPrefix
	OmitLintAllow   bool   // drop LintAllowAttr from the trait
	Indent          string // one indentation level, default four spaces
}

func (o Options) prefix() string {
	if o.TypeParamPrefix == "" {
		return DefaultTypeParamPrefix
	}
	return o.TypeParamPrefix
}

// Printer returns a printer configured with the indentation option and the
// given base prefix.
func (o Options) Printer(base string) *syntax.Printer {
	p := syntax.NewPrinter()
	if o.Indent != "" {
		p.Indent = o.Indent
	}
	p.Base = base
	return p
}
