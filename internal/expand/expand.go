package expand

import (
	"context"
	"strings"

	"github.com/roach88/asmethod/internal/syntax"
)

// ItemParser is the parsing collaborator: it reads the source text of one
// item as a function declaration.
type ItemParser interface {
	ParseItem(ctx context.Context, src []byte) (*syntax.FnDecl, error)
}

// Invocation is one application of the attribute to one item.
type Invocation struct {
	Attr    string         // attribute argument text; "" when there are none
	AttrPos syntax.Pos     // anchor for argument errors
	Item    *syntax.FnDecl // parsed item, owned by this invocation
	ItemErr error          // set instead of Item when parsing failed
}

// Result is either an Expansion or an error, never both.
type Result struct {
	Expansion *syntax.Expansion
	Err       error
}

// Render prints the expansion, or the diagnostic unit on failure.
func (r Result) Render(p *syntax.Printer) string {
	if r.Err != nil {
		return p.Base + Diagnostic(r.Err)
	}
	return p.Expansion(r.Expansion)
}

// Run checks the invocation boundary and then runs the pipeline.
func Run(inv Invocation, opts Options) Result {
	if strings.TrimSpace(inv.Attr) != "" {
		return Result{Err: &ArgumentError{Message: "unexpected attr(s)", Pos: inv.AttrPos}}
	}
	if inv.ItemErr != nil {
		return Result{Err: argumentErrorFrom(inv.ItemErr)}
	}
	if inv.Item == nil {
		return Result{Err: &ArgumentError{Message: "expected `fn`", Pos: inv.AttrPos}}
	}

	exp, err := Function(inv.Item, opts)
	if err != nil {
		return Result{Err: err}
	}
	return Result{Expansion: exp}
}

// Function runs validate, rewrite, split and emit on a parsed declaration.
// fn is mutated in place and becomes the expansion's Function unit.
func Function(fn *syntax.FnDecl, opts Options) (*syntax.Expansion, error) {
	if err := validate(fn); err != nil {
		return nil, err
	}

	rewriteExistentials(fn, opts.prefix())

	shape, err := split(fn)
	if err != nil {
		return nil, err
	}

	return emit(fn, shape, opts), nil
}

// Expand is the text-level entry point: attribute argument text and item
// source in, expanded source out. On failure the returned text is the
// diagnostic unit and err describes the failure.
func Expand(ctx context.Context, parser ItemParser, attr, item string, opts Options) (string, error) {
	inv := Invocation{Attr: attr}
	if strings.TrimSpace(attr) == "" {
		inv.Item, inv.ItemErr = parser.ParseItem(ctx, []byte(item))
	}

	res := Run(inv, opts)
	return res.Render(opts.Printer("")), res.Err
}
