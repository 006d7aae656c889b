package expand

import (
	"context"

	"github.com/roach88/asmethod/internal/syntax"
)

func path(name string, args ...syntax.Type) *syntax.PathType {
	return &syntax.PathType{Segments: []syntax.PathSegment{{Name: name, Args: args}}}
}

func ref(mut bool, elem syntax.Type) *syntax.RefType {
	return &syntax.RefType{Mut: mut, Elem: elem}
}

func implOf(bounds ...syntax.Type) *syntax.ImplTraitType {
	return &syntax.ImplTraitType{Bounds: bounds}
}

func named(pattern string, t syntax.Type) syntax.Param {
	return syntax.Param{Kind: syntax.ParamNamed, Pattern: pattern, Type: t}
}

func typeParam(name string, bounds ...syntax.Type) syntax.GenericParam {
	return syntax.GenericParam{Kind: syntax.GenericTypeParam, Name: name, Bounds: bounds}
}

// pushDecl is `fn push<T>(v: &mut Vec<T>, x: T) { v.push(x) }`.
func pushDecl() *syntax.FnDecl {
	return &syntax.FnDecl{
		Name:     "push",
		Generics: syntax.Generics{Params: []syntax.GenericParam{typeParam("T")}},
		Params: []syntax.Param{
			named("v", ref(true, path("Vec", syntax.Ident("T")))),
			named("x", syntax.Ident("T")),
		},
		ParenPos: syntax.Pos{Line: 1, Column: 11},
		Body:     "{ v.push(x) }",
	}
}

// stubParser returns a fresh declaration on every call.
type stubParser struct {
	decl func() *syntax.FnDecl
	err  error
}

func (s stubParser) ParseItem(context.Context, []byte) (*syntax.FnDecl, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.decl(), nil
}

func isImpl(t syntax.Type) bool {
	_, ok := t.(*syntax.ImplTraitType)
	return ok
}
