package expand

import "github.com/roach88/asmethod/internal/syntax"

// emit assembles the three units. It cannot fail: every precondition was
// checked by validate and split.
func emit(fn *syntax.FnDecl, shape *methodShape, opts Options) *syntax.Expansion {
	var attrs []string
	if !opts.OmitLintAllow {
		attrs = append(attrs, LintAllowAttr)
	}

	trait := &syntax.TraitDecl{
		Attrs:    attrs,
		Vis:      fn.Vis,
		Name:     fn.Name,
		Generics: fn.Generics.Unbounded(),
		Methods:  []syntax.MethodSig{methodSig(fn, shape)},
	}

	callArgs := append([]string{"self"}, shape.ArgNames...)
	impl := &syntax.ImplDecl{
		Generics: fn.Generics.WithoutDefaults(),
		Trait: &syntax.PathType{Segments: []syntax.PathSegment{{
			Name: fn.Name,
			Args: fn.Generics.Args(),
		}}},
		SelfType: syntax.CloneType(shape.Receiver),
		Methods: []syntax.ImplMethod{{
			Sig:  methodSig(fn, shape),
			Body: syntax.CallExpr{Func: fn.Name, Args: callArgs},
		}},
	}

	return &syntax.Expansion{Function: fn, Trait: trait, Impl: impl}
}

// methodSig builds `fn name(self, x1: A1, ...) -> R` with fresh type nodes.
func methodSig(fn *syntax.FnDecl, shape *methodShape) syntax.MethodSig {
	params := make([]syntax.Param, len(shape.ArgTypes))
	for i, t := range shape.ArgTypes {
		params[i] = syntax.Param{
			Kind:    syntax.ParamNamed,
			Pattern: shape.ArgNames[i],
			Type:    syntax.CloneType(t),
		}
	}
	return syntax.MethodSig{
		Name:   fn.Name,
		Params: params,
		Output: syntax.CloneType(fn.Output),
	}
}
