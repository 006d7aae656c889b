package expand

import (
	"fmt"

	"github.com/roach88/asmethod/internal/syntax"
)

// GeneratedTypeParam is a type parameter synthesized for one `impl Trait`
// occurrence. Bounds are the existential's bounds, unchanged.
type GeneratedTypeParam struct {
	Name   string
	Bounds []syntax.Type
}

// existentialRewriter replaces `impl Trait` nodes with fresh type parameters.
// The counter lives only as long as one rewrite.
type existentialRewriter struct {
	prefix    string
	generated []GeneratedTypeParam
}

func (r *existentialRewriter) visit(t *syntax.Type) bool {
	impl, ok := (*t).(*syntax.ImplTraitType)
	if !ok {
		return true
	}

	name := fmt.Sprintf("%s%d", r.prefix, len(r.generated))
	r.generated = append(r.generated, GeneratedTypeParam{
		Name:   name,
		Bounds: impl.Bounds,
	})
	*t = syntax.Ident(name)

	// The bounds moved into the generated parameter; they are not rewritten.
	return false
}

// rewriteExistentials promotes every `impl Trait` inside the first
// parameter's declared type to a generic parameter, numbered in pre-order,
// and appends those parameters to the function's generics. Other parameters,
// the return type and the body are not touched. It never fails.
func rewriteExistentials(fn *syntax.FnDecl, prefix string) []GeneratedTypeParam {
	first := &fn.Params[0]
	if first.Kind != syntax.ParamNamed {
		return nil
	}

	r := &existentialRewriter{prefix: prefix}
	syntax.Walk(&first.Type, r.visit)

	for _, gen := range r.generated {
		fn.Generics.Params = append(fn.Generics.Params, syntax.GenericParam{
			Kind:   syntax.GenericTypeParam,
			Name:   gen.Name,
			Bounds: gen.Bounds,
		})
	}
	return r.generated
}
