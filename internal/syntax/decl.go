package syntax

// ParamKind tags the Param variant.
type ParamKind int

const (
	// ParamNamed is `pattern: Type`.
	ParamNamed ParamKind = iota
	// ParamSelf is any receiver form: `self`, `&mut self`, `self: Box<Self>`.
	ParamSelf
)

// Param is one function parameter.
type Param struct {
	Kind    ParamKind
	Attrs   []string // verbatim parameter attributes
	Pattern string   // verbatim pattern for ParamNamed; full receiver text for ParamSelf
	Type    Type     // nil for untyped receivers
	Pos     Pos      // position of the pattern (or the `self` token)
}

// GenericKind tags the GenericParam variant.
type GenericKind int

const (
	GenericLifetime GenericKind = iota
	GenericTypeParam
	GenericConst
)

// GenericParam is one entry of a `<...>` parameter list.
type GenericParam struct {
	Kind    GenericKind
	Name    string // `'a`, `T` or `N`
	Bounds  []Type // trait/lifetime bounds; empty for const params
	Type    Type   // const parameter type
	Default string // verbatim default, if any
}

// WherePredicate is one `Left: Bounds` entry of a where clause.
type WherePredicate struct {
	Left   Type
	Bounds []Type
}

// Generics is a generic parameter list together with its where clause.
type Generics struct {
	Params []GenericParam
	Where  []WherePredicate
}

// IsEmpty reports whether there is nothing to print for the parameter list.
func (g Generics) IsEmpty() bool { return len(g.Params) == 0 }

// Args returns the parameters as generic arguments, in declaration order:
// lifetimes as LifetimeType, types and consts as single-segment paths.
func (g Generics) Args() []Type {
	args := make([]Type, 0, len(g.Params))
	for _, p := range g.Params {
		if p.Kind == GenericLifetime {
			args = append(args, &LifetimeType{Name: p.Name})
			continue
		}
		args = append(args, Ident(p.Name))
	}
	return args
}

// Unbounded returns a copy of the parameter list with inline bounds and
// defaults stripped. The where clause is kept.
func (g Generics) Unbounded() Generics {
	out := Generics{Params: make([]GenericParam, len(g.Params)), Where: cloneWhere(g.Where)}
	for i, p := range g.Params {
		out.Params[i] = GenericParam{Kind: p.Kind, Name: p.Name, Type: CloneType(p.Type)}
	}
	return out
}

// WithoutDefaults returns a copy of the parameter list with defaults
// stripped, the form an impl header requires.
func (g Generics) WithoutDefaults() Generics {
	out := Generics{Params: make([]GenericParam, len(g.Params)), Where: cloneWhere(g.Where)}
	for i, p := range g.Params {
		out.Params[i] = GenericParam{
			Kind:   p.Kind,
			Name:   p.Name,
			Bounds: CloneTypes(p.Bounds),
			Type:   CloneType(p.Type),
		}
	}
	return out
}

func cloneWhere(preds []WherePredicate) []WherePredicate {
	if preds == nil {
		return nil
	}
	out := make([]WherePredicate, len(preds))
	for i, pred := range preds {
		out[i] = WherePredicate{Left: CloneType(pred.Left), Bounds: CloneTypes(pred.Bounds)}
	}
	return out
}

// FnDecl is a free function item.
type FnDecl struct {
	Attrs      []string // outer attributes and doc comments, verbatim, in order
	Vis        string   // "", "pub", "pub(crate)", ...
	Qualifiers string   // "const", "async", "unsafe", `extern "C"`, ... verbatim
	Name       string
	Generics   Generics
	Params     []Param
	ParenPos   Pos  // position of the `(` opening the parameter list
	Output     Type // nil when the function returns `()` implicitly
	Body       string
	Pos        Pos
}

// MethodSig is a method signature whose receiver is plain `self`.
type MethodSig struct {
	Name   string
	Params []Param // named parameters after `self`
	Output Type
}

// TraitDecl is a trait declaration holding method signatures only.
type TraitDecl struct {
	Attrs    []string
	Vis      string
	Name     string
	Generics Generics
	Methods  []MethodSig
}

// CallExpr is a call of a free function with plain identifier arguments.
type CallExpr struct {
	Func string
	Args []string
}

// ImplMethod is a method whose body is a single forwarding call.
type ImplMethod struct {
	Sig  MethodSig
	Body CallExpr
}

// ImplDecl is `impl<Generics> Trait for SelfType where ... { methods }`.
type ImplDecl struct {
	Generics Generics
	Trait    *PathType
	SelfType Type
	Methods  []ImplMethod
}

// Expansion is the three-unit output of the as_method transformation.
type Expansion struct {
	Function *FnDecl
	Trait    *TraitDecl
	Impl     *ImplDecl
}
