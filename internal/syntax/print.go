package syntax

import (
	"strings"
)

// DefaultIndent is one indentation level of emitted code.
const DefaultIndent = "    "

// Printer serializes syntax units back to Rust source.
//
// Every emitted line is prefixed with Base so an expansion can be spliced
// into an indented scope. Verbatim bodies are written unchanged; their inner
// lines already carry the indentation they had in the source file.
type Printer struct {
	Indent string
	Base   string
}

// NewPrinter returns a printer with the default indentation and no base prefix.
func NewPrinter() *Printer {
	return &Printer{Indent: DefaultIndent}
}

// Expansion prints the three units separated by blank lines.
func (p *Printer) Expansion(e *Expansion) string {
	var b strings.Builder
	p.writeFn(&b, e.Function)
	b.WriteString("\n")
	p.writeTrait(&b, e.Trait)
	b.WriteString("\n")
	p.writeImpl(&b, e.Impl)
	return b.String()
}

// Function prints a function item.
func (p *Printer) Function(fn *FnDecl) string {
	var b strings.Builder
	p.writeFn(&b, fn)
	return b.String()
}

// Trait prints a trait declaration.
func (p *Printer) Trait(t *TraitDecl) string {
	var b strings.Builder
	p.writeTrait(&b, t)
	return b.String()
}

// Impl prints an impl block.
func (p *Printer) Impl(impl *ImplDecl) string {
	var b strings.Builder
	p.writeImpl(&b, impl)
	return b.String()
}

func (p *Printer) writeFn(b *strings.Builder, fn *FnDecl) {
	for _, attr := range fn.Attrs {
		b.WriteString(p.Base + attr + "\n")
	}
	b.WriteString(p.Base)
	writeWord(b, fn.Vis)
	writeWord(b, fn.Qualifiers)
	b.WriteString("fn " + fn.Name)
	b.WriteString(FormatGenericParams(fn.Generics.Params))
	b.WriteString("(")
	for i, param := range fn.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(FormatParam(param))
	}
	b.WriteString(")")
	if fn.Output != nil {
		b.WriteString(" -> " + FormatType(fn.Output))
	}
	b.WriteString(FormatWhere(fn.Generics.Where))
	b.WriteString(" " + fn.Body + "\n")
}

func (p *Printer) writeTrait(b *strings.Builder, t *TraitDecl) {
	for _, attr := range t.Attrs {
		b.WriteString(p.Base + attr + "\n")
	}
	b.WriteString(p.Base)
	writeWord(b, t.Vis)
	b.WriteString("trait " + t.Name)
	b.WriteString(FormatGenericParams(t.Generics.Params))
	b.WriteString(FormatWhere(t.Generics.Where))
	b.WriteString(" {\n")
	for _, m := range t.Methods {
		b.WriteString(p.Base + p.Indent + formatMethodSig(m) + ";\n")
	}
	b.WriteString(p.Base + "}\n")
}

func (p *Printer) writeImpl(b *strings.Builder, impl *ImplDecl) {
	b.WriteString(p.Base + "impl")
	b.WriteString(FormatGenericParams(impl.Generics.Params))
	b.WriteString(" " + FormatType(impl.Trait) + " for " + FormatType(impl.SelfType))
	b.WriteString(FormatWhere(impl.Generics.Where))
	b.WriteString(" {\n")
	for _, m := range impl.Methods {
		b.WriteString(p.Base + p.Indent + formatMethodSig(m.Sig) + " {\n")
		b.WriteString(p.Base + p.Indent + p.Indent + formatCall(m.Body) + "\n")
		b.WriteString(p.Base + p.Indent + "}\n")
	}
	b.WriteString(p.Base + "}\n")
}

func writeWord(b *strings.Builder, word string) {
	if word != "" {
		b.WriteString(word + " ")
	}
}

func formatMethodSig(m MethodSig) string {
	var b strings.Builder
	b.WriteString("fn " + m.Name + "(self")
	for _, param := range m.Params {
		b.WriteString(", " + FormatParam(param))
	}
	b.WriteString(")")
	if m.Output != nil {
		b.WriteString(" -> " + FormatType(m.Output))
	}
	return b.String()
}

func formatCall(c CallExpr) string {
	return c.Func + "(" + strings.Join(c.Args, ", ") + ")"
}

// FormatParam prints a single parameter with its attributes.
func FormatParam(param Param) string {
	var b strings.Builder
	for _, attr := range param.Attrs {
		b.WriteString(attr + " ")
	}
	b.WriteString(param.Pattern)
	if param.Kind == ParamNamed && param.Type != nil {
		b.WriteString(": " + FormatType(param.Type))
	}
	return b.String()
}

// FormatGenericParams prints `<...>` in declaration form, or "" when empty.
func FormatGenericParams(params []GenericParam) string {
	if len(params) == 0 {
		return ""
	}
	parts := make([]string, len(params))
	for i, gp := range params {
		parts[i] = FormatGenericParam(gp)
	}
	return "<" + strings.Join(parts, ", ") + ">"
}

// FormatGenericParam prints one generic parameter in declaration form.
func FormatGenericParam(gp GenericParam) string {
	var s string
	switch gp.Kind {
	case GenericConst:
		s = "const " + gp.Name + ": " + FormatType(gp.Type)
	default:
		s = gp.Name
		if len(gp.Bounds) > 0 {
			s += ": " + FormatBounds(gp.Bounds)
		}
	}
	if gp.Default != "" {
		s += " = " + gp.Default
	}
	return s
}

// FormatWhere prints ` where A: B, C: D`, or "" for an empty clause.
func FormatWhere(preds []WherePredicate) string {
	if len(preds) == 0 {
		return ""
	}
	parts := make([]string, len(preds))
	for i, pred := range preds {
		parts[i] = FormatType(pred.Left) + ":"
		if len(pred.Bounds) > 0 {
			parts[i] += " " + FormatBounds(pred.Bounds)
		}
	}
	return " where " + strings.Join(parts, ", ")
}

// FormatBounds joins bounds with ` + `.
func FormatBounds(bounds []Type) string {
	return joinTypes(bounds, " + ")
}

func joinTypes(types []Type, sep string) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = FormatType(t)
	}
	return strings.Join(parts, sep)
}

// FormatType prints a type expression.
func FormatType(t Type) string {
	switch n := t.(type) {
	case nil:
		return ""
	case *PathType:
		var b strings.Builder
		if n.Global {
			b.WriteString("::")
		}
		for i, seg := range n.Segments {
			if i > 0 {
				b.WriteString("::")
			}
			b.WriteString(formatSegment(seg))
		}
		return b.String()
	case *RefType:
		s := "&"
		if n.Lifetime != "" {
			s += n.Lifetime + " "
		}
		if n.Mut {
			s += "mut "
		}
		return s + FormatType(n.Elem)
	case *PtrType:
		if n.Mut {
			return "*mut " + FormatType(n.Elem)
		}
		return "*const " + FormatType(n.Elem)
	case *SliceType:
		return "[" + FormatType(n.Elem) + "]"
	case *ArrayType:
		return "[" + FormatType(n.Elem) + "; " + n.Len + "]"
	case *TupleType:
		switch len(n.Elems) {
		case 0:
			return "()"
		case 1:
			return "(" + FormatType(n.Elems[0]) + ",)"
		}
		return "(" + joinTypes(n.Elems, ", ") + ")"
	case *ParenType:
		return "(" + FormatType(n.Elem) + ")"
	case *ImplTraitType:
		return "impl " + FormatBounds(n.Bounds)
	case *DynTraitType:
		if n.Dyn {
			return "dyn " + FormatBounds(n.Bounds)
		}
		return FormatBounds(n.Bounds)
	case *FnPtrType:
		s := ""
		if n.Prefix != "" {
			s = n.Prefix + " "
		}
		s += "fn(" + joinTypes(n.Inputs, ", ") + ")"
		if n.Output != nil {
			s += " -> " + FormatType(n.Output)
		}
		return s
	case *NeverType:
		return "!"
	case *LifetimeType:
		return n.Name
	case *BindingType:
		return n.Name + " = " + FormatType(n.Type)
	case *ConstraintType:
		return n.Name + ": " + FormatBounds(n.Bounds)
	case *QualifiedBound:
		s := ""
		if n.ForLifetimes != "" {
			s = n.ForLifetimes + " "
		}
		return s + n.Modifier + FormatType(n.Bound)
	case *VerbatimType:
		return n.Text
	}
	return ""
}

func formatSegment(seg PathSegment) string {
	if seg.Parenthesized {
		s := seg.Name + "(" + joinTypes(seg.Inputs, ", ") + ")"
		if seg.Output != nil {
			s += " -> " + FormatType(seg.Output)
		}
		return s
	}
	if len(seg.Args) == 0 {
		return seg.Name
	}
	return seg.Name + "<" + joinTypes(seg.Args, ", ") + ">"
}
