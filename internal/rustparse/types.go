package rustparse

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/roach88/asmethod/internal/syntax"
)

// typ converts a type node. Forms without a syntax counterpart become
// VerbatimType.
func (c *converter) typ(n *sitter.Node) (syntax.Type, error) {
	if n == nil {
		return nil, nil
	}
	switch n.Type() {
	case "type_identifier", "primitive_type", "identifier", "self", "super", "crate", "metavariable":
		return syntax.Ident(c.text(n)), nil

	case "scoped_type_identifier", "scoped_identifier", "generic_type", "generic_type_with_turbofish":
		return c.pathType(n)

	case "reference_type":
		ref := &syntax.RefType{}
		if lt := childOfType(n, "lifetime"); lt != nil {
			ref.Lifetime = c.text(lt)
		}
		ref.Mut = childOfType(n, "mutable_specifier") != nil
		elem, err := c.typ(n.ChildByFieldName("type"))
		if err != nil {
			return nil, err
		}
		ref.Elem = elem
		return ref, nil

	case "pointer_type":
		elem, err := c.typ(n.ChildByFieldName("type"))
		if err != nil {
			return nil, err
		}
		return &syntax.PtrType{Mut: childOfType(n, "mutable_specifier") != nil, Elem: elem}, nil

	case "array_type":
		elem, err := c.typ(n.ChildByFieldName("element"))
		if err != nil {
			return nil, err
		}
		if length := n.ChildByFieldName("length"); length != nil {
			return &syntax.ArrayType{Elem: elem, Len: collapseSpace(c.text(length))}, nil
		}
		return &syntax.SliceType{Elem: elem}, nil

	case "unit_type":
		return &syntax.TupleType{}, nil

	case "tuple_type":
		elems, err := c.typeList(namedChildren(n))
		if err != nil {
			return nil, err
		}
		if len(elems) == 1 && childOfType(n, ",") == nil {
			return &syntax.ParenType{Elem: elems[0]}, nil
		}
		return &syntax.TupleType{Elems: elems}, nil

	case "abstract_type":
		bounds, err := c.traitOperand(n)
		if err != nil {
			return nil, err
		}
		return &syntax.ImplTraitType{Bounds: bounds}, nil

	case "dynamic_type":
		bounds, err := c.traitOperand(n)
		if err != nil {
			return nil, err
		}
		return &syntax.DynTraitType{Dyn: true, Bounds: bounds}, nil

	case "bounded_type":
		return c.boundedType(n)

	case "function_type":
		return c.functionType(n)

	case "empty_type", "never_type":
		return &syntax.NeverType{}, nil

	case "lifetime":
		return &syntax.LifetimeType{Name: c.text(n)}, nil

	case "removed_trait_bound":
		inner, err := c.typ(lastNamed(n))
		if err != nil {
			return nil, err
		}
		return &syntax.QualifiedBound{Modifier: "?", Bound: inner}, nil

	case "higher_ranked_trait_bound":
		inner, err := c.typ(n.ChildByFieldName("type"))
		if err != nil {
			return nil, err
		}
		return &syntax.QualifiedBound{
			ForLifetimes: "for" + collapseSpace(c.text(n.ChildByFieldName("type_parameters"))),
			Bound:        inner,
		}, nil
	}
	return &syntax.VerbatimType{Text: collapseSpace(c.text(n))}, nil
}

func (c *converter) typeList(nodes []*sitter.Node) ([]syntax.Type, error) {
	out := make([]syntax.Type, 0, len(nodes))
	for _, node := range nodes {
		t, err := c.typ(node)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// pathType flattens nested scoped and generic nodes into one path.
func (c *converter) pathType(n *sitter.Node) (syntax.Type, error) {
	path := &syntax.PathType{}
	ok, err := c.appendSegments(path, n)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &syntax.VerbatimType{Text: collapseSpace(c.text(n))}, nil
	}
	return path, nil
}

// appendSegments reports false when the path contains a form it cannot
// represent, such as a qualified `<T as Trait>::` prefix.
func (c *converter) appendSegments(path *syntax.PathType, n *sitter.Node) (bool, error) {
	switch n.Type() {
	case "type_identifier", "primitive_type", "identifier", "self", "super", "crate", "metavariable":
		path.Segments = append(path.Segments, syntax.PathSegment{Name: c.text(n)})
		return true, nil

	case "scoped_type_identifier", "scoped_identifier":
		prefix := n.ChildByFieldName("path")
		if prefix == nil {
			if len(path.Segments) == 0 {
				path.Global = true
			}
		} else {
			ok, err := c.appendSegments(path, prefix)
			if !ok || err != nil {
				return ok, err
			}
		}
		name := n.ChildByFieldName("name")
		if name == nil {
			return false, nil
		}
		path.Segments = append(path.Segments, syntax.PathSegment{Name: c.text(name)})
		return true, nil

	case "generic_type", "generic_type_with_turbofish":
		ok, err := c.appendSegments(path, n.ChildByFieldName("type"))
		if !ok || err != nil {
			return ok, err
		}
		args, err := c.typeArguments(n.ChildByFieldName("type_arguments"))
		if err != nil {
			return false, err
		}
		path.Segments[len(path.Segments)-1].Args = args
		return true, nil
	}
	return false, nil
}

// typeArguments converts `<...>`. A trait_bounds node following an argument
// turns it into an associated type constraint.
func (c *converter) typeArguments(n *sitter.Node) ([]syntax.Type, error) {
	var out []syntax.Type
	for _, child := range namedChildren(n) {
		switch child.Type() {
		case "trait_bounds":
			if len(out) == 0 {
				continue
			}
			bounds, err := c.bounds(child)
			if err != nil {
				return nil, err
			}
			out[len(out)-1] = &syntax.ConstraintType{
				Name:   syntax.FormatType(out[len(out)-1]),
				Bounds: bounds,
			}
		case "type_binding":
			name := c.text(child.ChildByFieldName("name"))
			if ta := child.ChildByFieldName("type_arguments"); ta != nil {
				name += collapseSpace(c.text(ta))
			}
			t, err := c.typ(child.ChildByFieldName("type"))
			if err != nil {
				return nil, err
			}
			out = append(out, &syntax.BindingType{Name: name, Type: t})
		default:
			t, err := c.typ(child)
			if err != nil {
				return nil, err
			}
			out = append(out, t)
		}
	}
	return out, nil
}

// traitOperand returns the bounds named by an abstract_type or dynamic_type
// node's trait field.
func (c *converter) traitOperand(n *sitter.Node) ([]syntax.Type, error) {
	trait := n.ChildByFieldName("trait")
	if trait == nil {
		trait = lastNamed(n)
	}
	var bounds []syntax.Type
	if trait.Type() == "bounded_type" {
		var err error
		if bounds, err = c.typeList(boundedOperands(trait)); err != nil {
			return nil, err
		}
	} else {
		t, err := c.typ(trait)
		if err != nil {
			return nil, err
		}
		bounds = []syntax.Type{t}
	}
	if tp := childOfType(n, "type_parameters"); tp != nil && len(bounds) > 0 {
		bounds[0] = &syntax.QualifiedBound{
			ForLifetimes: "for" + collapseSpace(c.text(tp)),
			Bound:        bounds[0],
		}
	}
	return bounds, nil
}

// boundedType handles `A + B + C`. The grammar binds `impl` and `dyn` to the
// first operand only, so the remaining operands are merged into its bounds.
func (c *converter) boundedType(n *sitter.Node) (syntax.Type, error) {
	operands := boundedOperands(n)
	rest, err := c.typeList(operands[1:])
	if err != nil {
		return nil, err
	}
	switch head := operands[0]; head.Type() {
	case "abstract_type":
		first, err := c.traitOperand(head)
		if err != nil {
			return nil, err
		}
		return &syntax.ImplTraitType{Bounds: append(first, rest...)}, nil
	case "dynamic_type":
		first, err := c.traitOperand(head)
		if err != nil {
			return nil, err
		}
		return &syntax.DynTraitType{Dyn: true, Bounds: append(first, rest...)}, nil
	default:
		first, err := c.typ(head)
		if err != nil {
			return nil, err
		}
		return &syntax.DynTraitType{Bounds: append([]syntax.Type{first}, rest...)}, nil
	}
}

// boundedOperands flattens the left-nested bounded_type chain.
func boundedOperands(n *sitter.Node) []*sitter.Node {
	var out []*sitter.Node
	for _, child := range namedChildren(n) {
		if child.Type() == "bounded_type" {
			out = append(out, boundedOperands(child)...)
			continue
		}
		out = append(out, child)
	}
	return out
}

// functionType handles both `fn(A) -> B` pointers and the `Fn(A) -> B`
// trait sugar, which tree-sitter shares one node kind for.
func (c *converter) functionType(n *sitter.Node) (syntax.Type, error) {
	inputs, err := c.fnInputs(n.ChildByFieldName("parameters"))
	if err != nil {
		return nil, err
	}
	output, err := c.typ(n.ChildByFieldName("return_type"))
	if err != nil {
		return nil, err
	}

	var forLifetimes string
	if fl := childOfType(n, "for_lifetimes"); fl != nil {
		forLifetimes = collapseSpace(c.text(fl))
	}

	if trait := n.ChildByFieldName("trait"); trait != nil {
		path := &syntax.PathType{}
		ok, err := c.appendSegments(path, trait)
		if err != nil {
			return nil, err
		}
		if !ok {
			return &syntax.VerbatimType{Text: collapseSpace(c.text(n))}, nil
		}
		last := &path.Segments[len(path.Segments)-1]
		last.Parenthesized = true
		last.Inputs = inputs
		last.Output = output
		if forLifetimes != "" {
			return &syntax.QualifiedBound{ForLifetimes: forLifetimes, Bound: path}, nil
		}
		return path, nil
	}

	fnTok := childOfType(n, "fn")
	if fnTok == nil {
		return &syntax.VerbatimType{Text: collapseSpace(c.text(n))}, nil
	}
	prefix := collapseSpace(string(c.src[n.StartByte():fnTok.StartByte()]))
	return &syntax.FnPtrType{Prefix: prefix, Inputs: inputs, Output: output}, nil
}

// fnInputs converts the parameter list of a function type. Named inputs
// (`fn(x: u8)`) keep their name by staying verbatim.
func (c *converter) fnInputs(n *sitter.Node) ([]syntax.Type, error) {
	var out []syntax.Type
	for _, child := range namedChildren(n) {
		switch child.Type() {
		case "attribute_item":
			continue
		case "parameter", "variadic_parameter":
			out = append(out, &syntax.VerbatimType{Text: collapseSpace(c.text(child))})
		default:
			t, err := c.typ(child)
			if err != nil {
				return nil, err
			}
			out = append(out, t)
		}
	}
	if out == nil {
		out = []syntax.Type{}
	}
	return out, nil
}

// bounds converts a trait_bounds node.
func (c *converter) bounds(n *sitter.Node) ([]syntax.Type, error) {
	return c.typeList(namedChildren(n))
}

func lastNamed(n *sitter.Node) *sitter.Node {
	children := namedChildren(n)
	if len(children) == 0 {
		return n
	}
	return children[len(children)-1]
}
