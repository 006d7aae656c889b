package rustparse

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/roach88/asmethod/internal/syntax"
)

// genericParams converts a type_parameters node. Both the older node kinds
// (constrained_type_parameter, optional_type_parameter) and the newer
// type_parameter/lifetime_parameter are accepted.
func (c *converter) genericParams(n *sitter.Node) ([]syntax.GenericParam, error) {
	var out []syntax.GenericParam
	for _, child := range namedChildren(n) {
		if child.Type() == "attribute_item" {
			continue
		}
		gp, err := c.genericParam(child)
		if err != nil {
			return nil, err
		}
		out = append(out, gp)
	}
	return out, nil
}

func (c *converter) genericParam(n *sitter.Node) (syntax.GenericParam, error) {
	switch n.Type() {
	case "lifetime":
		return syntax.GenericParam{Kind: syntax.GenericLifetime, Name: c.text(n)}, nil

	case "type_identifier", "metavariable":
		return syntax.GenericParam{Kind: syntax.GenericTypeParam, Name: c.text(n)}, nil

	case "constrained_type_parameter":
		left := n.ChildByFieldName("left")
		gp := syntax.GenericParam{Kind: syntax.GenericTypeParam, Name: c.text(left)}
		if left.Type() == "lifetime" {
			gp.Kind = syntax.GenericLifetime
		}
		bounds, err := c.bounds(n.ChildByFieldName("bounds"))
		if err != nil {
			return gp, err
		}
		gp.Bounds = bounds
		return gp, nil

	case "optional_type_parameter":
		gp, err := c.genericParam(n.ChildByFieldName("name"))
		if err != nil {
			return gp, err
		}
		gp.Default = collapseSpace(c.text(n.ChildByFieldName("default_type")))
		return gp, nil

	case "type_parameter", "lifetime_parameter":
		name := n.ChildByFieldName("name")
		if name == nil {
			name = namedChildren(n)[0]
		}
		gp := syntax.GenericParam{Kind: syntax.GenericTypeParam, Name: c.text(name)}
		if n.Type() == "lifetime_parameter" {
			gp.Kind = syntax.GenericLifetime
		}
		if b := n.ChildByFieldName("bounds"); b != nil {
			bounds, err := c.bounds(b)
			if err != nil {
				return gp, err
			}
			gp.Bounds = bounds
		}
		if d := n.ChildByFieldName("default_type"); d != nil {
			gp.Default = collapseSpace(c.text(d))
		}
		return gp, nil

	case "const_parameter":
		t, err := c.typ(n.ChildByFieldName("type"))
		if err != nil {
			return syntax.GenericParam{}, err
		}
		gp := syntax.GenericParam{
			Kind: syntax.GenericConst,
			Name: c.text(n.ChildByFieldName("name")),
			Type: t,
		}
		if v := n.ChildByFieldName("value"); v != nil {
			gp.Default = collapseSpace(c.text(v))
		}
		return gp, nil
	}
	return syntax.GenericParam{}, c.errorAt(n, "unsupported generic parameter `%s`", collapseSpace(c.text(n)))
}

// whereClause converts each where_predicate into a WherePredicate.
func (c *converter) whereClause(n *sitter.Node) ([]syntax.WherePredicate, error) {
	var out []syntax.WherePredicate
	for _, pred := range namedChildren(n) {
		if pred.Type() != "where_predicate" {
			continue
		}
		left, err := c.typ(pred.ChildByFieldName("left"))
		if err != nil {
			return nil, err
		}
		bounds, err := c.bounds(pred.ChildByFieldName("bounds"))
		if err != nil {
			return nil, err
		}
		out = append(out, syntax.WherePredicate{Left: left, Bounds: bounds})
	}
	return out, nil
}
