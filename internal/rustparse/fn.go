package rustparse

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/roach88/asmethod/internal/syntax"
)

// function converts a function_item node. attrs are the outer attributes and
// doc comments that precede it and should stay on the function.
func (c *converter) function(n *sitter.Node, attrs []*sitter.Node) (*syntax.FnDecl, error) {
	if bad := firstError(n); bad != nil {
		return nil, c.syntaxError(bad)
	}

	fn := &syntax.FnDecl{Pos: c.pos(n)}
	for _, a := range attrs {
		fn.Attrs = append(fn.Attrs, strings.TrimRight(c.text(a), "\r\n"))
	}
	if vis := childOfType(n, "visibility_modifier"); vis != nil {
		fn.Vis = collapseSpace(c.text(vis))
	}
	if mods := childOfType(n, "function_modifiers"); mods != nil {
		fn.Qualifiers = collapseSpace(c.text(mods))
	}
	fn.Name = c.text(n.ChildByFieldName("name"))

	var err error
	if tp := n.ChildByFieldName("type_parameters"); tp != nil {
		if fn.Generics.Params, err = c.genericParams(tp); err != nil {
			return nil, err
		}
	}
	if wc := childOfType(n, "where_clause"); wc != nil {
		if fn.Generics.Where, err = c.whereClause(wc); err != nil {
			return nil, err
		}
	}

	params := n.ChildByFieldName("parameters")
	fn.ParenPos = c.pos(params)
	if fn.Params, err = c.params(params); err != nil {
		return nil, err
	}

	if ret := n.ChildByFieldName("return_type"); ret != nil {
		if fn.Output, err = c.typ(ret); err != nil {
			return nil, err
		}
	}

	body := n.ChildByFieldName("body")
	if body == nil {
		return nil, c.errorAt(n, "expected function body")
	}
	fn.Body = c.text(body)
	return fn, nil
}

// syntaxError describes an ERROR or MISSING node.
func (c *converter) syntaxError(bad *sitter.Node) *ParseError {
	if bad.IsMissing() {
		return c.errorAt(bad, "expected `%s`", bad.Type())
	}
	text := c.text(bad)
	if i := strings.IndexAny(text, "\r\n"); i >= 0 {
		text = text[:i]
	}
	if len(text) > 32 {
		text = text[:32] + "..."
	}
	if text == "" {
		return c.errorAt(bad, "unexpected end of input")
	}
	return c.errorAt(bad, "unexpected `%s`", text)
}

// params converts a parameters node. Attributes inside the list belong to
// the parameter that follows them.
func (c *converter) params(n *sitter.Node) ([]syntax.Param, error) {
	var out []syntax.Param
	var pending []string
	for _, child := range namedChildren(n) {
		switch child.Type() {
		case "attribute_item":
			pending = append(pending, c.text(child))
			continue
		case "self_parameter":
			self := childOfType(child, "self")
			if self == nil {
				self = child
			}
			out = append(out, syntax.Param{
				Kind:    syntax.ParamSelf,
				Attrs:   pending,
				Pattern: collapseSpace(c.text(child)),
				Pos:     c.pos(self),
			})
		case "parameter":
			param, err := c.param(child)
			if err != nil {
				return nil, err
			}
			param.Attrs = pending
			out = append(out, param)
		case "variadic_parameter":
			return nil, c.errorAt(child, "variadic parameters are not supported")
		default:
			return nil, c.errorAt(child, "expected parameter name")
		}
		pending = nil
	}
	return out, nil
}

func (c *converter) param(n *sitter.Node) (syntax.Param, error) {
	pattern := n.ChildByFieldName("pattern")
	typeNode := n.ChildByFieldName("type")
	patText := collapseSpace(string(c.src[n.StartByte():pattern.EndByte()]))

	if pattern.Type() == "self" {
		t, err := c.typ(typeNode)
		if err != nil {
			return syntax.Param{}, err
		}
		return syntax.Param{
			Kind:    syntax.ParamSelf,
			Pattern: patText + ": " + syntax.FormatType(t),
			Type:    t,
			Pos:     c.pos(pattern),
		}, nil
	}

	t, err := c.typ(typeNode)
	if err != nil {
		return syntax.Param{}, err
	}
	return syntax.Param{
		Kind:    syntax.ParamNamed,
		Pattern: patText,
		Type:    t,
		Pos:     c.pos(n),
	}, nil
}

// collapseSpace joins the whitespace-separated fields of s with single spaces.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
