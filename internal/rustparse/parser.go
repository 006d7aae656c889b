package rustparse

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"

	"github.com/roach88/asmethod/internal/syntax"
)

// DefaultAttribute is the attribute name ParseFile looks for.
const DefaultAttribute = "as_method"

// Parser wraps a tree-sitter parser configured for Rust. It is not safe for
// concurrent use.
type Parser struct {
	ts        *sitter.Parser
	attribute string
}

// NewParser creates a parser that recognizes the given attribute name
// (DefaultAttribute when empty).
func NewParser(attribute string) *Parser {
	if attribute == "" {
		attribute = DefaultAttribute
	}
	ts := sitter.NewParser()
	ts.SetLanguage(rust.GetLanguage())
	return &Parser{ts: ts, attribute: attribute}
}

// Close releases the underlying tree-sitter parser.
func (p *Parser) Close() {
	p.ts.Close()
}

// Attribute returns the attribute name this parser recognizes.
func (p *Parser) Attribute() string { return p.attribute }

// ParseItem parses src as a single function item, optionally preceded by
// outer attributes and doc comments.
func (p *Parser) ParseItem(ctx context.Context, src []byte) (*syntax.FnDecl, error) {
	tree, err := p.ts.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parsing item: %w", err)
	}
	defer tree.Close()

	c := &converter{src: src}
	root := tree.RootNode()

	var attrs []*sitter.Node
	var fnNode *sitter.Node
	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		switch {
		case child.Type() == "function_item" && fnNode == nil:
			fnNode = child
		case fnNode == nil && isOuterAttribute(c, child):
			attrs = append(attrs, child)
		case isComment(child):
			continue
		case child.Type() == "ERROR":
			return nil, c.errorAt(child, "expected `fn`")
		default:
			if fnNode != nil {
				return nil, c.errorAt(child, "unexpected token after function item")
			}
			return nil, c.errorAt(child, "expected `fn`")
		}
	}
	if fnNode == nil {
		return nil, &ParseError{Message: "expected `fn`", Pos: syntax.Pos{Line: 1, Column: 1}}
	}
	return c.function(fnNode, attrs)
}

// converter turns tree-sitter nodes into syntax values for one source buffer.
type converter struct {
	src      []byte
	filename string
}

func (c *converter) text(n *sitter.Node) string {
	return string(c.src[n.StartByte():n.EndByte()])
}

func (c *converter) pos(n *sitter.Node) syntax.Pos {
	pt := n.StartPoint()
	return syntax.Pos{
		Filename: c.filename,
		Offset:   int(n.StartByte()),
		Line:     int(pt.Row) + 1,
		Column:   int(pt.Column) + 1,
	}
}

func (c *converter) errorAt(n *sitter.Node, format string, args ...any) *ParseError {
	return &ParseError{Message: fmt.Sprintf(format, args...), Pos: c.pos(n)}
}

// firstError finds the first ERROR or MISSING node under n in source order.
func firstError(n *sitter.Node) *sitter.Node {
	if n.Type() == "ERROR" || n.IsMissing() {
		return n
	}
	if !n.HasError() {
		return nil
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if found := firstError(n.Child(i)); found != nil {
			return found
		}
	}
	return nil
}

// namedChildren returns n's named children without comments, which
// tree-sitter attaches anywhere as extras.
func namedChildren(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	out := make([]*sitter.Node, 0, n.NamedChildCount())
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if isComment(child) {
			continue
		}
		out = append(out, child)
	}
	return out
}

// childOfType returns the first direct child of the given node type.
func childOfType(n *sitter.Node, typ string) *sitter.Node {
	for i := 0; i < int(n.ChildCount()); i++ {
		if child := n.Child(i); child.Type() == typ {
			return child
		}
	}
	return nil
}

func isComment(n *sitter.Node) bool {
	return n.Type() == "line_comment" || n.Type() == "block_comment"
}

// isOuterAttribute reports whether n belongs to the item that follows it:
// an outer attribute or an outer doc comment.
func isOuterAttribute(c *converter, n *sitter.Node) bool {
	if n.Type() == "attribute_item" {
		return true
	}
	if !isComment(n) {
		return false
	}
	text := c.text(n)
	switch {
	case strings.HasPrefix(text, "////"), strings.HasPrefix(text, "/***"), strings.HasPrefix(text, "/**/"):
		return false
	case strings.HasPrefix(text, "///"), strings.HasPrefix(text, "/**"):
		return true
	}
	return false
}
