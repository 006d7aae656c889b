package rustparse

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/roach88/asmethod/internal/syntax"
)

// Annotated is one item carrying the expansion attribute.
//
// Start..End is the byte range the expansion replaces: from the first
// attribute or doc comment attached to the item through the end of the item.
// Exactly one of Fn and Err is set.
type Annotated struct {
	Name    string     // function name, or "" when the item is not a function
	Attr    string     // attribute argument text, delimiters stripped
	AttrPos syntax.Pos // position of the attribute
	Start   int
	End     int
	Indent  string // leading whitespace of the line the item starts on
	Fn      *syntax.FnDecl
	Err     error
}

// File is a parsed source file and its annotated items in source order.
type File struct {
	Filename string
	Src      []byte
	Items    []*Annotated
}

// ParseFile parses a whole source file and collects the items carrying the
// parser's attribute, including those inside inline modules. A syntax error
// outside annotated items fails the whole file.
func (p *Parser) ParseFile(ctx context.Context, filename string, src []byte) (*File, error) {
	tree, err := p.ts.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}
	defer tree.Close()

	s := &scanner{
		converter: converter{src: src, filename: filename},
		attribute: p.attribute,
	}
	if err := s.scope(tree.RootNode()); err != nil {
		return nil, err
	}
	return &File{Filename: filename, Src: src, Items: s.items}, nil
}

type scanner struct {
	converter
	attribute string
	items     []*Annotated
}

// scope scans the items of a source_file or declaration_list.
func (s *scanner) scope(n *sitter.Node) error {
	var run []*sitter.Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		switch {
		case isOuterAttribute(&s.converter, child):
			run = append(run, child)
			continue
		case isComment(child):
			continue
		case child.Type() == "ERROR":
			return s.syntaxError(child)
		}

		if marker := s.marker(run); marker != nil {
			s.collect(child, run, marker)
		} else if child.Type() == "mod_item" {
			if body := child.ChildByFieldName("body"); body != nil {
				if err := s.scope(body); err != nil {
					return err
				}
			}
		}
		run = nil
	}
	return nil
}

// marker returns the first attribute in run that names the expansion
// attribute.
func (s *scanner) marker(run []*sitter.Node) *sitter.Node {
	for _, n := range run {
		if n.Type() != "attribute_item" {
			continue
		}
		if name, _ := s.splitAttribute(n); matchesAttribute(name, s.attribute) {
			return n
		}
	}
	return nil
}

// collect records one annotated item. The marker is dropped from the
// function's attributes; everything else in the run is kept in order.
func (s *scanner) collect(item *sitter.Node, run []*sitter.Node, marker *sitter.Node) {
	start := int(run[0].StartByte())
	a := &Annotated{
		AttrPos: s.pos(marker),
		Start:   start,
		End:     int(item.EndByte()),
		Indent:  lineIndent(s.src, start),
	}
	_, a.Attr = s.splitAttribute(marker)

	var kept []*sitter.Node
	for _, n := range run {
		if n != marker {
			kept = append(kept, n)
		}
	}

	switch item.Type() {
	case "function_item":
		a.Name = s.text(item.ChildByFieldName("name"))
		a.Fn, a.Err = s.function(item, kept)
		if a.Err != nil {
			a.Fn = nil
		}
	case "function_signature_item":
		a.Name = s.text(item.ChildByFieldName("name"))
		a.Err = s.errorAt(item, "expected function body")
	default:
		a.Err = s.errorAt(item, "expected `fn`")
	}
	s.items = append(s.items, a)
}

// splitAttribute returns the path of an attribute_item and its argument
// text with the outer delimiters removed.
func (s *scanner) splitAttribute(n *sitter.Node) (name, args string) {
	attr := childOfType(n, "attribute")
	if attr == nil || attr.NamedChildCount() == 0 {
		return "", ""
	}
	path := attr.NamedChild(0)
	name = strings.Join(strings.Fields(s.text(path)), "")
	args = strings.TrimSpace(string(s.src[path.EndByte():attr.EndByte()]))
	if len(args) >= 2 && strings.ContainsRune("([{", rune(args[0])) {
		args = strings.TrimSpace(args[1 : len(args)-1])
	}
	return name, args
}

// matchesAttribute accepts the bare name and any path ending in it.
func matchesAttribute(path, name string) bool {
	return path == name || strings.HasSuffix(path, "::"+name)
}

// lineIndent returns the whitespace between the start of the line and
// offset, or "" when other text precedes offset on that line.
func lineIndent(src []byte, offset int) string {
	lineStart := offset
	for lineStart > 0 && src[lineStart-1] != '\n' {
		lineStart--
	}
	indent := string(src[lineStart:offset])
	if strings.TrimLeft(indent, " \t") != "" {
		return ""
	}
	return indent
}

// Rewrite returns the source with every annotated item replaced by
// render(item). Rendered text is expected to carry item.Indent on each line
// and end with a newline; both are trimmed at the splice points.
func (f *File) Rewrite(render func(*Annotated) string) []byte {
	var b strings.Builder
	b.Grow(len(f.Src))
	last := 0
	for _, item := range f.Items {
		b.Write(f.Src[last:item.Start])
		out := strings.TrimPrefix(render(item), item.Indent)
		out = strings.TrimSuffix(out, "\n")
		b.WriteString(out)
		last = item.End
	}
	b.Write(f.Src[last:])
	return []byte(b.String())
}
