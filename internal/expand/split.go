package expand

import (
	"fmt"

	"github.com/roach88/asmethod/internal/syntax"
)

// methodShape is the function signature split into the receiver and the
// arguments the generated method takes after `self`.
type methodShape struct {
	Receiver syntax.Type
	ArgTypes []syntax.Type
	ArgNames []string // x1, x2, ... in positional order
}

// split rejects receivers anywhere in the parameter list. The generated
// method's receiver is the value itself, so a `self` parameter has no
// meaning here, first or later.
func split(fn *syntax.FnDecl) (*methodShape, error) {
	first := fn.Params[0]
	if first.Kind == syntax.ParamSelf {
		return nil, &ShapeError{Message: "unexpected self receiver", Pos: first.Pos}
	}

	shape := &methodShape{Receiver: first.Type}
	for _, param := range fn.Params[1:] {
		if param.Kind == syntax.ParamSelf {
			return nil, &ShapeError{Message: "unexpected self receiver", Pos: param.Pos}
		}
		shape.ArgTypes = append(shape.ArgTypes, param.Type)
	}

	shape.ArgNames = make([]string, len(shape.ArgTypes))
	for i := range shape.ArgTypes {
		shape.ArgNames[i] = fmt.Sprintf("x%d", i+1)
	}
	return shape, nil
}
