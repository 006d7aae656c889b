package expand

import "github.com/roach88/asmethod/internal/syntax"

// validate runs before anything touches the first parameter.
func validate(fn *syntax.FnDecl) error {
	if len(fn.Params) == 0 {
		return &ShapeError{
			Message: "expected at least one parameter",
			Pos:     fn.ParenPos,
		}
	}
	return nil
}
