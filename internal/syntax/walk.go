package syntax

// Visitor is called for every type position reached by Walk. It may replace
// the node through the pointer. Returning false stops descent into the
// (possibly replaced) node's children.
type Visitor func(t *Type) bool

// Walk visits *t and then, in source order, every nested type position.
// Verbatim nodes are leaves. Nil slots are skipped.
func Walk(t *Type, visit Visitor) {
	if t == nil || *t == nil {
		return
	}
	if !visit(t) {
		return
	}

	switch n := (*t).(type) {
	case *PathType:
		for i := range n.Segments {
			walkSegment(&n.Segments[i], visit)
		}
	case *RefType:
		Walk(&n.Elem, visit)
	case *PtrType:
		Walk(&n.Elem, visit)
	case *SliceType:
		Walk(&n.Elem, visit)
	case *ArrayType:
		Walk(&n.Elem, visit)
	case *TupleType:
		walkList(n.Elems, visit)
	case *ParenType:
		Walk(&n.Elem, visit)
	case *ImplTraitType:
		walkList(n.Bounds, visit)
	case *DynTraitType:
		walkList(n.Bounds, visit)
	case *FnPtrType:
		walkList(n.Inputs, visit)
		Walk(&n.Output, visit)
	case *BindingType:
		Walk(&n.Type, visit)
	case *ConstraintType:
		walkList(n.Bounds, visit)
	case *QualifiedBound:
		Walk(&n.Bound, visit)
	}
}

func walkSegment(seg *PathSegment, visit Visitor) {
	walkList(seg.Args, visit)
	walkList(seg.Inputs, visit)
	Walk(&seg.Output, visit)
}

func walkList(list []Type, visit Visitor) {
	for i := range list {
		Walk(&list[i], visit)
	}
}

// Count returns the number of nodes in t for which match returns true,
// descending through every position Walk reaches.
func Count(t Type, match func(Type) bool) int {
	n := 0
	Walk(&t, func(p *Type) bool {
		if match(*p) {
			n++
		}
		return true
	})
	return n
}
