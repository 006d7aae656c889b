package syntax

// CloneType returns a deep copy of t. Emitted units never share type nodes
// with each other or with the input declaration.
func CloneType(t Type) Type {
	switch n := t.(type) {
	case nil:
		return nil
	case *PathType:
		out := &PathType{Global: n.Global, Segments: make([]PathSegment, len(n.Segments))}
		for i, seg := range n.Segments {
			out.Segments[i] = PathSegment{
				Name:          seg.Name,
				Args:          CloneTypes(seg.Args),
				Parenthesized: seg.Parenthesized,
				Inputs:        CloneTypes(seg.Inputs),
				Output:        CloneType(seg.Output),
			}
		}
		return out
	case *RefType:
		return &RefType{Lifetime: n.Lifetime, Mut: n.Mut, Elem: CloneType(n.Elem)}
	case *PtrType:
		return &PtrType{Mut: n.Mut, Elem: CloneType(n.Elem)}
	case *SliceType:
		return &SliceType{Elem: CloneType(n.Elem)}
	case *ArrayType:
		return &ArrayType{Elem: CloneType(n.Elem), Len: n.Len}
	case *TupleType:
		return &TupleType{Elems: CloneTypes(n.Elems)}
	case *ParenType:
		return &ParenType{Elem: CloneType(n.Elem)}
	case *ImplTraitType:
		return &ImplTraitType{Bounds: CloneTypes(n.Bounds)}
	case *DynTraitType:
		return &DynTraitType{Dyn: n.Dyn, Bounds: CloneTypes(n.Bounds)}
	case *FnPtrType:
		return &FnPtrType{Prefix: n.Prefix, Inputs: CloneTypes(n.Inputs), Output: CloneType(n.Output)}
	case *NeverType:
		return &NeverType{}
	case *LifetimeType:
		return &LifetimeType{Name: n.Name}
	case *BindingType:
		return &BindingType{Name: n.Name, Type: CloneType(n.Type)}
	case *ConstraintType:
		return &ConstraintType{Name: n.Name, Bounds: CloneTypes(n.Bounds)}
	case *QualifiedBound:
		return &QualifiedBound{ForLifetimes: n.ForLifetimes, Modifier: n.Modifier, Bound: CloneType(n.Bound)}
	case *VerbatimType:
		return &VerbatimType{Text: n.Text}
	}
	return t
}

// CloneTypes deep-copies a list of types, preserving nil.
func CloneTypes(list []Type) []Type {
	if list == nil {
		return nil
	}
	out := make([]Type, len(list))
	for i, t := range list {
		out[i] = CloneType(t)
	}
	return out
}
