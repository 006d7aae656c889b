package syntax

// Type is a Rust type expression. Bound lists (trait bounds, lifetime bounds)
// reuse the same interface: a trait bound is a PathType, a lifetime bound is
// a LifetimeType, and modified bounds are QualifiedBound.
type Type interface {
	typeNode()
}

// PathSegment is one `::`-separated component of a path.
//
// Args holds angle-bracketed arguments (`Vec<T>`). Parenthesized is set for
// the `Fn(A, B) -> C` sugar, in which case Inputs and Output are used instead.
type PathSegment struct {
	Name          string
	Args          []Type
	Parenthesized bool
	Inputs        []Type
	Output        Type
}

// PathType is a named type such as `T`, `Vec<T>` or `std::io::Result<()>`.
type PathType struct {
	Global   bool // leading `::`
	Segments []PathSegment
}

// RefType is `&'a mut T`.
type RefType struct {
	Lifetime string
	Mut      bool
	Elem     Type
}

// PtrType is `*const T` or `*mut T`.
type PtrType struct {
	Mut  bool
	Elem Type
}

// SliceType is `[T]`.
type SliceType struct {
	Elem Type
}

// ArrayType is `[T; N]`. Len is the verbatim length expression.
type ArrayType struct {
	Elem Type
	Len  string
}

// TupleType is `(A, B)`; the empty tuple is the unit type `()`.
type TupleType struct {
	Elems []Type
}

// ParenType is a parenthesized type such as `(dyn Fn() + Send)`.
type ParenType struct {
	Elem Type
}

// ImplTraitType is an argument-position existential: `impl Bound + Bound`.
type ImplTraitType struct {
	Bounds []Type
}

// DynTraitType is a trait object. Dyn is false for the bare form `Box<Trait>`.
type DynTraitType struct {
	Dyn    bool
	Bounds []Type
}

// FnPtrType is a function pointer such as `for<'a> unsafe extern "C" fn(&'a u8) -> u8`.
// Prefix holds everything before `fn` verbatim.
type FnPtrType struct {
	Prefix string
	Inputs []Type
	Output Type
}

// NeverType is `!`.
type NeverType struct{}

// LifetimeType is a lifetime in argument or bound position, e.g. `'a`.
type LifetimeType struct {
	Name string
}

// BindingType is an associated type binding in generic arguments: `Item = T`.
type BindingType struct {
	Name string
	Type Type
}

// ConstraintType is an associated type constraint in generic arguments: `Item: Display`.
type ConstraintType struct {
	Name   string
	Bounds []Type
}

// QualifiedBound is a bound with a modifier or higher-ranked binder:
// `?Sized` or `for<'a> Fn(&'a T)`.
type QualifiedBound struct {
	ForLifetimes string // verbatim `for<'a>`
	Modifier     string // "?" or "~const"
	Bound        Type
}

// VerbatimType is any type form the tree does not model. It is printed back
// exactly and never descended into.
type VerbatimType struct {
	Text string
}

func (*PathType) typeNode()       {}
func (*RefType) typeNode()        {}
func (*PtrType) typeNode()        {}
func (*SliceType) typeNode()      {}
func (*ArrayType) typeNode()      {}
func (*TupleType) typeNode()      {}
func (*ParenType) typeNode()      {}
func (*ImplTraitType) typeNode()  {}
func (*DynTraitType) typeNode()   {}
func (*FnPtrType) typeNode()      {}
func (*NeverType) typeNode()      {}
func (*LifetimeType) typeNode()   {}
func (*BindingType) typeNode()    {}
func (*ConstraintType) typeNode() {}
func (*QualifiedBound) typeNode() {}
func (*VerbatimType) typeNode()   {}

// Ident returns a single-segment path type, the usual way to refer to a
// generic parameter.
func Ident(name string) *PathType {
	return &PathType{Segments: []PathSegment{{Name: name}}}
}
