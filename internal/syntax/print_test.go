package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatType(t *testing.T) {
	tests := []struct {
		name string
		typ  Type
		want string
	}{
		{"ident", Ident("T"), "T"},
		{"global path", &PathType{Global: true, Segments: []PathSegment{{Name: "std"}, {Name: "fmt"}, {Name: "Debug"}}}, "::std::fmt::Debug"},
		{"generic", &PathType{Segments: []PathSegment{{Name: "HashMap", Args: []Type{Ident("K"), Ident("V")}}}}, "HashMap<K, V>"},
		{"ref", &RefType{Lifetime: "'a", Mut: true, Elem: Ident("T")}, "&'a mut T"},
		{"const ptr", &PtrType{Elem: Ident("u8")}, "*const u8"},
		{"mut ptr", &PtrType{Mut: true, Elem: Ident("u8")}, "*mut u8"},
		{"slice", &SliceType{Elem: Ident("u8")}, "[u8]"},
		{"array", &ArrayType{Elem: Ident("u8"), Len: "N"}, "[u8; N]"},
		{"unit", &TupleType{}, "()"},
		{"one tuple", &TupleType{Elems: []Type{Ident("A")}}, "(A,)"},
		{"pair", &TupleType{Elems: []Type{Ident("A"), Ident("B")}}, "(A, B)"},
		{"paren", &ParenType{Elem: &DynTraitType{Dyn: true, Bounds: []Type{Ident("A"), Ident("Send")}}}, "(dyn A + Send)"},
		{"impl", &ImplTraitType{Bounds: []Type{Ident("A"), &LifetimeType{Name: "'a"}}}, "impl A + 'a"},
		{"bare trait object", &DynTraitType{Bounds: []Type{Ident("Tr")}}, "Tr"},
		{"fn ptr", &FnPtrType{Prefix: `unsafe extern "C"`, Inputs: []Type{Ident("u8")}, Output: Ident("u8")}, `unsafe extern "C" fn(u8) -> u8`},
		{"fn sugar", &PathType{Segments: []PathSegment{{Name: "FnMut", Parenthesized: true, Inputs: []Type{}}}}, "FnMut()"},
		{"never", &NeverType{}, "!"},
		{"binding", &BindingType{Name: "Item", Type: Ident("u8")}, "Item = u8"},
		{"constraint", &ConstraintType{Name: "Item", Bounds: []Type{Ident("Debug")}}, "Item: Debug"},
		{"maybe sized", &QualifiedBound{Modifier: "?", Bound: Ident("Sized")}, "?Sized"},
		{"higher ranked", &QualifiedBound{ForLifetimes: "for<'a>", Bound: Ident("Tr")}, "for<'a> Tr"},
		{"verbatim", &VerbatimType{Text: "<T as Tr>::Out"}, "<T as Tr>::Out"},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatType(tt.typ))
		})
	}
}

func TestFormatGenericParam(t *testing.T) {
	assert.Equal(t, "'a", FormatGenericParam(GenericParam{Kind: GenericLifetime, Name: "'a"}))
	assert.Equal(t, "T: Clone + Send = u8", FormatGenericParam(GenericParam{
		Kind: GenericTypeParam, Name: "T", Bounds: []Type{Ident("Clone"), Ident("Send")}, Default: "u8",
	}))
	assert.Equal(t, "const N: usize = 3", FormatGenericParam(GenericParam{
		Kind: GenericConst, Name: "N", Type: Ident("usize"), Default: "3",
	}))
	assert.Equal(t, "", FormatGenericParams(nil))
}

func TestFormatWhere(t *testing.T) {
	preds := []WherePredicate{
		{Left: Ident("T"), Bounds: []Type{Ident("Clone")}},
		{Left: &LifetimeType{Name: "'a"}, Bounds: []Type{&LifetimeType{Name: "'b"}}},
	}
	assert.Equal(t, " where T: Clone, 'a: 'b", FormatWhere(preds))
	assert.Equal(t, "", FormatWhere(nil))
}

func TestFormatParam(t *testing.T) {
	assert.Equal(t, "#[cfg(x)] mut v: u8", FormatParam(Param{
		Kind: ParamNamed, Attrs: []string{"#[cfg(x)]"}, Pattern: "mut v", Type: Ident("u8"),
	}))
	assert.Equal(t, "&mut self", FormatParam(Param{Kind: ParamSelf, Pattern: "&mut self"}))
}

func TestPrinterExpansion(t *testing.T) {
	fn := &FnDecl{
		Attrs:  []string{"#[inline]"},
		Vis:    "pub",
		Name:   "get",
		Params: []Param{{Kind: ParamNamed, Pattern: "v", Type: &RefType{Elem: Ident("S")}}},
		Output: Ident("u8"),
		Body:   "{\n        v.0\n    }",
	}
	trait := &TraitDecl{
		Attrs:   []string{"#[allow(non_camel_case_types)]"},
		Vis:     "pub",
		Name:    "get",
		Methods: []MethodSig{{Name: "get", Output: Ident("u8")}},
	}
	impl := &ImplDecl{
		Trait:    Ident("get"),
		SelfType: &RefType{Elem: Ident("S")},
		Methods: []ImplMethod{{
			Sig:  MethodSig{Name: "get", Output: Ident("u8")},
			Body: CallExpr{Func: "get", Args: []string{"self"}},
		}},
	}

	p := NewPrinter()
	p.Base = "    "
	want := "    #[inline]\n" +
		"    pub fn get(v: &S) -> u8 {\n        v.0\n    }\n" +
		"\n" +
		"    #[allow(non_camel_case_types)]\n" +
		"    pub trait get {\n" +
		"        fn get(self) -> u8;\n" +
		"    }\n" +
		"\n" +
		"    impl get for &S {\n" +
		"        fn get(self) -> u8 {\n" +
		"            get(self)\n" +
		"        }\n" +
		"    }\n"
	assert.Equal(t, want, p.Expansion(&Expansion{Function: fn, Trait: trait, Impl: impl}))
}

func TestPrinterIndent(t *testing.T) {
	trait := &TraitDecl{
		Name: "f",
		Generics: Generics{
			Params: []GenericParam{{Kind: GenericTypeParam, Name: "T"}},
			Where:  []WherePredicate{{Left: Ident("T"), Bounds: []Type{Ident("Copy")}}},
		},
		Methods: []MethodSig{{Name: "f", Params: []Param{{Kind: ParamNamed, Pattern: "x1", Type: Ident("T")}}}},
	}

	p := &Printer{Indent: "\t"}
	assert.Equal(t, "trait f<T> where T: Copy {\n\tfn f(self, x1: T);\n}\n", p.Trait(trait))
}
