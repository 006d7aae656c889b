// Package expand implements the as_method transformation.
//
// Given a free function whose first parameter has type T, it emits the
// function itself, a single-method trait named after the function, and a
// blanket impl of that trait for T that forwards to the function. Callers
// can then write `v.push(x)` for `fn push(v: &mut Vec<T>, x: T)`.
//
// The pipeline is strictly sequential and fails on the first violation:
//
//	validate -> rewriteExistentials -> split -> emit
//
// Every `impl Trait` written inside the first parameter's type is promoted to
// a named generic parameter (AS_METHOD_SELF_T0, AS_METHOD_SELF_T1, ...) with
// the same bounds, so the trait impl can name the receiver type.
//
// The package performs no I/O. Parsing is delegated to an ItemParser and
// printing to syntax.Printer.
package expand
