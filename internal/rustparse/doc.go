// Package rustparse reads Rust source with tree-sitter and builds the
// syntax tree the expansion works on.
//
// It has two entry points: ParseItem reads the text of one function item
// (the attribute's input), and ParseFile finds every item carrying the
// expansion attribute in a whole source file, remembering the byte range
// each expansion replaces.
//
// Type forms the syntax package does not model are kept as verbatim text.
package rustparse
