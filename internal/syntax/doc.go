// Package syntax models the subset of Rust item syntax that the as_method
// expansion reads and writes.
//
// The tree is deliberately shallow. Type expressions that carry nested types
// are modeled structurally so the existential rewriter can reach every
// position; everything else (patterns, bodies, attributes, const
// expressions) is kept as verbatim source text and printed back unchanged.
//
// Key design constraints:
//   - syntax imports nothing internal; rustparse builds it, expand rewrites it
//   - nodes are plain values owned by one invocation; there is no shared state
//   - Print output is a pure function of the tree (byte-identical on rerun)
package syntax
