// Package parser implements Graphoid's recursive-descent parser with
// precedence climbing (spec §4.2): a token.Token stream in, an
// ast.Program out. It performs every desugaring the spec assigns to
// the parser rather than the executor — tree/dag/binary_tree/bst
// literals into graph{}.with_ruleset(...) calls, named-argument
// ordering and duplicate checks, and the single-type-parameter
// restriction on collection type annotations.
package parser
