// Package graph implements Graphoid's graph value substrate (spec §3.2):
// a single Graph type holding typed nodes and edges, optional rules
// (validation + transformation, see package rules), lazy secondary
// indices, and the traversal/shortest-path/pattern-match/subgraph
// algorithms the executor's method dispatch exposes to list, map, tree,
// dag, and bst values alike.
//
// Concurrency follows the teacher's two-lock discipline (separate
// read/write locks for the node table and for edges+rules) even though
// Graphoid's own executor is single-threaded (spec §5): a Graph value
// can be captured by a closure a native module hands to another
// goroutine, so the type itself stays safe to share.
package graph
