// Package collection implements the List and Map façades of spec §3.1:
// thin value-kind wrappers whose entire state lives in a *graph.Graph.
// A List is a graph with nodes named node_0…node_{n-1} linked by a
// linear "next" chain; a Map is a graph of isolated nodes keyed by
// user-provided strings with no edges at all. Both apply any attached
// transformation rules to a candidate value before insertion and any
// attached validation rules to the result, delegating the mechanics to
// package rules and package graph.
package collection
