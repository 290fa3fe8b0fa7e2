// Package rvsdg implements the in-memory representation and core algorithms
// for a Regionalized Value State Dependence Graph (RVSDG): a hierarchical,
// acyclic data-flow IR used by optimizing compilers.
//
// A graph is a Store of Nodes connected by ported Links. Three kinds of node
// exist: Simple (an opaque, caller-supplied payload), Marker (the Start/End
// pair bracketing a nested Region), and Compound (Gamma selection, Theta
// tail-loop, Lambda abstraction, Phi mutual recursion — each owning one or
// more Regions). Regions nest without breaking the data-flow discipline: a
// region's Start node supplies its inputs as outputs, its End node collects
// its outputs as inputs.
//
// Everything here is single-threaded and in-memory: a Store has no internal
// locking, performs no I/O, and holds no execution semantics. Subpackages
// build on the Store:
//
//	traverse/   — the reverse-topological, region-aware visitor
//	successors/ — the derived reverse-adjacency cache built from it
//	rewrite/    — port-level edge redirection and node replacement
//	sweep/      — mark-and-sweep reachability pruning
//	relax/      — invariant-input relaxation for Gamma/Theta nodes
//
// The DOT/GraphViz printer a caller might build on top of the Description
// capability, along with any benchmark harness, is not part of this module.
package rvsdg
