// SPDX-License-Identifier: MIT

// Package topology partitions circuit elements into a spanning tree and its
// complementary chords.
//
// Algorithm (a Kruskal-style greedy scan with element priority as the weight):
//
//  1. Every CurrentSource becomes a chord unconditionally: an ideal current
//     source cannot be a tree branch.
//  2. Remaining elements are scanned by priority class
//     VoltageSource → Capacitor → Resistor → Inductor, input order inside a
//     class. A candidate joins the tree unless its terminals are already
//     connected through tree branches; connectivity is a BFS reachability
//     test over the tree-so-far (a node/branch multigraph).
//  3. Everything not absorbed becomes a chord. Chords are stably re-sorted
//     Resistor → Inductor → CurrentSource; capacitor or voltage-source chords
//     (closing C/V-only loops) follow, in that order.
//
// Determinism:
//
//	Only slices drive the scan; no map iteration order leaks into the
//	result. The same element list in the same order always yields the same
//	Graph.
//
// Disconnected networks:
//
//	Build never fails on them. The tree becomes a spanning forest and
//	CheckSpanning reports ErrNotSpanning (len(tree) != nodes − 1), which the
//	simulator treats as a fail-fast structural error.
//
// Complexity:
//
//	O(E·(V + E)) for E elements and V nodes (one BFS per candidate).
package topology
