// SPDX-License-Identifier: MIT

// Package network defines the undirected node/branch multigraph that the
// topology stages walk.
//
// Nodes are integer circuit nodes; branches carry the identifier of the
// element they stand for and remember its orientation (From = nodeA,
// To = nodeB). Parallel branches between the same pair of nodes are always
// allowed: two resistors across the same terminals are two branches.
//
// Storage follows a nested adjacency layout:
//
//	adjacency[node][neighbor][branchID] = struct{}{}
//
// Every listing (Nodes, Incident, Neighbors, BranchesBetween) is returned in a
// deterministic order: nodes ascending, branches by insertion sequence.
//
// Concurrency:
//
//	A single sync.RWMutex guards all maps. Reads may run in parallel.
//
// Complexity:
//
//	AddBranch/RemoveBranch O(1) amortized, Incident O(d log d), Nodes O(V log V).
package network
