// SPDX-License-Identifier: MIT

// Package bfs provides breadth-first search over a network.Network,
// returning hop distances, parent links, the branch used to reach each node,
// and the visit order.
//
// What
//
//   - Explore nodes in non-decreasing hop count from a start node.
//   - Returns a Result containing:
//   - Order: visit sequence
//   - Depth: node → hop distance from start
//   - Parent: node → predecessor node
//   - Via: node → branch that reached it (multigraph aware)
//   - Supports hooks at three stages: OnEnqueue, OnDequeue, OnVisit (may abort).
//   - WithFilterBranch restricts traversal to a subset of branches, e.g. the
//     spanning tree grown so far.
//   - WithStopAt ends the search as soon as a target node is enqueued.
//
// Why
//
//   - The topology stage needs reachability over the tree-so-far to decide
//     whether a candidate element would close a cycle.
//   - The loop-matrix stage needs the unique tree path between a chord's
//     terminals, expressed as branches, not only nodes, because two parallel
//     branches between the same nodes are different loop members.
//
// Determinism
//
//	network.Incident lists branches by insertion order, and BFS enqueues
//	through them in that order, so the visit sequence and the parent branch
//	chosen for every node are reproducible.
//
// Complexity (V = nodes, E = branches)
//
//   - Time:   O(V + E log d)
//   - Memory: O(V)
//
// Usage
//
//	res, err := bfs.BFS(net, 0,
//	    bfs.WithContext(ctx),
//	    bfs.WithFilterBranch(func(b network.Branch) bool { return inTree[b.ID] }),
//	)
//	steps, err := res.StepsTo(3) // branches from node 0 to node 3
//
// Errors
//
//	ErrNetworkNil, ErrStartNodeNotFound, ErrOptionViolation, ErrNoPath,
//	ctx.Err() on cancellation, or any error returned by OnVisit (wrapped).
package bfs
