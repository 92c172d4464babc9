// SPDX-License-Identifier: MIT

package network

import (
	"errors"
	"sort"
	"sync"
)

// Sentinel errors for network operations.
var (
	// ErrEmptyBranchID indicates a branch without identifier.
	ErrEmptyBranchID = errors.New("network: branch id is empty")

	// ErrDuplicateBranch indicates a branch id already present.
	ErrDuplicateBranch = errors.New("network: duplicate branch id")

	// ErrBranchNotFound indicates an operation on a missing branch.
	ErrBranchNotFound = errors.New("network: branch not found")

	// ErrNodeNotFound indicates an operation on a missing node.
	ErrNodeNotFound = errors.New("network: node not found")

	// ErrSelfLoop indicates a branch whose endpoints coincide.
	ErrSelfLoop = errors.New("network: self-loop not allowed")
)

// Branch is one element placed between two nodes.
type Branch struct {
	// ID is the identifier of the element the branch stands for.
	ID string

	// From is the node the element exits (nodeA).
	From int

	// To is the node the element enters (nodeB).
	To int

	seq uint64 // insertion sequence, drives deterministic listings
}

// Other returns the endpoint opposite to node.
func (b Branch) Other(node int) int {
	if b.From == node {
		return b.To
	}
	return b.From
}

// Network is an undirected multigraph of circuit nodes and element branches.
type Network struct {
	mu sync.RWMutex

	nextSeq   uint64
	nodes     map[int]struct{}
	branches  map[string]*Branch
	adjacency map[int]map[int]map[string]struct{}
}

// New returns an empty network.
func New() *Network {
	return &Network{
		nodes:     make(map[int]struct{}),
		branches:  make(map[string]*Branch),
		adjacency: make(map[int]map[int]map[string]struct{}),
	}
}

// AddNode inserts node if absent. Idempotent.
func (n *Network) AddNode(node int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.addNodeLocked(node)
}

func (n *Network) addNodeLocked(node int) {
	if _, ok := n.nodes[node]; ok {
		return
	}
	n.nodes[node] = struct{}{}
	n.adjacency[node] = make(map[int]map[string]struct{})
}

// AddBranch places branch id between from and to, creating nodes on demand.
//
// Steps:
//  1. Validate id and endpoints.
//  2. Lock, reject duplicate id.
//  3. Ensure nodes, store branch, link adjacency in both directions.
//
// Complexity: O(1) amortized.
func (n *Network) AddBranch(id string, from, to int) error {
	if id == "" {
		return ErrEmptyBranchID
	}
	if from == to {
		return ErrSelfLoop
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if _, dup := n.branches[id]; dup {
		return ErrDuplicateBranch
	}
	n.addNodeLocked(from)
	n.addNodeLocked(to)

	n.nextSeq++
	n.branches[id] = &Branch{ID: id, From: from, To: to, seq: n.nextSeq}
	link(n.adjacency, from, to, id)
	link(n.adjacency, to, from, id)

	return nil
}

func link(adj map[int]map[int]map[string]struct{}, u, v int, id string) {
	inner, ok := adj[u][v]
	if !ok {
		inner = make(map[string]struct{})
		adj[u][v] = inner
	}
	inner[id] = struct{}{}
}

func unlink(adj map[int]map[int]map[string]struct{}, u, v int, id string) {
	inner := adj[u][v]
	delete(inner, id)
	if len(inner) == 0 {
		delete(adj[u], v)
	}
}

// RemoveBranch deletes branch id. Nodes are kept.
func (n *Network) RemoveBranch(id string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	b, ok := n.branches[id]
	if !ok {
		return ErrBranchNotFound
	}
	delete(n.branches, id)
	unlink(n.adjacency, b.From, b.To, id)
	unlink(n.adjacency, b.To, b.From, id)

	return nil
}

// HasNode reports whether node exists.
func (n *Network) HasNode(node int) bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	_, ok := n.nodes[node]
	return ok
}

// HasBranch reports whether branch id exists.
func (n *Network) HasBranch(id string) bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	_, ok := n.branches[id]
	return ok
}

// Branch returns a copy of branch id.
func (n *Network) Branch(id string) (Branch, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	b, ok := n.branches[id]
	if !ok {
		return Branch{}, ErrBranchNotFound
	}
	return *b, nil
}

// NodeCount returns the number of nodes.
func (n *Network) NodeCount() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.nodes)
}

// BranchCount returns the number of branches.
func (n *Network) BranchCount() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.branches)
}

// Nodes returns all nodes in ascending order.
func (n *Network) Nodes() []int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]int, 0, len(n.nodes))
	for v := range n.nodes {
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}

// Branches returns all branches in insertion order.
func (n *Network) Branches() []Branch {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]Branch, 0, len(n.branches))
	for _, b := range n.branches {
		out = append(out, *b)
	}
	sortBySeq(out)
	return out
}

// Incident returns the branches touching node in insertion order.
// Complexity: O(d log d).
func (n *Network) Incident(node int) ([]Branch, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	nbrs, ok := n.adjacency[node]
	if !ok {
		return nil, ErrNodeNotFound
	}
	var out []Branch
	for _, ids := range nbrs {
		for id := range ids {
			out = append(out, *n.branches[id])
		}
	}
	sortBySeq(out)
	return out, nil
}

// Degree returns the number of branch ends at node.
func (n *Network) Degree(node int) (int, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	nbrs, ok := n.adjacency[node]
	if !ok {
		return 0, ErrNodeNotFound
	}
	d := 0
	for _, ids := range nbrs {
		d += len(ids)
	}
	return d, nil
}

// Neighbors returns the distinct nodes adjacent to node in ascending order.
func (n *Network) Neighbors(node int) ([]int, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	nbrs, ok := n.adjacency[node]
	if !ok {
		return nil, ErrNodeNotFound
	}
	out := make([]int, 0, len(nbrs))
	for v := range nbrs {
		out = append(out, v)
	}
	sort.Ints(out)
	return out, nil
}

// BranchesBetween returns the parallel branches joining u and v in insertion order.
func (n *Network) BranchesBetween(u, v int) []Branch {
	n.mu.RLock()
	defer n.mu.RUnlock()
	ids := n.adjacency[u][v]
	out := make([]Branch, 0, len(ids))
	for id := range ids {
		out = append(out, *n.branches[id])
	}
	sortBySeq(out)
	return out
}

// Clone returns a deep copy, preserving insertion order.
func (n *Network) Clone() *Network {
	n.mu.RLock()
	defer n.mu.RUnlock()
	c := New()
	for v := range n.nodes {
		c.addNodeLocked(v)
	}
	for id, b := range n.branches {
		cp := *b
		c.branches[id] = &cp
		link(c.adjacency, b.From, b.To, id)
		link(c.adjacency, b.To, b.From, id)
	}
	c.nextSeq = n.nextSeq
	return c
}

func sortBySeq(bs []Branch) {
	sort.Slice(bs, func(i, j int) bool { return bs[i].seq < bs[j].seq })
}
