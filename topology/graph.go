// SPDX-License-Identifier: MIT

package topology

import (
	"context"
	"fmt"

	"github.com/katalvlaran/statevar/bfs"
	"github.com/katalvlaran/statevar/element"
	"github.com/katalvlaran/statevar/network"
)

// Graph is the tree/chord partition of an element list.
// It is immutable after Build; accessors return copies.
type Graph struct {
	elements []element.Element
	tree     []element.Element
	chords   []element.Element
	treeIdx  map[string]int
	chordIdx map[string]int
	full     *network.Network
	treeNet  *network.Network
}

// Tree returns the tree branches in placement order.
func (g *Graph) Tree() []element.Element { return append([]element.Element(nil), g.tree...) }

// Chords returns the chords in R → L → J order.
func (g *Graph) Chords() []element.Element { return append([]element.Element(nil), g.chords...) }

// Elements returns all elements in input order.
func (g *Graph) Elements() []element.Element {
	return append([]element.Element(nil), g.elements...)
}

// TreeLen returns the number of tree branches.
func (g *Graph) TreeLen() int { return len(g.tree) }

// ChordLen returns the number of chords.
func (g *Graph) ChordLen() int { return len(g.chords) }

// TreeAt returns tree branch j. It panics when j is out of range, like a slice index.
func (g *Graph) TreeAt(j int) element.Element { return g.tree[j] }

// ChordAt returns chord i. It panics when i is out of range, like a slice index.
func (g *Graph) ChordAt(i int) element.Element { return g.chords[i] }

// TreeIndex returns the column of element id in the loop matrix.
func (g *Graph) TreeIndex(id string) (int, bool) {
	j, ok := g.treeIdx[id]
	return j, ok
}

// ChordIndex returns the row of element id in the loop matrix.
func (g *Graph) ChordIndex(id string) (int, bool) {
	i, ok := g.chordIdx[id]
	return i, ok
}

// IsTree reports whether element id is a tree branch.
func (g *Graph) IsTree(id string) bool {
	_, ok := g.treeIdx[id]
	return ok
}

// Find returns the element with the given id.
func (g *Graph) Find(id string) (element.Element, bool) {
	if j, ok := g.treeIdx[id]; ok {
		return g.tree[j], true
	}
	if i, ok := g.chordIdx[id]; ok {
		return g.chords[i], true
	}
	return element.Element{}, false
}

// Nodes returns the distinct nodes in ascending order.
func (g *Graph) Nodes() []int { return g.full.Nodes() }

// NodeCount returns the number of distinct nodes.
func (g *Graph) NodeCount() int { return g.full.NodeCount() }

// Incident returns the elements touching node, in input order.
func (g *Graph) Incident(node int) []element.Element {
	bs, err := g.full.Incident(node)
	if err != nil {
		return nil
	}
	out := make([]element.Element, 0, len(bs))
	for _, b := range bs {
		if e, ok := g.Find(b.ID); ok {
			out = append(out, e)
		}
	}
	return out
}

// Degree returns the number of element ends at node.
func (g *Graph) Degree(node int) int {
	d, err := g.full.Degree(node)
	if err != nil {
		return 0
	}
	return d
}

// TreeNetwork returns a copy of the tree as a network, for path queries.
func (g *Graph) TreeNetwork() *network.Network { return g.treeNet.Clone() }

// Components counts connected components of the whole network.
func (g *Graph) Components(ctx context.Context) (int, error) {
	seen := make(map[int]bool, g.full.NodeCount())
	count := 0
	for _, n := range g.full.Nodes() {
		if seen[n] {
			continue
		}
		count++
		res, err := bfs.BFS(g.full, n, bfs.WithContext(ctx))
		if err != nil {
			return 0, fmt.Errorf("topology: components: %w", err)
		}
		for _, v := range res.Order {
			seen[v] = true
		}
	}
	return count, nil
}

// CheckSpanning validates len(tree) == nodes − 1, i.e. the tree spans a
// connected network.
func (g *Graph) CheckSpanning() error {
	if want := g.full.NodeCount() - 1; len(g.tree) != want {
		return fmt.Errorf("%w: %d tree branches for %d nodes", ErrNotSpanning, len(g.tree), g.full.NodeCount())
	}
	return nil
}
