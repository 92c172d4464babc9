// SPDX-License-Identifier: MIT

package topology

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/katalvlaran/statevar/bfs"
	"github.com/katalvlaran/statevar/element"
	"github.com/katalvlaran/statevar/network"
)

// Build partitions elems into tree and chords.
//
// Steps:
//  1. Validate the list is non-empty; apply options.
//  2. Register every element in the full network (input order).
//  3. Route CurrentSources to chords.
//  4. Stable-sort the rest by tree priority; add each to the tree unless its
//     terminals are already tree-connected.
//  5. Stable-sort chords by chord priority; freeze the Graph.
//
// Build does not validate element values; see element.Validate.
// Complexity: O(E·(V + E)).
func Build(elems []element.Element, opts ...Option) (*Graph, error) {
	if len(elems) == 0 {
		return nil, ErrNoElements
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	full := network.New()
	for _, e := range elems {
		if err := full.AddBranch(e.ID(), e.NodeA(), e.NodeB()); err != nil {
			return nil, fmt.Errorf("topology: element %q: %w", e.ID(), err)
		}
	}

	var (
		candidates []element.Element
		chords     []element.Element
		tree       []element.Element
	)
	for _, e := range elems {
		if e.Kind() == element.CurrentSource {
			chords = append(chords, e)
			o.Logger.Debug("chord (current source)", slog.String("id", e.ID()))
			continue
		}
		candidates = append(candidates, e)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return treeRank[candidates[i].Kind()] < treeRank[candidates[j].Kind()]
	})

	treeNet := network.New()
	for _, e := range candidates {
		closes, err := bfs.Reachable(o.Ctx, treeNet, e.NodeA(), e.NodeB(), nil)
		if err != nil {
			return nil, fmt.Errorf("topology: reachability for %q: %w", e.ID(), err)
		}
		if closes {
			chords = append(chords, e)
			o.Logger.Debug("chord (closes loop)", slog.String("id", e.ID()))
			continue
		}
		if err = treeNet.AddBranch(e.ID(), e.NodeA(), e.NodeB()); err != nil {
			return nil, fmt.Errorf("topology: element %q: %w", e.ID(), err)
		}
		tree = append(tree, e)
		o.Logger.Debug("tree branch", slog.String("id", e.ID()))
	}

	sort.SliceStable(chords, func(i, j int) bool {
		return chordRank[chords[i].Kind()] < chordRank[chords[j].Kind()]
	})

	g := &Graph{
		elements: append([]element.Element(nil), elems...),
		tree:     tree,
		chords:   chords,
		treeIdx:  make(map[string]int, len(tree)),
		chordIdx: make(map[string]int, len(chords)),
		full:     full,
		treeNet:  treeNet,
	}
	for j, e := range tree {
		g.treeIdx[e.ID()] = j
	}
	for i, e := range chords {
		g.chordIdx[e.ID()] = i
	}
	o.Logger.Debug("topology built",
		slog.Int("tree", len(tree)), slog.Int("chords", len(chords)), slog.Int("nodes", full.NodeCount()))

	return g, nil
}
