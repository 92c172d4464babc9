// SPDX-License-Identifier: MIT

package loopmatrix

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/statevar/bfs"
	"github.com/katalvlaran/statevar/matrix"
	"github.com/katalvlaran/statevar/topology"
)

// Build computes the fundamental loops and the sign matrix of g.
//
// Implementation:
//   - Stage 1: allocate M (chords × tree), zero-sized shapes allowed.
//   - Stage 2: for each chord, BFS over the tree from nodeB to nodeA.
//   - Stage 3: walk the path; each step's sign is +1 if the branch is
//     oriented along the traversal, −1 otherwise (meet/diverge rule).
//
// Complexity: O(C·(V + T)).
func Build(g *topology.Graph, opts ...Option) (*LoopMatrix, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	m, err := matrix.NewDense(g.ChordLen(), g.TreeLen())
	if err != nil {
		return nil, fmt.Errorf("loopmatrix: %w", err)
	}
	lm := &LoopMatrix{graph: g, m: m, loops: make([]Loop, g.ChordLen())}
	treeNet := g.TreeNetwork()

	for i := 0; i < g.ChordLen(); i++ {
		chord := g.ChordAt(i)
		lm.loops[i] = Loop{Chord: chord}

		if !treeNet.HasNode(chord.NodeB()) || !treeNet.HasNode(chord.NodeA()) {
			if err = lm.missingPath(o, i); err != nil {
				return nil, err
			}
			continue
		}
		res, err := bfs.BFS(treeNet, chord.NodeB(), bfs.WithContext(o.Ctx), bfs.WithStopAt(chord.NodeA()))
		if err != nil {
			return nil, fmt.Errorf("loopmatrix: chord %q: %w", chord.ID(), err)
		}
		path, err := res.StepsTo(chord.NodeA())
		if errors.Is(err, bfs.ErrNoPath) {
			if err = lm.missingPath(o, i); err != nil {
				return nil, err
			}
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("loopmatrix: chord %q: %w", chord.ID(), err)
		}

		steps := make([]Step, 0, len(path))
		for _, p := range path {
			j, ok := g.TreeIndex(p.Branch.ID)
			if !ok {
				return nil, fmt.Errorf("loopmatrix: tree branch %q not indexed", p.Branch.ID)
			}
			sign := -1.0
			if p.Along() {
				sign = 1.0
			}
			if err = m.Set(i, j, sign); err != nil {
				return nil, fmt.Errorf("loopmatrix: %w", err)
			}
			steps = append(steps, Step{Branch: g.TreeAt(j), Tree: j, From: p.From, To: p.To, Sign: sign})
		}
		lm.loops[i].Steps = steps
		o.Logger.Debug("fundamental loop",
			slog.String("chord", chord.ID()), slog.Any("nodes", lm.loops[i].Nodes()))
	}

	return lm, nil
}

func (lm *LoopMatrix) missingPath(o Options, i int) error {
	chord := lm.graph.ChordAt(i)
	if o.StrictPaths {
		return fmt.Errorf("%w: chord %q (%d→%d)", ErrNoTreePath, chord.ID(), chord.NodeA(), chord.NodeB())
	}
	o.Logger.Warn("chord has no tree path, loop row left empty",
		slog.String("chord", chord.ID()), slog.Int("nodeA", chord.NodeA()), slog.Int("nodeB", chord.NodeB()))
	return nil
}

// CommonNode returns the node shared by a and b, checking a's nodeA first.
func CommonNode(aA, aB, bA, bB int) (int, bool) {
	switch {
	case aA == bA || aA == bB:
		return aA, true
	case aB == bA || aB == bB:
		return aB, true
	}
	return 0, false
}

// MeetSign applies the meet/diverge rule at node for two elements given by
// their (nodeA, nodeB): +1 when one enters and the other exits, −1 when both
// enter or both exit, 0 when node is not shared.
func MeetSign(node, aA, aB, bA, bB int) float64 {
	aTouches := aA == node || aB == node
	bTouches := bA == node || bB == node
	if !aTouches || !bTouches {
		return 0
	}
	aEnters := aB == node
	bEnters := bB == node
	if aEnters != bEnters {
		return 1
	}
	return -1
}
