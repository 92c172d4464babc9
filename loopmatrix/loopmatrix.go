// SPDX-License-Identifier: MIT

package loopmatrix

import (
	"github.com/katalvlaran/statevar/matrix"
	"github.com/katalvlaran/statevar/topology"
)

// LoopMatrix is the immutable fundamental-loop sign matrix of a Graph.
type LoopMatrix struct {
	graph *topology.Graph
	m     *matrix.Dense
	loops []Loop
}

// Graph returns the partition the matrix was built from.
func (lm *LoopMatrix) Graph() *topology.Graph { return lm.graph }

// Rows returns the number of chords.
func (lm *LoopMatrix) Rows() int { return lm.m.Rows() }

// Cols returns the number of tree branches.
func (lm *LoopMatrix) Cols() int { return lm.m.Cols() }

// At returns M[i,j] or matrix.ErrOutOfRange.
func (lm *LoopMatrix) At(i, j int) (float64, error) { return lm.m.At(i, j) }

// Sign returns M[i,j], or 0 when (i,j) is out of range.
func (lm *LoopMatrix) Sign(i, j int) float64 {
	v, err := lm.m.At(i, j)
	if err != nil {
		return 0
	}
	return v
}

// Row returns a copy of row i, or nil when i is out of range.
func (lm *LoopMatrix) Row(i int) []float64 {
	r, err := lm.m.Row(i)
	if err != nil {
		return nil
	}
	return r
}

// Loop returns the fundamental loop of chord i.
func (lm *LoopMatrix) Loop(i int) Loop {
	l := lm.loops[i]
	l.Steps = append([]Step(nil), l.Steps...)
	return l
}

// LinkedTree returns the tree columns with a nonzero entry in row i.
func (lm *LoopMatrix) LinkedTree(i int) []int {
	var out []int
	for j := 0; j < lm.m.Cols(); j++ {
		if lm.Sign(i, j) != 0 {
			out = append(out, j)
		}
	}
	return out
}

// LinkedChords returns the chord rows with a nonzero entry in column j.
func (lm *LoopMatrix) LinkedChords(j int) []int {
	var out []int
	for i := 0; i < lm.m.Rows(); i++ {
		if lm.Sign(i, j) != 0 {
			out = append(out, i)
		}
	}
	return out
}

// Dense returns a copy of the underlying matrix.
func (lm *LoopMatrix) Dense() *matrix.Dense { return lm.m.Clone() }
