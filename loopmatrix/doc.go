// SPDX-License-Identifier: MIT

// Package loopmatrix builds the fundamental-loop sign matrix M of a
// tree/chord partition: rows are chords, columns are tree branches, entries
// are in {−1, 0, +1}.
//
// What:
//
//	For chord i the fundamental loop is the chord itself, walked
//	nodeA → nodeB, closed by the unique tree path from nodeB back to nodeA.
//	M[i,j] ≠ 0 iff tree branch j lies on that path.
//
// Sign convention (meet/diverge):
//
//	An element directed nodeA → nodeB exits nodeA and enters nodeB. At the
//	node shared by two consecutive loop members, the members meet when one
//	enters and the other exits; meeting members carry the same loop
//	orientation. They diverge when both exit or both enter, and the
//	orientation flips. Propagated from the chord, this yields
//
//	  +1  tree branch oriented along the loop traversal
//	  −1  tree branch oriented against it
//
//	For a tree branch sharing a node with the chord it is exactly
//	"meet → +1, diverge → −1" at that shared node.
//
// Physical reading, with v and i in element orientation:
//
//	KVL of loop i:      v_chord(i) + Σ_j M[i,j]·v_tree(j) = 0
//	KCL cutset of j:    i_tree(j)  = Σ_i M[i,j]·i_chord(i)
//
// Degenerate input:
//
//	Zero chords or zero tree branches yield an empty matrix (0×k or k×0).
//	A chord whose terminals the tree does not connect (disconnected network)
//	gets a zero row and a warning, or ErrNoTreePath under WithStrictPaths.
//
// Complexity:
//
//	O(C·(V + T)) for C chords, T tree branches, V nodes.
package loopmatrix
