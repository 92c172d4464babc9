// SPDX-License-Identifier: MIT

// Package statespace assembles the linear model
//
//	dx/dt = A·x + B·u
//	y     = C·x + D·u
//
// of a circuit from its tree/chord partition and fundamental loop matrix.
//
// State x holds capacitor voltages then inductor currents; input u holds
// current-source then voltage-source values (see classify.Variables).
//
// Rows of A and B:
//
//	tree capacitor   C·du/dt = Σ_i M[i,C]·i_chord(i)        (cutset KCL)
//	chord inductor   L·di/dt = −Σ_j M[L,j]·v_tree(j)        (loop KVL)
//	chord capacitor  du/dt   = −Σ_j M[c,j]·du_j/dt          (capacitor/source loop)
//	tree inductor    di/dt   = Σ_i M[i,t]·di_i/dt           (inductor/source cutset)
//
// Resistor voltages and currents inside these sums are replaced through the
// classify package. A resistor sharing both nodes with a capacitor that the
// cutset sum did not already cover contributes −1/(R·C) on the diagonal.
//
// Outputs and initial conditions are pluggable: see OutputPolicy and
// InitialConditionPolicy.
package statespace
