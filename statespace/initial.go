// SPDX-License-Identifier: MIT

package statespace

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/statevar/element"
)

// InitialConditionPolicy returns x0 for an assembled scope. The vector must
// have one entry per state.
type InitialConditionPolicy func(s *Scope) ([]float64, error)

// ZeroInitial starts every state at 0.
func ZeroInitial() InitialConditionPolicy {
	return func(s *Scope) ([]float64, error) {
		return make([]float64, s.vars.NumStates()), nil
	}
}

// ExciteSourceless seeds every capacitor with v when the network holds
// capacitors and inductors but no source; otherwise it starts at 0.
func ExciteSourceless(v float64) InitialConditionPolicy {
	return func(s *Scope) ([]float64, error) {
		x0 := make([]float64, s.vars.NumStates())
		if s.vars.NumInputs() > 0 {
			return x0, nil
		}
		var caps, inds []int
		for k := range x0 {
			if s.vars.State(k).Kind() == element.Capacitor {
				caps = append(caps, k)
			} else {
				inds = append(inds, k)
			}
		}
		if len(caps) == 0 || len(inds) == 0 {
			return x0, nil
		}
		for _, k := range caps {
			x0[k] = v
		}
		return x0, nil
	}
}

// FixedInitial sets the named states (capacitor voltage, inductor current)
// and leaves the rest at 0.
func FixedInitial(values map[string]float64) InitialConditionPolicy {
	return func(s *Scope) ([]float64, error) {
		x0 := make([]float64, s.vars.NumStates())
		ids := make([]string, 0, len(values))
		for id := range values {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			k, ok := s.vars.StateIndex(id)
			if !ok {
				return nil, fmt.Errorf("%w: %q", ErrUnknownState, id)
			}
			x0[k] = values[id]
		}
		return x0, nil
	}
}
