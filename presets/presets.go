// SPDX-License-Identifier: MIT

// Package presets provides ready-made demonstration circuits.
//
// Node 0 is ground in every preset. Analytic references are given for the
// first-order circuits so callers can compare simulated traces.
package presets

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/katalvlaran/statevar/element"
	"github.com/katalvlaran/statevar/statespace"
)

// ErrUnknownPreset is returned by ByName for an unregistered name.
var ErrUnknownPreset = errors.New("presets: unknown preset")

// Preset is a named circuit plus the outputs worth observing.
type Preset struct {
	Name        string
	Description string
	Elements    []element.Element
	Outputs     statespace.OutputPolicy
}

// RC is a 5 V source charging 1 µF through 1 kΩ: τ = 1 ms, u_C = 5(1 − e^(−t/τ)).
//
//	1 ──R1── 2
//	|        |
//	V1       C1
//	|        |
//	0 ───────┘
func RC() []element.Element {
	return []element.Element{
		element.NewResistor("R1", 1000, 1, 2),
		element.NewCapacitor("C1", 1e-6, 2, 0),
		element.NewVoltageSource("V1", 5, 1, 0),
	}
}

// RL is a 1 mA Norton source feeding 1 kΩ in parallel with 0.1 H:
// τ = L/R = 0.1 ms, i_L = J(1 − e^(−t/τ)).
//
//	┌──J1──┬──R1──┐
//	0      1      0
//	       └──L1──┘
func RL() []element.Element {
	return []element.Element{
		element.NewResistor("R1", 1000, 1, 0),
		element.NewInductor("L1", 0.1, 1, 0),
		element.NewCurrentSource("J1", 0.001, 0, 1),
	}
}

// SeriesRLC is a 10 V step into 1 Ω, 1 mH and 1 mF in series
// (ω0 = 1000 rad/s, ζ = 0.5).
func SeriesRLC() []element.Element {
	return []element.Element{
		element.NewVoltageSource("V1", 10, 1, 0),
		element.NewResistor("R1", 1, 1, 2),
		element.NewInductor("L1", 1e-3, 2, 3),
		element.NewCapacitor("C1", 1e-3, 3, 0),
	}
}

// LC is a sourceless tank; the default initial-condition policy seeds the
// capacitor so it oscillates at ω = 1/√(LC).
func LC() []element.Element {
	return []element.Element{
		element.NewCapacitor("C1", 1e-6, 1, 0),
		element.NewInductor("L1", 0.1, 1, 0),
	}
}

// Complex mixes both source kinds with a resistive mesh that only the
// elimination rule of the classifier resolves.
func Complex() []element.Element {
	return []element.Element{
		element.NewResistor("R1", 1000, 1, 2),
		element.NewResistor("R2", 2000, 2, 3),
		element.NewCapacitor("C1", 1e-6, 3, 0),
		element.NewInductor("L1", 0.1, 2, 0),
		element.NewVoltageSource("V1", 10, 1, 0),
		element.NewCurrentSource("I1", 0.002, 3, 0),
	}
}

// Task is the two-resistor RLC network with a current source used as the
// reference problem: R1 between 1 and 2, R2 ∥ C1 ∥ J1 from 2 to ground,
// L1 from 1 to ground.
func Task() []element.Element {
	return []element.Element{
		element.NewResistor("R1", 1000, 1, 2),
		element.NewResistor("R2", 2000, 2, 0),
		element.NewCapacitor("C1", 1e-6, 2, 0),
		element.NewInductor("L1", 0.1, 1, 0),
		element.NewCurrentSource("J1", 0.001, 2, 0),
	}
}

// TaskOutputs observes i2, the current through R2, and i3 = J − i2 − i_L.
func TaskOutputs() statespace.OutputPolicy {
	return statespace.Quantities(
		statespace.Current("R2").Named("i2"),
		statespace.Combination("i3",
			statespace.Weighted{Quantity: statespace.Current("J1"), Weight: 1},
			statespace.Weighted{Quantity: statespace.Current("R2"), Weight: -1},
			statespace.Weighted{Quantity: statespace.Current("L1"), Weight: -1},
		),
	)
}

var registry = map[string]func() Preset{
	"rc": func() Preset {
		return Preset{Name: "rc", Description: "RC charging, τ = 1 ms", Elements: RC()}
	},
	"rl": func() Preset {
		return Preset{Name: "rl", Description: "Norton RL, τ = 0.1 ms", Elements: RL()}
	},
	"rlc": func() Preset {
		return Preset{Name: "rlc", Description: "series RLC step response", Elements: SeriesRLC()}
	},
	"lc": func() Preset {
		return Preset{Name: "lc", Description: "sourceless LC tank", Elements: LC()}
	},
	"complex": func() Preset {
		return Preset{Name: "complex", Description: "mixed sources with a resistive mesh", Elements: Complex()}
	},
	"task": func() Preset {
		return Preset{Name: "task", Description: "reference RLC network with current source",
			Elements: Task(), Outputs: TaskOutputs()}
	},
}

// ByName returns a preset by case-insensitive name.
func ByName(name string) (Preset, error) {
	mk, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Preset{}, fmt.Errorf("%w: %q (known: %s)", ErrUnknownPreset, name, strings.Join(Names(), ", "))
	}
	return mk(), nil
}

// Names lists the registered presets in ascending order.
func Names() []string {
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
