// SPDX-License-Identifier: MIT

package integrate_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/statevar/element"
	"github.com/katalvlaran/statevar/integrate"
	"github.com/katalvlaran/statevar/presets"
)

// BenchmarkEuler_Task measures 10k Euler steps on the two-state reference circuit.
func BenchmarkEuler_Task(b *testing.B) {
	sys := system(b, presets.Task())
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = integrate.Integrate(sys, 1e-3, 1e-7, integrate.WithFixedStep())
	}
}

// BenchmarkEuler_Ladder measures an RC ladder of N sections driven by one source.
func BenchmarkEuler_Ladder(b *testing.B) {
	const N = 50
	elems := []element.Element{element.NewVoltageSource("V1", 1, 1, 0)}
	for k := 1; k <= N; k++ {
		elems = append(elems,
			element.NewResistor(fmt.Sprintf("R%d", k), 100, k, k+1),
			element.NewCapacitor(fmt.Sprintf("C%d", k), 1e-6, k+1, 0),
		)
	}
	sys := system(b, elems)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = integrate.Integrate(sys, 1e-4, 1e-7)
	}
}
