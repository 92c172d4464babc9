// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/exp/constraints"

	"github.com/katalvlaran/statevar/element"
)

type prefix struct {
	scale  float64
	symbol string
}

// largest first; values below the last entry still use it.
var prefixes = []prefix{
	{1e12, "T"}, {1e9, "G"}, {1e6, "M"}, {1e3, "k"}, {1, ""},
	{1e-3, "m"}, {1e-6, "µ"}, {1e-9, "n"}, {1e-12, "p"}, {1e-15, "f"},
}

// FormatSI renders v with an engineering prefix and four significant
// digits, e.g. FormatSI(4700.0, "Ω") == "4.7 kΩ". Zero and non-finite
// values are printed without a prefix.
func FormatSI[T constraints.Float](v T, unit string) string {
	f := float64(v)
	if f == 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return strings.TrimSpace(fmt.Sprintf("%g %s", f, unit))
	}
	abs := math.Abs(f)
	p := prefixes[len(prefixes)-1]
	for _, c := range prefixes {
		if abs >= c.scale*(1-1e-9) {
			p = c
			break
		}
	}
	return strings.TrimSpace(fmt.Sprintf("%.4g %s%s", f/p.scale, p.symbol, unit))
}

// FormatValue renders an element value with its unit.
func FormatValue(e element.Element) string {
	return FormatSI(e.Value(), e.Kind().Unit())
}

// formatNumber is the fixed-width cell format for matrices and results.
func formatNumber[T constraints.Float](v T) string {
	if v == 0 {
		return "0"
	}
	return fmt.Sprintf("%.6g", float64(v))
}
