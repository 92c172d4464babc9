// SPDX-License-Identifier: MIT

package render

import (
	"errors"
	"math"
	"strings"

	"github.com/katalvlaran/statevar/integrate"
	"github.com/katalvlaran/statevar/statespace"
)

// Sentinel errors for rendering.
var (
	// ErrNoData is returned when there is nothing to draw.
	ErrNoData = errors.New("render: no samples")

	// ErrUnknownFormat is returned by ParseFormats.
	ErrUnknownFormat = errors.New("render: unknown format")
)

// Series is one named waveform.
type Series struct {
	Name string
	Unit string
	X, Y []float64
}

// Group returns "voltage", "current" or "value" from the unit.
func (s Series) Group() string {
	switch s.Unit {
	case "V":
		return "voltage"
	case "A":
		return "current"
	}
	return "value"
}

// finite returns the longest prefix of s without NaN or Inf samples.
func (s Series) finite() Series {
	for k, v := range s.Y {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			s.X, s.Y = s.X[:k], s.Y[:k]
			break
		}
	}
	return s
}

// FromTrace returns one series per state followed by every output whose
// name is not already a state name.
func FromTrace(tr *integrate.Trace, sys *statespace.System) ([]Series, error) {
	if tr == nil || sys == nil || tr.Len() == 0 {
		return nil, ErrNoData
	}
	x := append([]float64(nil), tr.Time...)
	names := sys.StateNames()
	seen := make(map[string]bool, len(names))
	out := make([]Series, 0, len(names)+sys.P())
	for i, name := range names {
		unit := "A"
		if strings.HasPrefix(name, "u_") {
			unit = "V"
		}
		out = append(out, Series{Name: name, Unit: unit, X: x, Y: tr.State(i)})
		seen[name] = true
	}
	for i, o := range sys.Outputs {
		if seen[o.Name] {
			continue
		}
		out = append(out, Series{Name: o.Name, Unit: o.Unit, X: x, Y: tr.Output(i)})
	}
	if len(out) == 0 {
		return nil, ErrNoData
	}
	return out, nil
}

// Grouped splits series by Group, keeping first-seen group order.
func Grouped(series []Series) (order []string, groups map[string][]Series) {
	groups = make(map[string][]Series)
	for _, s := range series {
		g := s.Group()
		if _, ok := groups[g]; !ok {
			order = append(order, g)
		}
		groups[g] = append(groups[g], s)
	}
	return order, groups
}
