// SPDX-License-Identifier: MIT

package topology

import (
	"context"
	"errors"
	"log/slog"

	"github.com/katalvlaran/statevar/element"
)

// Sentinel errors for topology construction.
var (
	// ErrNoElements is returned when Build receives an empty list.
	ErrNoElements = errors.New("topology: no elements")

	// ErrNotSpanning is returned by CheckSpanning for a disconnected network.
	ErrNotSpanning = errors.New("topology: tree does not span the network")
)

// Option configures Build.
type Option func(*Options)

// Options holds Build parameters.
type Options struct {
	// Ctx is forwarded to every reachability test.
	Ctx context.Context

	// Logger receives debug traces of placement decisions.
	Logger *slog.Logger
}

// DefaultOptions returns a background context and the default logger
// tagged with component=topology.
func DefaultOptions() Options {
	return Options{
		Ctx:    context.Background(),
		Logger: slog.Default().With(slog.String("component", "topology")),
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// treeRank orders candidates for tree placement; lower goes first.
var treeRank = map[element.Kind]int{
	element.VoltageSource: 0,
	element.Capacitor:     1,
	element.Resistor:      2,
	element.Inductor:      3,
}

// chordRank orders the final chord list.
var chordRank = map[element.Kind]int{
	element.Resistor:      0,
	element.Inductor:      1,
	element.CurrentSource: 2,
	element.Capacitor:     3,
	element.VoltageSource: 4,
}
