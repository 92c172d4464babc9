// SPDX-License-Identifier: MIT

package loopmatrix

import (
	"context"
	"errors"
	"log/slog"

	"github.com/katalvlaran/statevar/element"
)

// Sentinel errors for loop-matrix construction.
var (
	// ErrNilGraph is returned when Build receives a nil graph.
	ErrNilGraph = errors.New("loopmatrix: graph is nil")

	// ErrNoTreePath is returned (strict mode) when the tree does not connect
	// the terminals of a chord.
	ErrNoTreePath = errors.New("loopmatrix: no tree path between chord terminals")
)

// Option configures Build.
type Option func(*Options)

// Options holds Build parameters.
type Options struct {
	Ctx         context.Context
	Logger      *slog.Logger
	StrictPaths bool
}

// DefaultOptions returns background context, the component logger and
// lenient path handling.
func DefaultOptions() Options {
	return Options{
		Ctx:    context.Background(),
		Logger: slog.Default().With(slog.String("component", "loopmatrix")),
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

// WithStrictPaths turns a missing tree path into ErrNoTreePath.
func WithStrictPaths() Option {
	return func(o *Options) { o.StrictPaths = true }
}

// Step is one tree branch on a fundamental loop, in traversal order.
type Step struct {
	// Branch is the tree element.
	Branch element.Element

	// Tree is the column index of Branch.
	Tree int

	// From and To give the traversal direction.
	From, To int

	// Sign is +1 when Branch is oriented along the traversal, −1 otherwise.
	Sign float64
}

// Loop is the fundamental loop closed by one chord.
type Loop struct {
	Chord element.Element
	Steps []Step
}

// Nodes returns the node sequence of the loop, starting and ending at the
// chord's nodeA.
func (l Loop) Nodes() []int {
	out := []int{l.Chord.NodeA(), l.Chord.NodeB()}
	for _, s := range l.Steps {
		out = append(out, s.To)
	}
	return out
}
