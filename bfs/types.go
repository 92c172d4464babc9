// SPDX-License-Identifier: MIT

package bfs

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/statevar/network"
)

// Sentinel errors for BFS execution.
var (
	// ErrStartNodeNotFound is returned when the start node is absent.
	ErrStartNodeNotFound = errors.New("bfs: start node not found")

	// ErrNetworkNil is returned if a nil network pointer is passed.
	ErrNetworkNil = errors.New("bfs: network is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("bfs: invalid option supplied")

	// ErrNoPath is returned by path reconstruction for an unreached node.
	ErrNoPath = errors.New("bfs: node not reached")
)

// Option configures BFS behavior via functional arguments.
// An invalid Option is recorded and surfaced as ErrOptionViolation.
type Option func(*Options)

// Options holds parameters and callbacks to customize BFS execution.
type Options struct {
	// Ctx allows cancellation and deadlines.
	Ctx context.Context

	// OnEnqueue is called when a node is enqueued.
	OnEnqueue func(node, depth int)

	// OnDequeue is called immediately before visiting a node.
	OnDequeue func(node, depth int)

	// OnVisit is called when visiting a node. A non-nil error aborts BFS.
	OnVisit func(node, depth int) error

	// MaxDepth, if > 0, stops exploring beyond this depth.
	MaxDepth int

	// FilterBranch skips branches for which it returns false.
	FilterBranch func(b network.Branch) bool

	// StopAt, when set, ends the search once that node is enqueued.
	StopAt    int
	hasStopAt bool

	err error
}

// DefaultOptions returns Options with a background context, no depth limit,
// no filtering and no-op hooks.
func DefaultOptions() Options {
	return Options{
		Ctx:          context.Background(),
		OnEnqueue:    func(int, int) {},
		OnDequeue:    func(int, int) {},
		OnVisit:      func(int, int) error { return nil },
		FilterBranch: func(network.Branch) bool { return true },
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

// WithOnEnqueue registers a callback to run on enqueue.
func WithOnEnqueue(fn func(node, depth int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnEnqueue = fn
		}
	}
}

// WithOnDequeue registers a callback to run on dequeue.
func WithOnDequeue(fn func(node, depth int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnDequeue = fn
		}
	}
}

// WithOnVisit registers a callback to run on visit; an error stops the BFS.
func WithOnVisit(fn func(node, depth int) error) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// WithMaxDepth limits the search depth. d == 0 means no limit; d < 0 is invalid.
func WithMaxDepth(d int) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)
			return
		}
		o.MaxDepth = d
	}
}

// WithFilterBranch restricts traversal to branches accepted by fn.
func WithFilterBranch(fn func(b network.Branch) bool) Option {
	return func(o *Options) {
		if fn != nil {
			o.FilterBranch = fn
		}
	}
}

// WithStopAt ends the search as soon as node is reached.
func WithStopAt(node int) Option {
	return func(o *Options) {
		o.StopAt = node
		o.hasStopAt = true
	}
}

// Step is one branch traversal on a reconstructed path.
type Step struct {
	Branch network.Branch
	From   int
	To     int
}

// Along reports whether the traversal follows the branch orientation.
func (s Step) Along() bool { return s.Branch.From == s.From }

// Result holds the outcome of a BFS traversal.
type Result struct {
	Start  int
	Order  []int
	Depth  map[int]int
	Parent map[int]int
	Via    map[int]network.Branch
}

// Reached reports whether node was discovered.
func (r *Result) Reached(node int) bool {
	_, ok := r.Depth[node]
	return ok
}

// PathTo reconstructs the node path from the start node to dest.
func (r *Result) PathTo(dest int) ([]int, error) {
	if !r.Reached(dest) {
		return nil, fmt.Errorf("%w: %d", ErrNoPath, dest)
	}
	path := []int{dest}
	for cur := dest; cur != r.Start; {
		cur = r.Parent[cur]
		path = append(path, cur)
	}
	reverse(path)

	return path, nil
}

// StepsTo reconstructs the branch path from the start node to dest.
// The path is empty when dest is the start node.
func (r *Result) StepsTo(dest int) ([]Step, error) {
	if !r.Reached(dest) {
		return nil, fmt.Errorf("%w: %d", ErrNoPath, dest)
	}
	var steps []Step
	for cur := dest; cur != r.Start; {
		prev := r.Parent[cur]
		steps = append(steps, Step{Branch: r.Via[cur], From: prev, To: cur})
		cur = prev
	}
	reverse(steps)

	return steps, nil
}

func reverse[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
