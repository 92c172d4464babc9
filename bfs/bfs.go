// SPDX-License-Identifier: MIT

package bfs

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/statevar/network"
)

// errStop ends the walk early without being reported to the caller.
var errStop = errors.New("bfs: stop")

// queueItem pairs a node with its BFS depth.
type queueItem struct {
	node  int
	depth int
}

// walker encapsulates mutable BFS state.
type walker struct {
	net     *network.Network
	opts    Options
	ctx     context.Context
	queue   []queueItem
	visited map[int]bool
	res     *Result
}

// BFS runs breadth-first search on net starting from start.
// Returns ErrNetworkNil or ErrStartNodeNotFound for invalid input,
// ErrOptionViolation for bad options, ctx.Err() on cancellation,
// or any OnVisit error.
func BFS(net *network.Network, start int, opts ...Option) (*Result, error) {
	if net == nil {
		return nil, ErrNetworkNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if !net.HasNode(start) {
		return nil, fmt.Errorf("%w: %d", ErrStartNodeNotFound, start)
	}

	n := net.NodeCount()
	w := &walker{
		net:     net,
		opts:    o,
		ctx:     o.Ctx,
		queue:   make([]queueItem, 0, n),
		visited: make(map[int]bool, n),
		res: &Result{
			Start:  start,
			Order:  make([]int, 0, n),
			Depth:  make(map[int]int, n),
			Parent: make(map[int]int, n),
			Via:    make(map[int]network.Branch, n),
		},
	}

	w.enqueue(start, 0)
	if o.hasStopAt && o.StopAt == start {
		return w.res, nil
	}
	if err := w.loop(); err != nil && !errors.Is(err, errStop) {
		return w.res, err
	}

	return w.res, nil
}

// Reachable reports whether to can be reached from from using only the
// branches accepted by filter. A nil filter accepts every branch.
// A node absent from net is reachable only from itself.
func Reachable(ctx context.Context, net *network.Network, from, to int, filter func(network.Branch) bool) (bool, error) {
	if from == to {
		return true, nil
	}
	if net == nil {
		return false, ErrNetworkNil
	}
	if !net.HasNode(from) || !net.HasNode(to) {
		return false, nil
	}
	res, err := BFS(net, from, WithContext(ctx), WithFilterBranch(filter), WithStopAt(to))
	if err != nil {
		return false, err
	}

	return res.Reached(to), nil
}

func (w *walker) enqueue(node, depth int) {
	w.visited[node] = true
	w.res.Depth[node] = depth
	w.opts.OnEnqueue(node, depth)
	w.queue = append(w.queue, queueItem{node: node, depth: depth})
}

// loop processes the queue until empty, error, stop or cancellation.
func (w *walker) loop() error {
	for len(w.queue) > 0 {
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		default:
		}

		item := w.queue[0]
		w.queue = w.queue[1:]
		w.opts.OnDequeue(item.node, item.depth)

		w.res.Order = append(w.res.Order, item.node)
		if err := w.opts.OnVisit(item.node, item.depth); err != nil {
			return fmt.Errorf("bfs: OnVisit error at %d: %w", item.node, err)
		}
		if err := w.enqueueNeighbors(item); err != nil {
			return err
		}
	}
	return nil
}

// enqueueNeighbors walks incident branches in insertion order and enqueues
// every unseen endpoint reached through an accepted branch.
func (w *walker) enqueueNeighbors(item queueItem) error {
	next := item.depth + 1
	if w.opts.MaxDepth > 0 && next > w.opts.MaxDepth {
		return nil
	}
	incident, err := w.net.Incident(item.node)
	if err != nil {
		return fmt.Errorf("bfs: incident branches of %d: %w", item.node, err)
	}
	for _, b := range incident {
		if !w.opts.FilterBranch(b) {
			continue
		}
		nbr := b.Other(item.node)
		if w.visited[nbr] {
			continue
		}
		w.res.Parent[nbr] = item.node
		w.res.Via[nbr] = b
		w.enqueue(nbr, next)
		if w.opts.hasStopAt && nbr == w.opts.StopAt {
			return errStop
		}
	}
	return nil
}
