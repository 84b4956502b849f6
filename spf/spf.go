// Package spf computes single-source shortest paths over a link-state
// topology and derives the forwarding table of the source router from the
// resulting shortest-path tree.
package spf

import (
	"fmt"
	"math"

	"github.com/rhartert/sparsesets"
)

const (
	// Unreachable is the distance of nodes that cannot be reached from the
	// source. Use Result.Distance or Result.Reachable rather than comparing
	// against it.
	Unreachable = math.MaxInt

	// NoParent is the parent of the source and of unreachable nodes.
	NoParent = -1
)

// Result holds the outcome of a shortest-path computation.
type Result struct {
	Source int

	// Dist[v] is the cost of the shortest path from Source to v, or
	// Unreachable.
	Dist []int

	// Parent[v] is the predecessor of v on its shortest path from Source, or
	// NoParent.
	Parent []int

	// Settled lists the reachable nodes in the order they were settled.
	Settled []int
}

// Distance returns the distance from the source to v and whether v is
// reachable.
func (r *Result) Distance(v int) (int, bool) {
	if !r.Reachable(v) {
		return 0, false
	}
	return r.Dist[v], true
}

// Reachable returns true if there is a path from the source to v.
func (r *Result) Reachable(v int) bool {
	return 0 <= v && v < len(r.Dist) && r.Dist[v] != Unreachable
}

// PathTo returns the nodes on the shortest path from the source to v, source
// and v included. It returns nil if v is not reachable.
func (r *Result) PathTo(v int) ([]int, error) {
	if v < 0 || len(r.Dist) <= v {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrInvalidNode, v, len(r.Dist))
	}
	if !r.Reachable(v) {
		return nil, nil
	}

	path := []int{v}
	for u := v; u != r.Source; {
		u = r.Parent[u]
		if u < 0 || len(r.Dist) <= u || len(path) == len(r.Dist) {
			return nil, fmt.Errorf("%w: walking back from %d", ErrInconsistentTree, v)
		}
		path = append(path, u)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}

// Option configures a shortest-path computation.
type Option func(*options)

type options struct {
	tracer Tracer
}

// WithTracer registers a function called after each node is settled.
// Tracing does not change the outcome of the computation.
func WithTracer(t Tracer) Option {
	return func(o *options) {
		o.tracer = t
	}
}

// run holds the state of a single computation. It is never shared.
type run struct {
	topo    *Topology
	src     int
	dist    []int
	parent  []int
	queue   *Queue
	settled *sparsesets.Set
}

// ShortestPaths runs Dijkstra's algorithm from src over topo and returns
// the distance and parent of every node. Edge costs are assumed to be
// non-negative (see CheckEdges).
//
// Nodes are settled by increasing distance; nodes at the same distance are
// settled by increasing index.
func ShortestPaths(topo *Topology, src int, opts ...Option) (*Result, error) {
	if topo == nil {
		return nil, ErrNilTopology
	}
	if err := topo.checkNode(src); err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}

	cfg := options{}
	for _, opt := range opts {
		opt(&cfg)
	}

	nNodes := topo.NodeCount()
	r := &run{
		topo:    topo,
		src:     src,
		dist:    make([]int, nNodes),
		parent:  make([]int, nNodes),
		queue:   NewQueue(nNodes),
		settled: sparsesets.New(nNodes),
	}
	for v := range r.dist {
		r.dist[v] = Unreachable
		r.parent[v] = NoParent
	}

	log.Debugf("Computing shortest paths from node %d (%d nodes, %d edges)",
		src, nNodes, len(topo.Edges))

	if err := r.process(cfg.tracer); err != nil {
		return nil, err
	}

	settled := r.settled.Content()
	log.Debugf("Settled %d of %d nodes from node %d", len(settled), nNodes, src)

	return &Result{
		Source:  src,
		Dist:    r.dist,
		Parent:  r.parent,
		Settled: append([]int(nil), settled...),
	}, nil
}

func (r *run) process(tracer Tracer) error {
	r.dist[r.src] = 0
	if err := r.queue.Insert(r.src, 0); err != nil {
		return err
	}

	for step := 0; !r.queue.Empty(); step++ {
		u, d, err := r.queue.PopMin()
		if err != nil {
			return fmt.Errorf("step %d: %w", step, err)
		}
		if r.settled.Contains(u) {
			return fmt.Errorf("%w: node %d settled twice", ErrInconsistentTree, u)
		}
		r.settled.Insert(u)
		log.Tracef("Step %d: settled node %d at distance %d", step, u, d)

		if err := r.relax(u, d); err != nil {
			return err
		}
		if tracer != nil {
			tracer(r.snapshot(step))
		}
	}
	return nil
}

// relax examines the edges leaving u, which has just been settled at
// distance d.
func (r *run) relax(u int, d int) error {
	for _, e := range r.topo.Nexts[u] {
		edge := r.topo.Edges[e]
		v := edge.To

		// Settled distances are final.
		if r.settled.Contains(v) {
			continue
		}

		candidate := d + edge.Cost
		switch {
		case r.dist[v] == Unreachable:
			r.dist[v] = candidate
			r.parent[v] = u
			if err := r.queue.Insert(v, candidate); err != nil {
				return err
			}
		case candidate < r.dist[v]:
			r.dist[v] = candidate
			r.parent[v] = u
			if _, err := r.queue.Update(v, candidate); err != nil {
				return err
			}
		}
	}
	return nil
}
