package spf

import (
	"fmt"
	"math"
	"sort"

	"github.com/rhartert/sparsesets"
	"github.com/rhartert/yagh"
)

// EdgeRatio represents an edge and the ratio of load sent on that edge. For
// example, EdgeRatio{5, 0.5} means that 50% of the traffic toward a
// destination traverses edge 5.
type EdgeRatio struct {
	Edge  int
	Ratio float64
}

// HopShare is the fraction of the traffic toward a destination that the
// source forwards to one of its neighbors.
type HopShare struct {
	NextHop int
	Ratio   float64
}

// Multipath holds all the shortest paths from a source. Traffic toward a
// destination is split evenly among the equal-cost edges leaving each node.
type Multipath struct {
	topo  *Topology
	src   int
	costs []int

	// prevs[v] lists the incoming edges (u, v) that are part of a shortest
	// path from src to v.
	prevs [][]int
}

// NewMultipath computes the DAG of all the shortest paths from src.
func NewMultipath(topo *Topology, src int) (*Multipath, error) {
	costs, prevs, err := shortestDAG(topo, src)
	if err != nil {
		return nil, err
	}
	return &Multipath{
		topo:  topo,
		src:   src,
		costs: costs,
		prevs: prevs,
	}, nil
}

// Source returns the source of the DAG.
func (mp *Multipath) Source() int {
	return mp.src
}

// EdgeRatios returns the fraction of the traffic from the source toward dest
// that traverses each edge, sorted by edge. It returns nil if dest is the
// source or is unreachable.
func (mp *Multipath) EdgeRatios(dest int) []EdgeRatio {
	if dest == mp.src || dest < 0 || len(mp.costs) <= dest || mp.costs[dest] == Unreachable {
		return nil
	}

	loads := forwardingGraph(mp.topo, mp.prevs, mp.src, dest)
	ratios := make([]EdgeRatio, 0, len(loads))
	for e, r := range loads {
		ratios = append(ratios, EdgeRatio{Edge: e, Ratio: r})
	}
	sort.Slice(ratios, func(i, j int) bool {
		return ratios[i].Edge < ratios[j].Edge
	})
	return ratios
}

// NextHops returns the share of the traffic toward dest sent to each
// neighbor of the source, sorted by neighbor. It returns nil if dest is the
// source or is unreachable.
func (mp *Multipath) NextHops(dest int) []HopShare {
	byHop := map[int]float64{}
	for _, er := range mp.EdgeRatios(dest) {
		e := mp.topo.Edges[er.Edge]
		if e.From == mp.src {
			byHop[e.To] += er.Ratio
		}
	}
	if len(byHop) == 0 {
		return nil
	}

	shares := make([]HopShare, 0, len(byHop))
	for h, r := range byHop {
		shares = append(shares, HopShare{NextHop: h, Ratio: r})
	}
	sort.Slice(shares, func(i, j int) bool {
		return shares[i].NextHop < shares[j].NextHop
	})
	return shares
}

// forwardingGraph returns the fraction of the traffic from s to t carried by
// each edge of the shortest-path DAG described by prevs.
//
// Every node n other than s and t forwards exactly what it receives, s sends
// 1 and t receives 1. Edges that cannot lead to t carry nothing and are
// absent from the result.
func forwardingGraph(g *Topology, prevs [][]int, s int, t int) map[int]float64 {
	nNodes := g.NodeCount()

	// Walk prevs backward from t to keep only the edges that lead to t.
	outs := make([][]int, nNodes)
	pending := make([]int, nNodes) // incoming edges not yet visited
	seen := make([]bool, nNodes)
	order := []int{t}
	seen[t] = true
	for i := 0; i < len(order); i++ {
		v := order[i]
		pending[v] = len(prevs[v])
		for _, e := range prevs[v] {
			u := g.Edges[e].From
			outs[u] = append(outs[u], e)
			if !seen[u] {
				seen[u] = true
				order = append(order, u)
			}
		}
	}

	// Push the load forward: a node is split over its outgoing edges once
	// all of its incoming edges have been visited.
	received := make([]float64, nNodes)
	loads := make(map[int]float64)
	received[s] = 1
	order = append(order[:0], s)
	for i := 0; i < len(order); i++ {
		u := order[i]
		share := received[u] / float64(len(outs[u]))
		for _, e := range outs[u] {
			v := g.Edges[e].To
			loads[e] += share
			received[v] += share
			pending[v]--
			if pending[v] == 0 {
				order = append(order, v)
			}
		}
	}
	return loads
}

// isAncestor returns true if a is on some path of the DAG from the source to
// v, v included.
func isAncestor(g *Topology, prevs [][]int, a int, v int) bool {
	seen := map[int]bool{v: true}
	stack := []int{v}
	for len(stack) > 0 {
		u := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if u == a {
			return true
		}
		for _, e := range prevs[u] {
			if w := g.Edges[e].From; !seen[w] {
				seen[w] = true
				stack = append(stack, w)
			}
		}
	}
	return false
}

// shortestDAG computes the distance from src to every node and the DAG that
// encapsulates the shortest paths from src.
//
// The returned prevs maps each node v to the list of incoming edges (u, v)
// that are part of a shortest path from src to v. If v is unreachable from
// src, its list is empty. A zero-cost edge (u, v) toward an already settled
// node is kept unless v is an ancestor of u, so the DAG stays acyclic in
// presence of zero-cost cycles and self-loops and does not depend on the
// order in which nodes at equal distance are settled.
func shortestDAG(g *Topology, src int) ([]int, [][]int, error) {
	if g == nil {
		return nil, nil, ErrNilTopology
	}
	if err := g.checkNode(src); err != nil {
		return nil, nil, fmt.Errorf("source: %w", err)
	}

	nNodes := g.NodeCount()
	prevs := make([][]int, nNodes)
	costs := make([]int, nNodes)
	for i := range costs {
		costs[i] = math.MaxInt
	}

	settled := sparsesets.New(nNodes)
	h := yagh.New[int](nNodes)
	h.Put(src, 0)
	costs[src] = 0

	for h.Size() > 0 {
		entry := h.Pop()
		u, c := entry.Elem, entry.Cost
		settled.Insert(u)

		for _, e := range g.Nexts[u] {
			newCost := c + g.Edges[e].Cost
			v := g.Edges[e].To

			if settled.Contains(v) {
				if costs[v] == newCost && !isAncestor(g, prevs, v, u) {
					prevs[v] = append(prevs[v], e)
				}
				continue
			}

			// Longer than the best known path to v.
			if costs[v] < newCost {
				continue
			}

			// Ties with the best known path to v.
			if costs[v] == newCost {
				prevs[v] = append(prevs[v], e)
				continue
			}

			// A strictly shorter path to v.
			costs[v] = newCost
			prevs[v] = []int{e}
			h.Put(v, newCost)
		}
	}

	log.Tracef("Shortest-path DAG from node %d settled %d nodes", src, len(settled.Content()))
	return costs, prevs, nil
}
