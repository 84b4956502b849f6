package spf

import "fmt"

// Link is a directed link between two adjacent routers.
type Link struct {
	From int
	To   int
}

// Route is an entry of a forwarding table: traffic for Destination leaves
// the source through NextHop and reaches Destination at cost Cost.
type Route struct {
	Destination int
	NextHop     int
	Cost        int
}

// ForwardingTable maps each reachable destination to the neighbor of the
// source that begins its shortest path.
type ForwardingTable struct {
	Source int
	Routes []Route

	// unreachable lists the destinations without a route, in increasing
	// order.
	unreachable []int
	byDest      map[int]int
}

// NewForwardingTable derives the forwarding table of the source from the
// parent pointers of res. It fails with ErrInconsistentTree if the parent
// pointers do not lead every reachable node back to the source.
func NewForwardingTable(res *Result) (*ForwardingTable, error) {
	if res == nil {
		return nil, ErrNilResult
	}
	nNodes := len(res.Parent)
	ft := &ForwardingTable{
		Source: res.Source,
		byDest: make(map[int]int, nNodes),
	}

	for d := 0; d < nNodes; d++ {
		if d == res.Source {
			continue
		}
		if !res.Reachable(d) {
			ft.unreachable = append(ft.unreachable, d)
			continue
		}
		hop, err := nextHop(res.Parent, res.Source, d)
		if err != nil {
			return nil, err
		}
		ft.byDest[d] = len(ft.Routes)
		ft.Routes = append(ft.Routes, Route{
			Destination: d,
			NextHop:     hop,
			Cost:        res.Dist[d],
		})
	}

	log.Debugf("Forwarding table of node %d: %d routes, %d unreachable",
		res.Source, len(ft.Routes), len(ft.unreachable))
	return ft, nil
}

// Lookup returns the route toward dest, if any.
func (ft *ForwardingTable) Lookup(dest int) (Route, bool) {
	i, ok := ft.byDest[dest]
	if !ok {
		return Route{}, false
	}
	return ft.Routes[i], true
}

// Link returns the link the source uses to forward traffic to the route's
// destination.
func (ft *ForwardingTable) Link(r Route) Link {
	return Link{From: ft.Source, To: r.NextHop}
}

// Unreachable returns the destinations (other than the source) that have no
// route, in increasing order.
func (ft *ForwardingTable) Unreachable() []int {
	return append([]int(nil), ft.unreachable...)
}

// nextHop walks the parent pointers from dest back to src and returns the
// last node visited before src. The walk takes at most len(parent) steps.
func nextHop(parent []int, src int, dest int) (int, error) {
	v := dest
	for steps := 0; steps < len(parent); steps++ {
		p := parent[v]
		if p == src {
			return v, nil
		}
		if p < 0 || len(parent) <= p {
			return 0, fmt.Errorf("%w: node %d has parent %d on the path to %d",
				ErrInconsistentTree, v, p, dest)
		}
		v = p
	}
	return 0, fmt.Errorf("%w: no path back to %d from %d within %d steps",
		ErrInconsistentTree, src, dest, len(parent))
}
