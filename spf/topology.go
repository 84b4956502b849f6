package spf

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Edge represents a directed link between two routers.
type Edge struct {
	From int
	To   int
	Cost int
}

// Topology represents the topology of a network as a directed graph. Nexts[u]
// holds the indices (in Edges) of the edges leaving node u, in input order.
//
// A Topology is never modified once built and can be shared by concurrent
// computations.
type Topology struct {
	Nexts [][]int
	Edges []Edge
}

// NewTopology creates a new topology with the specified edges and number of
// nodes. It is important to ensure that edges are only between nodes within
// the range [0, nNodes); otherwise, the function will panic. Use CheckEdges
// to validate untrusted input first.
func NewTopology(edges []Edge, nNodes int) *Topology {
	topo := &Topology{
		Nexts: make([][]int, nNodes),
		Edges: make([]Edge, len(edges)),
	}
	for i, e := range edges {
		topo.Edges[i] = e
		topo.Nexts[e.From] = append(topo.Nexts[e.From], i)
	}
	return topo
}

// NodeCount returns the number of nodes in the topology.
func (t *Topology) NodeCount() int {
	return len(t.Nexts)
}

// NodeIndex converts a 1-based router identifier into a node index.
func (t *Topology) NodeIndex(id int) (int, error) {
	if id < 1 || t.NodeCount() < id {
		return 0, fmt.Errorf("%w: router %d not in [1, %d]", ErrInvalidNode, id, t.NodeCount())
	}
	return id - 1, nil
}

// CheckEdges validates edges against a topology of nNodes nodes. All the
// invalid edges are reported, not only the first one.
func CheckEdges(edges []Edge, nNodes int) error {
	if nNodes < 1 {
		return ErrEmptyTopology
	}

	var errs *multierror.Error
	for i, e := range edges {
		if e.From < 0 || nNodes <= e.From {
			errs = multierror.Append(errs, fmt.Errorf("%w: edge %d starts at node %d", ErrInvalidNode, i, e.From))
		}
		if e.To < 0 || nNodes <= e.To {
			errs = multierror.Append(errs, fmt.Errorf("%w: edge %d ends at node %d", ErrInvalidNode, i, e.To))
		}
		if e.Cost < 0 {
			errs = multierror.Append(errs, fmt.Errorf("%w: edge %d has cost %d", ErrNegativeCost, i, e.Cost))
		}
	}
	return errs.ErrorOrNil()
}

func (t *Topology) checkNode(node int) error {
	if node < 0 || t.NodeCount() <= node {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrInvalidNode, node, t.NodeCount())
	}
	return nil
}
