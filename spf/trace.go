package spf

// NodeStatus describes where a node stands at a given step of the
// computation.
type NodeStatus int8

const (
	// Unreached nodes have not been discovered yet.
	Unreached NodeStatus = iota

	// Tentative nodes have been discovered and are waiting in the queue.
	Tentative

	// Settled nodes have been popped and their distance is final.
	Settled
)

func (s NodeStatus) String() string {
	switch s {
	case Unreached:
		return "unreached"
	case Tentative:
		return "tentative"
	case Settled:
		return "settled"
	default:
		return "unknown"
	}
}

// NodeState is a snapshot of a node's distance and parent. Dist and Parent
// are only meaningful when Status is Tentative or Settled.
type NodeState struct {
	Node   int
	Status NodeStatus
	Dist   int
	Parent int
}

// Step is a snapshot of the computation taken right after a node has been
// settled and its outgoing edges relaxed.
type Step struct {
	// Index is the 0-based index of the step.
	Index int

	// Settled lists the settled nodes in the order they were settled.
	Settled []int

	// Nodes holds the state of every node but the source, in node order.
	Nodes []NodeState

	// QueueLen is the number of nodes waiting in the queue.
	QueueLen int
}

// Tracer receives one Step per settled node. Steps do not share memory with
// the engine and can be retained.
type Tracer func(Step)

func (r *run) snapshot(index int) Step {
	settled := r.settled.Content()
	step := Step{
		Index:    index,
		Settled:  append([]int(nil), settled...),
		Nodes:    make([]NodeState, 0, len(r.dist)-1),
		QueueLen: r.queue.Len(),
	}
	for v := range r.dist {
		if v == r.src {
			continue
		}
		ns := NodeState{Node: v, Status: Unreached, Parent: NoParent}
		switch {
		case r.settled.Contains(v):
			ns.Status = Settled
		case r.dist[v] != Unreachable:
			ns.Status = Tentative
		}
		if ns.Status != Unreached {
			ns.Dist = r.dist[v]
			ns.Parent = r.parent[v]
		}
		step.Nodes = append(step.Nodes, ns)
	}
	return step
}
