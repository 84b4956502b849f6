package spf

import "errors"

var (
	// ErrNilTopology is returned when a nil topology is given to the engine.
	ErrNilTopology = errors.New("spf: topology is nil")

	// ErrNilResult is returned when a nil result is given to the forwarding
	// table builder.
	ErrNilResult = errors.New("spf: result is nil")

	// ErrEmptyTopology is returned for topologies without any node.
	ErrEmptyTopology = errors.New("spf: topology has no node")

	// ErrInvalidNode indicates a node index outside of [0, N).
	ErrInvalidNode = errors.New("spf: invalid node")

	// ErrNegativeCost indicates an edge with a negative cost.
	ErrNegativeCost = errors.New("spf: negative edge cost")

	// ErrDuplicateEntry is returned when inserting a node that is already
	// in the queue.
	ErrDuplicateEntry = errors.New("spf: node already in queue")

	// ErrQueueUnderflow is returned when popping from an empty queue.
	ErrQueueUnderflow = errors.New("spf: pop from empty queue")

	// ErrInconsistentTree indicates that parent pointers do not form a tree
	// rooted at the source (cycle or dangling parent).
	ErrInconsistentTree = errors.New("spf: inconsistent shortest-path tree")
)
