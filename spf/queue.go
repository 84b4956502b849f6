package spf

import "fmt"

type queueEntry struct {
	node int
	prio int
}

// Queue is an indexed binary min-heap of nodes ordered by priority. Each node
// appears at most once and its position in the heap is tracked so that its
// priority can be changed in O(log n).
//
// Entries are ordered by priority first and by node index second, so the
// order in which nodes are popped is fully determined by their priorities and
// identities.
type Queue struct {
	heap []queueEntry

	// slots[n] is the position of node n in heap, or -1 if n is not in the
	// queue.
	slots []int
}

// NewQueue returns an empty queue that can hold nodes in [0, nNodes).
func NewQueue(nNodes int) *Queue {
	slots := make([]int, nNodes)
	for i := range slots {
		slots[i] = -1
	}
	return &Queue{
		heap:  make([]queueEntry, 0, nNodes),
		slots: slots,
	}
}

// Len returns the number of entries in the queue.
func (q *Queue) Len() int {
	return len(q.heap)
}

// Empty returns true if the queue has no entry.
func (q *Queue) Empty() bool {
	return len(q.heap) == 0
}

// Contains returns true if node is in the queue.
func (q *Queue) Contains(node int) bool {
	return 0 <= node && node < len(q.slots) && q.slots[node] >= 0
}

// Priority returns the priority of node and whether it is in the queue.
func (q *Queue) Priority(node int) (int, bool) {
	if !q.Contains(node) {
		return 0, false
	}
	return q.heap[q.slots[node]].prio, true
}

// Insert adds node to the queue with the given priority. Inserting a node
// that is already in the queue is an error.
func (q *Queue) Insert(node int, prio int) error {
	if err := q.checkNode(node); err != nil {
		return err
	}
	if q.slots[node] >= 0 {
		return fmt.Errorf("%w: %d", ErrDuplicateEntry, node)
	}
	q.heap = append(q.heap, queueEntry{node: node, prio: prio})
	q.slots[node] = len(q.heap) - 1
	q.siftUp(len(q.heap) - 1)
	return nil
}

// PopMin removes and returns the node with the smallest priority.
func (q *Queue) PopMin() (int, int, error) {
	if len(q.heap) == 0 {
		return 0, 0, ErrQueueUnderflow
	}

	top := q.heap[0]
	last := len(q.heap) - 1
	q.swap(0, last)
	q.heap = q.heap[:last]
	q.slots[top.node] = -1
	if last > 0 {
		q.siftDown(0)
	}
	return top.node, top.prio, nil
}

// Update changes the priority of node and restores the heap order. It returns
// false if node is not in the queue, in which case the queue is unchanged.
func (q *Queue) Update(node int, prio int) (bool, error) {
	if err := q.checkNode(node); err != nil {
		return false, err
	}
	i := q.slots[node]
	if i < 0 {
		return false, nil
	}

	old := q.heap[i].prio
	q.heap[i].prio = prio
	switch {
	case prio < old:
		q.siftUp(i)
	case prio > old:
		q.siftDown(i)
	}
	return true, nil
}

func (q *Queue) checkNode(node int) error {
	if node < 0 || len(q.slots) <= node {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrInvalidNode, node, len(q.slots))
	}
	return nil
}

func (q *Queue) less(i, j int) bool {
	a, b := q.heap[i], q.heap[j]
	if a.prio != b.prio {
		return a.prio < b.prio
	}
	return a.node < b.node
}

func (q *Queue) swap(i, j int) {
	q.heap[i], q.heap[j] = q.heap[j], q.heap[i]
	q.slots[q.heap[i].node] = i
	q.slots[q.heap[j].node] = j
}

// siftUp moves the entry at position i toward the root until its parent is
// not greater than it. The root's children are compared like any other.
func (q *Queue) siftUp(i int) {
	for i > 0 {
		p := (i - 1) / 2
		if !q.less(i, p) {
			return
		}
		q.swap(i, p)
		i = p
	}
}

func (q *Queue) siftDown(i int) {
	n := len(q.heap)
	for {
		best := i
		l := 2*i + 1
		r := l + 1
		if l < n && q.less(l, best) {
			best = l
		}
		if r < n && q.less(r, best) {
			best = r
		}
		if best == i {
			return
		}
		q.swap(i, best)
		i = best
	}
}
