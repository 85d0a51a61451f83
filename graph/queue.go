// Copyright 2024-2026, Flowsim Authors

package graph

import (
	"container/heap"
)

// ReadyQueue is the admission queue of issuable nodes. Nodes are popped in
// ascending id order among those simultaneously ready, which makes issuance
// order reproducible given the same ingestion order. Membership is tracked
// so that re-seeding the same node is a no-op.
type ReadyQueue struct {
	ids    idHeap
	member map[int64]bool
}

func NewReadyQueue() *ReadyQueue {
	return &ReadyQueue{
		ids:    idHeap{},
		member: map[int64]bool{},
	}
}

// Push admits a node id. It returns false if the id is already queued.
func (q *ReadyQueue) Push(id int64) bool {
	if q.member[id] {
		return false
	}
	q.member[id] = true
	heap.Push(&q.ids, id)
	return true
}

// Pop removes and returns the smallest queued id. The second return value is
// false if the queue is empty; Pop never blocks waiting for nodes to arrive.
func (q *ReadyQueue) Pop() (int64, bool) {
	if len(q.ids) == 0 {
		return 0, false
	}
	id := heap.Pop(&q.ids).(int64)
	delete(q.member, id)
	return id, true
}

// Has returns whether id is currently queued.
func (q *ReadyQueue) Has(id int64) bool { return q.member[id] }

// Len returns the number of queued ids.
func (q *ReadyQueue) Len() int { return len(q.ids) }

// idHeap is a min-heap of node ids for container/heap.
type idHeap []int64

func (h idHeap) Len() int            { return len(h) }
func (h idHeap) Less(i, j int) bool  { return h[i] < h[j] }
func (h idHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *idHeap) Push(x interface{}) { *h = append(*h, x.(int64)) }
func (h *idHeap) Pop() interface{} {
	old := *h
	n := len(old)
	id := old[n-1]
	*h = old[:n-1]
	return id
}

// DeferralQueue is a plain FIFO the consumer uses to stash a node it pulled
// but could not act on yet. It carries no readiness semantics: deferring a
// node does not touch its dependency state or its ReadyQueue membership.
type DeferralQueue struct {
	ids []int64
}

func NewDeferralQueue() *DeferralQueue {
	return &DeferralQueue{}
}

// Push appends a node id to the back of the queue.
func (q *DeferralQueue) Push(id int64) {
	q.ids = append(q.ids, id)
}

// Front returns the id at the front of the queue without removing it. The
// second return value is false if the queue is empty.
func (q *DeferralQueue) Front() (int64, bool) {
	if len(q.ids) == 0 {
		return 0, false
	}
	return q.ids[0], true
}

// Pop removes and returns the id at the front of the queue. The second
// return value is false if the queue is empty.
func (q *DeferralQueue) Pop() (int64, bool) {
	if len(q.ids) == 0 {
		return 0, false
	}
	id := q.ids[0]
	q.ids = q.ids[1:]
	return id, true
}

// Len returns the number of queued ids.
func (q *DeferralQueue) Len() int { return len(q.ids) }
