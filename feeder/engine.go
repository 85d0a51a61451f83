// Copyright 2024-2026, Flowsim Authors

package feeder

import (
	"github.com/flowsim/trace-feeder/graph"
	"github.com/flowsim/trace-feeder/proto"
)

// An Engine is an external dependency-graph backend substitutable for the
// native pipeline, e.g. a binary execution-trace engine that decodes its own
// file and pages its own windows. Anything implementing this contract can sit
// behind a Feeder and must behave exactly like the native pipeline does for
// the same abstract graph.
type Engine interface {
	// AddNode hands the engine one decoded record.
	AddNode(rec proto.Record)

	// RemoveNode drops a completed node by id.
	RemoveNode(id int64)

	// ResolveDep re-attempts to link forward references among the nodes
	// the engine currently holds.
	ResolveDep()

	// PushBackIssuableNode re-admits a node into the engine's ready queue.
	PushBackIssuableNode(id int64)

	// FreeChildrenNodes propagates completion of node id to its children.
	FreeChildrenNodes(id int64)

	// GetNextIssuableNode pops the next issuable node, or returns false.
	GetNextIssuableNode() (Node, bool)

	// LookupNode fetches a currently-held node by id.
	LookupNode(id int64) (Node, error)

	// HasNodesToIssue returns true while the engine holds or queues nodes.
	HasNodesToIssue() bool
}

// engineFeeder adapts an Engine to the Feeder contract. The deferral queue
// lives here, not in the engine: it is consumer-side state, the same FIFO
// regardless of backend.
type engineFeeder struct {
	engine   Engine
	deferred *graph.DeferralQueue
}

var _ Feeder = &engineFeeder{}

// NewEngineFeeder makes a Feeder over an external engine.
func NewEngineFeeder(engine Engine) Feeder {
	return &engineFeeder{
		engine:   engine,
		deferred: graph.NewDeferralQueue(),
	}
}

// LoadNextWindow is a no-op for engines: an engine decodes its own trace and
// pages windows internally as its queues drain.
func (f *engineFeeder) LoadNextWindow() error {
	return nil
}

func (f *engineFeeder) HasNodesToIssue() bool {
	return f.engine.HasNodesToIssue()
}

func (f *engineFeeder) GetNextIssuableNode() (Node, bool) {
	return f.engine.GetNextIssuableNode()
}

func (f *engineFeeder) LookupNode(id int64) (Node, error) {
	return f.engine.LookupNode(id)
}

func (f *engineFeeder) PushBackIssuableNode(id int64) {
	f.engine.PushBackIssuableNode(id)
}

func (f *engineFeeder) FreeChildren(id int64) {
	f.engine.FreeChildrenNodes(id)
}

func (f *engineFeeder) RemoveNode(id int64) {
	f.engine.RemoveNode(id)
}

func (f *engineFeeder) Defer(id int64) {
	f.deferred.Push(id)
}

func (f *engineFeeder) DeferredFront() (int64, bool) {
	return f.deferred.Front()
}

func (f *engineFeeder) PopDeferred() (int64, bool) {
	return f.deferred.Pop()
}
