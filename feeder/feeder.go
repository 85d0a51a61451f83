// Copyright 2024-2026, Flowsim Authors

// Package feeder provides the consumer-facing surface of the trace feeder.
// A Feeder streams issuable workload nodes - nodes whose dependencies have
// all been satisfied - to a discrete-event simulator, one node per pull.
//
// Two backends exist behind the one Feeder contract: the native dependency
// graph pipeline (graph + ready queue + window loader) for JSON traces, and
// an adapter over an external Engine for ET traces. The backend is selected
// once, at construction; the two are observationally indistinguishable to
// the consumer.
package feeder

import (
	"fmt"

	"github.com/flowsim/trace-feeder/config"
	"github.com/flowsim/trace-feeder/errors"
	"github.com/flowsim/trace-feeder/trace"
)

// A Node is one issuable (or looked-up) workload node handed to the
// consumer. Implementations belong to whichever backend produced the node;
// consumers only use this interface.
type Node interface {
	Id() int64
	Name() string
	NodeType() int32
	IsCPUOp() bool

	// Cost accessors
	Runtime() int64
	NumOps() int64
	TensorSize() int64

	// Communication accessors
	CommType() int64
	CommPriority() int32
	CommSize() int64
	CommSrc() int32
	CommDst() int32
	CommTag() int32

	InvolvedDimSize() int32
	InvolvedDim(i int) bool

	// Children returns the ids of nodes that depend on this node, in
	// ascending order.
	Children() []int64
}

// A Feeder streams issuable nodes from one workload trace. All methods are
// synchronous and pull-based: nothing mutates the graph outside the
// consumer's own calls, and nothing blocks waiting for future data.
type Feeder interface {
	// LoadNextWindow ingests the next window of trace records. Consumers
	// call it when GetNextIssuableNode comes up empty but HasNodesToIssue
	// is still true and more trace data remains.
	LoadNextWindow() error

	// HasNodesToIssue returns true while any node is still held or queued.
	// It is the consumer's loop-termination signal. A malformed trace
	// (dependencies on ids that never appear) keeps this true forever.
	HasNodesToIssue() bool

	// GetNextIssuableNode pops the lowest-id issuable node. It returns
	// false, without blocking, when no node is currently issuable.
	GetNextIssuableNode() (Node, bool)

	// LookupNode fetches a currently-held node by id. It returns
	// errors.NodeNotFound if the id has not been loaded yet or has been
	// removed.
	LookupNode(id int64) (Node, error)

	// PushBackIssuableNode re-admits a node into the ready queue.
	PushBackIssuableNode(id int64)

	// FreeChildren reports node id complete: the id is removed from every
	// child's dependency set and children that become dependency-free are
	// admitted to the ready queue. Call exactly once per completed node,
	// before RemoveNode.
	FreeChildren(id int64)

	// RemoveNode drops a completed node. FreeChildren must have been
	// called first; removal does not propagate anything.
	RemoveNode(id int64)

	// Defer, DeferredFront, and PopDeferred operate the deferral queue: a
	// FIFO side channel for nodes the consumer pulled but cannot act on
	// yet. Deferring carries no readiness semantics.
	Defer(id int64)
	DeferredFront() (int64, bool)
	PopDeferred() (int64, bool)
}

// New makes a Feeder for the given config. The trace format selects the
// backend: FormatJSON builds the native pipeline over source, FormatET wraps
// engine. An empty format is derived from the trace file extension. Any
// other format is a configuration error - the feeder cannot be built.
func New(cfg config.Feeder, source trace.Source, engine Engine) (Feeder, error) {
	format := cfg.Format
	if format == "" {
		format = config.FormatForFile(cfg.TraceFile)
	}
	switch format {
	case config.FormatJSON:
		if source == nil {
			return nil, fmt.Errorf("json feeder requires a trace source")
		}
		return NewNativeFeeder(cfg, source), nil
	case config.FormatET:
		if engine == nil {
			return nil, fmt.Errorf("et feeder requires an engine")
		}
		return NewEngineFeeder(engine), nil
	default:
		return nil, errors.UnsupportedFormat{Format: format}
	}
}
