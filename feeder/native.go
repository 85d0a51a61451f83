// Copyright 2024-2026, Flowsim Authors

package feeder

import (
	"github.com/rs/xid"
	log "github.com/sirupsen/logrus"

	"github.com/flowsim/trace-feeder/config"
	"github.com/flowsim/trace-feeder/graph"
	"github.com/flowsim/trace-feeder/trace"
)

// nativeFeeder is the Feeder built on the native pipeline: a dependency
// graph fed by a window loader, a ready queue for admission, and a deferral
// queue for the consumer's side channel. One nativeFeeder exclusively owns
// its graph and queues; nothing is shared across feeders.
type nativeFeeder struct {
	graph    *graph.Graph
	ready    *graph.ReadyQueue
	deferred *graph.DeferralQueue
	loader   *graph.Loader
	logger   *log.Entry
}

var _ Feeder = &nativeFeeder{}

// NewNativeFeeder makes a Feeder over the native dependency-graph pipeline.
// The returned feeder holds no nodes until the first LoadNextWindow call.
func NewNativeFeeder(cfg config.Feeder, source trace.Source) Feeder {
	logger := log.WithFields(log.Fields{
		"feederId":  xid.New().String(),
		"traceFile": cfg.TraceFile,
	})
	g := graph.NewGraph()
	ready := graph.NewReadyQueue()
	return &nativeFeeder{
		graph:    g,
		ready:    ready,
		deferred: graph.NewDeferralQueue(),
		loader:   graph.NewLoader(g, ready, source, cfg.WindowSize, logger),
		logger:   logger,
	}
}

func (f *nativeFeeder) LoadNextWindow() error {
	return f.loader.LoadNextWindow()
}

func (f *nativeFeeder) HasNodesToIssue() bool {
	return f.graph.Len() > 0 || f.ready.Len() > 0
}

func (f *nativeFeeder) GetNextIssuableNode() (Node, bool) {
	id, ok := f.ready.Pop()
	if !ok {
		return nil, false
	}
	node, err := f.graph.Get(id)
	if err != nil {
		// Queued but no longer held: the consumer removed the node without
		// issuing it. Skip to the next issuable node.
		f.logger.WithFields(log.Fields{"nodeId": id}).Warn("ready node no longer in graph, skipping")
		return f.GetNextIssuableNode()
	}
	return node, true
}

func (f *nativeFeeder) LookupNode(id int64) (Node, error) {
	node, err := f.graph.Get(id)
	if err != nil {
		return nil, err
	}
	return node, nil
}

func (f *nativeFeeder) PushBackIssuableNode(id int64) {
	f.ready.Push(id)
}

func (f *nativeFeeder) FreeChildren(id int64) {
	for _, childId := range f.graph.FreeChildren(id) {
		f.ready.Push(childId)
	}
}

func (f *nativeFeeder) RemoveNode(id int64) {
	f.graph.RemoveNode(id)
}

func (f *nativeFeeder) Defer(id int64) {
	f.deferred.Push(id)
}

func (f *nativeFeeder) DeferredFront() (int64, bool) {
	return f.deferred.Front()
}

func (f *nativeFeeder) PopDeferred() (int64, bool) {
	return f.deferred.Pop()
}
