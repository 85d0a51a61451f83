// Copyright 2024-2026, Flowsim Authors

package graph

import (
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/flowsim/trace-feeder/trace"
)

// Loader drives windowed ingestion of a trace into a Graph and seeds the
// ReadyQueue with issuable nodes. A window is a bounded batch of records
// loaded and resolved together before control returns to the consumer; for
// small traces the window can be the whole trace.
type Loader struct {
	graph      *Graph
	ready      *ReadyQueue
	source     trace.Source
	windowSize int // records per window; <= 0 loads the whole source
	eof        bool
	logger     *log.Entry
}

// NewLoader makes a Loader over graph and ready. A windowSize <= 0 means
// every LoadNextWindow call drains the source.
func NewLoader(g *Graph, ready *ReadyQueue, source trace.Source, windowSize int, logger *log.Entry) *Loader {
	if logger == nil {
		logger = log.NewEntry(log.StandardLogger())
	}
	return &Loader{
		graph:      g,
		ready:      ready,
		source:     source,
		windowSize: windowSize,
		logger:     logger,
	}
}

// LoadNextWindow reads the next window of records into the graph. Each
// record is added and dependencies re-resolved before the next read: later
// records can resolve earlier forward references, and earlier records can
// become issuable before the batch finishes. The window stays open past
// windowSize while the unresolved set is non-empty, because only further
// reads can satisfy a forward reference.
//
// After the loop, a final pass seeds the ReadyQueue with every held node
// whose dependency set is already empty; ReadyQueue membership makes the
// pass idempotent. A window that ends at end-of-source with unresolved nodes
// left is malformed - it references ids that will never appear. That is
// logged but not an error: the nodes simply never become issuable.
func (l *Loader) LoadNextWindow() error {
	read := 0
	for !l.eof && (l.windowSize <= 0 || read < l.windowSize || l.graph.UnresolvedLen() > 0) {
		rec, err := l.source.Read()
		if err == io.EOF {
			l.eof = true
			break
		}
		if err != nil {
			return err
		}
		node := l.graph.AddNode(rec)
		l.graph.ResolveDep()
		if node.DepFree() {
			l.ready.Push(node.Id())
		}
		read++
	}

	if l.eof && l.graph.UnresolvedLen() > 0 {
		l.logger.WithFields(log.Fields{
			"unresolvedNodes": l.graph.UnresolvedIds(),
		}).Warn("trace exhausted with unresolved dependencies; these nodes will never become issuable")
	}

	// Seed every dep-free node that was never queued during the incremental
	// pass (nodes with zero dependencies from the start included).
	seeded := 0
	for _, node := range l.graph.Nodes() {
		if node.DepFree() && l.ready.Push(node.Id()) {
			seeded++
		}
	}

	l.logger.WithFields(log.Fields{
		"recordsRead": read,
		"seeded":      seeded,
		"liveNodes":   l.graph.Len(),
		"readyNodes":  l.ready.Len(),
	}).Debug("window loaded")

	return nil
}

// Exhausted returns whether the source has been fully read.
func (l *Loader) Exhausted() bool { return l.eof }
