// Copyright 2024-2026, Flowsim Authors

// Package errors provides errors reported to the feeder's consumer. All
// errors implement the error interface and return a terse but helpful
// message; the caller already knows the context in which it asked.
package errors

import (
	"fmt"
)

var _ error = NodeNotFound{}

// NodeNotFound is returned when a node id is looked up but is not currently
// held by the dependency graph. This usually means the node has not been
// loaded yet (its window has not been read), but it is also returned after a
// node has been completed and removed.
type NodeNotFound struct {
	NodeId int64
}

func (e NodeNotFound) Error() string {
	return fmt.Sprintf("node %d not in dependency graph; it may not have been loaded yet", e.NodeId)
}

// --------------------------------------------------------------------------

var _ error = UnsupportedFormat{}

// UnsupportedFormat is returned at construction time when the declared trace
// format does not match any known backend. This is a configuration error;
// the feeder cannot be built.
type UnsupportedFormat struct {
	Format string
}

func (e UnsupportedFormat) Error() string {
	return fmt.Sprintf("trace format %q not supported", e.Format)
}

// --------------------------------------------------------------------------

var _ error = InvalidTrace{}

// InvalidTrace is returned when a trace file cannot be decoded.
type InvalidTrace struct {
	File string
	Err  error
}

func (e InvalidTrace) Error() string {
	return fmt.Sprintf("cannot decode trace %s: %s", e.File, e.Err)
}
