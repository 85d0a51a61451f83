// Copyright 2024-2026, Flowsim Authors

// Package trace provides sources of decoded workload records. A Source hands
// records to the feeder in trace order; the feeder never parses file bytes
// itself.
package trace

import (
	"io"

	"github.com/flowsim/trace-feeder/proto"
)

// A Source yields the records of one workload trace in source order.
type Source interface {
	// Read returns the next record. It returns io.EOF when the trace is
	// exhausted, and any decode error otherwise.
	Read() (proto.Record, error)
}

// SliceSource serves records from an in-memory slice. It is the Source used
// by simulators that already hold decoded records, and by tests.
type SliceSource struct {
	records []proto.Record
	next    int
}

func NewSliceSource(records []proto.Record) *SliceSource {
	return &SliceSource{records: records}
}

func (s *SliceSource) Read() (proto.Record, error) {
	if s.next >= len(s.records) {
		return proto.Record{}, io.EOF
	}
	rec := s.records[s.next]
	s.next++
	return rec, nil
}

// Len returns the total number of records in the source.
func (s *SliceSource) Len() int { return len(s.records) }
