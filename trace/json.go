// Copyright 2024-2026, Flowsim Authors

package trace

import (
	"encoding/json"
	"io"
	"io/ioutil"

	"github.com/flowsim/trace-feeder/errors"
	"github.com/flowsim/trace-feeder/proto"
)

// jsonTrace is the on-disk shape of a JSON workload trace: a single document
// holding the whole workload graph.
type jsonTrace struct {
	WorkloadGraph []proto.Record `json:"workload_graph"`
}

// JSONFile is a Source backed by a JSON workload trace. The entire document
// is decoded at open time, so a JSON trace is naturally loaded as one
// whole-file window.
type JSONFile struct {
	file    string
	records []proto.Record
	next    int
}

// OpenJSONFile reads and decodes a JSON workload trace.
func OpenJSONFile(file string) (*JSONFile, error) {
	data, err := ioutil.ReadFile(file)
	if err != nil {
		return nil, err
	}
	var doc jsonTrace
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.InvalidTrace{File: file, Err: err}
	}
	return &JSONFile{
		file:    file,
		records: doc.WorkloadGraph,
	}, nil
}

func (f *JSONFile) Read() (proto.Record, error) {
	if f.next >= len(f.records) {
		return proto.Record{}, io.EOF
	}
	rec := f.records[f.next]
	f.next++
	return rec, nil
}

// Len returns the number of records in the trace.
func (f *JSONFile) Len() int { return len(f.records) }

// File returns the trace file path.
func (f *JSONFile) File() string { return f.file }
