// Copyright 2024-2026, Flowsim Authors

// Package config provides the feeder config structures and file loading.
package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"
)

// Trace formats a feeder can be built for. The format selects the backend:
// JSON traces run on the native dependency-graph pipeline, ET traces are
// forwarded to an external execution-trace engine.
const (
	FormatJSON = "json"
	FormatET   = "et"
)

///////////////////////////////////////////////////////////////////////////////
// High-Level Config Structs
///////////////////////////////////////////////////////////////////////////////

// The config for one feeder instance. This is what feeder.New takes.
type Feeder struct {
	// Path of the workload trace to feed.
	TraceFile string `yaml:"trace_file"`

	// Trace format: "json" or "et". If empty, it is derived from the
	// trace file extension.
	Format string `yaml:"format"`

	// Number of records loaded per window. Zero or negative loads the
	// whole trace in one window, which is how JSON traces behave.
	WindowSize int `yaml:"window_size"`
}

// The config used by a multi-rank simulation front end: one feeder per
// simulated rank. This is read from in print-feed/bin/main.go.
type Sim struct {
	// Feeder config keyed by rank name.
	Feeders map[string]Feeder `yaml:"feeders"`
}

// Defaults returns a Feeder config with default values.
func Defaults() Feeder {
	return Feeder{
		Format:     "",
		WindowSize: 0,
	}
}

// FormatForFile derives the trace format from a file extension, mirroring
// how trace files are named: "*.json" is a JSON trace, "*.et" an execution
// trace for the external engine. Unknown extensions return "" and fail
// later as an UnsupportedFormat at feeder construction.
func FormatForFile(file string) string {
	switch strings.TrimPrefix(filepath.Ext(file), ".") {
	case "json":
		return FormatJSON
	case "et":
		return FormatET
	}
	return ""
}

// Load reads a yaml config file into the provided struct.
func Load(configFile string, configStruct interface{}) error {
	// Make sure the file exists.
	_, err := os.Stat(configFile)
	if err != nil {
		return err
	}

	// Read the file.
	data, err := ioutil.ReadFile(configFile)
	if err != nil {
		return err
	}

	// Unmarshal the contents of the file into the provided struct.
	err = yaml.Unmarshal(data, configStruct)
	if err != nil {
		return err
	}

	return nil
}
