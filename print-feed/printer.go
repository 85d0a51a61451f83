// Copyright 2024-2026, Flowsim Authors

// Package printfeed drains workload traces in issue order and prints one
// line per issued node. It is the quickest way to see what a simulator
// would be fed, and to spot traces that never fully drain.
package printfeed

import (
	"fmt"
	"sort"

	"github.com/alexflint/go-arg"
	log "github.com/sirupsen/logrus"

	"github.com/flowsim/trace-feeder/config"
	"github.com/flowsim/trace-feeder/feeder"
	"github.com/flowsim/trace-feeder/proto"
	"github.com/flowsim/trace-feeder/trace"
	"github.com/flowsim/trace-feeder/version"
)

var cmd struct {
	TraceFile  string `arg:"positional" help:"JSON workload trace to feed"`
	Config     string `arg:"-c,--config" help:"yaml config with one feeder per rank (alternative to a single trace)"`
	WindowSize int    `arg:"--window-size" help:"records per window (0 loads the whole trace)"`
	Debug      bool   `arg:"--debug" help:"enable debug logging"`
	Version    bool   `arg:"--version" help:"print version"`
}

func Run() error {
	arg.MustParse(&cmd)

	if cmd.Version {
		fmt.Println("print-feed " + version.Version())
		return nil
	}
	if cmd.Debug {
		log.SetLevel(log.DebugLevel)
	}

	if cmd.Config != "" {
		var simCfg config.Sim
		if err := config.Load(cmd.Config, &simCfg); err != nil {
			return err
		}
		return runSim(simCfg)
	}

	if cmd.TraceFile == "" {
		return fmt.Errorf("a trace file or --config is required")
	}
	cfg := config.Defaults()
	cfg.TraceFile = cmd.TraceFile
	cfg.WindowSize = cmd.WindowSize
	f, err := makeFeeder(cfg)
	if err != nil {
		return err
	}
	return drain("", f)
}

// runSim drains every configured rank's trace, one rank at a time, in rank
// order. Feeders live in a shared repo, the same way a simulation front end
// holds them.
func runSim(simCfg config.Sim) error {
	feeders := feeder.NewRepo()
	ranks := make([]string, 0, len(simCfg.Feeders))
	for rank, cfg := range simCfg.Feeders {
		f, err := makeFeeder(cfg)
		if err != nil {
			return fmt.Errorf("rank %s: %s", rank, err)
		}
		feeders.Set(rank, f)
		ranks = append(ranks, rank)
	}
	sort.Strings(ranks)

	for _, rank := range ranks {
		f, err := feeders.Get(rank)
		if err != nil {
			return err
		}
		if err := drain(rank, f); err != nil {
			return fmt.Errorf("rank %s: %s", rank, err)
		}
		feeders.Remove(rank)
	}
	return nil
}

func makeFeeder(cfg config.Feeder) (feeder.Feeder, error) {
	// print-feed has no external engine to hand binary traces to; it only
	// drains JSON traces on the native pipeline.
	format := cfg.Format
	if format == "" {
		format = config.FormatForFile(cfg.TraceFile)
	}
	if format != config.FormatJSON {
		return nil, fmt.Errorf("print-feed only supports json traces, got format %q for %s", format, cfg.TraceFile)
	}
	src, err := trace.OpenJSONFile(cfg.TraceFile)
	if err != nil {
		return nil, err
	}
	return feeder.New(cfg, src, nil)
}

// drain pulls issuable nodes until the feeder is empty, completing each node
// as soon as it is issued. A feeder that still has nodes but cannot issue
// any, even after loading more of the trace, holds a dependency on an id
// that never appears; that is reported and the remaining nodes are skipped.
func drain(rank string, f feeder.Feeder) error {
	if err := f.LoadNextWindow(); err != nil {
		return err
	}
	for f.HasNodesToIssue() {
		node, ok := f.GetNextIssuableNode()
		if !ok {
			if err := f.LoadNextWindow(); err != nil {
				return err
			}
			if node, ok = f.GetNextIssuableNode(); !ok {
				log.WithFields(log.Fields{"rank": rank}).Warn("nodes remain but none are issuable; trace has unsatisfiable dependencies")
				break
			}
		}
		printNode(rank, node)
		f.FreeChildren(node.Id())
		f.RemoveNode(node.Id())
	}
	return nil
}

func printNode(rank string, node feeder.Node) {
	prefix := ""
	if rank != "" {
		prefix = rank + " "
	}
	fmt.Printf("%s%d %s %s runtime=%d\n",
		prefix, node.Id(), proto.NodeTypeName[node.NodeType()], node.Name(), node.Runtime())
}
