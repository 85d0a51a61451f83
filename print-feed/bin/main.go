// Copyright 2024-2026, Flowsim Authors

package main

import (
	"fmt"
	"os"

	printfeed "github.com/flowsim/trace-feeder/print-feed"
)

func main() {
	if err := printfeed.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
