// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package main provides the gkbench CLI tool for slicer benchmarking.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/luxfi/graphkernel/gklog"
	"github.com/luxfi/graphkernel/graph"
	"github.com/luxfi/graphkernel/ids"
	"github.com/luxfi/graphkernel/policy"
	"github.com/luxfi/graphkernel/slicer"
	"github.com/luxfi/graphkernel/store/memstore"
	"github.com/luxfi/graphkernel/token"
)

func main() {
	var (
		chainLen = flag.Int("chain-len", 1000, "Number of turns in the synthetic chain")
		runs     = flag.Int("runs", 100, "Number of Slice invocations")
		maxNodes = flag.Int("max-nodes", 50, "Policy MaxNodes budget")
		maxRadius = flag.Int("max-radius", 5, "Policy MaxRadius")
		verbose  = flag.Bool("verbose", false, "Print per-run timings")
		help     = flag.Bool("help", false, "Show help message")
	)
	flag.Parse()

	if *help {
		printHelp()
		os.Exit(0)
	}

	store, anchor := buildChain(*chainLen)

	log := gklog.NewNoOp()

	signer := token.NewSigner([]byte("gkbench-secret"))
	sl := slicer.New(store, log, signer)

	p := policy.Default()
	p.MaxNodes = *maxNodes
	p.MaxRadius = *maxRadius

	fmt.Printf("Benchmarking slicer: chain-len=%d runs=%d max-nodes=%d max-radius=%d\n",
		*chainLen, *runs, *maxNodes, *maxRadius)

	ctx := context.Background()
	var total time.Duration
	var worst time.Duration
	for i := 0; i < *runs; i++ {
		start := time.Now()
		export, err := sl.Slice(ctx, anchor, p)
		elapsed := time.Since(start)
		if err != nil {
			fmt.Fprintf(os.Stderr, "gkbench: run %d: %v\n", i, err)
			os.Exit(1)
		}
		total += elapsed
		if elapsed > worst {
			worst = elapsed
		}
		if *verbose {
			fmt.Printf("run %d: %s (turns=%d)\n", i, elapsed, len(export.Turns))
		}
	}

	fmt.Printf("\nTotal: %s, Mean: %s, Worst: %s\n", total, total/time.Duration(*runs), worst)
}

func printHelp() {
	fmt.Println("Graph Kernel Slicer Benchmark Tool")
	fmt.Println("\nUsage: gkbench [options]")
	fmt.Println("\nOptions:")
	fmt.Println("  -chain-len int    Number of turns in the synthetic chain (default: 1000)")
	fmt.Println("  -runs int         Number of Slice invocations (default: 100)")
	fmt.Println("  -max-nodes int    Policy MaxNodes budget (default: 50)")
	fmt.Println("  -max-radius int   Policy MaxRadius (default: 5)")
	fmt.Println("  -verbose          Print per-run timings")
	fmt.Println("  -help             Show this help message")
	fmt.Println("\nExamples:")
	fmt.Println("  gkbench                                 # Benchmark with defaults")
	fmt.Println("  gkbench -chain-len 5000 -max-nodes 200  # Larger graph, larger budget")
}

// buildChain constructs a linear parent/child chain of n turns in an
// in-memory store and returns the store and the id of its tail turn
// (the anchor for benchmarking).
func buildChain(n int) (*memstore.Store, ids.TurnID) {
	store := memstore.New()

	turns := make([]ids.TurnID, n)
	for i := 0; i < n; i++ {
		id, err := ids.ParseTurnID(fmt.Sprintf("%08x-0000-0000-0000-000000000000", i+1))
		if err != nil {
			panic(err)
		}
		turns[i] = id

		role := graph.RoleUser
		if i%2 == 1 {
			role = graph.RoleAssistant
		}
		store.AddTurn(graph.TurnSnapshot{
			ID:            id,
			SessionID:     "bench-session",
			Role:          role,
			Phase:         graph.PhaseExploration,
			Salience:      0.5,
			TrajectoryDepth: i,
			CreatedAt:     int64(i),
		})
		if i > 0 {
			store.AddEdge(graph.Edge{Parent: turns[i-1], Child: turns[i], Type: graph.EdgeReply})
		}
	}

	return store, turns[n-1]
}
