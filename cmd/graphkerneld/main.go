// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Command graphkerneld runs the graph kernel's REST surface (spec §6):
// /health, /api/slice, /api/slice/batch, /api/verify_token, and
// /api/policies, backed by a Postgres-backed (or in-memory) GraphStore.
// Flag handling follows the teacher's cmd/bench convention: a flat set of
// flag.* declarations, no subcommand framework.
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	apimetrics "github.com/luxfi/graphkernel/api/metrics"
	"github.com/luxfi/graphkernel/api"
	"github.com/luxfi/graphkernel/config"
	"github.com/luxfi/graphkernel/gklog"
	"github.com/luxfi/graphkernel/graph"
	"github.com/luxfi/graphkernel/policy"
	"github.com/luxfi/graphkernel/slicer"
	"github.com/luxfi/graphkernel/store/memstore"
	"github.com/luxfi/graphkernel/store/pgstore"
	"github.com/luxfi/graphkernel/token"
)

func main() {
	var (
		configPath = flag.String("config", "", "unused, present for operator familiarity with other luxfi daemons")
		inMemory   = flag.Bool("in-memory", false, "serve from an empty in-memory store instead of DATABASE_URL")
	)
	flag.Parse()
	_ = configPath

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "graphkerneld: %v\n", err)
		os.Exit(1)
	}

	log, err := gklog.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "graphkerneld: logger: %v\n", err)
		os.Exit(1)
	}

	var store graph.Store
	if *inMemory || cfg.DatabaseURL == "" {
		store = memstore.New()
	} else {
		pg, err := pgstore.Open(cfg.DatabaseURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "graphkerneld: open store: %v\n", err)
			os.Exit(1)
		}
		defer pg.Close()
		store = pg
	}

	metricsRegistry := apimetrics.NewRegistry()

	slicerMetrics, err := slicer.NewMetrics(metricsRegistry)
	if err != nil {
		fmt.Fprintf(os.Stderr, "graphkerneld: register slicer metrics: %v\n", err)
		os.Exit(1)
	}

	signer := token.NewSigner(cfg.HMACSecret)
	sl := slicer.New(store, log, signer)
	sl.Metrics = slicerMetrics

	registry := policy.NewRegistry()
	if _, err := registry.Register(policy.Default()); err != nil {
		fmt.Fprintf(os.Stderr, "graphkerneld: register default policy: %v\n", err)
		os.Exit(1)
	}

	verifier, err := token.NewCached(cfg.HMACSecret, cfg.VerifierCacheCapacity)
	if err != nil {
		fmt.Fprintf(os.Stderr, "graphkerneld: build verifier: %v\n", err)
		os.Exit(1)
	}

	server := &api.Server{
		Slicer:   sl,
		Registry: registry,
		Verifier: verifier,
		Log:      log,
	}

	mux := server.Mux()
	mux.Handle("/metrics", promhttp.HandlerFor(metricsRegistry, promhttp.HandlerOpts{}))

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	log.Info("graphkerneld listening", gklog.String("addr", addr))
	if err := http.ListenAndServe(addr, mux); err != nil {
		fmt.Fprintf(os.Stderr, "graphkerneld: %v\n", err)
		os.Exit(1)
	}
}
