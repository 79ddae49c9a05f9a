// Package main provides the entry point for the NARS core reasoner.
//
// The reasoner runs as a standalone process stepping its declarative and
// procedural working cycles at a fixed tick rate. It has no network
// surface and no persistent storage (spec.md §1 Non-goals); operators and
// a Narsese parser are injected by out-of-scope collaborators (the toy
// Pong environment, the CLI/REPL, the NLP shim) which are not part of
// this binary.
//
// Environment variables:
//   - NARS_CONFIG_FILE: path to a JSON or YAML config file (optional).
//   - NARS_REASONER_*, NARS_LOGGING_*: override individual config keys.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nars/internal/config"
	"nars/internal/goal"
	"nars/internal/obslog"
	"nars/internal/proc"
	"nars/internal/reasoner"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := obslog.Default(cfg.Reasoner.Verbosity)
	logger.Info("starting NARS core reasoner")

	r := reasoner.New(reasonerConfig(cfg), reasoner.NopParser{}, nil)
	defer r.Close()
	logger.Info("wired reasoning loop: concepts, goals, operators, storage worker")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	run(ctx, r, logger)
	logger.Info("shutting down")
}

// loadConfig loads from NARS_CONFIG_FILE if set, otherwise from defaults
// plus environment overrides.
func loadConfig() (*config.Config, error) {
	if path := os.Getenv("NARS_CONFIG_FILE"); path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

// reasonerConfig translates the ambient config schema into the reasoning
// loop's own Config shape.
func reasonerConfig(cfg *config.Config) reasoner.Config {
	rc := cfg.Reasoner
	return reasoner.Config{
		Proc: proc.Config{
			IntervalExpBase:          rc.IntervalExpBase,
			IntervalMax:              rc.IntervalMax,
			PerceptWindow:            rc.PerceptWindow,
			DecisionThreshold:        rc.DecisionThreshold,
			PerceptionSamplesPerStep: rc.PerceptionSamplesPerStep,
			EnableBabbling:           rc.EnableBabbling,
			NOpsMax:                  rc.NOpsMax,
			MultiOpProbability:       rc.MultiOpProbability,
			NConcepts:                rc.NConcepts,
		},
		NConcepts:          rc.NConcepts,
		KBeliefs:           rc.KBeliefs,
		MaxGoals:           goal.DefaultMaxEntries,
		MaxGoalDepth:       goal.DefaultMaxDepth,
		StorageWorkerDepth: rc.StorageWorkerChannelDepth,
		StorageWorkerCount: rc.StorageWorkerCount,
		Verbosity:          rc.Verbosity,
	}
}

// run steps the reasoning loop once per tick until ctx is cancelled.
func run(ctx context.Context, r *reasoner.Reasoner, logger *obslog.Logger) {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	var ticks int64
	for {
		select {
		case <-ctx.Done():
			logger.Info("stopped after %s ticks", obslog.Count(int(ticks)))
			return
		case <-ticker.C:
			r.Step()
			ticks++
		}
	}
}
