// Command meadow runs the interactive ant colony simulation.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/talgya/meadow/internal/ants"
	"github.com/talgya/meadow/internal/colony"
	"github.com/talgya/meadow/internal/config"
	"github.com/talgya/meadow/internal/console"
	"github.com/talgya/meadow/internal/engine"
	"github.com/talgya/meadow/internal/entropy"
	"github.com/talgya/meadow/internal/meadow"
	"github.com/talgya/meadow/internal/persistence"
)

func main() {
	configPath := flag.String("config", os.Getenv("MEADOW_CONFIG"), "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	// Logs go to stderr; stdout carries the command transcript.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	// ── Event journal ─────────────────────────────────────────────────
	journal, err := persistence.Open(cfg.JournalDSN)
	if err != nil {
		slog.Error("failed to open journal", "error", err)
		os.Exit(1)
	}
	defer journal.Close()
	slog.Info("journal opened", "session", journal.Session())

	// ── Simulation ────────────────────────────────────────────────────
	groundSeed := cfg.GroundSeed
	if groundSeed == 0 {
		groundSeed = entropy.Seed()
	}

	sim := engine.NewSimulation(
		colony.New(),
		engine.NewMediator(entropy.NewRand(cfg.ShuffleSeed)),
		ants.NewSpawner(),
	)
	sim.Ground = meadow.NewGround(groundSeed)
	sim.Sink = journal

	if f, err := sim.BuildFarm(cfg.Farm); err != nil {
		slog.Warn("configured farm rejected", "error", err)
	} else {
		slog.Info("ant farm ready", "rooms", f.Rooms(), "resting_capacity", f.RestingCapacity())
	}

	eng := engine.NewEngine()
	eng.MaxTicks = cfg.MaxTicksPerCommand
	eng.ReportEvery = cfg.ReportEveryTicks

	con := console.New(sim, eng, os.Stdout)
	con.Log = journal
	con.Prompt = cfg.Prompt

	// ── Start ─────────────────────────────────────────────────────────
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	// SIGINT during a tick run stops that run only; SIGINT at the prompt or
	// SIGTERM ends the session.
	go func() {
		for sig := range sigCh {
			if sig == syscall.SIGINT && con.Interrupt() {
				slog.Info("tick run interrupted by signal")
				continue
			}
			slog.Info("received signal, shutting down", "signal", sig)
			cancel()
			os.Stdin.Close()
			return
		}
	}()

	slog.Info("meadow ready",
		"ground_seed", groundSeed,
		"max_ticks_per_command", eng.MaxTicks,
	)

	if err := con.Run(ctx, os.Stdin); err != nil {
		slog.Error("command loop failed", "error", err)
	}

	if counts, err := journal.CountByCategory(); err == nil {
		slog.Info("session closed",
			"tick", sim.CurrentTick(),
			"colonies", sim.Colonies.Len(),
			"ants", sim.Mediator.Len(),
			"events", counts,
		)
	}
}
