// Package engine provides the tick driver, the ant mediator, and the
// simulation that ties them to the colony registry.
package engine

import (
	"context"
	"log/slog"
)

// DefaultMaxTicks caps a single Advance call.
const DefaultMaxTicks = 10000

// Engine drives the simulation forward in discrete ticks.
type Engine struct {
	Tick        uint64 // Current tick counter (monotonic, never resets)
	MaxTicks    int    // Upper bound on ticks per Advance call
	ReportEvery uint64 // OnReport period in ticks; 0 disables

	// Callbacks — populated during setup.
	OnTick    func(tick uint64)          // Every tick
	OnReport  func(tick uint64)          // Every ReportEvery ticks
	OnAdvance func(ran int, tick uint64) // After each Advance that ran at least one tick
}

// NewEngine creates an engine with default settings.
func NewEngine() *Engine {
	return &Engine{
		MaxTicks:    DefaultMaxTicks,
		ReportEvery: 100,
	}
}

// Advance runs up to n ticks and returns how many ran. n is clamped to
// MaxTicks; cancelling ctx stops the run between ticks.
func (e *Engine) Advance(ctx context.Context, n int) int {
	if n > e.MaxTicks && e.MaxTicks > 0 {
		slog.Warn("tick request capped", "requested", n, "max", e.MaxTicks)
		n = e.MaxTicks
	}

	ran := 0
	for ; ran < n; ran++ {
		if err := ctx.Err(); err != nil {
			slog.Info("tick run interrupted", "tick", e.Tick, "ran", ran, "requested", n)
			break
		}
		e.step()
	}
	if ran > 0 && e.OnAdvance != nil {
		e.OnAdvance(ran, e.Tick)
	}
	return ran
}

// step advances the simulation by one tick.
func (e *Engine) step() {
	e.Tick++

	if e.OnTick != nil {
		e.OnTick(e.Tick)
	}

	if e.ReportEvery > 0 && e.Tick%e.ReportEvery == 0 && e.OnReport != nil {
		e.OnReport(e.Tick)
	}
}
