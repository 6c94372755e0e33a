// Package console implements the line-oriented command loop. It turns
// whitespace-separated input into calls on the simulation and prints the
// results; it holds no state of its own.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/talgya/meadow/internal/engine"
)

var (
	// ErrUnknownCommand is returned for input that names no command.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrUsage is returned when a known command has malformed arguments.
	ErrUsage = errors.New("bad arguments")
	// ErrRejected wraps a simulation operation that failed.
	ErrRejected = errors.New("operation rejected")
)

// Failure is a diagnostic shown to the user. Msg is printed verbatim.
type Failure struct {
	Msg string
	Err error
}

func (f *Failure) Error() string { return f.Msg }
func (f *Failure) Unwrap() error { return f.Err }

func fail(kind error, cause error, format string, args ...any) error {
	err := kind
	if cause != nil {
		err = fmt.Errorf("%w: %w", kind, cause)
	}
	return &Failure{Msg: fmt.Sprintf(format, args...), Err: err}
}

// EventLog supplies recent events for the events command.
type EventLog interface {
	RecentEvents(limit int) ([]engine.Event, error)
}

// Console routes parsed commands to the simulation and tick engine.
type Console struct {
	Sim    *engine.Simulation
	Eng    *engine.Engine
	Log    EventLog // Optional; falls back to the simulation's event buffer
	Out    io.Writer
	Prompt string

	mu        sync.Mutex
	runCancel context.CancelFunc // Set while a tick run is in progress
}

// New creates a console writing to out and wires sim's tick output to it.
func New(sim *engine.Simulation, eng *engine.Engine, out io.Writer) *Console {
	sim.Attach(eng, out)
	return &Console{Sim: sim, Eng: eng, Out: out}
}

// Interrupt stops the tick run in progress, if any, and reports whether one
// was running. Safe to call from another goroutine (a signal handler).
func (c *Console) Interrupt() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.runCancel == nil {
		return false
	}
	c.runCancel()
	c.runCancel = nil
	return true
}

func (c *Console) setRunCancel(cancel context.CancelFunc) {
	c.mu.Lock()
	c.runCancel = cancel
	c.mu.Unlock()
}

// Run reads commands from in until exit, end of input, or ctx is cancelled.
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		if ctx.Err() != nil {
			return nil
		}
		if c.Prompt != "" {
			fmt.Fprint(c.Out, c.Prompt)
		}
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil && ctx.Err() == nil {
				return fmt.Errorf("read command: %w", err)
			}
			return nil
		}

		quit, err := c.Execute(ctx, scanner.Text())
		if err != nil {
			fmt.Fprintln(c.Out, err.Error())
			slog.Debug("command failed", "line", scanner.Text(), "error", errors.Unwrap(err))
		}
		if quit {
			return nil
		}
	}
}

// Execute runs one command line. It reports quit for the exit command.
// Blank lines are ignored.
func (c *Console) Execute(ctx context.Context, line string) (quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	name, args := fields[0], fields[1:]
	if name == "exit" {
		return true, nil
	}

	cmd, ok := commands[name]
	if !ok {
		return false, fail(ErrUnknownCommand, nil, "Unknown command.")
	}
	if len(args) < cmd.minArgs {
		return false, fail(ErrUsage, nil, "usage: %s", cmd.usage)
	}
	return false, cmd.run(c, ctx, args)
}
