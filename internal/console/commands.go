// Command table and handlers.
package console

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/talgya/meadow/internal/ants"
	"github.com/talgya/meadow/internal/colony"
	"github.com/talgya/meadow/internal/farm"
)

type command struct {
	usage   string
	minArgs int
	run     func(c *Console, ctx context.Context, args []string) error
}

var commands = map[string]command{
	"spawn":         {"spawn x y species", 3, cmdSpawn},
	"give":          {"give id resource amount", 3, cmdGive},
	"recordAntKill": {"recordAntKill id", 1, cmdRecordAntKill},
	"recordKill":    {"recordKill killerId killedId killedSpecies", 3, cmdRecordKill},
	"summary":       {"summary id", 1, cmdSummary},
	"tick":          {"tick [count]", 0, cmdTick},
	"hatch":         {"hatch type [count] [trait...]", 1, cmdHatch},
	"traits":        {"traits [trait...]", 0, cmdTraits},
	"farm":          {"farm rooms capacity", 2, cmdFarm},
	"colonies":      {"colonies", 0, cmdColonies},
	"events":        {"events [count]", 0, cmdEvents},
	"help":          {"help", 0, cmdHelp},
}

const helpText = `Commands:
  spawn x y species                          found a colony and its queen
  give id resource amount                    add resources (worker/warrior also count as stats)
  recordAntKill id                           credit a colony with an ant kill
  recordKill killerId killedId killedSpecies credit a colony with a colony kill
  summary id                                 show a colony report
  tick [count]                               advance the meadow (default 1 tick)
  hatch type [count] [trait...]              add Drone, Warrior or Queen ants
  traits [trait...]                          describe attributes (speed, strength)
  farm rooms capacity                        build an ant farm
  colonies                                   list colony IDs
  events [count]                             show recent events
  exit                                       quit`

// parseID parses a colony ID argument. Numbers below 1 parse but name no colony.
func parseID(s, usage string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fail(ErrUsage, err, "usage: %s", usage)
	}
	return n, nil
}

func colonyID(n int64) (colony.ID, bool) {
	if n < 1 {
		return 0, false
	}
	return colony.ID(n), true
}

func parseInt(s, usage string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fail(ErrUsage, err, "usage: %s", usage)
	}
	return n, nil
}

func notFound(id int64, err error) error {
	return fail(ErrRejected, err, "Colony %d does not exist.", id)
}

func cmdSpawn(c *Console, _ context.Context, args []string) error {
	const usage = "spawn x y species"
	x, err := parseInt(args[0], usage)
	if err != nil {
		return err
	}
	y, err := parseInt(args[1], usage)
	if err != nil {
		return err
	}
	_, msg := c.Sim.Spawn(x, y, args[2])
	fmt.Fprintln(c.Out, msg)
	return nil
}

func cmdGive(c *Console, _ context.Context, args []string) error {
	const usage = "give id resource amount"
	n, err := parseID(args[0], usage)
	if err != nil {
		return err
	}
	amount, err := parseInt(args[2], usage)
	if err != nil {
		return err
	}
	id, ok := colonyID(n)
	if !ok {
		return notFound(n, colony.ErrNotFound)
	}
	msg, err := c.Sim.Give(id, args[1], amount)
	if err != nil {
		return notFound(n, err)
	}
	fmt.Fprintln(c.Out, msg)
	return nil
}

func cmdRecordAntKill(c *Console, _ context.Context, args []string) error {
	n, err := parseID(args[0], "recordAntKill id")
	if err != nil {
		return err
	}
	id, ok := colonyID(n)
	if !ok {
		return notFound(n, colony.ErrNotFound)
	}
	msg, err := c.Sim.RecordAntKill(id)
	if err != nil {
		return notFound(n, err)
	}
	fmt.Fprintln(c.Out, msg)
	return nil
}

func cmdRecordKill(c *Console, _ context.Context, args []string) error {
	const usage = "recordKill killerId killedId killedSpecies"
	killerN, err := parseID(args[0], usage)
	if err != nil {
		return err
	}
	killedN, err := parseID(args[1], usage)
	if err != nil {
		return err
	}
	killer, okKiller := colonyID(killerN)
	killed, okKilled := colonyID(killedN)
	if !okKiller || !okKilled {
		return fail(ErrRejected, colony.ErrInvalidPair, "Invalid colony ID for kill operation.")
	}
	msg, err := c.Sim.RecordKill(killer, killed, args[2])
	if err != nil {
		return fail(ErrRejected, err, "Invalid colony ID for kill operation.")
	}
	fmt.Fprintln(c.Out, msg)
	return nil
}

func cmdSummary(c *Console, _ context.Context, args []string) error {
	n, err := parseID(args[0], "summary id")
	if err != nil {
		return err
	}
	id, ok := colonyID(n)
	if !ok {
		return notFound(n, colony.ErrNotFound)
	}
	s, err := c.Sim.Summary(id)
	if err != nil {
		return notFound(n, err)
	}
	fmt.Fprint(c.Out, s.String())
	return nil
}

// cmdTick advances the meadow. A missing or unparsable count means one tick.
// The run gets its own context so Interrupt stops it without ending the session.
func cmdTick(c *Console, ctx context.Context, args []string) error {
	count := 1
	if len(args) > 0 {
		if n, err := strconv.Atoi(args[0]); err == nil {
			count = n
		}
	}

	runCtx, cancel := context.WithCancel(ctx)
	c.setRunCancel(cancel)
	defer func() {
		c.setRunCancel(nil)
		cancel()
	}()

	ran := c.Eng.Advance(runCtx, count)
	if count > 0 && ran < count {
		fmt.Fprintf(c.Out, "Ran %d of %d ticks.\n", ran, count)
	}
	return nil
}

func parseTraits(names []string) ([]ants.Trait, error) {
	traits := make([]ants.Trait, 0, len(names))
	for _, name := range names {
		t, ok := ants.ParseTrait(name)
		if !ok {
			return nil, fail(ErrUsage, nil, "Unknown trait %s.", name)
		}
		traits = append(traits, t)
	}
	return traits, nil
}

func cmdHatch(c *Console, _ context.Context, args []string) error {
	kind, rest := args[0], args[1:]
	count := 1
	if len(rest) > 0 {
		if n, err := strconv.Atoi(rest[0]); err == nil {
			if n < 1 {
				return fail(ErrUsage, nil, "usage: hatch type [count] [trait...]")
			}
			count, rest = n, rest[1:]
		}
	}
	traits, err := parseTraits(rest)
	if err != nil {
		return err
	}

	hatched, err := c.Sim.Hatch(kind, count, traits...)
	if err != nil {
		return fail(ErrRejected, err, "Unknown ant type %s.", kind)
	}
	first, last := hatched[0].ID, hatched[len(hatched)-1].ID
	if first == last {
		fmt.Fprintf(c.Out, "Hatched 1 %s (ant %d).\n", kind, first)
	} else {
		fmt.Fprintf(c.Out, "Hatched %d %s (ants %d-%d).\n", len(hatched), kind, first, last)
	}
	return nil
}

func cmdTraits(c *Console, _ context.Context, args []string) error {
	traits, err := parseTraits(args)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.Out, ants.Describe(ants.BaseAttributes, traits...))
	return nil
}

func cmdFarm(c *Console, _ context.Context, args []string) error {
	const usage = "farm rooms capacity"
	rooms, err := parseInt(args[0], usage)
	if err != nil {
		return err
	}
	capacity, err := parseInt(args[1], usage)
	if err != nil {
		return err
	}
	f, err := c.Sim.BuildFarm(farm.Config{Rooms: rooms, RestingCapacity: capacity})
	if err != nil {
		if errors.Is(err, farm.ErrInvalid) {
			return fail(ErrRejected, err, "Farm rooms and capacity must not be negative.")
		}
		return fail(ErrRejected, err, "Farm not built.")
	}
	fmt.Fprintln(c.Out, f.String())
	return nil
}

func cmdColonies(c *Console, _ context.Context, _ []string) error {
	ids := c.Sim.Colonies.IDs()
	if len(ids) == 0 {
		fmt.Fprintln(c.Out, "No colonies.")
		return nil
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatUint(uint64(id), 10)
	}
	fmt.Fprintf(c.Out, "Colonies: %s\n", strings.Join(parts, " "))
	return nil
}

func cmdEvents(c *Console, _ context.Context, args []string) error {
	limit := 10
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return fail(ErrUsage, err, "usage: events [count]")
		}
		limit = n
	}

	events := c.Sim.Events
	if c.Log != nil {
		var err error
		events, err = c.Log.RecentEvents(limit)
		if err != nil {
			return fail(ErrRejected, err, "Event journal unavailable.")
		}
	}
	if len(events) > limit {
		events = events[len(events)-limit:]
	}
	if len(events) == 0 {
		fmt.Fprintln(c.Out, "No events.")
		return nil
	}
	for _, e := range events {
		fmt.Fprintf(c.Out, "[tick %d] %s: %s\n", e.Tick, e.Category, e.Description)
	}
	return nil
}

func cmdHelp(c *Console, _ context.Context, _ []string) error {
	fmt.Fprintln(c.Out, helpText)
	return nil
}
