// Simulation ties the colony registry and the ant mediator together.
package engine

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/dustin/go-humanize"

	"github.com/talgya/meadow/internal/ants"
	"github.com/talgya/meadow/internal/colony"
	"github.com/talgya/meadow/internal/farm"
	"github.com/talgya/meadow/internal/meadow"
)

// maxEvents bounds the in-memory event buffer.
const maxEvents = 1000

// ErrUnknownCaste is returned when hatching an ant of a caste that does not exist.
var ErrUnknownCaste = errors.New("unknown ant caste")

// Event is a notable occurrence in the meadow.
type Event struct {
	Tick        uint64 `json:"tick" db:"tick"`
	Description string `json:"description" db:"description"`
	Category    string `json:"category" db:"category"` // "colony", "combat", "resource", "ant", "tick", "farm"
}

// EventSink receives every recorded event.
type EventSink interface {
	Record(e Event) error
}

// Simulation holds the complete meadow state. It is owned by one goroutine.
type Simulation struct {
	Colonies *colony.Registry
	Mediator *Mediator
	Spawner  *ants.Spawner
	Ground   *meadow.Ground // Optional; spawn messages name the ground when set
	Farm     *farm.Farm     // Most recently built farm, if any
	Sink     EventSink      // Optional

	Events   []Event // Recent events, trimmed to maxEvents
	LastTick uint64
}

// NewSimulation creates a Simulation from its components.
func NewSimulation(reg *colony.Registry, med *Mediator, sp *ants.Spawner) *Simulation {
	sim := &Simulation{
		Colonies: reg,
		Mediator: med,
		Spawner:  sp,
	}
	prev := med.OnAct
	med.OnAct = func(a *ants.Ant, desc string) {
		slog.Debug("ant acted", "ant", a.ID, "kind", a.Kind, "action", desc)
		if prev != nil {
			prev(a, desc)
		}
	}
	return sim
}

// CurrentTick returns the most recently processed tick number.
func (s *Simulation) CurrentTick() uint64 {
	return s.LastTick
}

// Spawn founds a colony with its queen and returns the confirmation line.
// The coordinates appear only in the returned message.
func (s *Simulation) Spawn(x, y int, species string) (colony.ID, string) {
	id := s.Colonies.Spawn(x, y, species)
	queen := s.Spawner.Spawn(ants.KindQueen)
	s.Mediator.Add(queen)

	msg := fmt.Sprintf("Colony %d of species %s spawned at (%d, %d)", id, species, x, y)
	if s.Ground != nil {
		msg += " on " + s.Ground.At(x, y).String()
	}
	msg += "."

	slog.Info("colony spawned", "colony", id, "species", species, "x", x, "y", y, "queen", queen.ID)
	s.record("colony", msg)
	return id, msg
}

// Give adds resources to a colony.
func (s *Simulation) Give(id colony.ID, resource string, amount int) (string, error) {
	if err := s.Colonies.GiveResources(id, resource, amount); err != nil {
		return "", err
	}
	msg := fmt.Sprintf("Gave %d of %s to colony %d.", amount, resource, id)
	s.record("resource", msg)
	return msg, nil
}

// RecordAntKill credits a colony with one ant or creature kill.
func (s *Simulation) RecordAntKill(id colony.ID) (string, error) {
	if err := s.Colonies.RecordAntKill(id); err != nil {
		return "", err
	}
	msg := fmt.Sprintf("Colony %d killed an ant.", id)
	s.record("combat", msg)
	return msg, nil
}

// RecordKill credits killer with destroying killed.
func (s *Simulation) RecordKill(killer, killed colony.ID, killedSpecies string) (string, error) {
	if err := s.Colonies.RecordKill(killer, killed, killedSpecies); err != nil {
		return "", err
	}
	msg := fmt.Sprintf("Colony %d killed colony %d.", killer, killed)
	slog.Info("colony kill", "killer", killer, "killed", killed, "species", killedSpecies)
	s.record("combat", msg)
	return msg, nil
}

// Summary returns a colony snapshot.
func (s *Simulation) Summary(id colony.ID) (colony.Summary, error) {
	return s.Colonies.Summary(id)
}

// Hatch creates count ants of the named caste and adds them to the mediator.
func (s *Simulation) Hatch(kindName string, count int, traits ...ants.Trait) ([]*ants.Ant, error) {
	kind, ok := ants.ParseKind(kindName)
	if !ok {
		return nil, fmt.Errorf("hatch %q: %w", kindName, ErrUnknownCaste)
	}
	count = max(count, 0)
	hatched := make([]*ants.Ant, 0, count)
	for i := 0; i < count; i++ {
		a := s.Spawner.Spawn(kind, traits...)
		s.Mediator.Add(a)
		hatched = append(hatched, a)
	}
	if count > 0 {
		s.record("ant", fmt.Sprintf("Hatched %d %s.", count, kind))
	}
	return hatched, nil
}

// BuildFarm builds an ant farm and makes it the current one.
func (s *Simulation) BuildFarm(cfg farm.Config) (farm.Farm, error) {
	f, err := farm.New(cfg)
	if err != nil {
		return farm.Farm{}, err
	}
	s.Farm = &f
	s.record("farm", f.String())
	return f, nil
}

// TickMinute runs one tick: every colony ages (ascending ID), then every ant
// acts once through the mediator. Returns the ant action descriptions.
func (s *Simulation) TickMinute(tick uint64) []string {
	s.LastTick = tick
	for _, id := range s.Colonies.IDs() {
		s.Colonies.IncrementTick(id)
	}
	return s.Mediator.Step()
}

// Report logs aggregate meadow statistics.
func (s *Simulation) Report(tick uint64) {
	var workers, warriors, kills int
	for _, id := range s.Colonies.IDs() {
		sum, err := s.Colonies.Summary(id)
		if err != nil {
			continue
		}
		workers += sum.Stats.Workers
		warriors += sum.Stats.Warriors
		kills += sum.Stats.ColonyKills
	}
	slog.Info("meadow report",
		"tick", humanize.Comma(int64(tick)),
		"colonies", s.Colonies.Len(),
		"ants", s.Mediator.Len(),
		"workers", workers,
		"warriors", warriors,
		"colony_kills", kills,
	)
}

// RecordAdvance journals one event for a completed tick batch.
func (s *Simulation) RecordAdvance(ran int, tick uint64) {
	unit := "ticks"
	if ran == 1 {
		unit = "tick"
	}
	s.record("tick", fmt.Sprintf("Ran %d %s (now at tick %d).", ran, unit, tick))
}

// Attach wires the simulation's tick layers into eng. Ant actions are
// written to w, one per line.
func (s *Simulation) Attach(eng *Engine, w io.Writer) {
	eng.OnTick = func(tick uint64) {
		for _, desc := range s.TickMinute(tick) {
			fmt.Fprintln(w, desc)
		}
	}
	eng.OnReport = s.Report
	eng.OnAdvance = s.RecordAdvance
}

func (s *Simulation) record(category, desc string) {
	e := Event{Tick: s.LastTick, Description: desc, Category: category}
	s.Events = append(s.Events, e)
	if len(s.Events) > maxEvents {
		s.Events = s.Events[len(s.Events)-maxEvents:]
	}
	if s.Sink != nil {
		if err := s.Sink.Record(e); err != nil {
			slog.Error("event journal write failed", "category", category, "error", err)
		}
	}
}
