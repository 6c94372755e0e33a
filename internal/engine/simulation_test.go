package engine

import (
	"bytes"
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/talgya/meadow/internal/ants"
	"github.com/talgya/meadow/internal/colony"
	"github.com/talgya/meadow/internal/farm"
	"github.com/talgya/meadow/internal/meadow"
)

type recordingSink struct {
	events []Event
	err    error
}

func (r *recordingSink) Record(e Event) error {
	r.events = append(r.events, e)
	return r.err
}

func newTestSimulation(t *testing.T) (*Simulation, *Engine, *bytes.Buffer) {
	t.Helper()
	sim := NewSimulation(colony.New(), NewMediator(rand.New(rand.NewSource(1))), ants.NewSpawner())
	eng := NewEngine()
	var out bytes.Buffer
	sim.Attach(eng, &out)
	return sim, eng, &out
}

func TestSpawnAddsQueen(t *testing.T) {
	sim, _, _ := newTestSimulation(t)

	id, msg := sim.Spawn(3, 4, "Fire")
	if id != 1 {
		t.Fatalf("id = %d, want 1", id)
	}
	if want := "Colony 1 of species Fire spawned at (3, 4)."; msg != want {
		t.Fatalf("msg = %q, want %q", msg, want)
	}
	members := sim.Mediator.Members()
	if len(members) != 1 || members[0].Kind != ants.KindQueen {
		t.Fatalf("members = %v, want one queen", members)
	}
}

func TestSpawnNamesGround(t *testing.T) {
	sim, _, _ := newTestSimulation(t)
	sim.Ground = meadow.NewGround(11)

	_, msg := sim.Spawn(-2, 9, "Army")
	want := "Colony 1 of species Army spawned at (-2, 9) on " + sim.Ground.At(-2, 9).String() + "."
	if msg != want {
		t.Fatalf("msg = %q, want %q", msg, want)
	}
}

func TestTickAgesColoniesThenActs(t *testing.T) {
	sim, eng, out := newTestSimulation(t)
	sim.Spawn(0, 0, "Fire")
	sim.Spawn(1, 1, "Water")
	sim.Hatch("Drone", 2)

	if ran := eng.Advance(context.Background(), 3); ran != 3 {
		t.Fatalf("ran = %d, want 3", ran)
	}

	for _, id := range []colony.ID{1, 2} {
		s, err := sim.Summary(id)
		if err != nil {
			t.Fatalf("Summary(%d): %v", id, err)
		}
		if s.Stats.TicksAlive != 3 {
			t.Errorf("colony %d ticksAlive = %d, want 3", id, s.Stats.TicksAlive)
		}
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 4*3 {
		t.Fatalf("%d action lines, want 12:\n%s", len(lines), out.String())
	}
	if sim.CurrentTick() != 3 || eng.Tick != 3 {
		t.Fatalf("tick = %d/%d, want 3", sim.CurrentTick(), eng.Tick)
	}
}

func TestColonySpawnedLaterAgesFromThen(t *testing.T) {
	sim, eng, _ := newTestSimulation(t)
	sim.Spawn(0, 0, "Fire")
	eng.Advance(context.Background(), 2)
	sim.Spawn(0, 0, "Water")
	eng.Advance(context.Background(), 1)

	first, _ := sim.Summary(1)
	second, _ := sim.Summary(2)
	if first.Stats.TicksAlive != 3 || second.Stats.TicksAlive != 1 {
		t.Fatalf("ticksAlive = %d/%d, want 3/1", first.Stats.TicksAlive, second.Stats.TicksAlive)
	}
}

func TestAdvanceCapsAndCancels(t *testing.T) {
	sim, eng, _ := newTestSimulation(t)
	sim.Spawn(0, 0, "Fire")
	eng.MaxTicks = 5

	if ran := eng.Advance(context.Background(), 50); ran != 5 {
		t.Fatalf("capped run = %d, want 5", ran)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if ran := eng.Advance(ctx, 3); ran != 0 {
		t.Fatalf("cancelled run = %d, want 0", ran)
	}
	s, _ := sim.Summary(1)
	if s.Stats.TicksAlive != 5 {
		t.Fatalf("ticksAlive = %d, want 5", s.Stats.TicksAlive)
	}
}

func TestReportFiresOnPeriod(t *testing.T) {
	_, eng, _ := newTestSimulation(t)
	eng.ReportEvery = 4
	var reports []uint64
	eng.OnReport = func(tick uint64) { reports = append(reports, tick) }

	eng.Advance(context.Background(), 10)
	if len(reports) != 2 || reports[0] != 4 || reports[1] != 8 {
		t.Fatalf("reports at %v, want [4 8]", reports)
	}
}

func TestAdvanceRecordsOneTickEvent(t *testing.T) {
	sim, eng, _ := newTestSimulation(t)
	sink := &recordingSink{}
	sim.Sink = sink
	eng.ReportEvery = 2

	eng.Advance(context.Background(), 5)
	eng.Advance(context.Background(), 1)
	eng.Advance(context.Background(), 0)

	var ticks []Event
	for _, e := range sink.events {
		if e.Category == "tick" {
			ticks = append(ticks, e)
		}
	}
	if len(ticks) != 2 {
		t.Fatalf("tick events = %v, want one per batch", ticks)
	}
	if ticks[0].Tick != 5 || ticks[0].Description != "Ran 5 ticks (now at tick 5)." {
		t.Errorf("first batch = %+v", ticks[0])
	}
	if ticks[1].Tick != 6 || ticks[1].Description != "Ran 1 tick (now at tick 6)." {
		t.Errorf("second batch = %+v", ticks[1])
	}
}

func TestNewSimulationKeepsActHook(t *testing.T) {
	med := NewMediator(rand.New(rand.NewSource(1)))
	var acted []string
	med.OnAct = func(_ *ants.Ant, desc string) { acted = append(acted, desc) }

	sim := NewSimulation(colony.New(), med, ants.NewSpawner())
	sim.Spawn(0, 0, "Fire")
	med.Step()

	if len(acted) != 1 || acted[0] != "Queen is spawning eggs." {
		t.Fatalf("caller hook saw %v", acted)
	}
}

func TestHatch(t *testing.T) {
	sim, _, _ := newTestSimulation(t)

	hatched, err := sim.Hatch("Warrior", 3, ants.Speed)
	if err != nil {
		t.Fatalf("Hatch: %v", err)
	}
	if len(hatched) != 3 || sim.Mediator.Len() != 3 {
		t.Fatalf("hatched %d, mediator has %d, want 3", len(hatched), sim.Mediator.Len())
	}
	if !strings.Contains(hatched[0].Describe(), "Faster speed") {
		t.Fatalf("trait not applied: %q", hatched[0].Describe())
	}

	if _, err := sim.Hatch("Larva", 1); !errors.Is(err, ErrUnknownCaste) {
		t.Fatalf("err = %v, want ErrUnknownCaste", err)
	}
	if sim.Mediator.Len() != 3 {
		t.Fatal("failed hatch added ants")
	}
}

func TestFailedOperationsRecordNothing(t *testing.T) {
	sim, _, _ := newTestSimulation(t)
	sink := &recordingSink{}
	sim.Sink = sink
	sim.Spawn(0, 0, "Fire")

	if _, err := sim.Give(9, "food", 1); !errors.Is(err, colony.ErrNotFound) {
		t.Fatalf("Give err = %v", err)
	}
	if _, err := sim.RecordAntKill(9); !errors.Is(err, colony.ErrNotFound) {
		t.Fatalf("RecordAntKill err = %v", err)
	}
	if _, err := sim.RecordKill(1, 9, "X"); !errors.Is(err, colony.ErrInvalidPair) {
		t.Fatalf("RecordKill err = %v", err)
	}
	if len(sink.events) != 1 || len(sim.Events) != 1 {
		t.Fatalf("events = %d/%d, want only the spawn", len(sink.events), len(sim.Events))
	}
}

func TestSinkErrorDoesNotFailOperation(t *testing.T) {
	sim, _, _ := newTestSimulation(t)
	sim.Sink = &recordingSink{err: errors.New("disk full")}
	sim.Spawn(0, 0, "Fire")

	msg, err := sim.Give(1, "food", 5)
	if err != nil {
		t.Fatalf("Give: %v", err)
	}
	if msg != "Gave 5 of food to colony 1." {
		t.Fatalf("msg = %q", msg)
	}
}

func TestBuildFarm(t *testing.T) {
	sim, _, _ := newTestSimulation(t)

	if _, err := sim.BuildFarm(farm.Config{Rooms: -1}); !errors.Is(err, farm.ErrInvalid) {
		t.Fatalf("err = %v, want farm.ErrInvalid", err)
	}
	if sim.Farm != nil {
		t.Fatal("invalid farm was kept")
	}

	f, err := sim.BuildFarm(farm.Config{Rooms: 2, RestingCapacity: 8})
	if err != nil {
		t.Fatalf("BuildFarm: %v", err)
	}
	if sim.Farm == nil || *sim.Farm != f {
		t.Fatal("farm not stored")
	}
}

func TestEventBufferIsBounded(t *testing.T) {
	sim, _, _ := newTestSimulation(t)
	sim.Spawn(0, 0, "Fire")
	for i := 0; i < maxEvents+50; i++ {
		sim.Give(1, "food", 1)
	}
	if len(sim.Events) != maxEvents {
		t.Fatalf("len(Events) = %d, want %d", len(sim.Events), maxEvents)
	}
}
