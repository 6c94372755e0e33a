// Mediator — runs one tick of ant actions without ants referencing each other.
package engine

import (
	"math/rand"

	"github.com/talgya/meadow/internal/ants"
)

// Mediator owns the flat set of active ants, independent of which colony
// spawned them.
type Mediator struct {
	members  []*ants.Ant
	pending  []*ants.Ant // Adds made while a step is running
	stepping bool
	rng      *rand.Rand

	// OnAct, if set, is called after each ant acts.
	OnAct func(a *ants.Ant, desc string)
}

// NewMediator creates a mediator shuffling with rng.
func NewMediator(rng *rand.Rand) *Mediator {
	return &Mediator{rng: rng}
}

// Add puts an ant into the active set. Ants added during a step join after
// the step finishes and do not act in it.
func (m *Mediator) Add(a *ants.Ant) {
	if m.stepping {
		m.pending = append(m.pending, a)
		return
	}
	m.members = append(m.members, a)
}

// Len returns the number of active ants.
func (m *Mediator) Len() int {
	return len(m.members) + len(m.pending)
}

// Members returns a copy of the active set in its current order.
func (m *Mediator) Members() []*ants.Ant {
	out := make([]*ants.Ant, 0, m.Len())
	out = append(out, m.members...)
	return append(out, m.pending...)
}

// Step shuffles the active set and lets every ant act exactly once, in the
// shuffled order. Returns the action descriptions in that order.
func (m *Mediator) Step() []string {
	m.stepping = true
	defer m.finishStep()

	m.rng.Shuffle(len(m.members), func(i, j int) {
		m.members[i], m.members[j] = m.members[j], m.members[i]
	})

	snapshot := m.members
	descs := make([]string, 0, len(snapshot))
	for _, a := range snapshot {
		desc := a.Act()
		descs = append(descs, desc)
		if m.OnAct != nil {
			m.OnAct(a, desc)
		}
	}
	return descs
}

func (m *Mediator) finishStep() {
	m.stepping = false
	m.members = append(m.members, m.pending...)
	m.pending = nil
}
