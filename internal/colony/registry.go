// Colony registry — owns every colony for the life of the process.
package colony

import (
	"fmt"
	"maps"
)

// Registry holds all colonies. It is not safe for concurrent use; the
// simulation owns it from a single goroutine.
type Registry struct {
	colonies map[ID]*Colony
	nextID   ID
}

// New creates an empty registry. The first spawned colony gets ID 1.
func New() *Registry {
	return &Registry{
		colonies: make(map[ID]*Colony),
		nextID:   1,
	}
}

// Len returns the number of colonies ever spawned.
func (r *Registry) Len() int {
	return len(r.colonies)
}

// Exists reports whether id refers to a spawned colony.
func (r *Registry) Exists(id ID) bool {
	_, ok := r.colonies[id]
	return ok
}

// Spawn creates a colony and returns its ID. Coordinates are not stored;
// callers echo them at creation time only.
func (r *Registry) Spawn(x, y int, species string) ID {
	id := r.nextID
	r.nextID++
	r.colonies[id] = newColony(id, species)
	return id
}

// GiveResources adds amount of the named resource to a colony. "worker" and
// "warrior" also raise the matching statistics counter. Negative amounts are
// accepted and may drive counts below zero.
func (r *Registry) GiveResources(id ID, resource string, amount int) error {
	c, ok := r.colonies[id]
	if !ok {
		return fmt.Errorf("give %s to colony %d: %w", resource, id, ErrNotFound)
	}

	c.Resources[resource] += amount
	switch resource {
	case ResourceWorker:
		c.Stats.Workers += amount
	case ResourceWarrior:
		c.Stats.Warriors += amount
	}
	return nil
}

// RecordAntKill credits a colony with killing one ant or creature.
func (r *Registry) RecordAntKill(id ID) error {
	c, ok := r.colonies[id]
	if !ok {
		return fmt.Errorf("ant kill for colony %d: %w", id, ErrNotFound)
	}
	c.Stats.AntKills++
	return nil
}

// RecordKill credits killer with destroying killed. Both colonies must exist.
// A repeated kill of the same victim overwrites the recorded species.
func (r *Registry) RecordKill(killer, killed ID, killedSpecies string) error {
	c, ok := r.colonies[killer]
	if !ok || !r.Exists(killed) {
		return fmt.Errorf("colony %d kills colony %d: %w", killer, killed, ErrInvalidPair)
	}
	c.Stats.ColonyKills++
	c.Kills[killed] = killedSpecies
	return nil
}

// IncrementTick ages a colony by one tick. Unknown IDs are ignored.
func (r *Registry) IncrementTick(id ID) {
	if c, ok := r.colonies[id]; ok {
		c.Stats.TicksAlive++
	}
}

// Summary returns a snapshot of a colony. It never creates a colony.
func (r *Registry) Summary(id ID) (Summary, error) {
	c, ok := r.colonies[id]
	if !ok {
		return Summary{}, fmt.Errorf("summary of colony %d: %w", id, ErrNotFound)
	}
	return c.summary(), nil
}

// Resources returns a copy of a colony's resource counts.
func (r *Registry) Resources(id ID) (map[string]int, error) {
	c, ok := r.colonies[id]
	if !ok {
		return nil, fmt.Errorf("resources of colony %d: %w", id, ErrNotFound)
	}
	return maps.Clone(c.Resources), nil
}

// IDs returns every colony ID in ascending order.
func (r *Registry) IDs() []ID {
	ids := make([]ID, 0, len(r.colonies))
	for id := ID(1); id < r.nextID; id++ {
		if _, ok := r.colonies[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}
