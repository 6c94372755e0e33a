// Ant spawning — maps caste names to new ants with sequential IDs.
package ants

// Spawner creates ants for the simulation.
type Spawner struct {
	nextID AntID
}

// NewSpawner creates a spawner whose first ant gets ID 1.
func NewSpawner() *Spawner {
	return &Spawner{nextID: 1}
}

// Create returns a new ant of the named caste, or false if the name is not
// a known caste. No ID is consumed on failure.
func (s *Spawner) Create(kindName string, traits ...Trait) (*Ant, bool) {
	kind, ok := ParseKind(kindName)
	if !ok {
		return nil, false
	}
	return s.Spawn(kind, traits...), true
}

// Spawn returns a new ant of the given caste.
func (s *Spawner) Spawn(kind Kind, traits ...Trait) *Ant {
	id := s.nextID
	s.nextID++
	return &Ant{ID: id, Kind: kind, Traits: traits}
}

// Issued returns how many ants have been created.
func (s *Spawner) Issued() int {
	return int(s.nextID - 1)
}
