// Package ants provides the ant member model: the closed set of castes,
// the spawner that creates them, and attribute traits.
package ants

// AntID is a unique identifier for an ant.
type AntID uint64

// Kind is the caste of an ant. The set is closed.
type Kind uint8

const (
	KindDrone   Kind = iota // Forages
	KindWarrior             // Fights
	KindQueen               // Lays eggs; one per spawned colony
)

var kindNames = [...]string{
	KindDrone:   "Drone",
	KindWarrior: "Warrior",
	KindQueen:   "Queen",
}

// String returns the caste name as used on the command line.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// ParseKind maps a caste name to its Kind. Names are case-sensitive.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return 0, false
}

// Ant is one active member of the meadow. Ants carry no colony link.
type Ant struct {
	ID     AntID   `json:"id"`
	Kind   Kind    `json:"kind"`
	Traits []Trait `json:"-"`
}

// Act performs the ant's action for this tick and returns its description.
func (a *Ant) Act() string {
	switch a.Kind {
	case KindDrone:
		return "Drone is foraging for food."
	case KindWarrior:
		return "Warrior is battling enemies."
	case KindQueen:
		return "Queen is spawning eggs."
	default:
		return "Ant is idle."
	}
}

// Describe returns the ant's attribute description with its traits applied.
func (a *Ant) Describe() string {
	return Describe(BaseAttributes, a.Traits...)
}
