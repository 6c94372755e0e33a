// Package colony provides the colony registry: species, resources,
// cumulative statistics, and kill history for every spawned colony.
package colony

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
)

// ID is a unique colony identifier. IDs are issued densely from 1.
type ID uint64

// Resource names that also feed the statistics block.
const (
	ResourceWorker  = "worker"
	ResourceWarrior = "warrior"
)

// StatusAlive is the only status a colony can have; nothing marks one dead.
const StatusAlive = "Alive"

var (
	// ErrNotFound is returned when a referenced colony id does not exist.
	ErrNotFound = errors.New("colony does not exist")
	// ErrInvalidPair is returned when either side of a two-colony operation is unknown.
	ErrInvalidPair = errors.New("invalid colony ID for kill operation")
)

// Stats holds the cumulative counters for one colony.
type Stats struct {
	Workers     int `json:"workers"`
	Warriors    int `json:"warriors"`
	AntKills    int `json:"ant_kills"`
	ColonyKills int `json:"colony_kills"`
	TicksAlive  int `json:"ticks_alive"`
}

// Colony is a named, persistent simulation entity.
type Colony struct {
	ID      ID     `json:"id"`
	Species string `json:"species"`

	Resources map[string]int `json:"resources"` // Grows lazily as new kinds are given
	Stats     Stats          `json:"stats"`

	// Victim colony ID → victim species at the time of the kill.
	Kills map[ID]string `json:"kills"`
}

func newColony(id ID, species string) *Colony {
	return &Colony{
		ID:        id,
		Species:   species,
		Resources: make(map[string]int),
		Kills:     make(map[ID]string),
	}
}

// Kill is one kill-history entry.
type Kill struct {
	VictimID      ID     `json:"victim_id"`
	VictimSpecies string `json:"victim_species"`
}

// Summary is a read-only snapshot of a colony.
type Summary struct {
	ID      ID     `json:"id"`
	Species string `json:"species"`
	Stats   Stats  `json:"stats"`
	Kills   []Kill `json:"kills"` // Ascending victim ID
	Status  string `json:"status"`
}

func (c *Colony) summary() Summary {
	kills := make([]Kill, 0, len(c.Kills))
	for victim, species := range c.Kills {
		kills = append(kills, Kill{VictimID: victim, VictimSpecies: species})
	}
	sort.Slice(kills, func(i, j int) bool { return kills[i].VictimID < kills[j].VictimID })

	return Summary{
		ID:      c.ID,
		Species: c.Species,
		Stats:   c.Stats,
		Kills:   kills,
		Status:  StatusAlive,
	}
}

// String renders the summary as the multi-line colony report.
func (s Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Colony ID: %d\n", s.ID)
	fmt.Fprintf(&b, "Species: %s\n", s.Species)
	fmt.Fprintf(&b, "Workers: %s\n", humanize.Comma(int64(s.Stats.Workers)))
	fmt.Fprintf(&b, "Warriors: %s\n", humanize.Comma(int64(s.Stats.Warriors)))
	fmt.Fprintf(&b, "Ant Kills: %s\n", humanize.Comma(int64(s.Stats.AntKills)))
	fmt.Fprintf(&b, "Colony Kills: %s (", humanize.Comma(int64(s.Stats.ColonyKills)))
	for i, k := range s.Kills {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%d:%s", k.VictimID, k.VictimSpecies)
	}
	b.WriteString(")\n")
	fmt.Fprintf(&b, "Ticks alive: %s\n", humanize.Comma(int64(s.Stats.TicksAlive)))
	fmt.Fprintf(&b, "Status: %s\n", s.Status)
	return b.String()
}
