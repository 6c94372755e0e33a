// Package farm describes ant farm structures. A Farm is immutable once built.
package farm

import (
	"errors"
	"fmt"
)

// ErrInvalid is returned for a farm with negative dimensions.
var ErrInvalid = errors.New("invalid ant farm")

// Config holds the farm layout.
type Config struct {
	Rooms           int `yaml:"rooms"`
	RestingCapacity int `yaml:"resting_capacity"`
}

// Farm is a built ant farm.
type Farm struct {
	rooms           int
	restingCapacity int
}

// New builds a farm from cfg.
func New(cfg Config) (Farm, error) {
	if cfg.Rooms < 0 || cfg.RestingCapacity < 0 {
		return Farm{}, fmt.Errorf("%w: rooms=%d resting_capacity=%d", ErrInvalid, cfg.Rooms, cfg.RestingCapacity)
	}
	return Farm{rooms: cfg.Rooms, restingCapacity: cfg.RestingCapacity}, nil
}

func (f Farm) Rooms() int           { return f.rooms }
func (f Farm) RestingCapacity() int { return f.restingCapacity }

func (f Farm) String() string {
	return fmt.Sprintf("AntFarm with %d rooms and resting capacity %d.", f.rooms, f.restingCapacity)
}
