package ants

import (
	"testing"
)

func TestCreateMapsCasteNames(t *testing.T) {
	tests := []struct {
		name   string
		ok     bool
		kind   Kind
		action string
	}{
		{"Drone", true, KindDrone, "Drone is foraging for food."},
		{"Warrior", true, KindWarrior, "Warrior is battling enemies."},
		{"Queen", true, KindQueen, "Queen is spawning eggs."},
		{"queen", false, 0, ""},
		{"Soldier", false, 0, ""},
		{"", false, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSpawner()
			a, ok := s.Create(tt.name)
			if ok != tt.ok {
				t.Fatalf("Create(%q) ok = %v, want %v", tt.name, ok, tt.ok)
			}
			if !ok {
				if a != nil || s.Issued() != 0 {
					t.Fatalf("failed Create returned %v, issued %d", a, s.Issued())
				}
				return
			}
			if a.Kind != tt.kind || a.Kind.String() != tt.name {
				t.Errorf("kind = %v, want %v", a.Kind, tt.kind)
			}
			if got := a.Act(); got != tt.action {
				t.Errorf("Act() = %q, want %q", got, tt.action)
			}
		})
	}
}

func TestSpawnerIssuesSequentialIDs(t *testing.T) {
	s := NewSpawner()
	for want := AntID(1); want <= 5; want++ {
		a := s.Spawn(KindDrone)
		if a.ID != want {
			t.Fatalf("ID = %d, want %d", a.ID, want)
		}
	}
	if s.Issued() != 5 {
		t.Fatalf("Issued() = %d, want 5", s.Issued())
	}
}

func TestDescribeAppliesTraitsInOrder(t *testing.T) {
	tests := []struct {
		name   string
		traits []Trait
		want   string
	}{
		{"none", nil, "Basic ant attributes."},
		{"speed", []Trait{Speed}, "Basic ant attributes.\nFaster speed attribute added."},
		{"speed-strength", []Trait{Speed, Strength},
			"Basic ant attributes.\nFaster speed attribute added.\nIncreased strength attribute added."},
		{"strength-speed", []Trait{Strength, Speed},
			"Basic ant attributes.\nIncreased strength attribute added.\nFaster speed attribute added."},
		{"doubled", []Trait{Speed, Speed},
			"Basic ant attributes.\nFaster speed attribute added.\nFaster speed attribute added."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Describe(BaseAttributes, tt.traits...); got != tt.want {
				t.Errorf("Describe() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAntDescribeUsesOwnTraits(t *testing.T) {
	s := NewSpawner()
	a, ok := s.Create("Warrior", Strength)
	if !ok {
		t.Fatal("Create(Warrior) failed")
	}
	want := "Basic ant attributes.\nIncreased strength attribute added."
	if got := a.Describe(); got != want {
		t.Fatalf("Describe() = %q, want %q", got, want)
	}
}

func TestParseTrait(t *testing.T) {
	if _, ok := ParseTrait("speed"); !ok {
		t.Error("speed not recognized")
	}
	if _, ok := ParseTrait("strength"); !ok {
		t.Error("strength not recognized")
	}
	if tr, ok := ParseTrait("wings"); ok || tr != nil {
		t.Error("unknown trait recognized")
	}
}
