package particle

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaultDefs(t *testing.T) {
	reg := NewRegistry()
	if err := LoadDefaultDefs(reg); err != nil {
		t.Fatalf("LoadDefaultDefs: %v", err)
	}
	if reg.Len() == 0 {
		t.Fatal("default defs registered no types")
	}

	sand, err := reg.Lookup("Sand")
	if err != nil {
		t.Fatalf("Lookup(Sand): %v", err)
	}
	if sand.Material == nil || sand.Material.Kind != MovableSolid {
		t.Errorf("Sand material = %v, want movable solid", sand.Material)
	}
	if !sand.Movable() {
		t.Error("Sand should be movable")
	}

	wall, err := reg.Lookup("Wall")
	if err != nil {
		t.Fatalf("Lookup(Wall): %v", err)
	}
	if wall.Movable() {
		t.Error("Wall should not be movable")
	}
}

func TestLoadDefsFull(t *testing.T) {
	doc := `
Ember:
  density: 450
  max_velocity: 3
  momentum: true
  movable_solid: true
  colors:
    - "#ff4800"
    - [1.0, 0.6, 0.1, 1.0]
  changes_colors: 0.1
  fire:
    burn_radius: 1.5
    chance_to_spread: 0.25
    destroys_on_ignition: true
  burning:
    duration: 2000
    tick_rate: 100
  burns:
    duration: 1000
    tick_rate: 50
    chance_destroy_per_tick: 0.05
    reaction:
      produces: Smoke
      chance_to_produce: 0.3
    colors:
      - "#ff000080"
    spreads:
      burn_radius: 2
      chance_to_spread: 0.5
`
	reg := NewRegistry()
	if err := LoadDefs(reg, []byte(doc)); err != nil {
		t.Fatalf("LoadDefs: %v", err)
	}

	e, err := reg.Lookup("Ember")
	if err != nil {
		t.Fatalf("Lookup(Ember): %v", err)
	}
	if e.Density != 450 || e.MaxVelocity != 3 || !e.Momentum {
		t.Errorf("core fields = %d/%d/%v, want 450/3/true", e.Density, e.MaxVelocity, e.Momentum)
	}
	if e.Material == nil || e.Material.Kind != MovableSolid {
		t.Errorf("material = %v, want movable solid", e.Material)
	}
	if len(e.Colors) != 2 {
		t.Fatalf("colors = %d entries, want 2", len(e.Colors))
	}
	if e.Colors[0] != (Color{0xff, 0x48, 0x00, 0xff}) {
		t.Errorf("hex color = %v", e.Colors[0])
	}
	if e.Colors[1] != (Color{255, 153, 26, 255}) {
		t.Errorf("tuple color = %v", e.Colors[1])
	}
	if e.ChangesColors == nil || *e.ChangesColors != 0.1 {
		t.Errorf("changes_colors = %v, want 0.1", e.ChangesColors)
	}
	if e.Fire == nil || e.Fire.BurnRadius != 1.5 || !e.Fire.DestroysOnIgnition {
		t.Errorf("fire = %+v", e.Fire)
	}
	if e.Burning == nil || e.Burning.Duration != 2*time.Second || e.Burning.TickRate != 100*time.Millisecond {
		t.Errorf("burning = %+v", e.Burning)
	}
	b := e.Burns
	if b == nil {
		t.Fatal("burns missing")
	}
	if b.Duration != time.Second || b.TickRate != 50*time.Millisecond || b.ChanceDestroyPerTick != 0.05 {
		t.Errorf("burns schedule = %+v", b)
	}
	if b.Reaction == nil || b.Reaction.Produces != "Smoke" || b.Reaction.ChanceToProduce != 0.3 {
		t.Errorf("burns reaction = %+v", b.Reaction)
	}
	if len(b.Colors) != 1 || b.Colors[0] != (Color{0xff, 0, 0, 0x80}) {
		t.Errorf("burn palette = %v", b.Colors)
	}
	if b.Spreads == nil || b.Spreads.BurnRadius != 2 {
		t.Errorf("burns spreads = %+v", b.Spreads)
	}
}

func TestLoadDefsRejectsConflictingMaterials(t *testing.T) {
	doc := `
Sludge:
  density: 10
  solid: true
  liquid: 3
`
	reg := NewRegistry()
	err := LoadDefs(reg, []byte(doc))
	if err == nil {
		t.Fatal("LoadDefs accepted two material declarations")
	}
	if !strings.Contains(err.Error(), "conflicting material") {
		t.Errorf("error = %v, want conflicting material declarations", err)
	}
	if reg.Len() != 0 {
		t.Errorf("registry has %d types after failed load, want 0", reg.Len())
	}
}

func TestLoadDefsRejectsSchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown field", "Sand:\n  densty: 10\n"},
		{"bad color", "Sand:\n  colors: [\"#xyz\"]\n"},
		{"probability above one", "Sand:\n  changes_colors: 1.5\n"},
		{"fire missing chance", "Sand:\n  fire:\n    burn_radius: 1\n"},
		{"zero burn tick rate", "Sand:\n  burns:\n    duration: 100\n    tick_rate: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := NewRegistry()
			err := LoadDefs(reg, []byte(tt.doc))
			if err == nil {
				t.Fatalf("LoadDefs accepted %q", tt.doc)
			}
			if !strings.Contains(err.Error(), "validating particle definitions") {
				t.Errorf("error = %v, want schema validation failure", err)
			}
		})
	}
}

func TestLoadDefsClampsVelocity(t *testing.T) {
	doc := `
Pellet:
  density: 10
  max_velocity: 200
  movable_solid: true
`
	reg := NewRegistry()
	if err := LoadDefs(reg, []byte(doc)); err != nil {
		t.Fatalf("LoadDefs: %v", err)
	}
	p, _ := reg.Lookup("Pellet")
	if p.MaxVelocity != MaxVelocity {
		t.Errorf("MaxVelocity = %d, want clamp to %d", p.MaxVelocity, MaxVelocity)
	}
}

func TestMarshalDefsRoundTrip(t *testing.T) {
	reg := NewRegistry()
	if err := LoadDefaultDefs(reg); err != nil {
		t.Fatalf("LoadDefaultDefs: %v", err)
	}

	out, err := MarshalDefs(reg)
	if err != nil {
		t.Fatalf("MarshalDefs: %v", err)
	}

	reloaded := NewRegistry()
	if err := LoadDefs(reloaded, out); err != nil {
		t.Fatalf("reloading marshaled defs: %v", err)
	}

	names := reg.Names()
	reNames := reloaded.Names()
	if len(names) != len(reNames) {
		t.Fatalf("reloaded %d types, want %d", len(reNames), len(names))
	}
	for i := range names {
		if names[i] != reNames[i] {
			t.Fatalf("name order diverged at %d: %q vs %q", i, names[i], reNames[i])
		}
	}

	// Spot-check that a full type survives the trip.
	orig, _ := reg.Lookup("Wood")
	back, _ := reloaded.Lookup("Wood")
	if orig.Density != back.Density || orig.MaxVelocity != back.MaxVelocity {
		t.Errorf("Wood core fields diverged: %+v vs %+v", orig, back)
	}
	if (orig.Burns == nil) != (back.Burns == nil) {
		t.Fatalf("Wood burns presence diverged")
	}
	if orig.Burns != nil && orig.Burns.Duration != back.Burns.Duration {
		t.Errorf("Wood burn duration diverged: %v vs %v", orig.Burns.Duration, back.Burns.Duration)
	}
}
