package world

import (
	"testing"
	"time"

	"github.com/pthm-cable/grit/particle"
)

func burnableType() *particle.Type {
	return &particle.Type{
		Name:        "Wood",
		Density:     8,
		MaxVelocity: 1,
		Material:    &particle.Material{Kind: particle.Solid},
		Colors:      []particle.Color{{R: 0x6b, G: 0x4a, B: 0x2e, A: 0xff}},
		Burns: &particle.Burns{
			Duration:             5 * time.Second,
			TickRate:             200 * time.Millisecond,
			ChanceDestroyPerTick: 0.05,
			Reaction:             &particle.Reaction{Produces: "Smoke", ChanceToProduce: 0.3},
			Colors:               []particle.Color{{R: 0xe8, G: 0x56, B: 0x1e, A: 0xff}},
			Spreads:              &particle.Fire{BurnRadius: 2, ChanceToSpread: 0.35},
		},
	}
}

func fireType() *particle.Type {
	return &particle.Type{
		Name:        "FIRE",
		Density:     1,
		MaxVelocity: 1,
		Material:    &particle.Material{Kind: particle.Gas, Fluidity: 1},
		Fire:        &particle.Fire{BurnRadius: 1.5, ChanceToSpread: 0.7},
		Burning:     &particle.BurnSchedule{Duration: time.Second, TickRate: 100 * time.Millisecond},
	}
}

func TestIgnite(t *testing.T) {
	in := NewInstance(burnableType(), Cell{}, particle.Color{})

	if !in.Combustible() {
		t.Fatal("unignited burnable instance should be combustible")
	}
	if in.Emitter() != nil {
		t.Error("unignited instance should not emit fire")
	}

	if !in.Ignite() {
		t.Fatal("Ignite returned false")
	}
	if in.State != Burning || in.Burn == nil {
		t.Fatal("instance not burning after Ignite")
	}
	if in.Burn.Duration != 5*time.Second || in.Burn.TickRate != 200*time.Millisecond {
		t.Errorf("burn timers = %v/%v", in.Burn.Duration, in.Burn.TickRate)
	}
	if in.Burn.Consume {
		t.Error("burns-driven ignition must extinguish, not consume")
	}
	if in.Burn.Reaction == nil || in.Burn.Reaction.Produces != "Smoke" {
		t.Errorf("burn reaction = %+v", in.Burn.Reaction)
	}

	// While burning, the spread override makes it an emitter.
	if f := in.Emitter(); f == nil || f.BurnRadius != 2 {
		t.Errorf("burning emitter = %+v", f)
	}
	if in.Combustible() {
		t.Error("burning instance reported combustible")
	}

	// Re-igniting is a no-op.
	if in.Ignite() {
		t.Error("second Ignite returned true")
	}
}

func TestIgniteNonCombustible(t *testing.T) {
	plain := &particle.Type{Name: "Sand", Material: &particle.Material{Kind: particle.MovableSolid}}
	in := NewInstance(plain, Cell{}, particle.Color{})

	if in.Combustible() {
		t.Error("type without burns reported combustible")
	}
	if in.Ignite() {
		t.Error("Ignite succeeded without burn parameters")
	}
}

func TestIgniteSelf(t *testing.T) {
	in := NewInstance(fireType(), Cell{}, particle.Color{})

	if !in.IgniteSelf() {
		t.Fatal("IgniteSelf returned false")
	}
	if in.State != Burning || in.Burn == nil || !in.Burn.Consume {
		t.Fatalf("self-ignited burn = %+v", in.Burn)
	}
	// The type's own fire wins over the burn override.
	if f := in.Emitter(); f == nil || f.ChanceToSpread != 0.7 {
		t.Errorf("emitter = %+v", f)
	}
}

func TestExtinguish(t *testing.T) {
	in := NewInstance(burnableType(), Cell{}, particle.Color{})
	in.Ignite()

	in.Extinguish()
	if in.State != Unignited || in.Burn != nil {
		t.Errorf("after Extinguish: state=%v burn=%v", in.State, in.Burn)
	}
	if !in.Combustible() {
		t.Error("extinguished instance should be ignitable again")
	}
}
