package world

import (
	"time"

	"github.com/pthm-cable/grit/particle"
)

// ReactionState is the discriminated reaction state of an instance.
// The terminal outcomes (consumed, extinguished) are transitions, not
// stored states: a consumed instance leaves the map, an extinguished one
// returns to Unignited.
type ReactionState uint8

const (
	Unignited ReactionState = iota
	Burning
)

// BurnState holds the timers and overrides of an active burn. Present
// exactly when the instance's state is Burning.
type BurnState struct {
	// Duration is the total burn length; Elapsed counts toward it.
	Duration time.Duration
	// TickRate is the roll cadence; SinceTick accumulates toward it.
	TickRate  time.Duration
	Elapsed   time.Duration
	SinceTick time.Duration

	// ChanceDestroy is rolled every burn tick.
	ChanceDestroy float64
	// Reaction, when set, replaces the instance on destruction.
	Reaction *particle.Reaction
	// Colors overrides the palette for the duration of the burn.
	Colors []particle.Color
	// Spreads makes the instance a fire emitter while burning.
	Spreads *particle.Fire
	// Consume destroys the instance when the burn runs out instead of
	// extinguishing it. Set for self-igniting types like fire itself.
	Consume bool
}

// Instance is a single particle in the world, exclusively owned by the
// chunk containing its cell.
type Instance struct {
	Type *particle.Type
	Pos  Cell

	// Velocity is the current per-tick move budget in [1, Type.MaxVelocity].
	Velocity uint8
	// Momentum is the last successful move direction, zero when none.
	// Only meaningful for types with momentum enabled.
	Momentum particle.Offset

	Color particle.Color

	State ReactionState
	Burn  *BurnState

	// Stamp is the tick the instance was last processed by movement,
	// preventing double moves when an instance crosses into a chunk that
	// has not been processed yet.
	Stamp uint64
}

// NewInstance builds an unignited instance of t. The caller picks the color
// from the type's palette.
func NewInstance(t *particle.Type, pos Cell, color particle.Color) *Instance {
	return &Instance{
		Type:     t,
		Pos:      pos,
		Velocity: 1,
		Color:    color,
		State:    Unignited,
	}
}

// Ignite transitions the instance to Burning using its type's burns
// parameters. No-op if the instance is already burning or not combustible.
func (in *Instance) Ignite() bool {
	if in.State == Burning || in.Type.Burns == nil {
		return false
	}
	b := in.Type.Burns
	in.State = Burning
	in.Burn = &BurnState{
		Duration:      b.Duration,
		TickRate:      b.TickRate,
		ChanceDestroy: b.ChanceDestroyPerTick,
		Reaction:      b.Reaction,
		Colors:        b.Colors,
		Spreads:       b.Spreads,
	}
	return true
}

// IgniteSelf starts the spawn-time burn of a self-igniting type (one that
// declares a burning schedule). The instance is consumed when the schedule
// runs out.
func (in *Instance) IgniteSelf() bool {
	if in.State == Burning || in.Type.Burning == nil {
		return false
	}
	s := in.Type.Burning
	in.State = Burning
	in.Burn = &BurnState{
		Duration: s.Duration,
		TickRate: s.TickRate,
		Consume:  true,
	}
	return true
}

// Extinguish reverts a burning instance to Unignited, clearing timers and
// overrides. The caller restores the color from the type's own palette.
func (in *Instance) Extinguish() {
	in.State = Unignited
	in.Burn = nil
}

// Emitter returns the active fire parameters of the instance: the type's
// own fire if declared, or the burn's spread override while burning.
func (in *Instance) Emitter() *particle.Fire {
	if in.Type.Fire != nil {
		return in.Type.Fire
	}
	if in.State == Burning && in.Burn != nil {
		return in.Burn.Spreads
	}
	return nil
}

// Combustible reports whether the instance can be ignited right now.
func (in *Instance) Combustible() bool {
	return in.State == Unignited && in.Type.Burns != nil
}
