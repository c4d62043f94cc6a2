// Package particle defines particle types, their material movement rules,
// and the declarative format they are loaded from.
package particle

import "time"

// MaxVelocity caps the per-tick move budget of any type. See MaxFluidity.
const MaxVelocity = 5

// Fire marks a type (or a burning override) as an ignition source.
type Fire struct {
	// BurnRadius is the scan radius in cells around the emitter.
	BurnRadius float64
	// ChanceToSpread is rolled independently per combustible neighbor,
	// per tick.
	ChanceToSpread float64
	// DestroysOnIgnition destroys the emitter once it ignites something.
	DestroysOnIgnition bool
}

// Reaction describes what a burning particle may turn into when destroyed.
type Reaction struct {
	Produces        string
	ChanceToProduce float64
}

// BurnSchedule makes instances of a type spawn already burning: the type
// keeps emitting fire (per its Fire settings) for Duration, checking every
// TickRate, and is consumed when the schedule runs out.
type BurnSchedule struct {
	Duration time.Duration
	TickRate time.Duration
}

// Burns makes a type combustible.
type Burns struct {
	// Duration is the total burn length before the particle extinguishes.
	Duration time.Duration
	// TickRate is the cadence of destroy/produce/recolor rolls.
	TickRate time.Duration
	// ChanceDestroyPerTick is rolled every tick; success consumes the
	// particle.
	ChanceDestroyPerTick float64
	// Reaction, when set, is rolled on destruction to replace the
	// particle in place.
	Reaction *Reaction
	// Colors overrides the palette while burning.
	Colors []Color
	// Spreads, when set, makes the burning particle a fire emitter for
	// the duration of the burn.
	Spreads *Fire
}

// Type is an immutable particle template, identified by its unique name.
type Type struct {
	Name        string
	Density     uint32
	MaxVelocity uint8
	// Material is nil for types that declare none; such types behave as
	// immovable obstructions regardless of anything else they declare.
	Material *Material
	// Momentum persists the last successful move direction across ticks.
	Momentum bool
	// Colors is the spawn palette.
	Colors []Color
	// ChangesColors, when set, is the per-tick recolor probability.
	ChangesColors *float64
	// Fire makes instances ignition sources.
	Fire *Fire
	// Burning makes instances spawn already burning.
	Burning *BurnSchedule
	// Burns makes instances combustible.
	Burns *Burns
}

// Movable reports whether instances of the type are evaluated for movement.
// A type missing density, max velocity, or a non-wall material is an
// immovable obstruction.
func (t *Type) Movable() bool {
	return t.Material != nil && t.Material.Kind != Wall && t.MaxVelocity > 0
}

// clampVelocity bounds a declared max velocity to the engine cap.
func clampVelocity(v uint8) uint8 {
	if v > MaxVelocity {
		return MaxVelocity
	}
	return v
}
