package particle

// Offset is a movement candidate relative to a particle's cell.
// Y points up; gravity pulls toward -Y.
type Offset struct {
	X, Y int
}

// MaterialKind selects the movement rule family for a type.
type MaterialKind uint8

const (
	// Wall never moves and blocks everything.
	Wall MaterialKind = iota
	// Solid only ever attempts straight down.
	Solid
	// MovableSolid falls straight down, then diagonally, like sand.
	MovableSolid
	// Liquid falls, then spreads laterally up to its fluidity.
	Liquid
	// Gas rises and spreads laterally up to its fluidity.
	Gas
)

func (k MaterialKind) String() string {
	switch k {
	case Wall:
		return "wall"
	case Solid:
		return "solid"
	case MovableSolid:
		return "movable_solid"
	case Liquid:
		return "liquid"
	case Gas:
		return "gas"
	}
	return "unknown"
}

// MaxFluidity caps lateral spread per movement step. Together with the
// max-velocity cap it bounds per-tick displacement below the chunk-region
// separation the parallel scheduler relies on.
const MaxFluidity = 5

// Material describes how a particle type moves. Fluidity only applies to
// Liquid and Gas kinds.
type Material struct {
	Kind     MaterialKind
	Fluidity int
}

// NewLiquid returns a liquid material with fluidity clamped to MaxFluidity.
func NewLiquid(fluidity int) Material {
	return Material{Kind: Liquid, Fluidity: clampFluidity(fluidity)}
}

// NewGas returns a gas material with fluidity clamped to MaxFluidity.
func NewGas(fluidity int) Material {
	return Material{Kind: Gas, Fluidity: clampFluidity(fluidity)}
}

func clampFluidity(f int) int {
	if f < 0 {
		return 0
	}
	if f > MaxFluidity {
		return MaxFluidity
	}
	return f
}

// MovementPriority is an ordered list of candidate groups. Earlier groups
// are strictly preferred; candidates within a group are equal priority and
// tie-broken at random (or by stored momentum).
type MovementPriority [][]Offset

// MovementPriority builds the candidate groups for the material.
func (m Material) MovementPriority() MovementPriority {
	switch m.Kind {
	case Solid:
		return MovementPriority{
			{{0, -1}},
		}
	case MovableSolid:
		return MovementPriority{
			{{0, -1}},
			{{-1, -1}, {1, -1}},
		}
	case Liquid:
		prio := MovementPriority{
			{{0, -1}},
			{{-1, -1}, {1, -1}},
			{{1, 0}, {-1, 0}},
		}
		for i := 0; i < clampFluidity(m.Fluidity); i++ {
			prio = append(prio, []Offset{{i + 2, 0}, {-(i + 2), 0}})
		}
		return prio
	case Gas:
		prio := MovementPriority{
			{{0, 1}, {1, 1}, {-1, 1}},
		}
		for i := 0; i < clampFluidity(m.Fluidity); i++ {
			prio = append(prio, []Offset{{i + 2, 0}, {-(i + 2), 0}})
		}
		return prio
	}
	// Walls have no movement of their own.
	return nil
}
