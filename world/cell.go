// Package world provides the chunked particle map: bounded occupancy,
// chunk hibernation, and the particle instances the engines mutate.
package world

import (
	"fmt"

	"github.com/pthm-cable/grit/particle"
)

// Cell is a world-grid coordinate. Y points up.
type Cell struct {
	X, Y int
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add offsets the cell by a movement candidate.
func (c Cell) Add(o particle.Offset) Cell {
	return Cell{X: c.X + o.X, Y: c.Y + o.Y}
}

// DistSq returns the squared distance to another cell.
func (c Cell) DistSq(o Cell) int {
	dx := c.X - o.X
	dy := c.Y - o.Y
	return dx*dx + dy*dy
}
