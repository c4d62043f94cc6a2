package world

import "fmt"

// OutOfBoundsError reports an access outside the configured map extent.
type OutOfBoundsError struct {
	Pos Cell
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("position %s is outside the map bounds", e.Pos)
}

// OccupiedError reports a placement onto a non-empty cell. The caller must
// vacate the cell first, retry elsewhere, or abort the spawn.
type OccupiedError struct {
	Pos Cell
}

func (e *OccupiedError) Error() string {
	return fmt.Sprintf("cell %s is already occupied", e.Pos)
}
