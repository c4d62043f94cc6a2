package world

// ChunkSize is the side length of a chunk in cells. A chunk is the unit of
// hibernation and of parallel scheduling.
const ChunkSize = 32

// Chunk owns the instances inside a fixed square region of the map.
type Chunk struct {
	cells map[Cell]*Instance

	cx, cy   int  // chunk-grid coordinate
	min, max Cell // inclusive cell bounds

	// hibernating chunks are skipped by the movement pass.
	hibernating bool
	// wakeNext records activity during the current tick: a move, spawn,
	// removal, or ignition inside the chunk, or pressure from a
	// neighboring chunk's border.
	wakeNext bool
}

func newChunk(cx, cy int, min Cell) *Chunk {
	return &Chunk{
		cells: make(map[Cell]*Instance, 64),
		cx:    cx,
		cy:    cy,
		min:   min,
		max:   Cell{X: min.X + ChunkSize - 1, Y: min.Y + ChunkSize - 1},
	}
}

// Coord returns the chunk-grid coordinate.
func (c *Chunk) Coord() (int, int) {
	return c.cx, c.cy
}

// Bounds returns the inclusive cell bounds of the chunk.
func (c *Chunk) Bounds() (min, max Cell) {
	return c.min, c.max
}

// Hibernating reports whether the chunk is excluded from processing.
func (c *Chunk) Hibernating() bool {
	return c.hibernating
}

// Len returns the number of instances in the chunk.
func (c *Chunk) Len() int {
	return len(c.cells)
}

// Get returns the occupant of a cell, or nil.
func (c *Chunk) Get(pos Cell) *Instance {
	return c.cells[pos]
}

// Each calls fn for every instance in the chunk. Iteration order is not
// deterministic; callers needing a stable order must collect and sort.
func (c *Chunk) Each(fn func(*Instance)) {
	for _, in := range c.cells {
		fn(in)
	}
}

// wake marks the chunk for processing next tick.
func (c *Chunk) wake() {
	c.wakeNext = true
}

func (c *Chunk) set(pos Cell, in *Instance) {
	c.cells[pos] = in
	c.wakeNext = true
}

func (c *Chunk) remove(pos Cell) *Instance {
	in, ok := c.cells[pos]
	if !ok {
		return nil
	}
	delete(c.cells, pos)
	c.wakeNext = true
	return in
}
