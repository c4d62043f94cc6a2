package world

// Map is the bounded, chunked particle map. The extent is centered on the
// origin and rounded up to whole chunks; chunks are created lazily on first
// occupancy and only ever hibernate, never disappear.
type Map struct {
	width, height int // extent in cells
	minX, minY    int
	cols, rows    int // chunk grid dimensions

	chunks []*Chunk // row-major, nil until first occupancy
}

// DefaultExtent is the default side length of the map in cells.
const DefaultExtent = 1024

// NewMap creates a map spanning width x height cells centered on the
// origin. Dimensions are rounded up to a whole number of chunks.
func NewMap(width, height int) *Map {
	if width <= 0 {
		width = DefaultExtent
	}
	if height <= 0 {
		height = DefaultExtent
	}
	cols := (width + ChunkSize - 1) / ChunkSize
	rows := (height + ChunkSize - 1) / ChunkSize
	width = cols * ChunkSize
	height = rows * ChunkSize

	return &Map{
		width:  width,
		height: height,
		minX:   -width / 2,
		minY:   -height / 2,
		cols:   cols,
		rows:   rows,
		chunks: make([]*Chunk, cols*rows),
	}
}

// ChunkGrid returns the chunk-grid dimensions.
func (m *Map) ChunkGrid() (cols, rows int) {
	return m.cols, m.rows
}

// Size returns the extent in cells.
func (m *Map) Size() (w, h int) {
	return m.width, m.height
}

// Bounds returns the inclusive cell bounds of the map.
func (m *Map) Bounds() (min, max Cell) {
	return Cell{X: m.minX, Y: m.minY},
		Cell{X: m.minX + m.width - 1, Y: m.minY + m.height - 1}
}

// InBounds reports whether the cell lies inside the configured extent.
func (m *Map) InBounds(c Cell) bool {
	return c.X >= m.minX && c.X < m.minX+m.width &&
		c.Y >= m.minY && c.Y < m.minY+m.height
}

func (m *Map) chunkIndex(c Cell) int {
	col := (c.X - m.minX) / ChunkSize
	row := (c.Y - m.minY) / ChunkSize
	return row*m.cols + col
}

// chunkAt returns the chunk owning the cell, creating it when create is
// set. The cell must be in bounds.
func (m *Map) chunkAt(c Cell, create bool) *Chunk {
	idx := m.chunkIndex(c)
	ch := m.chunks[idx]
	if ch == nil && create {
		col := (c.X - m.minX) / ChunkSize
		row := (c.Y - m.minY) / ChunkSize
		ch = newChunk(col, row, Cell{
			X: m.minX + col*ChunkSize,
			Y: m.minY + row*ChunkSize,
		})
		m.chunks[idx] = ch
	}
	return ch
}

// ChunkContaining returns the chunk owning the cell, or nil if the cell is
// out of bounds or the chunk was never occupied.
func (m *Map) ChunkContaining(c Cell) *Chunk {
	if !m.InBounds(c) {
		return nil
	}
	return m.chunkAt(c, false)
}

// At returns the occupant of a cell. An empty in-bounds cell returns
// (nil, nil); an out-of-bounds cell returns an OutOfBoundsError.
func (m *Map) At(c Cell) (*Instance, error) {
	if !m.InBounds(c) {
		return nil, &OutOfBoundsError{Pos: c}
	}
	ch := m.chunkAt(c, false)
	if ch == nil {
		return nil, nil
	}
	return ch.Get(c), nil
}

// Place inserts an instance at a cell. Fails with OutOfBoundsError outside
// the extent and OccupiedError when the cell already holds a particle.
// Placement wakes the owning chunk.
func (m *Map) Place(c Cell, in *Instance) error {
	if !m.InBounds(c) {
		return &OutOfBoundsError{Pos: c}
	}
	ch := m.chunkAt(c, true)
	if ch.Get(c) != nil {
		return &OccupiedError{Pos: c}
	}
	in.Pos = c
	ch.set(c, in)
	m.wakeBorderNeighbors(c, ch)
	return nil
}

// Remove removes and returns the occupant of a cell, or nil when the cell
// is empty. Removal wakes the owning chunk.
func (m *Map) Remove(c Cell) (*Instance, error) {
	if !m.InBounds(c) {
		return nil, &OutOfBoundsError{Pos: c}
	}
	ch := m.chunkAt(c, false)
	if ch == nil {
		return nil, nil
	}
	in := ch.remove(c)
	if in != nil {
		m.wakeBorderNeighbors(c, ch)
	}
	return in, nil
}

// Swap exchanges the occupants of two cells; either may be empty. Both
// endpoint chunks wake, along with any chunk a border endpoint touches, so
// particles crossing a boundary are absorbed next tick.
func (m *Map) Swap(a, b Cell) error {
	if !m.InBounds(a) {
		return &OutOfBoundsError{Pos: a}
	}
	if !m.InBounds(b) {
		return &OutOfBoundsError{Pos: b}
	}

	chA := m.chunkAt(a, true)
	chB := m.chunkAt(b, true)

	occA := chA.remove(a)
	occB := chB.remove(b)
	if occA != nil {
		occA.Pos = b
		chB.set(b, occA)
	}
	if occB != nil {
		occB.Pos = a
		chA.set(a, occB)
	}

	m.wakeBorderNeighbors(a, chA)
	m.wakeBorderNeighbors(b, chB)
	return nil
}

// Touch wakes the chunk containing a cell, recording external activity
// (spawn pressure, ignition) without mutating occupancy.
func (m *Map) Touch(c Cell) {
	if !m.InBounds(c) {
		return
	}
	if ch := m.chunkAt(c, false); ch != nil {
		ch.wake()
	}
}

// wakeBorderNeighbors wakes the orthogonally adjacent chunk when the cell
// lies on the chunk border, so effects can propagate across the boundary
// next tick.
func (m *Map) wakeBorderNeighbors(c Cell, ch *Chunk) {
	if c.X == ch.min.X && ch.cx > 0 {
		m.wakeChunkAt(ch.cx-1, ch.cy)
	}
	if c.X == ch.max.X && ch.cx < m.cols-1 {
		m.wakeChunkAt(ch.cx+1, ch.cy)
	}
	if c.Y == ch.min.Y && ch.cy > 0 {
		m.wakeChunkAt(ch.cx, ch.cy-1)
	}
	if c.Y == ch.max.Y && ch.cy < m.rows-1 {
		m.wakeChunkAt(ch.cx, ch.cy+1)
	}
}

// wakeChunkAt wakes an existing chunk by grid coordinate. Chunks that were
// never occupied hold nothing to simulate and stay absent.
func (m *Map) wakeChunkAt(cx, cy int) {
	if ch := m.chunks[cy*m.cols+cx]; ch != nil {
		ch.wake()
	}
}

// EndTick recomputes every chunk's hibernation status from the activity
// recorded during the tick and clears the activity markers.
func (m *Map) EndTick() {
	for _, ch := range m.chunks {
		if ch == nil {
			continue
		}
		ch.hibernating = !ch.wakeNext
		ch.wakeNext = false
	}
}

// EachChunk calls fn for every existing chunk in grid order.
func (m *Map) EachChunk(fn func(*Chunk)) {
	for _, ch := range m.chunks {
		if ch != nil {
			fn(ch)
		}
	}
}

// EachActiveChunk calls fn for every chunk eligible for this tick, in grid
// order. Hibernating chunks are skipped entirely.
func (m *Map) EachActiveChunk(fn func(*Chunk)) {
	for _, ch := range m.chunks {
		if ch != nil && !ch.hibernating {
			fn(ch)
		}
	}
}

// ActiveCount returns the number of active (non-hibernating) chunks.
func (m *Map) ActiveCount() int {
	n := 0
	m.EachActiveChunk(func(*Chunk) { n++ })
	return n
}

// HibernatingCount returns the number of hibernating chunks.
func (m *Map) HibernatingCount() int {
	n := 0
	m.EachChunk(func(ch *Chunk) {
		if ch.hibernating {
			n++
		}
	})
	return n
}

// ParticleCount returns the total number of instances in the map.
func (m *Map) ParticleCount() int {
	n := 0
	m.EachChunk(func(ch *Chunk) { n += ch.Len() })
	return n
}

// Clear removes every instance. Chunks stay allocated and wake so the next
// tick observes the change.
func (m *Map) Clear() {
	m.EachChunk(func(ch *Chunk) {
		for pos := range ch.cells {
			delete(ch.cells, pos)
		}
		ch.wakeNext = true
	})
}
