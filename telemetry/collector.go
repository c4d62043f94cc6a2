package telemetry

import "github.com/pthm-cable/grit/sim"

// Collector accumulates per-tick statistics within time windows and
// produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks uint64
	dt                  float64

	windowStartTick uint64

	// Accumulators for the current window
	moves        uint64
	swaps        uint64
	ignitions    uint64
	burnTicks    uint64
	destroyed    uint64
	produced     uint64
	extinguished uint64
	spawns       uint64

	movesPerTick []float64
}

// NewCollector creates a stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float64) *Collector {
	ticksPerWindow := uint64(windowDurationSec / dt)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// Record accumulates one tick's statistics into the current window.
func (c *Collector) Record(st sim.TickStats) {
	c.moves += st.Moves
	c.swaps += st.Swaps
	c.ignitions += st.Ignitions
	c.burnTicks += st.BurnTicks
	c.destroyed += st.Destroyed
	c.produced += st.Produced
	c.extinguished += st.Extinguished
	c.spawns += st.Spawns
	c.movesPerTick = append(c.movesPerTick, float64(st.Moves+st.Swaps))
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick uint64) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats from the accumulated counters plus the
// end-of-window census, and resets for the next window.
func (c *Collector) Flush(st sim.TickStats) WindowStats {
	mean, p50, p90 := ComputeMoveStats(c.movesPerTick)

	var activeRatio float64
	if total := st.ActiveChunks + st.HibernatingChunks; total > 0 {
		activeRatio = float64(st.ActiveChunks) / float64(total)
	}

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   st.Tick,
		SimTimeSec:      float64(st.Tick) * c.dt,

		Particles:         st.Particles,
		ActiveChunks:      st.ActiveChunks,
		HibernatingChunks: st.HibernatingChunks,

		Moves:        c.moves,
		Swaps:        c.swaps,
		Ignitions:    c.ignitions,
		BurnTicks:    c.burnTicks,
		Destroyed:    c.destroyed,
		Produced:     c.produced,
		Extinguished: c.extinguished,
		Spawns:       c.spawns,

		MovesMean: mean,
		MovesP50:  p50,
		MovesP90:  p90,

		ActiveRatio: activeRatio,
	}

	c.windowStartTick = st.Tick
	c.moves = 0
	c.swaps = 0
	c.ignitions = 0
	c.burnTicks = 0
	c.destroyed = 0
	c.produced = 0
	c.extinguished = 0
	c.spawns = 0
	c.movesPerTick = c.movesPerTick[:0]

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() uint64 {
	return c.windowDurationTicks
}
