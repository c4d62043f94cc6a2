// Package sim drives the simulation: per-tick movement resolution,
// reactions, color dynamics, and parity-batched parallel chunk processing.
package sim

import (
	"log/slog"
	"sync"
	"time"

	"github.com/pthm-cable/grit/particle"
	"github.com/pthm-cable/grit/world"
)

// Options configures a Sim.
type Options struct {
	Seed int64
	// DT is the simulated time per tick. Zero means 1/60s.
	DT time.Duration
	// Workers is the parallel movement worker count. Zero or one disables
	// the worker pool.
	Workers int
	// ParallelThreshold is the minimum active-region count before movement
	// goes parallel.
	ParallelThreshold int
}

// Sim owns one simulation: a chunk map, a type registry, and the engines
// that advance them one synchronous tick at a time. The registry must not
// be mutated while Step runs.
type Sim struct {
	m    *world.Map
	reg  *particle.Registry
	opts Options

	tick          uint64
	dt            time.Duration
	stats         TickStats
	pendingSpawns uint64

	// PhaseHook, when set, receives the duration of each tick phase.
	PhaseHook func(phase string, d time.Duration)

	prio sync.Map // *particle.Type -> particle.MovementPriority
	par  *parallelState
}

// Tick phase names reported through PhaseHook.
const (
	PhaseMovement  = "movement"
	PhaseReactions = "reactions"
	PhaseColors    = "colors"
	PhaseChunks    = "chunks"
)

// New creates a simulation over the given map and registry.
func New(m *world.Map, reg *particle.Registry, opts Options) *Sim {
	if opts.DT <= 0 {
		opts.DT = time.Second / 60
	}
	if opts.ParallelThreshold <= 0 {
		opts.ParallelThreshold = 8
	}
	return &Sim{
		m:    m,
		reg:  reg,
		opts: opts,
		dt:   opts.DT,
		par:  newParallelState(opts.Workers),
	}
}

// Map returns the underlying chunk map.
func (s *Sim) Map() *world.Map {
	return s.m
}

// Registry returns the type registry.
func (s *Sim) Registry() *particle.Registry {
	return s.reg
}

// Tick returns the number of completed ticks.
func (s *Sim) Tick() uint64 {
	return s.tick
}

// Stats returns the statistics of the last completed tick.
func (s *Sim) Stats() TickStats {
	return s.stats
}

// Spawn creates an instance of the named type at pos. It fails with an
// UnknownTypeError for unregistered names and with OutOfBoundsError or
// OccupiedError from placement.
func (s *Sim) Spawn(pos world.Cell, name string) (*world.Instance, error) {
	t, err := s.reg.Lookup(name)
	if err != nil {
		return nil, err
	}
	r := newRNG(streamSeed(s.opts.Seed, s.tick, streamSpawn) ^ int64(s.pendingSpawns+1))
	in := s.newInstance(t, pos, r)
	if err := s.m.Place(pos, in); err != nil {
		return nil, err
	}
	s.pendingSpawns++
	return in, nil
}

// Erase removes the occupant of pos, if any.
func (s *Sim) Erase(pos world.Cell) error {
	_, err := s.m.Remove(pos)
	return err
}

// newInstance builds an instance of t with a palette color; self-igniting
// types start burning immediately.
func (s *Sim) newInstance(t *particle.Type, pos world.Cell, r *rng) *world.Instance {
	in := world.NewInstance(t, pos, pickColor(t.Colors, r))
	if t.Burning != nil {
		in.IgniteSelf()
	}
	return in
}

// CellView is a read-only snapshot of one cell's occupant.
type CellView struct {
	Type    string
	Color   particle.Color
	Burning bool
}

// Query returns a snapshot of the occupant at pos, nil when the cell is
// empty, or an OutOfBoundsError.
func (s *Sim) Query(pos world.Cell) (*CellView, error) {
	in, err := s.m.At(pos)
	if err != nil {
		return nil, err
	}
	if in == nil {
		return nil, nil
	}
	return &CellView{
		Type:    in.Type.Name,
		Color:   in.Color,
		Burning: in.State == world.Burning,
	}, nil
}

// Step advances the simulation one tick: movement, reactions, colors, then
// the chunk hibernation pass. A tick is a bounded, synchronous unit of
// work.
func (s *Sim) Step() {
	s.tick++
	// Spawns recorded since the previous tick belong to this one.
	st := TickStats{Tick: s.tick, Spawns: s.pendingSpawns}
	s.pendingSpawns = 0

	s.phase(PhaseMovement, func() {
		st.Moves, st.Swaps = s.stepMovement()
	})
	s.phase(PhaseReactions, func() {
		s.stepReactions(&st)
	})
	s.phase(PhaseColors, func() {
		s.stepColors()
	})
	s.phase(PhaseChunks, func() {
		s.m.EndTick()
	})

	st.Particles = s.m.ParticleCount()
	st.ActiveChunks = s.m.ActiveCount()
	st.HibernatingChunks = s.m.HibernatingCount()
	s.stats = st
}

func (s *Sim) phase(name string, fn func()) {
	if s.PhaseHook == nil {
		fn()
		return
	}
	start := time.Now()
	fn()
	s.PhaseHook(name, time.Since(start))
}

// Clear removes every particle from the map.
func (s *Sim) Clear() {
	s.m.Clear()
}

// Close stops the movement worker pool.
func (s *Sim) Close() {
	s.par.stopWorkers()
}

// warnUnknownProduce logs a reaction pointing at an unregistered type. The
// definition problem surfaces once per offending tick rather than failing
// the tick.
func warnUnknownProduce(name string) {
	slog.Warn("burn reaction produces unknown type", "type", name)
}
