package sim

import (
	"math"
	"sort"

	"github.com/pthm-cable/grit/particle"
	"github.com/pthm-cable/grit/world"
)

// stepReactions runs the reaction engine: fire spread first, then the
// burning-state ticks. Both passes work off sorted snapshots so outcomes
// are independent of map iteration order.
func (s *Sim) stepReactions(st *TickStats) {
	r := newRNG(streamSeed(s.opts.Seed, s.tick, streamReaction))

	// Hibernation only gates movement. A settled emitter still scans its
	// radius, and its targets may sit in other chunks, so the collection
	// walks every chunk.
	var emitters, burning []*world.Instance
	s.m.EachChunk(func(ch *world.Chunk) {
		ch.Each(func(in *world.Instance) {
			if in.Emitter() != nil {
				emitters = append(emitters, in)
			}
			if in.State == world.Burning {
				burning = append(burning, in)
			}
		})
	})
	sortByPos(emitters)
	sortByPos(burning)

	for _, e := range emitters {
		if !s.occupies(e) {
			continue // consumed earlier this pass
		}
		f := e.Emitter()
		if f == nil {
			continue
		}
		if s.spreadFire(e, f, r, st) && f.DestroysOnIgnition {
			_, _ = s.m.Remove(e.Pos)
			st.Destroyed++
		}
	}

	for _, in := range burning {
		if !s.occupies(in) || in.State != world.Burning {
			continue
		}
		s.burnTick(in, r, st)
	}
}

// occupies reports whether the instance is still the occupant of its cell.
func (s *Sim) occupies(in *world.Instance) bool {
	cur, err := s.m.At(in.Pos)
	return err == nil && cur == in
}

// spreadFire scans the cells within the emitter's burn radius; every
// combustible unignited occupant rolls the spread chance independently.
// Returns whether anything ignited.
func (s *Sim) spreadFire(e *world.Instance, f *particle.Fire, r *rng, st *TickStats) bool {
	rad := int(math.Ceil(f.BurnRadius))
	r2 := f.BurnRadius * f.BurnRadius
	ignited := false

	for dy := -rad; dy <= rad; dy++ {
		for dx := -rad; dx <= rad; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if float64(dx*dx+dy*dy) > r2 {
				continue
			}
			pos := world.Cell{X: e.Pos.X + dx, Y: e.Pos.Y + dy}
			occ, err := s.m.At(pos)
			if err != nil || occ == nil || !occ.Combustible() {
				continue
			}
			if !r.Chance(f.ChanceToSpread) {
				continue
			}
			if occ.Ignite() {
				if len(occ.Burn.Colors) > 0 {
					occ.Color = pickColor(occ.Burn.Colors, r)
				}
				s.m.Touch(pos) // ignition counts as chunk activity
				st.Ignitions++
				ignited = true
			}
		}
	}
	return ignited
}

// burnTick advances one burning instance by one simulation tick.
func (s *Sim) burnTick(in *world.Instance, r *rng, st *TickStats) {
	b := in.Burn
	b.Elapsed += s.dt
	b.SinceTick += s.dt

	// A burning particle keeps its chunk out of hibernation.
	s.m.Touch(in.Pos)

	for b.TickRate > 0 && b.SinceTick >= b.TickRate {
		b.SinceTick -= b.TickRate
		st.BurnTicks++

		if len(b.Colors) > 0 {
			in.Color = pickColor(b.Colors, r)
		}
		if r.Chance(b.ChanceDestroy) {
			s.consume(in, r, st)
			return
		}
	}

	if b.Elapsed >= b.Duration {
		if b.Consume {
			s.consume(in, r, st)
			return
		}
		in.Extinguish()
		if len(in.Type.Colors) > 0 {
			in.Color = pickColor(in.Type.Colors, r)
		}
		st.Extinguished++
	}
}

// consume destroys a burning instance, releasing its cell, and rolls the
// burn reaction to replace it in place when one is configured.
func (s *Sim) consume(in *world.Instance, r *rng, st *TickStats) {
	pos := in.Pos
	_, _ = s.m.Remove(pos)
	st.Destroyed++

	rx := in.Burn.Reaction
	if rx == nil || !r.Chance(rx.ChanceToProduce) {
		return
	}
	t, err := s.reg.Lookup(rx.Produces)
	if err != nil {
		warnUnknownProduce(rx.Produces)
		return
	}
	if err := s.m.Place(pos, s.newInstance(t, pos, r)); err == nil {
		st.Produced++
	}
}

func sortByPos(insts []*world.Instance) {
	sort.Slice(insts, func(i, j int) bool {
		if insts[i].Pos.Y != insts[j].Pos.Y {
			return insts[i].Pos.Y < insts[j].Pos.Y
		}
		return insts[i].Pos.X < insts[j].Pos.X
	})
}
