package sim

import (
	"sort"

	"github.com/pthm-cable/grit/particle"
	"github.com/pthm-cable/grit/world"
)

// regionSpan is the side of a scheduling region in chunks. Regions on the
// same checkerboard parity are at least regionSpan*ChunkSize cells apart,
// which exceeds the per-tick displacement bound (MaxVelocity steps of at
// most MaxFluidity+1 cells), so same-parity regions never contend.
const regionSpan = 2

// stepMovement resolves one tick of movement over the active chunks,
// grouped into 2x2-chunk regions and processed one checkerboard parity at
// a time.
func (s *Sim) stepMovement() (moves, swaps uint64) {
	cols, _ := s.m.ChunkGrid()
	regionCols := (cols + regionSpan - 1) / regionSpan

	// Bucket active chunks into regions, regions into parity groups.
	type key struct{ rx, ry int }
	regions := make(map[key][]*world.Chunk)
	s.m.EachActiveChunk(func(ch *world.Chunk) {
		cx, cy := ch.Coord()
		k := key{rx: cx / regionSpan, ry: cy / regionSpan}
		regions[k] = append(regions[k], ch)
	})

	var groups [4][]regionTask
	for k, chunks := range regions {
		g := (k.rx & 1) | ((k.ry & 1) << 1)
		groups[g] = append(groups[g], regionTask{
			id:     k.ry*regionCols + k.rx,
			chunks: chunks,
		})
	}

	var total moveStats
	for g := range groups {
		tasks := groups[g]
		if len(tasks) == 0 {
			continue
		}
		// Deterministic dispatch order regardless of map iteration.
		sort.Slice(tasks, func(i, j int) bool { return tasks[i].id < tasks[j].id })

		if len(tasks) < s.opts.ParallelThreshold || s.par.numWorkers <= 1 {
			for i := range tasks {
				st := moveStats{}
				s.runRegion(&tasks[i], &st)
				total.moves += st.moves
				total.swaps += st.swaps
			}
			continue
		}
		st := s.par.dispatch(s, tasks)
		total.moves += st.moves
		total.swaps += st.swaps
	}
	return total.moves, total.swaps
}

// runRegion moves every unprocessed particle in the region's chunks using
// the region's own RNG stream.
func (s *Sim) runRegion(task *regionTask, st *moveStats) {
	r := newRNG(streamSeed(s.opts.Seed, s.tick, task.id))
	// Chunks within a region in grid order.
	sort.Slice(task.chunks, func(i, j int) bool {
		ix, iy := task.chunks[i].Coord()
		jx, jy := task.chunks[j].Coord()
		if iy != jy {
			return iy < jy
		}
		return ix < jx
	})
	for _, ch := range task.chunks {
		s.moveChunk(ch, r, st)
	}
}

// moveChunk processes a chunk's occupants in a stable, density-aware
// order: densest first, so heavier material displaces lighter material
// within the same tick, then bottom-up scan order as the tie break.
func (s *Sim) moveChunk(ch *world.Chunk, r *rng, st *moveStats) {
	insts := make([]*world.Instance, 0, ch.Len())
	ch.Each(func(in *world.Instance) {
		insts = append(insts, in)
	})
	sort.Slice(insts, func(i, j int) bool {
		a, b := insts[i], insts[j]
		if a.Type.Density != b.Type.Density {
			return a.Type.Density > b.Type.Density
		}
		if a.Pos.Y != b.Pos.Y {
			return a.Pos.Y < b.Pos.Y
		}
		return a.Pos.X < b.Pos.X
	})

	for _, in := range insts {
		if in.Stamp == s.tick {
			continue // already handled after crossing a chunk boundary
		}
		in.Stamp = s.tick
		if !in.Type.Movable() {
			continue
		}
		s.moveInstance(in, r, st)
	}
}

// moveInstance spends the instance's move budget one single-cell step at a
// time. The budget ramps up while the particle keeps moving and decays to
// the floor of one when it stalls.
func (s *Sim) moveInstance(in *world.Instance, r *rng, st *moveStats) {
	prio := s.priority(in.Type)
	if len(prio) == 0 {
		return
	}

	budget := int(in.Velocity)
	if budget < 1 {
		budget = 1
	}
	moved := false
	for i := 0; i < budget; i++ {
		if !s.moveStep(in, prio, r, st) {
			break
		}
		moved = true
	}

	if moved {
		if in.Velocity < in.Type.MaxVelocity {
			in.Velocity++
		}
	} else {
		if in.Velocity > 1 {
			in.Velocity--
		}
		if in.Type.Momentum {
			in.Momentum = particle.Offset{}
		}
	}
}

// moveStep attempts one single-cell move through the priority groups.
// A stored momentum direction that matches a group's candidate preempts
// the rest of that group; otherwise the group is shuffled for the random
// tie break.
func (s *Sim) moveStep(in *world.Instance, prio particle.MovementPriority, r *rng, st *moveStats) bool {
	useMomentum := in.Type.Momentum && in.Momentum != (particle.Offset{})

	var scratch [4]particle.Offset
	for _, group := range prio {
		cands := scratch[:0]
		if useMomentum && containsOffset(group, in.Momentum) {
			cands = append(cands, in.Momentum)
		} else {
			cands = append(cands, group...)
			r.Shuffle(len(cands), func(i, j int) {
				cands[i], cands[j] = cands[j], cands[i]
			})
		}

		for _, off := range cands {
			dest := in.Pos.Add(off)
			occ, err := s.m.At(dest)
			if err != nil {
				continue // the map edge blocks like a wall
			}
			if occ == nil {
				from := in.Pos
				_ = s.m.Swap(from, dest)
				st.moves++
				if in.Type.Momentum {
					in.Momentum = off
				}
				return true
			}
			if canDisplace(in, occ, off) {
				from := in.Pos
				_ = s.m.Swap(from, dest)
				st.swaps++
				if in.Type.Momentum {
					in.Momentum = off
				}
				return true
			}
		}
	}
	return false
}

// canDisplace implements the density-swap rule: a vertical or diagonal
// candidate into an occupied cell swaps when the mover sinks through a
// lighter occupant (downward) or rises through a denser one (upward).
// Lateral spread always blocks on an occupant, and immovable types are
// never displaced.
func canDisplace(mover, occ *world.Instance, off particle.Offset) bool {
	if off.Y == 0 {
		return false
	}
	if !occ.Type.Movable() {
		return false
	}
	if off.Y < 0 {
		return mover.Type.Density > occ.Type.Density
	}
	return mover.Type.Density < occ.Type.Density
}

func containsOffset(group []particle.Offset, o particle.Offset) bool {
	for _, c := range group {
		if c == o {
			return true
		}
	}
	return false
}

// priority returns the cached movement priority for a type.
func (s *Sim) priority(t *particle.Type) particle.MovementPriority {
	if v, ok := s.prio.Load(t); ok {
		return v.(particle.MovementPriority)
	}
	var p particle.MovementPriority
	if t.Material != nil {
		p = t.Material.MovementPriority()
	}
	s.prio.Store(t, p)
	return p
}
