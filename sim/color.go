package sim

import (
	"github.com/pthm-cable/grit/particle"
	"github.com/pthm-cable/grit/world"
)

// stepColors rolls the per-tick recolor chance of types that declare one.
// Burning instances are skipped; their flicker comes from the burn tick.
func (s *Sim) stepColors() {
	r := newRNG(streamSeed(s.opts.Seed, s.tick, streamColor))

	var insts []*world.Instance
	s.m.EachActiveChunk(func(ch *world.Chunk) {
		ch.Each(func(in *world.Instance) {
			if in.State == world.Unignited && in.Type.ChangesColors != nil {
				insts = append(insts, in)
			}
		})
	})
	sortByPos(insts)

	for _, in := range insts {
		if r.Chance(*in.Type.ChangesColors) {
			in.Color = pickColor(in.Type.Colors, r)
		}
	}
}

// pickColor selects uniformly from a palette. The zero color stands in for
// an empty palette.
func pickColor(palette []particle.Color, r *rng) particle.Color {
	if len(palette) == 0 {
		return particle.Color{}
	}
	return palette[r.Intn(len(palette))]
}
