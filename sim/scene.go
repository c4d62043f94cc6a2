package sim

import (
	"fmt"

	"github.com/pthm-cable/grit/scene"
	"github.com/pthm-cable/grit/world"
)

// CaptureScene snapshots every placed particle into a scene. Particles are
// ordered by position so identical worlds capture identical scenes.
func (s *Sim) CaptureScene() *scene.Scene {
	var all []*world.Instance
	s.m.EachChunk(func(c *world.Chunk) {
		c.Each(func(in *world.Instance) {
			all = append(all, in)
		})
	})
	sortByPos(all)

	sc := &scene.Scene{Seed: s.opts.Seed}
	sc.Particles = make([]scene.Particle, 0, len(all))
	for _, in := range all {
		sc.Particles = append(sc.Particles, scene.Particle{
			Type: in.Type.Name,
			X:    in.Pos.X,
			Y:    in.Pos.Y,
		})
	}
	return sc
}

// LoadScene clears the map and spawns the scene's particles. Entries naming
// unregistered types or out-of-bounds cells fail the load; the map is left
// partially populated in that case.
func (s *Sim) LoadScene(sc *scene.Scene) error {
	s.m.Clear()
	for _, p := range sc.Particles {
		if _, err := s.Spawn(world.Cell{X: p.X, Y: p.Y}, p.Type); err != nil {
			return fmt.Errorf("placing %s at (%d,%d): %w", p.Type, p.X, p.Y, err)
		}
	}
	return nil
}
