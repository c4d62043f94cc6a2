package sim

import (
	"testing"

	"github.com/pthm-cable/grit/world"
)

// Eight active regions on the same checkerboard parity with only two
// workers: the dispatcher must hand out bounded work items, not one send
// per region, or the tick never finishes.
func TestDispatchManyRegionsFewWorkers(t *testing.T) {
	s := newTestSim(t, 1024, 1024, Options{Seed: 30, Workers: 2, ParallelThreshold: 2}, sandType())

	var grains []*world.Instance
	for x := -512; x < 512; x += 128 { // every other region column: one parity group
		grains = append(grains, mustSpawn(t, s, x, 0, "Sand"))
	}

	for i := 0; i < 3; i++ {
		s.Step()
	}

	// Velocity budget 1+2+3 over three ticks of free fall.
	for _, in := range grains {
		if in.Pos.Y != -6 {
			t.Errorf("grain at %v after 3 ticks, want Y=-6", in.Pos)
		}
	}
	if got := s.Map().ParticleCount(); got != len(grains) {
		t.Errorf("ParticleCount = %d, want %d", got, len(grains))
	}
}

func TestDispatchMoreWorkersThanRegions(t *testing.T) {
	s := newTestSim(t, 256, 256, Options{Seed: 31, Workers: 8, ParallelThreshold: 1}, sandType())
	in := mustSpawn(t, s, 0, 10, "Sand")

	s.Step()
	if in.Pos.Y != 9 {
		t.Errorf("grain at %v, want Y=9", in.Pos)
	}
}
