package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/grit/sim"
)

func TestComputeMoveStats(t *testing.T) {
	perTick := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	mean, p50, p90 := ComputeMoveStats(perTick)

	if math.Abs(mean-5.5) > 0.001 {
		t.Errorf("mean = %v, want 5.5", mean)
	}
	if math.Abs(p50-5) > 0.001 {
		t.Errorf("p50 = %v, want 5", p50)
	}
	if math.Abs(p90-9) > 0.001 {
		t.Errorf("p90 = %v, want 9", p90)
	}
}

func TestComputeMoveStatsEmpty(t *testing.T) {
	mean, p50, p90 := ComputeMoveStats(nil)

	if mean != 0 || p50 != 0 || p90 != 0 {
		t.Error("empty input should return all zeros")
	}
}

func TestCollectorAccumulatesWindow(t *testing.T) {
	c := NewCollector(1.0, 1.0/60.0)

	if got := c.WindowDurationTicks(); got != 60 {
		t.Fatalf("WindowDurationTicks() = %d, want 60", got)
	}

	for tick := uint64(1); tick <= 3; tick++ {
		c.Record(sim.TickStats{
			Tick:      tick,
			Moves:     10,
			Swaps:     2,
			Ignitions: 1,
			Spawns:    5,
		})
	}

	if c.ShouldFlush(3) {
		t.Error("ShouldFlush(3) = true before window elapsed")
	}
	if !c.ShouldFlush(60) {
		t.Error("ShouldFlush(60) = false at window boundary")
	}

	ws := c.Flush(sim.TickStats{
		Tick:              60,
		Particles:         42,
		ActiveChunks:      3,
		HibernatingChunks: 1,
	})

	if ws.Moves != 30 || ws.Swaps != 6 || ws.Ignitions != 3 || ws.Spawns != 15 {
		t.Errorf("accumulated counters = %d/%d/%d/%d, want 30/6/3/15",
			ws.Moves, ws.Swaps, ws.Ignitions, ws.Spawns)
	}
	if ws.Particles != 42 {
		t.Errorf("Particles = %d, want 42", ws.Particles)
	}
	if math.Abs(ws.ActiveRatio-0.75) > 0.001 {
		t.Errorf("ActiveRatio = %v, want 0.75", ws.ActiveRatio)
	}
	if math.Abs(ws.MovesMean-12) > 0.001 {
		t.Errorf("MovesMean = %v, want 12", ws.MovesMean)
	}
	if math.Abs(ws.SimTimeSec-1.0) > 0.001 {
		t.Errorf("SimTimeSec = %v, want 1.0", ws.SimTimeSec)
	}

	// Counters reset after flush.
	ws2 := c.Flush(sim.TickStats{Tick: 120})
	if ws2.Moves != 0 || ws2.WindowStartTick != 60 {
		t.Errorf("after reset: Moves = %d, WindowStartTick = %d, want 0 and 60",
			ws2.Moves, ws2.WindowStartTick)
	}
}
