package sim

import "testing"

func TestChanceBoundaries(t *testing.T) {
	r := newRNG(1)
	for i := 0; i < 100; i++ {
		if r.Chance(0) {
			t.Fatal("Chance(0) fired")
		}
		if r.Chance(-0.5) {
			t.Fatal("Chance(-0.5) fired")
		}
		if !r.Chance(1) {
			t.Fatal("Chance(1) missed")
		}
		if !r.Chance(1.5) {
			t.Fatal("Chance(1.5) missed")
		}
	}
}

func TestStreamSeedDistinguishesStreams(t *testing.T) {
	base := streamSeed(7, 100, 0)
	if streamSeed(7, 100, 0) != base {
		t.Error("streamSeed not stable for identical inputs")
	}
	if streamSeed(7, 100, 1) == base {
		t.Error("adjacent region streams collide")
	}
	if streamSeed(7, 101, 0) == base {
		t.Error("adjacent ticks collide")
	}
	if streamSeed(8, 100, 0) == base {
		t.Error("adjacent seeds collide")
	}
	if streamSeed(7, 100, streamReaction) == base ||
		streamSeed(7, 100, streamColor) == base ||
		streamSeed(7, 100, streamSpawn) == base {
		t.Error("engine pass salts collide with region stream 0")
	}
}
