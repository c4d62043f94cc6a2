package sim

// TickStats reports the work done by a single tick, plus the chunk census
// after the end-of-tick hibernation pass. It is the debug-statistics
// surface for diagnostics and telemetry.
type TickStats struct {
	Tick      uint64
	Particles int

	// Chunk census: chunks eligible for the next tick vs hibernating.
	ActiveChunks      int
	HibernatingChunks int

	// Movement
	Moves uint64 // moves into empty cells
	Swaps uint64 // density swaps

	// Reactions
	Ignitions    uint64
	BurnTicks    uint64
	Destroyed    uint64
	Produced     uint64
	Extinguished uint64

	Spawns uint64
}

// moveStats accumulates movement counters for one region worker.
type moveStats struct {
	moves uint64
	swaps uint64
}
