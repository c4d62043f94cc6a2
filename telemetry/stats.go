package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated simulation statistics for a tick window.
type WindowStats struct {
	WindowStartTick uint64  `csv:"-"`
	WindowEndTick   uint64  `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Census at window end
	Particles         int    `csv:"particles"`
	ActiveChunks      int    `csv:"active_chunks"`
	HibernatingChunks int    `csv:"hibernating_chunks"`

	// Events during window
	Moves        uint64 `csv:"moves"`
	Swaps        uint64 `csv:"swaps"`
	Ignitions    uint64 `csv:"ignitions"`
	BurnTicks    uint64 `csv:"burn_ticks"`
	Destroyed    uint64 `csv:"destroyed"`
	Produced     uint64 `csv:"produced"`
	Extinguished uint64 `csv:"extinguished"`
	Spawns       uint64 `csv:"spawns"`

	// Per-tick movement distribution over the window
	MovesMean float64 `csv:"moves_mean"`
	MovesP50  float64 `csv:"moves_p50"`
	MovesP90  float64 `csv:"moves_p90"`

	// Chunk activity ratio (active / total populated) at window end
	ActiveRatio float64 `csv:"active_ratio"`
}

// ComputeMoveStats summarizes per-tick movement counts.
func ComputeMoveStats(perTick []float64) (mean, p50, p90 float64) {
	if len(perTick) == 0 {
		return 0, 0, 0
	}
	sorted := make([]float64, len(perTick))
	copy(sorted, perTick)
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	return mean, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("window_start", s.WindowStartTick),
		slog.Uint64("window_end", s.WindowEndTick),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("particles", s.Particles),
		slog.Int("active_chunks", s.ActiveChunks),
		slog.Int("hibernating_chunks", s.HibernatingChunks),
		slog.Uint64("moves", s.Moves),
		slog.Uint64("swaps", s.Swaps),
		slog.Uint64("ignitions", s.Ignitions),
		slog.Uint64("burn_ticks", s.BurnTicks),
		slog.Uint64("destroyed", s.Destroyed),
		slog.Uint64("produced", s.Produced),
		slog.Uint64("extinguished", s.Extinguished),
		slog.Uint64("spawns", s.Spawns),
		slog.Float64("moves_mean", s.MovesMean),
		slog.Float64("moves_p50", s.MovesP50),
		slog.Float64("moves_p90", s.MovesP90),
		slog.Float64("active_ratio", s.ActiveRatio),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"particles", s.Particles,
		"active_chunks", s.ActiveChunks,
		"hibernating_chunks", s.HibernatingChunks,
		"moves", s.Moves,
		"swaps", s.Swaps,
		"ignitions", s.Ignitions,
		"burn_ticks", s.BurnTicks,
		"destroyed", s.Destroyed,
		"produced", s.Produced,
		"extinguished", s.Extinguished,
		"spawns", s.Spawns,
		"moves_mean", s.MovesMean,
		"active_ratio", s.ActiveRatio,
	)
}
