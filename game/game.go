// Package game wires the simulation, camera, telemetry, and raylib viewer
// into an interactive sandbox.
package game

import (
	"log/slog"
	"os"
	"time"

	"github.com/pthm-cable/grit/camera"
	"github.com/pthm-cable/grit/config"
	"github.com/pthm-cable/grit/particle"
	"github.com/pthm-cable/grit/scene"
	"github.com/pthm-cable/grit/sim"
	"github.com/pthm-cable/grit/telemetry"
	"github.com/pthm-cable/grit/world"
)

// Options configures a new Game.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string
	Headless       bool
	StepsPerUpdate int

	// ParticlesPath is an optional particle defs file; empty uses the
	// embedded defaults. The R key re-reads it while running.
	ParticlesPath string

	// ScenePath, when set, is loaded at startup.
	ScenePath string

	// SaveScenePath is where F5 (and headless runs with -save-scene)
	// write the scene. Empty defaults to "scene.grit".
	SaveScenePath string
}

// Game holds the complete sandbox state.
type Game struct {
	sim *sim.Sim
	reg *particle.Registry
	cam *camera.Camera

	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
	output    *telemetry.OutputManager

	// State
	paused   bool
	stepOnce bool
	speed    int // simulation ticks per update (1-10)

	// Brush
	brushType   int // index into typeNames
	typeNames   []string
	brushRadius int
	erasing     bool

	// Rendering
	ren *renderer

	logStats       bool
	headless       bool
	stepsPerUpdate int
	particlesPath  string
	saveScenePath  string
}

// savePath returns the configured scene save path.
func (g *Game) savePath() string {
	if g.saveScenePath == "" {
		return "scene.grit"
	}
	return g.saveScenePath
}

// NewGame creates a new game instance from the global config and options.
func NewGame(opts Options) (*Game, error) {
	cfg := config.Cfg()

	reg := particle.NewRegistry()
	if err := loadDefs(reg, opts.ParticlesPath); err != nil {
		return nil, err
	}

	m := world.NewMap(cfg.World.Width, cfg.World.Height)
	s := sim.New(m, reg, sim.Options{
		Seed:              opts.Seed,
		DT:                time.Duration(cfg.Derived.DT * float64(time.Second)),
		Workers:           cfg.Derived.Workers,
		ParallelThreshold: cfg.Sim.ParallelThreshold,
	})

	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}

	stepsPerUpdate := opts.StepsPerUpdate
	if stepsPerUpdate < 1 {
		stepsPerUpdate = 1
	}

	g := &Game{
		sim:            s,
		reg:            reg,
		collector:      telemetry.NewCollector(statsWindow, cfg.Derived.DT),
		perf:           telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		speed:          1,
		brushRadius:    2,
		typeNames:      reg.Names(),
		logStats:       opts.LogStats,
		headless:       opts.Headless,
		stepsPerUpdate: stepsPerUpdate,
		particlesPath:  opts.ParticlesPath,
		saveScenePath:  opts.SaveScenePath,
	}

	// Route sim phase timings into the perf collector.
	s.PhaseHook = g.perf.RecordPhase

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	g.output = om
	if err := g.output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	if opts.ScenePath != "" {
		sc, err := scene.Load(opts.ScenePath)
		if err != nil {
			return nil, err
		}
		if err := s.LoadScene(sc); err != nil {
			return nil, err
		}
		slog.Info("scene loaded", "path", opts.ScenePath, "particles", len(sc.Particles))
	}

	if !opts.Headless {
		worldW, worldH := m.Size()
		g.cam = camera.New(
			float32(cfg.Screen.Width), float32(cfg.Screen.Height),
			float32(worldW), float32(worldH),
			float32(cfg.Screen.CellScale),
		)
		g.ren = newRenderer(m)
	}

	return g, nil
}

// loadDefs fills the registry from a defs file or the embedded defaults.
func loadDefs(reg *particle.Registry, path string) error {
	if path == "" {
		return particle.LoadDefaultDefs(reg)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return particle.LoadDefs(reg, data)
}

// ReloadDefs re-reads the particle defs. Registered names are replaced
// last-write-wins; existing particles keep the definition they were
// spawned with.
func (g *Game) ReloadDefs() error {
	if err := loadDefs(g.reg, g.particlesPath); err != nil {
		return err
	}
	g.typeNames = g.reg.Names()
	if g.brushType >= len(g.typeNames) {
		g.brushType = 0
	}
	slog.Info("particle defs reloaded", "types", g.reg.Len())
	return nil
}

// Update handles input and runs simulation steps based on speed setting.
func (g *Game) Update() {
	g.handleInput()

	if g.paused && !g.stepOnce {
		return
	}
	steps := g.speed
	if g.stepOnce {
		steps = 1
		g.stepOnce = false
	}

	for i := 0; i < steps; i++ {
		g.simulationStep()
	}
}

// UpdateHeadless runs simulation steps without input or rendering.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.simulationStep()
	}
}

// simulationStep runs a single tick and records telemetry.
func (g *Game) simulationStep() {
	g.perf.StartTick()
	g.sim.Step()
	g.perf.StartPhase(telemetry.PhaseTelemetry)
	g.collector.Record(g.sim.Stats())
	g.flushTelemetry()
	g.perf.EndTick()
}

// Sim returns the underlying simulation.
func (g *Game) Sim() *sim.Sim {
	return g.sim
}

// Tick returns the current simulation tick.
func (g *Game) Tick() uint64 {
	return g.sim.Tick()
}

// SaveScene captures the current particles to a scene file.
func (g *Game) SaveScene(path string) error {
	sc := g.sim.CaptureScene()
	if err := scene.Save(path, sc); err != nil {
		return err
	}
	slog.Info("scene saved", "path", path, "particles", len(sc.Particles))
	return nil
}

// Unload releases resources and closes output files.
func (g *Game) Unload() {
	if g.ren != nil {
		g.ren.unload()
	}
	g.sim.Close()
	if err := g.output.Close(); err != nil {
		slog.Error("failed to close output files", "error", err)
	}
}
