// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	World     WorldConfig     `yaml:"world"`
	Sim       SimConfig       `yaml:"sim"`
	Particles ParticlesConfig `yaml:"particles"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings for the viewer.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
	CellScale int `yaml:"cell_scale"` // screen pixels per world cell at zoom 1.0
}

// WorldConfig holds the simulation bounds in cells.
// The world is centered on the origin and split into fixed-size chunks;
// both dimensions are rounded up to a whole number of chunks.
type WorldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// SimConfig holds tick scheduling parameters.
type SimConfig struct {
	TickRate          int `yaml:"tick_rate"`          // simulation ticks per second
	Workers           int `yaml:"workers"`            // parallel chunk workers (0 = GOMAXPROCS)
	ParallelThreshold int `yaml:"parallel_threshold"` // min active regions before going parallel
}

// ParticlesConfig holds particle definition sources.
type ParticlesConfig struct {
	Path string `yaml:"path"` // optional defs file; empty = embedded defaults
}

// TelemetryConfig holds stats collection parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // seconds per stats window
	PerfWindow  int     `yaml:"perf_window"`  // ticks averaged by the perf collector
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT      float64 // seconds per tick
	Workers int     // effective worker count
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()
	return cfg, nil
}

// computeDerived fills in values computed from the loaded fields.
func (c *Config) computeDerived() {
	if c.Sim.TickRate <= 0 {
		c.Sim.TickRate = 60
	}
	c.Derived.DT = 1.0 / float64(c.Sim.TickRate)

	c.Derived.Workers = c.Sim.Workers
	if c.Derived.Workers <= 0 {
		c.Derived.Workers = runtime.GOMAXPROCS(0)
	}

	if c.World.Width <= 0 {
		c.World.Width = 1024
	}
	if c.World.Height <= 0 {
		c.World.Height = 1024
	}
	if c.Telemetry.StatsWindow <= 0 {
		c.Telemetry.StatsWindow = 5.0
	}
	if c.Telemetry.PerfWindow <= 0 {
		c.Telemetry.PerfWindow = 60
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
