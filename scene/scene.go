// Package scene reads and writes particle scenes: the set of typed,
// positioned particles needed to reconstruct a world. Files are
// zstd-compressed JSON with a versioned header.
package scene

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
)

// Version is incremented when the format changes.
const Version = 1

// Particle is one placed particle.
type Particle struct {
	Type string `json:"type"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// Scene holds a complete particle layout.
type Scene struct {
	Version   int        `json:"version"`
	Seed      int64      `json:"seed,omitempty"`
	Particles []Particle `json:"particles"`
}

// Save writes the scene to path.
func Save(path string, sc *Scene) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating scene file: %w", err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	zw, err := newZstdWriter(bw)
	if err != nil {
		return fmt.Errorf("initializing scene compressor: %w", err)
	}

	sc.Version = Version
	if err := json.NewEncoder(zw).Encode(sc); err != nil {
		zw.Close()
		return fmt.Errorf("encoding scene: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalizing scene file: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flushing scene file: %w", err)
	}
	return nil
}

// Load reads a scene from path, rejecting unknown versions.
func Load(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening scene file: %w", err)
	}
	defer f.Close()

	zr, err := newZstdReader(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("initializing scene decompressor: %w", err)
	}
	defer zr.Close()

	sc := &Scene{}
	if err := json.NewDecoder(zr).Decode(sc); err != nil {
		return nil, fmt.Errorf("decoding scene: %w", err)
	}
	if sc.Version != Version {
		return nil, fmt.Errorf("unsupported scene version %d (want %d)", sc.Version, Version)
	}
	return sc, nil
}
