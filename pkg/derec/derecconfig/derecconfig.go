// Package derecconfig loads the small set of operator-tunable knobs this
// library exposes: the protocol-wide Merkle depth floor and the default
// sharing threshold bounds. Values are read from YAML with environment
// variable overrides, in the style of a typical agent config loader.
package derecconfig

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds the tunable knobs.
type Config struct {
	// MerkleDepthFloor is the minimum Merkle tree depth used by every
	// sharing, regardless of n; raising it beyond ceil(log2(n)) further
	// obscures n from a helper inspecting only its own path.
	MerkleDepthFloor int `yaml:"merkle_depth_floor"`

	// MaxThreshold caps (t, n) pairs an orchestrator will accept; the
	// protocol itself only requires 1 <= t <= n.
	MaxThreshold int `yaml:"max_threshold"`
}

// Default returns the library's built-in defaults: no floor above the
// protocol minimum, and the n <= 64 bound used throughout the testable
// properties.
func Default() *Config {
	return &Config{
		MerkleDepthFloor: 1,
		MaxThreshold:     64,
	}
}

// Load reads and parses a YAML config file at path, applying environment
// overrides afterward.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("derecconfig: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses YAML bytes into a Config seeded from Default, then
// applies DEREC_MERKLE_DEPTH_FLOOR / DEREC_MAX_THRESHOLD environment
// overrides if set.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("derecconfig: parse: %w", err)
	}
	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("derecconfig: validate: %w", err)
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v, ok := os.LookupEnv("DEREC_MERKLE_DEPTH_FLOOR"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MerkleDepthFloor = n
		}
	}
	if v, ok := os.LookupEnv("DEREC_MAX_THRESHOLD"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxThreshold = n
		}
	}
}

// Validate checks the config for internally inconsistent values.
func (c *Config) Validate() error {
	if c.MerkleDepthFloor < 1 {
		return fmt.Errorf("merkle_depth_floor must be >= 1")
	}
	if c.MaxThreshold < 1 {
		return fmt.Errorf("max_threshold must be >= 1")
	}
	return nil
}
