// Package scenario describes the two-robot crossing experiments:
// their configuration files and how to turn them into simulations.
//
// Config files are written in TOML, or in YAML when their name ends
// with .yaml or .yml. Keys missing from the file keep their default value.
package scenario

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// AgentConfig holds the parameters of one robot.
type AgentConfig struct {
	Name   string    `toml:"name" yaml:"name"`
	Start  []float64 `toml:"start" yaml:"start"`   // initial position
	Goal   []float64 `toml:"goal" yaml:"goal"`     // fixed target
	Speed  float64   `toml:"speed" yaml:"speed"`   // unit: length/step
	Radius float64   `toml:"radius" yaml:"radius"` // unit: length
}

// Config holds the various parameters required for running a simulation.
type Config struct {
	// Output is either a filename (path) for the HDF5 output file,
	// or the empty string for an interactive OpenGL simulation.
	Output string `toml:"output" yaml:"output"`

	// GeoJSON is an optional path for a GeoJSON export of the paths (2D only).
	GeoJSON string `toml:"geojson" yaml:"geojson"`

	Dim   int `toml:"-" yaml:"-"`         // 2 or 3, set by the default config
	Steps int `toml:"steps" yaml:"steps"` // number of time steps

	Degenerate string `toml:"degenerate" yaml:"degenerate"` // possible values: hold, propagate, fail
	Avoidance  string `toml:"avoidance" yaml:"avoidance"`   // possible values: planar, cross (3D only)
	LogLevel   string `toml:"log_level" yaml:"log_level"`   // possible values: debug, info, warn, error

	// Agents must contain exactly two robots.
	Agents []AgentConfig `toml:"agents" yaml:"agents"`
}

// DefaultConf2D returns the default 2D crossing: two robots swapping
// opposite corners of a 100x100 square.
func DefaultConf2D() *Config {
	return &Config{
		Dim:        2,
		Steps:      100,
		Degenerate: "hold",
		Avoidance:  "planar",
		LogLevel:   "info",
		Agents: []AgentConfig{
			{Name: "robot 1", Start: []float64{0, 0}, Goal: []float64{100, 100}, Speed: 2, Radius: 15},
			{Name: "robot 2", Start: []float64{100, 100}, Goal: []float64{0, 0}, Speed: 2, Radius: 15},
		},
	}
}

// DefaultConf3D returns the default 3D crossing: two robots swapping
// opposite corners of a 100x100x100 cube.
func DefaultConf3D() *Config {
	return &Config{
		Dim:        3,
		Steps:      100,
		Degenerate: "hold",
		Avoidance:  "planar",
		LogLevel:   "info",
		Agents: []AgentConfig{
			{Name: "robot 1", Start: []float64{0, 0, 0}, Goal: []float64{100, 100, 100}, Speed: 2, Radius: 15},
			{Name: "robot 2", Start: []float64{100, 100, 100}, Goal: []float64{0, 0, 0}, Speed: 2, Radius: 15},
		},
	}
}

// ParseConfig parses the config file whose path is provided.
// The file overwrites the parameters of conf, which is then validated.
// A file listing agents must describe both of them entirely.
func ParseConfig(path string, conf *Config) (*Config, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, conf); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	default:
		md, err := toml.DecodeFile(path, conf)
		if err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
		if undec := md.Undecoded(); len(undec) > 0 {
			return nil, fmt.Errorf("parsing config %s: unknown key %q", path, undec[0].String())
		}
	}
	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return conf, nil
}

// Validate checks that the parameters describe a runnable simulation.
func (c *Config) Validate() error {
	if c.Dim != 2 && c.Dim != 3 {
		return fmt.Errorf("dimension must be 2 or 3, got %d", c.Dim)
	}
	if c.Steps < 0 {
		return fmt.Errorf("steps must not be negative, got %d", c.Steps)
	}
	switch c.Degenerate {
	case "hold", "propagate", "fail":
	default:
		return fmt.Errorf("bad degenerate policy %q", c.Degenerate)
	}
	switch c.Avoidance {
	case "planar":
	case "cross":
		if c.Dim != 3 {
			return fmt.Errorf("avoidance %q needs 3 dimensions", c.Avoidance)
		}
	default:
		return fmt.Errorf("bad avoidance type %q", c.Avoidance)
	}
	if c.GeoJSON != "" && c.Dim != 2 {
		return fmt.Errorf("geojson export needs 2 dimensions")
	}
	if len(c.Agents) != 2 {
		return fmt.Errorf("exactly 2 agents required, got %d", len(c.Agents))
	}
	for i, a := range c.Agents {
		if len(a.Start) != c.Dim {
			return fmt.Errorf("agent %d: start must have %d coordinates, got %d", i+1, c.Dim, len(a.Start))
		}
		if len(a.Goal) != c.Dim {
			return fmt.Errorf("agent %d: goal must have %d coordinates, got %d", i+1, c.Dim, len(a.Goal))
		}
		if !(a.Speed > 0) {
			return fmt.Errorf("agent %d: speed must be positive, got %g", i+1, a.Speed)
		}
		if !(a.Radius > 0) {
			return fmt.Errorf("agent %d: radius must be positive, got %g", i+1, a.Radius)
		}
	}
	return nil
}

// Bounds returns the smallest box containing every start and goal,
// widened by the largest radius. min and max have Dim coordinates.
func (c *Config) Bounds() (min, max []float64) {
	min = make([]float64, c.Dim)
	max = make([]float64, c.Dim)
	var r float64
	for i, a := range c.Agents {
		for k := 0; k < c.Dim; k++ {
			lo, hi := a.Start[k], a.Goal[k]
			if lo > hi {
				lo, hi = hi, lo
			}
			if i == 0 || lo < min[k] {
				min[k] = lo
			}
			if i == 0 || hi > max[k] {
				max[k] = hi
			}
		}
		if a.Radius > r {
			r = a.Radius
		}
	}
	for k := range min {
		min[k] -= r
		max[k] += r
	}
	return min, max
}
