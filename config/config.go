// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	World      WorldConfig      `yaml:"world"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Minion     MinionConfig     `yaml:"minion"`
	Resource   ResourceConfig   `yaml:"resource"`
	Spore      SporeConfig      `yaml:"spore"`
	Charge     ChargeConfig     `yaml:"charge"`
	Population PopulationConfig `yaml:"population"`
	Genetics   GeneticsConfig   `yaml:"genetics"`
	Audio      AudioConfig      `yaml:"audio"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds the world extent, centered on the origin.
type WorldConfig struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	Emitters      int     `yaml:"emitters"`       // Resource emitters placed at startup
	EmitterRadius float64 `yaml:"emitter_radius"` // Spawn scatter around an emitter
	EmitterPeriod float64 `yaml:"emitter_period"` // Seconds between emissions per emitter
}

// PhysicsConfig holds rigid-body and steering parameters.
type PhysicsConfig struct {
	DT                 float64    `yaml:"dt"`
	VelocityIterations int        `yaml:"velocity_iterations"`
	PositionIterations int        `yaml:"position_iterations"`
	Gravity            [2]float64 `yaml:"gravity"`
	SteeringForce      float64    `yaml:"steering_force"`    // Magnitude of the pull toward the remote target
	ThrustScale        float64    `yaml:"thrust_scale"`      // Multiplier on the local forward axis
	SteeringSegments   []int      `yaml:"steering_segments"` // Segment indices that steer
	ThrustSegments     []int      `yaml:"thrust_segments"`   // Segment indices that thrust
	DropEnabled        bool       `yaml:"drop_enabled"`
	DropBelow          float64    `yaml:"drop_below"` // Bodies below this y are removed
	Friction           float64    `yaml:"friction"`
	Restitution        float64    `yaml:"restitution"`
	Density            float64    `yaml:"density"`
}

// MinionConfig holds minion energy and reproduction parameters.
type MinionConfig struct {
	InitialEnergy       float64 `yaml:"initial_energy"`
	MaxEnergy           float64 `yaml:"max_energy"`
	Lifespan            float64 `yaml:"lifespan"`             // Seconds between reproduction attempts
	ReproductionRatio   float64 `yaml:"reproduction_ratio"`   // Fraction of max energy spent on a spore
	StarvationThreshold float64 `yaml:"starvation_threshold"` // Energy below this kills the minion
	TrajectoryLength    int     `yaml:"trajectory_length"`
	TorsoRadius         float64 `yaml:"torso_radius"`
	LimbRadius          float64 `yaml:"limb_radius"`
}

// ResourceConfig holds resource parameters.
type ResourceConfig struct {
	Energy       float64 `yaml:"energy"`
	CorpseEnergy float64 `yaml:"corpse_energy"`
	Lifespan     float64 `yaml:"lifespan"`
	Radius       float64 `yaml:"radius"`
	MaxCount     int     `yaml:"max_count"`
}

// SporeConfig holds spore parameters.
type SporeConfig struct {
	Lifespan float64 `yaml:"lifespan"`
	Radius   float64 `yaml:"radius"`
	Energy   float64 `yaml:"energy"`
}

// ChargeConfig holds segment charge filter parameters.
type ChargeConfig struct {
	Tau     float64 `yaml:"tau"`
	Initial float64 `yaml:"initial"`
	Target  float64 `yaml:"target"`
}

// PopulationConfig holds population management parameters.
type PopulationConfig struct {
	Initial    int `yaml:"initial"`
	MinMinions int `yaml:"min_minions"` // Reseed from the gene pool below this
	MaxMinions int `yaml:"max_minions"`
}

// GeneticsConfig holds Dna parameters.
type GeneticsConfig struct {
	DnaBytes     int     `yaml:"dna_bytes"`
	MutationRate float64 `yaml:"mutation_rate"` // Per-bit flip probability on hatch
}

// AudioConfig holds audio cue settings.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	SampleRate int     `yaml:"sample_rate"`
	Volume     float64 `yaml:"volume"` // Exponent for beep/effects.Volume, base 2
}

// TelemetryConfig holds stats window settings.
type TelemetryConfig struct {
	WindowSec  float64 `yaml:"window_sec"`
	FeedBuffer int     `yaml:"feed_buffer"`
}

// DerivedConfig holds values computed from the loaded configuration.
type DerivedConfig struct {
	HalfW, HalfH float64 // Half extents of the world
	DT32         float32 // Physics.DT as float32
	ScreenW32    float32
	ScreenH32    float32
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
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in the file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

func (c *Config) validate() error {
	if c.World.Width <= 0 || c.World.Height <= 0 {
		return fmt.Errorf("world extent must be positive, got %vx%v", c.World.Width, c.World.Height)
	}
	if c.Physics.DT <= 0 {
		return fmt.Errorf("physics.dt must be positive, got %v", c.Physics.DT)
	}
	if c.Charge.Tau <= 0 {
		return fmt.Errorf("charge.tau must be positive, got %v", c.Charge.Tau)
	}
	if c.Genetics.DnaBytes <= 0 {
		return fmt.Errorf("genetics.dna_bytes must be positive, got %d", c.Genetics.DnaBytes)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.HalfW = c.World.Width / 2
	c.Derived.HalfH = c.World.Height / 2
	c.Derived.DT32 = float32(c.Physics.DT)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	if c.Physics.VelocityIterations == 0 {
		c.Physics.VelocityIterations = 8
	}
	if c.Physics.PositionIterations == 0 {
		c.Physics.PositionIterations = 3
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
