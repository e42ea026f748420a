package main

import (
	"github.com/pthm-cable/minions/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Minion energy budget (starvation_threshold locked at 1.0)
			{Name: "initial_energy", Path: "minion.initial_energy", Min: 20, Max: 100, Default: 100},
			{Name: "reproduction_ratio", Path: "minion.reproduction_ratio", Min: 0.4, Max: 0.95, Default: 0.75},
			{Name: "minion_lifespan", Path: "minion.lifespan", Min: 5, Max: 60, Default: 20},
			// Food supply
			{Name: "resource_energy", Path: "resource.energy", Min: 5, Max: 60, Default: 20},
			{Name: "corpse_energy", Path: "resource.corpse_energy", Min: 5, Max: 80, Default: 30},
			{Name: "resource_lifespan", Path: "resource.lifespan", Min: 10, Max: 180, Default: 60},
			{Name: "emitter_period", Path: "world.emitter_period", Min: 0.1, Max: 3.0, Default: 0.5},
			{Name: "emitter_radius", Path: "world.emitter_radius", Min: 2, Max: 20, Default: 6},
			// Spores
			{Name: "spore_lifespan", Path: "spore.lifespan", Min: 1, Max: 20, Default: 8},
			// Locomotion
			{Name: "steering_force", Path: "physics.steering_force", Min: 1, Max: 40, Default: 10},
			{Name: "thrust_scale", Path: "physics.thrust_scale", Min: 0, Max: 10, Default: 3},
			// Evolution
			{Name: "mutation_rate", Path: "genetics.mutation_rate", Min: 0, Max: 0.05, Default: 0.01},
			// Population
			{Name: "max_minions", Path: "population.max_minions", Min: 20, Max: 200, Default: 80},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := v[i]
		if val < spec.Min {
			val = spec.Min
		}
		if val > spec.Max {
			val = spec.Max
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	c := pv.Clamp(values)
	i := 0
	next := func() float64 {
		v := c[i]
		i++
		return v
	}

	cfg.Minion.StarvationThreshold = 1.0
	cfg.Minion.InitialEnergy = next()
	cfg.Minion.ReproductionRatio = next()
	cfg.Minion.Lifespan = next()

	cfg.Resource.Energy = next()
	cfg.Resource.CorpseEnergy = next()
	cfg.Resource.Lifespan = next()
	cfg.World.EmitterPeriod = next()
	cfg.World.EmitterRadius = next()

	cfg.Spore.Lifespan = next()

	cfg.Physics.SteeringForce = next()
	cfg.Physics.ThrustScale = next()

	cfg.Genetics.MutationRate = next()

	cfg.Population.MaxMinions = int(next())
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Minion.InitialEnergy,
		cfg.Minion.ReproductionRatio,
		cfg.Minion.Lifespan,
		cfg.Resource.Energy,
		cfg.Resource.CorpseEnergy,
		cfg.Resource.Lifespan,
		cfg.World.EmitterPeriod,
		cfg.World.EmitterRadius,
		cfg.Spore.Lifespan,
		cfg.Physics.SteeringForce,
		cfg.Physics.ThrustScale,
		cfg.Genetics.MutationRate,
		float64(cfg.Population.MaxMinions),
	}
}
