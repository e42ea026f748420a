package telemetry

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/minions/systems"
)

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float64

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	alife       systems.AlifeEvents
	dropped     int
	reseeded    int
	rigRejected int
	removed     int
}

// Population is a head count at the end of a window.
type Population struct {
	Minions   int
	Resources int
	Spores    int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec, dt float64) *Collector {
	ticksPerWindow := int32(math.Round(windowDurationSec / dt))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}
	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// RecordAlife adds one tick of alife events.
func (c *Collector) RecordAlife(e systems.AlifeEvents) {
	c.alife.Eaten += e.Eaten
	c.alife.Fertilised += e.Fertilised
	c.alife.Spores += e.Spores
	c.alife.Hatched += e.Hatched
	c.alife.Corpses += e.Corpses
	c.alife.Starved += e.Starved
	c.alife.OutOfBound += e.OutOfBound
}

// RecordDropped records agents removed for falling off the world.
func (c *Collector) RecordDropped(n int) { c.dropped += n }

// RecordReseeded records minions spawned from the gene pool.
func (c *Collector) RecordReseeded(n int) { c.reseeded += n }

// RecordRigRejected records an agent whose rig could not be built.
func (c *Collector) RecordRigRejected() { c.rigRejected++ }

// RecordRemoved records agents freed by a sweep.
func (c *Collector) RecordRemoved(n int) { c.removed += n }

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
// energies and segments are sampled from live minions; weights may be nil.
func (c *Collector) Flush(currentTick int32, pop Population, energies, segments []float64, extinctions int) WindowStats {
	mean, std, p10, p50, p90 := ComputeEnergyStats(energies)

	var segMean float64
	if len(segments) > 0 {
		segMean = stat.Mean(segments, nil)
	}

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,

		Minions:   pop.Minions,
		Resources: pop.Resources,
		Spores:    pop.Spores,

		Eaten:       c.alife.Eaten,
		Fertilised:  c.alife.Fertilised,
		SporesLaid:  c.alife.Spores,
		Hatched:     c.alife.Hatched,
		Corpses:     c.alife.Corpses,
		Starved:     c.alife.Starved,
		OutOfBound:  c.alife.OutOfBound,
		Dropped:     c.dropped,
		Reseeded:    c.reseeded,
		RigRejected: c.rigRejected,
		Removed:     c.removed,

		EnergyMean: mean,
		EnergyStd:  std,
		EnergyP10:  p10,
		EnergyP50:  p50,
		EnergyP90:  p90,

		SegmentsMean: segMean,
		Extinctions:  extinctions,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.alife = systems.AlifeEvents{}
	c.dropped = 0
	c.reseeded = 0
	c.rigRejected = 0
	c.removed = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
