package game

import (
	"sort"
	"time"
)

// Draw pass names.
const (
	DrawBackground = "background"
	DrawAgents     = "agents"
	DrawOverlays   = "overlays"
	DrawLight      = "light"
	DrawUI         = "ui"
)

// DrawPerf tracks how long each draw pass takes over recent frames.
type DrawPerf struct {
	samples    map[string][]time.Duration
	maxSamples int
}

// NewDrawPerf creates a draw pass tracker.
func NewDrawPerf() *DrawPerf {
	return &DrawPerf{
		samples:    make(map[string][]time.Duration),
		maxSamples: 120, // ~2 seconds of frames at 60fps
	}
}

// Measure runs fn and records its duration under name.
func (p *DrawPerf) Measure(name string, fn func()) {
	start := time.Now()
	fn()
	p.Record(name, time.Since(start))
}

// Record adds a duration sample for the named pass.
func (p *DrawPerf) Record(name string, d time.Duration) {
	s := append(p.samples[name], d)
	if len(s) > p.maxSamples {
		s = s[1:]
	}
	p.samples[name] = s
}

// Avg returns the average duration for the named pass.
func (p *DrawPerf) Avg(name string) time.Duration {
	s := p.samples[name]
	if len(s) == 0 {
		return 0
	}
	var total time.Duration
	for _, d := range s {
		total += d
	}
	return total / time.Duration(len(s))
}

// Total returns the sum of all average durations.
func (p *DrawPerf) Total() time.Duration {
	var total time.Duration
	for name := range p.samples {
		total += p.Avg(name)
	}
	return total
}

// SortedNames returns pass names sorted by average duration (descending).
func (p *DrawPerf) SortedNames() []string {
	names := make([]string, 0, len(p.samples))
	for name := range p.samples {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return p.Avg(names[i]) > p.Avg(names[j])
	})
	return names
}
