package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/minions/systems"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeEnergyStats(t *testing.T) {
	values := []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0}
	mean, std, p10, p50, p90 := ComputeEnergyStats(values)

	// Mean should be 0.55
	if math.Abs(mean-0.55) > 0.001 {
		t.Errorf("mean = %v, want 0.55", mean)
	}

	// Population std of 0.1..1.0 is sqrt(0.0825)
	if math.Abs(std-math.Sqrt(0.0825)) > 0.001 {
		t.Errorf("std = %v, want %v", std, math.Sqrt(0.0825))
	}

	// P10 should be around 0.19
	if math.Abs(p10-0.19) > 0.01 {
		t.Errorf("p10 = %v, want ~0.19", p10)
	}

	// P50 should be around 0.55
	if math.Abs(p50-0.55) > 0.01 {
		t.Errorf("p50 = %v, want ~0.55", p50)
	}

	// P90 should be around 0.91
	if math.Abs(p90-0.91) > 0.01 {
		t.Errorf("p90 = %v, want ~0.91", p90)
	}
}

func TestComputeEnergyStatsEmpty(t *testing.T) {
	mean, std, p10, p50, p90 := ComputeEnergyStats([]float64{})

	if mean != 0 || std != 0 || p10 != 0 || p50 != 0 || p90 != 0 {
		t.Error("empty slice should return all zeros")
	}
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(10, 0.5)
	if got := c.WindowDurationTicks(); got != 20 {
		t.Fatalf("WindowDurationTicks = %d, want 20", got)
	}
	if c.ShouldFlush(19) {
		t.Errorf("ShouldFlush(19) = true before the window ends")
	}
	if !c.ShouldFlush(20) {
		t.Errorf("ShouldFlush(20) = false at the window end")
	}

	c.RecordAlife(systems.AlifeEvents{Eaten: 2, Hatched: 1})
	c.RecordAlife(systems.AlifeEvents{Eaten: 1, Starved: 3, Corpses: 6})
	c.RecordReseeded(4)
	c.RecordRigRejected()
	c.RecordRemoved(5)
	c.RecordDropped(1)

	s := c.Flush(20, Population{Minions: 3, Resources: 7}, []float64{10, 20, 30}, []float64{2, 4}, 1)
	if s.WindowStartTick != 0 || s.WindowEndTick != 20 || s.SimTimeSec != 10 {
		t.Errorf("window = [%d, %d] at %vs, want [0, 20] at 10s", s.WindowStartTick, s.WindowEndTick, s.SimTimeSec)
	}
	if s.Eaten != 3 || s.Hatched != 1 || s.Starved != 3 || s.Corpses != 6 {
		t.Errorf("alife counts = %+v", s)
	}
	if s.Reseeded != 4 || s.RigRejected != 1 || s.Removed != 5 || s.Dropped != 1 {
		t.Errorf("bookkeeping counts = %+v", s)
	}
	if s.EnergyMean != 20 || s.SegmentsMean != 3 || s.Extinctions != 1 {
		t.Errorf("energy mean %v segments mean %v extinctions %d, want 20 3 1", s.EnergyMean, s.SegmentsMean, s.Extinctions)
	}

	// Counters reset for the next window
	next := c.Flush(40, Population{}, nil, nil, 1)
	if next.WindowStartTick != 20 || next.Eaten != 0 || next.Reseeded != 0 || next.RigRejected != 0 {
		t.Errorf("next window not reset: %+v", next)
	}
}
