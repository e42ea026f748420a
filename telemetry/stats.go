package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-" json:"window_start"`
	WindowEndTick   int32   `csv:"window_end" json:"window_end"`
	SimTimeSec      float64 `csv:"sim_time" json:"sim_time"`

	// Population counts at window end
	Minions   int `csv:"minions" json:"minions"`
	Resources int `csv:"resources" json:"resources"`
	Spores    int `csv:"spores" json:"spores"`

	// Events during window, written to their own CSV
	Eaten       int `csv:"-" json:"eaten"`
	Fertilised  int `csv:"-" json:"fertilised"`
	SporesLaid  int `csv:"-" json:"spores_laid"`
	Hatched     int `csv:"-" json:"hatched"`
	Corpses     int `csv:"-" json:"corpses"`
	Starved     int `csv:"-" json:"starved"`
	OutOfBound  int `csv:"-" json:"out_of_bound"`
	Dropped     int `csv:"-" json:"dropped"`
	Reseeded    int `csv:"-" json:"reseeded"`
	RigRejected int `csv:"-" json:"rig_rejected"`
	Removed     int `csv:"-" json:"removed"`

	// Minion energy distribution (sampled at window end)
	EnergyMean float64 `csv:"energy_mean" json:"energy_mean"`
	EnergyStd  float64 `csv:"energy_std" json:"energy_std"`
	EnergyP10  float64 `csv:"energy_p10" json:"energy_p10"`
	EnergyP50  float64 `csv:"energy_p50" json:"energy_p50"`
	EnergyP90  float64 `csv:"energy_p90" json:"energy_p90"`

	// Body plans
	SegmentsMean float64 `csv:"segments_mean" json:"segments_mean"`

	Extinctions int `csv:"extinctions" json:"extinctions"`
}

// EventsRow is one line of the per-window alife events log.
type EventsRow struct {
	WindowEnd  int32   `csv:"window_end"`
	SimTimeSec float64 `csv:"sim_time"`

	Eaten      int `csv:"eaten"`
	Fertilised int `csv:"fertilised"`
	SporesLaid int `csv:"spores_laid"`
	Hatched    int `csv:"hatched"`
	Corpses    int `csv:"corpses"`
	Starved    int `csv:"starved"`
	OutOfBound int `csv:"out_of_bound"`
	Dropped    int `csv:"dropped"`
	Reseeded   int `csv:"reseeded"`
	Removed    int `csv:"removed"`

	RigRejected      int `csv:"rig_rejected"`
	RigRejectedTotal int `csv:"rig_rejected_total"`
}

// EventsRow returns the window's event counters. The running rig
// rejection total is filled in by the writer.
func (s WindowStats) EventsRow() EventsRow {
	return EventsRow{
		WindowEnd:   s.WindowEndTick,
		SimTimeSec:  s.SimTimeSec,
		Eaten:       s.Eaten,
		Fertilised:  s.Fertilised,
		SporesLaid:  s.SporesLaid,
		Hatched:     s.Hatched,
		Corpses:     s.Corpses,
		Starved:     s.Starved,
		OutOfBound:  s.OutOfBound,
		Dropped:     s.Dropped,
		Reseeded:    s.Reseeded,
		Removed:     s.Removed,
		RigRejected: s.RigRejected,
	}
}

// Percentile returns the p-th quantile of an ascending slice.
// p is clamped to [0, 1]; an empty slice gives 0.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation between closest ranks
	idx := p * float64(n-1)
	lo := int(idx)
	if lo+1 >= n {
		return sorted[n-1]
	}
	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[lo+1]*frac
}

// ComputeEnergyStats calculates mean, population standard deviation and
// percentiles from energy values.
func ComputeEnergyStats(values []float64) (mean, std, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0, 0
	}

	mean, std = stat.PopMeanStdDev(values, nil)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)
	return mean, std, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("minions", s.Minions),
		slog.Int("resources", s.Resources),
		slog.Int("spores", s.Spores),
		slog.Int("eaten", s.Eaten),
		slog.Int("fertilised", s.Fertilised),
		slog.Int("spores_laid", s.SporesLaid),
		slog.Int("hatched", s.Hatched),
		slog.Int("corpses", s.Corpses),
		slog.Int("starved", s.Starved),
		slog.Int("out_of_bound", s.OutOfBound),
		slog.Int("dropped", s.Dropped),
		slog.Int("reseeded", s.Reseeded),
		slog.Int("rig_rejected", s.RigRejected),
		slog.Int("removed", s.Removed),
		slog.Float64("energy_mean", s.EnergyMean),
		slog.Float64("energy_std", s.EnergyStd),
		slog.Float64("energy_p10", s.EnergyP10),
		slog.Float64("energy_p50", s.EnergyP50),
		slog.Float64("energy_p90", s.EnergyP90),
		slog.Float64("segments_mean", s.SegmentsMean),
		slog.Int("extinctions", s.Extinctions),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"minions", s.Minions,
		"resources", s.Resources,
		"spores", s.Spores,
		"eaten", s.Eaten,
		"fertilised", s.Fertilised,
		"spores_laid", s.SporesLaid,
		"hatched", s.Hatched,
		"corpses", s.Corpses,
		"starved", s.Starved,
		"out_of_bound", s.OutOfBound,
		"reseeded", s.Reseeded,
		"energy_mean", s.EnergyMean,
		"energy_p50", s.EnergyP50,
		"segments_mean", s.SegmentsMean,
		"extinctions", s.Extinctions,
	)
}
