package main

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/minions/components"
	"github.com/pthm-cable/minions/config"
	"github.com/pthm-cable/minions/game"
	"github.com/pthm-cable/minions/telemetry"
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTicks    int32
	seeds       []int64
	baseConfig  *config.Config
	statsWindow float64

	// Best run tracking
	mu          sync.Mutex
	bestFitness float64
	bestGenes   []telemetry.GeneRecord
	last        EvalReport
}

// EvalReport summarises one Evaluate call across its seeds.
type EvalReport struct {
	Fitness     float64
	SurvivalSec float64 // mean over seeds
	Quality     float64 // mean over seeds
	Reseeded    int     // minions drawn from the gene pool, all seeds
	Hatched     int     // spores hatched, all seeds
	Extinct     int     // seeds that ended before maxTicks
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		statsWindow: 10.0, // 10 seconds per window
		bestFitness: math.Inf(1),
	}
}

// BestGenes returns the minion gene pool left by the best evaluation.
func (fe *FitnessEvaluator) BestGenes() []telemetry.GeneRecord {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestGenes
}

// LastReport returns the summary of the most recent evaluation.
func (fe *FitnessEvaluator) LastReport() EvalReport {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.last
}

// Minimum viable population: if minions stay below this for
// extinctionGraceSec, the run counts as functionally extinct.
const (
	minViablePop       = 3
	extinctionGraceSec = 30.0
)

// runResult holds the results from a single simulation run.
type runResult struct {
	survivalTicks int32                   // ticks before extinction (or maxTicks if survived)
	windowStats   []telemetry.WindowStats // collected via StatsCallback each window
	genes         []telemetry.GeneRecord
	extinct       bool
}

// reseeded sums gene pool reseeds over the collected windows.
func (r *runResult) reseeded() int {
	n := 0
	for _, w := range r.windowStats {
		n += w.Reseeded
	}
	return n
}

// hatched sums hatched spores over the collected windows.
func (r *runResult) hatched() int {
	n := 0
	for _, w := range r.windowStats {
		n += w.Hatched
	}
	return n
}

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	fitness float64
	quality float64
	run     *runResult
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Fitness is negative survival ticks: longer survival = lower (better) fitness.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			result := fe.runSimulation(x, s)
			results[idx] = seedResult{
				fitness: fe.computeFitness(result),
				quality: computeQuality(result.windowStats),
				run:     result,
			}
		}(i, seed)
	}
	wg.Wait()

	report, bestSeedGenes := summarise(results, fe.baseConfig.Physics.DT)

	fe.mu.Lock()
	if report.Fitness < fe.bestFitness {
		fe.bestFitness = report.Fitness
		fe.bestGenes = bestSeedGenes
	}
	fe.last = report
	fe.mu.Unlock()

	return report.Fitness
}

// summarise averages seed results into a report and picks the gene pool
// of the best seed.
func summarise(results []seedResult, dt float64) (EvalReport, []telemetry.GeneRecord) {
	var report EvalReport
	if len(results) == 0 {
		return report, nil
	}
	bestSeedFitness := math.Inf(1)
	var bestSeedGenes []telemetry.GeneRecord

	for _, r := range results {
		report.Fitness += r.fitness
		report.Quality += r.quality
		report.SurvivalSec += float64(r.run.survivalTicks) * dt
		report.Reseeded += r.run.reseeded()
		report.Hatched += r.run.hatched()
		if r.run.extinct {
			report.Extinct++
		}
		if r.fitness < bestSeedFitness {
			bestSeedFitness = r.fitness
			bestSeedGenes = r.run.genes
		}
	}

	n := float64(len(results))
	report.Fitness /= n
	report.Quality /= n
	report.SurvivalSec /= n
	return report, bestSeedGenes
}

// runSimulation executes a single headless simulation run.
// Runs until the first extinction, functional extinction or maxTicks.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) *runResult {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	result := &runResult{}

	g := game.NewGameWithOptions(game.Options{
		Seed:           seed,
		Headless:       true,
		StatsWindowSec: fe.statsWindow,
		StepsPerUpdate: 1,
		Config:         cfg,
		StatsCallback: func(stats telemetry.WindowStats) {
			result.windowStats = append(result.windowStats, stats)
		},
	})
	defer g.Unload()

	dt := cfg.Physics.DT
	var belowSec float64

	// Let the population establish before checking (skip first 5 sim-seconds)
	warmupTicks := int32(5.0 / dt)

	finish := func(tick int32, extinct bool) *runResult {
		result.survivalTicks = tick
		result.extinct = extinct
		result.genes = telemetry.GeneRecords(g.World().MinionGenes())
		return result
	}

	for g.Tick() < fe.maxTicks {
		g.UpdateHeadless()

		tick := g.Tick()
		if tick < warmupTicks {
			continue
		}

		// Hard extinction: the gene pool had to step in
		if g.World().Extinctions() > 0 {
			return finish(tick, true)
		}

		if g.World().Count(components.KindMinion) < minViablePop {
			belowSec += dt
		} else {
			belowSec = 0
		}
		if belowSec >= extinctionGraceSec {
			return finish(tick, true)
		}
	}

	return finish(fe.maxTicks, false)
}

// copyConfig creates a copy of the base config. Slices are cloned so
// parallel runs never share backing arrays.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	cfg.Physics.SteeringSegments = append([]int(nil), fe.baseConfig.Physics.SteeringSegments...)
	cfg.Physics.ThrustSegments = append([]int(nil), fe.baseConfig.Physics.ThrustSegments...)
	return &cfg
}

// computeFitness calculates the scalar fitness (lower = better).
// Formula: -(survivalTicks × (1.0 + 0.2 × quality))
// Survival dominates; quality adds up to 20% to separate configs with
// similar survival.
func (fe *FitnessEvaluator) computeFitness(r *runResult) float64 {
	survival := float64(r.survivalTicks)
	quality := computeQuality(r.windowStats)
	return -(survival * (1.0 + 0.2*quality))
}

// Quality component weights.
const (
	qualityWeightStability = 0.30
	qualityWeightEnergy    = 0.25
	qualityWeightHatching  = 0.25
	qualityWeightSelfMade  = 0.20

	qualityWarmupWindows = 3 // skip first N windows (warmup)
	qualityMinPop        = 3 // exclude windows with fewer minions
)

// computeQuality computes ecosystem quality ∈ [0, 1] from window stats.
func computeQuality(windows []telemetry.WindowStats) float64 {
	if len(windows) <= qualityWarmupWindows {
		return 0
	}
	valid := windows[qualityWarmupWindows:]

	var energySum, hatchSum, selfSum float64
	counts := make([]float64, 0, len(valid))

	for _, w := range valid {
		if w.Minions < qualityMinPop {
			continue
		}
		counts = append(counts, float64(w.Minions))

		// Median energy near 50 is healthy
		energySum += math.Exp(-math.Pow((w.EnergyP50-50)/25, 2))

		// Spores hatching per minion
		hatchSum += 1 - math.Exp(-float64(w.Hatched)/float64(w.Minions))

		// No reseeding from the gene pool
		if w.Reseeded == 0 {
			selfSum++
		}
	}

	if len(counts) == 0 {
		return 0
	}
	n := float64(len(counts))

	stabilityScore := 0.0
	if len(counts) >= 2 {
		c := cv(counts)
		stabilityScore = math.Exp(-c * c)
	}

	quality := qualityWeightStability*stabilityScore +
		qualityWeightEnergy*energySum/n +
		qualityWeightHatching*hatchSum/n +
		qualityWeightSelfMade*selfSum/n

	return clamp01(quality)
}

// cv computes the coefficient of variation (std/mean) for a slice of values.
func cv(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean, std := stat.PopMeanStdDev(values, nil)
	if mean == 0 {
		return 0
	}
	return std / mean
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
