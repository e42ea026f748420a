// Package main provides CMA-ES optimization for finding simulation parameters
// under which a minion population sustains itself without reseeding.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/minions/config"
	"github.com/pthm-cable/minions/telemetry"
)

// tuner drives the evaluator and keeps the per-generation report.
type tuner struct {
	params    *ParamVector
	evaluator *FitnessEvaluator
	log       *evalLog
	maxEvals  int
	popSize   int

	evals   int
	gen     *generation
	best    EvalReport
	bestRaw []float64
	start   time.Time
}

// objective evaluates a normalized parameter vector and records the result.
func (t *tuner) objective(x []float64) float64 {
	raw := t.params.Clamp(t.params.Denormalize(x))
	fitness := t.evaluator.Evaluate(raw)
	report := t.evaluator.LastReport()
	t.evals++

	if t.bestRaw == nil || fitness < t.best.Fitness {
		t.best = report
		t.bestRaw = append([]float64(nil), raw...)
	}
	if err := t.log.write(t.evals, t.gen.index, report, raw); err != nil {
		log.Printf("eval log: %v", err)
	}

	fmt.Printf("  eval %d/%d: survived=%.0fs quality=%.2f reseeded=%d extinct=%d/%d\n",
		t.evals, t.maxEvals, report.SurvivalSec, report.Quality,
		report.Reseeded, report.Extinct, len(t.evaluator.seeds))

	if t.gen.add(report) {
		elapsed := time.Since(t.start)
		remaining := time.Duration(t.maxEvals-t.evals) * (elapsed / time.Duration(t.evals))
		fmt.Printf("%s | elapsed %s, ETA %s\n", t.gen, formatDuration(elapsed), formatDuration(remaining))
		t.gen = newGeneration(t.gen.index+1, t.popSize)
	}
	return fitness
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	maxTicks := flag.Int("max-ticks", 360000, "Maximum simulation duration in ticks (cap)")
	seeds := flag.Int("seeds", 3, "Number of seeds per evaluation")
	maxEvals := flag.Int("max-evals", 200, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	baseCfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	params := NewParamVector()
	evalSeeds := make([]int64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}

	popSize := *population
	if popSize == 0 {
		popSize = 4 + int(3.0*float64(params.Dim())/2.0)
	}

	logFile, err := os.Create(filepath.Join(*outputDir, "optimize_log.csv"))
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()
	evals, err := newEvalLog(logFile, params)
	if err != nil {
		log.Fatalf("failed to write log header: %v", err)
	}

	t := &tuner{
		params:    params,
		evaluator: NewFitnessEvaluator(params, int32(*maxTicks), evalSeeds, baseCfg),
		log:       evals,
		maxEvals:  *maxEvals,
		popSize:   popSize,
		gen:       newGeneration(0, popSize),
		start:     time.Now(),
	}

	fmt.Printf("Tuning %d parameters: population=%d, max_evals=%d, seeds=%d, max_ticks=%d\n",
		params.Dim(), popSize, *maxEvals, *seeds, *maxTicks)

	problem := optimize.Problem{Func: t.objective}
	settings := &optimize.Settings{FuncEvaluations: *maxEvals}
	method := &optimize.CmaEsChol{InitStepSize: 0.3, Population: popSize}

	result, err := optimize.Minimize(problem, params.Normalize(params.DefaultVector()), settings, method)
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}
	if t.bestRaw == nil && result != nil {
		t.bestRaw = params.Clamp(params.Denormalize(result.X))
	}
	if t.bestRaw == nil {
		log.Fatal("no evaluation completed")
	}

	fmt.Printf("\nDone: %d evaluations in %s\n", t.evals, formatDuration(time.Since(t.start)))
	fmt.Printf("Best: fitness=%.0f survived=%.0fs quality=%.2f reseeded=%d extinct=%d/%d\n",
		t.best.Fitness, t.best.SurvivalSec, t.best.Quality, t.best.Reseeded, t.best.Extinct, *seeds)
	for i, spec := range params.Specs {
		fmt.Printf("  %s: %.6f\n", spec.Name, t.bestRaw[i])
	}

	bestCfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to reload config: %v", err)
	}
	params.ApplyToConfig(bestCfg, t.bestRaw)

	// Config and gene pool go together so the run can be replayed with
	// -config best/config.yaml -gene-pool best/gene_pool.csv
	bestDir := filepath.Join(*outputDir, "best")
	if err := telemetry.SaveRun(bestDir, bestCfg, t.evaluator.BestGenes()); err != nil {
		log.Fatalf("failed to save best run: %v", err)
	}
	fmt.Printf("\nBest run saved to: %s\n", bestDir)
}
