package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"
)

// generation aggregates the evaluations of one CMA-ES population.
type generation struct {
	index       int
	size        int
	evals       int
	bestFitness float64
	survivalSum float64
	reseeded    int
	hatched     int
	extinct     int
}

func newGeneration(index, size int) *generation {
	return &generation{index: index, size: size, bestFitness: math.Inf(1)}
}

// add folds one evaluation in and reports whether the generation is full.
func (g *generation) add(r EvalReport) bool {
	g.evals++
	g.bestFitness = math.Min(g.bestFitness, r.Fitness)
	g.survivalSum += r.SurvivalSec
	g.reseeded += r.Reseeded
	g.hatched += r.Hatched
	g.extinct += r.Extinct
	return g.evals >= g.size
}

func (g *generation) meanSurvival() float64 {
	if g.evals == 0 {
		return 0
	}
	return g.survivalSum / float64(g.evals)
}

func (g *generation) String() string {
	return fmt.Sprintf("gen %d: evals=%d best=%.0f survival=%.0fs reseeded=%d hatched=%d extinct_runs=%d",
		g.index, g.evals, g.bestFitness, g.meanSurvival(), g.reseeded, g.hatched, g.extinct)
}

// evalLog writes one CSV row per evaluation. Parameter columns depend on the
// ParamVector, so rows are built by hand rather than from a tagged struct.
type evalLog struct {
	w *csv.Writer
}

func newEvalLog(out io.Writer, params *ParamVector) (*evalLog, error) {
	l := &evalLog{w: csv.NewWriter(out)}
	header := []string{"eval", "generation", "fitness", "survival_sec", "quality", "reseeded", "hatched", "extinct_runs"}
	for _, spec := range params.Specs {
		header = append(header, spec.Name)
	}
	if err := l.w.Write(header); err != nil {
		return nil, err
	}
	l.w.Flush()
	return l, l.w.Error()
}

func (l *evalLog) write(eval, gen int, r EvalReport, values []float64) error {
	row := []string{
		strconv.Itoa(eval),
		strconv.Itoa(gen),
		strconv.FormatFloat(r.Fitness, 'f', 6, 64),
		strconv.FormatFloat(r.SurvivalSec, 'f', 1, 64),
		strconv.FormatFloat(r.Quality, 'f', 4, 64),
		strconv.Itoa(r.Reseeded),
		strconv.Itoa(r.Hatched),
		strconv.Itoa(r.Extinct),
	}
	for _, v := range values {
		row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
	}
	if err := l.w.Write(row); err != nil {
		return err
	}
	l.w.Flush()
	return l.w.Error()
}

// formatDuration formats a duration as 1h02m03s or 2m03s.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}
