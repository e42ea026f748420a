package game

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/minions/components"
)

// logDrawPerf logs the average time of each draw pass.
func (g *Game) logDrawPerf() {
	total := g.drawPerf.Total()
	attrs := []any{
		"tick", g.tick,
		"fps", g.perfCollector.Stats().FPS,
		"total_us", total.Microseconds(),
	}
	for _, name := range g.drawPerf.SortedNames() {
		attrs = append(attrs, name+"_us", g.drawPerf.Avg(name).Round(time.Microsecond).Microseconds())
	}
	slog.Info("draw_perf", attrs...)
}

// logWorldState logs head counts and minion energy at the current tick.
func (g *Game) logWorldState() {
	var minions, selected int
	var energy float64
	minE, maxE := 0.0, 0.0
	for a := range g.world.Agents(components.KindMinion) {
		if !a.IsActive() {
			continue
		}
		if minions == 0 || a.State.Energy < minE {
			minE = a.State.Energy
		}
		if a.State.Energy > maxE {
			maxE = a.State.Energy
		}
		energy += a.State.Energy
		minions++
		if a.State.Selected {
			selected++
		}
	}
	avg := 0.0
	if minions > 0 {
		avg = energy / float64(minions)
	}

	slog.Info("world",
		"tick", g.tick,
		"minions", minions,
		"resources", g.world.Count(components.KindResource),
		"spores", g.world.Count(components.KindSpore),
		"selected", selected,
		"energy_avg", avg,
		"energy_min", minE,
		"energy_max", maxE,
		"extinctions", g.world.Extinctions(),
		"bodies", g.systems.Physics.HandleCount(),
	)
}
