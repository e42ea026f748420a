package game

import (
	"log/slog"

	"github.com/pthm-cable/minions/components"
	"github.com/pthm-cable/minions/telemetry"
)

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	pop, energies, segments := g.sampleMinions()

	stats := g.collector.Flush(g.tick, pop, energies, segments, g.world.Extinctions())
	perfStats := g.perfCollector.Stats()
	g.lastStats = stats

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
		g.logWorldState()
		if g.drawPerf != nil {
			g.logDrawPerf()
		}
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}

	if g.feed != nil {
		g.feed.Publish(stats)
	}

	bookmarks := g.bookmarkDetector.Check(stats)
	for _, bm := range bookmarks {
		if g.logStats {
			bm.LogBookmark()
		}

		if g.outputManager != nil {
			if err := g.outputManager.WriteBookmark(bm); err != nil {
				slog.Error("failed to write bookmark", "error", err)
			}
		}
	}

	// Keep the gene pool of the population that earned a bookmark
	if len(bookmarks) > 0 && g.outputManager != nil {
		if err := g.outputManager.WriteGenePool(telemetry.GeneRecords(g.world.MinionGenes())); err != nil {
			slog.Error("failed to write gene pool", "error", err)
		}
	}
}

// sampleMinions counts agents per kind and collects minion energy and
// segment counts for the window distributions.
func (g *Game) sampleMinions() (pop telemetry.Population, energies, segments []float64) {
	for a := range g.world.Agents(components.KindMinion) {
		if !a.IsActive() {
			continue
		}
		pop.Minions++
		energies = append(energies, a.State.Energy)
		segments = append(segments, float64(len(a.Segments)))
	}
	pop.Resources = g.world.Count(components.KindResource)
	pop.Spores = g.world.Count(components.KindSpore)
	return pop, energies, segments
}
