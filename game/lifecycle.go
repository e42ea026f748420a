package game

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/minions/components"
	"github.com/pthm-cable/minions/telemetry"
)

// spawnInitialPopulation places the starting minions at random positions
// and builds their rigs. Dna comes from the gene pool when one is loaded.
func (g *Game) spawnInitialPopulation() {
	ext := g.world.Extent()
	margin := 0.1
	w := ext.Max.X - ext.Min.X
	h := ext.Max.Y - ext.Min.Y
	for i := 0; i < g.cfg.Population.Initial; i++ {
		pos := r2.Vec{
			X: ext.Min.X + w*(margin+(1-2*margin)*g.rng.Float64()),
			Y: ext.Min.Y + h*(margin+(1-2*margin)*g.rng.Float64()),
		}
		g.world.NewMinion(pos, nil)
	}
	g.registerAll()
}

// cleanup removes dead agents and tells every system to forget them.
func (g *Game) cleanup() {
	freed := g.world.Sweep()
	if len(freed) == 0 {
		return
	}
	ordered := g.systems.Ordered()
	for _, id := range freed {
		for _, s := range ordered {
			s.Unregister(id)
		}
	}
	g.collector.RecordRemoved(len(freed))
}

// registerAll hands agents created since the last call to every system.
// An agent a system refuses is killed and goes at the next sweep.
func (g *Game) registerAll() {
	ordered := g.systems.Ordered()
	for _, id := range g.world.Registered() {
		a := g.world.Agent(id)
		if a == nil {
			continue
		}
		for _, s := range ordered {
			if err := s.Register(a); err != nil {
				slog.Warn("rig_rejected", "agent", id, "kind", a.Kind.String(), "error", err)
				g.world.Kill(id)
				g.collector.RecordRigRejected()
				break
			}
		}
	}
}

// spawnMinion creates a minion at pos and registers it immediately so it
// shows up while paused. random ignores the gene pool.
func (g *Game) spawnMinion(pos r2.Vec, random bool) components.Id {
	var id components.Id
	if random {
		id = g.world.RandomizeMinion(pos)
	} else {
		id = g.world.NewMinion(pos, nil)
	}
	g.registerAll()
	return id
}

// DumpGenePool writes the Dna of every live minion to the gene pool file.
func (g *Game) DumpGenePool() error {
	if g.genePoolPath == "" {
		return fmt.Errorf("dumping gene pool: no path configured")
	}
	records := telemetry.GeneRecords(g.world.MinionGenes())
	if err := telemetry.SaveGenePool(g.genePoolPath, records); err != nil {
		return err
	}
	slog.Info("gene_pool_saved", "path", g.genePoolPath, "minions", len(records), "tick", g.tick)
	return nil
}

// LoadGenePool replaces the world's gene pool with the file at path.
func (g *Game) LoadGenePool(path string) error {
	pool, err := telemetry.LoadGenePool(path)
	if err != nil {
		return err
	}
	g.world.SetGenePool(pool)
	slog.Info("gene_pool_loaded", "path", path, "entries", len(pool))
	return nil
}
