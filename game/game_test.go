package game

import (
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/minions/components"
	"github.com/pthm-cable/minions/config"
	"github.com/pthm-cable/minions/systems"
	"github.com/pthm-cable/minions/telemetry"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	config.MustInit("")
	cfg := *config.Cfg()
	cfg.Audio.Enabled = false
	cfg.Genetics.MutationRate = 0
	return &cfg
}

func newTestGame(t *testing.T, cfg *config.Config, opts Options) *Game {
	t.Helper()
	opts.Headless = true
	if opts.Seed == 0 {
		opts.Seed = 1
	}
	opts.Config = cfg
	g := NewGameWithOptions(opts)
	t.Cleanup(g.Unload)
	return g
}

// bodiesOf counts the physics bodies tagged with id.
func bodiesOf(g *Game, id components.Id) int {
	n := 0
	for _, b := range g.systems.Physics.Engine().Bodies() {
		if refs, ok := b.Tag().(components.CreatureRefs); ok && refs.AgentID == id {
			n++
		}
	}
	return n
}

func TestSystemsOrder(t *testing.T) {
	cfg := testConfig(t)
	g := newTestGame(t, cfg, Options{})

	ordered := g.systems.Ordered()
	if len(ordered) != len(stepPhases) {
		t.Fatalf("len(Ordered) = %d, want %d", len(ordered), len(stepPhases))
	}
	checks := []func(systems.System) bool{
		func(s systems.System) bool { _, ok := s.(*systems.AnimationSystem); return ok },
		func(s systems.System) bool { _, ok := s.(*systems.AudioSystem); return ok },
		func(s systems.System) bool { _, ok := s.(*systems.GameSystem); return ok },
		func(s systems.System) bool { _, ok := s.(*systems.AiSystem); return ok },
		func(s systems.System) bool { _, ok := s.(*systems.AlifeSystem); return ok },
		func(s systems.System) bool { _, ok := s.(*systems.PhysicsSystem); return ok },
	}
	for i, check := range checks {
		if !check(ordered[i]) {
			t.Errorf("Ordered()[%d] = %T, want the %s system", i, ordered[i], stepPhases[i])
		}
	}
}

func TestInitialPopulationHasRigs(t *testing.T) {
	cfg := testConfig(t)
	cfg.Population.Initial = 5
	g := newTestGame(t, cfg, Options{})

	if got := g.world.Count(components.KindMinion); got != 5 {
		t.Fatalf("minions = %d, want 5", got)
	}
	for a := range g.world.Agents(components.KindMinion) {
		if got, want := bodiesOf(g, a.Id), len(a.Segments); got != want {
			t.Errorf("minion %d has %d bodies, want %d", a.Id, got, want)
		}
	}
}

func TestStepSweepsAndUnregisters(t *testing.T) {
	cfg := testConfig(t)
	cfg.Population.Initial = 3
	g := newTestGame(t, cfg, Options{})

	var id components.Id
	for a := range g.world.Agents(components.KindMinion) {
		id = a.Id
		break
	}
	g.world.Kill(id)
	g.Step(cfg.Physics.DT)

	if g.world.Agent(id) != nil {
		t.Errorf("dead minion %d still in the world", id)
	}
	if n := bodiesOf(g, id); n != 0 {
		t.Errorf("dead minion %d still has %d bodies", id, n)
	}
	if got := g.Tick(); got != 1 {
		t.Errorf("Tick = %d, want 1", got)
	}
}

func TestRejectedRigIsKilledAndSwept(t *testing.T) {
	cfg := testConfig(t)
	cfg.Population.Initial = 2
	g := newTestGame(t, cfg, Options{StatsWindowSec: cfg.Physics.DT})

	var windows []telemetry.WindowStats
	g.SetStatsCallback(func(s telemetry.WindowStats) { windows = append(windows, s) })

	id := g.world.Insert(components.KindResource, components.Agent{})
	g.registerAll()

	a := g.world.Agent(id)
	if a == nil || a.IsActive() {
		t.Fatalf("agent without segments was not killed")
	}

	g.Step(cfg.Physics.DT)
	if g.world.Agent(id) != nil {
		t.Errorf("rejected agent not swept")
	}
	if len(windows) != 1 {
		t.Fatalf("flushed %d windows, want 1", len(windows))
	}
	if got := windows[0].RigRejected; got != 1 {
		t.Errorf("RigRejected = %d, want 1", got)
	}
	if got := windows[0].Removed; got < 1 {
		t.Errorf("Removed = %d, want at least 1", got)
	}
}

func TestSpawnedMinionGetsRigImmediately(t *testing.T) {
	cfg := testConfig(t)
	cfg.Population.Initial = 0
	g := newTestGame(t, cfg, Options{})

	id := g.spawnMinion(r2.Vec{X: 3, Y: -2}, true)
	a := g.world.Agent(id)
	if a == nil {
		t.Fatalf("spawned minion missing")
	}
	if got, want := bodiesOf(g, id), len(a.Segments); got != want {
		t.Errorf("bodies = %d, want %d", got, want)
	}
}

func TestTelemetryWindows(t *testing.T) {
	cfg := testConfig(t)
	var windows []telemetry.WindowStats
	g := newTestGame(t, cfg, Options{
		StatsWindowSec: 3 * cfg.Physics.DT,
		StatsCallback:  func(s telemetry.WindowStats) { windows = append(windows, s) },
	})

	for i := 0; i < 7; i++ {
		g.Step(cfg.Physics.DT)
	}
	if len(windows) != 2 {
		t.Fatalf("flushed %d windows, want 2", len(windows))
	}
	tests := []struct{ start, end int32 }{{0, 3}, {3, 6}}
	for i, tt := range tests {
		if windows[i].WindowStartTick != tt.start || windows[i].WindowEndTick != tt.end {
			t.Errorf("window %d = [%d, %d], want [%d, %d]", i,
				windows[i].WindowStartTick, windows[i].WindowEndTick, tt.start, tt.end)
		}
	}
	if got := g.LastStats().WindowEndTick; got != 6 {
		t.Errorf("LastStats().WindowEndTick = %d, want 6", got)
	}
}

func TestGenePoolDumpAndLoad(t *testing.T) {
	cfg := testConfig(t)
	cfg.Population.Initial = 4
	path := filepath.Join(t.TempDir(), "pool.csv")

	g := newTestGame(t, cfg, Options{GenePoolPath: path})
	if err := g.DumpGenePool(); err != nil {
		t.Fatalf("DumpGenePool: %v", err)
	}

	g2 := newTestGame(t, cfg, Options{GenePoolPath: path, Seed: 99})
	pool := g2.world.GenePool()
	if len(pool) != 4 {
		t.Fatalf("loaded pool = %d entries, want 4", len(pool))
	}
	for a := range g2.world.Agents(components.KindMinion) {
		found := false
		for _, dna := range pool {
			if a.Dna.Equal(dna) {
				found = true
			}
		}
		if !found {
			t.Errorf("minion %d dna %v not from the loaded pool", a.Id, a.Dna)
		}
	}
}

func TestDumpGenePoolWithoutPath(t *testing.T) {
	cfg := testConfig(t)
	g := newTestGame(t, cfg, Options{})
	if err := g.DumpGenePool(); err == nil {
		t.Errorf("DumpGenePool without a path succeeded")
	}
}

func TestOutputDirReceivesFiles(t *testing.T) {
	cfg := testConfig(t)
	dir := t.TempDir()
	g := NewGameWithOptions(Options{Config: cfg, Headless: true, Seed: 1, OutputDir: dir, StatsWindowSec: cfg.Physics.DT})

	g.Step(cfg.Physics.DT)
	g.Unload()

	for _, name := range []string{
		telemetry.ConfigFile, telemetry.PopulationFile, telemetry.EventsFile,
		telemetry.PerfFile, telemetry.GenePoolFile,
	} {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", name)
		}
	}
}

func TestSelectionIgnoresNearerResource(t *testing.T) {
	cfg := testConfig(t)
	cfg.Population.Initial = 0
	g := newTestGame(t, cfg, Options{})

	minion := g.spawnMinion(r2.Vec{}, true)
	res := g.world.NewResource(components.NewTransform(r2.Vec{X: 1}, 0), 10)
	g.registerAll()
	if bodiesOf(g, res) == 0 {
		t.Fatalf("resource has no body")
	}

	// The click lands on the resource; the minion's root is still in reach
	if !g.toggleSelectionAt(r2.Vec{X: 0.9}) {
		t.Fatalf("toggleSelectionAt found nothing")
	}
	if !g.world.Agent(minion).State.Selected {
		t.Errorf("minion not selected")
	}
	if g.world.Agent(res).State.Selected {
		t.Errorf("resource selected")
	}
}
