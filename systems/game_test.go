package systems

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/minions/components"
	"github.com/pthm-cable/minions/genetics"
	"github.com/pthm-cable/minions/world"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestEmittersReleaseResourcesPerPeriod(t *testing.T) {
	w, cfg := newTestWorld(t)
	cfg.Population.MinMinions = 0
	s := NewGameSystem(cfg, rand.New(rand.NewSource(1)))
	s.Init(w)

	period := cfg.World.EmitterPeriod
	tick(s, w, period/2)
	if got := w.Count(components.KindResource); got != 0 {
		t.Fatalf("resources after half a period = %d, want 0", got)
	}
	tick(s, w, period/2)
	if got, want := w.Count(components.KindResource), len(w.Emitters()); got != want {
		t.Fatalf("resources after one period = %d, want %d", got, want)
	}

	for res := range w.Agents(components.KindResource) {
		near := false
		for _, e := range w.Emitters() {
			if r2.Norm(r2.Sub(res.Transform().Position, e.Position)) <= e.Radius+1e-9 {
				near = true
			}
		}
		if !near {
			t.Errorf("resource at %v is not within any emitter", res.Transform().Position)
		}
		if res.State.Energy != cfg.Resource.Energy {
			t.Errorf("resource energy = %v, want %v", res.State.Energy, cfg.Resource.Energy)
		}
	}
}

func TestEmittersRespectMaxCount(t *testing.T) {
	w, cfg := newTestWorld(t)
	cfg.Population.MinMinions = 0
	cfg.Resource.MaxCount = 2
	s := NewGameSystem(cfg, rand.New(rand.NewSource(1)))

	for i := 0; i < 10; i++ {
		tick(s, w, cfg.World.EmitterPeriod)
	}
	if got := w.Count(components.KindResource); got != 2 {
		t.Errorf("resources = %d, want 2", got)
	}
}

func TestExtinctionReseedsFromGenePool(t *testing.T) {
	w, cfg := newTestWorld(t)
	w.SetEmitters(nil)
	pool := []genetics.Dna{dnaWithGender(0, cfg.Genetics.DnaBytes), dnaWithGender(1, cfg.Genetics.DnaBytes)}
	w.SetGenePool(pool)

	s := NewGameSystem(cfg, rand.New(rand.NewSource(1)))
	tick(s, w, testDT)

	if got := w.Extinctions(); got != 1 {
		t.Errorf("extinctions = %d, want 1", got)
	}
	if got := w.Count(components.KindMinion); got != cfg.Population.MinMinions {
		t.Fatalf("minions = %d, want %d", got, cfg.Population.MinMinions)
	}
	if got := s.Reseeded(); got != cfg.Population.MinMinions {
		t.Errorf("Reseeded = %d, want %d", got, cfg.Population.MinMinions)
	}
	for m := range w.Agents(components.KindMinion) {
		if !m.Dna.Equal(pool[0]) && !m.Dna.Equal(pool[1]) {
			t.Errorf("reseeded dna %v not from the pool", m.Dna)
		}
	}

	// A living population is not an extinction
	tick(s, w, testDT)
	if got := w.Extinctions(); got != 1 {
		t.Errorf("extinctions after reseed = %d, want 1", got)
	}
	if got := s.Reseeded(); got != 0 {
		t.Errorf("Reseeded after reseed = %d, want 0", got)
	}
}

func TestExtinctionCountedOnce(t *testing.T) {
	w, cfg := newTestWorld(t)
	cfg.Population.MinMinions = 0
	s := NewGameSystem(cfg, rand.New(rand.NewSource(1)))
	for i := 0; i < 5; i++ {
		tick(s, w, testDT)
	}
	if got := w.Extinctions(); got != 1 {
		t.Errorf("extinctions = %d, want 1", got)
	}
}

func TestAnimationAdvancesClock(t *testing.T) {
	w, _ := newTestWorld(t)
	s := NewAnimationSystem()
	for i := 0; i < 3; i++ {
		tick(s, w, 0.5)
	}
	if got, want := w.Clock(), (world.Clock{Seconds: 1.5, Frames: 3}); got != want {
		t.Errorf("clock = %+v, want %+v", got, want)
	}
}
