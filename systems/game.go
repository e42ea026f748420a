package systems

import (
	"log/slog"
	"math"
	"math/rand"

	"github.com/pthm-cable/minions/components"
	"github.com/pthm-cable/minions/config"
	"github.com/pthm-cable/minions/world"
	"gonum.org/v1/gonum/spatial/r2"
)

// GameSystem keeps the world populated: emitters drop resources on a
// timer, and minions are reseeded from the gene pool when they die out.
type GameSystem struct {
	Base

	cfg *config.Config
	rng *rand.Rand

	emitters []world.Emitter
	timers   []float64
	pending  []int

	resources int
	minions   int
	extinct   bool
	reseeded  int
}

// NewGameSystem creates a game system.
func NewGameSystem(cfg *config.Config, rng *rand.Rand) *GameSystem {
	return &GameSystem{cfg: cfg, rng: rng}
}

// Reseeded returns how many minions the last tick spawned from the gene pool.
func (s *GameSystem) Reseeded() int { return s.reseeded }

// Init picks up the world's emitters.
func (s *GameSystem) Init(w *world.World) {
	s.emitters = append(s.emitters[:0], w.Emitters()...)
	s.timers = make([]float64, len(s.emitters))
	s.pending = make([]int, len(s.emitters))
}

func (s *GameSystem) FromWorld(w *world.World) {
	if len(w.Emitters()) != len(s.emitters) {
		s.Init(w)
	}
	s.resources = countActive(w, components.KindResource)
	s.minions = countActive(w, components.KindMinion)
}

// Update decides how many resources each emitter releases this tick.
func (s *GameSystem) Update(dt float64) {
	budget := s.cfg.Resource.MaxCount - s.resources
	for i, e := range s.emitters {
		s.pending[i] = 0
		if e.Period <= 0 {
			continue
		}
		s.timers[i] += dt
		for s.timers[i] >= e.Period {
			s.timers[i] -= e.Period
			if budget > 0 {
				s.pending[i]++
				budget--
			}
		}
	}
}

func (s *GameSystem) ToWorld(w *world.World) {
	for i, e := range s.emitters {
		for n := 0; n < s.pending[i]; n++ {
			w.NewResource(components.NewTransform(s.scatter(e.Position, e.Radius), 0), s.cfg.Resource.Energy)
		}
	}

	if s.minions == 0 && !s.extinct {
		s.extinct = true
		w.RecordExtinction()
		slog.Info("extinction", "count", w.Extinctions(), "gene_pool", len(w.GenePool()))
	}
	if s.minions > 0 {
		s.extinct = false
	}

	s.reseeded = 0
	for n := s.minions; n < s.cfg.Population.MinMinions; n++ {
		s.reseeded++
		w.NewMinion(s.scatter(r2.Vec{}, math.Min(s.cfg.Derived.HalfW, s.cfg.Derived.HalfH)/2), nil)
	}
}

func (s *GameSystem) scatter(center r2.Vec, radius float64) r2.Vec {
	a := s.rng.Float64() * 2 * math.Pi
	d := radius * math.Sqrt(s.rng.Float64())
	return r2.Add(center, r2.Vec{X: d * math.Cos(a), Y: d * math.Sin(a)})
}
