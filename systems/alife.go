package systems

import (
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/minions/components"
	"github.com/pthm-cable/minions/config"
	"github.com/pthm-cable/minions/genetics"
	"github.com/pthm-cable/minions/traits"
	"github.com/pthm-cable/minions/world"
)

// Spawn is a deferred agent creation.
type Spawn struct {
	Transform components.Transform
	Dna       genetics.Dna
}

// AlifeEvents counts what happened during one ToWorld.
type AlifeEvents struct {
	Eaten      int
	Fertilised int
	Spores     int
	Hatched    int
	Corpses    int
	Starved    int
	OutOfBound int
}

// AlifeSystem simulates energy, contacts and reproduction for minions,
// resources and spores.
type AlifeSystem struct {
	Base

	cfg config.MinionConfig
	rng *rand.Rand
	dt  float64

	// Rebuilt every tick in FromWorld
	eaten   map[components.Id]components.State
	touched map[components.Id]genetics.Dna

	events AlifeEvents
}

// NewAlifeSystem creates an alife system. rng drives crossover.
func NewAlifeSystem(cfg config.MinionConfig, rng *rand.Rand) *AlifeSystem {
	return &AlifeSystem{
		cfg:     cfg,
		rng:     rng,
		dt:      1.0 / 60,
		eaten:   make(map[components.Id]components.State),
		touched: make(map[components.Id]genetics.Dna),
	}
}

// Events returns the counts from the last ToWorld.
func (s *AlifeSystem) Events() AlifeEvents { return s.events }

// FromWorld finds resources eaten by minion mouths and spores touched by
// minions of the other gender.
func (s *AlifeSystem) FromWorld(w *world.World) {
	s.eaten = findEatenResources(w)
	s.touched = findTouchedSpores(w)
}

func findEatenResources(w *world.World) map[components.Id]components.State {
	eaten := make(map[components.Id]components.State)
	for minion := range w.Agents(components.KindMinion) {
		if !minion.IsActive() {
			continue
		}
		for i := range minion.Segments {
			seg := &minion.Segments[i]
			if !seg.Flags.Has(traits.Mouth) {
				continue
			}
			refs, ok := seg.State.Touched()
			if !ok {
				continue
			}
			res := w.Agent(refs.AgentID)
			if res == nil || res.Kind != components.KindResource || !res.IsActive() {
				continue
			}
			eaten[refs.AgentID] = res.State
		}
	}
	return eaten
}

// findTouchedSpores is keyed by the touching minion's id.
func findTouchedSpores(w *world.World) map[components.Id]genetics.Dna {
	touched := make(map[components.Id]genetics.Dna)
	for spore := range w.Agents(components.KindSpore) {
		if !spore.IsActive() || spore.State.Fertilised {
			continue
		}
		for i := range spore.Segments {
			refs, ok := spore.Segments[i].State.Touched()
			if !ok {
				continue
			}
			minion := w.Agent(refs.AgentID)
			if minion == nil || minion.Kind != components.KindMinion {
				continue
			}
			if minion.Gender() != spore.Gender() {
				touched[refs.AgentID] = minion.Dna.Clone()
			}
		}
	}
	return touched
}

// Update stores the tick length.
func (s *AlifeSystem) Update(dt float64) {
	s.dt = dt
}

// ToWorld runs resources, minions and spores in that order, then applies the
// deferred spawns.
func (s *AlifeSystem) ToWorld(w *world.World) {
	s.events = AlifeEvents{}

	s.updateResources(w)
	spores, corpses := s.updateMinions(w)
	hatch := s.updateSpores(w)

	for _, sp := range spores {
		w.NewSpore(sp.Transform, sp.Dna)
	}
	for _, h := range hatch {
		w.HatchSpore(h.Transform, h.Dna)
	}
	for _, c := range corpses {
		w.DecayToResource(c.Transform, c.Dna)
	}

	s.events.Spores = len(spores)
	s.events.Hatched = len(hatch)
	s.events.Corpses = len(corpses)
}

func (s *AlifeSystem) updateResources(w *world.World) {
	dt := s.dt
	for res := range w.Agents(components.KindResource) {
		if !res.IsActive() {
			continue
		}
		res.State.Lifecycle.Tick(dt)
		switch {
		case s.wasEaten(res.Id):
			res.Die()
			s.events.Eaten++
		case res.State.Energy <= 0, res.State.Lifecycle.IsExpired():
			res.Die()
		default:
			for i := range res.Segments {
				res.Segments[i].State.Update(dt)
			}
		}
	}
}

func (s *AlifeSystem) wasEaten(id components.Id) bool {
	_, ok := s.eaten[id]
	return ok
}

func (s *AlifeSystem) updateMinions(w *world.World) (spores, corpses []Spawn) {
	dt := s.dt
	for m := range w.Agents(components.KindMinion) {
		if !m.IsActive() {
			continue
		}
		m.State.Lifecycle.Tick(dt)

		if !s.insideExtent(w, m) {
			m.Die()
			s.events.OutOfBound++
			continue
		}

		for i := range m.Segments {
			seg := &m.Segments[i]
			if seg.Flags.Has(traits.Mouth) {
				if refs, ok := seg.State.Touched(); ok {
					if res, ok := s.eaten[refs.AgentID]; ok {
						m.State.Absorb(res.Energy)
					}
				}
			}
			m.State.Consume(dt * seg.State.Charge * seg.Mesh.Shape.Radius)
			seg.State.Update(dt)
		}

		if m.State.Energy < s.cfg.StarvationThreshold {
			for i := range m.Segments {
				if m.Segments[i].Flags.Has(traits.Storage) {
					corpses = append(corpses, Spawn{Transform: m.Segments[i].Transform, Dna: m.Dna.Clone()})
				}
			}
			m.Die()
			s.events.Starved++
			continue
		}

		if m.State.Lifecycle.IsExpired() && m.State.ConsumeRatio(s.cfg.ReproductionRatio) {
			if last := m.LastSegment(); last != nil {
				spores = append(spores, Spawn{Transform: last.Transform, Dna: m.Dna.Clone()})
			}
			m.State.Renew()
		}

		if i := m.FirstSegment(traits.Tracker); i >= 0 {
			m.State.TrackPosition(m.Segments[i].Transform.Position)
		}
	}
	return spores, corpses
}

func (s *AlifeSystem) insideExtent(w *world.World, a *components.Agent) bool {
	for i := range a.Segments {
		if !w.Contains(a.Segments[i].Transform.Position) {
			return false
		}
	}
	return true
}

func (s *AlifeSystem) updateSpores(w *world.World) []Spawn {
	dt := s.dt
	var hatch []Spawn
	for spore := range w.Agents(components.KindSpore) {
		if !spore.IsActive() {
			continue
		}
		spore.State.Lifecycle.Tick(dt)

		if spore.State.Lifecycle.IsExpired() {
			spore.Die()
			hatch = append(hatch, Spawn{
				Transform: spore.Transform(),
				Dna:       Crossover(s.rng, spore.Dna, spore.State.ForeignDna),
			})
			continue
		}

		for i := range spore.Segments {
			refs, ok := spore.Segments[i].State.Touched()
			if !ok {
				continue
			}
			dna, ok := s.touched[refs.AgentID]
			if !ok || dna.Gender() == spore.Gender() {
				continue
			}
			if spore.State.Fertilise(dna) {
				s.events.Fertilised++
				slog.Debug("fertilised", "spore", spore.Id, "by", refs.AgentID, "dna", dna.String())
			}
		}
		for i := range spore.Segments {
			spore.Segments[i].State.Update(dt)
		}
	}
	return hatch
}

// Crossover returns the offspring Dna of a spore. Without foreign Dna the
// offspring is a clone of the spore's own.
func Crossover(rng *rand.Rand, dna, foreign genetics.Dna) genetics.Dna {
	if foreign == nil {
		return dna.Clone()
	}
	return genetics.NewGenome(foreign).Crossover(rng, dna).Dna()
}
