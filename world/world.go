// Package world owns the agent registries and is the single mutation point shared by all systems.
package world

import (
	"iter"
	"math"
	"math/rand"
	"slices"

	"github.com/mlange-42/ark/ecs"
	"github.com/pthm-cable/minions/components"
	"github.com/pthm-cable/minions/config"
	"github.com/pthm-cable/minions/genetics"
	"gonum.org/v1/gonum/spatial/r2"
)

// Emitter is a source around which resources appear.
type Emitter struct {
	Position r2.Vec
	Radius   float64
	Period   float64
}

// Clock is the animation clock of the world.
type Clock struct {
	Seconds float64
	Frames  uint64
}

// World owns every agent, one ark registry per kind.
//
// Pointers returned by Agent and Agents stay valid until the next
// structural change (spawn or sweep). Spawning while an Agents iteration
// is open panics, so callers collect spawns and apply them afterwards.
type World struct {
	cfg *config.Config
	rng *rand.Rand

	ecs       *ecs.World
	agentMap  *ecs.Map1[components.Agent]
	minionMap *ecs.Map2[components.Agent, components.Minion]
	resMap    *ecs.Map2[components.Agent, components.Resource]
	sporeMap  *ecs.Map2[components.Agent, components.Spore]
	filters   [len(components.Kinds)]*ecs.Filter1[components.Agent]
	all       *ecs.Filter1[components.Agent]

	index      map[components.Id]ecs.Entity
	nextID     components.Id
	registered []components.Id

	extent      r2.Box
	emitters    []Emitter
	clock       Clock
	extinctions int

	genePool   []genetics.Dna
	poolCursor int
}

// New creates an empty world sized from cfg, with emitters spread across it.
func New(cfg *config.Config, rng *rand.Rand) *World {
	w := ecs.NewWorld()
	world := &World{
		cfg:       cfg,
		rng:       rng,
		ecs:       w,
		agentMap:  ecs.NewMap1[components.Agent](w),
		minionMap: ecs.NewMap2[components.Agent, components.Minion](w),
		resMap:    ecs.NewMap2[components.Agent, components.Resource](w),
		sporeMap:  ecs.NewMap2[components.Agent, components.Spore](w),
		all:       ecs.NewFilter1[components.Agent](w),
		index:     make(map[components.Id]ecs.Entity),
		nextID:    1,
		extent: r2.Box{
			Min: r2.Vec{X: -cfg.Derived.HalfW, Y: -cfg.Derived.HalfH},
			Max: r2.Vec{X: cfg.Derived.HalfW, Y: cfg.Derived.HalfH},
		},
	}
	world.filters[components.KindMinion] = ecs.NewFilter1[components.Agent](w).With(ecs.C[components.Minion]())
	world.filters[components.KindResource] = ecs.NewFilter1[components.Agent](w).With(ecs.C[components.Resource]())
	world.filters[components.KindSpore] = ecs.NewFilter1[components.Agent](w).With(ecs.C[components.Spore]())

	// Emitters on a ring at half the smaller half-extent
	n := cfg.World.Emitters
	ring := math.Min(cfg.Derived.HalfW, cfg.Derived.HalfH) / 2
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		world.emitters = append(world.emitters, Emitter{
			Position: r2.Vec{X: ring * math.Cos(a), Y: ring * math.Sin(a)},
			Radius:   cfg.World.EmitterRadius,
			Period:   cfg.World.EmitterPeriod,
		})
	}
	return world
}

// Config returns the configuration the world was built with.
func (w *World) Config() *config.Config { return w.cfg }

// Rand returns the world's random source.
func (w *World) Rand() *rand.Rand { return w.rng }

// Extent returns the world bounds.
func (w *World) Extent() r2.Box { return w.extent }

// Contains reports whether p lies inside the extent, borders included.
func (w *World) Contains(p r2.Vec) bool {
	return p.X >= w.extent.Min.X && p.X <= w.extent.Max.X &&
		p.Y >= w.extent.Min.Y && p.Y <= w.extent.Max.Y
}

// Emitters returns the resource emitters.
func (w *World) Emitters() []Emitter { return w.emitters }

// SetEmitters replaces the emitters.
func (w *World) SetEmitters(e []Emitter) { w.emitters = e }

// Clock returns the animation clock.
func (w *World) Clock() Clock { return w.clock }

// AdvanceClock moves the animation clock forward by one frame of dt seconds.
func (w *World) AdvanceClock(dt float64) {
	w.clock.Seconds += dt
	w.clock.Frames++
}

// Extinctions returns how many times the minion population died out.
func (w *World) Extinctions() int { return w.extinctions }

// RecordExtinction counts a minion extinction.
func (w *World) RecordExtinction() { w.extinctions++ }

func (w *World) spawn(kind components.AgentKind, agent components.Agent) components.Id {
	id := w.nextID
	w.nextID++
	agent.Id = id
	agent.Kind = kind

	var e ecs.Entity
	switch kind {
	case components.KindMinion:
		e = w.minionMap.NewEntity(&agent, &components.Minion{})
	case components.KindResource:
		e = w.resMap.NewEntity(&agent, &components.Resource{})
	case components.KindSpore:
		e = w.sporeMap.NewEntity(&agent, &components.Spore{})
	}
	w.index[id] = e
	w.registered = append(w.registered, id)
	return id
}

// Insert adds a prebuilt agent of the given kind and returns its new id.
// The agent's Id field is overwritten.
func (w *World) Insert(kind components.AgentKind, agent components.Agent) components.Id {
	return w.spawn(kind, agent)
}

// NewMinion creates a minion at pos. A nil dna takes the next gene pool
// entry, or random Dna when the pool is empty.
func (w *World) NewMinion(pos r2.Vec, dna genetics.Dna) components.Id {
	if dna == nil {
		dna = w.nextFromPool()
	} else {
		dna = dna.Clone()
	}
	return w.newMinion(components.NewTransform(pos, w.rng.Float64()*2*math.Pi), dna)
}

// RandomizeMinion creates a minion with random Dna at pos.
func (w *World) RandomizeMinion(pos r2.Vec) components.Id {
	return w.NewMinion(pos, genetics.Random(w.rng, w.cfg.Genetics.DnaBytes))
}

func (w *World) newMinion(t components.Transform, dna genetics.Dna) components.Id {
	mc := w.cfg.Minion
	state := components.NewState(mc.InitialEnergy, mc.MaxEnergy, mc.Lifespan, dna.Gender())
	state.Trajectory = components.NewTrajectory(mc.TrajectoryLength)
	return w.spawn(components.KindMinion, components.Agent{
		Segments: BuildMinion(t.Position, t.Angle, dna, w.cfg),
		State:    state,
		Dna:      dna,
	})
}

// NewResource creates a resource holding energy at t.
func (w *World) NewResource(t components.Transform, energy float64) components.Id {
	rc := w.cfg.Resource
	return w.spawn(components.KindResource, components.Agent{
		Segments: BuildBall(t, rc.Radius, w.cfg),
		State:    components.NewState(energy, energy, rc.Lifespan, 0),
	})
}

// NewSpore creates a spore carrying dna at t.
func (w *World) NewSpore(t components.Transform, dna genetics.Dna) components.Id {
	sc := w.cfg.Spore
	return w.spawn(components.KindSpore, components.Agent{
		Segments: BuildBall(t, sc.Radius, w.cfg),
		State:    components.NewState(sc.Energy, sc.Energy, sc.Lifespan, dna.Gender()),
		Dna:      dna.Clone(),
	})
}

// HatchSpore creates a minion from a hatched spore, with mutation applied.
func (w *World) HatchSpore(t components.Transform, dna genetics.Dna) components.Id {
	g := genetics.NewGenome(dna)
	g.Mutate(w.rng, w.cfg.Genetics.MutationRate)
	return w.newMinion(t, g.Dna())
}

// DecayToResource turns a corpse into a resource.
func (w *World) DecayToResource(t components.Transform, dna genetics.Dna) components.Id {
	id := w.NewResource(t, w.cfg.Resource.CorpseEnergy)
	if a := w.Agent(id); a != nil {
		a.Dna = dna.Clone()
	}
	return id
}

// Agent returns the agent with id, or nil if it is not in any registry.
func (w *World) Agent(id components.Id) *components.Agent {
	e, ok := w.index[id]
	if !ok || !w.ecs.Alive(e) {
		return nil
	}
	return w.agentMap.Get(e)
}

// Agents iterates the registry of one kind.
func (w *World) Agents(kind components.AgentKind) iter.Seq[*components.Agent] {
	return iterate(w.filters[kind])
}

// AllAgents iterates every registry.
func (w *World) AllAgents() iter.Seq[*components.Agent] {
	return iterate(w.all)
}

func iterate(f *ecs.Filter1[components.Agent]) iter.Seq[*components.Agent] {
	return func(yield func(*components.Agent) bool) {
		query := f.Query()
		for query.Next() {
			if !yield(query.Get()) {
				query.Close()
				return
			}
		}
	}
}

// ForAllAgents calls fn for every agent.
func (w *World) ForAllAgents(fn func(*components.Agent)) {
	for a := range w.AllAgents() {
		fn(a)
	}
}

// Count returns the number of agents of a kind, dead or alive.
func (w *World) Count(kind components.AgentKind) int {
	n := 0
	for range w.Agents(kind) {
		n++
	}
	return n
}

// Kill marks an agent dead. It returns false if the agent is unknown.
func (w *World) Kill(id components.Id) bool {
	a := w.Agent(id)
	if a == nil {
		return false
	}
	a.Die()
	return true
}

// Sweep removes every dead agent and returns their ids in ascending order.
func (w *World) Sweep() []components.Id {
	var freed []components.Id
	var entities []ecs.Entity

	// Collect first; the world is locked while the query is open
	query := w.all.Query()
	for query.Next() {
		a := query.Get()
		if !a.IsActive() {
			freed = append(freed, a.Id)
			entities = append(entities, query.Entity())
		}
	}

	for i, e := range entities {
		w.ecs.RemoveEntity(e)
		delete(w.index, freed[i])
	}
	slices.Sort(freed)
	return freed
}

// Registered returns the ids created since the last call that are still present.
func (w *World) Registered() []components.Id {
	var ids []components.Id
	for _, id := range w.registered {
		if _, ok := w.index[id]; ok {
			ids = append(ids, id)
		}
	}
	w.registered = w.registered[:0]
	return ids
}
