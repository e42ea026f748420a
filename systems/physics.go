package systems

import (
	"errors"
	"fmt"
	"math"

	"github.com/pthm-cable/minions/components"
	"github.com/pthm-cable/minions/config"
	"github.com/pthm-cable/minions/physics"
	"github.com/pthm-cable/minions/world"
	"gonum.org/v1/gonum/spatial/r2"
)

// ErrInvalidGeometry is returned when an agent's body cannot be built into a rig.
var ErrInvalidGeometry = errors.New("invalid geometry")

// PhysicsSystem keeps one rigid-body rig per agent in the physics engine,
// applies steering forces and writes transforms back to the world.
type PhysicsSystem struct {
	Base

	engine  physics.Engine
	cfg     config.PhysicsConfig
	handles map[components.CreatureRefs]physics.Body

	steering map[uint8]bool
	thrust   map[uint8]bool

	remote  r2.Vec
	targets map[components.Id]r2.Vec

	dropEnabled bool
	dropEdge    float64
	dropped     []components.Id
	droppedSet  map[components.Id]bool
	lastDropped int

	// Segment-level refs -> refs of whatever touched that segment this tick
	contacts map[components.CreatureRefs]components.CreatureRefs
}

// NewPhysicsSystem creates a physics system over engine.
func NewPhysicsSystem(engine physics.Engine, cfg config.PhysicsConfig) *PhysicsSystem {
	s := &PhysicsSystem{
		engine:      engine,
		cfg:         cfg,
		handles:     make(map[components.CreatureRefs]physics.Body),
		steering:    indexSet(cfg.SteeringSegments),
		thrust:      indexSet(cfg.ThrustSegments),
		targets:     make(map[components.Id]r2.Vec),
		dropEnabled: cfg.DropEnabled,
		dropEdge:    cfg.DropBelow,
		droppedSet:  make(map[components.Id]bool),
		contacts:    make(map[components.CreatureRefs]components.CreatureRefs),
	}
	engine.OnContact(s.onContact)
	return s
}

func indexSet(indices []int) map[uint8]bool {
	set := make(map[uint8]bool, len(indices))
	for _, i := range indices {
		if i >= 0 && i < int(components.UnsetIndex) {
			set[uint8(i)] = true
		}
	}
	return set
}

// FollowMe sets the point that steering segments pull toward when their
// agent has no target of its own.
func (s *PhysicsSystem) FollowMe(pos r2.Vec) { s.remote = pos }

// DropBelow removes agents whose bodies fall below edge.
func (s *PhysicsSystem) DropBelow(edge float64) {
	s.dropEnabled = true
	s.dropEdge = edge
}

// Dropped returns how many agents the last tick killed for falling off the world.
func (s *PhysicsSystem) Dropped() int { return s.lastDropped }

// HandleCount returns the number of bodies this system holds.
func (s *PhysicsSystem) HandleCount() int { return len(s.handles) }

// Engine returns the underlying physics engine.
func (s *PhysicsSystem) Engine() physics.Engine { return s.engine }

// Register builds the rig for agent. Geometry is validated up front so that
// a malformed agent leaves nothing behind in the engine.
func (s *PhysicsSystem) Register(agent *components.Agent) error {
	if _, ok := s.handles[components.WithSegment(agent.Id, 0)]; ok {
		return nil
	}
	if err := validateRig(agent); err != nil {
		return err
	}

	bodies := make([]physics.Body, len(agent.Segments))
	for i := range agent.Segments {
		seg := &agent.Segments[i]
		refs := components.WithSegment(agent.Id, uint8(i))
		body := s.engine.CreateBody(physics.BodyDef{
			Position: seg.Transform.Position,
			Angle:    seg.Transform.Angle,
			Tag:      refs,
		})
		buildFixtures(body, agent.Id, uint8(i), seg)
		bodies[i] = body
		s.handles[refs] = body
	}

	for i := range agent.Segments {
		seg := &agent.Segments[i]
		if seg.Attachment == nil {
			continue
		}
		parent := &agent.Segments[seg.Attachment.Index]
		s.engine.CreateRevoluteJoint(physics.RevoluteJointDef{
			BodyA:            bodies[seg.Attachment.Index],
			BodyB:            bodies[i],
			LocalAnchorA:     parent.Mesh.Vertex(int(seg.Attachment.Point)),
			LocalAnchorB:     seg.Mesh.Vertex(0),
			CollideConnected: true,
		})
	}
	return nil
}

func validateRig(agent *components.Agent) error {
	if len(agent.Segments) == 0 {
		return fmt.Errorf("%w: agent %d has no segments", ErrInvalidGeometry, agent.Id)
	}
	if len(agent.Segments) > int(components.UnsetIndex) {
		return fmt.Errorf("%w: agent %d has %d segments", ErrInvalidGeometry, agent.Id, len(agent.Segments))
	}
	for i := range agent.Segments {
		seg := &agent.Segments[i]
		if err := seg.Mesh.Validate(); err != nil {
			return fmt.Errorf("%w: agent %d segment %d: %v", ErrInvalidGeometry, agent.Id, i, err)
		}
		if seg.Mesh.Shape.N >= int(components.UnsetIndex) {
			return fmt.Errorf("%w: agent %d segment %d: %d points", ErrInvalidGeometry, agent.Id, i, seg.Mesh.Shape.N)
		}
		att := seg.Attachment
		switch {
		case i == 0 && att != nil:
			return fmt.Errorf("%w: agent %d root segment is attached", ErrInvalidGeometry, agent.Id)
		case i > 0 && att == nil:
			return fmt.Errorf("%w: agent %d segment %d has no attachment", ErrInvalidGeometry, agent.Id, i)
		case att == nil:
			continue
		case int(att.Index) >= i:
			return fmt.Errorf("%w: agent %d segment %d attached to later segment %d",
				ErrInvalidGeometry, agent.Id, i, att.Index)
		case int(att.Point) >= len(agent.Segments[att.Index].Mesh.Vertices):
			return fmt.Errorf("%w: agent %d segment %d attached to missing vertex %d",
				ErrInvalidGeometry, agent.Id, i, att.Point)
		}
	}
	return nil
}

// buildFixtures attaches the shapes of seg to body.
func buildFixtures(body physics.Body, id components.Id, index uint8, seg *components.Segment) {
	mesh := &seg.Mesh
	radius := mesh.Shape.Radius
	def := physics.FixtureDef{
		Density:     seg.Material.Density,
		Friction:    seg.Material.Friction,
		Restitution: seg.Material.Restitution,
		Tag:         components.WithSegment(id, index),
	}

	switch mesh.Shape.Kind {
	case components.ShapeBall:
		def.Shape = physics.Circle{Radius: radius}
		body.CreateFixture(def)
	case components.ShapeBox:
		def.Shape = physics.Box{HalfWidth: radius * mesh.Shape.Ratio, HalfHeight: radius}
		body.CreateFixture(def)
	case components.ShapeStar, components.ShapePoly:
		n := mesh.Shape.N
		for i := 0; i < n; i++ {
			def.Shape = physics.Polygon{Vertices: starQuad(mesh, i)}
			def.Tag = components.WithSubShape(id, index, uint8(i))
			body.CreateFixture(def)
		}
	case components.ShapeTriangle:
		p := mesh.Vertices
		order := [3]int{0, 1, 2}
		if mesh.Winding == components.CW {
			order = [3]int{0, 2, 1}
		}
		def.Shape = physics.Polygon{Vertices: []r2.Vec{
			r2.Scale(radius, p[order[0]]),
			r2.Scale(radius, p[order[1]]),
			r2.Scale(radius, p[order[2]]),
		}}
		body.CreateFixture(def)
	}
}

// starQuad returns the counter-clockwise quad {center, valley, tip, valley}
// around tip i of a star or poly mesh.
func starQuad(mesh *components.Mesh, i int) []r2.Vec {
	n := mesh.Shape.N
	p := mesh.Vertices
	i1 := 2*i + 1
	i2 := 2 * i
	i3 := (2*i + 2*n - 1) % (2 * n)
	a, b, c := p[i3], p[i2], p[i1]
	if mesh.Winding == components.CW {
		a, c = c, a
	}
	r := mesh.Shape.Radius
	return []r2.Vec{{}, r2.Scale(r, a), r2.Scale(r, b), r2.Scale(r, c)}
}

// Unregister destroys every body belonging to id.
func (s *PhysicsSystem) Unregister(id components.Id) {
	for refs, body := range s.handles {
		if refs.AgentID == id {
			s.engine.DestroyBody(body)
			delete(s.handles, refs)
		}
	}
	delete(s.targets, id)
}

// FromWorld captures per-agent steering targets.
func (s *PhysicsSystem) FromWorld(w *world.World) {
	clear(s.targets)
	for a := range w.Agents(components.KindMinion) {
		if a.IsActive() && a.State.HasTarget {
			s.targets[a.Id] = a.State.TargetPosition
		}
	}
}

// Update applies steering and thrust forces, then steps the engine.
func (s *PhysicsSystem) Update(dt float64) {
	bodies := s.engine.Bodies()
	for _, b := range bodies {
		refs, ok := b.Tag().(components.CreatureRefs)
		if !ok {
			continue
		}
		center := b.WorldCenter()
		switch {
		case s.steering[refs.SegmentIndex]:
			target, ok := s.targets[refs.AgentID]
			if !ok {
				target = s.remote
			}
			dir := r2.Sub(target, center)
			if dir == (r2.Vec{}) {
				continue
			}
			b.ApplyForce(r2.Scale(s.cfg.SteeringForce, r2.Unit(dir)), center)
		case s.thrust[refs.SegmentIndex]:
			facing := b.WorldPoint(r2.Vec{Y: 1})
			b.ApplyForce(r2.Scale(s.cfg.ThrustScale, r2.Sub(facing, center)), center)
		}
	}

	s.engine.Step(dt, s.cfg.VelocityIterations, s.cfg.PositionIterations)

	if !s.dropEnabled {
		return
	}
	for _, b := range bodies {
		refs, ok := b.Tag().(components.CreatureRefs)
		if !ok || s.droppedSet[refs.AgentID] {
			continue
		}
		if p := b.Position(); p.Y < s.dropEdge || math.IsNaN(p.Y) {
			s.droppedSet[refs.AgentID] = true
			s.dropped = append(s.dropped, refs.AgentID)
		}
	}
}

func (s *PhysicsSystem) onContact(a, b any) {
	ra, okA := a.(components.CreatureRefs)
	rb, okB := b.(components.CreatureRefs)
	if !okA || !okB || ra.AgentID == rb.AgentID {
		return
	}
	s.contacts[ra.Segment()] = rb
	s.contacts[rb.Segment()] = ra
}

// ToWorld kills dropped agents, writes body transforms back to their
// segments and records contacts.
func (s *PhysicsSystem) ToWorld(w *world.World) {
	for _, id := range s.dropped {
		w.Kill(id)
	}
	s.lastDropped = len(s.dropped)
	s.dropped = s.dropped[:0]
	clear(s.droppedSet)

	for _, b := range s.engine.Bodies() {
		refs, ok := b.Tag().(components.CreatureRefs)
		if !ok {
			continue
		}
		a := w.Agent(refs.AgentID)
		if a == nil {
			continue
		}
		seg := a.Segment(int(refs.SegmentIndex))
		if seg == nil {
			continue
		}
		seg.Transform = components.Transform{
			Position: b.Position(),
			Angle:    b.Angle(),
			Scale:    seg.Transform.Scale,
		}
	}

	for refs, other := range s.contacts {
		if a := w.Agent(refs.AgentID); a != nil {
			if seg := a.Segment(int(refs.SegmentIndex)); seg != nil {
				seg.State.LastTouched = other
			}
		}
	}
	clear(s.contacts)
}

// Pick returns the agent with a body nearest to pos within maxDist.
// Agents rejected by keep are skipped; a nil keep accepts every agent.
func (s *PhysicsSystem) Pick(pos r2.Vec, maxDist float64, keep func(components.Id) bool) (components.Id, bool) {
	best := maxDist
	var found components.Id
	ok := false
	for refs, b := range s.handles {
		if keep != nil && !keep(refs.AgentID) {
			continue
		}
		if d := r2.Norm(r2.Sub(b.Position(), pos)); d <= best {
			best = d
			found = refs.AgentID
			ok = true
		}
	}
	return found, ok
}
