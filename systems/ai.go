package systems

import (
	"math"

	"github.com/pthm-cable/minions/components"
	"github.com/pthm-cable/minions/traits"
	"github.com/pthm-cable/minions/world"
	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r2"
)

// AiSystem points each minion at the nearest resource and sets the intent
// of its head.
type AiSystem struct {
	Base

	BrakeDistance float64 // Closer than this the head brakes
	EdgeMargin    float64 // Closer than this to the extent the head runs away

	extent    r2.Box
	resources kdtree.Points
	byPoint   map[[2]float64]components.Id
	heads     []headSnapshot
	decisions []decision
}

type headSnapshot struct {
	id      components.Id
	segment int
	pos     r2.Vec
}

type decision struct {
	id        components.Id
	segment   int
	hasTarget bool
	target    r2.Vec
	intent    components.Intent
}

// NewAiSystem creates an AI system.
func NewAiSystem() *AiSystem {
	return &AiSystem{
		BrakeDistance: 1.5,
		EdgeMargin:    2,
		byPoint:       make(map[[2]float64]components.Id),
	}
}

// FromWorld snapshots resource positions and minion heads.
func (s *AiSystem) FromWorld(w *world.World) {
	s.extent = w.Extent()
	s.resources = s.resources[:0]
	clear(s.byPoint)
	for res := range w.Agents(components.KindResource) {
		if !res.IsActive() {
			continue
		}
		p := res.Transform().Position
		s.resources = append(s.resources, kdtree.Point{p.X, p.Y})
		s.byPoint[[2]float64{p.X, p.Y}] = res.Id
	}

	s.heads = s.heads[:0]
	for m := range w.Agents(components.KindMinion) {
		if !m.IsActive() {
			continue
		}
		i := m.FirstSegment(traits.Head)
		if i < 0 {
			continue
		}
		s.heads = append(s.heads, headSnapshot{id: m.Id, segment: i, pos: m.Segments[i].Transform.Position})
	}
}

// Update finds the nearest resource for every head.
func (s *AiSystem) Update(float64) {
	s.decisions = s.decisions[:0]

	var tree *kdtree.Tree
	if len(s.resources) > 0 {
		// kdtree reorders its input, so build it from a copy
		tree = kdtree.New(append(kdtree.Points(nil), s.resources...), false)
	}

	for _, h := range s.heads {
		d := decision{id: h.id, segment: h.segment}
		switch {
		case s.nearEdge(h.pos):
			center := r2.Scale(0.5, r2.Add(s.extent.Min, s.extent.Max))
			d.hasTarget = true
			d.target = center
			d.intent = components.Intent{Kind: components.RunAway, Vector: unitOrZero(r2.Sub(center, h.pos))}
		case tree != nil:
			nearest, dist2 := tree.Nearest(kdtree.Point{h.pos.X, h.pos.Y})
			p := nearest.(kdtree.Point)
			d.hasTarget = true
			d.target = r2.Vec{X: p[0], Y: p[1]}
			dir := unitOrZero(r2.Sub(d.target, h.pos))
			if math.Sqrt(dist2) < s.BrakeDistance {
				d.intent = components.Intent{Kind: components.Brake, Vector: dir}
			} else {
				d.intent = components.Intent{Kind: components.Move, Vector: dir}
			}
		default:
			d.intent = components.Intent{Kind: components.Idle}
		}
		s.decisions = append(s.decisions, d)
	}
}

func (s *AiSystem) nearEdge(p r2.Vec) bool {
	m := s.EdgeMargin
	return p.X < s.extent.Min.X+m || p.X > s.extent.Max.X-m ||
		p.Y < s.extent.Min.Y+m || p.Y > s.extent.Max.Y-m
}

// ToWorld writes targets and head intents.
func (s *AiSystem) ToWorld(w *world.World) {
	for _, d := range s.decisions {
		a := w.Agent(d.id)
		if a == nil || !a.IsActive() {
			continue
		}
		if d.hasTarget {
			a.State.SetTarget(d.target)
		} else {
			a.State.ClearTarget()
		}
		if seg := a.Segment(d.segment); seg != nil {
			seg.State.Intent = d.intent
		}
	}
}

// Target returns the resource id a head is heading for, if any.
func (s *AiSystem) Target(p r2.Vec) (components.Id, bool) {
	id, ok := s.byPoint[[2]float64{p.X, p.Y}]
	return id, ok
}

func unitOrZero(v r2.Vec) r2.Vec {
	if v == (r2.Vec{}) {
		return v
	}
	return r2.Unit(v)
}
