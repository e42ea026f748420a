package systems

import (
	"testing"

	"github.com/pthm-cable/minions/components"
	"github.com/pthm-cable/minions/traits"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestAiTargetsNearestResource(t *testing.T) {
	w, _ := newTestWorld(t)
	id := w.RandomizeMinion(r2.Vec{})
	w.NewResource(components.NewTransform(r2.Vec{X: 30, Y: 5}, 0), 10)
	w.NewResource(components.NewTransform(r2.Vec{X: -8, Y: 2}, 0), 10)

	s := NewAiSystem()
	tick(s, w, testDT)

	m := w.Agent(id)
	if !m.State.HasTarget {
		t.Fatalf("minion has no target")
	}
	if want := (r2.Vec{X: -8, Y: 2}); m.State.TargetPosition != want {
		t.Errorf("target = %v, want %v", m.State.TargetPosition, want)
	}
	head := m.Segments[m.FirstSegment(traits.Head)].State.Intent
	if head.Kind != components.Move {
		t.Errorf("head intent = %v, want move", head.Kind)
	}
	if head.Vector.X >= 0 {
		t.Errorf("head direction %v does not point at the target", head.Vector)
	}
	if got, ok := s.Target(m.State.TargetPosition); !ok || w.Agent(got) == nil {
		t.Errorf("Target(%v) = %d, %v", m.State.TargetPosition, got, ok)
	}
}

func TestAiBrakesNearTarget(t *testing.T) {
	w, _ := newTestWorld(t)
	m := w.Agent(w.RandomizeMinion(r2.Vec{}))
	head := m.FirstSegment(traits.Head)
	w.NewResource(components.NewTransform(m.Segments[head].Transform.Position, 0), 10)

	s := NewAiSystem()
	tick(s, w, testDT)

	m = w.Agent(m.Id)
	if got := m.Segments[head].State.Intent.Kind; got != components.Brake {
		t.Errorf("head intent = %v, want brake", got)
	}
}

func TestAiIdlesWithoutResources(t *testing.T) {
	w, _ := newTestWorld(t)
	m := w.Agent(w.RandomizeMinion(r2.Vec{}))
	m.State.SetTarget(r2.Vec{X: 1})

	s := NewAiSystem()
	tick(s, w, testDT)

	if m.State.HasTarget {
		t.Errorf("stale target kept without resources")
	}
	if got := m.Segments[m.FirstSegment(traits.Head)].State.Intent.Kind; got != components.Idle {
		t.Errorf("head intent = %v, want idle", got)
	}
}

func TestAiRunsAwayFromEdge(t *testing.T) {
	w, cfg := newTestWorld(t)
	m := w.Agent(w.RandomizeMinion(r2.Vec{X: cfg.Derived.HalfW - 1}))
	w.NewResource(components.NewTransform(r2.Vec{X: cfg.Derived.HalfW - 1, Y: 3}, 0), 10)

	s := NewAiSystem()
	s.EdgeMargin = 5
	tick(s, w, testDT)

	intent := m.Segments[m.FirstSegment(traits.Head)].State.Intent
	if intent.Kind != components.RunAway {
		t.Fatalf("head intent = %v, want run_away", intent.Kind)
	}
	if intent.Vector.X >= 0 {
		t.Errorf("run away direction %v does not point inward", intent.Vector)
	}
	if m.State.TargetPosition != (r2.Vec{}) {
		t.Errorf("target = %v, want the world center", m.State.TargetPosition)
	}
}
