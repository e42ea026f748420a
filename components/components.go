// Package components defines the agent data model and its ECS components.
package components

import (
	"github.com/pthm-cable/minions/genetics"
	"github.com/pthm-cable/minions/traits"
	"gonum.org/v1/gonum/spatial/r2"
)

// Id identifies an agent. Ids are allocated monotonically and never reused within a run.
type Id uint32

// AgentKind selects the registry an agent lives in.
type AgentKind uint8

const (
	KindMinion AgentKind = iota
	KindResource
	KindSpore
)

// Kinds lists every agent kind in registry order.
var Kinds = [...]AgentKind{KindMinion, KindResource, KindSpore}

func (k AgentKind) String() string {
	switch k {
	case KindMinion:
		return "minion"
	case KindResource:
		return "resource"
	case KindSpore:
		return "spore"
	}
	return "unknown"
}

// Tag components, one per registry.
type (
	Minion   struct{}
	Resource struct{}
	Spore    struct{}
)

// Transform places a segment in the world.
type Transform struct {
	Position r2.Vec
	Angle    float64
	Scale    float64
}

// NewTransform returns a unit-scale transform.
func NewTransform(pos r2.Vec, angle float64) Transform {
	return Transform{Position: pos, Angle: angle, Scale: 1}
}

// Agent is a minion, resource or spore.
type Agent struct {
	Id       Id
	Kind     AgentKind
	Segments []Segment
	State    State
	Dna      genetics.Dna
}

// Segment returns a pointer to segment i, or nil if out of range.
func (a *Agent) Segment(i int) *Segment {
	if i < 0 || i >= len(a.Segments) {
		return nil
	}
	return &a.Segments[i]
}

// FirstSegment returns the index of the first segment carrying flag, or -1.
func (a *Agent) FirstSegment(flag traits.Flag) int {
	for i := range a.Segments {
		if a.Segments[i].Flags.Has(flag) {
			return i
		}
	}
	return -1
}

// LastSegment returns the last segment, or nil for an agent without segments.
func (a *Agent) LastSegment() *Segment {
	return a.Segment(len(a.Segments) - 1)
}

// Transform returns the root segment's transform.
func (a *Agent) Transform() Transform {
	if len(a.Segments) == 0 {
		return Transform{Scale: 1}
	}
	return a.Segments[0].Transform
}

// Gender returns the agent's gender bit.
func (a *Agent) Gender() uint8 {
	return a.State.Gender
}

// Die marks the agent dead. Removal happens at the next sweep.
func (a *Agent) Die() {
	a.State.Die()
}

// IsActive reports whether the agent is alive.
func (a *Agent) IsActive() bool {
	return a.State.IsActive()
}
