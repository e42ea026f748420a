package components

import (
	"math"

	"github.com/pthm-cable/minions/traits"
	"gonum.org/v1/gonum/spatial/r2"
)

// Material holds contact properties of a segment.
type Material struct {
	Density     float64
	Friction    float64
	Restitution float64
}

// Attachment joins a segment to an earlier segment of the same agent.
type Attachment struct {
	Index uint8 // Parent segment index
	Point uint8 // Parent mesh vertex index
}

// Segment is one rigid part of an agent.
type Segment struct {
	Transform  Transform
	Mesh       Mesh
	Material   Material
	Flags      traits.Flag
	Attachment *Attachment // nil on the root
	State      SegmentState
}

// Radius returns the world-space radius of the segment.
func (s *Segment) Radius() float64 {
	return s.Mesh.Shape.Radius * s.Transform.Scale
}

// WorldVertex returns mesh vertex i in world coordinates.
func (s *Segment) WorldVertex(i int) r2.Vec {
	v := s.Mesh.Vertex(i)
	sin, cos := math.Sincos(s.Transform.Angle)
	return r2.Add(s.Transform.Position, r2.Vec{X: v.X*cos - v.Y*sin, Y: v.X*sin + v.Y*cos})
}

// IntentKind is what a segment is trying to do.
type IntentKind uint8

const (
	Idle IntentKind = iota
	Move
	Brake
	RunAway
)

func (k IntentKind) String() string {
	switch k {
	case Idle:
		return "idle"
	case Move:
		return "move"
	case Brake:
		return "brake"
	case RunAway:
		return "run_away"
	}
	return "unknown"
}

// Intent pairs an intent kind with its direction.
type Intent struct {
	Kind   IntentKind
	Vector r2.Vec
}

// SegmentState is the per-segment activation state.
type SegmentState struct {
	AgeSeconds   float64
	AgeFrames    int
	Charge       float64
	TargetCharge float64
	Tau          float64
	Intent       Intent
	LastTouched  CreatureRefs
}

// NewSegmentState returns a state with the given charge, target and time constant.
func NewSegmentState(charge, target, tau float64) SegmentState {
	return SegmentState{
		Charge:       charge,
		TargetCharge: target,
		Tau:          tau,
		LastTouched:  DefaultRefs(),
	}
}

// Update advances the charge low-pass filter and the segment age by dt.
func (s *SegmentState) Update(dt float64) {
	s.AgeSeconds += dt
	s.AgeFrames++
	if s.Tau <= 0 {
		s.Charge = s.TargetCharge
		return
	}
	alpha := 1 - math.Exp(-dt/s.Tau)
	s.Charge = s.TargetCharge*alpha + s.Charge*(1-alpha)
}

// Touched returns the last contact, if any.
func (s *SegmentState) Touched() (CreatureRefs, bool) {
	return s.LastTouched, s.LastTouched.HasAgent()
}
