package components

import (
	"github.com/pthm-cable/minions/genetics"
	"gonum.org/v1/gonum/spatial/r2"
)

// Lifecycle is an expiring timer in simulation seconds.
type Lifecycle struct {
	Elapsed  float64
	Duration float64
}

// NewLifecycle returns a timer that expires after duration seconds.
func NewLifecycle(duration float64) Lifecycle {
	return Lifecycle{Duration: duration}
}

// Tick advances the timer.
func (l *Lifecycle) Tick(dt float64) { l.Elapsed += dt }

// IsExpired reports whether the timer has run out.
func (l *Lifecycle) IsExpired() bool { return l.Elapsed >= l.Duration }

// Renew restarts the timer.
func (l *Lifecycle) Renew() { l.Elapsed = 0 }

// Trajectory is a fixed-size ring of recent positions.
type Trajectory struct {
	points []r2.Vec
	next   int
	full   bool
}

// NewTrajectory allocates a ring of n positions.
func NewTrajectory(n int) Trajectory {
	return Trajectory{points: make([]r2.Vec, n)}
}

// Push records a position, overwriting the oldest when full.
func (t *Trajectory) Push(p r2.Vec) {
	if len(t.points) == 0 {
		return
	}
	t.points[t.next] = p
	t.next++
	if t.next == len(t.points) {
		t.next = 0
		t.full = true
	}
}

// Len returns the number of recorded positions.
func (t *Trajectory) Len() int {
	if t.full {
		return len(t.points)
	}
	return t.next
}

// Points returns recorded positions, oldest first.
func (t *Trajectory) Points() []r2.Vec {
	if !t.full {
		return append([]r2.Vec(nil), t.points[:t.next]...)
	}
	out := make([]r2.Vec, 0, len(t.points))
	out = append(out, t.points[t.next:]...)
	return append(out, t.points[:t.next]...)
}

// Last returns the most recent position.
func (t *Trajectory) Last() (r2.Vec, bool) {
	if t.Len() == 0 {
		return r2.Vec{}, false
	}
	i := t.next - 1
	if i < 0 {
		i = len(t.points) - 1
	}
	return t.points[i], true
}

// State is the agent-level simulation state.
// The zero value is an active agent with no energy.
type State struct {
	dead bool

	Lifecycle Lifecycle
	Energy    float64
	MaxEnergy float64

	Gender   uint8
	Selected bool

	HasTarget      bool
	TargetPosition r2.Vec
	Trajectory     Trajectory

	// Spores only
	Fertilised bool
	ForeignDna genetics.Dna
}

// NewState returns an active state.
func NewState(energy, maxEnergy, lifespan float64, gender uint8) State {
	return State{
		Lifecycle: NewLifecycle(lifespan),
		Energy:    energy,
		MaxEnergy: maxEnergy,
		Gender:    gender,
	}
}

// IsActive reports whether the agent is alive.
func (s *State) IsActive() bool { return !s.dead }

// Die marks the agent dead. It cannot be undone.
func (s *State) Die() { s.dead = true }

// Absorb adds energy. Energy is not clamped here.
func (s *State) Absorb(energy float64) { s.Energy += energy }

// Consume debits energy unconditionally.
func (s *State) Consume(energy float64) { s.Energy -= energy }

// ConsumeRatio debits ratio*MaxEnergy if the agent holds at least that much.
func (s *State) ConsumeRatio(ratio float64) bool {
	amount := ratio * s.MaxEnergy
	if s.Energy < amount {
		return false
	}
	s.Energy -= amount
	return true
}

// EnergyRatio returns Energy/MaxEnergy, or 0 without a capacity.
func (s *State) EnergyRatio() float64 {
	if s.MaxEnergy <= 0 {
		return 0
	}
	return s.Energy / s.MaxEnergy
}

// Renew restarts the lifecycle timer.
func (s *State) Renew() { s.Lifecycle.Renew() }

// Fertilise records foreign Dna. Only the first fertilisation sticks.
func (s *State) Fertilise(dna genetics.Dna) bool {
	if s.Fertilised {
		return false
	}
	s.Fertilised = true
	s.ForeignDna = dna.Clone()
	return true
}

// SetTarget points the agent at p.
func (s *State) SetTarget(p r2.Vec) {
	s.HasTarget = true
	s.TargetPosition = p
}

// ClearTarget forgets the target.
func (s *State) ClearTarget() { s.HasTarget = false }

// ToggleSelection flips the selection flag.
func (s *State) ToggleSelection() { s.Selected = !s.Selected }

// TrackPosition appends p to the trajectory.
func (s *State) TrackPosition(p r2.Vec) { s.Trajectory.Push(p) }
