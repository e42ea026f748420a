package systems

import "github.com/pthm-cable/minions/world"

// AnimationSystem advances the world's animation clock.
type AnimationSystem struct {
	Base
	dt float64
}

// NewAnimationSystem creates an animation system.
func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

func (s *AnimationSystem) Update(dt float64) { s.dt = dt }

func (s *AnimationSystem) ToWorld(w *world.World) {
	w.AdvanceClock(s.dt)
	s.dt = 0
}
