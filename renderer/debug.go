package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/minions/components"
	"github.com/pthm-cable/minions/traits"
)

var (
	targetColor     = rl.Color{R: 255, G: 220, B: 0, A: 200}
	trajectoryColor = rl.Color{R: 120, G: 200, B: 255, A: 160}
	intentColors    = map[components.IntentKind]rl.Color{
		components.Move:    rl.Green,
		components.Brake:   rl.Orange,
		components.RunAway: rl.Red,
	}
)

// intentLength is the drawn length of a unit intent vector, in world units.
const intentLength = 3.0

// DrawTargets draws the head-to-target line, the recorded trajectory and
// segment intent vectors of a minion.
func (r *AgentRenderer) DrawTargets(a *components.Agent) {
	if a.Kind != components.KindMinion || !a.IsActive() {
		return
	}

	if pts := a.State.Trajectory.Points(); len(pts) > 1 {
		prev := r.screen(pts[0])
		for _, p := range pts[1:] {
			cur := r.screen(p)
			rl.DrawLineV(prev, cur, trajectoryColor)
			prev = cur
		}
	}
	if last, ok := a.State.Trajectory.Last(); ok {
		rl.DrawCircleV(r.screen(last), 2, trajectoryColor)
	}

	if a.State.HasTarget {
		from := a.Transform().Position
		if h := a.Segment(a.FirstSegment(traits.Head)); h != nil {
			from = h.Transform.Position
		}
		target := r.screen(a.State.TargetPosition)
		rl.DrawLineV(r.screen(from), target, targetColor)
		rl.DrawCircleLinesV(target, 4, targetColor)
	}

	for i := range a.Segments {
		seg := &a.Segments[i]
		color, ok := intentColors[seg.State.Intent.Kind]
		if !ok {
			continue
		}
		p := seg.Transform.Position
		tip := r2.Add(p, r2.Scale(intentLength, seg.State.Intent.Vector))
		rl.DrawLineV(r.screen(p), r.screen(tip), color)
	}
}
