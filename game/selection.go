package game

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/minions/components"
)

// pickRadius is how far from a body center a click still selects it, in world units.
const pickRadius = 2.0

// toggleSelectionAt flips the selection of the live minion nearest pos.
// Resources and spores under the cursor never shadow a minion.
func (g *Game) toggleSelectionAt(pos r2.Vec) bool {
	id, ok := g.systems.Physics.Pick(pos, pickRadius, g.isLiveMinion)
	if !ok {
		return false
	}
	g.world.Agent(id).State.ToggleSelection()
	return true
}

func (g *Game) isLiveMinion(id components.Id) bool {
	a := g.world.Agent(id)
	return a != nil && a.Kind == components.KindMinion && a.IsActive()
}

// deselectAll clears every minion's selection.
func (g *Game) deselectAll() {
	for a := range g.world.Agents(components.KindMinion) {
		a.State.Selected = false
	}
}

// selectedMinions returns the live selected minions.
func (g *Game) selectedMinions() []*components.Agent {
	var out []*components.Agent
	for a := range g.world.Agents(components.KindMinion) {
		if a.IsActive() && a.State.Selected {
			out = append(out, a)
		}
	}
	return out
}
