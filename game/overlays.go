package game

import (
	"github.com/pthm-cable/minions/components"
	"github.com/pthm-cable/minions/ui"
)

// drawUnderlays renders enabled world overlays that sit below the agents.
func (g *Game) drawUnderlays() {
	if g.overlays.IsEnabled(ui.OverlayEmitters) {
		g.agentRenderer.DrawEmitters(g.world.Emitters())
	}
}

// drawActiveOverlays renders enabled world overlays on top of the agents.
func (g *Game) drawActiveOverlays(selected []*components.Agent) {
	if g.overlays.IsEnabled(ui.OverlayDebugTargets) {
		for _, a := range selected {
			g.agentRenderer.DrawTargets(a)
		}
	}
}
