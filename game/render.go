package game

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/minions/components"
	"github.com/pthm-cable/minions/ui"
)

// Draw renders the current frame.
func (g *Game) Draw() {
	start := time.Now()
	selected := g.selectedMinions()

	rl.BeginDrawing()

	g.drawPerf.Measure(DrawBackground, func() {
		g.background.Draw(g.camera)
		g.drawUnderlays()
	})
	g.drawPerf.Measure(DrawAgents, func() {
		g.agentRenderer.DrawWorld(g.world)
	})
	g.drawPerf.Measure(DrawOverlays, func() {
		g.drawActiveOverlays(selected)
	})
	g.drawPerf.Measure(DrawLight, func() {
		g.light.Draw(rl.GetFrameTime())
	})
	g.drawPerf.Measure(DrawUI, func() {
		g.drawUI(selected)
	})

	rl.EndDrawing()

	g.frame++
	g.frameTime = time.Since(start)
}

// drawUI renders the HUD and the enabled panels. Panel rectangles are kept
// so clicks on them do not reach the world next frame.
func (g *Game) drawUI(selected []*components.Agent) {
	g.uiRects = g.uiRects[:0]

	g.hud.Draw(ui.HUDData{
		Title:       "Minions",
		Frame:       g.frame,
		FrameTime:   g.frameTime,
		FPS:         rl.GetFPS(),
		Tick:        g.tick,
		Steps:       g.stepsPerUpdate,
		Paused:      g.paused,
		Minions:     g.world.Count(components.KindMinion),
		Resources:   g.world.Count(components.KindResource),
		Spores:      g.world.Count(components.KindSpore),
		Selected:    len(selected),
		Extinctions: g.world.Extinctions(),
		Background:  g.background.Name(),
		Light:       g.light.Level(),
	})

	if g.overlays.IsEnabled(ui.OverlayControls) {
		actions := g.controls.Draw(ui.ControlsState{Paused: g.paused, Steps: g.stepsPerUpdate}, g.overlays)
		g.uiRects = append(g.uiRects, rl.Rectangle{X: 10, Y: 100, Width: 220, Height: 260})
		if actions.TogglePause {
			g.paused = !g.paused
		}
		if actions.DumpGenePool {
			g.dumpGenePool()
		}
		g.stepsPerUpdate = actions.Steps
	}

	if g.overlays.IsEnabled(ui.OverlayPerf) {
		ps := g.perfCollector.Stats()
		g.perfPanel.Draw(ui.PerfPanelData{
			PhaseAvg: ps.PhaseAvg,
			PhasePct: ps.PhasePct,
			Total:    ps.AvgTickDuration,
			TPS:      ps.TicksPerSecond,
			Registry: g.registry,
		})
	}

	if g.overlays.IsEnabled(ui.OverlayInspector) && len(selected) > 0 {
		g.inspector.Draw(selected[0])
	}

	g.hud.DrawControls(int32(g.screenHeight),
		"[Space] Pause  [</>] Speed  [LMB] Select  [RMB] Spawn  [Z] Deselect  [F6] Dump genes  [B/V] Background  [L/K] Light  "+g.overlays.Legend())
}
