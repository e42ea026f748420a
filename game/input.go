package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/minions/ui"
)

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	// Window resize propagation
	g.handleResize()

	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < ui.MaxStepsPerUpdate {
		g.stepsPerUpdate++
	}

	g.overlays.HandleKeys()

	// Light and background cycling
	if rl.IsKeyPressed(rl.KeyL) {
		g.light.Next()
	}
	if rl.IsKeyPressed(rl.KeyK) {
		g.light.Prev()
	}
	if rl.IsKeyPressed(rl.KeyB) {
		g.background.Next()
	}
	if rl.IsKeyPressed(rl.KeyV) {
		g.background.Prev()
	}

	if rl.IsKeyPressed(rl.KeyF6) {
		g.dumpGenePool()
	}
	if rl.IsKeyPressed(rl.KeyW) {
		g.logWorldState()
	}
	if rl.IsKeyPressed(rl.KeyZ) {
		g.deselectAll()
	}

	g.handleCameraInput()
	g.handleMouse()
}

// dumpGenePool saves the gene pool, logging failures.
func (g *Game) dumpGenePool() {
	if err := g.DumpGenePool(); err != nil {
		slog.Error("failed to dump gene pool", "error", err)
	}
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	g.camera.Resize(w, h)
	g.light.Resize(w, h)
	g.perfPanel.SetPosition(int32(w)-280, 10)
	g.inspector.SetPosition(int32(w)-240, 200)
}

// handleCameraInput processes camera pan/zoom controls.
func (g *Game) handleCameraInput() {
	// Pan speed in screen pixels per frame
	panSpeed := float32(8.0)

	// Arrow key panning
	if rl.IsKeyDown(rl.KeyRight) {
		g.camera.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		g.camera.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		g.camera.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		g.camera.Pan(0, -panSpeed)
	}

	// Drag with the middle button
	if rl.IsMouseButtonDown(rl.MouseButtonMiddle) {
		d := rl.GetMouseDelta()
		if g.dragging {
			g.camera.Pan(-d.X, -d.Y)
		}
		g.dragging = true
	} else {
		g.dragging = false
	}

	// Mouse wheel zooms toward the cursor
	if wheelMove := rl.GetMouseWheelMove(); wheelMove != 0 {
		m := rl.GetMousePosition()
		g.camera.ZoomAt(1+wheelMove*0.1, m.X, m.Y)
	}

	// Keyboard zoom with +/- (= and - keys)
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.camera.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.camera.ZoomBy(0.8)
	}

	// Home or 0 to reset camera
	if rl.IsKeyPressed(rl.KeyHome) || rl.IsKeyPressed(rl.KeyZero) {
		g.camera.Reset()
	}
}

// handleMouse steers untargeted minions toward the cursor, toggles
// selection on left click and spawns minions on right click.
func (g *Game) handleMouse() {
	m := rl.GetMousePosition()
	wx, wy := g.camera.ScreenToWorld(m.X, m.Y)
	pos := r2.Vec{X: float64(wx), Y: float64(wy)}

	g.systems.Physics.FollowMe(pos)

	// Clicks on panels belong to the panels
	for _, r := range g.uiRects {
		if rl.CheckCollisionPointRec(m, r) {
			return
		}
	}

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		g.toggleSelectionAt(pos)
	}
	if rl.IsMouseButtonPressed(rl.MouseButtonRight) && g.world.Contains(pos) {
		random := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl)
		g.spawnMinion(pos, random)
	}
}
