package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/minions/camera"
	"github.com/pthm-cable/minions/components"
	"github.com/pthm-cable/minions/traits"
	"github.com/pthm-cable/minions/world"
)

var (
	resourceColor  = rl.Color{R: 90, G: 200, B: 90, A: 255}
	sporeColor     = rl.Color{R: 200, G: 160, B: 220, A: 255}
	fertileColor   = rl.Color{R: 250, G: 120, B: 230, A: 255}
	emitterColor   = rl.Color{R: 90, G: 200, B: 90, A: 40}
	selectionColor = rl.Yellow
	outlineColor   = rl.Color{R: 255, G: 255, B: 255, A: 90}
	minAgentPixels = float32(1.5)
)

// AgentRenderer draws agents through a camera.
type AgentRenderer struct {
	cam *camera.Camera
}

// NewAgentRenderer creates an agent renderer.
func NewAgentRenderer(cam *camera.Camera) *AgentRenderer {
	return &AgentRenderer{cam: cam}
}

func (r *AgentRenderer) screen(p r2.Vec) rl.Vector2 {
	x, y := r.cam.WorldToScreen(float32(p.X), float32(p.Y))
	return rl.Vector2{X: x, Y: y}
}

// DrawEmitters shades each emitter's scatter disc.
func (r *AgentRenderer) DrawEmitters(emitters []world.Emitter) {
	for _, e := range emitters {
		rl.DrawCircleV(r.screen(e.Position), r.pixels(e.Radius), emitterColor)
	}
}

func (r *AgentRenderer) pixels(worldLen float64) float32 {
	px := float32(worldLen) * r.cam.Scale()
	if px < minAgentPixels {
		px = minAgentPixels
	}
	return px
}

// DrawWorld draws every live agent: resources, then spores, then minions.
func (r *AgentRenderer) DrawWorld(w *world.World) {
	for _, kind := range []components.AgentKind{components.KindResource, components.KindSpore, components.KindMinion} {
		for a := range w.Agents(kind) {
			if a.IsActive() {
				r.DrawAgent(a)
			}
		}
	}
}

// DrawAgent draws one agent's segments, highlighted when selected.
func (r *AgentRenderer) DrawAgent(a *components.Agent) {
	for i := range a.Segments {
		seg := &a.Segments[i]
		p := seg.Transform.Position
		if !r.cam.IsVisible(float32(p.X), float32(p.Y), float32(seg.Radius())) {
			continue
		}
		r.drawSegment(seg, agentColor(a, seg))
	}
	if a.State.Selected {
		t := a.Transform()
		rl.DrawCircleLinesV(r.screen(t.Position), r.pixels(selectionRadius(a)), selectionColor)
	}
}

func agentColor(a *components.Agent, seg *components.Segment) rl.Color {
	switch a.Kind {
	case components.KindResource:
		return resourceColor
	case components.KindSpore:
		if a.State.Fertilised {
			return fertileColor
		}
		return sporeColor
	}
	cr, cg, cb := traits.Color(seg.Flags)
	// Fade with energy, never below a third
	alpha := 85 + a.State.EnergyRatio()*170
	if alpha > 255 {
		alpha = 255
	}
	return rl.Color{R: cr, G: cg, B: cb, A: uint8(alpha)}
}

// selectionRadius covers every segment of the agent.
func selectionRadius(a *components.Agent) float64 {
	root := a.Transform().Position
	best := 0.0
	for i := range a.Segments {
		seg := &a.Segments[i]
		if d := r2.Norm(r2.Sub(seg.Transform.Position, root)) + seg.Radius(); d > best {
			best = d
		}
	}
	return best * 1.2
}

func (r *AgentRenderer) drawSegment(seg *components.Segment, color rl.Color) {
	center := r.screen(seg.Transform.Position)
	if seg.Mesh.Shape.Kind == components.ShapeBall || len(seg.Mesh.Vertices) < 3 {
		rl.DrawCircleV(center, r.pixels(seg.Radius()), color)
		return
	}

	// Star-shaped outlines: fan from the center
	n := len(seg.Mesh.Vertices)
	pts := make([]rl.Vector2, n)
	for i := range pts {
		pts[i] = r.screen(seg.WorldVertex(i))
	}
	for i := range pts {
		drawTriangle(center, pts[i], pts[(i+1)%n], color)
	}
	for i := range pts {
		rl.DrawLineV(pts[i], pts[(i+1)%n], outlineColor)
	}
}

// drawTriangle orders the vertices the way raylib fills them.
func drawTriangle(a, b, c rl.Vector2, color rl.Color) {
	cross := (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
	if cross > 0 {
		b, c = c, b
	}
	rl.DrawTriangle(a, b, c, color)
}
