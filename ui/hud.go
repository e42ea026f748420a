package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/minions/systems"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title       string
	Frame       uint64
	FrameTime   time.Duration
	FPS         int32
	Tick        int32
	Steps       int
	Paused      bool
	Minions     int
	Resources   int
	Spores      int
	Selected    int
	Extinctions int
	Background  string
	Light       float32
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Minions: %d | Resources: %d | Spores: %d | Extinctions: %d",
			data.Minions, data.Resources, data.Spores, data.Extinctions),
		10, 35, 16, rl.LightGray,
	)

	rl.DrawText(
		fmt.Sprintf("Frame: %d (%s) | FPS: %d | Tick: %d | Speed: %dx",
			data.Frame, data.FrameTime.Round(100*time.Microsecond), data.FPS, data.Tick, data.Steps),
		10, 55, 16, rl.LightGray,
	)

	status := fmt.Sprintf("Running | Selected: %d | %s | light %.0f%%", data.Selected, data.Background, data.Light*100)
	if data.Paused {
		status = "PAUSED"
	}
	rl.DrawText(status, 10, 75, 16, rl.Yellow)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanelData holds performance metrics for display.
type PerfPanelData struct {
	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64
	Total    time.Duration
	TPS      float64
	Registry *systems.SystemRegistry
}

// PerfPanel renders the system performance panel.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders one line per registered system, grouped by category.
func (p *PerfPanel) Draw(data PerfPanelData) {
	cats := data.Registry.Categories()
	height := int32(len(data.Registry.IDs())+len(cats))*14 + 50
	p.renderer.DrawPanel(p.x-6, p.y-6, 280, height)

	x, y := p.x, p.y
	rl.DrawText("System Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Tick: %s  TPS: %.0f", data.Total.Round(time.Microsecond), data.TPS), x, y, 14, rl.Yellow)
	y += 16

	for _, cat := range cats {
		rl.DrawText(cat, x, y, 12, rl.SkyBlue)
		y += 14
		for _, info := range data.Registry.ByCategory(cat) {
			pct := data.PhasePct[info.ID]
			color := rl.LightGray
			if pct > 20 {
				color = rl.Red
			} else if pct > 10 {
				color = rl.Orange
			}

			rl.DrawText(
				fmt.Sprintf("  %-10s %8s %5.1f%%", info.Name, data.PhaseAvg[info.ID].Round(time.Microsecond), pct),
				x, y, 12, color,
			)
			y += 14
		}
	}
}
