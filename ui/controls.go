package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// MaxStepsPerUpdate bounds the speed slider.
const MaxStepsPerUpdate = 32

// ControlsState is what the panel shows this frame.
type ControlsState struct {
	Paused bool
	Steps  int
}

// ControlsActions reports what the user clicked this frame.
type ControlsActions struct {
	TogglePause  bool
	DumpGenePool bool
	Steps        int
}

// ControlsPanel renders the simulation controls and overlay toggles.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// Draw renders the panel and returns the clicked actions.
func (c *ControlsPanel) Draw(state ControlsState, overlays *OverlayRegistry) ControlsActions {
	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight
	descs := overlays.All()

	height := padding*2 + lineHeight + 3*(lineHeight+8) + int32(len(descs))*lineHeight
	r.DrawPanel(c.x, c.y, c.width, height)

	x := c.x + padding
	y := c.y + padding
	inner := float32(c.width - padding*2)

	rl.DrawText("Controls", x, y, 16, rl.White)
	y += lineHeight + 4

	actions := ControlsActions{Steps: state.Steps}

	label := "Pause"
	if state.Paused {
		label = "Resume"
	}
	half := (inner - 4) / 2
	if gui.Button(rl.Rectangle{X: float32(x), Y: float32(y), Width: half, Height: float32(lineHeight + 4)}, label) {
		actions.TogglePause = true
	}
	if gui.Button(rl.Rectangle{X: float32(x) + half + 4, Y: float32(y), Width: half, Height: float32(lineHeight + 4)}, "Dump genes") {
		actions.DumpGenePool = true
	}
	y += lineHeight + 8

	bounds := rl.Rectangle{X: float32(x + 40), Y: float32(y), Width: inner - 70, Height: float32(lineHeight)}
	v := gui.SliderBar(bounds, "Speed", fmt.Sprintf("%dx", state.Steps), float32(state.Steps), 1, MaxStepsPerUpdate)
	actions.Steps = int(v + 0.5)
	if actions.Steps < 1 {
		actions.Steps = 1
	}
	y += lineHeight + 8

	for _, desc := range descs {
		c.drawToggle(x, y, desc, overlays.IsEnabled(desc.ID), int32(inner))
		y += lineHeight
	}

	return actions
}

// drawToggle draws a single overlay toggle line.
func (c *ControlsPanel) drawToggle(x, y int32, desc OverlayDescriptor, enabled bool, width int32) {
	r := c.renderer

	statusColor := rl.Color{R: 80, G: 80, B: 80, A: 255}
	if enabled {
		statusColor = rl.Color{R: 100, G: 200, B: 100, A: 255}
	}
	rl.DrawRectangle(x, y+2, 8, 8, statusColor)

	nameColor := r.Theme.LabelColor
	if enabled {
		nameColor = rl.White
	}
	rl.DrawText(desc.Name, x+14, y, r.Theme.FontSize, nameColor)

	if desc.KeyLabel != "" {
		keyText := fmt.Sprintf("[%s]", desc.KeyLabel)
		keyWidth := rl.MeasureText(keyText, r.Theme.FontSize)
		rl.DrawText(keyText, x+width-keyWidth, y, r.Theme.FontSize, rl.Color{R: 150, G: 150, B: 150, A: 255})
	}
}
