package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/minions/camera"
)

// backgrounds is the cycle of clear colors, paired with the world fill.
var backgrounds = []struct {
	name        string
	clear, fill rl.Color
}{
	{"abyss", rl.Color{R: 8, G: 10, B: 16, A: 255}, rl.Color{R: 16, G: 22, B: 34, A: 255}},
	{"lagoon", rl.Color{R: 6, G: 24, B: 30, A: 255}, rl.Color{R: 14, G: 44, B: 52, A: 255}},
	{"moss", rl.Color{R: 14, G: 20, B: 10, A: 255}, rl.Color{R: 28, G: 38, B: 22, A: 255}},
	{"paper", rl.Color{R: 200, G: 196, B: 184, A: 255}, rl.Color{R: 236, G: 232, B: 220, A: 255}},
}

// BackgroundRenderer clears the screen and fills the world extent.
type BackgroundRenderer struct {
	index int
	grid  float32 // world units between grid lines, 0 disables
}

// NewBackgroundRenderer creates a background renderer with a grid every
// gridStep world units.
func NewBackgroundRenderer(gridStep float32) *BackgroundRenderer {
	return &BackgroundRenderer{grid: gridStep}
}

// Next cycles to the next background.
func (b *BackgroundRenderer) Next() {
	b.index = (b.index + 1) % len(backgrounds)
}

// Prev cycles to the previous background.
func (b *BackgroundRenderer) Prev() {
	b.index = (b.index + len(backgrounds) - 1) % len(backgrounds)
}

// Name returns the current background's name.
func (b *BackgroundRenderer) Name() string {
	return backgrounds[b.index].name
}

// Draw clears the frame and paints the world rectangle with its grid.
func (b *BackgroundRenderer) Draw(cam *camera.Camera) {
	bg := backgrounds[b.index]
	rl.ClearBackground(bg.clear)

	hw, hh := cam.WorldW/2, cam.WorldH/2
	x0, y0 := cam.WorldToScreen(-hw, hh)
	x1, y1 := cam.WorldToScreen(hw, -hh)
	rl.DrawRectangleV(rl.Vector2{X: x0, Y: y0}, rl.Vector2{X: x1 - x0, Y: y1 - y0}, bg.fill)

	if b.grid > 0 {
		line := bg.clear
		line.A = 90
		minX, minY, maxX, maxY := cam.VisibleWorldBounds()
		for x := -hw; x <= hw; x += b.grid {
			if x < minX || x > maxX {
				continue
			}
			sx, _ := cam.WorldToScreen(x, 0)
			rl.DrawLineV(rl.Vector2{X: sx, Y: y0}, rl.Vector2{X: sx, Y: y1}, line)
		}
		for y := -hh; y <= hh; y += b.grid {
			if y < minY || y > maxY {
				continue
			}
			_, sy := cam.WorldToScreen(0, y)
			rl.DrawLineV(rl.Vector2{X: x0, Y: sy}, rl.Vector2{X: x1, Y: sy}, line)
		}
	}
	rl.DrawRectangleLinesEx(rl.Rectangle{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}, 2, rl.Gray)
}
