package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// lightLevels is the cycle of ambient light, 1 being full daylight.
var lightLevels = []float32{1, 0.75, 0.5, 0.3}

// LightRenderer darkens the scene by the current ambient light level.
// Changes blend in over a fraction of a second.
type LightRenderer struct {
	index   int
	display float32

	screenW, screenH float32
}

// NewLightRenderer creates a light renderer at full daylight.
func NewLightRenderer(screenW, screenH int32) *LightRenderer {
	return &LightRenderer{
		display: lightLevels[0],
		screenW: float32(screenW),
		screenH: float32(screenH),
	}
}

// Resize updates the overlay size.
func (l *LightRenderer) Resize(w, h float32) {
	l.screenW = w
	l.screenH = h
}

// Next dims to the next light level.
func (l *LightRenderer) Next() {
	l.index = (l.index + 1) % len(lightLevels)
}

// Prev brightens to the previous light level.
func (l *LightRenderer) Prev() {
	l.index = (l.index + len(lightLevels) - 1) % len(lightLevels)
}

// Level returns the target light level.
func (l *LightRenderer) Level() float32 {
	return lightLevels[l.index]
}

// Draw blends toward the target level and overlays the darkness.
func (l *LightRenderer) Draw(dt float32) {
	// Exponential smoothing over ~0.3 seconds
	blendRate := float32(3.0) * dt
	if blendRate > 1.0 {
		blendRate = 1.0
	}
	target := l.Level()
	if diff := target - l.display; diff > 0.001 || diff < -0.001 {
		l.display += diff * blendRate
	} else {
		l.display = target
	}

	if l.display >= 1 {
		return
	}
	shade := rl.Color{R: 0, G: 0, B: 8, A: uint8((1 - l.display) * 255)}
	rl.DrawRectangle(0, 0, int32(l.screenW), int32(l.screenH), shade)
}
