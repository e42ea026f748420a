// Package camera provides a 2D camera system for viewport control.
package camera

// Camera controls the viewport into the simulation world.
// The world is bounded, centered on the origin and y-up; screen space is y-down.
type Camera struct {
	// Position is the camera center in world coordinates
	X, Y float32

	// Zoom level (1.0 = whole world fits the viewport)
	Zoom float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// World dimensions (extent is [-W/2, W/2] x [-H/2, H/2])
	WorldW, WorldH float32

	// Pixels per world unit at zoom 1
	BaseScale float32

	// Zoom constraints
	MinZoom, MaxZoom float32
}

// New creates a camera centered on the world with the whole world in view.
func New(viewportW, viewportH, worldW, worldH float32) *Camera {
	c := &Camera{
		Zoom:    1.0,
		WorldW:  worldW,
		WorldH:  worldH,
		MinZoom: 0.5,
		MaxZoom: 16.0,
	}
	c.Resize(viewportW, viewportH)
	return c
}

// Scale returns pixels per world unit at the current zoom.
func (c *Camera) Scale() float32 {
	return c.BaseScale * c.Zoom
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	s := c.Scale()
	sx = c.ViewportW/2 + (wx-c.X)*s
	sy = c.ViewportH/2 - (wy-c.Y)*s
	return sx, sy
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	s := c.Scale()
	wx = c.X + (sx-c.ViewportW/2)/s
	wy = c.Y - (sy-c.ViewportH/2)/s
	return wx, wy
}

// IsVisible returns true if a circle at (wx, wy) with given radius
// could be visible on screen (conservative check for culling).
func (c *Camera) IsVisible(wx, wy, radius float32) bool {
	s := c.Scale()
	halfW := c.ViewportW/(2*s) + radius
	halfH := c.ViewportH/(2*s) + radius
	return absf(wx-c.X) <= halfW && absf(wy-c.Y) <= halfH
}

// Resize updates viewport dimensions and the base scale.
func (c *Camera) Resize(viewportW, viewportH float32) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.BaseScale = viewportW / c.WorldW
	if s := viewportH / c.WorldH; s < c.BaseScale {
		c.BaseScale = s
	}
}

// Pan moves the camera by the given delta in screen pixels.
// The camera center stays inside the world extent.
func (c *Camera) Pan(dx, dy float32) {
	s := c.Scale()
	c.X = clamp(c.X+dx/s, -c.WorldW/2, c.WorldW/2)
	c.Y = clamp(c.Y-dy/s, -c.WorldH/2, c.WorldH/2)
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// ZoomAt zooms by factor keeping the world point under (sx, sy) fixed.
func (c *Camera) ZoomAt(factor, sx, sy float32) {
	wx, wy := c.ScreenToWorld(sx, sy)
	c.ZoomBy(factor)
	nx, ny := c.ScreenToWorld(sx, sy)
	c.X = clamp(c.X+wx-nx, -c.WorldW/2, c.WorldW/2)
	c.Y = clamp(c.Y+wy-ny, -c.WorldH/2, c.WorldH/2)
}

// Reset returns the camera to the default position and zoom.
func (c *Camera) Reset() {
	c.X = 0
	c.Y = 0
	c.Zoom = 1.0
}

// VisibleWorldBounds returns the world-coordinate bounds of the visible area.
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float32) {
	s := c.Scale()
	halfW := c.ViewportW / (2 * s)
	halfH := c.ViewportH / (2 * s)

	minX = c.X - halfW
	maxX = c.X + halfW
	minY = c.Y - halfH
	maxY = c.Y + halfH
	return
}

// absf returns the absolute value of a float32.
func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
