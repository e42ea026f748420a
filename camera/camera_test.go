package camera

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 0.01
}

func TestNew(t *testing.T) {
	cam := New(1280, 720, 160, 90)

	// Should be centered on the origin
	if cam.X != 0 || cam.Y != 0 {
		t.Errorf("expected camera at (0, 0), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 1.0 {
		t.Errorf("expected zoom 1.0, got %f", cam.Zoom)
	}
	if cam.BaseScale != 8 {
		t.Errorf("expected base scale 8, got %f", cam.BaseScale)
	}
}

func TestBaseScaleFitsLimitingDimension(t *testing.T) {
	cam := New(800, 600, 160, 90)

	// min(800/160, 600/90) = 5
	if !near(cam.BaseScale, 5) {
		t.Errorf("expected base scale 5, got %f", cam.BaseScale)
	}
}

func TestWorldToScreen(t *testing.T) {
	cam := New(1280, 720, 160, 90)

	tests := []struct {
		name   string
		wx, wy float32
		sx, sy float32
	}{
		{"origin", 0, 0, 640, 360},
		{"top left corner", -80, 45, 0, 0},
		{"bottom right corner", 80, -45, 1280, 720},
		{"y up", 0, 10, 640, 280},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sx, sy := cam.WorldToScreen(tt.wx, tt.wy)
			if !near(sx, tt.sx) || !near(sy, tt.sy) {
				t.Errorf("WorldToScreen(%v, %v) = (%v, %v), want (%v, %v)", tt.wx, tt.wy, sx, sy, tt.sx, tt.sy)
			}
		})
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(1280, 720, 160, 90)
	cam.X, cam.Y, cam.Zoom = 12, -7, 2.5

	testCases := []struct{ sx, sy float32 }{
		{640, 360},  // center
		{100, 100},  // top-left
		{1200, 600}, // near bottom-right
	}

	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if !near(sx, tc.sx) || !near(sy, tc.sy) {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestPanStaysInsideWorld(t *testing.T) {
	cam := New(1280, 720, 160, 90)

	// 80 pixels at scale 8 is 10 world units; screen down is world down
	cam.Pan(80, 80)
	if !near(cam.X, 10) || !near(cam.Y, -10) {
		t.Errorf("expected (10, -10), got (%f, %f)", cam.X, cam.Y)
	}

	cam.Pan(-100000, -100000)
	if cam.X != -80 || cam.Y != 45 {
		t.Errorf("expected clamp to (-80, 45), got (%f, %f)", cam.X, cam.Y)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(1280, 720, 160, 90)

	cam.SetZoom(0.1) // Below min
	if cam.Zoom != cam.MinZoom {
		t.Errorf("expected zoom clamped to %f, got %f", cam.MinZoom, cam.Zoom)
	}

	cam.SetZoom(100.0) // Above max
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("expected zoom clamped to %f, got %f", cam.MaxZoom, cam.Zoom)
	}
}

func TestZoomAtKeepsCursorPoint(t *testing.T) {
	cam := New(1280, 720, 160, 90)
	wx, wy := cam.ScreenToWorld(900, 200)

	cam.ZoomAt(2, 900, 200)

	gx, gy := cam.ScreenToWorld(900, 200)
	if !near(gx, wx) || !near(gy, wy) {
		t.Errorf("point under cursor moved from (%f,%f) to (%f,%f)", wx, wy, gx, gy)
	}
	if cam.Zoom != 2 {
		t.Errorf("expected zoom 2, got %f", cam.Zoom)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(1280, 720, 160, 90)
	cam.SetZoom(2) // visible range is [-40, 40] x [-22.5, 22.5]

	if !cam.IsVisible(0, 0, 1) {
		t.Error("center should be visible")
	}
	if cam.IsVisible(70, 40, 1) {
		t.Error("far point should not be visible")
	}
	if !cam.IsVisible(45, 0, 6) {
		t.Error("edge point with large radius should be visible")
	}
}

func TestReset(t *testing.T) {
	cam := New(1280, 720, 160, 90)
	cam.X = 50
	cam.Y = -20
	cam.Zoom = 2.5

	cam.Reset()

	if cam.X != 0 || cam.Y != 0 {
		t.Errorf("expected position (0, 0), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 1.0 {
		t.Errorf("expected zoom 1.0, got %f", cam.Zoom)
	}
}
