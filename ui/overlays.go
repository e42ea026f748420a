package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID uniquely identifies an overlay.
type OverlayID string

// Standard overlay IDs.
const (
	OverlayDebugTargets OverlayID = "debug_targets"
	OverlayEmitters     OverlayID = "emitters"
	OverlayInspector    OverlayID = "inspector"
	OverlayPerf         OverlayID = "perf"
	OverlayControls     OverlayID = "controls"
)

// OverlayDescriptor defines an overlay that can be toggled.
type OverlayDescriptor struct {
	ID          OverlayID // Unique identifier
	Name        string    // Display name
	Description string    // What this overlay shows
	Key         int32     // Keyboard key to toggle (0 = no key)
	KeyLabel    string    // Key label for display (e.g., "D")
	Category    string    // Grouping (e.g., "world", "debug", "panels")
	Default     bool      // Enabled at startup
}

// OverlayRegistry manages overlay state and metadata.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	byID        map[OverlayID]OverlayDescriptor
	enabled     map[OverlayID]bool
}

// NewOverlayRegistry creates a registry with default overlays.
func NewOverlayRegistry() *OverlayRegistry {
	reg := &OverlayRegistry{
		byID:    make(map[OverlayID]OverlayDescriptor),
		enabled: make(map[OverlayID]bool),
	}
	reg.registerDefaults()
	return reg
}

func (r *OverlayRegistry) registerDefaults() {
	r.Register(OverlayDescriptor{
		ID:          OverlayEmitters,
		Name:        "Emitters",
		Description: "Shade the resource emitter discs",
		Key:         rl.KeyE,
		KeyLabel:    "E",
		Category:    "world",
		Default:     true,
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayDebugTargets,
		Name:        "Targets",
		Description: "Target lines, trajectories and intents of selected minions",
		Key:         rl.KeyD,
		KeyLabel:    "D",
		Category:    "debug",
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayInspector,
		Name:        "Inspector",
		Description: "Details of the first selected minion",
		Key:         rl.KeyI,
		KeyLabel:    "I",
		Category:    "panels",
		Default:     true,
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayPerf,
		Name:        "Performance",
		Description: "Per-system step timings",
		Key:         rl.KeyP,
		KeyLabel:    "P",
		Category:    "panels",
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayControls,
		Name:        "Controls",
		Description: "Buttons for pause, speed and gene pool dumps",
		Key:         rl.KeyC,
		KeyLabel:    "C",
		Category:    "panels",
		Default:     true,
	})
}

// Register adds an overlay to the registry.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	r.descriptors = append(r.descriptors, desc)
	r.byID[desc.ID] = desc
	r.enabled[desc.ID] = desc.Default
}

// Toggle switches an overlay on/off and returns the new state.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	if _, ok := r.byID[id]; !ok {
		return false
	}
	r.enabled[id] = !r.enabled[id]
	return r.enabled[id]
}

// IsEnabled returns whether an overlay is active.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// All returns all registered overlays in registration order.
func (r *OverlayRegistry) All() []OverlayDescriptor {
	return r.descriptors
}

// HandleKeys toggles every overlay whose key was pressed this frame.
func (r *OverlayRegistry) HandleKeys() {
	for _, desc := range r.descriptors {
		if desc.Key != 0 && rl.IsKeyPressed(desc.Key) {
			r.Toggle(desc.ID)
		}
	}
}

// Legend returns a one-line key legend of all overlays.
func (r *OverlayRegistry) Legend() string {
	legend := ""
	for i, desc := range r.descriptors {
		if i > 0 {
			legend += "  "
		}
		legend += "[" + desc.KeyLabel + "] " + desc.Name
	}
	return legend
}
