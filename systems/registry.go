package systems

// SystemInfo describes a simulation system for UI display.
type SystemInfo struct {
	ID          string // Internal identifier (used for perf tracking)
	Name        string // Display name
	Category    string // Grouping (e.g., "core", "visual", "ai")
}

// SystemRegistry holds metadata about all systems.
// This centralizes system naming so the UI and perf tracker stay in sync.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewSystemRegistry creates a registry with all known systems.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byID: make(map[string]SystemInfo),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds all known systems to the registry.
// Update this when adding new systems.
func (r *SystemRegistry) registerDefaults() {
	// Tick systems, in run order
	r.Register(SystemInfo{ID: "animation", Name: "Animation", Category: "core"})
	r.Register(SystemInfo{ID: "audio", Name: "Audio", Category: "visual"})
	r.Register(SystemInfo{ID: "game", Name: "Game", Category: "lifecycle"})
	r.Register(SystemInfo{ID: "ai", Name: "AI", Category: "ai"})
	r.Register(SystemInfo{ID: "alife", Name: "Alife", Category: "lifecycle"})
	r.Register(SystemInfo{ID: "physics", Name: "Physics", Category: "physics"})

	// Bookkeeping after the systems run
	r.Register(SystemInfo{ID: "cleanup", Name: "Cleanup", Category: "core"})
	r.Register(SystemInfo{ID: "register", Name: "Register", Category: "physics"})
	r.Register(SystemInfo{ID: "telemetry", Name: "Telemetry", Category: "internal"})
}

// Register adds a system to the registry.
func (r *SystemRegistry) Register(info SystemInfo) {
	r.systems = append(r.systems, info)
	r.byID[info.ID] = info
}

// GetName returns the display name for a system ID.
// Falls back to the ID itself if not found.
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// ByCategory returns systems filtered by category.
func (r *SystemRegistry) ByCategory(category string) []SystemInfo {
	var result []SystemInfo
	for _, info := range r.systems {
		if info.Category == category {
			result = append(result, info)
		}
	}
	return result
}

// Categories returns all unique categories.
func (r *SystemRegistry) Categories() []string {
	seen := make(map[string]bool)
	var cats []string
	for _, info := range r.systems {
		if !seen[info.Category] {
			seen[info.Category] = true
			cats = append(cats, info.Category)
		}
	}
	return cats
}

// IDs returns all system IDs in registration order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.systems))
	for i, info := range r.systems {
		ids[i] = info.ID
	}
	return ids
}
