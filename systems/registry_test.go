package systems

import (
	"slices"
	"testing"
)

func TestRegistryFollowsStepOrder(t *testing.T) {
	r := NewSystemRegistry()
	want := []string{"animation", "audio", "game", "ai", "alife", "physics", "cleanup", "register", "telemetry"}
	if got := r.IDs(); !slices.Equal(got, want) {
		t.Errorf("IDs = %v, want %v", got, want)
	}
}

func TestRegistryNames(t *testing.T) {
	r := NewSystemRegistry()
	tests := []struct {
		id   string
		want string
	}{
		{"ai", "AI"},
		{"physics", "Physics"},
		{"unknown", "unknown"},
	}
	for _, tt := range tests {
		if got := r.GetName(tt.id); got != tt.want {
			t.Errorf("GetName(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestRegistryCategoriesCoverEverySystem(t *testing.T) {
	r := NewSystemRegistry()
	n := 0
	for _, cat := range r.Categories() {
		n += len(r.ByCategory(cat))
	}
	if n != len(r.IDs()) {
		t.Errorf("categorised systems = %d, want %d", n, len(r.IDs()))
	}
}
