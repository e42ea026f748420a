package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/minions/config"
)

func TestParamVectorRoundTrip(t *testing.T) {
	pv := NewParamVector()
	def := pv.DefaultVector()
	back := pv.Denormalize(pv.Normalize(def))
	for i := range def {
		if math.Abs(back[i]-def[i]) > 1e-9 {
			t.Errorf("%s: round trip = %v, want %v", pv.Specs[i].Name, back[i], def[i])
		}
	}
}

func TestDefaultsMatchConfig(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	pv := NewParamVector()
	got := pv.ExtractFromConfig(cfg)
	want := pv.DefaultVector()
	if len(got) != pv.Dim() {
		t.Fatalf("ExtractFromConfig returned %d values, want %d", len(got), pv.Dim())
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("%s: config = %v, default = %v", pv.Specs[i].Name, got[i], want[i])
		}
	}
}

func TestApplyToConfigClamps(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	pv := NewParamVector()
	high := make([]float64, pv.Dim())
	for i := range high {
		high[i] = 1e9
	}
	pv.ApplyToConfig(cfg, high)

	got := pv.ExtractFromConfig(cfg)
	for i, spec := range pv.Specs {
		if got[i] != spec.Max {
			t.Errorf("%s = %v, want clamped to %v", spec.Name, got[i], spec.Max)
		}
	}
}
