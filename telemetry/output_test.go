package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/minions/config"
)

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("NewOutputManager(\"\") = %v, %v; want nil, nil", om, err)
	}
	// A nil manager swallows writes
	if err := om.WriteTelemetry(WindowStats{}); err != nil {
		t.Errorf("WriteTelemetry on nil manager: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Errorf("Close on nil manager: %v", err)
	}
}

func TestOutputManagerSplitsPopulationAndEvents(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	windows := []WindowStats{
		{WindowEndTick: 600, Minions: 12, Eaten: 4, Hatched: 1, Starved: 2, OutOfBound: 1, RigRejected: 1},
		{WindowEndTick: 1200, Minions: 10, Fertilised: 3, Corpses: 2, RigRejected: 2},
	}
	for _, w := range windows {
		if err := om.WriteTelemetry(w); err != nil {
			t.Fatalf("WriteTelemetry: %v", err)
		}
	}
	if got := om.RigRejected(); got != 3 {
		t.Errorf("RigRejected = %d, want 3", got)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(filepath.Join(dir, EventsFile))
	if err != nil {
		t.Fatalf("open events: %v", err)
	}
	defer f.Close()
	var rows []EventsRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		t.Fatalf("read events: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("events rows = %d, want 2", len(rows))
	}
	if rows[0].Eaten != 4 || rows[0].Starved != 2 || rows[0].OutOfBound != 1 {
		t.Errorf("first events row = %+v", rows[0])
	}
	if rows[1].Fertilised != 3 || rows[1].Corpses != 2 {
		t.Errorf("second events row = %+v", rows[1])
	}
	if rows[0].RigRejectedTotal != 1 || rows[1].RigRejectedTotal != 3 {
		t.Errorf("rig rejected totals = %d, %d; want 1, 3", rows[0].RigRejectedTotal, rows[1].RigRejectedTotal)
	}

	pop, err := os.ReadFile(filepath.Join(dir, PopulationFile))
	if err != nil {
		t.Fatalf("read population: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(pop)), "\n")
	if len(lines) != 3 {
		t.Fatalf("population lines = %d, want header + 2", len(lines))
	}
	if !strings.Contains(lines[0], "minions") || strings.Contains(lines[0], "eaten") {
		t.Errorf("population header = %q", lines[0])
	}
}

func TestSaveRunWritesConfigAndGenes(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	dir := filepath.Join(t.TempDir(), "best")
	genes := []GeneRecord{{Id: 1, Dna: "AQID"}}

	if err := SaveRun(dir, cfg, genes); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	if _, err := config.Load(filepath.Join(dir, ConfigFile)); err != nil {
		t.Errorf("saved config does not load: %v", err)
	}
	pool, err := LoadGenePool(filepath.Join(dir, GenePoolFile))
	if err != nil {
		t.Fatalf("LoadGenePool: %v", err)
	}
	if len(pool) != 1 || len(pool[0]) != 3 {
		t.Errorf("pool = %v, want one 3-byte dna", pool)
	}
}
