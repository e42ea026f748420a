package game

import (
	"testing"
	"time"
)

func TestDrawPerfAveragesAndSorts(t *testing.T) {
	p := NewDrawPerf()
	p.Record(DrawAgents, 4*time.Millisecond)
	p.Record(DrawAgents, 2*time.Millisecond)
	p.Record(DrawUI, time.Millisecond)

	if got, want := p.Avg(DrawAgents), 3*time.Millisecond; got != want {
		t.Errorf("Avg(agents) = %v, want %v", got, want)
	}
	if got := p.Avg(DrawLight); got != 0 {
		t.Errorf("Avg(light) = %v, want 0", got)
	}
	if got, want := p.Total(), 4*time.Millisecond; got != want {
		t.Errorf("Total = %v, want %v", got, want)
	}
	names := p.SortedNames()
	if len(names) != 2 || names[0] != DrawAgents || names[1] != DrawUI {
		t.Errorf("SortedNames = %v, want [agents ui]", names)
	}
}

func TestDrawPerfKeepsRecentSamples(t *testing.T) {
	p := NewDrawPerf()
	for i := 0; i < p.maxSamples; i++ {
		p.Record(DrawAgents, time.Second)
	}
	for i := 0; i < p.maxSamples; i++ {
		p.Record(DrawAgents, time.Millisecond)
	}
	if got := p.Avg(DrawAgents); got != time.Millisecond {
		t.Errorf("Avg = %v, want old samples evicted", got)
	}

	ran := false
	p.Measure(DrawUI, func() { ran = true })
	if !ran || len(p.samples[DrawUI]) != 1 {
		t.Errorf("Measure did not run or record")
	}
}
