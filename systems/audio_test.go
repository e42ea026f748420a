package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/minions/components"
	"github.com/pthm-cable/minions/config"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestAudioCuesFollowPopulation(t *testing.T) {
	w, _ := newTestWorld(t)
	s := NewAudioSystem(config.AudioConfig{SampleRate: 8000, Volume: -1})
	s.Enable()

	// First tick only primes the counters
	w.RandomizeMinion(r2.Vec{})
	tick(s, w, testDT)
	if got := s.Played(CueBirth); got != 0 {
		t.Errorf("births on first tick = %d, want 0", got)
	}

	id := w.RandomizeMinion(r2.Vec{X: 5})
	tick(s, w, testDT)
	if got := s.Played(CueBirth); got != 1 {
		t.Errorf("births = %d, want 1", got)
	}

	w.Kill(id)
	tick(s, w, testDT)
	if got := s.Played(CueDeath); got != 1 {
		t.Errorf("deaths = %d, want 1", got)
	}

	w.NewSpore(components.NewTransform(r2.Vec{}, 0), dnaWithGender(0, 4))
	tick(s, w, testDT)
	if got := s.Played(CueSpore); got != 1 {
		t.Errorf("spore cues = %d, want 1", got)
	}

	// The mixer carries audible samples
	buf := make([][2]float64, 512)
	n, ok := s.Streamer().Stream(buf)
	if !ok || n != len(buf) {
		t.Fatalf("Stream = %d, %v", n, ok)
	}
	peak := 0.0
	for _, smp := range buf {
		peak = math.Max(peak, math.Abs(smp[0]))
	}
	if peak == 0 {
		t.Errorf("mixer produced silence")
	}
}

func TestAudioSilentUntilEnabled(t *testing.T) {
	w, _ := newTestWorld(t)
	s := NewAudioSystem(config.AudioConfig{SampleRate: 8000})
	tick(s, w, testDT)
	w.RandomizeMinion(r2.Vec{})
	tick(s, w, testDT)
	if got := s.Played(CueBirth); got != 0 {
		t.Errorf("births = %d, want 0 while disabled", got)
	}
}

func TestToneFadesIn(t *testing.T) {
	tn := newTone(8000, 440)
	buf := make([][2]float64, 4)
	tn.Stream(buf)
	if buf[0][0] != 0 {
		t.Errorf("first sample = %v, want 0", buf[0][0])
	}
	for _, smp := range buf {
		if math.Abs(smp[0]) > 0.1 {
			t.Errorf("sample %v louder than the fade allows", smp[0])
		}
	}
}
