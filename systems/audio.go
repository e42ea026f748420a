package systems

import (
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/pthm-cable/minions/components"
	"github.com/pthm-cable/minions/config"
	"github.com/pthm-cable/minions/world"
)

// maxQueuedCues bounds the mixer so bursts of births do not pile up.
const maxQueuedCues = 16

// Cue is a short population sound.
type Cue uint8

const (
	CueBirth Cue = iota
	CueDeath
	CueSpore
)

var cueTones = [...]struct {
	freq     float64
	duration time.Duration
}{
	CueBirth: {660, 90 * time.Millisecond},
	CueDeath: {110, 160 * time.Millisecond},
	CueSpore: {1320, 40 * time.Millisecond},
}

// AudioSystem turns population changes into short tones mixed into a
// beep.Mixer. Nothing is queued until a speaker is attached or Enable is called.
type AudioSystem struct {
	Base

	rate    beep.SampleRate
	volume  float64
	mixer   *beep.Mixer
	enabled bool
	lock    func()
	unlock  func()

	minions, spores         int
	prevMinions, prevSpores int
	primed                  bool
	played                  [len(cueTones)]int
}

// NewAudioSystem creates a silent audio system.
func NewAudioSystem(cfg config.AudioConfig) *AudioSystem {
	return &AudioSystem{
		rate:   beep.SampleRate(cfg.SampleRate),
		volume: cfg.Volume,
		mixer:  &beep.Mixer{},
		lock:   func() {},
		unlock: func() {},
	}
}

// StartSpeaker opens the audio device and starts playing the mixer.
func (s *AudioSystem) StartSpeaker() error {
	if err := speaker.Init(s.rate, s.rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("initializing speaker: %w", err)
	}
	speaker.Play(s.mixer)
	s.lock = speaker.Lock
	s.unlock = speaker.Unlock
	s.enabled = true
	return nil
}

// Enable queues cues without a speaker.
func (s *AudioSystem) Enable() { s.enabled = true }

// Streamer returns the mixer that carries every cue.
func (s *AudioSystem) Streamer() beep.Streamer { return s.mixer }

// Played returns how many cues of a kind were queued.
func (s *AudioSystem) Played(c Cue) int { return s.played[c] }

// FromWorld counts active minions and spores.
func (s *AudioSystem) FromWorld(w *world.World) {
	s.minions = countActive(w, components.KindMinion)
	s.spores = countActive(w, components.KindSpore)
}

func countActive(w *world.World, kind components.AgentKind) int {
	n := 0
	for a := range w.Agents(kind) {
		if a.IsActive() {
			n++
		}
	}
	return n
}

// Update queues one cue per kind of population change.
func (s *AudioSystem) Update(float64) {
	if !s.primed {
		s.prevMinions, s.prevSpores = s.minions, s.spores
		s.primed = true
		return
	}
	switch {
	case s.minions > s.prevMinions:
		s.play(CueBirth)
	case s.minions < s.prevMinions:
		s.play(CueDeath)
	}
	if s.spores > s.prevSpores {
		s.play(CueSpore)
	}
	s.prevMinions, s.prevSpores = s.minions, s.spores
}

func (s *AudioSystem) play(c Cue) {
	if !s.enabled {
		return
	}
	tone := cueTones[c]
	streamer := &effects.Volume{
		Streamer: beep.Take(s.rate.N(tone.duration), newTone(s.rate, tone.freq)),
		Base:     2,
		Volume:   s.volume,
	}

	s.lock()
	defer s.unlock()
	if s.mixer.Len() >= maxQueuedCues {
		return
	}
	s.mixer.Add(streamer)
	s.played[c]++
}

// tone is a sine oscillator with a short linear fade-in.
type tone struct {
	rate beep.SampleRate
	freq float64
	pos  int
}

func newTone(rate beep.SampleRate, freq float64) *tone {
	return &tone{rate: rate, freq: freq}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	fade := float64(t.rate.N(5 * time.Millisecond))
	for i := range samples {
		x := float64(t.pos) / float64(t.rate)
		v := math.Sin(2 * math.Pi * t.freq * x)
		if p := float64(t.pos); p < fade {
			v *= p / fade
		}
		samples[i][0] = v
		samples[i][1] = v
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }
