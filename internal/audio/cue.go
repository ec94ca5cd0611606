package audio

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"eyeflow/internal/core/session"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)
	toneLength = 140 * time.Millisecond
	toneGap    = 60 * time.Millisecond
)

// ErrAudioUnavailable indicates the speaker could not be opened.
var ErrAudioUnavailable = errors.New("audio unavailable")

// Cue identifies a session sound.
type Cue int

const (
	CueRest Cue = iota
	CueTrain
	CueComplete
)

// notes returns the tone frequencies played for the cue.
func (cue Cue) notes() []float64 {
	switch cue {
	case CueRest:
		return []float64{660, 440}
	case CueTrain:
		return []float64{440, 660}
	case CueComplete:
		return []float64{523.25, 659.25, 783.99}
	default:
		return nil
	}
}

// Player plays session cues.
type Player interface {
	Play(cue Cue)
}

// Silent discards cues.
type Silent struct{}

// Play does nothing.
func (Silent) Play(Cue) {}

// Chime plays cues through the system speaker.
type Chime struct {
	mu      sync.Mutex
	mixer   *beep.Mixer
	volume  float64
	enabled bool
}

// NewChime opens the speaker. On failure the returned error wraps
// ErrAudioUnavailable and callers should fall back to Silent.
func NewChime() (*Chime, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("init speaker: %w: %v", ErrAudioUnavailable, err)
	}
	chime := &Chime{
		mixer:   &beep.Mixer{},
		volume:  -1.5,
		enabled: true,
	}
	speaker.Play(chime.mixer)
	return chime, nil
}

// SetEnabled mutes or unmutes cues.
func (chime *Chime) SetEnabled(enabled bool) {
	chime.mu.Lock()
	defer chime.mu.Unlock()
	chime.enabled = enabled
}

// Play queues the cue on the mixer.
func (chime *Chime) Play(cue Cue) {
	chime.mu.Lock()
	enabled := chime.enabled
	volume := chime.volume
	chime.mu.Unlock()
	if !enabled {
		return
	}

	streamer, err := cueStreamer(cue, sampleRate)
	if err != nil {
		return
	}
	speaker.Lock()
	chime.mixer.Add(&effects.Volume{
		Streamer: streamer,
		Base:     2,
		Volume:   volume,
	})
	speaker.Unlock()
}

// Close stops playback.
func (chime *Chime) Close() {
	speaker.Lock()
	chime.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
}

// cueStreamer builds the finite tone sequence for a cue.
func cueStreamer(cue Cue, rate beep.SampleRate) (beep.Streamer, error) {
	notes := cue.notes()
	if len(notes) == 0 {
		return nil, fmt.Errorf("unknown cue %d", cue)
	}

	var parts []beep.Streamer
	for index, frequency := range notes {
		if index > 0 {
			parts = append(parts, beep.Silence(rate.N(toneGap)))
		}
		tone, err := generators.SineTone(rate, frequency)
		if err != nil {
			return nil, fmt.Errorf("sine tone %.2f: %w", frequency, err)
		}
		parts = append(parts, beep.Take(rate.N(toneLength), tone))
	}
	return beep.Seq(parts...), nil
}

// ForTransition returns the cue announcing a phase change.
func ForTransition(from, to session.Phase) (Cue, bool) {
	if from == to {
		return 0, false
	}
	switch to {
	case session.PhaseResting:
		return CueRest, true
	case session.PhaseTraining:
		return CueTrain, true
	case session.PhaseComplete:
		return CueComplete, true
	default:
		return 0, false
	}
}
