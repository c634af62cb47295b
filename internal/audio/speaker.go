package audio

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/tomz197/aimtrainer/internal/game"
)

// Speaker plays cues on the local sound device.
type Speaker struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	rate        beep.SampleRate
	logger      *log.Logger
	initialized bool
}

// NewSpeaker creates a speaker at the given sample rate. Call Initialize
// before the first Play.
func NewSpeaker(sampleRate int, logger *log.Logger) *Speaker {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Speaker{
		mixer:  &beep.Mixer{},
		rate:   beep.SampleRate(sampleRate),
		logger: logger,
	}
}

// Initialize opens the sound device and starts the mixer.
func (s *Speaker) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}

	// 100ms buffer
	if err := speaker.Init(s.rate, s.rate.N(100*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(s.mixer)
	s.initialized = true
	s.logger.Debug("audio initialized", "sampleRate", int(s.rate))
	return nil
}

// Play queues a cue on the mixer and returns immediately.
// Does nothing before Initialize.
func (s *Speaker) Play(snd game.Sound, volume float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}

	speaker.Lock()
	s.mixer.Add(Cue(snd, volume, s.rate))
	speaker.Unlock()
}

// Cleanup drops any playing cues and closes the device.
func (s *Speaker) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}

	speaker.Clear()
	speaker.Close()
	s.initialized = false
}

// Bell rings the terminal bell on hits. It serves remote sessions where the
// server has no access to the player's sound device.
type Bell struct {
	w io.Writer
}

// NewBell creates a Bell writing to w.
func NewBell(w io.Writer) *Bell {
	return &Bell{w: w}
}

// Play writes BEL for a hit at non-zero volume. Misses are silent.
func (b *Bell) Play(snd game.Sound, volume float64) {
	if snd != game.SoundHit || volume <= 0 {
		return
	}
	_, _ = io.WriteString(b.w, "\a")
}

// Nop discards cues.
type Nop struct{}

// Play does nothing.
func (Nop) Play(game.Sound, float64) {}

var (
	_ game.Sounder = (*Speaker)(nil)
	_ game.Sounder = (*Bell)(nil)
	_ game.Sounder = Nop{}
)
