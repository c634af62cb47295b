package client

import (
	"time"

	"github.com/tomz197/aimtrainer/internal/draw"
	"github.com/tomz197/aimtrainer/internal/loop/config"
)

// Mode represents the current phase for a client.
type Mode int

const (
	ModePlaying  Mode = iota // Aiming, including the pause menu
	ModeShutdown             // Server is shutting down
)

// ClientState holds per-session loop state outside of the game itself.
type ClientState struct {
	Mode          Mode
	prevMode      Mode
	Running       bool              // Client loop running
	termSizeFunc  draw.TermSizeFunc // Function to get terminal size
	delta         time.Duration     // Frame delta time
	shutdownTimer float64           // Countdown before auto-disconnect on shutdown
	isInactive    bool              // Whether the client is in inactive warning state
	wasInactive   bool

	// Largest render area while windowed
	windowWidth  int
	windowHeight int

	fps fpsCounter
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		Mode:         ModePlaying,
		Running:      true,
		windowWidth:  config.WindowedWidth,
		windowHeight: config.WindowedHeight,
	}
}

// fpsCounter averages frame rate over FPSUpdateInterval windows.
type fpsCounter struct {
	frames      int
	windowStart time.Time
	value       float64
}

// Tick counts one frame at now and returns the last published rate.
func (f *fpsCounter) Tick(now time.Time) float64 {
	if f.windowStart.IsZero() {
		f.windowStart = now
	}
	f.frames++
	if elapsed := now.Sub(f.windowStart); elapsed >= config.FPSUpdateInterval {
		f.value = float64(f.frames) / elapsed.Seconds()
		f.frames = 0
		f.windowStart = now
	}
	return f.value
}

// Value returns the last published rate.
func (f *fpsCounter) Value() float64 {
	return f.value
}
