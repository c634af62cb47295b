package game

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/aimtrainer/internal/loop/config"
)

// Geometry is a render area: size plus top-left offset, in terminal cells.
type Geometry struct {
	X, Y          int
	Width, Height int
}

// Settings is the per-session mutable state outside of targeting.
type Settings struct {
	Volume     float64
	Paused     bool
	Fullscreen bool
	Windowed   Geometry // Saved when entering fullscreen, restored on leaving

	volumeChangedAt time.Time
}

// NewSettings creates settings with the given starting volume.
func NewSettings(volume float64) Settings {
	return Settings{
		Volume: mgl64.Clamp(volume, 0, 1),
		Windowed: Geometry{
			Width:  config.WindowedWidth,
			Height: config.WindowedHeight,
		},
	}
}

// AdjustVolume changes the volume by delta, clamped to [0, 1], and starts
// the volume overlay timer.
func (s *Settings) AdjustVolume(delta float64, now time.Time) {
	s.Volume = mgl64.Clamp(s.Volume+delta, 0, 1)
	s.volumeChangedAt = now
}

// VolumeOverlay reports whether the volume readout is visible at now and
// its opacity. It shows for VolumeDisplayDuration and fades linearly
// during the final half second.
func (s *Settings) VolumeOverlay(now time.Time) (visible bool, alpha float64) {
	if s.volumeChangedAt.IsZero() {
		return false, 0
	}
	elapsed := now.Sub(s.volumeChangedAt)
	if elapsed < 0 || elapsed >= config.VolumeDisplayDuration {
		return false, 0
	}
	if elapsed <= config.VolumeDisplayFadeStart {
		return true, 1
	}
	fade := config.VolumeDisplayDuration - config.VolumeDisplayFadeStart
	return true, float64(config.VolumeDisplayDuration-elapsed) / float64(fade)
}

// TogglePause flips the paused flag and returns the new value.
func (s *Settings) TogglePause() bool {
	s.Paused = !s.Paused
	return s.Paused
}

// ToggleFullscreen flips fullscreen. current is the windowed geometry in
// effect right now; it is saved on the way in. The returned geometry is
// the one to apply: zero for fullscreen, the saved one when leaving.
func (s *Settings) ToggleFullscreen(current Geometry) Geometry {
	if !s.Fullscreen {
		s.Windowed = current
		s.Fullscreen = true
		return Geometry{}
	}
	s.Fullscreen = false
	return s.Windowed
}
