package game

import (
	"math"
	"time"

	"github.com/tomz197/aimtrainer/internal/loop/config"
)

// HitAnimation is the timed feedback that follows a hit.
// While Active the target pulses and flashes; when it ends the target respawns.
type HitAnimation struct {
	Active bool
	Start  time.Time
}

// Phase is the renderer's view of the hit animation.
type Phase struct {
	Active   bool
	Progress float64 // 0 at the hit, 1 when finished
	Scale    float64 // Multiplier applied to the target radius
	Flash    float64 // 1 at the hit, decays to 0
}

// idlePhase is what the renderer sees when no animation is running.
var idlePhase = Phase{Scale: 1}

// Progress returns elapsed/duration clamped to [0, 1].
func (a HitAnimation) Progress(now time.Time) float64 {
	if !a.Active {
		return 0
	}
	p := float64(now.Sub(a.Start)) / float64(config.HitAnimationDuration)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Done reports whether an active animation has run its full duration.
func (a HitAnimation) Done(now time.Time) bool {
	return a.Active && now.Sub(a.Start) >= config.HitAnimationDuration
}

// PhaseAt evaluates the animation at now.
func (a HitAnimation) PhaseAt(now time.Time) Phase {
	if !a.Active {
		return idlePhase
	}
	p := a.Progress(now)
	return Phase{
		Active:   p < 1,
		Progress: p,
		Scale:    1 + config.HitScaleAmplitude*math.Sin(p*math.Pi),
		Flash:    1 - p,
	}
}
