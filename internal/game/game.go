// Package game holds the aim trainer session: camera, target, hit
// animation and settings, driven by input events and a per-frame Update.
package game

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/aimtrainer/internal/camera"
	"github.com/tomz197/aimtrainer/internal/loop/config"
	"github.com/tomz197/aimtrainer/internal/object"
)

// Sound identifies a feedback cue.
type Sound int

const (
	SoundHit Sound = iota
	SoundMiss
)

// String returns the cue name.
func (s Sound) String() string {
	switch s {
	case SoundHit:
		return "hit"
	case SoundMiss:
		return "miss"
	default:
		return "unknown"
	}
}

// Sounder plays feedback cues. Play must return promptly; failures are the
// implementation's to swallow.
type Sounder interface {
	Play(s Sound, volume float64)
}

// ShotOutcome is the result of a single fire input.
type ShotOutcome struct {
	Hit     bool
	Ignored bool // Fired while paused or while a hit animation was running
}

// Stats counts shots for the HUD.
type Stats struct {
	Hits   int
	Misses int
}

// Shots returns the number of evaluated shots.
func (s Stats) Shots() int {
	return s.Hits + s.Misses
}

// Accuracy returns hits as a percentage of shots, 0 with no shots.
func (s Stats) Accuracy() float64 {
	if s.Shots() == 0 {
		return 0
	}
	return 100 * float64(s.Hits) / float64(s.Shots())
}

// Options configures a Game. Zero values select defaults, except Volume
// where zero means muted and a negative value selects the default.
type Options struct {
	Sensitivity float64          // Radians per raw pointer unit
	Volume      float64          // Initial volume; negative selects the default
	Sounder     Sounder          // Nil discards cues
	Clock       func() time.Time // Nil uses time.Now
	Rand        object.Intner    // Nil uses a time-seeded source
	Logger      *log.Logger      // Nil discards
	Width       int              // Framebuffer size for the pause menu
	Height      int

	// Raw pointer units per cell; OnMouseMove positions are multiplied by
	// these before reaching the camera. Zero means 1.
	PointerScaleX float64
	PointerScaleY float64
}

// Game is the session aggregate. It is owned by a single goroutine.
type Game struct {
	camera    *camera.Camera
	target    object.Target
	spawner   *object.TargetSpawner
	animation HitAnimation
	settings  Settings
	menu      *PauseMenu
	stats     Stats

	scaleX, scaleY float64

	sounder Sounder
	clock   func() time.Time
	logger  *log.Logger
	quit    bool
}

// New creates a session with the target placed at its first spawn point.
func New(opts Options) *Game {
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	volume := opts.Volume
	if volume < 0 {
		volume = config.InitialVolume
	}
	scaleX, scaleY := opts.PointerScaleX, opts.PointerScaleY
	if scaleX <= 0 {
		scaleX = 1
	}
	if scaleY <= 0 {
		scaleY = 1
	}

	g := &Game{
		camera:   camera.New(opts.Sensitivity),
		target:   object.NewTarget(),
		spawner:  object.NewTargetSpawner(opts.Rand),
		settings: NewSettings(volume),
		menu:     NewPauseMenu(opts.Width, opts.Height),
		scaleX:   scaleX,
		scaleY:   scaleY,
		sounder:  opts.Sounder,
		clock:    clock,
		logger:   logger,
	}
	g.spawner.Respawn(&g.target)
	return g
}

// OnMouseMove handles an absolute pointer position in cells. While paused
// it only moves the menu hover; otherwise it steers the camera.
func (g *Game) OnMouseMove(x, y float64) {
	if g.settings.Paused {
		g.menu.Hover(int(x), int(y))
		return
	}
	g.camera.HandlePointer(x*g.scaleX, y*g.scaleY)
}

// OnLook applies a raw look delta directly (keyboard look).
func (g *Game) OnLook(dx, dy float64) {
	if g.settings.Paused {
		return
	}
	g.camera.ApplyMouseDelta(dx, dy)
}

// OnFire evaluates a shot against the target.
// Shots while paused or during a hit animation are ignored.
func (g *Game) OnFire() ShotOutcome {
	if g.settings.Paused || g.animation.Active {
		return ShotOutcome{Ignored: true}
	}

	if g.target.HitBy(g.camera.AimDirection()) {
		g.animation = HitAnimation{Active: true, Start: g.clock()}
		g.stats.Hits++
		g.play(SoundHit)
		return ShotOutcome{Hit: true}
	}

	g.stats.Misses++
	g.play(SoundMiss)
	return ShotOutcome{}
}

// OnClick handles a primary click at a pointer position: a menu press
// while paused, a shot otherwise.
func (g *Game) OnClick(x, y float64) ShotOutcome {
	if !g.settings.Paused {
		return g.OnFire()
	}

	g.press(g.menu.ButtonAt(int(x), int(y)))
	return ShotOutcome{Ignored: true}
}

// OnMenuConfirm presses the hovered pause menu button (Enter key).
// Does nothing while playing or with no button hovered.
func (g *Game) OnMenuConfirm() {
	if !g.settings.Paused {
		return
	}
	g.press(g.menu.Hovered())
}

func (g *Game) press(b MenuButton) {
	switch b {
	case ButtonResume:
		g.OnTogglePause()
	case ButtonSettings:
		g.menu.settingsOpen = !g.menu.settingsOpen
	case ButtonQuit:
		g.logger.Debug("quit from pause menu")
		g.quit = true
	}
}

// OnScroll resizes the target by delta steps of TargetSizeStep.
func (g *Game) OnScroll(delta float64) {
	g.SetTargetRadius(g.target.Radius + delta*config.TargetSizeStep)
}

// SetTargetRadius sets the target radius, clamped to the allowed range.
func (g *Game) SetTargetRadius(r float64) {
	g.target.Radius = object.ClampRadius(r)
	g.logger.Debug("target radius changed", "radius", g.target.Radius)
}

// OnVolume changes the volume by delta.
func (g *Game) OnVolume(delta float64) {
	g.settings.AdjustVolume(delta, g.clock())
}

// OnTogglePause pauses or resumes. Resuming re-arms the camera so the
// first pointer position after recapture does not jerk the view.
func (g *Game) OnTogglePause() {
	paused := g.settings.TogglePause()
	g.menu.Reset()
	if !paused {
		g.camera.Rearm()
	}
	g.logger.Debug("pause toggled", "paused", paused)
}

// OnToggleFullscreen switches fullscreen. current is the windowed render
// area in effect; the returned geometry is the one to apply.
func (g *Game) OnToggleFullscreen(current Geometry) Geometry {
	next := g.settings.ToggleFullscreen(current)
	g.logger.Debug("fullscreen toggled", "fullscreen", g.settings.Fullscreen)
	return next
}

// OnResize relays a new framebuffer size to the pause menu layout. The
// pointer reference is dropped since cell positions shift with the area.
func (g *Game) OnResize(width, height int) {
	g.menu.Layout(width, height)
	g.camera.Rearm()
}

// Update advances the hit animation. When it has run its course the
// target respawns. Runs whether or not the session is paused.
func (g *Game) Update() {
	now := g.clock()
	if g.animation.Done(now) {
		g.animation = HitAnimation{}
		g.spawner.Respawn(&g.target)
		g.logger.Debug("target respawned", "position", g.target.Position)
	}
}

// Target returns the current target.
func (g *Game) Target() object.Target {
	return g.target
}

// AnimationPhase returns the hit animation state at the current time.
func (g *Game) AnimationPhase() Phase {
	return g.animation.PhaseAt(g.clock())
}

// AimDirection returns the camera's unit look vector.
func (g *Game) AimDirection() mgl64.Vec3 {
	return g.camera.AimDirection()
}

// Orientation returns the camera yaw and pitch.
func (g *Game) Orientation() camera.Orientation {
	return g.camera.Orientation()
}

// Sensitivity returns the camera sensitivity.
func (g *Game) Sensitivity() float64 {
	return g.camera.Sensitivity()
}

// Settings returns a copy of the session settings.
func (g *Game) Settings() Settings {
	return g.settings
}

// Paused reports whether the session is paused.
func (g *Game) Paused() bool {
	return g.settings.Paused
}

// VolumeOverlay reports whether the volume readout should be drawn and its opacity.
func (g *Game) VolumeOverlay() (visible bool, alpha float64) {
	return g.settings.VolumeOverlay(g.clock())
}

// Menu returns the pause menu for drawing.
func (g *Game) Menu() *PauseMenu {
	return g.menu
}

// Stats returns the shot counters.
func (g *Game) Stats() Stats {
	return g.stats
}

// QuitRequested reports whether the player chose QUIT in the pause menu.
func (g *Game) QuitRequested() bool {
	return g.quit
}

func (g *Game) play(s Sound) {
	if g.sounder == nil {
		return
	}
	g.sounder.Play(s, g.settings.Volume)
}
