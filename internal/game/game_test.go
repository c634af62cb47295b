package game

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/aimtrainer/internal/camera"
	"github.com/tomz197/aimtrainer/internal/physics"
)

// fakeClock is a manually advanced clock.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// recordingSounder remembers every cue it was asked to play.
type recordingSounder struct {
	played  []Sound
	volumes []float64
}

func (r *recordingSounder) Play(s Sound, volume float64) {
	r.played = append(r.played, s)
	r.volumes = append(r.volumes, volume)
}

func newTestGame(t *testing.T) (*Game, *fakeClock, *recordingSounder) {
	t.Helper()
	clock := newFakeClock()
	sounder := &recordingSounder{}
	g := New(Options{
		Volume:  0.5,
		Sounder: sounder,
		Clock:   clock.Now,
		Rand:    rand.New(rand.NewSource(1)),
		Width:   80,
		Height:  24,
	})
	return g, clock, sounder
}

// placeTarget puts the target dead ahead of the default camera.
func placeTarget(g *Game, z, radius float64) {
	g.target.Position = mgl64.Vec3{0, 0, z}
	g.target.Radius = radius
}

func TestNewSpawnsAwayFromInitialPosition(t *testing.T) {
	g, _, _ := newTestGame(t)

	if g.Target().Radius != 1.0 {
		t.Errorf("Expected initial radius 1.0, got %f", g.Target().Radius)
	}
	if d := physics.Distance(g.Target().Position, mgl64.Vec3{0, 0, -7}); d < 2 {
		t.Errorf("Expected first spawn at least 2 from (0,0,-7), got %f", d)
	}
	if g.AnimationPhase().Active {
		t.Error("Expected no animation at start")
	}
}

func TestEndToEndHitRespawnsAfterAnimation(t *testing.T) {
	g, clock, sounder := newTestGame(t)
	placeTarget(g, -7, 1.0)

	dir := g.AimDirection()
	if !dir.ApproxEqualThreshold(mgl64.Vec3{0, 0, -1}, 1e-9) {
		t.Fatalf("Expected aim (0,0,-1), got %v", dir)
	}

	out := g.OnFire()
	if !out.Hit {
		t.Fatal("Expected centred shot to hit")
	}
	if len(sounder.played) != 1 || sounder.played[0] != SoundHit {
		t.Errorf("Expected a single hit cue, got %v", sounder.played)
	}
	if sounder.volumes[0] != 0.5 {
		t.Errorf("Expected cue at volume 0.5, got %f", sounder.volumes[0])
	}

	start := g.Target().Position

	// Still animating just before the deadline
	clock.Advance(199 * time.Millisecond)
	g.Update()
	if !g.AnimationPhase().Active {
		t.Error("Expected animation active at t0+199ms")
	}
	if g.Target().Position != start {
		t.Error("Expected target to stay put while animating")
	}

	clock.Advance(1 * time.Millisecond)
	g.Update()
	phase := g.AnimationPhase()
	if phase.Active {
		t.Error("Expected animation inactive at t0+200ms")
	}
	if phase.Scale != 1 {
		t.Errorf("Expected idle scale 1, got %f", phase.Scale)
	}
	if d := physics.Distance(g.Target().Position, start); d < 2.0 {
		t.Errorf("Expected respawn at least 2.0 away, got %f", d)
	}
	if g.Target().Radius != 1.0 {
		t.Errorf("Expected radius to survive respawn, got %f", g.Target().Radius)
	}
}

func TestAnimationActiveAcrossWholeWindow(t *testing.T) {
	g, clock, _ := newTestGame(t)
	placeTarget(g, -7, 1.0)
	g.OnFire()

	for ms := 0; ms < 200; ms += 10 {
		g.Update()
		if !g.AnimationPhase().Active {
			t.Fatalf("Expected animation active at t0+%dms", ms)
		}
		clock.Advance(10 * time.Millisecond)
	}
	g.Update()
	if g.AnimationPhase().Active {
		t.Error("Expected animation finished at t0+200ms")
	}
}

func TestMissStaysIdle(t *testing.T) {
	g, _, sounder := newTestGame(t)
	placeTarget(g, -7, 1.0)
	g.camera.SetOrientation(camera.Orientation{Yaw: math.Pi / 2})

	out := g.OnFire()
	if out.Hit || out.Ignored {
		t.Errorf("Expected a plain miss, got %+v", out)
	}
	if g.AnimationPhase().Active {
		t.Error("Expected no animation after a miss")
	}
	if len(sounder.played) != 1 || sounder.played[0] != SoundMiss {
		t.Errorf("Expected a single miss cue, got %v", sounder.played)
	}
	if g.Stats().Misses != 1 || g.Stats().Hits != 0 {
		t.Errorf("Expected 1 miss 0 hits, got %+v", g.Stats())
	}
}

func TestFireDuringAnimationIsIgnored(t *testing.T) {
	g, clock, sounder := newTestGame(t)
	placeTarget(g, -7, 1.0)

	g.OnFire()
	clock.Advance(50 * time.Millisecond)
	out := g.OnFire()

	if !out.Ignored {
		t.Error("Expected second shot to be ignored while animating")
	}
	if len(sounder.played) != 1 {
		t.Errorf("Expected no cue for the ignored shot, got %v", sounder.played)
	}
	if g.Stats().Shots() != 1 {
		t.Errorf("Expected 1 counted shot, got %d", g.Stats().Shots())
	}
}

func TestPauseBypassesAimAndFire(t *testing.T) {
	g, _, sounder := newTestGame(t)
	placeTarget(g, -7, 1.0)

	g.OnTogglePause()
	if !g.Paused() {
		t.Fatal("Expected paused")
	}

	before := g.Orientation()
	g.OnMouseMove(10, 10)
	g.OnMouseMove(60, 40)
	g.OnLook(100, 100)
	if g.Orientation() != before {
		t.Errorf("Expected orientation unchanged while paused, got %+v", g.Orientation())
	}

	if out := g.OnFire(); !out.Ignored {
		t.Error("Expected fire ignored while paused")
	}
	if len(sounder.played) != 0 {
		t.Errorf("Expected no cues while paused, got %v", sounder.played)
	}
}

func TestUnpauseRearmsFirstMovement(t *testing.T) {
	g, _, _ := newTestGame(t)

	g.OnMouseMove(10, 10)
	g.OnMouseMove(12, 10)
	g.OnTogglePause()
	g.OnTogglePause()

	yaw := g.Orientation().Yaw
	// Pointer reappears far away; this must only set the reference
	g.OnMouseMove(70, 20)
	if g.Orientation().Yaw != yaw {
		t.Errorf("Expected first move after unpause to be suppressed, yaw %f -> %f", yaw, g.Orientation().Yaw)
	}
	g.OnMouseMove(71, 20)
	if g.Orientation().Yaw == yaw {
		t.Error("Expected the second move after unpause to rotate the camera")
	}
}

func TestAnimationKeepsRunningWhilePaused(t *testing.T) {
	g, clock, _ := newTestGame(t)
	placeTarget(g, -7, 1.0)
	start := g.Target().Position

	g.OnFire()
	g.OnTogglePause()
	clock.Advance(300 * time.Millisecond)
	g.Update()

	if g.AnimationPhase().Active {
		t.Error("Expected animation to finish on wall clock during pause")
	}
	if g.Target().Position == start {
		t.Error("Expected the target to respawn during pause")
	}
}

func TestScrollClampsRadius(t *testing.T) {
	g, _, _ := newTestGame(t)

	g.OnScroll(1)
	if math.Abs(g.Target().Radius-1.1) > 1e-9 {
		t.Errorf("Expected radius 1.1, got %f", g.Target().Radius)
	}

	g.OnScroll(100)
	if g.Target().Radius != 3.0 {
		t.Errorf("Expected radius clamped to 3.0, got %f", g.Target().Radius)
	}

	g.OnScroll(-100)
	if g.Target().Radius != 0.2 {
		t.Errorf("Expected radius clamped to 0.2, got %f", g.Target().Radius)
	}
}

func TestVolumeClampsAndShowsOverlay(t *testing.T) {
	g, clock, _ := newTestGame(t)

	if visible, _ := g.VolumeOverlay(); visible {
		t.Error("Expected no volume overlay before any change")
	}

	g.OnVolume(0.8)
	if g.Settings().Volume != 1 {
		t.Errorf("Expected volume clamped to 1, got %f", g.Settings().Volume)
	}
	g.OnVolume(-5)
	if g.Settings().Volume != 0 {
		t.Errorf("Expected volume clamped to 0, got %f", g.Settings().Volume)
	}

	visible, alpha := g.VolumeOverlay()
	if !visible || alpha != 1 {
		t.Errorf("Expected opaque overlay right after change, got visible=%v alpha=%f", visible, alpha)
	}

	clock.Advance(1750 * time.Millisecond)
	visible, alpha = g.VolumeOverlay()
	if !visible || math.Abs(alpha-0.5) > 1e-9 {
		t.Errorf("Expected half-faded overlay at 1.75s, got visible=%v alpha=%f", visible, alpha)
	}

	clock.Advance(250 * time.Millisecond)
	if visible, _ := g.VolumeOverlay(); visible {
		t.Error("Expected overlay hidden after 2s")
	}
}

func TestFullscreenRestoresWindowedGeometry(t *testing.T) {
	g, _, _ := newTestGame(t)
	windowed := Geometry{X: 5, Y: 2, Width: 90, Height: 30}

	if next := g.OnToggleFullscreen(windowed); next != (Geometry{}) {
		t.Errorf("Expected zero geometry for fullscreen, got %+v", next)
	}
	if !g.Settings().Fullscreen {
		t.Fatal("Expected fullscreen")
	}

	next := g.OnToggleFullscreen(Geometry{})
	if next != windowed {
		t.Errorf("Expected restored geometry %+v, got %+v", windowed, next)
	}
	if g.Settings().Fullscreen {
		t.Error("Expected windowed after second toggle")
	}
}

func TestPauseMenuClicks(t *testing.T) {
	g, _, _ := newTestGame(t)
	g.OnTogglePause()

	settings := g.Menu().Button(ButtonSettings)
	g.OnClick(float64(settings.X), float64(settings.Y))
	if !g.Menu().SettingsOpen() {
		t.Error("Expected SETTINGS to open the settings panel")
	}

	resume := g.Menu().Button(ButtonResume)
	g.OnMouseMove(float64(resume.X+1), float64(resume.Y+1))
	if g.Menu().Hovered() != ButtonResume {
		t.Errorf("Expected RESUME hovered, got %v", g.Menu().Hovered())
	}
	g.OnClick(float64(resume.X+1), float64(resume.Y+1))
	if g.Paused() {
		t.Error("Expected RESUME to unpause")
	}
	if g.Menu().SettingsOpen() {
		t.Error("Expected settings panel closed after resume")
	}

	g.OnTogglePause()
	quit := g.Menu().Button(ButtonQuit)
	g.OnClick(float64(quit.X), float64(quit.Y+quit.Height-1))
	if !g.QuitRequested() {
		t.Error("Expected QUIT to request exit")
	}
}

func TestMenuConfirmPressesHoveredButton(t *testing.T) {
	g, _, _ := newTestGame(t)

	// Ignored while playing
	g.OnMenuConfirm()
	if g.Paused() || g.QuitRequested() {
		t.Fatal("Expected confirm to do nothing while playing")
	}

	g.OnTogglePause()
	g.OnMenuConfirm()
	if !g.Paused() {
		t.Error("Expected confirm with nothing hovered to keep the menu open")
	}

	settings := g.Menu().Button(ButtonSettings)
	g.OnMouseMove(float64(settings.X), float64(settings.Y))
	g.OnMenuConfirm()
	if !g.Menu().SettingsOpen() {
		t.Error("Expected confirm on SETTINGS to open the settings panel")
	}

	resume := g.Menu().Button(ButtonResume)
	g.OnMouseMove(float64(resume.X), float64(resume.Y))
	g.OnMenuConfirm()
	if g.Paused() {
		t.Error("Expected confirm on RESUME to unpause")
	}
}

func TestClickFiresWhenNotPaused(t *testing.T) {
	g, _, sounder := newTestGame(t)
	placeTarget(g, -7, 1.0)

	if out := g.OnClick(3, 3); !out.Hit {
		t.Error("Expected click to fire and hit")
	}
	if len(sounder.played) != 1 {
		t.Errorf("Expected one cue, got %v", sounder.played)
	}
}

func TestNilSounderIsTolerated(t *testing.T) {
	clock := newFakeClock()
	g := New(Options{Clock: clock.Now, Rand: rand.New(rand.NewSource(2)), Volume: -1})
	placeTarget(g, -7, 1.0)

	if out := g.OnFire(); !out.Hit {
		t.Error("Expected hit without a sound backend")
	}
	if g.Settings().Volume != 0.5 {
		t.Errorf("Expected default volume 0.5, got %f", g.Settings().Volume)
	}
}

func TestStatsAccuracy(t *testing.T) {
	s := Stats{}
	if s.Accuracy() != 0 {
		t.Errorf("Expected 0 accuracy with no shots, got %f", s.Accuracy())
	}
	s = Stats{Hits: 3, Misses: 1}
	if s.Accuracy() != 75 {
		t.Errorf("Expected 75%% accuracy, got %f", s.Accuracy())
	}
}
