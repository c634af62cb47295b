// Package config centralizes all tunable game parameters.
package config

import "time"

// Camera
const (
	MouseSensitivity = 0.003 // Radians per raw pointer unit
	PitchLimit       = 1.5   // Radians, symmetric around the horizon
	FOVDegrees       = 90.0  // Vertical field of view
)

// Terminal pointer scaling - one terminal cell expressed in raw pointer units.
// Cells are roughly twice as tall as they are wide.
const (
	PointerUnitsPerColumn = 10.0
	PointerUnitsPerRow    = 20.0
	KeyLookStep           = 0.05 // Radians per arrow/WASD press
)

// Target
const (
	MinTargetRadius     = 0.2
	MaxTargetRadius     = 3.0
	TargetSizeStep      = 0.1 // Radius change per scroll unit
	InitialTargetRadius = 1.0
)

// Initial target position (before the first respawn)
const (
	InitialTargetX = 0.0
	InitialTargetY = 0.0
	InitialTargetZ = -7.0
)

// Spawning
const (
	SpawnMinDistance = 2.0
	SpawnMaxRetries  = 10
	SpawnLatticeStep = 0.8
	SpawnNearZ       = -6.0
)

// Hit animation
const (
	HitAnimationDuration = 200 * time.Millisecond
	HitScaleAmplitude    = 0.5
)

// Volume
const (
	InitialVolume          = 0.5
	VolumeStep             = 0.1
	VolumeDisplayDuration  = 2 * time.Second
	VolumeDisplayFadeStart = 1500 * time.Millisecond // Fade runs over the last 0.5s
)

// Feedback cues
const (
	HitCueFrequency  = 880.0 // Hz
	HitCueDuration   = 100 * time.Millisecond
	MissCueFrequency = 220.0 // Hz
	MissCueDuration  = 50 * time.Millisecond
	CueAttack        = 5 * time.Millisecond
	CueRelease       = 30 * time.Millisecond
)

// HUD
const (
	FPSUpdateInterval = 250 * time.Millisecond
)

// Scene
const (
	FloorY      = -2.0
	FloorExtent = 10.0 // Grid spans [-FloorExtent, FloorExtent] on x and z
	FloorLine   = 0.04 // Grid line half-width in world units
	NearPlane   = 0.1
	FarPlane    = 100.0
)

// Windowed render area. Fullscreen uses the whole terminal.
const (
	WindowedWidth  = 100 // Terminal columns
	WindowedHeight = 36  // Terminal rows
)

// Pause menu layout in terminal cells
const (
	MenuButtonWidth   = 20
	MenuButtonHeight  = 3
	MenuButtonSpacing = 1
)

// Server hub
const (
	ServerTickRate  = 10 // Leaderboard refreshes per second
	ServerTickTime  = time.Second / ServerTickRate
	TopScoresCount  = 5
	TopScoreMinShot = 10 // Shots needed before accuracy counts for the leaderboard
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)
