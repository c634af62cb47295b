package game

import (
	"testing"
	"time"
)

func TestNewSettingsClampsVolume(t *testing.T) {
	if v := NewSettings(3).Volume; v != 1 {
		t.Errorf("Expected volume 1, got %f", v)
	}
	if v := NewSettings(-1).Volume; v != 0 {
		t.Errorf("Expected volume 0, got %f", v)
	}
	s := NewSettings(0.5)
	if s.Windowed.Width != 100 || s.Windowed.Height != 36 {
		t.Errorf("Expected default windowed 100x36, got %+v", s.Windowed)
	}
}

func TestVolumeOverlayTiming(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewSettings(0.5)
	s.AdjustVolume(0.1, now)

	tests := []struct {
		offset  time.Duration
		visible bool
		alpha   float64
	}{
		{0, true, 1},
		{time.Second, true, 1},
		{1500 * time.Millisecond, true, 1},
		{1900 * time.Millisecond, true, 0.2},
		{2 * time.Second, false, 0},
		{-time.Second, false, 0},
	}
	for _, tt := range tests {
		visible, alpha := s.VolumeOverlay(now.Add(tt.offset))
		if visible != tt.visible {
			t.Errorf("At %v: expected visible %v, got %v", tt.offset, tt.visible, visible)
		}
		if diff := alpha - tt.alpha; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("At %v: expected alpha %f, got %f", tt.offset, tt.alpha, alpha)
		}
	}
}

func TestTogglePause(t *testing.T) {
	s := NewSettings(0.5)
	if !s.TogglePause() || !s.Paused {
		t.Error("Expected paused after first toggle")
	}
	if s.TogglePause() || s.Paused {
		t.Error("Expected running after second toggle")
	}
}
