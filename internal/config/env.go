// Package config provides shared configuration utilities.
package config

import (
	"os"
	"strconv"
)

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// GetEnvFloat parses the variable as a float64.
// Returns fallback if the variable is unset or not a number.
func GetEnvFloat(key string, fallback float64) float64 {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return f
}

// GetEnvInt parses the variable as an int.
// Returns fallback if the variable is unset or not an integer.
func GetEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}

// GetEnvBool parses the variable with strconv.ParseBool.
// Returns fallback if the variable is unset or unparsable.
func GetEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return b
}

// Settings holds the player-tunable values read from the environment.
type Settings struct {
	Sensitivity  float64 // Radians per raw pointer unit
	Volume       float64 // Initial volume, 0.0-1.0
	AudioEnabled bool    // Use the speaker backend (local play only)
	SampleRate   int     // Audio sample rate in Hz
	LogFile      string  // Log destination for local play, empty discards
	LogLevel     string  // debug, info, warn, error
}

// Load reads Settings from AIM_* variables, falling back to defaults
// for anything unset or invalid. Out-of-range values are clamped.
func Load() Settings {
	s := Settings{
		Sensitivity:  GetEnvFloat("AIM_SENSITIVITY", 0.003),
		Volume:       GetEnvFloat("AIM_VOLUME", 0.5),
		AudioEnabled: GetEnvBool("AIM_AUDIO", true),
		SampleRate:   GetEnvInt("AIM_SAMPLE_RATE", 48000),
		LogFile:      GetEnv("AIM_LOG_FILE", ""),
		LogLevel:     GetEnv("AIM_LOG_LEVEL", "info"),
	}
	if s.Sensitivity <= 0 {
		s.Sensitivity = 0.003
	}
	if s.Volume < 0 {
		s.Volume = 0
	}
	if s.Volume > 1 {
		s.Volume = 1
	}
	if s.SampleRate <= 0 {
		s.SampleRate = 48000
	}
	return s
}
