// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults; Load layers file and env on top.
// - Loading functions accept context.Context as the first parameter.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"github.com/akirun/vdotcoach/internal/domain/racetime"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// PlannerBaseURL is the base URL hand-off links point at. A relative
	// path keeps both tools on one host; an absolute URL points links at
	// a planner deployed elsewhere.
	PlannerBaseURL string `koanf:"planner_base_url"`

	// DefaultBest and DefaultTarget prefill planner fields that arrive
	// absent or unreadable, written as clock strings.
	DefaultBest   string `koanf:"default_best"`
	DefaultTarget string `koanf:"default_target"`

	// MinTrainingWeeks pins the shortest training window a plan may get.
	MinTrainingWeeks int `koanf:"min_training_weeks"`

	// NumPhases sets how many phases a plan climbs through.
	NumPhases int `koanf:"num_phases"`

	// MaxScoreGain caps the score improvement one cycle may promise.
	MaxScoreGain float64 `koanf:"max_vdot_gain"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		Addr:             ":8080",
		PlannerBaseURL:   "/planner",
		DefaultBest:      "4:00:00",
		DefaultTarget:    "3:30:00",
		MinTrainingWeeks: 12,
		NumPhases:        4,
		MaxScoreGain:     3.0,
	}
}

// DefaultBestTime returns the parsed default best time. Load validates
// the string, so an error here means the Config was built by hand.
func (c *Config) DefaultBestTime() (racetime.RaceTime, error) {
	return racetime.Parse(c.DefaultBest)
}

// DefaultTargetTime returns the parsed default target time.
func (c *Config) DefaultTargetTime() (racetime.RaceTime, error) {
	return racetime.Parse(c.DefaultTarget)
}
