package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/akirun/vdotcoach/internal/domain/handoff"
	"github.com/akirun/vdotcoach/internal/domain/racetime"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if COACH_CONFIG is set
//  3. env (prefix COACH_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("COACH_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: COACH_ADDR, COACH_PLANNER_BASE_URL, ...
	// Map env keys like COACH_NUM_PHASES -> num_phases (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("COACH_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "coach_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if c.MinTrainingWeeks < 1 {
		return fmt.Errorf("%w: min_training_weeks must be at least 1", ErrInvalidConfig)
	}
	if c.NumPhases < 1 {
		return fmt.Errorf("%w: num_phases must be at least 1", ErrInvalidConfig)
	}
	if c.MaxScoreGain <= 0 {
		return fmt.Errorf("%w: max_vdot_gain must be positive", ErrInvalidConfig)
	}

	for _, field := range []struct {
		name  string
		value string
	}{
		{"default_best", c.DefaultBest},
		{"default_target", c.DefaultTarget},
	} {
		t, err := racetime.Parse(field.value)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, field.name, err)
		}
		if !handoff.CanCarry(t) {
			return fmt.Errorf("%w: %s %q outside the hand-off range", ErrInvalidConfig, field.name, field.value)
		}
	}
	return nil
}
