package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/akirun/vdotcoach/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			// Clear any existing environment variables
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.PlannerBaseURL, convey.ShouldEqual, "/planner")
				convey.So(cfg.DefaultBest, convey.ShouldEqual, "4:00:00")
				convey.So(cfg.DefaultTarget, convey.ShouldEqual, "3:30:00")
				convey.So(cfg.MinTrainingWeeks, convey.ShouldEqual, 12)
				convey.So(cfg.NumPhases, convey.ShouldEqual, 4)
				convey.So(cfg.MaxScoreGain, convey.ShouldEqual, 3.0)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("COACH_ADDR", ":9090")
			_ = os.Setenv("COACH_PLANNER_BASE_URL", "https://coach.example/planner")
			_ = os.Setenv("COACH_DEFAULT_BEST", "4:30:00")
			_ = os.Setenv("COACH_MIN_TRAINING_WEEKS", "16")
			_ = os.Setenv("COACH_MAX_VDOT_GAIN", "2.5")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.PlannerBaseURL, convey.ShouldEqual, "https://coach.example/planner")
				convey.So(cfg.DefaultBest, convey.ShouldEqual, "4:30:00")
				convey.So(cfg.MinTrainingWeeks, convey.ShouldEqual, 16)
				convey.So(cfg.MaxScoreGain, convey.ShouldEqual, 2.5)
				convey.So(cfg.DefaultTarget, convey.ShouldEqual, "3:30:00") // untouched default
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
addr: ":7070"
planner_base_url: "/plan"
default_best: "3:45:00"
default_target: "3:15:00"
min_training_weeks: 14
num_phases: 5
max_vdot_gain: 4.0
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("COACH_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.PlannerBaseURL, convey.ShouldEqual, "/plan")
				convey.So(cfg.DefaultBest, convey.ShouldEqual, "3:45:00")
				convey.So(cfg.DefaultTarget, convey.ShouldEqual, "3:15:00")
				convey.So(cfg.MinTrainingWeeks, convey.ShouldEqual, 14)
				convey.So(cfg.NumPhases, convey.ShouldEqual, 5)
				convey.So(cfg.MaxScoreGain, convey.ShouldEqual, 4.0)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
addr: ":7070"
min_training_weeks: 14
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("COACH_CONFIG", tmpFile)
			_ = os.Setenv("COACH_ADDR", ":9090") // This should override the file
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")        // Overridden by env
				convey.So(cfg.MinTrainingWeeks, convey.ShouldEqual, 14) // From file
				convey.So(cfg.NumPhases, convey.ShouldEqual, 4)         // From defaults
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			invalidYaml := `invalid: yaml: content: [`
			tmpFile := createTempConfigFile(invalidYaml)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("COACH_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("COACH_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("COACH_ADDR", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with an unparsable default best", func() {
			_ = os.Setenv("COACH_DEFAULT_BEST", "25:99:00")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with a default target beyond the hand-off range", func() {
			_ = os.Setenv("COACH_DEFAULT_TARGET", "10:00:00")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with a non-positive phase count", func() {
			_ = os.Setenv("COACH_NUM_PHASES", "0")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with a negative score gain", func() {
			_ = os.Setenv("COACH_MAX_VDOT_GAIN", "-1")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("COACH_MIN_TRAINING_WEEKS", "not_a_number")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with partial YAML file", func() {
			yamlContent := `
addr: ":7070"
num_phases: 3
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("COACH_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should merge with defaults for missing fields", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")         // From file
				convey.So(cfg.NumPhases, convey.ShouldEqual, 3)          // From file
				convey.So(cfg.MinTrainingWeeks, convey.ShouldEqual, 12)  // From defaults
				convey.So(cfg.DefaultBest, convey.ShouldEqual, "4:00:00") // From defaults
			})
		})
	})
}

func TestConfigLoaderEdgeCases(t *testing.T) {
	convey.Convey("Given config loader edge cases", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with various addr formats", func() {
			_ = os.Setenv("COACH_ADDR", "localhost:8080")
			_ = os.Setenv("COACH_ADDR", "0.0.0.0:9090")
			_ = os.Setenv("COACH_ADDR", "[::1]:8080")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should handle them", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, "[::1]:8080") // Last one wins
			})
		})

		convey.Convey("When loading config with YAML file containing comments", func() {
			yamlContent := `
# Listen address
addr: ":7070"  # Inline comment
# Planner hand-off
planner_base_url: "/plan"
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("COACH_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should parse YAML with comments", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.PlannerBaseURL, convey.ShouldEqual, "/plan")
			})
		})

		convey.Convey("When loading config with clock-style default times in minutes form", func() {
			_ = os.Setenv("COACH_DEFAULT_TARGET", "3:15:30")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then the value should survive validation", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.DefaultTarget, convey.ShouldEqual, "3:15:30")

				target, err := cfg.DefaultTargetTime()
				convey.So(err, convey.ShouldBeNil)
				convey.So(target.TotalSeconds(), convey.ShouldEqual, 3*3600+15*60+30)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"COACH_CONFIG",
		"COACH_ADDR",
		"COACH_PLANNER_BASE_URL",
		"COACH_DEFAULT_BEST",
		"COACH_DEFAULT_TARGET",
		"COACH_MIN_TRAINING_WEEKS",
		"COACH_NUM_PHASES",
		"COACH_MAX_VDOT_GAIN",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "coach-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
