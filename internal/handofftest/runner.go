package handofftest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/akirun/vdotcoach/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
)

// Run executes the complete hand-off test.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting hand-off contract test",
		logger.String("baseURL", config.BaseURL),
		logger.Int("cases", config.NumCases),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.String("logFile", config.LogFile),
		logger.Any("verbose", config.Verbose))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Generate payload cases
	cases := generateCases(ctx, config, stats)

	// Step 3: Submit cases concurrently and verify the contract
	if err := submitCases(ctx, config, cases, stats); err != nil {
		return fmt.Errorf("payload submission failed: %w", err)
	}

	// Step 4: Verify projection monotonicity on the calculator side
	if err := verifyProjectionMonotonicity(ctx, config, stats); err != nil {
		return fmt.Errorf("projection verification failed: %w", err)
	}

	// Step 5: Verify the full calculator -> planner round trip
	if err := verifyRoundTrip(ctx, config, stats); err != nil {
		return fmt.Errorf("round-trip verification failed: %w", err)
	}

	// Step 6: Save cases to file
	if err := saveCasesToFile(ctx, config, cases); err != nil {
		logger.Get().Warn(ctx, "failed to save cases to file", logger.Error(err))
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "test completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/healthz"

	resp, err := client.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	// Accept any 200 response as healthy (the service returns Prometheus metrics)
	if resp.StatusCode != StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// saveCasesToFile saves the generated cases to a JSON file.
func saveCasesToFile(ctx context.Context, config *Config, cases []Case) error {
	if len(cases) == 0 {
		return fmt.Errorf("no cases to save")
	}

	// Determine output filename
	filename := config.OutputFile
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = "handoff_cases_" + timestamp + ".json"
	}

	// Ensure the directory exists
	dir := filepath.Dir(filename)
	if dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	// Write cases to file
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close file", logger.Error(err))
		}
	}()

	// Write JSON array
	if _, err := file.WriteString("[\n"); err != nil {
		return fmt.Errorf("failed to write opening bracket: %w", err)
	}

	for i, c := range cases {
		jsonData, err := marshalJSON(c)
		if err != nil {
			return fmt.Errorf("failed to marshal case %d: %w", i, err)
		}

		if _, err := file.Write(jsonData); err != nil {
			return fmt.Errorf("failed to write case %d: %w", i, err)
		}

		// Add comma except for last case
		if i < len(cases)-1 {
			if _, err := file.WriteString(","); err != nil {
				return fmt.Errorf("failed to write comma: %w", err)
			}
		}
		_, _ = file.WriteString("\n")
	}

	if _, err := file.WriteString("]\n"); err != nil {
		return fmt.Errorf("failed to write closing bracket: %w", err)
	}

	logger.Get().Info(ctx, "cases saved to file", logger.String("filename", filename))
	return nil
}

// displayFinalStats prints the final test statistics.
func displayFinalStats(stats *Stats) {
	var passRate, casesPerSecond float64

	if stats.CasesSubmitted > 0 {
		passRate = float64(stats.CasesPassed) / float64(stats.CasesSubmitted) * PercentageMultiplier
	}

	if stats.Duration > 0 {
		casesPerSecond = float64(stats.CasesSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("casesGenerated", stats.CasesGenerated),
		logger.Int("casesSubmitted", stats.CasesSubmitted),
		logger.Int("casesPassed", stats.CasesPassed),
		logger.Int("casesFailed", stats.CasesFailed),
		logger.Int("requestsFailed", stats.RequestsFailed),
		logger.Int("projectionChecks", stats.ProjectionChecks),
		logger.Int("roundTripChecks", stats.RoundTripChecks),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("passRate", passRate),
		logger.Float64("casesPerSecond", casesPerSecond))
}
