package handofftest

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/akirun/vdotcoach/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string) error {
	// Initialize the logger first
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "handoff_test_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, file)
	log.SetOutput(multiWriter)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the hand-off test tool.
func ShowHelp() {
	os.Stdout.WriteString(`VDOT Coach Hand-off Test Tool
=============================

A concurrent tool for exercising the calculator/planner hand-off
contract of a running VDOT coach service. It assumes the service's
stock defaults (best 4:00:00, target 3:30:00).

Usage:
  go run cmd/test-handoff/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:8080")
  -cases int
        Number of hand-off payloads to generate and submit (default 1000)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 30s)
  -output string
        Output file for generated cases (default: handoff_cases_TIMESTAMP.json)
  -log string
        Log file for test output (default: handoff_test_TIMESTAMP.log)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Test with default settings
  go run cmd/test-handoff/main.go

  # Heavier run against a remote deployment
  go run cmd/test-handoff/main.go -cases 50000 -workers 16 -url https://coach.example

  # Test with verbose output
  go run cmd/test-handoff/main.go -verbose -cases 1000
`)
}
