package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/akirun/vdotcoach/internal/handofftest"
)

// Default configuration constants.
const (
	defaultNumCases    = 1000
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
	defaultTimeout     = 30 * time.Second
	defaultTestTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL    = flag.String("url", "http://localhost:8080", "Base URL of the service")
		numCases   = flag.Int("cases", defaultNumCases, "Number of hand-off payloads to generate and submit")
		workers    = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		outputFile = flag.String("output", "", "Output file for generated cases (default: handoff_cases_TIMESTAMP.json)")
		logFile    = flag.String("log", "", "Log file for test output (default: handoff_test_TIMESTAMP.log)")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		handofftest.ShowHelp()
		return
	}

	// Setup logging
	if err := handofftest.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), defaultTestTimeout)
	defer cancel()

	// Create test configuration
	config := &handofftest.Config{
		BaseURL:    *baseURL,
		NumCases:   *numCases,
		Workers:    *workers,
		Timeout:    *timeout,
		OutputFile: *outputFile,
		LogFile:    *logFile,
		Verbose:    *verbose,
	}

	// Run the test
	if err := handofftest.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Test failed: " + err.Error() + "\n")
		return
	}
}
