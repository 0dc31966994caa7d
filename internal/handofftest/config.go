// Package handofftest drives the running service through the hand-off
// contract: it generates valid, partial, out-of-range, and garbage
// payloads, fires them at the planner concurrently, and checks that
// every field is honored or defaulted independently.
package handofftest

import "time"

// Config holds configuration for the hand-off test
type Config struct {
	BaseURL    string        // Base URL of the service
	NumCases   int           // Number of payload cases to generate
	Workers    int           // Number of concurrent workers
	Timeout    time.Duration // HTTP request timeout
	OutputFile string        // Output file for generated cases
	LogFile    string        // Log file for test output
	Verbose    bool          // Enable verbose logging
}

// Clock is a race time split into parts, mirroring the wire shape
type Clock struct {
	Hours   int `json:"h"`
	Minutes int `json:"m"`
	Seconds int `json:"s"`
}

// Case is one generated hand-off payload with its expected outcome
type Case struct {
	ID         string `json:"id"`
	Kind       string `json:"kind"`
	Query      string `json:"query"`
	WantBest   Clock  `json:"want_best"`
	WantTarget Clock  `json:"want_target"`
}

// TimePart mirrors the planner's time shape on the wire
type TimePart struct {
	Hours   int    `json:"h"`
	Minutes int    `json:"m"`
	Seconds int    `json:"s"`
	Display string `json:"display"`
}

// PlanResponse is the subset of the plan answer the test verifies
type PlanResponse struct {
	Best        TimePart  `json:"best"`
	Target      TimePart  `json:"target"`
	CurrentVdot float64   `json:"current_vdot"`
	PhaseVdots  []float64 `json:"phase_vdots"`
}

// ProjectionResponse is the subset of the projection answer the test verifies
type ProjectionResponse struct {
	Vdot               float64  `json:"vdot"`
	MarathonEquivalent TimePart `json:"marathon_equivalent"`
}

// LinkResponse is the hand-off link answer
type LinkResponse struct {
	URL string `json:"url"`
}

// Stats holds test statistics
type Stats struct {
	CasesGenerated   int
	CasesSubmitted   int
	CasesPassed      int
	CasesFailed      int
	RequestsFailed   int
	ProjectionChecks int
	RoundTripChecks  int
	StartTime        time.Time
	EndTime          time.Time
	Duration         time.Duration
}
