package handofftest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// HTTPClient wraps http.Client with timeout
type HTTPClient struct {
	client  *http.Client
	timeout time.Duration
}

// newHTTPClient creates a new HTTP client with timeout
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
	}
}

// Get performs a GET request bound to ctx
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// marshalJSON marshals a struct to JSON
func marshalJSON(v interface{}) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal: %w", err)
	}
	return data, nil
}

// getJSON performs a GET request and decodes the JSON answer into v
func (c *HTTPClient) getJSON(ctx context.Context, url string, v interface{}) error {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Printf("failed to close response body: %v", err)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != StatusOK {
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// submitCases fires the payload cases at /api/plan concurrently and
// verifies the per-field defaulting contract on every response.
func submitCases(ctx context.Context, config *Config, cases []Case, stats *Stats) error {
	log.Printf("Submitting %d payloads with %d workers...", len(cases), config.Workers)

	client := newHTTPClient(config.Timeout)

	// Counters for statistics
	var (
		submitted int64
		passed    int64
		failed    int64
		requests  int64
	)

	// Progress reporting
	var lastReport time.Time
	reportInterval := 1 * time.Second

	// Create worker pool
	caseChan := make(chan Case, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	// Start workers
	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for c := range caseChan {
				select {
				case <-ctx.Done():
					return
				default:
					atomic.AddInt64(&submitted, 1)

					var plan PlanResponse
					url := config.BaseURL + "/api/plan?" + c.Query
					if err := client.getJSON(ctx, url, &plan); err != nil {
						atomic.AddInt64(&requests, 1)
						if config.Verbose {
							log.Printf("request failed for case %s: %v", c.ID, err)
						}
						continue
					}

					if err := checkCase(c, plan); err != nil {
						atomic.AddInt64(&failed, 1)
						log.Printf("contract violation in case %s (%s): %v", c.ID, c.Kind, err)
					} else {
						atomic.AddInt64(&passed, 1)
					}

					// Progress reporting
					if time.Since(lastReport) >= reportInterval {
						lastReport = time.Now()
						log.Printf("progress: %d/%d submitted (passed: %d, failed: %d, request errors: %d)",
							atomic.LoadInt64(&submitted), len(cases),
							atomic.LoadInt64(&passed), atomic.LoadInt64(&failed),
							atomic.LoadInt64(&requests))
					}
				}
			}
		}()
	}

	// Send cases to workers
	go func() {
		defer close(caseChan)
		for _, c := range cases {
			select {
			case <-ctx.Done():
				return
			case caseChan <- c:
			}
		}
	}()

	// Wait for all workers to complete
	wg.Wait()

	// Update stats
	stats.CasesSubmitted = int(atomic.LoadInt64(&submitted))
	stats.CasesPassed = int(atomic.LoadInt64(&passed))
	stats.CasesFailed = int(atomic.LoadInt64(&failed))
	stats.RequestsFailed = int(atomic.LoadInt64(&requests))

	log.Printf(`payload submission completed:
   Passed: %d
   Failed: %d
   Request errors: %d
`, stats.CasesPassed, stats.CasesFailed, stats.RequestsFailed)

	if stats.CasesFailed > 0 {
		return fmt.Errorf("%d payload cases violated the defaulting contract", stats.CasesFailed)
	}
	return nil
}

// checkCase verifies one response against the case's expected times.
func checkCase(c Case, plan PlanResponse) error {
	got := Clock{Hours: plan.Best.Hours, Minutes: plan.Best.Minutes, Seconds: plan.Best.Seconds}
	if got != c.WantBest {
		return fmt.Errorf("best = %+v, want %+v (query %q)", got, c.WantBest, c.Query)
	}
	got = Clock{Hours: plan.Target.Hours, Minutes: plan.Target.Minutes, Seconds: plan.Target.Seconds}
	if got != c.WantTarget {
		return fmt.Errorf("target = %+v, want %+v (query %q)", got, c.WantTarget, c.Query)
	}
	if len(plan.PhaseVdots) == 0 {
		return fmt.Errorf("response carries no phase targets (query %q)", c.Query)
	}
	return nil
}
