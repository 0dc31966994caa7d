package handofftest

import (
	"context"
	"fmt"
	"log"
	"net/url"
)

// verifyProjectionMonotonicity sweeps 5k finish times from fast to slow
// and checks that the projected marathon never gets faster as the 5k
// gets slower.
func verifyProjectionMonotonicity(ctx context.Context, config *Config, stats *Stats) error {
	log.Println("Verifying projection monotonicity over a 5k sweep...")

	client := newHTTPClient(config.Timeout)

	prev := -1
	for minutes := 15; minutes <= 35; minutes++ {
		finish := fmt.Sprintf("%d:00", minutes)
		reqURL := fmt.Sprintf("%s/api/projection?distance=5k&time=%s", config.BaseURL, url.QueryEscape(finish))

		var projection ProjectionResponse
		if err := client.getJSON(ctx, reqURL, &projection); err != nil {
			return fmt.Errorf("projection request for 5k %s failed: %w", finish, err)
		}

		eq := projection.MarathonEquivalent
		total := eq.Hours*3600 + eq.Minutes*60 + eq.Seconds
		if total < prev {
			return fmt.Errorf("5k %s projects marathon %s, faster than the previous slower 5k", finish, eq.Display)
		}
		prev = total
		stats.ProjectionChecks++
	}

	log.Printf("projection monotonicity verified over %d points", stats.ProjectionChecks)
	return nil
}

// verifyRoundTrip builds a hand-off link on the calculator side and
// feeds its query back to the planner, checking the payload survives
// the full crossing.
func verifyRoundTrip(ctx context.Context, config *Config, stats *Stats) error {
	log.Println("Verifying calculator -> planner round trip...")

	client := newHTTPClient(config.Timeout)

	linkURL := config.BaseURL + "/api/handoff-link?distance=marathon&time=4:00:00&target=3:30:00"
	var link LinkResponse
	if err := client.getJSON(ctx, linkURL, &link); err != nil {
		return fmt.Errorf("hand-off link request failed: %w", err)
	}

	parsed, err := url.Parse(link.URL)
	if err != nil {
		return fmt.Errorf("unparsable hand-off link %q: %w", link.URL, err)
	}

	var plan PlanResponse
	if err := client.getJSON(ctx, config.BaseURL+"/api/plan?"+parsed.RawQuery, &plan); err != nil {
		return fmt.Errorf("plan request for generated link failed: %w", err)
	}

	if plan.Best.Display != "4:00:00" || plan.Target.Display != "3:30:00" {
		return fmt.Errorf("round trip mangled the payload: best %s, target %s",
			plan.Best.Display, plan.Target.Display)
	}

	stats.RoundTripChecks++
	log.Println("round trip verified")
	return nil
}
