package handofftest

import (
	"context"
	"crypto/rand"
	"math/big"
	"strconv"
	"strings"

	"github.com/akirun/vdotcoach/pkg/logger"
	"github.com/google/uuid"
)

// Field states a generated payload field can be in.
const (
	stateValid      = 0
	stateMissing    = 1
	stateOutOfRange = 2
	stateGarbage    = 3
	fieldStateCount = 4
)

// Payload field bounds mirrored from the contract.
const (
	maxHours   = 9
	maxMinutes = 59
	maxSeconds = 59
)

// payloadKeys in wire order; the first three are the best time.
var payloadKeys = []string{"best_h", "best_m", "best_s", "target_h", "target_m", "target_s"} //nolint:gochecknoglobals // fixed contract order

// randomInt returns a random int in [0, n) using crypto/rand.
func randomInt(n int) int {
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

// generateCases creates hand-off payloads with per-field states drawn
// independently, which is exactly the degradation mode the contract
// defends against: valid fields must survive their broken neighbours.
func generateCases(ctx context.Context, config *Config, stats *Stats) []Case {
	logger.Get().Info(ctx, "generating hand-off payload cases", logger.Int("numCases", config.NumCases))

	cases := make([]Case, config.NumCases)
	for i := range cases {
		cases[i] = generateSingleCase()
	}

	// Pin the contract's corner cases so every run covers them.
	if len(cases) >= 4 {
		cases[0] = fixedCase("full",
			"best_h=4&best_m=0&best_s=0&target_h=3&target_m=30&target_s=0",
			Clock{Hours: 4}, Clock{Hours: 3, Minutes: 30})
		cases[1] = fixedCase("partial",
			"best_h=3&best_m=30",
			Clock{Hours: 3, Minutes: 30}, DefaultTarget)
		cases[2] = fixedCase("empty", "", DefaultBest, DefaultTarget)
		cases[3] = fixedCase("out_of_range",
			"best_h=99&best_m=10",
			Clock{Hours: DefaultBest.Hours, Minutes: 10}, DefaultTarget)
	}

	stats.CasesGenerated = len(cases)
	logger.Get().Info(ctx, "generated cases successfully", logger.Int("count", len(cases)))
	return cases
}

// generateSingleCase creates one case with random per-field states.
func generateSingleCase() Case {
	params := make([]string, 0, len(payloadKeys))
	want := make([]int, len(payloadKeys))
	kinds := make(map[string]bool)

	defaults := []int{
		DefaultBest.Hours, DefaultBest.Minutes, DefaultBest.Seconds,
		DefaultTarget.Hours, DefaultTarget.Minutes, DefaultTarget.Seconds,
	}
	bounds := []int{maxHours, maxMinutes, maxSeconds, maxHours, maxMinutes, maxSeconds}

	for i, key := range payloadKeys {
		switch randomInt(fieldStateCount) {
		case stateValid:
			v := randomInt(bounds[i] + 1)
			params = append(params, key+"="+strconv.Itoa(v))
			want[i] = v
			kinds["valid"] = true
		case stateMissing:
			want[i] = defaults[i]
			kinds["missing"] = true
		case stateOutOfRange:
			params = append(params, key+"="+strconv.Itoa(bounds[i]+1+randomInt(1000)))
			want[i] = defaults[i]
			kinds["out_of_range"] = true
		case stateGarbage:
			params = append(params, key+"=x"+strconv.Itoa(randomInt(100)))
			want[i] = defaults[i]
			kinds["garbage"] = true
		}
	}

	kindNames := make([]string, 0, len(kinds))
	for _, k := range []string{"valid", "missing", "out_of_range", "garbage"} {
		if kinds[k] {
			kindNames = append(kindNames, k)
		}
	}

	return Case{
		ID:         uuid.New().String(),
		Kind:       strings.Join(kindNames, "+"),
		Query:      strings.Join(params, "&"),
		WantBest:   Clock{Hours: want[0], Minutes: want[1], Seconds: want[2]},
		WantTarget: Clock{Hours: want[3], Minutes: want[4], Seconds: want[5]},
	}
}

// fixedCase builds a deterministic corner case.
func fixedCase(kind, query string, wantBest, wantTarget Clock) Case {
	return Case{
		ID:         uuid.New().String(),
		Kind:       kind,
		Query:      query,
		WantBest:   wantBest,
		WantTarget: wantTarget,
	}
}
