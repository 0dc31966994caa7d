// Package vdot scores race performances with the Daniels–Gilbert running
// model. A score is an estimate of effective aerobic capacity (VDOT): two
// performances at different distances that map to the same score are
// considered equivalent, which is what lets a 5 km result project a
// marathon finishing time.
//
// The model combines two published curves: the oxygen cost of running at
// a given velocity, and the fraction of aerobic capacity a runner can
// sustain for a given race duration. The score is the ratio of the two
// evaluated at the race's average velocity and duration.
package vdot

import (
	"fmt"
	"math"
	"strings"

	"github.com/akirun/vdotcoach/internal/domain/racetime"
)

// Oxygen cost of running at velocity v in metres per minute:
// cost = costQuad*v² + costLinear*v + costConst.
const (
	costQuad   = 0.000104
	costLinear = 0.182258
	costConst  = -4.60
)

// Fraction of aerobic capacity sustainable over a race lasting t minutes:
// fraction = fracBase + fracSlow*e^(fracSlowRate*t) + fracFast*e^(fracFastRate*t).
const (
	fracBase     = 0.8
	fracSlow     = 0.1894393
	fracSlowRate = -0.012778
	fracFast     = 0.2989558
	fracFastRate = -0.1932605
)

// Published tables cover scores from 30 to 85; results outside that band
// are clamped rather than extrapolated.
const (
	defaultMinScore = 30.0
	defaultMaxScore = 85.0
)

// Bisection window for inverting the marathon curve, in seconds. The
// floor is faster than the world record and the ceiling is slower than
// anything the score clamp can produce, so the answer always lies inside.
const (
	marathonFloorSeconds   = 4200.0
	marathonCeilingSeconds = 39600.0
	bisectionTolerance     = 0.01
)

const secondsPerMinute = 60.0

// Distance identifies one of the supported race distances.
type Distance int

// Supported race distances.
const (
	Distance5K Distance = iota
	Distance10K
	DistanceHalf
	DistanceMarathon
)

// Official course lengths in metres.
const (
	meters5K       = 5000.0
	meters10K      = 10000.0
	metersHalf     = 21097.5
	metersMarathon = 42195.0
)

// Distances returns all supported distances, shortest first.
func Distances() []Distance {
	return []Distance{Distance5K, Distance10K, DistanceHalf, DistanceMarathon}
}

// ParseDistance reads a distance label as it appears in query strings and
// forms. Matching is case-insensitive and tolerant of spacing.
func ParseDistance(s string) (Distance, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.NewReplacer(" ", "", "-", "", "_", "").Replace(normalized)

	switch normalized {
	case "5k", "5km", "5000", "5000m":
		return Distance5K, nil
	case "10k", "10km", "10000", "10000m":
		return Distance10K, nil
	case "half", "halfmarathon", "hm", "21k", "21.1k", "21km":
		return DistanceHalf, nil
	case "marathon", "fullmarathon", "full", "42k", "42.2k", "42km":
		return DistanceMarathon, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownDistance, s)
	}
}

// Meters returns the course length.
func (d Distance) Meters() float64 {
	switch d {
	case Distance5K:
		return meters5K
	case Distance10K:
		return meters10K
	case DistanceHalf:
		return metersHalf
	case DistanceMarathon:
		return metersMarathon
	default:
		return 0
	}
}

// String returns the canonical label used on the wire.
func (d Distance) String() string {
	switch d {
	case Distance5K:
		return "5k"
	case Distance10K:
		return "10k"
	case DistanceHalf:
		return "half"
	case DistanceMarathon:
		return "marathon"
	default:
		return "unknown"
	}
}

// Engine evaluates the performance model. The zero configuration uses the
// published 30–85 score band.
type Engine struct {
	minScore float64
	maxScore float64
}

// Option configures an Engine.
type Option func(*Engine)

// WithScoreRange overrides the clamp band. Invalid ranges are ignored.
func WithScoreRange(minScore, maxScore float64) Option {
	return func(e *Engine) {
		if minScore > 0 && maxScore > minScore {
			e.minScore = minScore
			e.maxScore = maxScore
		}
	}
}

// New creates an engine with the given options.
func New(opts ...Option) *Engine {
	e := &Engine{
		minScore: defaultMinScore,
		maxScore: defaultMaxScore,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Score computes the clamped score for a finishing time at a distance.
// Non-positive durations score at the bottom of the band.
func (e *Engine) Score(d Distance, finish racetime.RaceTime) float64 {
	total := finish.TotalSeconds()
	if total <= 0 {
		return e.minScore
	}
	return e.clamp(rawScore(d.Meters(), float64(total)))
}

// MarathonTime inverts the model: it finds the marathon finishing time
// whose score equals the given one, rounded to the whole second. Scores
// outside the clamp band are clamped first.
func (e *Engine) MarathonTime(score float64) racetime.RaceTime {
	score = e.clamp(score)

	// The raw curve is strictly decreasing in time, so bisect.
	lo, hi := marathonFloorSeconds, marathonCeilingSeconds
	for hi-lo > bisectionTolerance {
		mid := (lo + hi) / 2
		if rawScore(metersMarathon, mid) > score {
			lo = mid
		} else {
			hi = mid
		}
	}
	return racetime.FromSeconds(int(math.Round((lo + hi) / 2)))
}

// MarathonEquivalent projects a performance onto the marathon. A marathon
// input is returned untouched so a runner's own result never shifts by a
// round trip through the model.
func (e *Engine) MarathonEquivalent(d Distance, finish racetime.RaceTime) racetime.RaceTime {
	if d == DistanceMarathon {
		return finish
	}
	return e.MarathonTime(e.Score(d, finish))
}

// VelocityAt returns the running velocity in metres per minute whose
// oxygen cost equals the given value. It is the positive root of the
// cost quadratic and underpins pace derivation. Non-positive costs
// yield zero.
func VelocityAt(cost float64) float64 {
	if cost <= 0 {
		return 0
	}
	discriminant := costLinear*costLinear + 4*costQuad*(cost-costConst)
	return (-costLinear + math.Sqrt(discriminant)) / (2 * costQuad)
}

// rawScore evaluates the unclamped model at a distance and duration.
func rawScore(meters, seconds float64) float64 {
	minutes := seconds / secondsPerMinute
	velocity := meters / minutes
	return oxygenCost(velocity) / sustainableFraction(minutes)
}

func oxygenCost(velocity float64) float64 {
	return costConst + costLinear*velocity + costQuad*velocity*velocity
}

func sustainableFraction(minutes float64) float64 {
	return fracBase +
		fracSlow*math.Exp(fracSlowRate*minutes) +
		fracFast*math.Exp(fracFastRate*minutes)
}

func (e *Engine) clamp(score float64) float64 {
	if score < e.minScore {
		return e.minScore
	}
	if score > e.maxScore {
		return e.maxScore
	}
	return score
}
