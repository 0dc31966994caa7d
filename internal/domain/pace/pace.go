// Package pace derives per-kilometre training paces from a fitness score.
// Each training intensity runs at a fixed fraction of the score; the
// velocity sustainable at that fraction comes from the same oxygen-cost
// curve the scoring model uses, so paces and projections agree.
package pace

import (
	"fmt"
	"math"

	"github.com/akirun/vdotcoach/internal/domain/racetime"
	"github.com/akirun/vdotcoach/internal/domain/vdot"
)

// Training intensities as fractions of the fitness score. Easy runs span
// a band rather than a single point.
const (
	easySlowFraction   = 0.59
	easyFastFraction   = 0.74
	thresholdFraction  = 0.88
	intervalFraction   = 1.00
	repetitionFraction = 1.05
)

const (
	metersPerKm      = 1000.0
	secondsPerMinute = 60.0
	marathonKm       = 42.195
)

// Pace is a per-kilometre pace in whole seconds.
type Pace int

// Seconds returns the pace as a flat seconds count.
func (p Pace) Seconds() int {
	return int(p)
}

// String renders the pace as "M:SS" per kilometre.
func (p Pace) String() string {
	return fmt.Sprintf("%d:%02d", int(p)/60, int(p)%60)
}

// Set holds the full pace prescription for one fitness score. EasyFast is
// the quick end of the easy band and EasySlow the relaxed end, so
// EasyFast <= EasySlow numerically.
type Set struct {
	EasyFast   Pace
	EasySlow   Pace
	Marathon   Pace
	Threshold  Pace
	Interval   Pace
	Repetition Pace
}

// ForScore computes the pace set for a score and its projected marathon
// time. Marathon pace is taken from the projection directly so it stays
// consistent with what the calculator displays.
func ForScore(score float64, marathon racetime.RaceTime) Set {
	return Set{
		EasyFast:   atFraction(score, easyFastFraction),
		EasySlow:   atFraction(score, easySlowFraction),
		Marathon:   Pace(math.Round(float64(marathon.TotalSeconds()) / marathonKm)),
		Threshold:  atFraction(score, thresholdFraction),
		Interval:   atFraction(score, intervalFraction),
		Repetition: atFraction(score, repetitionFraction),
	}
}

// atFraction converts running at a fraction of the score into a
// per-kilometre pace.
func atFraction(score, fraction float64) Pace {
	velocity := vdot.VelocityAt(score * fraction)
	if velocity <= 0 {
		return 0
	}
	return Pace(math.Round(metersPerKm / velocity * secondsPerMinute))
}
