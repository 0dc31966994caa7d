// Package plan computes the planner's phase progression and training
// window: how a fitness score should climb across training phases, how
// much gain one cycle may promise, and which Monday the plan starts on.
package plan

import (
	"math"
	"time"
)

// Planner defaults. A cycle is one full plan from start Monday to race day.
const (
	DefaultPhases   = 4
	DefaultMinWeeks = 12
	DefaultMaxGain  = 3.0
)

const (
	daysPerWeek = 7
	hoursPerDay = 24
)

// CapTarget limits how much score gain a single cycle may promise. When
// the requested target exceeds the current score by more than maxGain the
// effective target is pulled back to current+maxGain, rounded to two
// decimals, and the second return is true.
func CapTarget(current, target, maxGain float64) (float64, bool) {
	if target-current > maxGain {
		return round2(current + maxGain), true
	}
	return target, false
}

// PhaseTargets spreads the climb from the current score to the target
// across the given number of phases. The first phase trains at the
// current score and the last at the target; steps in between are linear,
// each rounded to two decimals.
func PhaseTargets(current, target float64, phases int) []float64 {
	if phases <= 0 {
		return nil
	}

	targets := make([]float64, phases)
	targets[0] = round2(current)
	if phases == 1 {
		return targets
	}

	step := (target - current) / float64(phases-1)
	for i := 1; i < phases; i++ {
		targets[i] = round2(current + step*float64(i))
	}
	return targets
}

// Schedule picks the training window for a race. With minWeeks or more of
// runway the plan starts on the next Monday (today when today is one) and
// runs the full span; with less, the window is pinned to minWeeks and the
// start backs up from the race date instead, which may land in the past.
// Week counts are floored the way runners count them.
func Schedule(now, race time.Time, minWeeks int) (time.Time, int) {
	race = midnight(race)

	days := int(race.Sub(now).Hours() / hoursPerDay)
	weeks := days / daysPerWeek

	if weeks < minWeeks {
		start := mondayOf(race.AddDate(0, 0, -minWeeks*daysPerWeek))
		return start, minWeeks
	}
	return nextMonday(now), weeks
}

// WeeksPerPhase splits a window evenly across phases; the final phase
// absorbs any remainder.
func WeeksPerPhase(weeks, phases int) int {
	if phases <= 0 {
		return 0
	}
	return weeks / phases
}

// midnight truncates to the start of t's calendar day.
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// mondayOf returns the Monday of the week containing t.
func mondayOf(t time.Time) time.Time {
	t = midnight(t)
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}

// nextMonday returns t's date when it falls on a Monday and the following
// Monday otherwise.
func nextMonday(t time.Time) time.Time {
	t = midnight(t)
	offset := (8 - int(t.Weekday())) % 7
	return t.AddDate(0, 0, offset)
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
