// Package racetime provides the clock-style duration value shared by the
// calculator and the planner. A RaceTime is an exact whole-second duration
// split into hours, minutes, and seconds so it can travel through URLs and
// forms without floating-point drift.
package racetime

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Clock-part bounds for hand-off payloads.
const (
	minutesPerHour   = 60
	secondsPerMinute = 60
	secondsPerHour   = minutesPerHour * secondsPerMinute
)

// RaceTime is a non-negative duration split into clock parts.
// Minutes and Seconds are always normalized to [0, 59] when the value
// is produced by this package.
type RaceTime struct {
	Hours   int
	Minutes int
	Seconds int
}

// New builds a RaceTime from clock parts. Parts outside the usual clock
// ranges are rejected so callers get normalized values everywhere.
func New(hours, minutes, seconds int) (RaceTime, error) {
	if hours < 0 {
		return RaceTime{}, fmt.Errorf("%w: negative hours %d", ErrParse, hours)
	}
	if minutes < 0 || minutes >= minutesPerHour {
		return RaceTime{}, fmt.Errorf("%w: minutes %d out of range", ErrParse, minutes)
	}
	if seconds < 0 || seconds >= secondsPerMinute {
		return RaceTime{}, fmt.Errorf("%w: seconds %d out of range", ErrParse, seconds)
	}
	return RaceTime{Hours: hours, Minutes: minutes, Seconds: seconds}, nil
}

// FromSeconds converts a total-seconds count into clock parts.
// Negative input is treated as zero.
func FromSeconds(total int) RaceTime {
	if total < 0 {
		total = 0
	}
	return RaceTime{
		Hours:   total / secondsPerHour,
		Minutes: (total % secondsPerHour) / secondsPerMinute,
		Seconds: total % secondsPerMinute,
	}
}

// FromDuration rounds a duration to the nearest whole second and converts it.
func FromDuration(d time.Duration) RaceTime {
	return FromSeconds(int(d.Round(time.Second) / time.Second))
}

// Parse reads a human-entered duration. Accepted forms are "H:MM:SS",
// "M:SS" (minutes may exceed 59), and a bare seconds count. Full-width
// colons are tolerated because times pasted from spreadsheets and chat
// apps often carry them.
func Parse(s string) (RaceTime, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), "：", ":")
	if cleaned == "" {
		return RaceTime{}, fmt.Errorf("%w: empty input", ErrParse)
	}

	parts := strings.Split(cleaned, ":")
	nums := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 {
			return RaceTime{}, fmt.Errorf("%w: %q", ErrParse, s)
		}
		nums = append(nums, n)
	}

	switch len(nums) {
	case 3:
		if nums[1] >= minutesPerHour || nums[2] >= secondsPerMinute {
			return RaceTime{}, fmt.Errorf("%w: %q", ErrParse, s)
		}
		return RaceTime{Hours: nums[0], Minutes: nums[1], Seconds: nums[2]}, nil
	case 2:
		if nums[1] >= secondsPerMinute {
			return RaceTime{}, fmt.Errorf("%w: %q", ErrParse, s)
		}
		return FromSeconds(nums[0]*secondsPerMinute + nums[1]), nil
	case 1:
		return FromSeconds(nums[0]), nil
	default:
		return RaceTime{}, fmt.Errorf("%w: %q", ErrParse, s)
	}
}

// TotalSeconds returns the duration as a flat seconds count.
func (t RaceTime) TotalSeconds() int {
	return t.Hours*secondsPerHour + t.Minutes*secondsPerMinute + t.Seconds
}

// Duration returns the value as a time.Duration.
func (t RaceTime) Duration() time.Duration {
	return time.Duration(t.TotalSeconds()) * time.Second
}

// IsZero reports whether the duration is exactly zero.
func (t RaceTime) IsZero() bool {
	return t.Hours == 0 && t.Minutes == 0 && t.Seconds == 0
}

// String renders "H:MM:SS" when the value reaches a full hour and "M:SS"
// otherwise, matching how runners write finishing times.
func (t RaceTime) String() string {
	if t.Hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", t.Hours, t.Minutes, t.Seconds)
	}
	return fmt.Sprintf("%d:%02d", t.Minutes, t.Seconds)
}
