// Package handoff implements the URL contract that carries race times
// from the calculator to the planner. The payload is six independent
// integer query parameters, one per clock part, so a half-broken link
// still prefills the planner form: every field that cannot be read falls
// back to its own default and the rest are honored as sent.
package handoff

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/akirun/vdotcoach/internal/domain/racetime"
)

// Query parameter names, in the order they appear on generated links.
const (
	ParamBestHours     = "best_h"
	ParamBestMinutes   = "best_m"
	ParamBestSeconds   = "best_s"
	ParamTargetHours   = "target_h"
	ParamTargetMinutes = "target_m"
	ParamTargetSeconds = "target_s"
)

// Payload field bounds. Hours carry a single digit, which keeps every
// race a link can describe inside the planner form's range.
const (
	maxHours   = 9
	maxMinutes = 59
	maxSeconds = 59
)

// Reasons reported to the observer when a field falls back.
const (
	ReasonMissing    = "missing"
	ReasonInvalid    = "invalid"
	ReasonOutOfRange = "out_of_range"
)

// Observer is notified whenever a payload field falls back to its
// default, with the parameter name and the reason.
type Observer func(field, reason string)

// CanCarry reports whether a race time fits the payload bounds.
func CanCarry(t racetime.RaceTime) bool {
	return t.Hours >= 0 && t.Hours <= maxHours &&
		t.Minutes >= 0 && t.Minutes <= maxMinutes &&
		t.Seconds >= 0 && t.Seconds <= maxSeconds
}

// BuildURL appends the hand-off payload for a best and target time to a
// base URL, which may be relative and may already carry a query string.
// Values are written in decimal with no zero padding. Times outside the
// payload bounds are rejected rather than silently mangled.
func BuildURL(base string, best, target racetime.RaceTime) (string, error) {
	if !CanCarry(best) {
		return "", fmt.Errorf("%w: best time %s", ErrOutOfRange, best)
	}
	if !CanCarry(target) {
		return "", fmt.Errorf("%w: target time %s", ErrOutOfRange, target)
	}

	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadBaseURL, err)
	}

	q := u.Query()
	q.Set(ParamBestHours, strconv.Itoa(best.Hours))
	q.Set(ParamBestMinutes, strconv.Itoa(best.Minutes))
	q.Set(ParamBestSeconds, strconv.Itoa(best.Seconds))
	q.Set(ParamTargetHours, strconv.Itoa(target.Hours))
	q.Set(ParamTargetMinutes, strconv.Itoa(target.Minutes))
	q.Set(ParamTargetSeconds, strconv.Itoa(target.Seconds))
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// Reader decodes hand-off payloads. The zero value is not usable; build
// one with NewReader.
type Reader struct {
	defaultBest   racetime.RaceTime
	defaultTarget racetime.RaceTime
	observe       Observer
}

// Option configures a Reader.
type Option func(*Reader)

// WithDefaultBest overrides the fallback best time. Times outside the
// payload bounds are ignored.
func WithDefaultBest(t racetime.RaceTime) Option {
	return func(r *Reader) {
		if CanCarry(t) {
			r.defaultBest = t
		}
	}
}

// WithDefaultTarget overrides the fallback target time. Times outside
// the payload bounds are ignored.
func WithDefaultTarget(t racetime.RaceTime) Option {
	return func(r *Reader) {
		if CanCarry(t) {
			r.defaultTarget = t
		}
	}
}

// WithObserver installs a callback for defaulted fields.
func WithObserver(o Observer) Option {
	return func(r *Reader) {
		r.observe = o
	}
}

// NewReader creates a Reader with the factory defaults of a 4:00:00 best
// and a 3:30:00 target.
func NewReader(opts ...Option) *Reader {
	r := &Reader{
		defaultBest:   racetime.RaceTime{Hours: 4},
		defaultTarget: racetime.RaceTime{Hours: 3, Minutes: 30},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// DefaultBest returns the fallback best time.
func (r *Reader) DefaultBest() racetime.RaceTime {
	return r.defaultBest
}

// DefaultTarget returns the fallback target time.
func (r *Reader) DefaultTarget() racetime.RaceTime {
	return r.defaultTarget
}

// Parse reads the payload from a raw query string. It never fails: each
// of the six fields is read independently, and a field that is absent,
// unparsable, or out of range takes its default without disturbing the
// others. When a key repeats, the first value wins.
func (r *Reader) Parse(rawQuery string) (best, target racetime.RaceTime) {
	// Callers sometimes hand over the query with its leading "?" still
	// attached; strip it so the first key parses.
	rawQuery = strings.TrimPrefix(rawQuery, "?")

	// ParseQuery keeps every pair it could read even when it reports an
	// error; pairs it dropped surface as missing fields below.
	values, _ := url.ParseQuery(rawQuery)

	best = racetime.RaceTime{
		Hours:   r.field(values, ParamBestHours, maxHours, r.defaultBest.Hours),
		Minutes: r.field(values, ParamBestMinutes, maxMinutes, r.defaultBest.Minutes),
		Seconds: r.field(values, ParamBestSeconds, maxSeconds, r.defaultBest.Seconds),
	}
	target = racetime.RaceTime{
		Hours:   r.field(values, ParamTargetHours, maxHours, r.defaultTarget.Hours),
		Minutes: r.field(values, ParamTargetMinutes, maxMinutes, r.defaultTarget.Minutes),
		Seconds: r.field(values, ParamTargetSeconds, maxSeconds, r.defaultTarget.Seconds),
	}
	return best, target
}

// field reads one clock part, falling back to its default when the value
// cannot be honored.
func (r *Reader) field(values url.Values, key string, max, fallback int) int {
	if !values.Has(key) {
		r.fellBack(key, ReasonMissing)
		return fallback
	}

	n, err := strconv.Atoi(values.Get(key))
	if err != nil {
		r.fellBack(key, ReasonInvalid)
		return fallback
	}
	if n < 0 || n > max {
		r.fellBack(key, ReasonOutOfRange)
		return fallback
	}
	return n
}

func (r *Reader) fellBack(field, reason string) {
	if r.observe != nil {
		r.observe(field, reason)
	}
}
