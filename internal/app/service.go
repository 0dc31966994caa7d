// Package service provides the core business service that implements
// the dependencies required by the HTTP API: race projections for the
// calculator, hand-off link building, and planner form prefill.
package service

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/akirun/vdotcoach/internal/domain/handoff"
	"github.com/akirun/vdotcoach/internal/domain/pace"
	"github.com/akirun/vdotcoach/internal/domain/plan"
	"github.com/akirun/vdotcoach/internal/domain/racetime"
	"github.com/akirun/vdotcoach/internal/domain/types"
	"github.com/akirun/vdotcoach/internal/domain/vdot"
	"github.com/akirun/vdotcoach/pkg/logger"
	"github.com/akirun/vdotcoach/pkg/metrics"
)

// Layout for race dates on the wire.
const raceDateLayout = "2006-01-02"

// Service implements the API dependencies for the calculator and the
// planner. All operations are pure computations over the request; the
// service itself carries only configuration.
type Service struct {
	mu sync.RWMutex

	// Core components
	engine *vdot.Engine
	reader *handoff.Reader

	// Configuration
	plannerBaseURL string
	defaultBest    racetime.RaceTime
	defaultTarget  racetime.RaceTime
	minWeeks       int
	phases         int
	maxGain        float64

	// now is swappable so schedule math is testable.
	now func() time.Time

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithPlannerBaseURL sets the base URL hand-off links point at.
func WithPlannerBaseURL(baseURL string) Option {
	return func(s *Service) {
		if baseURL != "" {
			s.plannerBaseURL = baseURL
		}
	}
}

// WithDefaultTimes sets the planner's fallback best and target times.
func WithDefaultTimes(best, target racetime.RaceTime) Option {
	return func(s *Service) {
		s.defaultBest = best
		s.defaultTarget = target
	}
}

// WithMinTrainingWeeks sets the shortest training window a plan may get.
func WithMinTrainingWeeks(weeks int) Option {
	return func(s *Service) {
		if weeks > 0 {
			s.minWeeks = weeks
		}
	}
}

// WithNumPhases sets how many phases a plan climbs through.
func WithNumPhases(phases int) Option {
	return func(s *Service) {
		if phases > 0 {
			s.phases = phases
		}
	}
}

// WithMaxScoreGain caps the score improvement one cycle may promise.
func WithMaxScoreGain(gain float64) Option {
	return func(s *Service) {
		if gain > 0 {
			s.maxGain = gain
		}
	}
}

// WithClock sets the time source used for schedule computation.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		plannerBaseURL: "/planner",
		defaultBest:    racetime.RaceTime{Hours: 4},
		defaultTarget:  racetime.RaceTime{Hours: 3, Minutes: 30},
		minWeeks:       plan.DefaultMinWeeks,
		phases:         plan.DefaultPhases,
		maxGain:        plan.DefaultMaxGain,
		now:            time.Now,
		logger:         nil, // Will be replaced when service starts
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting coach service...")

	s.engine = vdot.New()
	s.reader = handoff.NewReader(
		handoff.WithDefaultBest(s.defaultBest),
		handoff.WithDefaultTarget(s.defaultTarget),
		handoff.WithObserver(metrics.RecordHandoffFieldDefaulted),
	)

	s.started = true
	s.logger.Info(ctx, "coach service started",
		logger.String("plannerBaseURL", s.plannerBaseURL),
		logger.String("defaultBest", s.defaultBest.String()),
		logger.String("defaultTarget", s.defaultTarget.String()),
		logger.Int("minWeeks", s.minWeeks),
		logger.Int("phases", s.phases),
	)

	return nil
}

// Stop shuts down the service. There is nothing to drain; the method
// exists so the entrypoint can treat the service like any other
// lifecycle-managed component.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.started = false
	s.logger.Info(context.Background(), "coach service stopped")
}

// Projection computes the calculator's answer for one race result:
// the fitness score, the marathon-equivalent time, and training paces.
// Malformed distance or time input is rejected with a wrapped domain
// error.
func (s *Service) Projection(ctx context.Context, distance, finish string) (types.Projection, error) {
	start := time.Now()

	d, err := vdot.ParseDistance(distance)
	if err != nil {
		return types.Projection{}, fmt.Errorf("projection: %w", err)
	}
	t, err := racetime.Parse(finish)
	if err != nil {
		return types.Projection{}, fmt.Errorf("projection: %w", err)
	}
	if t.IsZero() {
		return types.Projection{}, fmt.Errorf("projection: %w: zero finish time", racetime.ErrParse)
	}

	score := s.engine.Score(d, t)
	equivalent := s.engine.MarathonEquivalent(d, t)
	paces := pace.ForScore(score, equivalent)

	metrics.RecordProjection()
	metrics.ObserveScore(score)
	metrics.RecordProjectionLatency(float64(time.Since(start).Milliseconds()))

	s.logger.Debug(ctx, "computed projection",
		logger.String("distance", d.String()),
		logger.String("finish", t.String()),
		logger.Float64("score", score),
		logger.String("marathonEquivalent", equivalent.String()),
	)

	return types.Projection{
		Distance:           d.String(),
		Finish:             wireTime(t),
		Score:              round2(score),
		MarathonEquivalent: wireTime(equivalent),
		Paces:              wirePaces(paces),
	}, nil
}

// HandoffLink builds the outbound planner URL for a race result and a
// target marathon time. The best time is always resolved to its
// marathon equivalent before it goes on the link.
func (s *Service) HandoffLink(ctx context.Context, distance, finish, target string) (types.HandoffLink, error) {
	d, err := vdot.ParseDistance(distance)
	if err != nil {
		return types.HandoffLink{}, fmt.Errorf("handoff link: %w", err)
	}
	t, err := racetime.Parse(finish)
	if err != nil {
		return types.HandoffLink{}, fmt.Errorf("handoff link: %w", err)
	}
	if t.IsZero() {
		return types.HandoffLink{}, fmt.Errorf("handoff link: %w: zero finish time", racetime.ErrParse)
	}
	goal, err := racetime.Parse(target)
	if err != nil {
		return types.HandoffLink{}, fmt.Errorf("handoff link: %w", err)
	}

	best := s.engine.MarathonEquivalent(d, t)
	url, err := handoff.BuildURL(s.plannerBaseURL, best, goal)
	if err != nil {
		metrics.RecordHandoffLinkError()
		return types.HandoffLink{}, fmt.Errorf("handoff link: %w", err)
	}

	metrics.RecordHandoffLinkBuilt()
	s.logger.Debug(ctx, "built hand-off link",
		logger.String("best", best.String()),
		logger.String("target", goal.String()),
	)

	return types.HandoffLink{URL: url}, nil
}

// PlanPrefill turns an incoming hand-off query string into a fully
// populated planner form. It never fails: unreadable fields take their
// defaults independently, so any query string yields a usable form.
func (s *Service) PlanPrefill(ctx context.Context, rawQuery string) types.PlanForm {
	best, target := s.reader.Parse(rawQuery)
	metrics.RecordHandoffParse()

	current := s.engine.Score(vdot.DistanceMarathon, best)
	goal := s.engine.Score(vdot.DistanceMarathon, target)

	trainTo, capped := plan.CapTarget(current, goal, s.maxGain)
	if capped {
		metrics.RecordPlanTargetCapped()
	}

	form := types.PlanForm{
		Best:         wireTime(best),
		Target:       wireTime(target),
		CurrentScore: round2(current),
		TargetScore:  round2(goal),
		TrainTo:      trainTo,
		Capped:       capped,
		PhaseScores:  plan.PhaseTargets(current, trainTo, s.phases),
		Paces:        wirePaces(pace.ForScore(current, best)),
	}

	metrics.RecordPlanPrefill()
	s.logger.Debug(ctx, "prefilled plan form",
		logger.String("best", best.String()),
		logger.String("target", target.String()),
		logger.Float64("currentScore", form.CurrentScore),
		logger.Float64("trainTo", form.TrainTo),
	)

	return form
}

// PlanSchedule picks the training window for a race date given as
// YYYY-MM-DD.
func (s *Service) PlanSchedule(ctx context.Context, raceDate string) (types.Schedule, error) {
	race, err := time.Parse(raceDateLayout, raceDate)
	if err != nil {
		return types.Schedule{}, fmt.Errorf("schedule: %w: %q", plan.ErrBadRaceDate, raceDate)
	}

	start, weeks := plan.Schedule(s.now(), race, s.minWeeks)

	metrics.RecordSchedule()
	if pinned(s.now(), race, s.minWeeks) {
		metrics.RecordSchedulePinned()
	}

	s.logger.Debug(ctx, "computed schedule",
		logger.String("raceDate", raceDate),
		logger.String("start", start.Format(raceDateLayout)),
		logger.Int("weeks", weeks),
	)

	return types.Schedule{
		StartDate:     start.Format(raceDateLayout),
		RaceDate:      race.Format(raceDateLayout),
		Weeks:         weeks,
		WeeksPerPhase: plan.WeeksPerPhase(weeks, s.phases),
	}, nil
}

// DefaultTimes returns the configured fallback best and target times.
func (s *Service) DefaultTimes() (best, target racetime.RaceTime) {
	return s.defaultBest, s.defaultTarget
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"started":        s.started,
		"plannerBaseURL": s.plannerBaseURL,
		"defaultBest":    s.defaultBest.String(),
		"defaultTarget":  s.defaultTarget.String(),
		"minWeeks":       s.minWeeks,
		"phases":         s.phases,
		"maxGain":        s.maxGain,
	}
}

// pinned reports whether the race is closer than the minimum window.
func pinned(now, race time.Time, minWeeks int) bool {
	race = time.Date(race.Year(), race.Month(), race.Day(), 0, 0, 0, 0, race.Location())
	days := int(race.Sub(now).Hours() / 24)
	return days/7 < minWeeks
}

// wireTime converts a race time into its transport shape.
func wireTime(t racetime.RaceTime) types.Time {
	return types.Time{
		Hours:   t.Hours,
		Minutes: t.Minutes,
		Seconds: t.Seconds,
		Display: t.String(),
	}
}

// wirePaces converts a pace set into its transport shape.
func wirePaces(set pace.Set) types.PaceSet {
	return types.PaceSet{
		EasyFast:   wirePace(set.EasyFast),
		EasySlow:   wirePace(set.EasySlow),
		Marathon:   wirePace(set.Marathon),
		Threshold:  wirePace(set.Threshold),
		Interval:   wirePace(set.Interval),
		Repetition: wirePace(set.Repetition),
	}
}

func wirePace(p pace.Pace) types.Pace {
	return types.Pace{
		SecondsPerKm: p.Seconds(),
		Display:      p.String(),
	}
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
