// Package types contains the wire shapes shared by the service and the HTTP API
package types

// Time is a race duration split into clock parts for transport
type Time struct {
	Hours   int    `json:"h"`
	Minutes int    `json:"m"`
	Seconds int    `json:"s"`
	Display string `json:"display"`
}

// Pace is a per-kilometre training pace
type Pace struct {
	SecondsPerKm int    `json:"seconds_per_km"`
	Display      string `json:"display"`
}

// PaceSet groups the training paces derived from one fitness score
type PaceSet struct {
	EasyFast   Pace `json:"easy_fast"`
	EasySlow   Pace `json:"easy_slow"`
	Marathon   Pace `json:"marathon"`
	Threshold  Pace `json:"threshold"`
	Interval   Pace `json:"interval"`
	Repetition Pace `json:"repetition"`
}

// Projection is the calculator's answer for one race performance
type Projection struct {
	Distance           string  `json:"distance"`
	Finish             Time    `json:"finish"`
	Score              float64 `json:"vdot"`
	MarathonEquivalent Time    `json:"marathon_equivalent"`
	Paces              PaceSet `json:"paces"`
}

// HandoffLink carries a generated planner URL
type HandoffLink struct {
	URL string `json:"url"`
}

// PlanForm is the planner form prefilled from a hand-off payload
type PlanForm struct {
	Best         Time      `json:"best"`
	Target       Time      `json:"target"`
	CurrentScore float64   `json:"current_vdot"`
	TargetScore  float64   `json:"target_vdot"`
	TrainTo      float64   `json:"effective_target_vdot"`
	Capped       bool      `json:"target_capped"`
	PhaseScores  []float64 `json:"phase_vdots"`
	Paces        PaceSet   `json:"paces"`
}

// Schedule is the training window picked for a race date
type Schedule struct {
	StartDate     string `json:"start_date"`
	RaceDate      string `json:"race_date"`
	Weeks         int    `json:"weeks"`
	WeeksPerPhase int    `json:"weeks_per_phase"`
}
