package handofftest

// HTTP status code constants.
const (
	StatusOK = 200
)

// Worker configuration constants.
const (
	WorkerChannelMultiplier = 2
)

// Runner configuration constants.
const (
	PercentageMultiplier = 100
)

// Planner defaults the service falls back to. The test tool assumes a
// service running with stock configuration; override the service, and
// these expectations no longer hold.
var (
	DefaultBest   = Clock{Hours: 4}               //nolint:gochecknoglobals // fixed contract baseline
	DefaultTarget = Clock{Hours: 3, Minutes: 30}  //nolint:gochecknoglobals // fixed contract baseline
)
