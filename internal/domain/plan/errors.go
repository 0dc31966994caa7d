package plan

import "errors"

// ErrBadRaceDate indicates a race date that could not be read.
var ErrBadRaceDate = errors.New("invalid race date")
