package handoff

import "errors"

var (
	// ErrBadBaseURL indicates a base URL that could not be parsed.
	ErrBadBaseURL = errors.New("invalid base url")

	// ErrOutOfRange indicates a race time the payload cannot carry.
	ErrOutOfRange = errors.New("race time outside payload range")
)
