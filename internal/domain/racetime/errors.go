package racetime

import "errors"

// ErrParse indicates a duration string or clock part that could not be
// read as a race time.
var ErrParse = errors.New("invalid race time")
