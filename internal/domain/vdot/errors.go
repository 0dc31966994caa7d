package vdot

import "errors"

// ErrUnknownDistance indicates a distance label outside the supported set.
var ErrUnknownDistance = errors.New("unknown race distance")
