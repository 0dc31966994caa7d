package config

import (
	"errors"
)

// Sentinel errors so callers can tell a file/env load failure apart from
// a config that loaded but fails validation.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)
