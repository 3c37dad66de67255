package config

import (
	"errors"
)

// Errors returned by Load, LoadFile and Validate; match them with errors.Is.
var (
	// ErrInvalidConfig marks a config that loaded but cannot run the service.
	ErrInvalidConfig = errors.New("invalid xgflow config")
	// ErrLoadConfig marks a config source (file, env) that could not be read.
	ErrLoadConfig = errors.New("cannot load xgflow config")
)
