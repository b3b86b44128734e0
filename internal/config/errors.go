package config

import "errors"

// Errors returned by Load and Validate; match them with errors.Is.
var (
	// ErrInvalidConfig wraps every validation failure.
	ErrInvalidConfig = errors.New("config: invalid")
	// ErrLoadConfig wraps failures reading the YAML file or the SUWEN_* environment.
	ErrLoadConfig = errors.New("config: load failed")
)
