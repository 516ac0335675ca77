package config

import (
	"errors"
)

// Sentinel errors; callers match them with errors.Is.
var (
	// ErrInvalidConfig wraps every Validate failure and bad skill_files entry.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrLoadConfig wraps failures reading or decoding a config layer.
	ErrLoadConfig = errors.New("load config failed")
	// ErrConfigNotFound is joined to ErrLoadConfig when SKILLBUDGET_CONFIG
	// names a file that does not exist.
	ErrConfigNotFound = errors.New("config file not found")
)
