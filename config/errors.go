package config

import "errors"

var (
	// ErrConfigUnmarshal is returned when config unmarshalling fails
	ErrConfigUnmarshal = errors.New("failed to unmarshal configuration")
	// ErrConfigInvalid is returned when a loaded config fails validation
	ErrConfigInvalid = errors.New("invalid configuration")
)
