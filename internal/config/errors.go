package config

import "errors"

var (
	// ErrInvalidColor is returned when a color string cannot be parsed
	ErrInvalidColor = errors.New("invalid color")

	// ErrInvalidWindowSize is returned when width or height is below MinWindowSize
	ErrInvalidWindowSize = errors.New("window width and height must be at least 100")

	// ErrInvalidOpacity is returned when window opacity is not between 0.0 and 1.0
	ErrInvalidOpacity = errors.New("window opacity must be between 0.0 and 1.0")

	// ErrConfigNotFound is returned when the config file doesn't exist
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrUnsupportedVersion is returned when the document declares a schema version this build cannot read
	ErrUnsupportedVersion = errors.New("unsupported config version")
)
