package config

import "errors"

var (
	// ErrConfigNotFound is returned when the configuration file is absent and
	// no other source supplied a birth date.
	ErrConfigNotFound = errors.New("configuration file not found")
	// ErrConfigParse is returned when the configuration is malformed or incomplete.
	ErrConfigParse = errors.New("invalid configuration")
)
