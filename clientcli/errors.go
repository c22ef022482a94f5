package clientcli

import "errors"

// Errors for profile lookup.
var (
	ErrProfileNotFound  = errors.New("profile not found")
	ErrNoProfiles       = errors.New("no profiles configured")
	ErrNoDefaultProfile = errors.New("several profiles and none is the default")
)

// Errors for configuration validation.
var (
	ErrConfigRequired  = errors.New("config is required")
	ErrInvalidEndpoint = errors.New("invalid endpoint")
)
