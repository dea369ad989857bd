// Package config provides configuration types and defaults for stills.
package config

import "errors"

// Sentinel errors for configuration validation.
var (
	// ErrInvalidFormat indicates an unknown output image format was provided.
	ErrInvalidFormat = errors.New("invalid image format")

	// ErrInvalidQuality indicates a JPEG quality outside the valid 1-100 range.
	ErrInvalidQuality = errors.New("JPEG quality out of range")

	// ErrInvalidDimension indicates a negative output dimension.
	ErrInvalidDimension = errors.New("invalid output dimension")

	// ErrInvalidSheetLayout indicates contact sheet layout values out of range.
	ErrInvalidSheetLayout = errors.New("contact sheet layout invalid")
)
