// Package config provides configuration types and defaults for stills.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default constants
const (
	// DefaultFormat is the image format for extracted frames.
	DefaultFormat string = "png"

	// DefaultJPEGQuality is the JPEG encoding quality (1-100).
	DefaultJPEGQuality int = 90

	// DefaultSheetColumns is the number of tiles per contact sheet row.
	DefaultSheetColumns int = 5

	// DefaultSheetTileWidth is the width of each contact sheet tile in pixels.
	DefaultSheetTileWidth int = 320

	// DefaultSheetCount is the number of frames sampled for a contact sheet.
	DefaultSheetCount int = 20

	// DefaultSheetPadding is the gap between contact sheet tiles in pixels.
	DefaultSheetPadding int = 8

	// MaxJPEGQuality is the maximum valid JPEG quality value.
	MaxJPEGQuality int = 100

	// MaxSheetColumns is the maximum tiles per contact sheet row.
	MaxSheetColumns int = 16
)

// Format represents an output image format.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatBMP  Format = "bmp"
)

// ParseFormat parses a string into a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "png":
		return FormatPNG, nil
	case "jpeg", "jpg":
		return FormatJPEG, nil
	case "bmp":
		return FormatBMP, nil
	default:
		return "", fmt.Errorf("%w: '%s', valid options: png, jpeg, bmp", ErrInvalidFormat, s)
	}
}

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// Extension returns the file extension for the format, including the dot.
func (f Format) Extension() string {
	switch f {
	case FormatJPEG:
		return ".jpg"
	case FormatBMP:
		return ".bmp"
	default:
		return ".png"
	}
}

// Config holds all configuration for frame extraction.
type Config struct {
	// Input/output paths
	OutputDir string `yaml:"output_dir"`
	LogDir    string `yaml:"log_dir"`

	// Extraction options
	Format      Format `yaml:"format"`
	JPEGQuality int    `yaml:"jpeg_quality"`
	Width       int    `yaml:"width"` // Output width, 0 keeps source size

	// Contact sheet options
	SheetColumns   int `yaml:"sheet_columns"`
	SheetTileWidth int `yaml:"sheet_tile_width"`
	SheetCount     int `yaml:"sheet_count"`
	SheetPadding   int `yaml:"sheet_padding"`
}

// NewConfig creates a new Config with default values.
func NewConfig(outputDir, logDir string) *Config {
	return &Config{
		OutputDir:      outputDir,
		LogDir:         logDir,
		Format:         Format(DefaultFormat),
		JPEGQuality:    DefaultJPEGQuality,
		SheetColumns:   DefaultSheetColumns,
		SheetTileWidth: DefaultSheetTileWidth,
		SheetCount:     DefaultSheetCount,
		SheetPadding:   DefaultSheetPadding,
	}
}

// DefaultPath returns the user-level config file location, or "" when the
// user config directory cannot be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "stills", "config.yaml")
}

// LoadDefault loads the user-level config file when it exists, and plain
// defaults otherwise.
func LoadDefault() (*Config, error) {
	path := DefaultPath()
	if path == "" {
		return NewConfig("", ""), nil
	}
	if _, err := os.Stat(path); err != nil {
		return NewConfig("", ""), nil
	}
	return LoadFile(path)
}

// LoadFile reads a YAML config file and overlays it on the defaults.
func LoadFile(path string) (*Config, error) {
	c := NewConfig("", "")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Format != "" {
		if _, err := ParseFormat(string(c.Format)); err != nil {
			return err
		}
	}

	if c.JPEGQuality < 1 || c.JPEGQuality > MaxJPEGQuality {
		return fmt.Errorf("%w: must be 1-%d, got %d", ErrInvalidQuality, MaxJPEGQuality, c.JPEGQuality)
	}

	if c.Width < 0 {
		return fmt.Errorf("%w: width must not be negative, got %d", ErrInvalidDimension, c.Width)
	}

	if c.SheetColumns < 1 || c.SheetColumns > MaxSheetColumns {
		return fmt.Errorf("%w: sheet_columns must be 1-%d, got %d", ErrInvalidSheetLayout, MaxSheetColumns, c.SheetColumns)
	}

	if c.SheetTileWidth < 16 {
		return fmt.Errorf("%w: sheet_tile_width must be at least 16, got %d", ErrInvalidSheetLayout, c.SheetTileWidth)
	}

	if c.SheetCount < 1 {
		return fmt.Errorf("%w: sheet_count must be at least 1, got %d", ErrInvalidSheetLayout, c.SheetCount)
	}

	return nil
}
