package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestNewConfig(t *testing.T) {
	cfg := NewConfig("/output", "/log")

	if cfg.OutputDir != "/output" {
		t.Errorf("expected OutputDir=/output, got %s", cfg.OutputDir)
	}
	if cfg.LogDir != "/log" {
		t.Errorf("expected LogDir=/log, got %s", cfg.LogDir)
	}

	// Check defaults
	if cfg.Format != FormatPNG {
		t.Errorf("expected Format=png, got %s", cfg.Format)
	}
	if cfg.JPEGQuality != DefaultJPEGQuality {
		t.Errorf("expected JPEGQuality=%d, got %d", DefaultJPEGQuality, cfg.JPEGQuality)
	}
	if cfg.SheetColumns != DefaultSheetColumns {
		t.Errorf("expected SheetColumns=%d, got %d", DefaultSheetColumns, cfg.SheetColumns)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name         string
		modify       func(*Config)
		wantErr      bool
		wantSentinel error
	}{
		{
			name:    "default config is valid",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:         "unknown format is invalid",
			modify:       func(c *Config) { c.Format = "tiff" },
			wantErr:      true,
			wantSentinel: ErrInvalidFormat,
		},
		{
			name:    "jpg alias is valid",
			modify:  func(c *Config) { c.Format = "jpg" },
			wantErr: false,
		},
		{
			name:         "quality 0 is invalid",
			modify:       func(c *Config) { c.JPEGQuality = 0 },
			wantErr:      true,
			wantSentinel: ErrInvalidQuality,
		},
		{
			name:         "quality 101 is invalid",
			modify:       func(c *Config) { c.JPEGQuality = 101 },
			wantErr:      true,
			wantSentinel: ErrInvalidQuality,
		},
		{
			name:    "quality 100 is valid",
			modify:  func(c *Config) { c.JPEGQuality = 100 },
			wantErr: false,
		},
		{
			name:         "negative width is invalid",
			modify:       func(c *Config) { c.Width = -1 },
			wantErr:      true,
			wantSentinel: ErrInvalidDimension,
		},
		{
			name:         "zero sheet columns is invalid",
			modify:       func(c *Config) { c.SheetColumns = 0 },
			wantErr:      true,
			wantSentinel: ErrInvalidSheetLayout,
		},
		{
			name:         "too many sheet columns is invalid",
			modify:       func(c *Config) { c.SheetColumns = MaxSheetColumns + 1 },
			wantErr:      true,
			wantSentinel: ErrInvalidSheetLayout,
		},
		{
			name:         "tiny tile width is invalid",
			modify:       func(c *Config) { c.SheetTileWidth = 8 },
			wantErr:      true,
			wantSentinel: ErrInvalidSheetLayout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig("/output", "/log")
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantSentinel != nil && !errors.Is(err, tt.wantSentinel) {
				t.Errorf("Validate() error = %v, want sentinel %v", err, tt.wantSentinel)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input        string
		want         Format
		wantErr      bool
		wantSentinel error
	}{
		{"png", FormatPNG, false, nil},
		{"PNG", FormatPNG, false, nil},
		{"jpeg", FormatJPEG, false, nil},
		{"jpg", FormatJPEG, false, nil},
		{"JPG", FormatJPEG, false, nil},
		{"bmp", FormatBMP, false, nil},
		{"invalid", "", true, ErrInvalidFormat},
		{"", "", true, ErrInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if tt.wantSentinel != nil && !errors.Is(err, tt.wantSentinel) {
				t.Errorf("ParseFormat(%q) error = %v, want sentinel %v", tt.input, err, tt.wantSentinel)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatExtension(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{FormatPNG, ".png"},
		{FormatJPEG, ".jpg"},
		{FormatBMP, ".bmp"},
	}

	for _, tt := range tests {
		if got := tt.format.Extension(); got != tt.want {
			t.Errorf("%s.Extension() = %s, want %s", tt.format, got, tt.want)
		}
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stills.yaml")

	content := []byte("format: jpeg\njpeg_quality: 75\nsheet_columns: 4\n")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	if cfg.Format != FormatJPEG {
		t.Errorf("expected Format=jpeg, got %s", cfg.Format)
	}
	if cfg.JPEGQuality != 75 {
		t.Errorf("expected JPEGQuality=75, got %d", cfg.JPEGQuality)
	}
	if cfg.SheetColumns != 4 {
		t.Errorf("expected SheetColumns=4, got %d", cfg.SheetColumns)
	}
	// Untouched fields keep defaults
	if cfg.SheetTileWidth != DefaultSheetTileWidth {
		t.Errorf("expected SheetTileWidth=%d, got %d", DefaultSheetTileWidth, cfg.SheetTileWidth)
	}
}

func TestLoadFileInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stills.yaml")

	if err := os.WriteFile(path, []byte("jpeg_quality: 400\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFile(path); !errors.Is(err, ErrInvalidQuality) {
		t.Errorf("LoadFile() error = %v, want %v", err, ErrInvalidQuality)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile("/nonexistent/stills.yaml"); err == nil {
		t.Error("expected error for missing config file")
	}
}
