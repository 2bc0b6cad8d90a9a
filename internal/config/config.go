// Package config loads and validates lyrender configuration files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-lyrender/internal/fileutil"
	"github.com/alnah/go-lyrender/internal/pipeline"
	"github.com/alnah/go-lyrender/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidValue    = errors.New("invalid config value")
)

// appDir names the per-user directory under os.UserConfigDir.
const appDir = "lyrender"

// Defaults for the rendering pipeline.
const (
	DefaultResolution = pipeline.DefaultResolution
	DefaultSampleRate = pipeline.DefaultSampleRate
	DefaultMaxPages   = pipeline.DefaultMaxPages
)

// Bounds checked by Validate.
const (
	MinResolution = 10
	MaxResolution = 2400
	MinSampleRate = 8000
	MaxSampleRate = 192000
	MaxPagesLimit = 10000
	MaxWorkers    = 64
)

// Config holds all configuration for a rendering run.
type Config struct {
	Tools   ToolsConfig  `yaml:"tools"`
	Raster  RasterConfig `yaml:"raster"`
	Audio   AudioConfig  `yaml:"audio"`
	Log     LogConfig    `yaml:"log"`
	Workers int          `yaml:"workers"` // trim parallelism (0 = auto)
	Timeout string       `yaml:"timeout"` // whole-run timeout, e.g. "2m" (empty = none)
	WorkDir string       `yaml:"workDir"` // empty = fresh temp directory per run
}

// ToolsConfig names the external binaries. Bare names are resolved through PATH.
type ToolsConfig struct {
	Lilypond    string `yaml:"lilypond"`
	Ghostscript string `yaml:"ghostscript"`
	Convert     string `yaml:"convert"`
	Fluidsynth  string `yaml:"fluidsynth"`
	Midi2ly     string `yaml:"midi2ly"`
}

// RasterConfig controls page rasterization.
type RasterConfig struct {
	Resolution int `yaml:"resolution"` // dpi passed to gs -r
	MaxPages   int `yaml:"maxPages"`   // probe cap when the page count is not declared
}

// AudioConfig controls synthesis.
type AudioConfig struct {
	SampleRate     int     `yaml:"sampleRate"`
	SampleBank     string  `yaml:"sampleBank"`     // explicit .sf2 path, wins over SampleBankFile
	SampleBankFile string  `yaml:"sampleBankFile"` // file whose trimmed content names the .sf2
	MaxSeconds     float64 `yaml:"maxSeconds"`     // truncate audio (0 = full length)
}

// LogConfig controls diagnostics on stderr.
type LogConfig struct {
	Level  string `yaml:"level"`  // trace, debug, info, warn, error
	Format string `yaml:"format"` // console, json
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Tools: ToolsConfig{
			Lilypond:    "lilypond",
			Ghostscript: "gs",
			Convert:     "convert",
			Fluidsynth:  "fluidsynth",
			Midi2ly:     "midi2ly",
		},
		Raster: RasterConfig{
			Resolution: DefaultResolution,
			MaxPages:   DefaultMaxPages,
		},
		Audio: AudioConfig{
			SampleRate:     DefaultSampleRate,
			SampleBankFile: DefaultSampleBankFile(),
		},
	}
}

// Validate checks ranges and formats.
// Called automatically by LoadConfig, and again by the CLI after env vars
// and flags have been merged in.
func (c *Config) Validate() error {
	tools := map[string]string{
		"tools.lilypond":    c.Tools.Lilypond,
		"tools.ghostscript": c.Tools.Ghostscript,
		"tools.convert":     c.Tools.Convert,
		"tools.fluidsynth":  c.Tools.Fluidsynth,
		"tools.midi2ly":     c.Tools.Midi2ly,
	}
	for field, value := range tools {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: %s cannot be empty", ErrInvalidValue, field)
		}
	}

	if c.Raster.Resolution < MinResolution || c.Raster.Resolution > MaxResolution {
		return fmt.Errorf("%w: raster.resolution must be between %d and %d, got %d",
			ErrInvalidValue, MinResolution, MaxResolution, c.Raster.Resolution)
	}
	if c.Raster.MaxPages < 1 || c.Raster.MaxPages > MaxPagesLimit {
		return fmt.Errorf("%w: raster.maxPages must be between 1 and %d, got %d",
			ErrInvalidValue, MaxPagesLimit, c.Raster.MaxPages)
	}

	if c.Audio.SampleRate < MinSampleRate || c.Audio.SampleRate > MaxSampleRate {
		return fmt.Errorf("%w: audio.sampleRate must be between %d and %d, got %d",
			ErrInvalidValue, MinSampleRate, MaxSampleRate, c.Audio.SampleRate)
	}
	if c.Audio.MaxSeconds < 0 {
		return fmt.Errorf("%w: audio.maxSeconds cannot be negative, got %.2f", ErrInvalidValue, c.Audio.MaxSeconds)
	}

	if c.Workers < 0 || c.Workers > MaxWorkers {
		return fmt.Errorf("%w: workers must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Workers)
	}

	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}

	if c.Log.Format != "" {
		switch strings.ToLower(c.Log.Format) {
		case "console", "json":
		default:
			return fmt.Errorf("%w: log.format must be console or json, got %q", ErrInvalidValue, c.Log.Format)
		}
	}

	return nil
}

// TimeoutDuration parses Timeout. Empty means no timeout.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: timeout %q: %v", ErrInvalidValue, c.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: timeout must be positive, got %s", ErrInvalidValue, c.Timeout)
	}
	return d, nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields absent from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths lists the files tried for a config name, in order.
// Extensions: .yaml, .yml. Locations: current directory, <UserConfigDir>/lyrender/.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, appDir, name+ext))
		}
	}

	return paths
}

// resolveConfigPath returns the first existing file from SearchPaths.
func resolveConfigPath(name string) (string, error) {
	triedPaths := SearchPaths(name)
	for _, p := range triedPaths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
