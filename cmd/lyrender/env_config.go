package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/alnah/go-lyrender/internal/config"
)

// envPrefix namespaces all lyrender environment variables.
const envPrefix = "LYRENDER_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	// Tier 1 - Essential
	ConfigPath string // LYRENDER_CONFIG: config file name or path
	SoundFont  string // LYRENDER_SOUNDFONT: explicit .sf2 path
	Timeout    string // LYRENDER_TIMEOUT: whole-run timeout

	// Tier 2 - Runtime
	SoundFontFile string // LYRENDER_SOUNDFONT_FILE: file naming the .sf2
	WorkDir       string // LYRENDER_WORKDIR: working directory
	Workers       int    // LYRENDER_WORKERS: parallel trims
	Resolution    int    // LYRENDER_RESOLUTION: raster dpi

	// Tier 3 - Diagnostics
	LogLevel  string // LYRENDER_LOG_LEVEL: trace, debug, info, warn, error
	LogFormat string // LYRENDER_LOG_FORMAT: console, json
}

// knownEnvVars lists valid LYRENDER_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	// Tier 1 - Essential
	"LYRENDER_CONFIG":    true,
	"LYRENDER_SOUNDFONT": true,
	"LYRENDER_TIMEOUT":   true,
	// Tier 2 - Runtime
	"LYRENDER_SOUNDFONT_FILE": true,
	"LYRENDER_WORKDIR":        true,
	"LYRENDER_WORKERS":        true,
	"LYRENDER_RESOLUTION":     true,
	// Tier 3 - Diagnostics
	"LYRENDER_LOG_LEVEL":  true,
	"LYRENDER_LOG_FORMAT": true,
	"LYRENDER_CONTAINER":  true, // doctor override
}

// loadDotEnv loads KEY=VALUE pairs from path into the process environment.
// Variables already set are not overridden; a missing file is not an error.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// loadEnvConfig reads configuration from environment variables.
// Returns a struct with all recognized LYRENDER_* values.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		// Tier 1
		ConfigPath: os.Getenv("LYRENDER_CONFIG"),
		SoundFont:  os.Getenv("LYRENDER_SOUNDFONT"),
		Timeout:    os.Getenv("LYRENDER_TIMEOUT"),
		// Tier 2
		SoundFontFile: os.Getenv("LYRENDER_SOUNDFONT_FILE"),
		WorkDir:       os.Getenv("LYRENDER_WORKDIR"),
		// Tier 3
		LogLevel:  os.Getenv("LYRENDER_LOG_LEVEL"),
		LogFormat: os.Getenv("LYRENDER_LOG_FORMAT"),
	}

	// Parse ints; invalid values are ignored like unset ones
	if workers := os.Getenv("LYRENDER_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}
	if res := os.Getenv("LYRENDER_RESOLUTION"); res != "" {
		if r, err := strconv.Atoi(res); err == nil && r > 0 {
			cfg.Resolution = r
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized LYRENDER_* variables.
// Helps catch typos like LYRENDER_SOUNDFONTS instead of LYRENDER_SOUNDFONT.
func warnUnknownEnvVars(log zerolog.Logger) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				log.Warn().Str("var", name).Msg("unknown environment variable (typo?)")
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Set variables override the config file; CLI flags are applied later via
// mergeFlags. This ensures: CLI flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	// Tier 1
	if env.SoundFont != "" {
		cfg.Audio.SampleBank = env.SoundFont
	}
	if env.Timeout != "" {
		cfg.Timeout = env.Timeout
	}

	// Tier 2
	if env.SoundFontFile != "" {
		cfg.Audio.SampleBankFile = env.SoundFontFile
	}
	if env.WorkDir != "" {
		cfg.WorkDir = env.WorkDir
	}
	if env.Workers > 0 {
		cfg.Workers = env.Workers
	}
	if env.Resolution > 0 {
		cfg.Raster.Resolution = env.Resolution
	}

	// Tier 3
	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}
	if env.LogFormat != "" {
		cfg.Log.Format = env.LogFormat
	}
}
