package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"

	"github.com/alnah/go-lyrender"
	"github.com/alnah/go-lyrender/internal/config"
	"github.com/alnah/go-lyrender/internal/fileutil"
	"github.com/alnah/go-lyrender/internal/hints"
	"github.com/alnah/go-lyrender/internal/logging"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage       = errors.New("invalid usage")
	ErrReadSource  = errors.New("failed to read source text")
	ErrWriteResult = errors.New("failed to write result")
)

// Compile-time interface implementation check.
var _ Renderer = (*lyrender.Renderer)(nil)

// runRender renders one score and prints the JSON result on stdout.
// Nothing is written to stdout unless the whole run succeeds.
func runRender(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseRenderFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		printRenderUsage(env.Stdout)
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: expected one source file, got %d", ErrUsage, len(positional))
	}

	cfg, err := loadSettings(flags.common.config)
	if err != nil {
		return err
	}
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logging.New(logging.Options{
		Level:  resolveLogLevel(flags.common, cfg.Log.Level),
		Format: cfg.Log.Format,
		Out:    env.Stderr,
	})
	if err != nil {
		return err
	}
	warnUnknownEnvVars(log)

	input, err := buildInput(positional, flags.source, cfg.WorkDir, env.Stdin)
	if err != nil {
		return err
	}

	bank := config.ResolveSampleBank(cfg.Audio.SampleBank, cfg.Audio.SampleBankFile, log)
	log.Debug().Str("path", bank.Path).Str("origin", bank.Origin).Msg("sample bank resolved")

	opts, err := rendererOptions(cfg, bank, log)
	if err != nil {
		return err
	}

	start := time.Now()
	result, err := env.NewRenderer(opts...).Render(ctx, input)
	if err != nil {
		return err
	}
	log.Info().Int("pages", len(result.Images)).Dur("took", time.Since(start)).Msg("rendered")

	return writeResult(env.Stdout, result)
}

// loadSettings builds the configuration from defaults, the config file and
// LYRENDER_* variables. The file comes from --config, else LYRENDER_CONFIG.
func loadSettings(configFlag string) (*config.Config, error) {
	envCfg := loadEnvConfig()

	name := configFlag
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
				return nil, fmt.Errorf("%w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
			}
			return nil, err
		}
		cfg = loaded
	}

	applyEnvConfig(envCfg, cfg)
	return cfg, nil
}

// mergeFlags overrides config values with explicitly set CLI flags.
func mergeFlags(flags *renderFlags, cfg *config.Config) {
	// Tool flags
	if flags.tools.lilypond != "" {
		cfg.Tools.Lilypond = flags.tools.lilypond
	}
	if flags.tools.ghostscript != "" {
		cfg.Tools.Ghostscript = flags.tools.ghostscript
	}
	if flags.tools.convert != "" {
		cfg.Tools.Convert = flags.tools.convert
	}
	if flags.tools.fluidsynth != "" {
		cfg.Tools.Fluidsynth = flags.tools.fluidsynth
	}
	if flags.tools.midi2ly != "" {
		cfg.Tools.Midi2ly = flags.tools.midi2ly
	}

	// Raster flags
	if flags.raster.resolution != 0 {
		cfg.Raster.Resolution = flags.raster.resolution
	}
	if flags.raster.maxPages != 0 {
		cfg.Raster.MaxPages = flags.raster.maxPages
	}

	// Audio flags
	if flags.audio.soundfont != "" {
		cfg.Audio.SampleBank = flags.audio.soundfont
	}
	if flags.audio.sampleRate != 0 {
		cfg.Audio.SampleRate = flags.audio.sampleRate
	}
	if flags.audio.maxSeconds != 0 {
		cfg.Audio.MaxSeconds = flags.audio.maxSeconds
	}

	// Run flags
	if flags.workDir != "" {
		cfg.WorkDir = flags.workDir
	}
	if flags.workers != 0 {
		cfg.Workers = flags.workers
	}
	if flags.timeout != "" {
		cfg.Timeout = flags.timeout
	}

	// Log flags
	if flags.common.logLevel != "" {
		cfg.Log.Level = flags.common.logLevel
	}
	if flags.common.logFormat != "" {
		cfg.Log.Format = flags.common.logFormat
	}
}

// resolveLogLevel picks the log level: --log-level > -v > -q > configured.
func resolveLogLevel(flags commonFlags, configured string) string {
	switch {
	case flags.logLevel != "":
		return flags.logLevel
	case flags.verbose:
		return "debug"
	case flags.quiet:
		return "error"
	}
	return configured
}

// buildInput assembles the render input. A source of "-" is read from stdin.
// Selecting both or neither input is left to Render, which reports
// ErrAmbiguousInput or ErrNoInput.
func buildInput(positional []string, source, workDir string, stdin io.Reader) (lyrender.Input, error) {
	input := lyrender.Input{WorkDir: workDir}
	if len(positional) == 1 {
		input.Path = positional[0]
	}

	if source == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return input, fmt.Errorf("%w: %v", ErrReadSource, err)
		}
		source = string(data)
	}
	input.Source = source

	return input, nil
}

// rendererOptions translates the validated config into renderer options.
func rendererOptions(cfg *config.Config, bank config.SampleBank, log zerolog.Logger) ([]lyrender.Option, error) {
	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return nil, err
	}

	opts := []lyrender.Option{
		lyrender.WithTools(lyrender.Tools{
			Lilypond:    cfg.Tools.Lilypond,
			Ghostscript: cfg.Tools.Ghostscript,
			Convert:     cfg.Tools.Convert,
			Fluidsynth:  cfg.Tools.Fluidsynth,
			Midi2ly:     cfg.Tools.Midi2ly,
		}),
		lyrender.WithResolution(cfg.Raster.Resolution),
		lyrender.WithMaxPages(cfg.Raster.MaxPages),
		lyrender.WithSampleRate(cfg.Audio.SampleRate),
		lyrender.WithSampleBank(bank.Path),
		lyrender.WithWorkers(cfg.Workers),
		lyrender.WithLogger(log),
	}
	if cfg.Audio.MaxSeconds > 0 {
		opts = append(opts, lyrender.WithMaxAudio(time.Duration(cfg.Audio.MaxSeconds*float64(time.Second))))
	}
	if timeout > 0 {
		opts = append(opts, lyrender.WithTimeout(timeout))
	}

	return opts, nil
}

// writeResult prints the result as a single JSON line.
func writeResult(w io.Writer, result *lyrender.Result) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteResult, err)
	}
	return nil
}
