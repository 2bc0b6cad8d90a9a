package lyrender

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/alnah/go-lyrender/internal/config"
	"github.com/alnah/go-lyrender/internal/pipeline"
)

// Option configures a Renderer.
type Option func(*Renderer)

// Tools names the external binaries. Bare names are resolved through PATH.
type Tools struct {
	Lilypond    string
	Ghostscript string
	Convert     string
	Fluidsynth  string
	Midi2ly     string
}

// DefaultTools returns the standard binary names.
func DefaultTools() Tools {
	return Tools{
		Lilypond:    "lilypond",
		Ghostscript: "gs",
		Convert:     "convert",
		Fluidsynth:  "fluidsynth",
		Midi2ly:     "midi2ly",
	}
}

// rendererConfig holds internal configuration for Renderer.
type rendererConfig struct {
	tools      Tools
	resolution int
	sampleRate int
	sampleBank string
	workers    int
	maxPages   int
	maxAudio   time.Duration
	timeout    time.Duration
	tempDir    string
}

func defaultRendererConfig() rendererConfig {
	return rendererConfig{
		tools:      DefaultTools(),
		resolution: pipeline.DefaultResolution,
		sampleRate: pipeline.DefaultSampleRate,
		sampleBank: config.DefaultSampleBank,
		maxPages:   pipeline.DefaultMaxPages,
	}
}

// WithTools overrides tool binaries. Empty fields keep their defaults.
func WithTools(t Tools) Option {
	return func(r *Renderer) {
		set := func(dst *string, v string) {
			if v != "" {
				*dst = v
			}
		}
		set(&r.cfg.tools.Lilypond, t.Lilypond)
		set(&r.cfg.tools.Ghostscript, t.Ghostscript)
		set(&r.cfg.tools.Convert, t.Convert)
		set(&r.cfg.tools.Fluidsynth, t.Fluidsynth)
		set(&r.cfg.tools.Midi2ly, t.Midi2ly)
	}
}

// WithResolution sets the rasterization resolution in DPI.
// Panics if dpi <= 0 (programmer error).
func WithResolution(dpi int) Option {
	if dpi <= 0 {
		panic("lyrender: WithResolution dpi must be positive")
	}
	return func(r *Renderer) {
		r.cfg.resolution = dpi
	}
}

// WithSampleRate sets the audio sample rate in Hz.
// Panics if hz <= 0 (programmer error).
func WithSampleRate(hz int) Option {
	if hz <= 0 {
		panic("lyrender: WithSampleRate rate must be positive")
	}
	return func(r *Renderer) {
		r.cfg.sampleRate = hz
	}
}

// WithSampleBank sets the SoundFont used for synthesis.
func WithSampleBank(path string) Option {
	return func(r *Renderer) {
		if path != "" {
			r.cfg.sampleBank = path
		}
	}
}

// WithWorkers sets how many pages are trimmed concurrently.
// Zero or negative selects a value from GOMAXPROCS (see ResolveWorkers).
func WithWorkers(n int) Option {
	return func(r *Renderer) {
		r.cfg.workers = n
	}
}

// WithMaxPages caps page discovery for documents that do not declare
// their page count. Zero or negative keeps the default.
func WithMaxPages(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.cfg.maxPages = n
		}
	}
}

// WithMaxAudio truncates the rendered audio to d. Zero disables truncation.
func WithMaxAudio(d time.Duration) Option {
	return func(r *Renderer) {
		r.cfg.maxAudio = d
	}
}

// WithTimeout bounds a whole render. Zero means no timeout beyond the
// caller's context.
// Panics if d < 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d < 0 {
		panic("lyrender: WithTimeout duration must not be negative")
	}
	return func(r *Renderer) {
		r.cfg.timeout = d
	}
}

// WithTempDir sets the parent of per-run working directories.
func WithTempDir(dir string) Option {
	return func(r *Renderer) {
		r.cfg.tempDir = dir
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Renderer) {
		r.log = l
	}
}
