package lyrender

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/alnah/go-lyrender/internal/fileutil"
	"github.com/alnah/go-lyrender/internal/pipeline"
	"github.com/alnah/go-lyrender/internal/process"
)

// Renderer runs the rendering pipeline. It holds no per-run state and is
// safe for concurrent use; every Render gets its own working directory.
type Renderer struct {
	cfg    rendererConfig
	runner process.Runner
	log    zerolog.Logger
}

// NewRenderer creates a Renderer with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithSampleBank).
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		cfg:    defaultRendererConfig(),
		runner: process.NewExecRunner(),
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render runs every stage and returns the artifact paths.
// On failure or cancellation the partial artifacts are removed and no
// Result is returned. Recovers from internal panics to prevent crashes from
// propagating to callers.
func (r *Renderer) Render(ctx context.Context, input Input) (result *Result, err error) {
	var ws *pipeline.Workspace
	runID := uuid.NewString()
	log := r.log.With().Str("run", runID).Logger()

	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("internal error: %v", rec)
			result = nil
		}
		if err != nil && ws != nil {
			if derr := ws.Discard(); derr != nil {
				log.Warn().Err(derr).Str("dir", ws.Dir()).Msg("cannot remove partial artifacts")
			}
		}
	}()

	if err := validateInput(input); err != nil {
		return nil, err
	}

	if r.cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.timeout)
		defer cancel()
	}

	ws, err = r.openWorkspace(input.WorkDir, runID)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("dir", ws.Dir()).Bool("owned", ws.Owned()).Msg("workspace ready")

	return r.run(ctx, ws, input, log)
}

func (r *Renderer) openWorkspace(dir, runID string) (*pipeline.Workspace, error) {
	if dir != "" {
		return pipeline.OpenWorkspace(dir)
	}
	return pipeline.NewWorkspace(r.cfg.tempDir, runID)
}

func (r *Renderer) run(ctx context.Context, ws *pipeline.Workspace, input Input, log zerolog.Logger) (*Result, error) {
	tools := r.cfg.tools

	// Source
	prep := &pipeline.Preparer{Runner: r.runner, Midi2ly: tools.Midi2ly, Log: log}
	var src pipeline.Source
	var err error
	if input.Path != "" {
		src, err = prep.FromPath(ctx, ws, input.Path)
	} else {
		src, err = prep.FromText(ws, input.Source)
	}
	if err != nil {
		return nil, fmt.Errorf("preparing source: %w", err)
	}
	log.Debug().Str("source", src.Path).Bool("generated", src.Generated).Msg("source ready")

	// Typeset
	ts := &pipeline.Typesetter{Runner: r.runner, Binary: tools.Lilypond, Log: log}
	typeset, err := ts.Typeset(ctx, ws, src)
	if err != nil {
		return nil, fmt.Errorf("typesetting: %w", err)
	}

	// Geometry
	geom, err := pipeline.ExtractGeometry(typeset.PostScript)
	if err != nil {
		return nil, fmt.Errorf("extracting page geometry: %w", err)
	}
	log.Debug().Float64("width", geom.Width).Float64("height", geom.Height).Int("pages", geom.Pages).Msg("page geometry")

	// Rasterize
	rast := &pipeline.Rasterizer{Runner: r.runner, Binary: tools.Ghostscript, Resolution: r.cfg.resolution, Log: log}
	if err := rast.Rasterize(ctx, ws, typeset.PostScript, geom); err != nil {
		return nil, fmt.Errorf("rasterizing: %w", err)
	}

	// Trim
	pages, err := pipeline.DiscoverPages(ws, geom.Pages, r.cfg.maxPages)
	if err != nil {
		return nil, fmt.Errorf("discovering pages: %w", err)
	}
	if geom.Pages > 0 && len(pages) != geom.Pages {
		log.Warn().Int("declared", geom.Pages).Int("found", len(pages)).Msg("page count mismatch")
	}
	if geom.Pages > 0 && len(pages) == geom.Pages && fileutil.FileExists(ws.PagePath(geom.Pages+1)) {
		log.Warn().Int("declared", geom.Pages).Str("ignored", ws.PagePath(geom.Pages+1)).Msg("pages beyond declared count ignored")
	}
	if len(pages) == 0 {
		log.Warn().Msg("rasterizer produced no pages")
	}
	trim := &pipeline.Trimmer{Runner: r.runner, Binary: tools.Convert, Workers: ResolveWorkers(r.cfg.workers), Log: log}
	images, err := trim.Trim(ctx, ws, pages)
	if err != nil {
		return nil, fmt.Errorf("trimming: %w", err)
	}

	// Audio
	synth := &pipeline.Synthesizer{Runner: r.runner, Binary: tools.Fluidsynth, SampleRate: r.cfg.sampleRate, Log: log}
	audio, err := synth.Synthesize(ctx, ws, typeset.MIDI, r.cfg.sampleBank)
	if err != nil {
		return nil, fmt.Errorf("synthesizing audio: %w", err)
	}
	if r.cfg.maxAudio > 0 {
		truncated, err := pipeline.TruncateWAV(audio, r.cfg.maxAudio)
		if err != nil {
			return nil, fmt.Errorf("limiting audio: %w", err)
		}
		if truncated {
			log.Debug().Dur("max", r.cfg.maxAudio).Msg("audio truncated")
		}
	}

	// Cancelled after the last tool exited.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &Result{Images: images, Audio: audio, WorkDir: ws.Dir()}, nil
}

// validateInput checks that exactly one input form is set and that a
// source path exists.
func validateInput(input Input) error {
	switch {
	case input.Path == "" && input.Source == "":
		return ErrNoInput
	case input.Path != "" && input.Source != "":
		return ErrAmbiguousInput
	case input.Path != "" && !fileutil.FileExists(input.Path):
		return fmt.Errorf("%w: %s", ErrSourceNotFound, input.Path)
	}
	return nil
}
