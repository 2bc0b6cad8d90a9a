package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config    string
	quiet     bool
	verbose   bool
	logLevel  string
	logFormat string
}

// toolFlags overrides the external binaries.
type toolFlags struct {
	lilypond    string
	ghostscript string
	convert     string
	fluidsynth  string
	midi2ly     string
}

// rasterFlags holds page rasterization flags.
type rasterFlags struct {
	resolution int
	maxPages   int
}

// audioFlags holds synthesis flags.
type audioFlags struct {
	soundfont  string
	sampleRate int
	maxSeconds float64
}

// renderFlags holds all flags for the render command.
type renderFlags struct {
	common  commonFlags
	source  string
	workDir string
	workers int
	timeout string
	tools   toolFlags
	raster  rasterFlags
	audio   audioFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only log errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log every tool invocation")
	fs.StringVar(&f.logLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	fs.StringVar(&f.logFormat, "log-format", "", "log format: console, json")
}

// addToolFlags adds external tool flags to a FlagSet.
func addToolFlags(fs *flag.FlagSet, f *toolFlags) {
	fs.StringVar(&f.lilypond, "lilypond", "", "lilypond binary")
	fs.StringVar(&f.ghostscript, "gs", "", "ghostscript binary")
	fs.StringVar(&f.convert, "convert", "", "ImageMagick convert binary")
	fs.StringVar(&f.fluidsynth, "fluidsynth", "", "fluidsynth binary")
	fs.StringVar(&f.midi2ly, "midi2ly", "", "midi2ly binary")
}

// addRasterFlags adds rasterization flags to a FlagSet.
func addRasterFlags(fs *flag.FlagSet, f *rasterFlags) {
	fs.IntVarP(&f.resolution, "resolution", "r", 0, "raster resolution in dpi (default: 101)")
	fs.IntVar(&f.maxPages, "max-pages", 0, "page cap when the page count is not declared (default: 500)")
}

// addAudioFlags adds synthesis flags to a FlagSet.
func addAudioFlags(fs *flag.FlagSet, f *audioFlags) {
	fs.StringVarP(&f.soundfont, "soundfont", "s", "", "sample bank (.sf2) path")
	fs.IntVar(&f.sampleRate, "sample-rate", 0, "audio sample rate in Hz (default: 44100)")
	fs.Float64Var(&f.maxSeconds, "max-audio", 0, "truncate audio to n seconds (0 = full length)")
}

// newRenderFlagSet registers every render flag on a fresh FlagSet.
// Shared by parseRenderFlags and shell completion.
func newRenderFlagSet(f *renderFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)

	// I/O flags
	fs.StringVar(&f.source, "source", "", "LilyPond music text (\"-\" reads stdin)")
	fs.StringVarP(&f.workDir, "workdir", "d", "", "working directory (default: fresh temp dir)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel page trims (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "whole-run timeout (e.g., 30s, 2m)")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addToolFlags(fs, &f.tools)
	addRasterFlags(fs, &f.raster)
	addAudioFlags(fs, &f.audio)

	return fs
}

// parseRenderFlags parses render command flags and returns positional args.
// Returns flag.ErrHelp when -h or --help is given.
func parseRenderFlags(args []string) (*renderFlags, []string, error) {
	f := &renderFlags{}
	fs := newRenderFlagSet(f)

	// Errors are reported once by runMain
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
