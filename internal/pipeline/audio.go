package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/alnah/go-lyrender/internal/fileutil"
	"github.com/alnah/go-lyrender/internal/process"
)

// DefaultSampleRate is the audio sample rate in Hz.
const DefaultSampleRate = 44100

// Audio stage errors.
var (
	ErrMissingMIDI       = errors.New("typesetter produced no MIDI output")
	ErrSampleBankMissing = errors.New("sample bank not found")
)

// Synthesizer renders MIDI to WAV with fluidsynth.
type Synthesizer struct {
	Runner     process.Runner
	Binary     string
	SampleRate int // zero uses DefaultSampleRate
	Log        zerolog.Logger
}

// SynthArgs returns the synthesizer arguments.
func SynthArgs(out string, rate int, bank, midi string) []string {
	return []string{"-T", "wav", "-F", out, "-r", strconv.Itoa(rate), bank, midi}
}

// Synthesize renders midi with the given sample bank into file.wav and
// returns its path. The tool's output is discarded; its stderr only
// surfaces in the error of a failed run.
func (s *Synthesizer) Synthesize(ctx context.Context, ws *Workspace, midi, bank string) (string, error) {
	if !fileutil.FileExists(midi) {
		return "", fmt.Errorf("%w: %s (does the score have a \\midi block?)", ErrMissingMIDI, midi)
	}
	if !fileutil.FileExists(bank) {
		return "", fmt.Errorf("%w: %s", ErrSampleBankMissing, bank)
	}

	rate := s.SampleRate
	if rate <= 0 {
		rate = DefaultSampleRate
	}
	out := ws.Path(AudioName)
	cmd := process.Command{
		Name:  s.Binary,
		Args:  SynthArgs(out, rate, bank, midi),
		Dir:   ws.Dir(),
		Quiet: true,
	}
	s.Log.Debug().Str("cmd", cmd.String()).Msg("synthesizing audio")
	if _, err := s.Runner.Run(ctx, cmd); err != nil {
		return "", err
	}
	return out, nil
}
