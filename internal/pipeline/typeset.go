package pipeline

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/alnah/go-lyrender/internal/process"
)

// TypesetOutput names the artifacts produced by the typesetter.
type TypesetOutput struct {
	PostScript string
	MIDI       string
}

// Typesetter runs lilypond on a Source.
type Typesetter struct {
	Runner process.Runner
	Binary string
	Log    zerolog.Logger
}

// TypesetArgs returns the typesetter arguments for source. Output goes to
// the "file" stem in the working directory.
func TypesetArgs(source string) []string {
	return []string{
		"-dmidiextension=midi",
		"--ps",
		"--header=texidoc",
		"--loglevel=ERROR",
		"-o", Stem,
		source,
	}
}

// Typeset produces file.ps and file.midi in the workspace.
func (t *Typesetter) Typeset(ctx context.Context, ws *Workspace, src Source) (TypesetOutput, error) {
	cmd := process.Command{
		Name: t.Binary,
		Args: TypesetArgs(src.Path),
		Dir:  ws.Dir(),
	}
	t.Log.Debug().Str("cmd", cmd.String()).Msg("typesetting")
	if _, err := t.Runner.Run(ctx, cmd); err != nil {
		return TypesetOutput{}, err
	}
	return TypesetOutput{
		PostScript: ws.Path(PostScriptName),
		MIDI:       ws.Path(MIDIName),
	}, nil
}
