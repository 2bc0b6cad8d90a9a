package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/alnah/go-lyrender/internal/process"
)

// scaffold wraps a bare music expression into a complete score with
// layout, MIDI output at 100 quarter notes per minute, no tagline and no
// first-system indent.
const scaffold = `\header { tagline = ##f }
\score {
  %s
\layout {}
  \midi { \context { \Score tempoWholesPerMinute = #(ly:make-moment 100 4) } }
}
\paper { indent = 0\mm }
`

// Scaffold returns the complete source for a raw music expression.
// The expression is inserted verbatim.
func Scaffold(body string) string {
	return fmt.Sprintf(scaffold, body)
}

// Source is the notation file handed to the typesetter.
type Source struct {
	Path      string
	Generated bool // written by the preparer, not supplied by the caller
}

// IsMIDI reports whether path names a Standard MIDI File by extension.
func IsMIDI(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mid", ".midi":
		return true
	}
	return false
}

// Preparer turns caller input into a Source inside the workspace.
type Preparer struct {
	Runner  process.Runner
	Midi2ly string // MIDI importer binary
	Log     zerolog.Logger
}

// FromText wraps text in the scaffold and writes it to file.ly,
// overwriting any previous content.
func (p *Preparer) FromText(ws *Workspace, text string) (Source, error) {
	path, err := ws.WriteFile(SourceName, []byte(Scaffold(text)))
	if err != nil {
		return Source{}, fmt.Errorf("preparing source: %w", err)
	}
	p.Log.Debug().Str("source", path).Int("bytes", len(text)).Msg("wrote scaffolded source")
	return Source{Path: path, Generated: true}, nil
}

// FromPath uses the file at path unchanged. MIDI files are imported into
// file-import.ly first.
func (p *Preparer) FromPath(ctx context.Context, ws *Workspace, path string) (Source, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Source{}, fmt.Errorf("preparing source: %w", err)
	}
	if !IsMIDI(abs) {
		p.Log.Debug().Str("source", abs).Msg("using source file")
		return Source{Path: abs}, nil
	}

	out := ws.Path(ImportName)
	ws.track(out)
	cmd := process.Command{
		Name: p.Midi2ly,
		Args: []string{abs, "-o", out},
		Dir:  ws.Dir(),
	}
	p.Log.Debug().Str("cmd", cmd.String()).Msg("importing MIDI")
	if _, err := p.Runner.Run(ctx, cmd); err != nil {
		return Source{}, err
	}
	return Source{Path: out, Generated: true}, nil
}
