package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alnah/go-lyrender/internal/fileutil"
)

// Canonical artifact names inside a workspace.
const (
	Stem           = "file"
	SourceName     = Stem + ".ly"
	ImportName     = Stem + "-import.ly"
	PostScriptName = Stem + ".ps"
	MIDIName       = Stem + ".midi"
	AudioName      = Stem + ".wav"
	PagePattern    = Stem + "-page%d.png"

	pageGlob = Stem + "-page*.png" // also matches in-flight *.trim.png files
)

// ErrWorkspace is returned when the working directory cannot be prepared.
var ErrWorkspace = errors.New("workspace unavailable")

// Workspace is the working directory of a single run.
// Concurrent runs must not share one: canonical names collide.
type Workspace struct {
	dir     string
	owned   bool
	written []string
}

// NewWorkspace creates a fresh directory under parent (empty = os.TempDir).
// The directory belongs to the run and Discard removes it entirely.
func NewWorkspace(parent, runID string) (*Workspace, error) {
	if parent != "" {
		if err := os.MkdirAll(parent, fileutil.DirPermissions); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrWorkspace, err)
		}
	}
	dir, err := os.MkdirTemp(parent, "lyrender-"+runID+"-")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWorkspace, err)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		_ = os.RemoveAll(dir)
		return nil, fmt.Errorf("%w: %v", ErrWorkspace, err)
	}
	return &Workspace{dir: abs, owned: true}, nil
}

// OpenWorkspace uses a caller-provided directory, creating it if needed.
// Generated artifacts left by an earlier run are removed first so that stale
// pages are never reported.
func OpenWorkspace(dir string) (*Workspace, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWorkspace, err)
	}
	if err := os.MkdirAll(abs, fileutil.DirPermissions); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWorkspace, err)
	}
	w := &Workspace{dir: abs}
	if err := w.clearOutputs(); err != nil {
		return nil, fmt.Errorf("%w: clearing previous artifacts: %v", ErrWorkspace, err)
	}
	return w, nil
}

// Dir returns the absolute workspace directory.
func (w *Workspace) Dir() string { return w.dir }

// Owned reports whether the workspace directory was created for this run.
func (w *Workspace) Owned() bool { return w.owned }

// Path returns the absolute path of a canonical artifact.
func (w *Workspace) Path(name string) string { return filepath.Join(w.dir, name) }

// PagePath returns the absolute path of the 1-based page image.
func (w *Workspace) PagePath(index int) string {
	return w.Path(fmt.Sprintf(PagePattern, index))
}

// WriteFile writes a generated input (scaffolded source) and remembers it
// so Discard can remove it from caller-provided directories.
func (w *Workspace) WriteFile(name string, content []byte) (string, error) {
	path := w.Path(name)
	if err := fileutil.WriteFile(path, content); err != nil {
		return "", err
	}
	w.track(path)
	return path, nil
}

// track remembers a generated file so Discard removes it from
// caller-provided directories.
func (w *Workspace) track(path string) {
	w.written = append(w.written, path)
}

// Discard removes what the run produced. Owned directories are deleted;
// caller directories lose the generated artifacts only.
func (w *Workspace) Discard() error {
	if w.owned {
		return os.RemoveAll(w.dir)
	}
	var errs []error
	if err := w.clearOutputs(); err != nil {
		errs = append(errs, err)
	}
	for _, path := range w.written {
		if err := fileutil.RemoveIfExists(path); err != nil {
			errs = append(errs, err)
		}
	}
	w.written = nil
	return errors.Join(errs...)
}

// clearOutputs removes tool outputs: imported MIDI source, PostScript, MIDI,
// audio and page images.
func (w *Workspace) clearOutputs() error {
	targets := []string{w.Path(ImportName), w.Path(PostScriptName), w.Path(MIDIName), w.Path(AudioName)}
	pages, err := filepath.Glob(w.Path(pageGlob))
	if err != nil {
		return err
	}
	targets = append(targets, pages...)

	var errs []error
	for _, path := range targets {
		if err := fileutil.RemoveIfExists(path); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
