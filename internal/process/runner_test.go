package process

// Notes:
// - Failure formatting and errors.Is matching are tested directly.
// - ExecRunner behavior against real binaries lives in runner_unix_test.go,
//   which relies on /bin/sh and is skipped on Windows.

import (
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"testing"
)

// ---------------------------------------------------------------------------
// TestFailure_Error - Diagnostic message
// ---------------------------------------------------------------------------

func TestFailure_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		failure *Failure
		want    string
	}{
		{
			name:    "stderr becomes the message",
			failure: &Failure{Tool: "lilypond", ExitCode: 1, Stderr: "file.ly:1:1: error: syntax error\n"},
			want:    "lilypond: file.ly:1:1: error: syntax error",
		},
		{
			name:    "exit code when stderr is empty",
			failure: &Failure{Tool: "gs", ExitCode: 2},
			want:    "gs: exit status 2",
		},
		{
			name:    "underlying error when process never ran",
			failure: &Failure{Tool: "convert", ExitCode: -1, Err: errors.New("boom")},
			want:    "convert: boom",
		},
		{
			name:    "generic fallback",
			failure: &Failure{Tool: "fluidsynth", ExitCode: -1},
			want:    "fluidsynth: failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.failure.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestFailure_Is - Sentinel matching
// ---------------------------------------------------------------------------

func TestFailure_Is(t *testing.T) {
	t.Parallel()

	notFound := &Failure{Tool: "gs", ExitCode: -1, Err: &exec.Error{Name: "gs", Err: exec.ErrNotFound}}
	exited := &Failure{Tool: "gs", ExitCode: 1}

	if !errors.Is(notFound, ErrFailed) {
		t.Error("missing binary should match ErrFailed")
	}
	if !errors.Is(notFound, ErrNotFound) {
		t.Error("missing binary should match ErrNotFound")
	}
	if !errors.Is(exited, ErrFailed) {
		t.Error("non-zero exit should match ErrFailed")
	}
	if errors.Is(exited, ErrNotFound) {
		t.Error("non-zero exit should not match ErrNotFound")
	}

	missingPath := &Failure{Tool: "/opt/gs", ExitCode: -1, Err: &fs.PathError{Op: "fork/exec", Path: "/opt/gs", Err: fs.ErrNotExist}}
	if !errors.Is(missingPath, ErrNotFound) {
		t.Error("missing explicit binary path should match ErrNotFound")
	}

	wrapped := fmt.Errorf("rasterizing: %w", exited)
	var f *Failure
	if !errors.As(wrapped, &f) {
		t.Fatal("errors.As should find *Failure through wrapping")
	}
	if f.Tool != "gs" {
		t.Errorf("Tool = %q, want gs", f.Tool)
	}
}

// ---------------------------------------------------------------------------
// TestCommand_String - Log rendering
// ---------------------------------------------------------------------------

func TestCommand_String(t *testing.T) {
	t.Parallel()

	if got := (Command{Name: "gs"}).String(); got != "gs" {
		t.Errorf("String() = %q, want %q", got, "gs")
	}
	got := (Command{Name: "convert", Args: []string{"-trim", "a.png", "b.png"}}).String()
	if got != "convert -trim a.png b.png" {
		t.Errorf("String() = %q", got)
	}
}

// ---------------------------------------------------------------------------
// TestKillProcessGroup - Invalid PID Handling
// ---------------------------------------------------------------------------

func TestKillProcessGroup_InvalidPID(t *testing.T) {
	t.Parallel()

	// Must not panic. PID 0 and real PIDs cannot be used safely here.
	KillProcessGroup(999999999)
}
